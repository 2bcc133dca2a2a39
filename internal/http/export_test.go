package http

import (
	"archive/zip"
	"bytes"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkotenko/labelforge/internal/session"
	"github.com/dkotenko/labelforge/internal/upc"
)

func exportRouter(resolver SessionResolver) *gin.Engine {
	router := gin.New()
	controller := NewExportController(resolver)
	router.GET("/api/export", controller.Download)
	return router
}

func TestExportController(t *testing.T) {
	t.Run("streams a zip of rendered artifacts", func(t *testing.T) {
		sess, resolver := newTestSession(t)
		router := exportRouter(resolver)

		sess.SetEntries([]session.Entry{
			{
				Number:   "012345678905",
				Valid:    true,
				Artifact: &upc.Artifact{Format: upc.FormatPNG, Data: []byte("png-bytes")},
			},
			{Number: "bad", Valid: false, Error: "length must be 12 digits"},
		})

		w := performRequest(router, "GET", "/api/export", nil, "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/zip", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), "barcodes.png.zip")

		reader, err := zip.NewReader(bytes.NewReader(w.Body.Bytes()), int64(w.Body.Len()))
		require.NoError(t, err)
		require.Len(t, reader.File, 1)
		assert.Equal(t, "012345678905.png", reader.File[0].Name)
	})

	t.Run("conflicts when nothing is rendered", func(t *testing.T) {
		sess, resolver := newTestSession(t)
		router := exportRouter(resolver)

		sess.SetEntries([]session.Entry{{Number: "012345678905", Valid: true}})

		w := performRequest(router, "GET", "/api/export", nil, "")

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("conflicts on an empty session", func(t *testing.T) {
		_, resolver := newTestSession(t)
		router := exportRouter(resolver)

		w := performRequest(router, "GET", "/api/export", nil, "")

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestEntriesController(t *testing.T) {
	t.Run("lists entries with verdicts and data URIs", func(t *testing.T) {
		sess, resolver := newTestSession(t)
		router := gin.New()
		router.GET("/api/entries", NewEntriesController(resolver).List)

		sess.SetEntries([]session.Entry{
			{
				Number:   "012345678905",
				Valid:    true,
				Artifact: &upc.Artifact{Format: upc.FormatPNG, Data: []byte{1, 2, 3}},
			},
			{Number: "12345", Valid: false, Error: "length must be 12 digits"},
		})

		w := performRequest(router, "GET", "/api/entries", nil, "")

		assert.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, `"total":2`)
		assert.Contains(t, body, `"valid":1`)
		assert.Contains(t, body, `"rendered":1`)
		assert.Contains(t, body, "data:image/png;base64,")
		assert.Contains(t, body, "length must be 12 digits")
	})
}
