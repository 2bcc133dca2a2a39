package http

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadController(t *testing.T) {
	newRouter := func(resolver SessionResolver, maxBytes int64) *gin.Engine {
		router := gin.New()
		controller := NewUploadController(resolver, maxBytes)
		router.POST("/api/upload", controller.Upload)
		return router
	}

	t.Run("replaces entries with uploaded code list", func(t *testing.T) {
		sess, resolver := newTestSession(t)
		router := newRouter(resolver, 0)

		body, contentType := multipartBody(t, "codes.txt", "012345678905\nnot-a-code\n\n  036000291452  \n")
		w := performRequest(router, "POST", "/api/upload", body, contentType)

		assert.Equal(t, http.StatusOK, w.Code)

		var result UploadResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
		assert.True(t, result.Success)
		assert.Equal(t, 3, result.Total)
		assert.Equal(t, 2, result.Valid)

		entries := sess.Entries()
		require.Len(t, entries, 3)
		assert.Equal(t, "012345678905", entries[0].Number)
		assert.True(t, entries[0].Valid)
		assert.False(t, entries[1].Valid)
		assert.Equal(t, "036000291452", entries[2].Number)
	})

	t.Run("second upload discards previous list", func(t *testing.T) {
		sess, resolver := newTestSession(t)
		router := newRouter(resolver, 0)

		body, contentType := multipartBody(t, "first.txt", "012345678905\n036000291452\n")
		performRequest(router, "POST", "/api/upload", body, contentType)

		body, contentType = multipartBody(t, "second.txt", "123456789012\n")
		w := performRequest(router, "POST", "/api/upload", body, contentType)

		assert.Equal(t, http.StatusOK, w.Code)
		entries := sess.Entries()
		require.Len(t, entries, 1)
		assert.Equal(t, "123456789012", entries[0].Number)
	})

	t.Run("rejects non-text uploads before parsing", func(t *testing.T) {
		sess, resolver := newTestSession(t)
		router := newRouter(resolver, 0)

		body, contentType := multipartBody(t, "codes.csv", "012345678905\n")
		w := performRequest(router, "POST", "/api/upload", body, contentType)

		assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
		assert.Empty(t, sess.Entries(), "rejected upload must not touch the session")
	})

	t.Run("rejects oversized file", func(t *testing.T) {
		_, resolver := newTestSession(t)
		router := newRouter(resolver, 64)

		body, contentType := multipartBody(t, "codes.txt", strings.Repeat("012345678905\n", 100))
		w := performRequest(router, "POST", "/api/upload", body, contentType)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing file field is a bad request", func(t *testing.T) {
		_, resolver := newTestSession(t)
		router := newRouter(resolver, 0)

		w := performRequest(router, "POST", "/api/upload", nil, "text/plain")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestIsPlainText(t *testing.T) {
	assert.True(t, isPlainText("codes.txt", "application/octet-stream"))
	assert.True(t, isPlainText("CODES.TXT", ""))
	assert.True(t, isPlainText("codes.dat", "text/plain; charset=utf-8"))
	assert.False(t, isPlainText("codes.csv", "text/csv"))
	assert.False(t, isPlainText("codes.pdf", "application/pdf"))
}
