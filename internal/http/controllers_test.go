package http

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/dkotenko/labelforge/internal/session"
)

// stubResolver hands every request the same session, standing in for the
// cookie-backed SessionManager.
type stubResolver struct {
	sess *session.Session
}

func (r *stubResolver) Resolve(c *gin.Context) *session.Session {
	return r.sess
}

func newTestSession(t *testing.T) (*session.Session, *stubResolver) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sess := session.NewStore(time.Hour).GetOrCreate("test-session")
	return sess, &stubResolver{sess: sess}
}

// multipartBody builds a codes_file upload with the given filename.
func multipartBody(t *testing.T, filename, content string) (*bytes.Buffer, string) {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("codes_file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return &body, writer.FormDataContentType()
}

func performRequest(router *gin.Engine, method, path string, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	if body == nil {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
