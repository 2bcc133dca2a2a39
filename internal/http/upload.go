package http

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dkotenko/labelforge/internal/session"
)

const defaultMaxUploadBytes = 1 * 1024 * 1024 // 1 MB

type UploadController struct {
	sessions SessionResolver
	maxBytes int64
}

func NewUploadController(sessions SessionResolver, maxBytes int64) *UploadController {
	if maxBytes <= 0 {
		maxBytes = defaultMaxUploadBytes
	}
	return &UploadController{
		sessions: sessions,
		maxBytes: maxBytes,
	}
}

type UploadResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Total   int    `json:"total"`
	Valid   int    `json:"valid"`
}

// Upload replaces the session's entry list with the contents of the posted
// code file. Anything other than a plaintext file is rejected before the
// body is parsed.
func (c *UploadController) Upload(ctx *gin.Context) {
	file, header, err := ctx.Request.FormFile("codes_file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, &UploadResult{
			Success: false,
			Error:   "Codes file not provided",
		})
		return
	}
	defer file.Close()

	if !isPlainText(header.Filename, header.Header.Get("Content-Type")) {
		ctx.JSON(http.StatusUnsupportedMediaType, &UploadResult{
			Success: false,
			Error:   "Only plaintext .txt code lists are accepted",
		})
		return
	}

	if header.Size > c.maxBytes {
		ctx.JSON(http.StatusBadRequest, &UploadResult{
			Success: false,
			Error:   fmt.Sprintf("File too large (max %d KB)", c.maxBytes/1024),
		})
		return
	}

	limitedReader := io.LimitReader(file, c.maxBytes+1)

	entries, err := session.ParseEntries(limitedReader)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, &UploadResult{
			Success: false,
			Error:   fmt.Sprintf("Failed to read code list: %v", err),
		})
		return
	}

	sess := c.sessions.Resolve(ctx)
	sess.SetEntries(entries)

	ctx.JSON(http.StatusOK, &UploadResult{
		Success: true,
		Total:   len(entries),
		Valid:   session.CountValid(entries),
	})
}

// isPlainText accepts .txt uploads and anything a browser labels text/plain.
// Browsers disagree on the content type for .txt files, so the extension
// alone is enough.
func isPlainText(filename, contentType string) bool {
	if strings.EqualFold(filepath.Ext(filename), ".txt") {
		return true
	}
	mediaType := contentType
	if i := strings.Index(mediaType, ";"); i >= 0 {
		mediaType = mediaType[:i]
	}
	return strings.TrimSpace(strings.ToLower(mediaType)) == "text/plain"
}
