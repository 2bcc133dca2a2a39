package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dkotenko/labelforge/internal/archive"
	"github.com/dkotenko/labelforge/internal/session"
)

type ExportController struct {
	sessions SessionResolver
}

func NewExportController(sessions SessionResolver) *ExportController {
	return &ExportController{sessions: sessions}
}

type ExportError struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// Download streams a zip of every rendered artifact in the session. Without
// at least one rendered entry there is nothing to export; a packaging
// failure produces no partial archive.
func (c *ExportController) Download(ctx *gin.Context) {
	sess := c.sessions.Resolve(ctx)
	entries := sess.Entries()

	if session.CountRendered(entries) == 0 {
		ctx.JSON(http.StatusConflict, &ExportError{
			Success: false,
			Error:   "No rendered barcodes to export",
		})
		return
	}

	format := sess.Render().Format
	blob, err := archive.Build(entries, format)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, &ExportError{
			Success: false,
			Error:   fmt.Sprintf("Failed to build archive: %v", err),
		})
		return
	}

	name := archive.FileName(format)
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	ctx.Data(http.StatusOK, "application/zip", blob)
}
