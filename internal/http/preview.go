package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dkotenko/labelforge/internal/upc"
)

type PreviewController struct {
	sessions SessionResolver
	dpi      float64
}

func NewPreviewController(sessions SessionResolver, dpi float64) *PreviewController {
	if dpi <= 0 {
		dpi = upc.DefaultDPI
	}
	return &PreviewController{
		sessions: sessions,
		dpi:      dpi,
	}
}

type PreviewError struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// Render draws a single code with the session's current settings and
// returns the image directly, for previewing a size or format change
// without running a full pass.
func (c *PreviewController) Render(ctx *gin.Context) {
	code := strings.TrimSpace(ctx.Query("code"))
	if ok, reason := upc.Validate(code); !ok {
		ctx.JSON(http.StatusBadRequest, &PreviewError{
			Success: false,
			Error:   reason,
		})
		return
	}

	sess := c.sessions.Resolve(ctx)
	size := sess.Size()
	render := sess.Render()

	widthPx, heightPx := upc.MapSize(size.WidthCm, size.HeightCm, c.dpi)
	params := upc.MapEncoderParams(widthPx, heightPx, render.ShowNumbers)

	artifact, err := upc.Render(code, params, widthPx, heightPx, render.Format)
	if err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, &PreviewError{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	ctx.Data(http.StatusOK, artifact.Format.ContentType(), artifact.Data)
}
