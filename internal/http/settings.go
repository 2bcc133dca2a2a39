package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dkotenko/labelforge/internal/session"
	"github.com/dkotenko/labelforge/internal/upc"
)

type SettingsController struct {
	sessions SessionResolver
}

func NewSettingsController(sessions SessionResolver) *SettingsController {
	return &SettingsController{sessions: sessions}
}

type SizeUpdateRequest struct {
	WidthCm   *float64 `json:"width_cm"`
	HeightCm  *float64 `json:"height_cm"`
	LockRatio *bool    `json:"lock_ratio"`
}

type RenderUpdateRequest struct {
	ShowNumbers *bool   `json:"show_numbers"`
	Format      *string `json:"format"`
}

type SettingsResult struct {
	Success bool                    `json:"success"`
	Error   string                  `json:"error,omitempty"`
	Size    *session.SizeSetting    `json:"size,omitempty"`
	Render  *session.RenderSettings `json:"render,omitempty"`
}

// UpdateSize applies a partial size update. Out-of-range values are clamped,
// malformed ones ignored; with the ratio lock on the counterpart dimension
// is recomputed. Any change clears previously rendered artifacts.
func (c *SettingsController) UpdateSize(ctx *gin.Context) {
	var req SizeUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, &SettingsResult{
			Success: false,
			Error:   "Invalid size payload",
		})
		return
	}

	sess := c.sessions.Resolve(ctx)
	size := sess.UpdateSize(func(s *session.SizeSetting) {
		if req.LockRatio != nil {
			s.LockRatio = *req.LockRatio
		}
		if req.WidthCm != nil {
			s.SetWidth(*req.WidthCm)
		}
		if req.HeightCm != nil {
			s.SetHeight(*req.HeightCm)
		}
	})

	ctx.JSON(http.StatusOK, &SettingsResult{
		Success: true,
		Size:    &size,
	})
}

// UpdateRender applies a partial render-settings update. An unknown format
// rejects the whole request and leaves the settings untouched.
func (c *SettingsController) UpdateRender(ctx *gin.Context) {
	var req RenderUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, &SettingsResult{
			Success: false,
			Error:   "Invalid render payload",
		})
		return
	}

	var format upc.Format
	if req.Format != nil {
		var err error
		format, err = upc.ParseFormat(*req.Format)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, &SettingsResult{
				Success: false,
				Error:   err.Error(),
			})
			return
		}
	}

	sess := c.sessions.Resolve(ctx)
	render := sess.UpdateRender(func(r *session.RenderSettings) {
		if req.ShowNumbers != nil {
			r.ShowNumbers = *req.ShowNumbers
		}
		if req.Format != nil {
			r.Format = format
		}
	})

	ctx.JSON(http.StatusOK, &SettingsResult{
		Success: true,
		Render:  &render,
	})
}
