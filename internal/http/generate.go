package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dkotenko/labelforge/internal/session"
	"github.com/dkotenko/labelforge/internal/tasks"
	"github.com/dkotenko/labelforge/internal/upc"
)

type GenerateController struct {
	sessions SessionResolver
	client   TaskEnqueuer
	dpi      float64
}

func NewGenerateController(sessions SessionResolver, client TaskEnqueuer, dpi float64) *GenerateController {
	if dpi <= 0 {
		dpi = upc.DefaultDPI
	}
	return &GenerateController{
		sessions: sessions,
		client:   client,
		dpi:      dpi,
	}
}

type GenerateResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Queued  int    `json:"queued,omitempty"`
}

type ProgressResult struct {
	Current int    `json:"current"`
	Total   int    `json:"total"`
	Status  string `json:"status"`
}

// Start freezes the session's current settings into a task payload and
// enqueues a generation pass. A second request while a pass runs is
// rejected; the running pass keeps its own parameters.
func (c *GenerateController) Start(ctx *gin.Context) {
	if c.client == nil {
		ctx.JSON(http.StatusServiceUnavailable, &GenerateResult{
			Success: false,
			Error:   "Task queue is disabled",
		})
		return
	}

	sess := c.sessions.Resolve(ctx)

	if _, status := sess.Progress(); status == session.StatusRunning {
		ctx.JSON(http.StatusConflict, &GenerateResult{
			Success: false,
			Error:   session.ErrPassRunning.Error(),
		})
		return
	}

	entries := sess.Entries()
	if len(entries) == 0 {
		ctx.JSON(http.StatusBadRequest, &GenerateResult{
			Success: false,
			Error:   "No codes uploaded",
		})
		return
	}

	size := sess.Size()
	render := sess.Render()
	widthPx, heightPx := upc.MapSize(size.WidthCm, size.HeightCm, c.dpi)

	_, err := c.client.Add(tasks.GenerateBatchTask{
		SessionID:   sess.ID,
		WidthPx:     widthPx,
		HeightPx:    heightPx,
		Format:      string(render.Format),
		ShowNumbers: render.ShowNumbers,
	}).Save()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, &GenerateResult{
			Success: false,
			Error:   "Failed to queue generation",
		})
		return
	}

	ctx.JSON(http.StatusAccepted, &GenerateResult{
		Success: true,
		Queued:  session.CountValid(entries),
	})
}

// Progress reports the state of the current pass. Counters read zero when
// the session is idle.
func (c *GenerateController) Progress(ctx *gin.Context) {
	sess := c.sessions.Resolve(ctx)
	progress, status := sess.Progress()

	ctx.JSON(http.StatusOK, &ProgressResult{
		Current: progress.Current,
		Total:   progress.Total,
		Status:  string(status),
	})
}
