package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dkotenko/labelforge/internal/session"
)

type EntriesController struct {
	sessions SessionResolver
}

func NewEntriesController(sessions SessionResolver) *EntriesController {
	return &EntriesController{sessions: sessions}
}

type EntryView struct {
	Number  string `json:"number"`
	Valid   bool   `json:"valid"`
	Error   string `json:"error,omitempty"`
	DataURI string `json:"data_uri,omitempty"`
}

type EntriesResult struct {
	Entries  []EntryView `json:"entries"`
	Total    int         `json:"total"`
	Valid    int         `json:"valid"`
	Rendered int         `json:"rendered"`
}

// List returns the session's entries with validity verdicts and, after a
// generation pass, inline artifact data URIs.
func (c *EntriesController) List(ctx *gin.Context) {
	sess := c.sessions.Resolve(ctx)
	entries := sess.Entries()

	views := make([]EntryView, 0, len(entries))
	for _, e := range entries {
		view := EntryView{
			Number: e.Number,
			Valid:  e.Valid,
			Error:  e.Error,
		}
		if e.Artifact != nil {
			view.DataURI = e.Artifact.DataURI()
		}
		views = append(views, view)
	}

	ctx.JSON(http.StatusOK, &EntriesResult{
		Entries:  views,
		Total:    len(entries),
		Valid:    session.CountValid(entries),
		Rendered: session.CountRendered(entries),
	})
}
