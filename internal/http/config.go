package http

import (
	"github.com/mikestefanello/backlite"

	"github.com/dkotenko/labelforge/internal/database"
	"github.com/dkotenko/labelforge/internal/database/jobs"
	"github.com/dkotenko/labelforge/internal/session"
)

// TaskEnqueuer enqueues background tasks. Satisfied by *tasks.Client.
type TaskEnqueuer interface {
	Add(tasks ...backlite.Task) *backlite.TaskAddOp
}

// RouterConfig carries every dependency the router needs. Passing a struct
// instead of a parameter list keeps NewRouter testable.
type RouterConfig struct {
	Database *database.Database
	Jobs     *jobs.Repository

	Store    *session.Store
	Sessions *SessionManager

	TaskClient TaskEnqueuer

	RenderDPI      float64
	MaxUploadBytes int64

	CSRFSecret    []byte
	SecureCookies bool

	Version string
}
