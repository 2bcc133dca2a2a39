package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dkotenko/labelforge/internal/database"
	"github.com/dkotenko/labelforge/internal/session"
)

type HealthResponse struct {
	Status   string            `json:"status"`
	Time     string            `json:"time"`
	Version  string            `json:"version,omitempty"`
	Sessions int               `json:"sessions"`
	Checks   map[string]string `json:"checks"`
}

type HealthController struct {
	db      *database.Database
	store   *session.Store
	version string
}

func NewHealthController(db *database.Database, store *session.Store, version string) *HealthController {
	return &HealthController{
		db:      db,
		store:   store,
		version: version,
	}
}

func (h *HealthController) Status(c *gin.Context) {
	checks := make(map[string]string)
	status := "healthy"

	// Check database connectivity
	if h.db != nil {
		sqlDB, err := h.db.DB.DB()
		if err != nil {
			checks["database"] = "error: " + err.Error()
			status = "unhealthy"
		} else if err := sqlDB.Ping(); err != nil {
			checks["database"] = "error: " + err.Error()
			status = "unhealthy"
		} else {
			checks["database"] = "ok"
		}
	} else {
		checks["database"] = "not configured"
	}

	sessions := 0
	if h.store != nil {
		sessions = h.store.Len()
	}

	health := HealthResponse{
		Status:   status,
		Time:     time.Now().Format(time.RFC3339),
		Version:  h.version,
		Sessions: sessions,
		Checks:   checks,
	}

	statusCode := http.StatusOK
	if status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.IndentedJSON(statusCode, health)
}
