package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dkotenko/labelforge/internal/database/jobs"
	"github.com/dkotenko/labelforge/internal/entities"
)

const defaultJobsLimit = 20

type JobsController struct {
	repo *jobs.Repository
}

func NewJobsController(repo *jobs.Repository) *JobsController {
	return &JobsController{repo: repo}
}

type JobsResult struct {
	Jobs []entities.GenerationJob `json:"jobs"`
}

// List returns the most recent generation runs, newest first.
func (c *JobsController) List(ctx *gin.Context) {
	limit := defaultJobsLimit
	if raw := ctx.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	records, err := c.repo.Recent(limit)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to load job history",
		})
		return
	}

	ctx.JSON(http.StatusOK, &JobsResult{Jobs: records})
}
