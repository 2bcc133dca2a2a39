package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"
)

// JobCleaner provides the ability to delete old generation job records.
type JobCleaner interface {
	DeleteOldJobs(retention time.Duration) (int64, error)
}

// CleanupJobsTask removes generation job records older than the configured
// retention period.
type CleanupJobsTask struct {
	RetentionDays int `json:"retention_days"`
}

// Config returns the queue configuration for job cleanup tasks.
func (t CleanupJobsTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "cleanup_jobs",
		MaxAttempts: 3,
		Backoff:     5 * time.Minute,
		Timeout:     2 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// CleanupJobsProcessor creates a processor function for CleanupJobsTask.
func CleanupJobsProcessor(cleaner JobCleaner) backlite.QueueProcessor[CleanupJobsTask] {
	return func(ctx context.Context, task CleanupJobsTask) error {
		if cleaner == nil {
			return fmt.Errorf("job cleaner not configured")
		}

		retentionDays := task.RetentionDays
		if retentionDays <= 0 {
			retentionDays = 30
		}
		retention := time.Duration(retentionDays) * 24 * time.Hour

		deleted, err := cleaner.DeleteOldJobs(retention)
		if err != nil {
			return fmt.Errorf("cleanup jobs: %w", err)
		}

		log.Printf("[TASK] Cleaned up %d generation jobs older than %d days", deleted, retentionDays)
		return nil
	}
}

// NewCleanupJobsQueue creates a backlite queue for job cleanup tasks.
func NewCleanupJobsQueue(cleaner JobCleaner) backlite.Queue {
	return backlite.NewQueue(CleanupJobsProcessor(cleaner))
}
