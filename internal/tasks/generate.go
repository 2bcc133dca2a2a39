package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/dkotenko/labelforge/internal/batch"
	"github.com/dkotenko/labelforge/internal/database/jobs"
	"github.com/dkotenko/labelforge/internal/entities"
	"github.com/dkotenko/labelforge/internal/session"
	"github.com/dkotenko/labelforge/internal/upc"
)

// GenerateBatchTask renders every valid entry of a session. The render
// parameters are frozen into the task payload when the pass is requested,
// so a settings change after that point cannot mix parameterizations into
// a running pass.
type GenerateBatchTask struct {
	SessionID   string `json:"session_id"`
	WidthPx     int    `json:"width_px"`
	HeightPx    int    `json:"height_px"`
	Format      string `json:"format"`
	ShowNumbers bool   `json:"show_numbers"`
}

// Config returns the queue configuration for generation tasks. A pass runs
// at most once; a failed render is per-entry state, not a task failure.
func (t GenerateBatchTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "generate_batch",
		MaxAttempts: 1,
		Backoff:     time.Minute,
		Timeout:     30 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// GenerateBatchProcessor creates a processor function for GenerateBatchTask.
// The jobs repository is optional; without it the pass still runs but no
// run log is recorded.
func GenerateBatchProcessor(store *session.Store, runner *batch.Runner, repo *jobs.Repository) backlite.QueueProcessor[GenerateBatchTask] {
	return func(ctx context.Context, task GenerateBatchTask) error {
		sess, ok := store.Get(task.SessionID)
		if !ok {
			// The session was swept between enqueue and execution; there is
			// nothing to render into.
			log.Printf("[TASK] Session %s gone, skipping generation", task.SessionID)
			return nil
		}

		format, err := upc.ParseFormat(task.Format)
		if err != nil {
			return fmt.Errorf("generate batch: %w", err)
		}

		if err := sess.BeginPass(); err != nil {
			return fmt.Errorf("generate batch for %s: %w", task.SessionID, err)
		}

		snap := batch.Snapshot{
			Params:   upc.MapEncoderParams(task.WidthPx, task.HeightPx, task.ShowNumbers),
			WidthPx:  task.WidthPx,
			HeightPx: task.HeightPx,
			Format:   format,
		}

		started := time.Now()
		entries := sess.Entries()
		total := session.CountValid(entries)

		final, runErr := runner.Run(ctx, entries, snap, sess.PublishPass)
		sess.FinishPass(final)

		succeeded := session.CountRendered(final)
		if repo != nil {
			job := &entities.GenerationJob{
				SessionID: task.SessionID,
				Format:    string(format),
				WidthPx:   task.WidthPx,
				HeightPx:  task.HeightPx,
				Total:     total,
				Succeeded: succeeded,
				Failed:    total - succeeded,
				Duration:  time.Since(started).Milliseconds(),
			}
			if err := repo.Record(job); err != nil {
				log.Printf("[TASK ERROR] Failed to record generation job: %v", err)
			}
		}

		if runErr != nil {
			return fmt.Errorf("generate batch for %s: %w", task.SessionID, runErr)
		}

		log.Printf("[TASK] Generation complete for %s: %d total, %d rendered, %d failed",
			task.SessionID, total, succeeded, total-succeeded)
		return nil
	}
}

// NewGenerateBatchQueue creates a backlite queue for generation tasks.
func NewGenerateBatchQueue(store *session.Store, runner *batch.Runner, repo *jobs.Repository) backlite.Queue {
	return backlite.NewQueue(GenerateBatchProcessor(store, runner, repo))
}
