// Package scheduler runs periodic maintenance: sweeping idle sessions and
// pruning the generation job log.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/dkotenko/labelforge/internal/session"
	"github.com/dkotenko/labelforge/internal/tasks"
)

// CleanupScheduler sweeps idle sessions on a cron schedule and enqueues the
// job-history cleanup task alongside each sweep.
type CleanupScheduler struct {
	store         *session.Store
	taskClient    *tasks.Client
	retentionDays int
	schedule      string

	cron       *cron.Cron
	mu         sync.Mutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewCleanupScheduler creates a scheduler. The task client may be nil; the
// session sweep still runs, only the job cleanup is skipped.
func NewCleanupScheduler(store *session.Store, taskClient *tasks.Client, schedule string, retentionDays int) *CleanupScheduler {
	return &CleanupScheduler{
		store:         store,
		taskClient:    taskClient,
		retentionDays: retentionDays,
		schedule:      schedule,
		cron:          cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the scheduler.
func (s *CleanupScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if _, err := s.cron.AddFunc(s.schedule, s.runCleanup); err != nil {
		return fmt.Errorf("invalid cleanup schedule %q: %w", s.schedule, err)
	}

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	log.Printf("Cleanup scheduler: started with schedule '%s'", s.schedule)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler, waiting for a running job to finish.
func (s *CleanupScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	s.cancelFunc = nil

	log.Printf("Cleanup scheduler: stopped")
}

func (s *CleanupScheduler) runCleanup() {
	swept := s.store.Sweep()
	if swept > 0 {
		log.Printf("Cleanup scheduler: swept %d idle sessions (%d remain)", swept, s.store.Len())
	}

	if s.taskClient == nil {
		return
	}
	if _, err := s.taskClient.Add(tasks.CleanupJobsTask{RetentionDays: s.retentionDays}).Save(); err != nil {
		log.Printf("Cleanup scheduler: failed to enqueue job cleanup: %v", err)
	}
}
