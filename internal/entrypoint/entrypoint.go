// Package entrypoint wires the application together and runs the server.
package entrypoint

import (
	"context"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dkotenko/labelforge/internal/batch"
	"github.com/dkotenko/labelforge/internal/config"
	"github.com/dkotenko/labelforge/internal/database"
	"github.com/dkotenko/labelforge/internal/database/jobs"
	http_controllers "github.com/dkotenko/labelforge/internal/http"
	"github.com/dkotenko/labelforge/internal/scheduler"
	"github.com/dkotenko/labelforge/internal/session"
	"github.com/dkotenko/labelforge/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Call shutdown callback first (e.g., to stop task queue)
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting LabelForge v%s", version)

	// Initialize database for the generation run log
	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	jobsRepo := jobs.NewRepository(db.DB)

	// In-memory session state, swept on a schedule
	store := session.NewStore(cfg.Sessions.TTL)

	runner := batch.NewRunner(cfg.Batch.ChunkSize, cfg.Batch.Concurrency, cfg.Batch.YieldDelay)

	// Initialize task queue if enabled
	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	if cfg.Tasks.Enabled {
		taskCfg := tasks.Config{
			Workers:           cfg.Tasks.Workers,
			MaxRetries:        cfg.Tasks.MaxRetries,
			RetryDelay:        cfg.Tasks.RetryDelay,
			TaskTimeout:       cfg.Tasks.TaskTimeout,
			ReleaseAfter:      cfg.Tasks.ReleaseAfter,
			CleanupInterval:   cfg.Tasks.CleanupInterval,
			RetentionDuration: cfg.Tasks.RetentionDuration,
		}

		taskClient, err = tasks.NewClient(cfg.Database.Path, taskCfg)
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		taskClient.Register(
			tasks.NewGenerateBatchQueue(store, runner, jobsRepo),
			tasks.NewCleanupJobsQueue(jobsRepo),
		)

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)
	} else {
		log.Printf("WARNING: Task queue disabled; batch generation endpoints will fail")
	}

	// Session cleanup and job history retention on a cron schedule
	var cleanupScheduler *scheduler.CleanupScheduler
	if taskClient != nil {
		cleanupScheduler = scheduler.NewCleanupScheduler(store, taskClient, cfg.Jobs.CleanupSchedule, cfg.Jobs.RetentionDays)
		if err := cleanupScheduler.Start(context.Background()); err != nil {
			log.Fatalf("Failed to start cleanup scheduler: %v", err)
		}
	}

	// Cookie-to-session binding via scs on the main database
	sqlDB, err := db.DB.DB()
	if err != nil {
		log.Fatalf("Failed to get SQL DB for sessions: %v", err)
	}

	sessionManager, err := http_controllers.NewSessionManager(sqlDB, store, cfg.Sessions)
	if err != nil {
		log.Fatalf("Failed to initialize session manager: %v", err)
	}

	// Generate or use configured CSRF secret
	var csrfSecret []byte
	if cfg.Sessions.Secret != "" {
		csrfSecret, err = hex.DecodeString(cfg.Sessions.Secret)
		if err != nil {
			// Not hex, use as raw bytes
			csrfSecret = []byte(cfg.Sessions.Secret)
		}
	} else {
		csrfSecret, err = http_controllers.GenerateSecret()
		if err != nil {
			log.Fatalf("Failed to generate CSRF secret: %v", err)
		}
		log.Printf("Generated session secret (set SESSION_SECRET to persist)")
	}

	routerCfg := http_controllers.RouterConfig{
		Database:       db,
		Jobs:           jobsRepo,
		Store:          store,
		Sessions:       sessionManager,
		RenderDPI:      cfg.Render.DPI,
		MaxUploadBytes: cfg.HTTP.MaxUploadBytes,
		CSRFSecret:     csrfSecret,
		SecureCookies:  cfg.Sessions.SecureCookies,
		Version:        version,
	}
	if taskClient != nil {
		routerCfg.TaskClient = taskClient
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		if cleanupScheduler != nil {
			cleanupScheduler.Stop()
		}
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
	}

	Serve(router, cfg, onShutdown)
}
