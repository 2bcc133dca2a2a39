package config

import (
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Render
		Batch
		Tasks
		Sessions
		Jobs
	}

	HTTP struct {
		Port           int32
		Host           string
		MaxUploadBytes int64
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path string
	}
	Render struct {
		DPI float64 // pixels per inch used for cm-to-px conversion
	}
	Batch struct {
		ChunkSize   int
		Concurrency int
		YieldDelay  time.Duration
	}
	Tasks struct {
		Enabled           bool
		Workers           int
		MaxRetries        int
		RetryDelay        time.Duration
		TaskTimeout       time.Duration
		ReleaseAfter      time.Duration
		CleanupInterval   time.Duration
		RetentionDuration time.Duration
	}
	Sessions struct {
		TTL           time.Duration
		Lifetime      time.Duration // cookie lifetime
		Secret        string        // CSRF secret, auto-generated if empty
		SecureCookies bool          // set to false for local dev without HTTPS
	}
	Jobs struct {
		RetentionDays   int
		CleanupSchedule string // cron format: "0 * * * *" = hourly
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8177)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("max_upload_bytes", 1048576) // 1 MB of codes is ~80k lines
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)

	// Rendering defaults
	v.SetDefault("render_dpi", 300.0)

	// Batch scheduler defaults
	v.SetDefault("batch_chunk_size", 50)
	v.SetDefault("batch_concurrency", 8)
	v.SetDefault("batch_yield_delay", "10ms")

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 2)
	v.SetDefault("task_max_retries", 3)
	v.SetDefault("task_retry_delay", "1m")
	v.SetDefault("task_timeout", "30m")
	v.SetDefault("task_release_after", "45m")
	v.SetDefault("task_cleanup_interval", "1h")
	v.SetDefault("task_retention_duration", "24h")

	// Session defaults
	v.SetDefault("session_ttl", "2h")
	v.SetDefault("session_lifetime", "24h")
	v.SetDefault("session_secret", "") // Auto-generated if empty
	v.SetDefault("session_secure_cookies", true)

	// Job history defaults
	v.SetDefault("jobs_retention_days", 30)
	v.SetDefault("jobs_cleanup_schedule", "0 * * * *") // Hourly at :00

	return &Config{
		HTTP: HTTP{
			Port:           v.GetInt32("PORT"),
			Host:           v.GetString("HOST"),
			MaxUploadBytes: v.GetInt64("MAX_UPLOAD_BYTES"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Render: Render{
			DPI: v.GetFloat64("RENDER_DPI"),
		},
		Batch: Batch{
			ChunkSize:   v.GetInt("BATCH_CHUNK_SIZE"),
			Concurrency: v.GetInt("BATCH_CONCURRENCY"),
			YieldDelay:  v.GetDuration("BATCH_YIELD_DELAY"),
		},
		Tasks: Tasks{
			Enabled:           v.GetBool("TASKS_ENABLED"),
			Workers:           v.GetInt("TASK_WORKERS"),
			MaxRetries:        v.GetInt("TASK_MAX_RETRIES"),
			RetryDelay:        v.GetDuration("TASK_RETRY_DELAY"),
			TaskTimeout:       v.GetDuration("TASK_TIMEOUT"),
			ReleaseAfter:      v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval:   v.GetDuration("TASK_CLEANUP_INTERVAL"),
			RetentionDuration: v.GetDuration("TASK_RETENTION_DURATION"),
		},
		Sessions: Sessions{
			TTL:           v.GetDuration("SESSION_TTL"),
			Lifetime:      v.GetDuration("SESSION_LIFETIME"),
			Secret:        v.GetString("SESSION_SECRET"),
			SecureCookies: v.GetBool("SESSION_SECURE_COOKIES"),
		},
		Jobs: Jobs{
			RetentionDays:   v.GetInt("JOBS_RETENTION_DAYS"),
			CleanupSchedule: v.GetString("JOBS_CLEANUP_SCHEDULE"),
		},
	}
}
