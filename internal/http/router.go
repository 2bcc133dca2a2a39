// Package http is the web transport: session resolution, CSRF, and the
// controllers behind the barcode generation API.
package http

import (
	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// Uses RouterConfig to receive all dependencies, improving testability
// and reducing parameter count.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Apply security headers to all responses
	router.Use(SecurityHeadersMiddleware())

	// CSRF must run before session so that session context is preserved
	if len(cfg.CSRFSecret) > 0 {
		router.Use(CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}

	// Session runs after CSRF so session context isn't overwritten by
	// CSRF's request replacement
	if cfg.Sessions != nil {
		router.Use(cfg.Sessions.SessionLoadSave())
	}

	// Create controllers with appropriate interfaces
	health := NewHealthController(cfg.Database, cfg.Store, cfg.Version)
	upload := NewUploadController(cfg.Sessions, cfg.MaxUploadBytes)
	entries := NewEntriesController(cfg.Sessions)
	settings := NewSettingsController(cfg.Sessions)
	generate := NewGenerateController(cfg.Sessions, cfg.TaskClient, cfg.RenderDPI)
	preview := NewPreviewController(cfg.Sessions, cfg.RenderDPI)
	export := NewExportController(cfg.Sessions)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// Code list and settings
	router.POST("/api/upload", upload.Upload)
	router.GET("/api/entries", entries.List)
	router.PUT("/api/settings/size", settings.UpdateSize)
	router.PUT("/api/settings/render", settings.UpdateRender)

	// Generation and export
	router.POST("/api/generate", generate.Start)
	router.GET("/api/generate/progress", generate.Progress)
	router.GET("/api/preview", preview.Render)
	router.GET("/api/export", export.Download)

	// Run history
	if cfg.Jobs != nil {
		jobs := NewJobsController(cfg.Jobs)
		router.GET("/api/jobs", jobs.List)
	}

	return router
}
