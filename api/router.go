// Package api wires the HTTP surface over the orchestrator.
package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/use-agent/cookiefetch/api/handler"
	"github.com/use-agent/cookiefetch/api/middleware"
	"github.com/use-agent/cookiefetch/config"
	"github.com/use-agent/cookiefetch/fetcher"
)

// Version is the reported service version.
const Version = "1.0.0"

// NewRouter creates a configured Gin engine with all routes and middleware.
//
// Middleware chain:
//
//	Global:  Recovery → Logger
//	API:     Auth (if enabled) → RateLimit
//
// Health endpoint is intentionally outside auth so monitoring probes always work.
func NewRouter(o *fetcher.Orchestrator, cfg *config.Config, startTime time.Time) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())

	v1 := r.Group("/api/v1")

	// Health — no auth required.
	v1.GET("/health", handler.Health(startTime, Version))

	// Protected group — auth + rate limit.
	protected := v1.Group("")
	if cfg.Auth.Enabled {
		protected.Use(middleware.Auth(cfg.Auth.APIKeys))
	}
	protected.Use(middleware.RateLimit(cfg.RateLimit))

	protected.POST("/fetch", handler.Fetch(o))
	protected.POST("/download", handler.Download(o))

	return r
}
