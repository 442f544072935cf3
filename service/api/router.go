// Package api exposes a running simulation over HTTP.
package api

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

// NewRouter builds the gin engine with every route registered
func NewRouter(simulator Simulator, logger *slog.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger))
	SetupRoutes(router, NewHandler(simulator))
	return router
}

// SetupRoutes registers the handler routes
func SetupRoutes(router gin.IRouter, handler *Handler) {
	router.GET("/health", handler.Health)
	router.GET("/snapshot", handler.Snapshot)
	router.GET("/statistics", handler.Statistics)
	router.GET("/history", handler.History)
	router.POST("/cycles", handler.Cycles)

	processes := router.Group("/processes")
	{
		processes.GET("", handler.Processes)
		processes.POST("/:id/suspend", handler.Suspend)
		processes.POST("/:id/resume", handler.Resume)
	}
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		started := time.Now()
		c.Next()
		if logger == nil {
			return
		}
		logger.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"elapsed", time.Since(started))
	}
}
