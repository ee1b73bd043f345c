// Package iohttp exposes imports, sources and family graph queries over
// HTTP with gin.
package iohttp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gnames/gedgraph/pkg/config"
	"github.com/gnames/gedgraph/pkg/family"
)

// shutdownTimeout limits how long in-flight requests may finish after
// the server is asked to stop.
const shutdownTimeout = 10 * time.Second

// RouterConfig holds the collaborators the handlers call into.
type RouterConfig struct {
	Config    *config.Config
	Catalog   family.Catalog
	Importer  family.Importer
	Traverser family.Traverser
	Searcher  family.Searcher
}

// NewRouter creates the gin engine with all routes.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Content-Type", "X-Requested-With"},
		MaxAge:          12 * time.Hour,
	}))

	h := &handler{RouterConfig: cfg}

	router.GET("/healthcheck", healthCheck)

	api := router.Group("/api/v1")
	{
		api.POST("/gedcom/upload", h.upload)

		api.GET("/sources", h.sources)
		api.GET("/sources/:id", h.source)
		api.DELETE("/sources/:id", h.deleteSource)
		api.GET("/sources/:id/statistics", h.sourceStatistics)

		api.GET("/persons", h.persons)
		api.GET("/persons/search", h.search)
		api.GET("/persons/:id", h.person)
		api.GET("/persons/:id/family-tree", h.tree)
		api.GET("/persons/:id/ancestors", h.ancestors)
		api.GET("/persons/:id/descendants", h.descendants)
		api.GET("/persons/:id/path/:other", h.path)
	}
	return router
}

// Run serves router on port until ctx is cancelled.
func Run(ctx context.Context, port int, router http.Handler) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("HTTP server started", "port", port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return ServerStartError(port, err)
	case <-ctx.Done():
		shutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		slog.Info("HTTP server stopping", "port", port)
		return srv.Shutdown(shutCtx)
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.Info("HTTP request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
		)
	}
}

func healthCheck(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}
