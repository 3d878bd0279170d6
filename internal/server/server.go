// Package server wires the gin router and runs the HTTP server.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/cristianadrielbraun/qrgen/internal/capacity"
	"github.com/cristianadrielbraun/qrgen/internal/config"
	"github.com/cristianadrielbraun/qrgen/internal/guard"
	"github.com/cristianadrielbraun/qrgen/internal/handlers"
	"github.com/cristianadrielbraun/qrgen/internal/logging"
)

// NewRouter registers every route. Only generate and qr sit behind the
// origin guard.
func NewRouter(cfg config.Config, logger *slog.Logger, enc capacity.Encoder) *gin.Engine {
	r := gin.New()
	r.Use(logging.Middleware(logger))
	r.Use(gin.Recovery())
	r.Use(limitBody(cfg.MaxBodyBytes))

	// Static assets
	r.Static("/web/static", "web/static")

	h := handlers.New(enc, handlers.Options{ServiceName: cfg.ServiceName, Logger: logger})
	gate := guard.Middleware(guard.New(cfg.AllowedAPIKey), logger)

	// API routes
	api := r.Group("/api")
	{
		api.POST("/generate", gate, h.Generate)
		api.GET("/qr", gate, h.QRCode)
		api.POST("/check-capacity", h.CheckCapacity)
		api.GET("/health", h.Health)
	}

	// Pages
	r.GET("/", h.Home)
	r.GET("/sitemap.xml", h.SitemapXML)

	return r
}

func limitBody(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		}
		c.Next()
	}
}

// Run serves handler until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context, cfg config.Config, handler http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		logger.Info("shutting down", slog.Duration("timeout", cfg.ShutdownTimeout))
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
