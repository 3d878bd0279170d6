package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/cristianadrielbraun/qrgen/internal/config"
	"github.com/cristianadrielbraun/qrgen/internal/logging"
	"github.com/cristianadrielbraun/qrgen/internal/qr"
	"github.com/cristianadrielbraun/qrgen/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Starts the QR API and generator page. Settings come from the environment and an optional .env file.`,
	RunE: func(c *cobra.Command, _ []string) error {
		return runServe(c.Context())
	},
}

func runServe(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	slog.SetDefault(logger)

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := handleSignals(ctx)
	defer cancel()

	gin.SetMode(gin.ReleaseMode)
	router := server.NewRouter(cfg, logger, qr.NewEncoder())

	logger.Info("starting",
		slog.String("service", cfg.ServiceName),
		slog.Bool("api_key_configured", cfg.AllowedAPIKey != ""),
	)
	if err := server.Run(ctx, cfg, router, logger); err != nil {
		logger.Error("server stopped", logging.Error(err))
		return err
	}
	logger.Info("stopped")
	return nil
}

// handleSignals cancels ctx on SIGINT or SIGTERM.
func handleSignals(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
}
