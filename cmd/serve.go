package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/kozaktomas/photo-labels/internal/constants"
	"github.com/kozaktomas/photo-labels/internal/labeler"
	"github.com/kozaktomas/photo-labels/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	Long: `Start the label layout HTTP API.
Scenes can always be posted to /api/v1/layout and /api/v1/render. When
PHOTOPRISM_URL is set, photos and albums are served from PhotoPrism too.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().Int("port", 0, "Port to listen on (default $LABELS_PORT or 8085)")
	serveCmd.Flags().String("host", "", "Host to bind to (default $LABELS_HOST or 127.0.0.1)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger := loggerFromContext(ctx)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if port := mustGetInt(cmd, "port"); port > 0 {
		cfg.Server.Port = port
	}
	if host := mustGetString(cmd, "host"); host != "" {
		cfg.Server.Host = host
	}

	lb, err := labeler.New(cfg.Labels, logger)
	if err != nil {
		return err
	}
	defer lb.Close()

	var photos labeler.Source
	if cfg.PhotoPrism.URL != "" {
		pp, err := connectPhotoPrism(ctx, cfg)
		if err != nil {
			return err
		}
		defer func() {
			logoutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = pp.Logout(logoutCtx)
		}()
		photos = pp
	} else {
		logger.Warn("PHOTOPRISM_URL is not set, photo routes are disabled")
	}

	server := web.NewServer(cfg, lb, photos, logger)

	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("error during shutdown", "err", err)
		}
	}()

	if err := server.Start(); err != nil {
		return fmt.Errorf("starting server: %w", err)
	}
	// Start returns as soon as Shutdown begins; wait for in-flight requests.
	<-shutdownDone
	return nil
}
