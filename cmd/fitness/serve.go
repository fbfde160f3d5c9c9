package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"fitness-tracker-backend/db"
	"fitness-tracker-backend/internal/config"
	"fitness-tracker-backend/internal/logger"
	"fitness-tracker-backend/internal/metrics"
	"fitness-tracker-backend/internal/server"
)

const (
	serviceName     = "fitness-api"
	shutdownTimeout = 30 * time.Second
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (overrides HTTP_ADDR)")
	_ = settings.BindPFlag("HTTP_ADDR", serveCmd.Flags().Lookup("addr"))
	rootCmd.AddCommand(serveCmd)
}

func serve(ctx context.Context) error {
	cfg, err := config.Load(settings)
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Env, serviceName)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Infow("Starting fitness tracker API",
		"env", cfg.Env,
		"addr", cfg.HTTPAddr,
		"db_driver", cfg.Database.Driver,
	)

	m, metricsHandler, err := metrics.Setup(serviceName)
	if err != nil {
		return fmt.Errorf("failed to setup metrics: %w", err)
	}

	conn, err := db.Connect(cfg.DB())
	if err != nil {
		return err
	}
	store := db.NewStore(conn)
	defer store.Close()
	log.Infow("Database initialized")

	log.Infow("CORS configured", "allowed_origins", cfg.Security.CORSAllowedOrigins)

	srv := server.NewServer(cfg, store, log, m, metricsHandler).HTTPServer()

	errCh := make(chan error, 1)
	go func() {
		log.Infow("HTTP server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Infow("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("Server forced to shutdown", "error", err)
		return err
	}
	log.Infow("Server exited")
	return nil
}
