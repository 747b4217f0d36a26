package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Nixie-Tech-LLC/athan/internal/catalog"
	adminapi "github.com/Nixie-Tech-LLC/athan/internal/http/api/admin/endpoints"
	"github.com/Nixie-Tech-LLC/athan/internal/publish"
	"github.com/Nixie-Tech-LLC/athan/internal/scheduler"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Generate the configured year and serve the read and admin APIs",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default SERVER_ADDRESS)")
}

func runServe(cmd *cobra.Command, args []string) error {
	if serveAddr != "" {
		cfg.ServerAddress = serveAddr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	b, err := buildPipeline(ctx, cfg)
	if err != nil {
		return err
	}
	defer b.Close()

	cat := catalog.New()
	svc := &publish.Service{Pipeline: b.pipeline, Base: cfg.Generation, Catalog: cat}

	// the server still starts without data; /healthz shows which years are loaded
	if _, err := svc.Regenerate(ctx, 0); err != nil {
		log.Error().Err(err).Int("year", cfg.Generation.Year).Msg("initial generation failed")
	}

	if cfg.RegenerateCron != "" {
		c, err := scheduler.SetupCron(cfg.RegenerateCron, func(ctx context.Context) error {
			_, err := svc.Regenerate(ctx, 0)
			return err
		})
		if err != nil {
			return err
		}
		defer c.Stop()
	}

	var runs adminapi.RunLister
	if b.store != nil {
		runs = b.store
	}

	if cfg.LogLevel != "debug" && cfg.LogLevel != "trace" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	RegisterRoutes(r, cfg, cat, svc, runs)

	srv := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.ServerAddress).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
