package cmd

import (
	"context"
	"errors"
	"math/rand"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/99minutos/landed-cost/internal/api"
	"github.com/99minutos/landed-cost/internal/core/service"
	"github.com/99minutos/landed-cost/internal/infrastructure/queue"
	"github.com/99minutos/landed-cost/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the landed cost HTTP API",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	picker := service.RandomCarrier(rand.New(rand.NewSource(time.Now().UnixNano())))
	eng, err := buildEngine(ctx, cfg, picker, log)
	if err != nil {
		return err
	}
	defer eng.Close(context.Background())

	pool := queue.NewPool(cfg.BatchWorkers, eng.costs, logger.Component("batch"))
	pool.Start(ctx)

	e := api.NewRouter(api.RouterDeps{
		Service:   eng.costs,
		Batch:     pool,
		Cache:     eng.cache,
		Readiness: eng.readiness,
		JWTSecret: cfg.JWTSecret,
		Logger:    logger.Component("http"),
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("cache", cfg.CacheBackend).
			Str("reference", cfg.ReferenceBackend).
			Msg("landed cost API listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
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
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
