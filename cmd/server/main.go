package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Sarahknupp/controlai-gerenciador-sub000/internal/config"
	"github.com/Sarahknupp/controlai-gerenciador-sub000/internal/infra"
	"github.com/Sarahknupp/controlai-gerenciador-sub000/internal/repository"
	"github.com/Sarahknupp/controlai-gerenciador-sub000/internal/router"
	"github.com/Sarahknupp/controlai-gerenciador-sub000/internal/worker"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	if err := infra.RunMigrations(db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// One breaker per sidecar so a downed fiscal authority never blocks
	// payment capture, and vice versa.
	fiscalCB := infra.NewCircuitBreaker(infra.DefaultCBConfig())
	paymentCB := infra.NewCircuitBreaker(infra.DefaultCBConfig())

	// Worker pool + retry cron for pending fiscal documents
	fiscalClient := infra.NewFiscalClient(cfg.FiscalSidecarURL, fiscalCB)
	fiscalRepo := repository.NewFiscalRepository(db)
	saleRepo := repository.NewSaleRepository(db)

	fiscalWorker := worker.NewFiscalWorker(fiscalClient, fiscalRepo, saleRepo)
	worker.StartWorkerPool(ctx, rdb, cfg.WorkerPoolSize, fiscalWorker)
	worker.StartRetryCron(ctx, worker.RetryCronConfig{
		FiscalRepo: fiscalRepo,
		SaleRepo:   saleRepo,
		Fiscal:     fiscalClient,
		CB:         fiscalCB,
		RDB:        rdb,
	})

	r := router.New(cfg, db, rdb, fiscalCB, paymentCB)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("pos core listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
