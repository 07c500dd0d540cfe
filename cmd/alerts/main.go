package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"stockwatch/internal/bootstrap"
	"stockwatch/internal/config"
	"stockwatch/internal/modules/alerts"
	"stockwatch/internal/server"
	"stockwatch/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallbackLog := logger.New(logger.Config{Level: "error"})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.ForService(logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	}), "alerts")

	log.Info().Msg("Starting Alert Management Service")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Shared infrastructure clients, constructed once and held for the
	// process lifetime
	priceQueue, err := bootstrap.NewQueue(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize price queue")
	}
	alertCache, err := bootstrap.NewCache(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize cache")
	}
	conditionStore, err := bootstrap.NewConditionStore(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize condition store")
	}

	// The evaluator runs as its own background task, independent of the
	// request-serving path
	evaluator := alerts.NewEvaluator(alerts.EvaluatorConfig{
		Queue:    priceQueue,
		Store:    conditionStore,
		Cache:    alertCache,
		AlertTTL: cfg.AlertTTL,
		Log:      log,
	})
	go evaluator.Run(ctx)

	handlers := alerts.NewHandlers(conditionStore, alertCache, log)

	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	handlers.RegisterRoutes(router)

	srv := server.New("alert-management", cfg.AlertsPort, router, log)
	go func() {
		if err := srv.Start(); err != nil {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Alert Management Service stopped")
}
