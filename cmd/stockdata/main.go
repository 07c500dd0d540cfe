package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"stockwatch/internal/bootstrap"
	"stockwatch/internal/config"
	"stockwatch/internal/modules/stockdata"
	"stockwatch/internal/scheduler"
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
	}), "stockdata")

	log.Info().Msg("Starting Stock Data Service")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	priceQueue, err := bootstrap.NewQueue(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize price queue")
	}
	priceCache, err := bootstrap.NewCache(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize cache")
	}
	portfolioStore, err := bootstrap.NewPortfolioStore(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize portfolio store")
	}

	publisher := stockdata.NewPublisher(stockdata.PublisherConfig{
		Symbols:  portfolioStore,
		Fetcher:  stockdata.NewYahooFetcher(log),
		Queue:    priceQueue,
		Cache:    priceCache,
		PriceTTL: cfg.PriceTTL,
		Log:      log,
	})

	sched := scheduler.New(log)
	if err := sched.AddJob(fmt.Sprintf("@every %s", cfg.FetchInterval), publisher); err != nil {
		log.Fatal().Err(err).Msg("Failed to register price publisher job")
	}
	sched.Start()

	// Publish once at startup instead of waiting a full interval
	if err := sched.RunNow(publisher); err != nil {
		log.Error().Err(err).Msg("Initial publish failed")
	}

	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	stockdata.RegisterRoutes(router)

	srv := server.New("stock-data", cfg.StockDataPort, router, log)
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
	sched.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Stock Data Service stopped")
}
