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
	"stockwatch/internal/modules/portfolio"
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
	}), "portfolio")

	log.Info().Msg("Starting Portfolio Management Service")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	priceCache, err := bootstrap.NewCache(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize cache")
	}
	portfolioStore, err := bootstrap.NewPortfolioStore(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize portfolio store")
	}

	service := portfolio.NewService(portfolioStore, priceCache, log)
	handlers := portfolio.NewHandlers(service, log)

	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	handlers.RegisterRoutes(router)

	srv := server.New("portfolio-management", cfg.PortfolioPort, router, log)
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

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Portfolio Management Service stopped")
}
