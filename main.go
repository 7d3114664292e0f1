package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"finhub-engine/config"
	httpLayer "finhub-engine/http"
	"finhub-engine/repository"
	"finhub-engine/service"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	var cache repository.CacheRepository = repository.NewMemoryCache(cfg.CacheTTL, cfg.CacheMaxEntries)
	if cfg.RedisAddr != "" {
		redisCache, err := repository.NewRedisCache(context.Background(), cfg.RedisAddr, cfg.CacheTTL)
		if err != nil {
			logger.Warnf("Redis unavailable, continuing with in-memory cache: %v", err)
		} else {
			defer redisCache.Close()
			cache = redisCache
		}
	}

	handlers := httpLayer.Handlers{
		Debt:      httpLayer.NewDebtHandler(service.NewAmortizationService(logger), cache, logger),
		Wealth:    httpLayer.NewWealthHandler(service.NewGrowthService(logger), cache, logger),
		Liquidity: httpLayer.NewLiquidityHandler(service.NewLiquidityService(logger, nil), cache, logger),
		Health:    httpLayer.NewHealthScoreHandler(service.NewHealthService(logger, nil), cache, logger),
		Loan:      httpLayer.NewLoanHandler(service.NewLoanService(logger), cache, logger),
		QuickFix:  httpLayer.NewQuickFixHandler(repository.NewTransferGatewayMemory(), logger),
	}

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimitCapacity, cfg.RateLimitWindow, cfg.RateLimitSweep)
	defer rateLimiter.Stop()

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      httpLayer.NewRouter(handlers, rateLimiter, logger),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Infof("Starting server on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		logger.Errorf("Error starting server: %v", err)
		return
	case <-quit:
		logger.Info("Shutting down server...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("Error during server shutdown: %v", err)
	}

	logger.Info("Server exited")
}
