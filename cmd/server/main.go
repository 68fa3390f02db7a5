package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mlourenco/stockfolio-backend/internal/adapter/httpapi"
	"github.com/mlourenco/stockfolio-backend/internal/adapter/quotesource"
	"github.com/mlourenco/stockfolio-backend/internal/adapter/repository/postgres"
	"github.com/mlourenco/stockfolio-backend/internal/config"
	"github.com/mlourenco/stockfolio-backend/internal/usecase/portfolio"
	"github.com/mlourenco/stockfolio-backend/internal/usecase/pricing"
)

func main() {
	// 1. Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	logger := newLogger(cfg.Logging)
	slog.SetDefault(logger)

	// 2. Setup database
	db, err := postgres.NewDB(cfg.Database.ConnectionString())
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// 3. Initialize repositories
	portfolioRepo := postgres.NewPortfolioRepository(db)
	holdingRepo := postgres.NewHoldingRepository(db)
	quoteRepo := postgres.NewQuoteRepository(db)

	// 4. Initialize services (use cases)
	cache := pricing.NewCache(cfg.Pricing.CacheTTL)
	limiter := pricing.NewLimiter(cfg.Pricing.RateLimit, cfg.Pricing.RatePeriod)
	yahoo := quotesource.NewYahooClient(cfg.Pricing.ProviderBaseURL, cfg.Pricing.RequestTimeout)
	priceService := pricing.NewService(cache, limiter, yahoo, quoteRepo, logger)
	portfolioService := portfolio.NewService(portfolioRepo, holdingRepo, priceService)

	// 5. Start HTTP server
	server := httpapi.NewServer(&httpapi.ServerConfig{
		Host:            cfg.Server.Host,
		Port:            cfg.Server.Port,
		APIToken:        cfg.Server.APIToken,
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	}, portfolioService, priceService, logger)

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Start()
	}()

	waitForShutdown(server, cfg, logger, errChan)
}

// newLogger builds the process logger from the logging configuration
func newLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

// waitForShutdown waits for SIGTERM or SIGINT and gracefully shuts down the server
func waitForShutdown(server *httpapi.Server, cfg *config.Config, logger *slog.Logger, errChan <-chan error) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	select {
	case sig := <-sigChan:
		logger.Info("received signal, shutting down gracefully", "signal", sig.String())
	case err := <-errChan:
		if err != nil {
			logger.Error("server stopped unexpectedly", "error", err)
			os.Exit(1)
		}
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}
