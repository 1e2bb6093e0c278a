package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/damon-houk/prevday-exchange-rate/internal/application/service"
	"github.com/damon-houk/prevday-exchange-rate/internal/infrastructure/api"
	"github.com/damon-houk/prevday-exchange-rate/internal/infrastructure/cache"
	"github.com/damon-houk/prevday-exchange-rate/internal/infrastructure/config"
	"github.com/damon-houk/prevday-exchange-rate/internal/infrastructure/handler"
	"github.com/damon-houk/prevday-exchange-rate/internal/infrastructure/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to parse log level: %v", err)
	}

	appLogger, logFile, err := logger.Open(cfg.LogFile, level)
	if err != nil {
		log.Fatalf("Failed to open log: %v", err)
	}
	defer logFile.Close()
	logger.SetDefaultLogger(appLogger)

	if err := run(cfg, appLogger); err != nil {
		appLogger.Error("Service stopped with error", map[string]interface{}{
			"error": err.Error(),
		})
		logFile.Close()
		os.Exit(1)
	}
}

func run(cfg *config.Config, appLogger *logger.JSONLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appLogger.Info("Starting previous day exchange rate service", map[string]interface{}{
		"nbp_base_url":     cfg.NBPBaseURL,
		"upstream_timeout": cfg.UpstreamTimeout.String(),
		"lookback_days":    cfg.LookbackDays,
	})

	nbpAPI := api.NewLoggingRateAPI(
		api.NewNBPAPIClient(cfg.NBPBaseURL, cfg.UpstreamTimeout, nil),
		appLogger.WithField("component", "nbp_api"),
	)

	// Serving without a catalog would reject every request
	catalog, err := cache.BuildCurrencyCatalog(ctx, nbpAPI)
	if err != nil {
		return err
	}

	appLogger.Info("Currency catalog built", map[string]interface{}{
		"currencies": catalog.Codes(),
	})

	resolver := service.NewRateResolver(catalog, nbpAPI, cfg.LookbackDays)
	router := handler.NewRouter(resolver, catalog, appLogger)

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		appLogger.Info("Server listening", map[string]interface{}{
			"addr": server.Addr,
		})
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	appLogger.Info("Shutting down server", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}
