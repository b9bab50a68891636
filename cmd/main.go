package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/UnknownOlympus/creche/internal/api"
	"github.com/UnknownOlympus/creche/internal/config"
	"github.com/UnknownOlympus/creche/internal/facilities"
	"github.com/UnknownOlympus/creche/internal/geocoding"
	"github.com/UnknownOlympus/creche/internal/metrics"
	"github.com/UnknownOlympus/creche/internal/repository"
	"github.com/UnknownOlympus/creche/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Constants for different environment types.
const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

// main is the entry point of the application.
func main() {
	// Create a context that will be canceled when an interrupt signal is received.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoad()
	logger := setupLogger(cfg.Env)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(reg)

	providerConfig := geocoding.ProviderConfig{
		Type:      geocoding.ProviderType(cfg.ProviderType),
		APIKey:    cfg.APIKey,
		RateLimit: cfg.RateLimit,
		Timeout:   cfg.GeocoderTimeout,
		Logger:    logger,
	}

	geoProvider, err := geocoding.NewProvider(providerConfig)
	if err != nil {
		log.Fatalf("Failed to create geocoding provider: %v", err)
	}
	logger.InfoContext(ctx, "Geocoding provider initialized", "type", cfg.ProviderType)

	// The geocode cache is optional: without a database every search hits the provider.
	var pinger api.Pinger
	if cfg.Database.Enabled() {
		dtb, dbErr := repository.NewDatabase(
			ctx, cfg.Database.Host, cfg.Database.Port, cfg.Database.User, cfg.Database.Password, cfg.Database.Name,
		)
		if dbErr != nil {
			log.Fatalf("Failed to connect to DB: %v", dbErr)
		}
		defer dtb.Close()

		repo := repository.NewRepository(dtb, logger, cfg.CacheTTL)
		if err = repo.EnsureSchema(ctx); err != nil {
			log.Fatalf("Failed to prepare geocode cache: %v", err)
		}

		geoProvider = geocoding.NewCachedProvider(geoProvider, repo, appMetrics, logger)
		pinger = dtb
		logger.InfoContext(ctx, "Geocode cache enabled", "ttl", cfg.CacheTTL)
	}

	source := facilities.NewOverpassClient(cfg.Endpoints, cfg.SourceTimeout, appMetrics, logger)

	discoveryService := service.NewDiscoveryService(
		logger,
		geoProvider,
		cfg.ProviderType, // Provider name for metrics
		source,
		appMetrics,
	)

	router := api.NewRouter(logger, discoveryService, cfg.DefaultRadiusKm, pinger, reg)

	readTimeout := 5
	// Writes wait for the geocoder and possibly every facility endpoint in turn.
	writeTimeout := 4 * time.Minute
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(readTimeout) * time.Second,
		WriteTimeout: writeTimeout,
	}

	go func() {
		logger.InfoContext(ctx, "Starting HTTP server", "port", cfg.Port)
		if srvErr := server.ListenAndServe(); srvErr != nil && !errors.Is(srvErr, http.ErrServerClosed) {
			logger.ErrorContext(ctx, "HTTP server failed", "error", srvErr)
			stop()
		}
	}()

	logger.InfoContext(ctx, "Application started. Press Ctrl+C to stop.")

	// Wait for the context to be canceled (e.g., by Ctrl+C).
	<-ctx.Done()
	logger.InfoContext(ctx, "Shutdown signal received. Stopping application...")

	shutdownTimeout := 10 * time.Second
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err = server.Shutdown(shutdownCtx); err != nil {
		logger.ErrorContext(shutdownCtx, "Failed to shut down HTTP server", "error", err)
	}

	logger.InfoContext(shutdownCtx, "Application stopped gracefully.")
}

// setupLogger initializes and returns a logger based on the environment provided.
func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelDebug,
				AddSource: true,
			}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelInfo,
				AddSource: false,
			}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:       slog.LevelWarn,
				AddSource:   false,
				ReplaceAttr: dropTime,
			}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:       slog.LevelError,
				AddSource:   false,
				ReplaceAttr: dropTime,
			}),
		)

		log.Error(
			"The env parameter was not specified or was invalid. Logging will be minimal, by default.",
			slog.String("available_envs", "local, development, production"))
	}

	return log
}

func dropTime(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey {
		return slog.Attr{}
	}
	return a
}
