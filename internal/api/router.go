// Package api exposes the discovery pipeline, health checks and metrics over HTTP.
package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/UnknownOlympus/creche/internal/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Discoverer runs one facility discovery.
type Discoverer interface {
	Discover(ctx context.Context, address string, radiusKm float64) (*models.ResolvedAddress, []models.Facility, error)
}

// Pinger checks a backing dependency for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// db may be nil when no database is configured.
func NewRouter(
	log *slog.Logger,
	discoverer Discoverer,
	defaultRadiusKm float64,
	db Pinger,
	reg *prometheus.Registry,
) http.Handler {
	mux := http.NewServeMux()

	discoverHandler := &DiscoverHandler{
		discoverer:      discoverer,
		defaultRadiusKm: defaultRadiusKm,
		log:             log,
	}

	mux.HandleFunc("GET /api/v1/discover", discoverHandler.Discover)
	mux.HandleFunc("GET /healthz", healthHandler(log, db))
	mux.Handle("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	return loggingMiddleware(log, mux)
}

func healthHandler(log *slog.Logger, db Pinger) http.HandlerFunc {
	return func(writer http.ResponseWriter, req *http.Request) {
		ctx := req.Context()
		log.DebugContext(ctx, "Performing health checks...")

		status, body := http.StatusOK, "OK"
		if db != nil {
			if err := db.Ping(ctx); err != nil {
				status, body = http.StatusServiceUnavailable, "DB ping failed"
			}
		}

		writer.WriteHeader(status)
		if _, err := writer.Write([]byte(body)); err != nil {
			log.ErrorContext(ctx, "failed to write reply", "error", err)
		}

		log.DebugContext(ctx, "Health checks completed", "status", status)
	}
}
