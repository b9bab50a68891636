package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/UnknownOlympus/creche/internal/discovery"
	"github.com/UnknownOlympus/creche/internal/facilities"
	"github.com/UnknownOlympus/creche/internal/geocoding"
	"github.com/UnknownOlympus/creche/internal/metrics"
	"github.com/UnknownOlympus/creche/internal/models"
)

// Supported search radius, in kilometers.
const (
	MinRadiusKm = 1.0
	MaxRadiusKm = 100.0
)

var (
	// ErrInvalidRadius is returned when the radius is outside [MinRadiusKm, MaxRadiusKm].
	ErrInvalidRadius = errors.New("radius must be between 1 and 100 km")
	// ErrInvalidAddress is returned for a blank address.
	ErrInvalidAddress = errors.New("address must not be empty")
)

// DiscoveryService resolves an address and lists the childcare facilities around it.
// It keeps no state between calls, so one instance serves concurrent requests.
type DiscoveryService struct {
	log          *slog.Logger       // Logger for logging service activities
	geocoder     geocoding.Provider // Resolves the search origin
	providerName string             // Name of the geocoding provider for metrics labeling
	source       facilities.Source  // Geodata source for candidates
	metrics      *metrics.Metrics   // Metrics for tracking service performance
}

// NewDiscoveryService creates a new instance of DiscoveryService.
func NewDiscoveryService(
	log *slog.Logger,
	geocoder geocoding.Provider,
	providerName string,
	source facilities.Source,
	metrics *metrics.Metrics,
) *DiscoveryService {
	return &DiscoveryService{
		log:          log,
		geocoder:     geocoder,
		providerName: providerName,
		source:       source,
		metrics:      metrics,
	}
}

// Discover resolves address and returns the facilities within radiusKm of it,
// closest first. A geocoding failure fails the whole call and no facility query
// is made. A facility source outage is not an error: the list is just empty.
func (ds *DiscoveryService) Discover(
	ctx context.Context,
	address string,
	radiusKm float64,
) (*models.ResolvedAddress, []models.Facility, error) {
	if math.IsNaN(radiusKm) || radiusKm < MinRadiusKm || radiusKm > MaxRadiusKm {
		ds.metrics.Discoveries.WithLabelValues("invalid_input").Inc()
		return nil, nil, fmt.Errorf("%w: got %v", ErrInvalidRadius, radiusKm)
	}
	if strings.TrimSpace(address) == "" {
		ds.metrics.Discoveries.WithLabelValues("invalid_input").Inc()
		return nil, nil, ErrInvalidAddress
	}

	startTime := time.Now()
	origin, err := ds.geocoder.Resolve(ctx, address)
	ds.metrics.GeocoderSeconds.WithLabelValues(ds.providerName).Observe(time.Since(startTime).Seconds())
	if err != nil {
		ds.metrics.Discoveries.WithLabelValues(failureStatus(err)).Inc()
		ds.log.WarnContext(ctx, "Failed to resolve search origin", "address", address, "error", err)
		return nil, nil, fmt.Errorf("resolve %q: %w", address, err)
	}

	ds.log.DebugContext(ctx, "Search origin resolved",
		"label", origin.Label,
		"lat", origin.Latitude,
		"lon", origin.Longitude)

	sourceStart := time.Now()
	raw := ds.source.FetchCandidates(ctx, origin.Coordinates, radiusKm*1000)
	sourceDuration := time.Since(sourceStart)

	unique := discovery.Dedupe(raw)
	enriched := make([]models.Facility, 0, len(unique))
	for _, candidate := range unique {
		enriched = append(enriched, discovery.Enrich(*origin, candidate))
	}
	ranked := discovery.Rank(enriched)

	ds.metrics.Discoveries.WithLabelValues("success").Inc()
	ds.metrics.FacilitiesReturned.Observe(float64(len(ranked)))
	ds.log.InfoContext(ctx, "Discovery finished",
		"origin", origin.Label,
		"radius_km", radiusKm,
		"candidates", len(raw),
		"unique", len(unique),
		"returned", len(ranked),
		"source_ms", sourceDuration.Milliseconds(),
		"total_ms", time.Since(startTime).Milliseconds())

	return origin, ranked, nil
}

func failureStatus(err error) string {
	switch {
	case errors.Is(err, geocoding.ErrAddressNotFound):
		return "address_not_found"
	case errors.Is(err, geocoding.ErrGeocodingUnavailable):
		return "geocoding_unavailable"
	default:
		return "failure"
	}
}
