package geocoding

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/UnknownOlympus/creche/internal/models"
	"golang.org/x/time/rate"
)

// NominatimBaseURL is the public OpenStreetMap Nominatim search endpoint.
const NominatimBaseURL = "https://nominatim.openstreetmap.org/search"

// nominatimUserAgent must identify the application per the Nominatim usage policy:
// https://operations.osmfoundation.org/policies/nominatim/
const nominatimUserAgent = "Creche-Discovery-Service/1.0 (https://github.com/UnknownOlympus/creche)"

// NominatimProvider implements the Provider interface using OpenStreetMap's Nominatim API.
// This is a free geocoding service with usage limits (1 request/second for fair use).
type NominatimProvider struct {
	client    HTTPClient    // HTTP client for making requests
	baseURL   string        // Base URL for the Nominatim API
	log       *slog.Logger  // Logger for logging operations
	limiter   *rate.Limiter // Keeps the service under the fair-use request rate
	userAgent string
}

// nominatimResponse represents the JSON response from Nominatim API.
type nominatimResponse struct {
	Lat         string `json:"lat"` // Latitude as string
	Lon         string `json:"lon"` // Longitude as string
	DisplayName string `json:"display_name"`
}

// NewNominatimProvider creates a new Nominatim geocoding provider.
// Uses the public Nominatim API endpoint and limits calls to one per second.
func NewNominatimProvider(timeout time.Duration, log *slog.Logger) *NominatimProvider {
	return NewNominatimProviderWithClient(
		&http.Client{Timeout: timeout},
		rate.NewLimiter(rate.Every(time.Second), 1),
		log,
	)
}

// NewNominatimProviderWithClient creates a Nominatim provider with a custom HTTP client and limiter.
// Useful for testing with mocked HTTP clients.
func NewNominatimProviderWithClient(client HTTPClient, limiter *rate.Limiter, log *slog.Logger) *NominatimProvider {
	return &NominatimProvider{
		client:    client,
		baseURL:   NominatimBaseURL,
		log:       log,
		limiter:   limiter,
		userAgent: nominatimUserAgent,
	}
}

// Resolve converts an address to coordinates using a single Nominatim search.
func (np *NominatimProvider) Resolve(ctx context.Context, address string) (*models.ResolvedAddress, error) {
	np.log.DebugContext(ctx, "Geocoding using Nominatim", "address", address)

	if err := np.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: rate limit wait: %w", ErrGeocodingUnavailable, err)
	}

	reqURL, err := url.Parse(np.baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse base URL: %w", ErrGeocodingUnavailable, err)
	}

	query := reqURL.Query()
	query.Set("q", address)
	query.Set("format", "json")
	query.Set("limit", "1") // Only need the top result
	query.Set("accept-language", "fr,en")
	reqURL.RawQuery = query.Encode()

	header := http.Header{}
	header.Set("User-Agent", np.userAgent)
	header.Set("Accept-Language", "fr,en")

	var results []nominatimResponse
	if err = getJSON(ctx, np.client, np.log, "nominatim", reqURL.String(), header, &results); err != nil {
		return nil, err
	}

	if len(results) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrAddressNotFound, address)
	}

	top := results[0]
	np.log.DebugContext(ctx, "Nominatim found result", "lat", top.Lat, "lon", top.Lon)

	lat, err := strconv.ParseFloat(top.Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid latitude: %s", ErrGeocodingUnavailable, top.Lat)
	}
	lon, err := strconv.ParseFloat(top.Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid longitude: %s", ErrGeocodingUnavailable, top.Lon)
	}

	label := strings.TrimSpace(top.DisplayName)
	if label == "" {
		label = strings.TrimSpace(address)
	}

	return &models.ResolvedAddress{
		Coordinates: models.Coordinates{Latitude: lat, Longitude: lon},
		Label:       label,
	}, nil
}
