package geocoding

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/UnknownOlympus/creche/internal/models"
)

// BANBaseURL is the search endpoint of the French national address base (Base Adresse Nationale).
const BANBaseURL = "https://api-adresse.data.gouv.fr/search/"

// BANProvider implements the Provider interface using the Base Adresse Nationale API.
// The service is free and needs no API key.
type BANProvider struct {
	client  HTTPClient   // HTTP client for making requests
	baseURL string       // Base URL for the BAN search endpoint
	log     *slog.Logger // Logger for logging operations
}

// banResponse is the GeoJSON feature collection returned by the BAN search endpoint.
type banResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"` // [lon, lat]
		} `json:"geometry"`
		Properties struct {
			Label string `json:"label"`
		} `json:"properties"`
	} `json:"features"`
}

// NewBANProvider creates a new BAN geocoding provider with the given request timeout.
func NewBANProvider(timeout time.Duration, log *slog.Logger) *BANProvider {
	return &BANProvider{
		client:  &http.Client{Timeout: timeout},
		baseURL: BANBaseURL,
		log:     log,
	}
}

// NewBANProviderWithClient creates a BAN provider with a custom HTTP client.
func NewBANProviderWithClient(client HTTPClient, log *slog.Logger) *BANProvider {
	return &BANProvider{
		client:  client,
		baseURL: BANBaseURL,
		log:     log,
	}
}

// Resolve converts an address into coordinates and the canonical BAN label.
func (bp *BANProvider) Resolve(ctx context.Context, address string) (*models.ResolvedAddress, error) {
	const coordsListLength = 2

	bp.log.DebugContext(ctx, "Geocoding using BAN", "address", address)

	reqURL, err := url.Parse(bp.baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse base URL: %w", ErrGeocodingUnavailable, err)
	}

	query := reqURL.Query()
	query.Set("q", address)
	query.Set("limit", "1")
	reqURL.RawQuery = query.Encode()

	header := http.Header{}
	header.Set("Accept", "application/json")

	var result banResponse
	if err = getJSON(ctx, bp.client, bp.log, "ban", reqURL.String(), header, &result); err != nil {
		return nil, err
	}

	if len(result.Features) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrAddressNotFound, address)
	}

	feature := result.Features[0]
	coords := feature.Geometry.Coordinates
	if len(coords) != coordsListLength {
		return nil, fmt.Errorf("%w: ban API returned invalid coordinates", ErrGeocodingUnavailable)
	}

	label := strings.TrimSpace(feature.Properties.Label)
	if label == "" {
		label = strings.TrimSpace(address)
	}

	bp.log.InfoContext(ctx, "BAN found result", "address", address, "label", label, "lat", coords[1], "lon", coords[0])

	return &models.ResolvedAddress{
		Coordinates: models.Coordinates{Longitude: coords[0], Latitude: coords[1]},
		Label:       label,
	}, nil
}
