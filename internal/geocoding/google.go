package geocoding

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/UnknownOlympus/creche/internal/models"
	"googlemaps.github.io/maps"
)

// GoogleProvider is a struct that holds the client for Google Maps API
// and a logger for logging purposes. It is used to interact with the
// Google Maps geocoding services.
type GoogleProvider struct {
	client GoogleAPIClient // client is the Google Maps API client
	log    *slog.Logger    // log is the logger for logging operations
}

// GoogleAPIClient is the subset of *maps.Client used by GoogleProvider.
type GoogleAPIClient interface {
	Geocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error)
}

// NewGoogleProvider initializes a new GoogleProvider with the given client and logger.
func NewGoogleProvider(client GoogleAPIClient, log *slog.Logger) *GoogleProvider {
	return &GoogleProvider{client: client, log: log}
}

// Resolve takes a context and an address string as input, and returns the top
// Google Maps match with its formatted address as label.
// Client errors (transport, quota, invalid key) are reported as ErrGeocodingUnavailable.
func (gp *GoogleProvider) Resolve(ctx context.Context, address string) (*models.ResolvedAddress, error) {
	gp.log.DebugContext(ctx, "Geocoding using Google Maps", "address", address)

	req := maps.GeocodingRequest{Address: address}
	geocodeResponse, err := gp.client.Geocode(ctx, &req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to geocode address: %w", ErrGeocodingUnavailable, err)
	}

	if len(geocodeResponse) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrAddressNotFound, address)
	}

	top := geocodeResponse[0]
	label := strings.TrimSpace(top.FormattedAddress)
	if label == "" {
		label = strings.TrimSpace(address)
	}

	return &models.ResolvedAddress{
		Coordinates: models.Coordinates{Longitude: top.Geometry.Location.Lng, Latitude: top.Geometry.Location.Lat},
		Label:       label,
	}, nil
}
