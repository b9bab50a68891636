package geocoding

import (
	"context"
	"errors"
	"net/http"

	"github.com/UnknownOlympus/creche/internal/models"
)

// Provider is an interface that defines a method for resolving a free-text address.
// Resolve returns the provider's top-ranked match. Every failure wraps either
// ErrAddressNotFound or ErrGeocodingUnavailable.
type Provider interface {
	Resolve(ctx context.Context, address string) (*models.ResolvedAddress, error)
}

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

var (
	// ErrAddressNotFound is returned when the provider has no match for the address.
	ErrAddressNotFound = errors.New("address not found")
	// ErrGeocodingUnavailable is returned when the provider cannot be reached,
	// times out, rejects the request or answers with a malformed body.
	ErrGeocodingUnavailable = errors.New("geocoding provider unavailable")
)
