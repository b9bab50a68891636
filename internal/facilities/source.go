// Package facilities queries geodata endpoints for childcare candidates around a point.
package facilities

import (
	"context"
	"net/http"

	"github.com/UnknownOlympus/creche/internal/models"
)

// Source returns raw childcare candidates within radiusMeters of origin.
// Implementations never fail: an unreachable source yields an empty slice.
type Source interface {
	FetchCandidates(ctx context.Context, origin models.Coordinates, radiusMeters float64) []models.RawCandidate
}

// HTTPClient defines the interface for making HTTP requests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}
