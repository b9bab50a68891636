package facilities

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/UnknownOlympus/creche/internal/metrics"
	"github.com/UnknownOlympus/creche/internal/models"
)

// DefaultEndpoints are public Overpass interpreters, tried in order.
var DefaultEndpoints = []string{
	"https://overpass-api.de/api/interpreter",
	"https://overpass.kumi.systems/api/interpreter",
}

// DefaultTimeout bounds one attempt against one endpoint.
const DefaultTimeout = 100 * time.Second

// OverpassClient fetches candidates from the first Overpass endpoint that answers.
type OverpassClient struct {
	client    HTTPClient
	endpoints []string
	timeout   time.Duration
	metrics   *metrics.Metrics
	log       *slog.Logger
}

type overpassResponse struct {
	Elements []overpassElement `json:"elements"`
}

type overpassElement struct {
	ID     int64             `json:"id"`
	Lat    *float64          `json:"lat"`
	Lon    *float64          `json:"lon"`
	Center *overpassCenter   `json:"center"`
	Tags   map[string]string `json:"tags"`
}

type overpassCenter struct {
	Lat *float64 `json:"lat"`
	Lon *float64 `json:"lon"`
}

// NewOverpassClient creates a client over the given endpoints using a default HTTP client.
func NewOverpassClient(endpoints []string, timeout time.Duration, m *metrics.Metrics, log *slog.Logger) *OverpassClient {
	return NewOverpassClientWithClient(&http.Client{}, endpoints, timeout, m, log)
}

// NewOverpassClientWithClient allows injecting a custom HTTP client.
func NewOverpassClientWithClient(
	client HTTPClient,
	endpoints []string,
	timeout time.Duration,
	m *metrics.Metrics,
	log *slog.Logger,
) *OverpassClient {
	if len(endpoints) == 0 {
		endpoints = DefaultEndpoints
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &OverpassClient{
		client:    client,
		endpoints: append([]string(nil), endpoints...),
		timeout:   timeout,
		metrics:   m,
		log:       log,
	}
}

// FetchCandidates implements Source. The first endpoint answering 200 with a
// decodable body is authoritative; results are never merged across endpoints.
// When every endpoint fails the result is empty, indistinguishable from an
// area without facilities.
func (oc *OverpassClient) FetchCandidates(
	ctx context.Context,
	origin models.Coordinates,
	radiusMeters float64,
) []models.RawCandidate {
	query := BuildQuery(origin, radiusMeters)

	for idx, endpoint := range oc.endpoints {
		elements, err := oc.fetch(ctx, endpoint, query)
		if err != nil {
			oc.metrics.SourceAttempts.WithLabelValues(endpoint, "failure").Inc()
			oc.log.WarnContext(ctx, "Overpass endpoint failed, trying next",
				"endpoint", endpoint,
				"fallback_level", idx,
				"error", err)
			continue
		}

		oc.metrics.SourceAttempts.WithLabelValues(endpoint, "success").Inc()
		oc.log.DebugContext(ctx, "Overpass endpoint answered",
			"endpoint", endpoint,
			"fallback_level", idx,
			"elements", len(elements))

		return toCandidates(elements)
	}

	oc.log.WarnContext(ctx, "All Overpass endpoints exhausted", "endpoints_tried", len(oc.endpoints))
	return []models.RawCandidate{}
}

// fetch performs one attempt against one endpoint.
func (oc *OverpassClient) fetch(ctx context.Context, endpoint, query string) ([]overpassElement, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, oc.timeout)
	defer cancel()

	reqURL, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to parse endpoint URL: %w", err)
	}
	params := reqURL.Query()
	params.Set("data", query)
	reqURL.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := oc.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute overpass request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("overpass API returned status %d: %s", resp.StatusCode, string(body))
	}

	var decoded overpassResponse
	if err = json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode overpass response: %w", err)
	}

	return decoded.Elements, nil
}

func toCandidates(elements []overpassElement) []models.RawCandidate {
	out := make([]models.RawCandidate, 0, len(elements))
	for _, el := range elements {
		tags := el.Tags
		if tags == nil {
			tags = map[string]string{}
		}
		out = append(out, models.RawCandidate{
			ID:       el.ID,
			Location: el.location(),
			Tags:     tags,
		})
	}

	return out
}

// location prefers the element's own point and falls back to its centre.
func (el overpassElement) location() models.Location {
	if el.Lat != nil && el.Lon != nil {
		return models.PointAt(models.Coordinates{Latitude: *el.Lat, Longitude: *el.Lon})
	}
	if el.Center != nil && el.Center.Lat != nil && el.Center.Lon != nil {
		return models.PointAt(models.Coordinates{Latitude: *el.Center.Lat, Longitude: *el.Center.Lon})
	}

	return models.MissingLocation()
}
