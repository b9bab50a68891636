package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/UnknownOlympus/creche/internal/api"
	"github.com/UnknownOlympus/creche/internal/geocoding"
	"github.com/UnknownOlympus/creche/internal/metrics"
	"github.com/UnknownOlympus/creche/internal/models"
	"github.com/UnknownOlympus/creche/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDiscoverer struct {
	address  string
	radiusKm float64
	origin   *models.ResolvedAddress
	result   []models.Facility
	err      error
}

func (f *fakeDiscoverer) Discover(
	_ context.Context,
	address string,
	radiusKm float64,
) (*models.ResolvedAddress, []models.Facility, error) {
	f.address = address
	f.radiusKm = radiusKm
	return f.origin, f.result, f.err
}

type fakePinger struct {
	err error
}

func (f fakePinger) Ping(context.Context) error { return f.err }

func newRouter(t *testing.T, discoverer api.Discoverer, db api.Pinger) http.Handler {
	t.Helper()
	reg := prometheus.NewRegistry()
	metrics.NewMetrics(reg)

	return api.NewRouter(slog.Default(), discoverer, 5, db, reg)
}

func serve(handler http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestDiscover_Success(t *testing.T) {
	discoverer := &fakeDiscoverer{
		origin: &models.ResolvedAddress{
			Coordinates: models.Coordinates{Latitude: 48.8566, Longitude: 2.3522},
			Label:       "Paris",
		},
		result: []models.Facility{{
			ID:             1,
			Name:           "Crèche des Tuileries",
			Classification: models.ClassificationStandard,
			DistanceMeters: 1157,
			WalkMinutes:    15,
		}},
	}

	rec := serve(newRouter(t, discoverer, nil), "/api/v1/discover?address=10+rue+de+Rivoli+Paris&radius_km=2")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "10 rue de Rivoli Paris", discoverer.address)
	assert.InDelta(t, 2.0, discoverer.radiusKm, 0)

	var body struct {
		Origin struct {
			Label     string  `json:"label"`
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		} `json:"origin"`
		RadiusKm   float64 `json:"radius_km"`
		Count      int     `json:"count"`
		Facilities []struct {
			ID             int64  `json:"id"`
			Name           string `json:"name"`
			Classification string `json:"classification"`
			DistanceMeters int    `json:"distance_meters"`
			WalkMinutes    int    `json:"walk_minutes"`
		} `json:"facilities"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "Paris", body.Origin.Label)
	assert.InDelta(t, 48.8566, body.Origin.Latitude, 1e-9)
	assert.InDelta(t, 2.0, body.RadiusKm, 0)
	assert.Equal(t, 1, body.Count)
	require.Len(t, body.Facilities, 1)
	assert.Equal(t, "Standard", body.Facilities[0].Classification)
	assert.Equal(t, 1157, body.Facilities[0].DistanceMeters)
	assert.Equal(t, 15, body.Facilities[0].WalkMinutes)
}

func TestDiscover_DefaultRadiusAndEmptyList(t *testing.T) {
	discoverer := &fakeDiscoverer{origin: &models.ResolvedAddress{Label: "Lyon"}}

	rec := serve(newRouter(t, discoverer, nil), "/api/v1/discover?address=Lyon")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.InDelta(t, 5.0, discoverer.radiusKm, 0)
	assert.Contains(t, rec.Body.String(), `"facilities":[]`)
	assert.Contains(t, rec.Body.String(), `"count":0`)
}

func TestDiscover_Errors(t *testing.T) {
	cases := []struct {
		name    string
		target  string
		err     error
		status  int
		message string
	}{
		{"missing address", "/api/v1/discover", nil, http.StatusBadRequest, "address is required"},
		{"blank address", "/api/v1/discover?address=++", nil, http.StatusBadRequest, "address is required"},
		{"radius not a number", "/api/v1/discover?address=Paris&radius_km=far", nil, http.StatusBadRequest, "radius_km must be a number"},
		{
			"radius out of range", "/api/v1/discover?address=Paris&radius_km=500",
			fmt.Errorf("%w: got 500", service.ErrInvalidRadius), http.StatusBadRequest, "radius_km must be between 1 and 100",
		},
		{
			"address not found", "/api/v1/discover?address=zzzz",
			fmt.Errorf("resolve %q: %w", "zzzz", geocoding.ErrAddressNotFound), http.StatusNotFound, "address not found",
		},
		{
			"geocoder unavailable", "/api/v1/discover?address=Paris",
			geocoding.ErrGeocodingUnavailable, http.StatusServiceUnavailable, "geocoding service unavailable",
		},
		{
			"unexpected error", "/api/v1/discover?address=Paris",
			errors.New("boom"), http.StatusInternalServerError, "internal server error",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := serve(newRouter(t, &fakeDiscoverer{err: tc.err}, nil), tc.target)

			assert.Equal(t, tc.status, rec.Code)
			var body map[string]string
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Contains(t, body["error"], tc.message)
		})
	}
}

func TestDiscover_MethodNotAllowed(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter(t, &fakeDiscoverer{}, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/discover", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHealth(t *testing.T) {
	t.Run("without database", func(t *testing.T) {
		rec := serve(newRouter(t, &fakeDiscoverer{}, nil), "/healthz")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "OK", rec.Body.String())
	})

	t.Run("database reachable", func(t *testing.T) {
		rec := serve(newRouter(t, &fakeDiscoverer{}, fakePinger{}), "/healthz")

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("database down", func(t *testing.T) {
		rec := serve(newRouter(t, &fakeDiscoverer{}, fakePinger{err: assert.AnError}), "/healthz")

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Equal(t, "DB ping failed", rec.Body.String())
	})
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	appMetrics := metrics.NewMetrics(reg)
	appMetrics.Discoveries.WithLabelValues("success").Inc()

	rec := serve(api.NewRouter(slog.Default(), &fakeDiscoverer{}, 5, nil, reg), "/metrics")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `creche_discoveries_total{status="success"} 1`)
}
