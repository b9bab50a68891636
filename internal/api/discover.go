package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/UnknownOlympus/creche/internal/geocoding"
	"github.com/UnknownOlympus/creche/internal/models"
	"github.com/UnknownOlympus/creche/internal/service"
)

// DiscoverHandler serves discovery requests.
type DiscoverHandler struct {
	discoverer      Discoverer
	defaultRadiusKm float64
	log             *slog.Logger
}

type originResponse struct {
	Label     string  `json:"label"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type discoverResponse struct {
	Origin     originResponse    `json:"origin"`
	RadiusKm   float64           `json:"radius_km"`
	Count      int               `json:"count"`
	Facilities []models.Facility `json:"facilities"`
}

// Discover handles GET /api/v1/discover?address=...&radius_km=...
func (h *DiscoverHandler) Discover(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	address := strings.TrimSpace(query.Get("address"))
	if address == "" {
		h.writeError(w, r, http.StatusBadRequest, "address is required")
		return
	}

	radiusKm := h.defaultRadiusKm
	if raw := strings.TrimSpace(query.Get("radius_km")); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			h.writeError(w, r, http.StatusBadRequest, "radius_km must be a number")
			return
		}
		radiusKm = parsed
	}

	origin, facilities, err := h.discoverer.Discover(r.Context(), address, radiusKm)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrInvalidRadius):
		h.writeError(w, r, http.StatusBadRequest, "radius_km must be between 1 and 100")
		return
	case errors.Is(err, service.ErrInvalidAddress):
		h.writeError(w, r, http.StatusBadRequest, "address is required")
		return
	case errors.Is(err, geocoding.ErrAddressNotFound):
		h.writeError(w, r, http.StatusNotFound, "address not found, be more specific (add a postal code)")
		return
	case errors.Is(err, geocoding.ErrGeocodingUnavailable):
		h.writeError(w, r, http.StatusServiceUnavailable, "geocoding service unavailable, retry later")
		return
	default:
		h.log.ErrorContext(r.Context(), "discovery failed", "error", err)
		h.writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	if facilities == nil {
		facilities = []models.Facility{}
	}

	h.writeJSON(w, r, http.StatusOK, discoverResponse{
		Origin: originResponse{
			Label:     origin.Label,
			Latitude:  origin.Latitude,
			Longitude: origin.Longitude,
		},
		RadiusKm:   radiusKm,
		Count:      len(facilities),
		Facilities: facilities,
	})
}

func (h *DiscoverHandler) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.ErrorContext(r.Context(), "encode failed", "path", r.URL.Path, "error", err)
	}
}

func (h *DiscoverHandler) writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	h.writeJSON(w, r, status, map[string]string{"error": msg})
}
