package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Discoveries        *prometheus.CounterVec
	GeocoderSeconds    *prometheus.HistogramVec
	GeocoderCache      *prometheus.CounterVec
	SourceAttempts     *prometheus.CounterVec
	FacilitiesReturned prometheus.Histogram
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		Discoveries: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "creche_discoveries_total",
			Help: "Total number of discovery calls by outcome.",
		}, []string{"status"}),
		GeocoderSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "creche_geocoder_request_duration_seconds",
			Help:    "Duration of address resolutions, cache included.",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider"}),
		GeocoderCache: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "creche_geocoder_cache_total",
			Help: "Geocode cache lookups by result (hit, miss, error).",
		}, []string{"result"}),
		SourceAttempts: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "creche_source_attempts_total",
			Help: "Facility source endpoint attempts by endpoint and outcome.",
		}, []string{"endpoint", "status"}),
		FacilitiesReturned: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name:    "creche_facilities_returned",
			Help:    "Number of facilities returned per discovery call.",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 200, 300},
		}),
	}
}
