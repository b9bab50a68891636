package geocoding

import (
	"context"
	"log/slog"
	"strings"

	"github.com/UnknownOlympus/creche/internal/metrics"
	"github.com/UnknownOlympus/creche/internal/models"
)

// Store persists resolved addresses keyed by normalized query text.
type Store interface {
	GetResolved(ctx context.Context, key string) (*models.ResolvedAddress, bool, error)
	PutResolved(ctx context.Context, key string, addr models.ResolvedAddress) error
}

// CachedProvider serves resolutions from a Store and falls back to the wrapped provider.
// Store failures are logged and otherwise ignored.
type CachedProvider struct {
	next    Provider
	store   Store
	metrics *metrics.Metrics
	log     *slog.Logger
}

// NewCachedProvider wraps next with a read-through cache backed by store.
func NewCachedProvider(next Provider, store Store, m *metrics.Metrics, log *slog.Logger) *CachedProvider {
	return &CachedProvider{next: next, store: store, metrics: m, log: log}
}

// NormalizeAddress collapses whitespace and lowercases the address to build a cache key.
func NormalizeAddress(address string) string {
	return strings.ToLower(strings.Join(strings.Fields(address), " "))
}

// Resolve implements Provider.
func (cp *CachedProvider) Resolve(ctx context.Context, address string) (*models.ResolvedAddress, error) {
	key := NormalizeAddress(address)

	cached, found, err := cp.store.GetResolved(ctx, key)
	switch {
	case err != nil:
		cp.log.WarnContext(ctx, "Geocode cache read failed", "key", key, "error", err)
		cp.metrics.GeocoderCache.WithLabelValues("error").Inc()
	case found:
		cp.log.DebugContext(ctx, "Geocode cache hit", "key", key)
		cp.metrics.GeocoderCache.WithLabelValues("hit").Inc()
		return cached, nil
	default:
		cp.metrics.GeocoderCache.WithLabelValues("miss").Inc()
	}

	resolved, err := cp.next.Resolve(ctx, address)
	if err != nil {
		return nil, err
	}

	if err = cp.store.PutResolved(ctx, key, *resolved); err != nil {
		cp.log.WarnContext(ctx, "Geocode cache write failed", "key", key, "error", err)
	}

	return resolved, nil
}
