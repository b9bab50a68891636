package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/UnknownOlympus/creche/internal/models"
	"github.com/jackc/pgx/v5"
)

// EnsureSchema creates the geocode cache table when it does not exist yet.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS geocode_cache (
			address_key TEXT PRIMARY KEY,
			label       TEXT NOT NULL,
			latitude    DOUBLE PRECISION NOT NULL,
			longitude   DOUBLE PRECISION NOT NULL,
			updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
		);
	`

	if _, err := r.db.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create geocode cache table: %w", err)
	}

	return nil
}

// GetResolved returns the cached resolution for key when it is younger than the TTL.
// A miss is reported with found == false and a nil error.
func (r *Repository) GetResolved(ctx context.Context, key string) (*models.ResolvedAddress, bool, error) {
	query := `
		SELECT label, latitude, longitude
		FROM geocode_cache
		WHERE address_key = $1 AND updated_at > $2;
	`

	var addr models.ResolvedAddress
	err := r.db.QueryRow(ctx, query, key, r.now().Add(-r.ttl)).
		Scan(&addr.Label, &addr.Latitude, &addr.Longitude)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to query cached address: %w", err)
	}

	r.log.DebugContext(ctx, "Cached address found", "key", key, "label", addr.Label)

	return &addr, true, nil
}

// PutResolved stores or refreshes the resolution for key.
func (r *Repository) PutResolved(ctx context.Context, key string, addr models.ResolvedAddress) error {
	query := `
		INSERT INTO geocode_cache (address_key, label, latitude, longitude, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (address_key) DO UPDATE
		SET
			label = EXCLUDED.label,
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			updated_at = EXCLUDED.updated_at;
	`

	_, err := r.db.Exec(ctx, query, key, addr.Label, addr.Latitude, addr.Longitude)
	if err != nil {
		return fmt.Errorf("failed to upsert cached address: %w", err)
	}

	return nil
}
