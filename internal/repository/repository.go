package repository

import (
	"context"
	"log/slog"
	"time"

	"github.com/UnknownOlympus/creche/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DefaultTTL is how long a cached resolution stays valid.
const DefaultTTL = 30 * 24 * time.Hour

// Database is the subset of *pgxpool.Pool used by Repository.
type Database interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
}

type Repository struct {
	db  Database
	log *slog.Logger
	ttl time.Duration
	now func() time.Time
}

type Interface interface {
	EnsureSchema(ctx context.Context) error
	GetResolved(ctx context.Context, key string) (*models.ResolvedAddress, bool, error)
	PutResolved(ctx context.Context, key string, addr models.ResolvedAddress) error
}

// NewRepository creates a new instance of Repository with the provided Database.
// A non-positive ttl falls back to DefaultTTL.
func NewRepository(db Database, log *slog.Logger, ttl time.Duration) *Repository {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &Repository{db: db, log: log, ttl: ttl, now: time.Now}
}
