package repository_test

import (
	"log/slog"
	"regexp"
	"testing"
	"time"

	"github.com/UnknownOlympus/creche/internal/models"
	"github.com/UnknownOlympus/creche/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	createTableQuery = regexp.QuoteMeta(`CREATE TABLE IF NOT EXISTS geocode_cache`)
	selectQuery      = regexp.QuoteMeta(`SELECT label, latitude, longitude FROM geocode_cache WHERE address_key = $1 AND updated_at > $2;`)
	upsertQuery      = regexp.QuoteMeta(`INSERT INTO geocode_cache (address_key, label, latitude, longitude, updated_at)`)
)

func TestEnsureSchema(t *testing.T) {
	t.Parallel()
	logger := slog.Default()
	ctx := t.Context()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger, time.Hour)

		mock.ExpectExec(createTableQuery).WillReturnResult(pgxmock.NewResult("CREATE", 0))

		require.NoError(t, repo.EnsureSchema(ctx))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error - create table", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger, time.Hour)

		mock.ExpectExec(createTableQuery).WillReturnError(assert.AnError)

		err = repo.EnsureSchema(ctx)

		require.ErrorIs(t, err, assert.AnError)
		require.ErrorContains(t, err, "failed to create geocode cache table")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetResolved(t *testing.T) {
	t.Parallel()
	logger := slog.Default()
	ctx := t.Context()
	key := "10 rue de la paix paris"

	t.Run("hit", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger, time.Hour)

		mock.ExpectQuery(selectQuery).
			WithArgs(key, pgxmock.AnyArg()).
			WillReturnRows(
				pgxmock.NewRows([]string{"label", "latitude", "longitude"}).
					AddRow("10 Rue de la Paix 75002 Paris", 48.8693, 2.3313),
			)

		addr, found, err := repo.GetResolved(ctx, key)

		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, &models.ResolvedAddress{
			Coordinates: models.Coordinates{Latitude: 48.8693, Longitude: 2.3313},
			Label:       "10 Rue de la Paix 75002 Paris",
		}, addr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("miss", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger, 0)

		mock.ExpectQuery(selectQuery).
			WithArgs(key, pgxmock.AnyArg()).
			WillReturnError(pgx.ErrNoRows)

		addr, found, err := repo.GetResolved(ctx, key)

		require.NoError(t, err)
		assert.False(t, found)
		assert.Nil(t, addr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error - query cached address", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger, time.Hour)

		mock.ExpectQuery(selectQuery).
			WithArgs(key, pgxmock.AnyArg()).
			WillReturnError(assert.AnError)

		addr, found, err := repo.GetResolved(ctx, key)

		require.ErrorIs(t, err, assert.AnError)
		require.ErrorContains(t, err, "failed to query cached address")
		assert.False(t, found)
		assert.Nil(t, addr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPutResolved(t *testing.T) {
	t.Parallel()
	logger := slog.Default()
	ctx := t.Context()
	key := "place bellecour lyon"
	addr := models.ResolvedAddress{
		Coordinates: models.Coordinates{Latitude: 45.7578, Longitude: 4.832},
		Label:       "Place Bellecour 69002 Lyon",
	}

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger, time.Hour)

		mock.ExpectExec(upsertQuery).
			WithArgs(key, addr.Label, addr.Latitude, addr.Longitude).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		require.NoError(t, repo.PutResolved(ctx, key, addr))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error - upsert", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger, time.Hour)

		mock.ExpectExec(upsertQuery).
			WithArgs(key, addr.Label, addr.Latitude, addr.Longitude).
			WillReturnError(assert.AnError)

		err = repo.PutResolved(ctx, key, addr)

		require.ErrorIs(t, err, assert.AnError)
		require.ErrorContains(t, err, "failed to upsert cached address")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
