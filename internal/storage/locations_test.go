package storage

import (
	"database/sql"
	"regexp"
	"testing"
	"time"

	"star-burger/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func newLocationRepo(t *testing.T) (*LocationRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return NewLocationRepository(db), mock
}

func TestLocationRepository_GetByAddress(t *testing.T) {
	repo, mock := newLocationRepo(t)

	createdAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, address, lat, lon, created_at")).
		WithArgs("Moscow, Tverskaya 1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "address", "lat", "lon", "created_at"}).
			AddRow(1, "Moscow, Tverskaya 1", 55.75, 37.61, createdAt))

	location, err := repo.GetByAddress("Moscow, Tverskaya 1")

	assert.NoError(t, err)
	if assert.NotNil(t, location) {
		assert.Equal(t, 55.75, location.Coordinates.Lat)
		assert.Equal(t, 37.61, location.Coordinates.Lon)
	}
}

func TestLocationRepository_GetByAddress_NotFound(t *testing.T) {
	repo, mock := newLocationRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, address, lat, lon, created_at")).
		WithArgs("nowhere").
		WillReturnError(sql.ErrNoRows)

	location, err := repo.GetByAddress("nowhere")

	assert.NoError(t, err)
	assert.Nil(t, location)
}

func TestLocationRepository_GetByAddresses(t *testing.T) {
	repo, mock := newLocationRepo(t)

	addresses := []string{"Moscow, Tverskaya 1", "unknown"}
	mock.ExpectQuery(regexp.QuoteMeta("SELECT address, lat, lon FROM locations WHERE address = ANY($1)")).
		WithArgs(pq.Array(addresses)).
		WillReturnRows(sqlmock.NewRows([]string{"address", "lat", "lon"}).
			AddRow("Moscow, Tverskaya 1", 55.75, 37.61))

	locations, err := repo.GetByAddresses(addresses)

	assert.NoError(t, err)
	assert.Len(t, locations, 1)
	assert.Equal(t, domain.Coordinates{Lat: 55.75, Lon: 37.61}, locations["Moscow, Tverskaya 1"])
}

func TestLocationRepository_GetByAddresses_Empty(t *testing.T) {
	repo, _ := newLocationRepo(t)

	locations, err := repo.GetByAddresses(nil)

	assert.NoError(t, err)
	assert.Empty(t, locations)
}

func TestLocationRepository_Insert_IgnoresConflict(t *testing.T) {
	repo, mock := newLocationRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (address) DO NOTHING")).
		WithArgs("Moscow, Tverskaya 1", 55.75, 37.61).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Insert("Moscow, Tverskaya 1", domain.Coordinates{Lat: 55.75, Lon: 37.61})
	assert.NoError(t, err)
}
