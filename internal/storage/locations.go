package storage

import (
	"database/sql"

	"star-burger/internal/domain"

	"github.com/lib/pq"
)

// LocationRepository persists resolved addresses. Rows are immutable: a
// changed address text produces a new row, never an update of an old one.
type LocationRepository struct {
	DB *sql.DB
}

func NewLocationRepository(db *sql.DB) *LocationRepository {
	return &LocationRepository{DB: db}
}

func (r *LocationRepository) GetByAddress(address string) (*domain.Location, error) {
	var location domain.Location
	err := r.DB.QueryRow(`
		SELECT id, address, lat, lon, created_at
		FROM locations
		WHERE address = $1
	`, address).Scan(&location.ID, &location.Address, &location.Coordinates.Lat,
		&location.Coordinates.Lon, &location.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &location, nil
}

func (r *LocationRepository) GetByAddresses(addresses []string) (map[string]domain.Coordinates, error) {
	locations := make(map[string]domain.Coordinates, len(addresses))
	if len(addresses) == 0 {
		return locations, nil
	}

	rows, err := r.DB.Query("SELECT address, lat, lon FROM locations WHERE address = ANY($1)", pq.Array(addresses))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var address string
		var coords domain.Coordinates
		if err := rows.Scan(&address, &coords.Lat, &coords.Lon); err != nil {
			continue
		}
		locations[address] = coords
	}
	return locations, nil
}

// Insert stores a freshly geocoded address. Concurrent resolvers may race on
// the same address; the conflict clause keeps the first row and drops the rest.
func (r *LocationRepository) Insert(address string, coords domain.Coordinates) error {
	_, err := r.DB.Exec(`
		INSERT INTO locations (address, lat, lon)
		VALUES ($1, $2, $3)
		ON CONFLICT (address) DO NOTHING
	`, address, coords.Lat, coords.Lon)
	return err
}
