package repository

import (
	"context"
	"fmt"

	"food-dispatch/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// geocodeRepository implements the GeocodeRepository interface using PostgreSQL.
type geocodeRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewGeocodeRepository creates a new PostgreSQL-backed geocode cache repository.
func NewGeocodeRepository(pool *pgxpool.Pool, logger zerolog.Logger) GeocodeRepository {
	return &geocodeRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "geocode").Logger(),
	}
}

// Get retrieves a cache entry by exact address text.
// Returns nil, nil when the address has never been resolved.
func (r *geocodeRepository) Get(ctx context.Context, address string) (*model.GeocodedAddress, error) {
	query := `
		SELECT address, longitude, latitude, requested_at
		FROM geocoded_addresses
		WHERE address = $1
	`

	var entry model.GeocodedAddress
	var lon, lat *decimal.Decimal
	err := r.pool.QueryRow(ctx, query, address).Scan(&entry.Address, &lon, &lat, &entry.RequestedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("address", address).Msg("geocode cache miss")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("address", address).Msg("failed to query geocode cache")
		return nil, fmt.Errorf("failed to query geocode cache: %w", err)
	}

	// Null columns mark an address the provider could not place.
	if lon != nil && lat != nil {
		entry.Coordinates = &model.Coordinates{Longitude: *lon, Latitude: *lat}
	}

	return &entry, nil
}

// Upsert writes a cache entry keyed by address text. Last write wins on
// conflict; resolved coordinates for a given address are expected stable.
func (r *geocodeRepository) Upsert(ctx context.Context, entry *model.GeocodedAddress) error {
	query := `
		INSERT INTO geocoded_addresses (address, longitude, latitude, requested_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (address) DO UPDATE
		SET longitude = EXCLUDED.longitude,
			latitude = EXCLUDED.latitude,
			requested_at = EXCLUDED.requested_at
	`

	var lon, lat *decimal.Decimal
	if entry.Coordinates != nil {
		lon = &entry.Coordinates.Longitude
		lat = &entry.Coordinates.Latitude
	}

	_, err := r.pool.Exec(ctx, query, entry.Address, lon, lat, entry.RequestedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("address", entry.Address).Msg("failed to upsert geocode cache entry")
		return fmt.Errorf("failed to upsert geocode cache entry: %w", err)
	}

	r.logger.Debug().
		Str("address", entry.Address).
		Bool("resolved", entry.Coordinates != nil).
		Msg("geocode cache entry written")

	return nil
}
