package repository

import (
	"context"
	"fmt"

	"food-dispatch/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// restaurantRepository implements the RestaurantRepository interface using PostgreSQL.
type restaurantRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewRestaurantRepository creates a new PostgreSQL-backed restaurant repository.
func NewRestaurantRepository(pool *pgxpool.Pool, logger zerolog.Logger) RestaurantRepository {
	return &restaurantRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "restaurant").Logger(),
	}
}

// GetAll retrieves all restaurants with their stored coordinates.
func (r *restaurantRepository) GetAll(ctx context.Context) ([]model.Restaurant, error) {
	query := `
		SELECT id, name, address, contact_phone, longitude, latitude
		FROM restaurants
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query restaurants")
		return nil, fmt.Errorf("failed to query restaurants: %w", err)
	}
	defer rows.Close()

	var restaurants []model.Restaurant
	for rows.Next() {
		var rest model.Restaurant
		var lon, lat *decimal.Decimal
		err := rows.Scan(&rest.ID, &rest.Name, &rest.Address, &rest.ContactPhone, &lon, &lat)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan restaurant row")
			return nil, fmt.Errorf("failed to scan restaurant: %w", err)
		}
		if lon != nil && lat != nil {
			rest.Coordinates = &model.Coordinates{Longitude: *lon, Latitude: *lat}
		}
		restaurants = append(restaurants, rest)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating restaurant rows")
		return nil, fmt.Errorf("error iterating restaurants: %w", err)
	}

	return restaurants, nil
}

// GetAvailableMenuEntries retrieves menu entries scoped to availability = true.
func (r *restaurantRepository) GetAvailableMenuEntries(ctx context.Context) ([]model.MenuEntry, error) {
	query := `
		SELECT restaurant_id, product_id, availability
		FROM menu_entries
		WHERE availability = TRUE
		ORDER BY restaurant_id, product_id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query menu entries")
		return nil, fmt.Errorf("failed to query menu entries: %w", err)
	}
	defer rows.Close()

	var entries []model.MenuEntry
	for rows.Next() {
		var e model.MenuEntry
		err := rows.Scan(&e.RestaurantID, &e.ProductID, &e.Availability)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan menu entry row")
			return nil, fmt.Errorf("failed to scan menu entry: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating menu entry rows")
		return nil, fmt.Errorf("error iterating menu entries: %w", err)
	}

	return entries, nil
}
