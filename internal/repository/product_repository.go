package repository

import (
	"context"
	"fmt"

	"food-dispatch/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

// GetAvailable retrieves products offered by at least one restaurant.
func (r *productRepository) GetAvailable(ctx context.Context) ([]model.Product, error) {
	query := `
		SELECT DISTINCT p.id, p.name, p.category, p.price, p.special_status, p.description
		FROM products p
		JOIN menu_entries m ON m.product_id = p.id AND m.availability = TRUE
		ORDER BY p.name
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query available products")
		return nil, fmt.Errorf("failed to query available products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		var p model.Product
		err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Price, &p.SpecialStatus, &p.Description)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// GetByIDs retrieves multiple products by their IDs.
func (r *productRepository) GetByIDs(ctx context.Context, ids []string) ([]model.Product, error) {
	if len(ids) == 0 {
		return []model.Product{}, nil
	}

	query := `
		SELECT id, name, category, price, special_status, description
		FROM products
		WHERE id = ANY($1)
		ORDER BY name
	`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		r.logger.Error().Err(err).Int("count", len(ids)).Msg("failed to query products by IDs")
		return nil, fmt.Errorf("failed to query products by IDs: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		var p model.Product
		err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Price, &p.SpecialStatus, &p.Description)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// ValidateProductsExist checks if all provided product IDs exist in the database.
// Duplicate IDs in the input count once; an order may list the same product on
// several lines. Returns error if any product ID does not exist.
func (r *productRepository) ValidateProductsExist(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	distinct := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		distinct[id] = struct{}{}
	}

	query := `
		SELECT COUNT(DISTINCT id)
		FROM products
		WHERE id = ANY($1)
	`

	var count int
	err := r.pool.QueryRow(ctx, query, ids).Scan(&count)
	if err != nil {
		r.logger.Error().Err(err).Int("count", len(ids)).Msg("failed to validate products exist")
		return fmt.Errorf("failed to validate products exist: %w", err)
	}

	if count != len(distinct) {
		r.logger.Warn().
			Int("expected", len(distinct)).
			Int("found", count).
			Msg("not all product IDs exist")
		return model.ErrProductNotFound
	}

	return nil
}
