package repository

import (
	"context"

	"food-dispatch/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// RestaurantRepository defines the interface for restaurant data access operations.
type RestaurantRepository interface {
	// GetAll retrieves all restaurants with their stored coordinates.
	GetAll(ctx context.Context) ([]model.Restaurant, error)

	// GetAvailableMenuEntries retrieves menu entries scoped to availability = true.
	GetAvailableMenuEntries(ctx context.Context) ([]model.MenuEntry, error)
}

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// GetAvailable retrieves products offered by at least one restaurant.
	GetAvailable(ctx context.Context) ([]model.Product, error)

	// GetByIDs retrieves multiple products by their IDs.
	GetByIDs(ctx context.Context, ids []string) ([]model.Product, error)

	// ValidateProductsExist checks if all provided product IDs exist in the database.
	// Returns error if any product ID does not exist.
	ValidateProductsExist(ctx context.Context, ids []string) error
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateOrder inserts a new order within the provided transaction.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// CreateLineItems inserts multiple order line items within the provided transaction.
	CreateLineItems(ctx context.Context, tx pgx.Tx, items []model.OrderLineItem) error

	// GetUnprocessed retrieves all orders with status Unprocessed,
	// oldest registration first.
	GetUnprocessed(ctx context.Context) ([]model.Order, error)

	// GetLineItems retrieves line items for the given orders, grouped by order ID.
	GetLineItems(ctx context.Context, orderIDs []uuid.UUID) (map[uuid.UUID][]model.OrderLineItem, error)
}

// GeocodeRepository defines the interface for the geocode cache.
type GeocodeRepository interface {
	// Get retrieves a cache entry by exact address text.
	// Returns nil, nil when the address has never been resolved.
	Get(ctx context.Context, address string) (*model.GeocodedAddress, error)

	// Upsert writes a cache entry keyed by address text. The write is a
	// single-row upsert; concurrent writers for the same address are safe,
	// last write wins.
	Upsert(ctx context.Context, entry *model.GeocodedAddress) error
}
