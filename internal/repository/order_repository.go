package repository

import (
	"context"
	"fmt"

	"food-dispatch/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// orderRepository implements the OrderRepository interface using PostgreSQL.
type orderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool *pgxpool.Pool, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

// BeginTx starts a new database transaction.
func (r *orderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// CreateOrder inserts a new order within the provided transaction.
func (r *orderRepository) CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	query := `
		INSERT INTO orders (id, firstname, lastname, phonenumber, address,
			status, payment_method, comment, registered_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := tx.Exec(ctx, query,
		order.ID, order.Firstname, order.Lastname, order.Phonenumber, order.Address,
		order.Status, order.PaymentMethod, order.Comment, order.RegisteredAt)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", order.ID.String()).
			Msg("failed to create order")
		return fmt.Errorf("failed to create order: %w", err)
	}

	r.logger.Debug().
		Str("order_id", order.ID.String()).
		Msg("order created successfully")

	return nil
}

// CreateLineItems inserts multiple order line items within the provided transaction.
func (r *orderRepository) CreateLineItems(ctx context.Context, tx pgx.Tx, items []model.OrderLineItem) error {
	if len(items) == 0 {
		return nil
	}

	query := `
		INSERT INTO order_line_items (id, order_id, product_id, quantity, line_price)
		VALUES ($1, $2, $3, $4, $5)
	`

	batch := &pgx.Batch{}
	for _, item := range items {
		batch.Queue(query, item.ID, item.OrderID, item.ProductID, item.Quantity, item.LinePrice)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < len(items); i++ {
		_, err := results.Exec()
		if err != nil {
			r.logger.Error().
				Err(err).
				Str("order_id", items[i].OrderID.String()).
				Str("product_id", items[i].ProductID).
				Msg("failed to create order line item")
			return fmt.Errorf("failed to create order line item: %w", err)
		}
	}

	r.logger.Debug().
		Int("count", len(items)).
		Msg("order line items created successfully")

	return nil
}

// GetUnprocessed retrieves all orders with status Unprocessed, oldest first.
func (r *orderRepository) GetUnprocessed(ctx context.Context) ([]model.Order, error) {
	query := `
		SELECT id, firstname, lastname, phonenumber, address, status,
			payment_method, comment, registered_at, called_at, delivered_at,
			restaurant_id
		FROM orders
		WHERE status = $1
		ORDER BY registered_at
	`

	rows, err := r.pool.Query(ctx, query, model.OrderStatusUnprocessed)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query unprocessed orders")
		return nil, fmt.Errorf("failed to query unprocessed orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		var o model.Order
		err := rows.Scan(&o.ID, &o.Firstname, &o.Lastname, &o.Phonenumber, &o.Address,
			&o.Status, &o.PaymentMethod, &o.Comment, &o.RegisteredAt, &o.CalledAt,
			&o.DeliveredAt, &o.RestaurantID)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order row")
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order rows")
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	return orders, nil
}

// GetLineItems retrieves line items for the given orders, grouped by order ID.
func (r *orderRepository) GetLineItems(ctx context.Context, orderIDs []uuid.UUID) (map[uuid.UUID][]model.OrderLineItem, error) {
	grouped := make(map[uuid.UUID][]model.OrderLineItem, len(orderIDs))
	if len(orderIDs) == 0 {
		return grouped, nil
	}

	query := `
		SELECT id, order_id, product_id, quantity, line_price
		FROM order_line_items
		WHERE order_id = ANY($1)
		ORDER BY order_id, id
	`

	rows, err := r.pool.Query(ctx, query, orderIDs)
	if err != nil {
		r.logger.Error().Err(err).Int("order_count", len(orderIDs)).Msg("failed to query order line items")
		return nil, fmt.Errorf("failed to query order line items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item model.OrderLineItem
		err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.LinePrice)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order line item row")
			return nil, fmt.Errorf("failed to scan order line item: %w", err)
		}
		grouped[item.OrderID] = append(grouped[item.OrderID], item)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order line item rows")
		return nil, fmt.Errorf("error iterating order line items: %w", err)
	}

	return grouped, nil
}
