package service

import (
	"context"

	"food-dispatch/internal/model"
)

// ProductService defines operations for the customer-facing catalogue.
type ProductService interface {
	// GetAvailable retrieves products offered by at least one restaurant.
	GetAvailable(ctx context.Context) ([]model.Product, error)
}

// OrderService defines operations for order intake.
type OrderService interface {
	// RegisterOrder validates and creates a new order, capturing line
	// prices from the current catalogue price.
	RegisterOrder(ctx context.Context, req *model.OrderRequest) (*model.OrderResponse, error)
}

// DashboardService assembles the manager dashboard.
type DashboardService interface {
	// RenderOrders produces a view model per unprocessed order, each with
	// its distance-ranked list of restaurants able to service it.
	RenderOrders(ctx context.Context) ([]model.OrderViewModel, error)
}
