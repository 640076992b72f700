package model

import "github.com/shopspring/decimal"

// Coordinates is a geographic point as fixed-precision decimals,
// longitude first to match the geocoding provider's "lon lat" order.
type Coordinates struct {
	Longitude decimal.Decimal `json:"longitude"`
	Latitude  decimal.Decimal `json:"latitude"`
}

// Restaurant represents a restaurant that can service orders.
type Restaurant struct {
	ID           int64        `json:"id" db:"id"`
	Name         string       `json:"name" db:"name"`
	Address      string       `json:"address" db:"address"`
	ContactPhone string       `json:"contactPhone" db:"contact_phone"`
	Coordinates  *Coordinates `json:"coordinates,omitempty"`
}

// MenuEntry links a restaurant to a product it may offer.
// A product is offered only when Availability is true.
// The (restaurant, product) pair is unique.
type MenuEntry struct {
	RestaurantID int64  `json:"restaurantId" db:"restaurant_id"`
	ProductID    string `json:"productId" db:"product_id"`
	Availability bool   `json:"availability" db:"availability"`
}
