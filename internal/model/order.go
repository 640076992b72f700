package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus is the processing state of an order.
type OrderStatus string

const (
	OrderStatusUnprocessed OrderStatus = "UNPR"
	OrderStatusProcessed   OrderStatus = "PR"
)

// Label returns the human-readable form of the status.
func (s OrderStatus) Label() string {
	switch s {
	case OrderStatusUnprocessed:
		return "Unprocessed"
	case OrderStatusProcessed:
		return "Processed"
	}
	return string(s)
}

// PaymentMethod is how the customer intends to pay.
type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "cash"
	PaymentCard         PaymentMethod = "card"
	PaymentNotSpecified PaymentMethod = ""
)

// Label returns the human-readable form of the payment method.
func (p PaymentMethod) Label() string {
	switch p {
	case PaymentCash:
		return "Cash"
	case PaymentCard:
		return "Card"
	case PaymentNotSpecified:
		return "Not specified"
	}
	return string(p)
}

// Order represents a customer order.
type Order struct {
	ID            uuid.UUID     `json:"id" db:"id"`
	Firstname     string        `json:"firstname" db:"firstname"`
	Lastname      string        `json:"lastname" db:"lastname"`
	Phonenumber   string        `json:"phonenumber" db:"phonenumber"`
	Address       string        `json:"address" db:"address"`
	Status        OrderStatus   `json:"status" db:"status"`
	PaymentMethod PaymentMethod `json:"paymentMethod" db:"payment_method"`
	Comment       string        `json:"comment" db:"comment"`
	RegisteredAt  time.Time     `json:"registeredAt" db:"registered_at"`
	CalledAt      *time.Time    `json:"calledAt,omitempty" db:"called_at"`
	DeliveredAt   *time.Time    `json:"deliveredAt,omitempty" db:"delivered_at"`
	RestaurantID  *int64        `json:"restaurantId,omitempty" db:"restaurant_id"`
}

// OrderLineItem is one (product, quantity) record belonging to an order.
// LinePrice is captured at registration time as unit price times quantity
// and is never recomputed from the live catalogue price.
type OrderLineItem struct {
	ID        uuid.UUID       `json:"-" db:"id"`
	OrderID   uuid.UUID       `json:"-" db:"order_id"`
	ProductID string          `json:"productId" db:"product_id"`
	Quantity  int             `json:"quantity" db:"quantity"`
	LinePrice decimal.Decimal `json:"linePrice" db:"line_price"`
}

// OrderRequest represents the request payload for registering an order.
type OrderRequest struct {
	Firstname     string                `json:"firstname"`
	Lastname      string                `json:"lastname"`
	Phonenumber   string                `json:"phonenumber"`
	Address       string                `json:"address"`
	PaymentMethod PaymentMethod         `json:"paymentMethod,omitempty"`
	Comment       string                `json:"comment,omitempty"`
	Products      []OrderProductRequest `json:"products"`
}

// OrderProductRequest is a single line of an order request.
type OrderProductRequest struct {
	ProductID string `json:"product"`
	Quantity  int    `json:"quantity"`
}

// OrderResponse represents the response payload for a registered order.
type OrderResponse struct {
	ID    uuid.UUID       `json:"id"`
	Items []OrderLineItem `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// Total sums the captured line prices of the given items.
func Total(items []OrderLineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LinePrice)
	}
	return total
}
