package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RankedCandidate is one restaurant able to fully service an order,
// with its great-circle distance from the delivery address.
type RankedCandidate struct {
	RestaurantID   int64   `json:"restaurantId"`
	RestaurantName string  `json:"restaurantName"`
	DistanceKm     float64 `json:"distanceKm"`
}

// OrderViewModel is the manager-dashboard projection of one unprocessed
// order. Candidates is empty when no restaurant qualifies or the delivery
// address could not be resolved; Warning carries a per-order geocoder
// outage note without failing the rest of the render.
type OrderViewModel struct {
	ID            uuid.UUID         `json:"id"`
	Firstname     string            `json:"firstname"`
	Lastname      string            `json:"lastname"`
	Phonenumber   string            `json:"phonenumber"`
	Address       string            `json:"address"`
	Total         decimal.Decimal   `json:"total"`
	StatusLabel   string            `json:"status"`
	PaymentLabel  string            `json:"paymentMethod"`
	Comment       string            `json:"comment,omitempty"`
	RegisteredAt  time.Time         `json:"registeredAt"`
	Candidates    []RankedCandidate `json:"candidates"`
	Warning       string            `json:"warning,omitempty"`
}
