package model

import "github.com/shopspring/decimal"

// Product represents a food product in the catalogue.
// Availability is per-restaurant and lives on MenuEntry, not here.
type Product struct {
	ID            string          `json:"id" db:"id"`
	Name          string          `json:"name" db:"name"`
	Category      string          `json:"category" db:"category"`
	Price         decimal.Decimal `json:"price" db:"price"`
	SpecialStatus bool            `json:"specialStatus" db:"special_status"`
	Description   string          `json:"description" db:"description"`
}
