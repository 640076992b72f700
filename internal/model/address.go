package model

import "time"

// GeocodedAddress is one geocode-cache row. The address text is the exact
// cache key, not geospatially normalised. Nil Coordinates means the provider
// returned no placemarks for the address and the miss itself is cached.
type GeocodedAddress struct {
	Address     string       `json:"address" db:"address"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
	RequestedAt time.Time    `json:"requestedAt" db:"requested_at"`
}
