// Package geocode resolves free-text delivery addresses to geographic
// coordinates through an external geocoding provider, consulting the
// persistent cache before every outbound call.
package geocode

import (
	"context"

	"food-dispatch/internal/model"
)

// Client calls the external geocoding provider.
type Client interface {
	// Geocode asks the provider for the given address. It returns the
	// coordinate pair of the first (most relevant) placemark, or nil, nil
	// when the provider returns no placemarks at all. Network failures,
	// non-2xx statuses and malformed bodies surface as
	// model.ErrGeocoderUnavailable.
	Geocode(ctx context.Context, address string) (*model.Coordinates, error)
}

// Resolver resolves an address through the cache, falling back to the Client.
type Resolver interface {
	// Resolve returns coordinates for the address, or nil, nil when the
	// address is unresolvable. Unresolvable answers are cached too, so
	// repeated lookups never re-query the provider.
	Resolve(ctx context.Context, address string) (*model.Coordinates, error)
}
