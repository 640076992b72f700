package geocode

import (
	"context"
	"fmt"
	"time"

	"food-dispatch/internal/model"
	"food-dispatch/internal/repository"

	"github.com/rs/zerolog"
)

// resolver implements Resolver over the persistent cache and a Client.
type resolver struct {
	cache  repository.GeocodeRepository
	client Client
	logger zerolog.Logger
}

// NewResolver creates a cache-through address resolver.
func NewResolver(cache repository.GeocodeRepository, client Client, logger zerolog.Logger) Resolver {
	return &resolver{
		cache:  cache,
		client: client,
		logger: logger.With().Str("component", "address-resolver").Logger(),
	}
}

// Resolve returns coordinates for the address, or nil, nil when unresolvable.
//
// The cache is consulted first on the exact address text. A cached entry,
// resolved or not, short-circuits the provider. Provider failures are
// propagated without caching so a later call may succeed; a provider answer
// (including "no placemarks") is cached before returning. Concurrent calls
// for the same uncached address may both reach the provider; the upsert is
// idempotent, so that is duplicate work, not a correctness issue.
func (r *resolver) Resolve(ctx context.Context, address string) (*model.Coordinates, error) {
	entry, err := r.cache.Get(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("geocode cache lookup failed: %w", err)
	}
	if entry != nil {
		r.logger.Debug().
			Str("address", address).
			Bool("resolved", entry.Coordinates != nil).
			Msg("geocode cache hit")
		return entry.Coordinates, nil
	}

	coords, err := r.client.Geocode(ctx, address)
	if err != nil {
		return nil, err
	}

	if err := r.cache.Upsert(ctx, &model.GeocodedAddress{
		Address:     address,
		Coordinates: coords,
		RequestedAt: time.Now(),
	}); err != nil {
		return nil, fmt.Errorf("geocode cache write failed: %w", err)
	}

	if coords == nil {
		r.logger.Info().Str("address", address).Msg("address unresolvable, miss cached")
		return nil, nil
	}

	r.logger.Debug().Str("address", address).Msg("address resolved and cached")
	return coords, nil
}
