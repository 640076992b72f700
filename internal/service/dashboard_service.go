package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"food-dispatch/internal/dispatch"
	"food-dispatch/internal/geocode"
	"food-dispatch/internal/model"
	"food-dispatch/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// dashboardService implements DashboardService.
type dashboardService struct {
	orderRepo      repository.OrderRepository
	restaurantRepo repository.RestaurantRepository
	resolver       geocode.Resolver
	logger         zerolog.Logger
}

// NewDashboardService creates a new dashboard service.
func NewDashboardService(
	orderRepo repository.OrderRepository,
	restaurantRepo repository.RestaurantRepository,
	resolver geocode.Resolver,
	logger zerolog.Logger,
) DashboardService {
	return &dashboardService{
		orderRepo:      orderRepo,
		restaurantRepo: restaurantRepo,
		resolver:       resolver,
		logger:         logger.With().Str("service", "dashboard").Logger(),
	}
}

// geocoderWarning is shown on an order whose address resolution hit a
// provider outage; the rest of the render proceeds.
const geocoderWarning = "geocoding service unavailable, candidates not ranked"

// RenderOrders produces a view model per unprocessed order.
//
// All catalogue data is read and indexed once, and every distinct delivery
// address is resolved before any order is ranked, so one render observes one
// consistent cache state. Per-order failures (unresolvable address, provider
// outage, no qualifying restaurant) never drop the order or abort siblings;
// store-level failures abort the whole render.
func (s *dashboardService) RenderOrders(ctx context.Context) ([]model.OrderViewModel, error) {
	orders, err := s.orderRepo.GetUnprocessed(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load unprocessed orders: %w", err)
	}

	orderIDs := make([]uuid.UUID, len(orders))
	for i, order := range orders {
		orderIDs[i] = order.ID
	}

	itemsByOrder, err := s.orderRepo.GetLineItems(ctx, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load order line items: %w", err)
	}

	restaurants, err := s.restaurantRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load restaurants: %w", err)
	}

	entries, err := s.restaurantRepo.GetAvailableMenuEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load menu entries: %w", err)
	}

	index := dispatch.BuildMenuIndex(restaurants, entries)

	restaurantsByID := make(map[int64]model.Restaurant, len(restaurants))
	for _, rest := range restaurants {
		restaurantsByID[rest.ID] = rest
	}

	resolutions, err := s.resolveAddresses(ctx, distinctAddresses(orders))
	if err != nil {
		return nil, err
	}

	views := make([]model.OrderViewModel, 0, len(orders))
	for _, order := range orders {
		items := itemsByOrder[order.ID]
		view := model.OrderViewModel{
			ID:           order.ID,
			Firstname:    order.Firstname,
			Lastname:     order.Lastname,
			Phonenumber:  order.Phonenumber,
			Address:      order.Address,
			Total:        model.Total(items),
			StatusLabel:  order.Status.Label(),
			PaymentLabel: order.PaymentMethod.Label(),
			Comment:      order.Comment,
			RegisteredAt: order.RegisteredAt,
			Candidates:   []model.RankedCandidate{},
		}

		productIDs := make([]string, len(items))
		for i, item := range items {
			productIDs[i] = item.ProductID
		}

		resolution := resolutions[order.Address]
		if resolution.err != nil {
			view.Warning = geocoderWarning
			views = append(views, view)
			continue
		}

		if resolution.coords == nil {
			// Unresolvable address: the order stays visible with no
			// ranked candidates rather than a fabricated location.
			views = append(views, view)
			continue
		}

		candidateIDs := dispatch.Match(productIDs, index)
		candidates := make([]model.Restaurant, 0, len(candidateIDs))
		for _, id := range candidateIDs {
			candidates = append(candidates, restaurantsByID[id])
		}

		view.Candidates = dispatch.RankByDistance(*resolution.coords, candidates)
		views = append(views, view)
	}

	s.logger.Debug().
		Int("orders", len(views)).
		Int("restaurants", len(restaurants)).
		Msg("dashboard assembled")

	return views, nil
}

// addressResolution is the outcome of resolving one distinct address.
type addressResolution struct {
	coords *model.Coordinates
	err    error
}

// resolveAddresses resolves all distinct delivery addresses concurrently and
// waits for every resolution before returning, so ranking never interleaves
// with cache writes. Provider outages are kept per-address; any other
// failure is a store failure and aborts the render.
func (s *dashboardService) resolveAddresses(ctx context.Context, addresses []string) (map[string]addressResolution, error) {
	type result struct {
		address string
		res     addressResolution
	}

	resultChan := make(chan result, len(addresses))
	var wg sync.WaitGroup

	for _, address := range addresses {
		wg.Add(1)
		go func(addr string) {
			defer wg.Done()

			coords, err := s.resolver.Resolve(ctx, addr)
			resultChan <- result{
				address: addr,
				res:     addressResolution{coords: coords, err: err},
			}
		}(address)
	}

	wg.Wait()
	close(resultChan)

	resolutions := make(map[string]addressResolution, len(addresses))
	for r := range resultChan {
		if r.res.err != nil {
			if !errors.Is(r.res.err, model.ErrGeocoderUnavailable) {
				return nil, fmt.Errorf("address resolution failed: %w", r.res.err)
			}
			s.logger.Warn().
				Err(r.res.err).
				Str("address", r.address).
				Msg("geocoder unavailable for address")
		}
		resolutions[r.address] = r.res
	}

	return resolutions, nil
}

// distinctAddresses returns each delivery address once, preserving first
// appearance order.
func distinctAddresses(orders []model.Order) []string {
	seen := make(map[string]struct{}, len(orders))
	var addresses []string
	for _, order := range orders {
		if _, ok := seen[order.Address]; ok {
			continue
		}
		seen[order.Address] = struct{}{}
		addresses = append(addresses, order.Address)
	}
	return addresses
}
