// Package dispatch decides which restaurants can service an order and ranks
// them by distance from the delivery address.
package dispatch

import "food-dispatch/internal/model"

// MenuIndex maps a restaurant ID to the set of product IDs it currently
// offers. Built once per dashboard render and consulted in memory, it
// replaces per-order menu re-querying.
type MenuIndex map[int64]map[string]struct{}

// BuildMenuIndex builds the index from the restaurant list and the
// availability-scoped menu entries. Entries with Availability false do not
// contribute even if present. Every restaurant gets a set, so one with no
// available entries maps to an empty set and can never satisfy a non-empty
// order.
func BuildMenuIndex(restaurants []model.Restaurant, entries []model.MenuEntry) MenuIndex {
	idx := make(MenuIndex, len(restaurants))
	for _, rest := range restaurants {
		idx[rest.ID] = make(map[string]struct{})
	}

	for _, entry := range entries {
		if !entry.Availability {
			continue
		}
		offered, ok := idx[entry.RestaurantID]
		if !ok {
			// Entry for a restaurant missing from the list; index it anyway.
			offered = make(map[string]struct{})
			idx[entry.RestaurantID] = offered
		}
		offered[entry.ProductID] = struct{}{}
	}

	return idx
}

// Offers reports whether the restaurant currently offers the product.
func (idx MenuIndex) Offers(restaurantID int64, productID string) bool {
	_, ok := idx[restaurantID][productID]
	return ok
}

// OfferedCount returns the number of products the restaurant offers.
func (idx MenuIndex) OfferedCount(restaurantID int64) int {
	return len(idx[restaurantID])
}
