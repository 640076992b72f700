package dispatch

import "sort"

// Match returns the IDs of restaurants whose offered-product set is a
// superset of the order's product set. Quantities are irrelevant to
// eligibility, only product identity matters.
//
// An empty product set yields no candidates: order validation is supposed to
// reject such orders upstream, and silently letting every restaurant qualify
// through a vacuous subset test would be worse than returning nothing.
//
// The result is sorted by restaurant ID for determinism; distance ordering
// is the ranker's job.
func Match(productIDs []string, idx MenuIndex) []int64 {
	if len(productIDs) == 0 {
		return nil
	}

	var qualified []int64
	for restaurantID, offered := range idx {
		servesAll := true
		for _, productID := range productIDs {
			if _, ok := offered[productID]; !ok {
				servesAll = false
				break
			}
		}
		if servesAll {
			qualified = append(qualified, restaurantID)
		}
	}

	sort.Slice(qualified, func(i, j int) bool { return qualified[i] < qualified[j] })

	return qualified
}
