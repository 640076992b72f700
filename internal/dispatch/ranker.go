package dispatch

import (
	"sort"

	"food-dispatch/internal/model"

	"github.com/umahmood/haversine"
)

// RankByDistance computes the great-circle distance in kilometers from the
// order's resolved coordinates to each candidate restaurant and returns the
// candidates nearest first. Equal distances are broken by ascending
// restaurant ID so the ranking is deterministic. Candidates without stored
// coordinates cannot be ranked and are skipped.
//
// Callers with an unresolved origin must not call this at all; they surface
// an empty candidate list instead.
func RankByDistance(origin model.Coordinates, candidates []model.Restaurant) []model.RankedCandidate {
	from := haversine.Coord{
		Lat: origin.Latitude.InexactFloat64(),
		Lon: origin.Longitude.InexactFloat64(),
	}

	ranked := make([]model.RankedCandidate, 0, len(candidates))
	for _, rest := range candidates {
		if rest.Coordinates == nil {
			continue
		}
		to := haversine.Coord{
			Lat: rest.Coordinates.Latitude.InexactFloat64(),
			Lon: rest.Coordinates.Longitude.InexactFloat64(),
		}
		_, km := haversine.Distance(from, to)
		ranked = append(ranked, model.RankedCandidate{
			RestaurantID:   rest.ID,
			RestaurantName: rest.Name,
			DistanceKm:     km,
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].DistanceKm != ranked[j].DistanceKm {
			return ranked[i].DistanceKm < ranked[j].DistanceKm
		}
		return ranked[i].RestaurantID < ranked[j].RestaurantID
	})

	return ranked
}
