package service

import (
	"math"
	"sort"

	"star-burger/internal/domain"

	"github.com/umahmood/haversine"
)

// AvailabilityIndex maps a product ID to the set of restaurant IDs currently
// selling it. It is rebuilt per request batch, never cached across requests.
type AvailabilityIndex map[int]map[int]struct{}

// BuildAvailabilityIndex indexes menu items with availability=true.
func BuildAvailabilityIndex(items []domain.MenuItem) AvailabilityIndex {
	index := make(AvailabilityIndex)
	for _, item := range items {
		if !item.Availability {
			continue
		}
		restaurants, ok := index[item.ProductID]
		if !ok {
			restaurants = make(map[int]struct{})
			index[item.ProductID] = restaurants
		}
		restaurants[item.RestaurantID] = struct{}{}
	}
	return index
}

// MatchRestaurants intersects the restaurant sets of every requested product,
// yielding the restaurants able to fulfil the whole order. An empty result is
// a valid outcome; an empty product list is rejected by order validation
// before this point.
func MatchRestaurants(productIDs []int, index AvailabilityIndex) map[int]struct{} {
	var matched map[int]struct{}
	for _, productID := range productIDs {
		sellers := index[productID]
		if matched == nil {
			matched = make(map[int]struct{}, len(sellers))
			for id := range sellers {
				matched[id] = struct{}{}
			}
			continue
		}
		for id := range matched {
			if _, ok := sellers[id]; !ok {
				delete(matched, id)
			}
		}
	}
	if matched == nil {
		matched = map[int]struct{}{}
	}
	return matched
}

// Distance is the great-circle distance between two points in kilometers,
// rounded to 3 decimal places.
func Distance(from, to domain.Coordinates) float64 {
	_, km := haversine.Distance(
		haversine.Coord{Lat: from.Lat, Lon: from.Lon},
		haversine.Coord{Lat: to.Lat, Lon: to.Lon},
	)
	return math.Round(km*1000) / 1000
}

// RankByDistance orders candidate restaurants by distance to the order,
// ascending, breaking ties by restaurant ID. When the order coordinates are
// unknown every candidate is returned without a distance, in input order.
// Restaurants without stored coordinates keep a nil distance and sort after
// all ranked entries.
func RankByDistance(restaurants []domain.Restaurant, orderCoords *domain.Coordinates) []domain.RestaurantDistance {
	if orderCoords == nil {
		result := make([]domain.RestaurantDistance, 0, len(restaurants))
		for _, restaurant := range restaurants {
			result = append(result, domain.RestaurantDistance{Restaurant: restaurant})
		}
		return result
	}

	ranked := make([]domain.RestaurantDistance, 0, len(restaurants))
	var unranked []domain.RestaurantDistance
	for _, restaurant := range restaurants {
		if restaurant.Coordinates == nil {
			unranked = append(unranked, domain.RestaurantDistance{Restaurant: restaurant})
			continue
		}
		distance := Distance(*restaurant.Coordinates, *orderCoords)
		ranked = append(ranked, domain.RestaurantDistance{Restaurant: restaurant, Distance: &distance})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if *ranked[i].Distance == *ranked[j].Distance {
			return ranked[i].Restaurant.ID < ranked[j].Restaurant.ID
		}
		return *ranked[i].Distance < *ranked[j].Distance
	})

	return append(ranked, unranked...)
}
