package search

import (
	"sort"

	"github.com/harvestlane/harvestlane-backend/pkg/enums"
)

// sortMatches orders matches by the requested key with product id as the
// final tie-breaker, so identical queries always paginate identically.
func sortMatches(matches []match, sortBy enums.SearchSortBy) {
	sort.Slice(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		switch sortBy {
		case enums.SearchSortByPriceAsc:
			if cmp := a.product.Price.Cmp(b.product.Price); cmp != 0 {
				return cmp < 0
			}
		case enums.SearchSortByPriceDesc:
			if cmp := a.product.Price.Cmp(b.product.Price); cmp != 0 {
				return cmp > 0
			}
		case enums.SearchSortByRating:
			if a.product.AverageRating != b.product.AverageRating {
				return a.product.AverageRating > b.product.AverageRating
			}
		case enums.SearchSortByNewest:
			if !a.product.CreatedAt.Equal(b.product.CreatedAt) {
				return a.product.CreatedAt.After(b.product.CreatedAt)
			}
		case enums.SearchSortByPopular:
			if a.product.SalesCount != b.product.SalesCount {
				return a.product.SalesCount > b.product.SalesCount
			}
		default:
			if a.distanceKm != b.distanceKm {
				return a.distanceKm < b.distanceKm
			}
		}
		return a.product.ID.String() < b.product.ID.String()
	})
}
