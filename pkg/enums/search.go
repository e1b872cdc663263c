package enums

import "fmt"

// SearchSortBy enumerates the supported search result orderings.
type SearchSortBy string

const (
	SearchSortByDistance  SearchSortBy = "distance"
	SearchSortByPriceAsc  SearchSortBy = "price_asc"
	SearchSortByPriceDesc SearchSortBy = "price_desc"
	SearchSortByRating    SearchSortBy = "rating"
	SearchSortByNewest    SearchSortBy = "newest"
	SearchSortByPopular   SearchSortBy = "popular"
)

var validSearchSortBys = []SearchSortBy{
	SearchSortByDistance,
	SearchSortByPriceAsc,
	SearchSortByPriceDesc,
	SearchSortByRating,
	SearchSortByNewest,
	SearchSortByPopular,
}

// String implements fmt.Stringer.
func (s SearchSortBy) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SearchSortBy.
func (s SearchSortBy) IsValid() bool {
	for _, candidate := range validSearchSortBys {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSearchSortBy converts raw input into a SearchSortBy.
func ParseSearchSortBy(value string) (SearchSortBy, error) {
	for _, candidate := range validSearchSortBys {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid sort order %q", value)
}
