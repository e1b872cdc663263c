package search

import (
	"github.com/shopspring/decimal"

	"github.com/harvestlane/harvestlane-backend/internal/geo"
	"github.com/harvestlane/harvestlane-backend/pkg/enums"
	pkgerrors "github.com/harvestlane/harvestlane-backend/pkg/errors"
	"github.com/harvestlane/harvestlane-backend/pkg/pagination"
)

const (
	// DefaultRadiusKm is applied when the query omits a radius.
	DefaultRadiusKm = 50.0
	// MinRadiusKm and MaxRadiusKm bound explicit radii. Values outside the
	// range are rejected, never clamped.
	MinRadiusKm = 1.0
	MaxRadiusKm = 500.0
)

// Query is a validated product search request.
type Query struct {
	Latitude  float64
	Longitude float64
	RadiusKm  float64

	Text           string
	Category       *enums.ProductCategory
	SellerType     *enums.SellerType
	Certifications []string
	MinPrice       *decimal.Decimal
	MaxPrice       *decimal.Decimal
	Condition      *enums.ProductCondition
	Origin         *enums.ProductOrigin
	MinRating      *float64

	DeliveryAvailable *bool
	PickupOnly        *bool

	SortBy enums.SearchSortBy
	Page   pagination.Params
}

// Buyer returns the validated buyer coordinate.
func (q Query) Buyer() geo.Point {
	return geo.Point{Lat: q.Latitude, Lng: q.Longitude}
}

// Normalize applies defaults and rejects out-of-range values. The returned
// query is the one the engine executes.
func (q Query) Normalize() (Query, error) {
	if err := q.Buyer().Validate(); err != nil {
		return Query{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid buyer coordinates")
	}

	if q.RadiusKm == 0 {
		q.RadiusKm = DefaultRadiusKm
	}
	if q.RadiusKm < MinRadiusKm || q.RadiusKm > MaxRadiusKm {
		return Query{}, pkgerrors.New(pkgerrors.CodeValidation, "radius must be between 1 and 500 km")
	}

	if q.SortBy == "" {
		q.SortBy = enums.SearchSortByDistance
	}
	if !q.SortBy.IsValid() {
		return Query{}, pkgerrors.New(pkgerrors.CodeValidation, "unknown sort order")
	}

	if q.MinPrice != nil && q.MaxPrice != nil && q.MinPrice.GreaterThan(*q.MaxPrice) {
		return Query{}, pkgerrors.New(pkgerrors.CodeValidation, "minPrice must be <= maxPrice")
	}
	if q.MinRating != nil && (*q.MinRating < 0 || *q.MinRating > 5) {
		return Query{}, pkgerrors.New(pkgerrors.CodeValidation, "minRating must be between 0 and 5")
	}

	page, err := q.Page.Normalize()
	if err != nil {
		return Query{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid pagination")
	}
	q.Page = page

	return q, nil
}
