package products

import (
	"github.com/shopspring/decimal"

	"github.com/harvestlane/harvestlane-backend/internal/geo"
	"github.com/harvestlane/harvestlane-backend/pkg/enums"
)

// SearchFilters describe the attribute filters applied in SQL before the
// exact distance check. Nil pointers mean "not filtered".
type SearchFilters struct {
	Query          string
	Category       *enums.ProductCategory
	SellerType     *enums.SellerType
	Certifications []string
	MinPrice       *decimal.Decimal
	MaxPrice       *decimal.Decimal
	Condition      *enums.ProductCondition
	Origin         *enums.ProductOrigin
	PickupOnly     *bool
	MinRating      *float64

	// Bounds prefilters on the indexed snapshot columns. Products without
	// a snapshot never match a spatial search.
	Bounds *geo.Bounds
}
