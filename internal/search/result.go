package search

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/harvestlane/harvestlane-backend/pkg/db/models"
	"github.com/harvestlane/harvestlane-backend/pkg/enums"
	"github.com/harvestlane/harvestlane-backend/pkg/pagination"
	"github.com/harvestlane/harvestlane-backend/pkg/types"
)

// UnknownSellerName is used when a seller profile cannot be resolved
// during enrichment.
const UnknownSellerName = "Unknown Seller"

// SellerInfo is the seller snapshot attached to each search result.
type SellerInfo struct {
	ID               uuid.UUID             `json:"id"`
	Type             enums.SellerType      `json:"type"`
	Name             string                `json:"name"`
	Slug             string                `json:"slug,omitempty"`
	Latitude         *float64              `json:"latitude,omitempty"`
	Longitude        *float64              `json:"longitude,omitempty"`
	DeliveryRadiusKm int                   `json:"deliveryRadiusKm"`
	DeliveryDays     []string              `json:"deliveryDays,omitempty"`
	PickupLocations  types.PickupLocations `json:"pickupLocations,omitempty"`
	AverageRating    float64               `json:"averageRating"`
	TotalReviews     int                   `json:"totalReviews"`
}

// Result is one delivery-annotated product match.
type Result struct {
	ID                uuid.UUID              `json:"id"`
	Name              string                 `json:"name"`
	Slug              string                 `json:"slug"`
	Description       string                 `json:"description,omitempty"`
	Category          enums.ProductCategory  `json:"category"`
	Price             decimal.Decimal        `json:"price"`
	Quantity          int                    `json:"quantity"`
	Tags              []string               `json:"tags,omitempty"`
	Certifications    []string               `json:"certifications,omitempty"`
	Condition         enums.ProductCondition `json:"condition"`
	Origin            enums.ProductOrigin    `json:"origin"`
	PickupOnly        bool                   `json:"pickupOnly"`
	AverageRating     float64                `json:"averageRating"`
	ReviewCount       int                    `json:"reviewCount"`
	CreatedAt         time.Time              `json:"createdAt"`
	DistanceKm        float64                `json:"distanceKm"`
	DeliveryAvailable bool                   `json:"deliveryAvailable"`
	PickupAvailable   bool                   `json:"pickupAvailable"`
	Seller            SellerInfo             `json:"seller"`
}

// UserLocation echoes the buyer coordinate back in the response meta.
type UserLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Meta describes the returned page plus the spatial query parameters.
type Meta struct {
	pagination.Meta
	SearchRadius float64      `json:"searchRadius"`
	UserLocation UserLocation `json:"userLocation"`
}

// Response is the full search payload.
type Response struct {
	Results []Result `json:"results"`
	Meta    Meta     `json:"meta"`
}

func resultFromProduct(product models.Product, distanceKm float64) Result {
	return Result{
		ID:             product.ID,
		Name:           product.Name,
		Slug:           product.Slug,
		Description:    product.Description,
		Category:       product.Category,
		Price:          product.Price,
		Quantity:       product.Quantity,
		Tags:           product.Tags,
		Certifications: product.Certifications,
		Condition:      product.Condition,
		Origin:         product.Origin,
		PickupOnly:     product.PickupOnly,
		AverageRating:  product.AverageRating,
		ReviewCount:    product.ReviewCount,
		CreatedAt:      product.CreatedAt,
		DistanceKm:     distanceKm,
	}
}
