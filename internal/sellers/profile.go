package sellers

import (
	"time"

	"github.com/google/uuid"

	"github.com/harvestlane/harvestlane-backend/internal/geo"
	"github.com/harvestlane/harvestlane-backend/pkg/db/models"
	"github.com/harvestlane/harvestlane-backend/pkg/enums"
	"github.com/harvestlane/harvestlane-backend/pkg/types"
)

// SellerProfile is the read model shared by search, sync, and the public
// seller endpoints. Farmers and retailers project onto the same shape so
// downstream code never branches on seller type for location math.
type SellerProfile struct {
	ID               uuid.UUID             `json:"id"`
	Type             enums.SellerType      `json:"type"`
	DisplayName      string                `json:"displayName"`
	Slug             string                `json:"slug"`
	Address          string                `json:"address"`
	Latitude         *float64              `json:"latitude"`
	Longitude        *float64              `json:"longitude"`
	DeliveryRadiusKm int                   `json:"deliveryRadiusKm"`
	DeliveryDays     []string              `json:"deliveryDays"`
	PickupLocations  types.PickupLocations `json:"pickupLocations"`
	AverageRating    float64               `json:"averageRating"`
	TotalReviews     int                   `json:"totalReviews"`
	CreatedAt        time.Time             `json:"createdAt"`
}

// HasCoordinates reports whether the profile can participate in spatial
// search and delivery checks.
func (p SellerProfile) HasCoordinates() bool {
	return p.Latitude != nil && p.Longitude != nil
}

// Point returns the profile's coordinates. Callers must check
// HasCoordinates first.
func (p SellerProfile) Point() geo.Point {
	return geo.Point{Lat: *p.Latitude, Lng: *p.Longitude}
}

// DeliversTo reports whether the seller's delivery circle covers the buyer.
// Sellers with no coordinates or a zero radius never deliver.
func (p SellerProfile) DeliversTo(buyer geo.Point) bool {
	if !p.HasCoordinates() || p.DeliveryRadiusKm <= 0 {
		return false
	}
	return geo.Distance(p.Point(), buyer) <= float64(p.DeliveryRadiusKm)
}

func profileFromFarmer(f models.Farmer) SellerProfile {
	return SellerProfile{
		ID:               f.ID,
		Type:             enums.SellerTypeFarmer,
		DisplayName:      f.FarmName,
		Slug:             f.BusinessSlug,
		Address:          f.FarmAddress,
		Latitude:         f.Latitude,
		Longitude:        f.Longitude,
		DeliveryRadiusKm: f.DeliveryRadiusKm,
		DeliveryDays:     f.DeliveryDays,
		PickupLocations:  f.PickupLocations,
		AverageRating:    f.AverageRating,
		TotalReviews:     f.TotalReviews,
		CreatedAt:        f.CreatedAt,
	}
}

func profileFromRetailer(r models.Retailer) SellerProfile {
	return SellerProfile{
		ID:               r.ID,
		Type:             enums.SellerTypeRetailer,
		DisplayName:      r.BusinessName,
		Slug:             r.BusinessSlug,
		Address:          r.BusinessAddress,
		Latitude:         r.Latitude,
		Longitude:        r.Longitude,
		DeliveryRadiusKm: r.DeliveryRadiusKm,
		DeliveryDays:     r.DeliveryDays,
		PickupLocations:  r.PickupLocations,
		AverageRating:    r.AverageRating,
		TotalReviews:     r.TotalReviews,
		CreatedAt:        r.CreatedAt,
	}
}
