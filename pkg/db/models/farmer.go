package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/harvestlane/harvestlane-backend/pkg/types"
)

// Farmer is a producer-type seller profile. Latitude/Longitude are nullable
// because profiles can exist before geocoding completes; products of an
// unlocated farmer are excluded from spatial search until a sync runs.
type Farmer struct {
	ID           uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID       *uuid.UUID `gorm:"column:user_id;type:uuid;uniqueIndex"`
	FarmName     string     `gorm:"column:farm_name;not null"`
	BusinessSlug string     `gorm:"column:business_slug;uniqueIndex;not null"`
	FarmAddress  string     `gorm:"column:farm_address"`

	Latitude         *float64              `gorm:"column:latitude;type:numeric(10,8)"`
	Longitude        *float64              `gorm:"column:longitude;type:numeric(11,8)"`
	Location         *types.GeographyPoint `gorm:"column:location;type:geography(Point,4326)"`
	DeliveryRadiusKm int                   `gorm:"column:delivery_radius_km;not null;default:0"`
	DeliveryDays     pq.StringArray        `gorm:"column:delivery_days;type:text[]"`
	PickupLocations  types.PickupLocations `gorm:"column:pickup_locations;type:jsonb;not null;default:'[]'"`

	AverageRating float64 `gorm:"column:average_rating;type:numeric(3,2);not null;default:0"`
	TotalReviews  int     `gorm:"column:total_reviews;not null;default:0"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

// HasCoordinates reports whether the profile has been geocoded.
func (f Farmer) HasCoordinates() bool {
	return f.Latitude != nil && f.Longitude != nil
}
