package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/harvestlane/harvestlane-backend/pkg/enums"
	"github.com/harvestlane/harvestlane-backend/pkg/types"
)

// Product represents a marketplace listing owned by exactly one seller.
//
// The seller_* columns are a denormalized snapshot of the owning seller's
// profile, written at product creation and refreshed only by the location
// sync engine. They may lag a profile update until the next sync; search
// reads them for the spatial filter and re-checks live data only for
// delivery availability.
type Product struct {
	ID          uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SellerID    uuid.UUID             `gorm:"column:seller_id;type:uuid;not null;index:idx_products_seller,priority:1"`
	SellerType  enums.SellerType      `gorm:"column:seller_type;type:seller_type;not null;index:idx_products_seller,priority:2"`
	Name        string                `gorm:"column:name;not null"`
	Slug        string                `gorm:"column:slug;uniqueIndex;not null"`
	Description string                `gorm:"column:description;type:text"`
	Category    enums.ProductCategory `gorm:"column:category;type:product_category;not null;default:'other'"`
	Status      enums.ProductStatus   `gorm:"column:status;type:product_status;not null;default:'draft'"`

	Price          decimal.Decimal        `gorm:"column:price;type:numeric(10,2);not null"`
	Quantity       int                    `gorm:"column:quantity;not null;default:0"`
	Tags           pq.StringArray         `gorm:"column:tags;type:text[]"`
	Certifications pq.StringArray         `gorm:"column:certifications;type:text[];not null;default:ARRAY[]::text[]"`
	Condition      enums.ProductCondition `gorm:"column:condition;type:product_condition;not null;default:'fresh'"`
	Origin         enums.ProductOrigin    `gorm:"column:origin;type:product_origin;not null;default:'local'"`

	IsAvailable bool `gorm:"column:is_available;not null;default:true"`
	PickupOnly  bool `gorm:"column:pickup_only;not null;default:false"`

	AverageRating float64 `gorm:"column:average_rating;type:numeric(3,2);not null;default:0"`
	ReviewCount   int     `gorm:"column:review_count;not null;default:0"`
	SalesCount    int     `gorm:"column:sales_count;not null;default:0"`

	// Cached seller location snapshot. NULL until the first sync.
	SellerLatitude         *float64              `gorm:"column:seller_latitude;type:numeric(10,8);index"`
	SellerLongitude        *float64              `gorm:"column:seller_longitude;type:numeric(11,8);index"`
	SellerLocation         *types.GeographyPoint `gorm:"column:seller_location;type:geography(Point,4326)"`
	SellerAddress          *string               `gorm:"column:seller_address"`
	SellerDeliveryRadiusKm *int                  `gorm:"column:seller_delivery_radius_km"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

// HasLocationSnapshot reports whether the product has ever been synced.
func (p Product) HasLocationSnapshot() bool {
	return p.SellerLatitude != nil && p.SellerLongitude != nil
}
