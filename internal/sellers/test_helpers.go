package sellers

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/harvestlane/harvestlane-backend/pkg/db/models"
	"github.com/harvestlane/harvestlane-backend/pkg/types"
)

func floatPtr(v float64) *float64 { return &v }

func mustCreateTestFarmer(t *testing.T, tx *gorm.DB) *models.Farmer {
	t.Helper()
	farmer := &models.Farmer{
		ID:               uuid.New(),
		FarmName:         "Green Acres",
		BusinessSlug:     fmt.Sprintf("green-acres-%s", uuid.NewString()),
		FarmAddress:      "4100 Valley Rd",
		Latitude:         floatPtr(49.2827),
		Longitude:        floatPtr(-123.1207),
		DeliveryRadiusKm: 25,
		DeliveryDays:     pq.StringArray{"saturday"},
		PickupLocations: types.PickupLocations{
			{Name: "Farm Gate", Address: "4100 Valley Rd", Latitude: 49.2827, Longitude: -123.1207},
		},
	}
	if err := tx.Create(farmer).Error; err != nil {
		t.Fatalf("create farmer: %v", err)
	}
	return farmer
}

func mustCreateTestRetailer(t *testing.T, tx *gorm.DB) *models.Retailer {
	t.Helper()
	retailer := &models.Retailer{
		ID:               uuid.New(),
		BusinessName:     "Corner Grocer",
		BusinessSlug:     fmt.Sprintf("corner-grocer-%s", uuid.NewString()),
		BusinessAddress:  "88 Main St",
		Latitude:         floatPtr(49.25),
		Longitude:        floatPtr(-123.00),
		DeliveryRadiusKm: 10,
	}
	if err := tx.Create(retailer).Error; err != nil {
		t.Fatalf("create retailer: %v", err)
	}
	return retailer
}
