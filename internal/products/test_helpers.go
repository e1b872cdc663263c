package products

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/harvestlane/harvestlane-backend/pkg/db/models"
	"github.com/harvestlane/harvestlane-backend/pkg/enums"
	"github.com/harvestlane/harvestlane-backend/pkg/types"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
func strPtr(v string) *string     { return &v }

type testProductOpts struct {
	name     string
	category enums.ProductCategory
	lat      *float64
	lng      *float64
	radius   *int
	certs    []string
	price    string
}

func mustCreateTestProduct(t *testing.T, tx *gorm.DB, sellerID uuid.UUID, opts testProductOpts) *models.Product {
	t.Helper()

	if opts.name == "" {
		opts.name = "Heirloom Tomatoes"
	}
	if opts.category == "" {
		opts.category = enums.ProductCategoryVegetables
	}
	if opts.price == "" {
		opts.price = "4.50"
	}

	product := &models.Product{
		ID:             uuid.New(),
		SellerID:       sellerID,
		SellerType:     enums.SellerTypeFarmer,
		Name:           opts.name,
		Slug:           fmt.Sprintf("%s-%s", "product", uuid.NewString()),
		Category:       opts.category,
		Status:         enums.ProductStatusActive,
		Price:          decimal.RequireFromString(opts.price),
		Quantity:       10,
		Certifications: pq.StringArray(opts.certs),
		Condition:      enums.ProductConditionFresh,
		Origin:         enums.ProductOriginLocal,
		IsAvailable:    true,
	}
	product.SellerLatitude = opts.lat
	product.SellerLongitude = opts.lng
	product.SellerDeliveryRadiusKm = opts.radius
	if opts.lat != nil && opts.lng != nil {
		point := types.NewGeographyPoint(*opts.lat, *opts.lng)
		product.SellerLocation = &point
	}

	if err := tx.Create(product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return product
}
