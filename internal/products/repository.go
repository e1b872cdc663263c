package products

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/harvestlane/harvestlane-backend/pkg/db/models"
	"github.com/harvestlane/harvestlane-backend/pkg/enums"
	"github.com/harvestlane/harvestlane-backend/pkg/types"
)

// LocationSnapshot is the denormalized seller location written onto
// product rows. A nil Latitude/Longitude clears the snapshot and removes
// the products from spatial search.
type LocationSnapshot struct {
	Latitude         *float64
	Longitude        *float64
	Address          *string
	DeliveryRadiusKm *int
}

// Repository handles product persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to product operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new product row.
func (r *Repository) Create(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

// FindByID loads a product by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindBySlug loads a product by its unique slug.
func (r *Repository) FindBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// SearchCandidates returns every active product matching the attribute
// filters and the bounding-box prefilter. Exact radius filtering happens
// in the search engine afterwards, so this deliberately over-fetches the
// rectangle corners.
func (r *Repository) SearchCandidates(ctx context.Context, filters SearchFilters) ([]models.Product, error) {
	qb := r.db.WithContext(ctx).Model(&models.Product{}).
		Where("status = ?", enums.ProductStatusActive).
		Where("is_available = ?", true)

	if filters.Query != "" {
		pattern := "%" + strings.ToLower(strings.TrimSpace(filters.Query)) + "%"
		qb = qb.Where(
			"(LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR EXISTS (SELECT 1 FROM unnest(tags) AS tag WHERE LOWER(tag) LIKE ?))",
			pattern, pattern, pattern,
		)
	}
	if filters.Category != nil {
		qb = qb.Where("category = ?", *filters.Category)
	}
	if filters.SellerType != nil {
		qb = qb.Where("seller_type = ?", *filters.SellerType)
	}
	if len(filters.Certifications) > 0 {
		qb = qb.Where("certifications && ?", pq.StringArray(filters.Certifications))
	}
	if filters.MinPrice != nil {
		qb = qb.Where("price >= ?", *filters.MinPrice)
	}
	if filters.MaxPrice != nil {
		qb = qb.Where("price <= ?", *filters.MaxPrice)
	}
	if filters.Condition != nil {
		qb = qb.Where("condition = ?", *filters.Condition)
	}
	if filters.Origin != nil {
		qb = qb.Where("origin = ?", *filters.Origin)
	}
	if filters.PickupOnly != nil {
		qb = qb.Where("pickup_only = ?", *filters.PickupOnly)
	}
	if filters.MinRating != nil {
		qb = qb.Where("average_rating >= ?", *filters.MinRating)
	}

	if filters.Bounds != nil {
		qb = qb.Where("seller_latitude IS NOT NULL AND seller_longitude IS NOT NULL").
			Where("seller_latitude BETWEEN ? AND ?", filters.Bounds.MinLat, filters.Bounds.MaxLat)
		if !filters.Bounds.Whole {
			qb = qb.Where("seller_longitude BETWEEN ? AND ?", filters.Bounds.MinLng, filters.Bounds.MaxLng)
		}
	}

	var candidates []models.Product
	if err := qb.Find(&candidates).Error; err != nil {
		return nil, err
	}
	return candidates, nil
}

// ListBySeller returns all products owned by the given seller.
func (r *Repository) ListBySeller(ctx context.Context, sellerType enums.SellerType, sellerID uuid.UUID) ([]models.Product, error) {
	var rows []models.Product
	err := r.db.WithContext(ctx).
		Where("seller_id = ? AND seller_type = ?", sellerID, sellerType).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

// CountBySeller counts products owned by the given seller, soft-deleted
// rows excluded.
func (r *Repository) CountBySeller(ctx context.Context, sellerType enums.SellerType, sellerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Product{}).
		Where("seller_id = ? AND seller_type = ?", sellerID, sellerType).
		Count(&count).Error
	return count, err
}

// BulkUpdateLocationSnapshot rewrites the cached seller location on every
// product owned by the seller in one statement. Rewriting identical values
// is harmless, which keeps retries and duplicate events safe.
func (r *Repository) BulkUpdateLocationSnapshot(ctx context.Context, sellerType enums.SellerType, sellerID uuid.UUID, snapshot LocationSnapshot) (int64, error) {
	updates := map[string]any{
		"seller_latitude":           snapshot.Latitude,
		"seller_longitude":          snapshot.Longitude,
		"seller_address":            snapshot.Address,
		"seller_delivery_radius_km": snapshot.DeliveryRadiusKm,
	}
	if snapshot.Latitude != nil && snapshot.Longitude != nil {
		updates["seller_location"] = types.NewGeographyPoint(*snapshot.Latitude, *snapshot.Longitude)
	} else {
		updates["seller_location"] = nil
	}

	result := r.db.WithContext(ctx).Model(&models.Product{}).
		Where("seller_id = ? AND seller_type = ?", sellerID, sellerType).
		Updates(updates)
	return result.RowsAffected, result.Error
}
