package sellers

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/harvestlane/harvestlane-backend/pkg/db/models"
	"github.com/harvestlane/harvestlane-backend/pkg/enums"
)

// ErrUnknownSellerType is returned when a seller type outside the known
// variants reaches the persistence layer.
var ErrUnknownSellerType = errors.New("unknown seller type")

// Repository handles farmer and retailer persistence behind the unified
// SellerProfile view.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to seller operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByID loads a seller profile by type and id.
func (r *Repository) FindByID(ctx context.Context, sellerType enums.SellerType, id uuid.UUID) (*SellerProfile, error) {
	switch sellerType {
	case enums.SellerTypeFarmer:
		var farmer models.Farmer
		if err := r.db.WithContext(ctx).Where("id = ?", id).First(&farmer).Error; err != nil {
			return nil, err
		}
		profile := profileFromFarmer(farmer)
		return &profile, nil
	case enums.SellerTypeRetailer:
		var retailer models.Retailer
		if err := r.db.WithContext(ctx).Where("id = ?", id).First(&retailer).Error; err != nil {
			return nil, err
		}
		profile := profileFromRetailer(retailer)
		return &profile, nil
	default:
		return nil, ErrUnknownSellerType
	}
}

// FindBySlug resolves a business slug across both seller tables, farmers
// first. Slugs are globally unique so at most one table matches.
func (r *Repository) FindBySlug(ctx context.Context, slug string) (*SellerProfile, error) {
	var farmer models.Farmer
	err := r.db.WithContext(ctx).Where("business_slug = ?", slug).First(&farmer).Error
	if err == nil {
		profile := profileFromFarmer(farmer)
		return &profile, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var retailer models.Retailer
	if err := r.db.WithContext(ctx).Where("business_slug = ?", slug).First(&retailer).Error; err != nil {
		return nil, err
	}
	profile := profileFromRetailer(retailer)
	return &profile, nil
}

// FindByIDs batch-loads profiles of one seller type keyed by id. Missing
// ids are simply absent from the map.
func (r *Repository) FindByIDs(ctx context.Context, sellerType enums.SellerType, ids []uuid.UUID) (map[uuid.UUID]SellerProfile, error) {
	result := make(map[uuid.UUID]SellerProfile, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	switch sellerType {
	case enums.SellerTypeFarmer:
		var farmers []models.Farmer
		if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&farmers).Error; err != nil {
			return nil, err
		}
		for _, farmer := range farmers {
			result[farmer.ID] = profileFromFarmer(farmer)
		}
	case enums.SellerTypeRetailer:
		var retailers []models.Retailer
		if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&retailers).Error; err != nil {
			return nil, err
		}
		for _, retailer := range retailers {
			result[retailer.ID] = profileFromRetailer(retailer)
		}
	default:
		return nil, ErrUnknownSellerType
	}
	return result, nil
}

// ListIDs returns every seller id of the given type, ordered by creation
// time so full resyncs make stable progress.
func (r *Repository) ListIDs(ctx context.Context, sellerType enums.SellerType) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	var err error
	switch sellerType {
	case enums.SellerTypeFarmer:
		err = r.db.WithContext(ctx).Model(&models.Farmer{}).
			Order("created_at ASC").Pluck("id", &ids).Error
	case enums.SellerTypeRetailer:
		err = r.db.WithContext(ctx).Model(&models.Retailer{}).
			Order("created_at ASC").Pluck("id", &ids).Error
	default:
		return nil, ErrUnknownSellerType
	}
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// UpdateLocationWithTx persists the location fields inside the provided
// transaction so the outbox event commits atomically with the change.
func (r *Repository) UpdateLocationWithTx(tx *gorm.DB, sellerType enums.SellerType, id uuid.UUID, updates map[string]any) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}

	var result *gorm.DB
	switch sellerType {
	case enums.SellerTypeFarmer:
		result = tx.Model(&models.Farmer{}).Where("id = ?", id).Updates(updates)
	case enums.SellerTypeRetailer:
		result = tx.Model(&models.Retailer{}).Where("id = ?", id).Updates(updates)
	default:
		return ErrUnknownSellerType
	}
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindByIDWithTx loads the profile inside the provided transaction.
func (r *Repository) FindByIDWithTx(tx *gorm.DB, sellerType enums.SellerType, id uuid.UUID) (*SellerProfile, error) {
	if tx == nil {
		return nil, gorm.ErrInvalidTransaction
	}
	switch sellerType {
	case enums.SellerTypeFarmer:
		var farmer models.Farmer
		if err := tx.First(&farmer, "id = ?", id).Error; err != nil {
			return nil, err
		}
		profile := profileFromFarmer(farmer)
		return &profile, nil
	case enums.SellerTypeRetailer:
		var retailer models.Retailer
		if err := tx.First(&retailer, "id = ?", id).Error; err != nil {
			return nil, err
		}
		profile := profileFromRetailer(retailer)
		return &profile, nil
	default:
		return nil, ErrUnknownSellerType
	}
}
