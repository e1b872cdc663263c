package products

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/harvestlane/harvestlane-backend/internal/sellers"
	dbpkg "github.com/harvestlane/harvestlane-backend/pkg/db"
	"github.com/harvestlane/harvestlane-backend/pkg/db/models"
	"github.com/harvestlane/harvestlane-backend/pkg/enums"
	pkgerrors "github.com/harvestlane/harvestlane-backend/pkg/errors"
	"github.com/harvestlane/harvestlane-backend/pkg/logger"
)

type productRepository interface {
	Create(ctx context.Context, product *models.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	FindBySlug(ctx context.Context, slug string) (*models.Product, error)
}

type sellerResolver interface {
	GetProfile(ctx context.Context, sellerType enums.SellerType, id uuid.UUID) (*sellers.SellerProfile, error)
}

// Service exposes product write and read operations.
type Service interface {
	Create(ctx context.Context, input CreateProductInput) (*models.Product, error)
	GetBySlug(ctx context.Context, slug string) (*models.Product, error)
}

type service struct {
	repo    productRepository
	sellers sellerResolver
	logg    *logger.Logger
}

// NewService builds a product service with the provided dependencies.
func NewService(repo productRepository, sellerSvc sellerResolver, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if sellerSvc == nil {
		return nil, fmt.Errorf("seller service required")
	}
	return &service{repo: repo, sellers: sellerSvc, logg: logg}, nil
}

// CreateProductInput captures the fields required to list a product.
type CreateProductInput struct {
	SellerID       uuid.UUID
	SellerType     enums.SellerType
	Name           string
	Slug           string
	Description    string
	Category       enums.ProductCategory
	Price          decimal.Decimal
	Quantity       int
	Tags           []string
	Certifications []string
	Condition      enums.ProductCondition
	Origin         enums.ProductOrigin
	PickupOnly     bool
}

func (input CreateProductInput) validate() error {
	if input.Name == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if input.Slug == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "slug is required")
	}
	if !input.SellerType.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown seller type")
	}
	if input.Category != "" && !input.Category.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown category")
	}
	if input.Condition != "" && !input.Condition.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown condition")
	}
	if input.Origin != "" && !input.Origin.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown origin")
	}
	if input.Price.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "price must be >= 0")
	}
	if input.Quantity < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be >= 0")
	}
	return nil
}

// Create lists a product for the owning seller. The seller's current
// location is copied onto the row so the product is searchable immediately,
// before any sync has run.
func (s *service) Create(ctx context.Context, input CreateProductInput) (*models.Product, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	profile, err := s.sellers.GetProfile(ctx, input.SellerType, input.SellerID)
	if err != nil {
		return nil, err
	}

	product := &models.Product{
		SellerID:       input.SellerID,
		SellerType:     input.SellerType,
		Name:           input.Name,
		Slug:           input.Slug,
		Description:    input.Description,
		Category:       defaultCategory(input.Category),
		Status:         enums.ProductStatusActive,
		Price:          input.Price,
		Quantity:       input.Quantity,
		Tags:           toStringArray(input.Tags),
		Certifications: toStringArray(input.Certifications),
		Condition:      defaultCondition(input.Condition),
		Origin:         defaultOrigin(input.Origin),
		IsAvailable:    true,
		PickupOnly:     input.PickupOnly,
	}

	product.SellerLatitude = profile.Latitude
	product.SellerLongitude = profile.Longitude
	if profile.Address != "" {
		address := profile.Address
		product.SellerAddress = &address
	}
	radius := profile.DeliveryRadiusKm
	product.SellerDeliveryRadiusKm = &radius
	if profile.HasCoordinates() {
		point := newLocationPoint(*profile.Latitude, *profile.Longitude)
		product.SellerLocation = &point
	}

	if err := s.repo.Create(ctx, product); err != nil {
		if dbpkg.IsUniqueViolation(err, "ux_products_slug") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "product slug already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create product")
	}

	if s.logg != nil {
		logCtx := s.logg.WithSellerID(ctx, input.SellerID.String())
		s.logg.Info(logCtx, "product created")
	}
	return product, nil
}

func (s *service) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	if slug == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "slug is required")
	}
	product, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}
	return product, nil
}

func defaultCategory(c enums.ProductCategory) enums.ProductCategory {
	if c == "" {
		return enums.ProductCategoryOther
	}
	return c
}

func defaultCondition(c enums.ProductCondition) enums.ProductCondition {
	if c == "" {
		return enums.ProductConditionFresh
	}
	return c
}

func defaultOrigin(o enums.ProductOrigin) enums.ProductOrigin {
	if o == "" {
		return enums.ProductOriginLocal
	}
	return o
}
