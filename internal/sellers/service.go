package sellers

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/harvestlane/harvestlane-backend/internal/geo"
	"github.com/harvestlane/harvestlane-backend/pkg/enums"
	pkgerrors "github.com/harvestlane/harvestlane-backend/pkg/errors"
	"github.com/harvestlane/harvestlane-backend/pkg/logger"
	"github.com/harvestlane/harvestlane-backend/pkg/outbox"
	"github.com/harvestlane/harvestlane-backend/pkg/outbox/payloads"
	"github.com/harvestlane/harvestlane-backend/pkg/types"
)

type sellerRepository interface {
	FindByID(ctx context.Context, sellerType enums.SellerType, id uuid.UUID) (*SellerProfile, error)
	FindBySlug(ctx context.Context, slug string) (*SellerProfile, error)
	FindByIDs(ctx context.Context, sellerType enums.SellerType, ids []uuid.UUID) (map[uuid.UUID]SellerProfile, error)
	UpdateLocationWithTx(tx *gorm.DB, sellerType enums.SellerType, id uuid.UUID, updates map[string]any) error
	FindByIDWithTx(tx *gorm.DB, sellerType enums.SellerType, id uuid.UUID) (*SellerProfile, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type eventEmitter interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

// Service exposes seller profile operations.
type Service interface {
	GetProfile(ctx context.Context, sellerType enums.SellerType, id uuid.UUID) (*SellerProfile, error)
	GetBySlug(ctx context.Context, slug string) (*SellerProfile, error)
	GetProfiles(ctx context.Context, sellerType enums.SellerType, ids []uuid.UUID) (map[uuid.UUID]SellerProfile, error)
	UpdateLocation(ctx context.Context, sellerType enums.SellerType, id uuid.UUID, input UpdateLocationInput) (*SellerProfile, error)
}

type service struct {
	repo    sellerRepository
	tx      txRunner
	emitter eventEmitter
	logg    *logger.Logger
}

// NewService builds a seller service with the provided dependencies.
func NewService(repo sellerRepository, tx txRunner, emitter eventEmitter, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("seller repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if emitter == nil {
		return nil, fmt.Errorf("event emitter required")
	}
	return &service{repo: repo, tx: tx, emitter: emitter, logg: logg}, nil
}

// UpdateLocationInput captures the location fields a seller may change.
// Coordinates are mandatory; nil optional fields keep their current value.
type UpdateLocationInput struct {
	Latitude         float64
	Longitude        float64
	Address          *string
	DeliveryRadiusKm *int
	DeliveryDays     *[]string
	PickupLocations  *types.PickupLocations
}

func (s *service) GetProfile(ctx context.Context, sellerType enums.SellerType, id uuid.UUID) (*SellerProfile, error) {
	profile, err := s.repo.FindByID(ctx, sellerType, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "seller not found")
		}
		if errors.Is(err, ErrUnknownSellerType) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown seller type")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load seller")
	}
	return profile, nil
}

func (s *service) GetBySlug(ctx context.Context, slug string) (*SellerProfile, error) {
	if slug == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "slug is required")
	}
	profile, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "seller not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load seller by slug")
	}
	return profile, nil
}

func (s *service) GetProfiles(ctx context.Context, sellerType enums.SellerType, ids []uuid.UUID) (map[uuid.UUID]SellerProfile, error) {
	profiles, err := s.repo.FindByIDs(ctx, sellerType, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "batch load sellers")
	}
	return profiles, nil
}

// UpdateLocation persists the new location and queues a
// seller.location_changed event in the same transaction. Product snapshots
// are rewritten later by the sync engine, never here.
func (s *service) UpdateLocation(ctx context.Context, sellerType enums.SellerType, id uuid.UUID, input UpdateLocationInput) (*SellerProfile, error) {
	if !sellerType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown seller type")
	}
	point := geo.Point{Lat: input.Latitude, Lng: input.Longitude}
	if err := point.Validate(); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid coordinates")
	}
	if input.DeliveryRadiusKm != nil && *input.DeliveryRadiusKm < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "delivery radius must be >= 0")
	}

	location := types.NewGeographyPoint(input.Latitude, input.Longitude)
	updates := map[string]any{
		"latitude":  input.Latitude,
		"longitude": input.Longitude,
		"location":  location,
	}
	if input.Address != nil {
		key := "farm_address"
		if sellerType == enums.SellerTypeRetailer {
			key = "business_address"
		}
		updates[key] = *input.Address
	}
	if input.DeliveryRadiusKm != nil {
		updates["delivery_radius_km"] = *input.DeliveryRadiusKm
	}
	if input.DeliveryDays != nil {
		updates["delivery_days"] = toStringArray(*input.DeliveryDays)
	}
	if input.PickupLocations != nil {
		updates["pickup_locations"] = *input.PickupLocations
	}

	var updated *SellerProfile
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.UpdateLocationWithTx(tx, sellerType, id, updates); err != nil {
			return err
		}
		profile, err := s.repo.FindByIDWithTx(tx, sellerType, id)
		if err != nil {
			return err
		}
		updated = profile

		return s.emitter.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventSellerLocationChanged,
			AggregateType: aggregateFor(sellerType),
			AggregateID:   id,
			Data: payloads.SellerLocationChangedEvent{
				SellerID:         id,
				SellerType:       sellerType,
				Latitude:         profile.Latitude,
				Longitude:        profile.Longitude,
				Address:          profile.Address,
				DeliveryRadiusKm: profile.DeliveryRadiusKm,
			},
		})
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "seller not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update seller location")
	}

	if s.logg != nil {
		logCtx := s.logg.WithSellerID(ctx, id.String())
		logCtx = s.logg.WithSellerType(logCtx, sellerType.String())
		s.logg.Info(logCtx, "seller location updated")
	}
	return updated, nil
}

func toStringArray(values []string) pq.StringArray {
	out := make(pq.StringArray, len(values))
	copy(out, values)
	return out
}

func aggregateFor(sellerType enums.SellerType) enums.OutboxAggregateType {
	if sellerType == enums.SellerTypeRetailer {
		return enums.AggregateRetailer
	}
	return enums.AggregateFarmer
}
