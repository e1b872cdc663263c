package locationsync

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/harvestlane/harvestlane-backend/internal/products"
	"github.com/harvestlane/harvestlane-backend/internal/sellers"
	"github.com/harvestlane/harvestlane-backend/pkg/config"
	"github.com/harvestlane/harvestlane-backend/pkg/enums"
	pkgerrors "github.com/harvestlane/harvestlane-backend/pkg/errors"
	"github.com/harvestlane/harvestlane-backend/pkg/logger"
	"github.com/harvestlane/harvestlane-backend/pkg/metrics"
)

type sellerDirectory interface {
	GetProfile(ctx context.Context, sellerType enums.SellerType, id uuid.UUID) (*sellers.SellerProfile, error)
}

type sellerEnumerator interface {
	ListIDs(ctx context.Context, sellerType enums.SellerType) ([]uuid.UUID, error)
}

type productCatalog interface {
	BulkUpdateLocationSnapshot(ctx context.Context, sellerType enums.SellerType, sellerID uuid.UUID, snapshot products.LocationSnapshot) (int64, error)
}

// Summary aggregates the outcome of a full resync. Total is the number of
// product rows rewritten across both seller types.
type Summary struct {
	FarmersUpdated   int64 `json:"farmersUpdated"`
	RetailersUpdated int64 `json:"retailersUpdated"`
	Total            int64 `json:"total"`
	SellersProcessed int64 `json:"sellersProcessed"`
	SellersSkipped   int64 `json:"sellersSkipped"`
	SellersFailed    int64 `json:"sellersFailed"`
}


// Service keeps product location snapshots consistent with seller profiles.
type Service interface {
	SyncSellerProducts(ctx context.Context, sellerType enums.SellerType, sellerID uuid.UUID) (int64, error)
	SyncAll(ctx context.Context) (*Summary, error)
}

type service struct {
	directory  sellerDirectory
	enumerator sellerEnumerator
	catalog    productCatalog
	cfg        config.SyncConfig
	metrics    *metrics.SyncMetrics
	logg       *logger.Logger
}

// NewService builds a sync service with the provided dependencies.
func NewService(directory sellerDirectory, enumerator sellerEnumerator, catalog productCatalog, cfg config.SyncConfig, m *metrics.SyncMetrics, logg *logger.Logger) (Service, error) {
	if directory == nil {
		return nil, fmt.Errorf("seller directory required")
	}
	if enumerator == nil {
		return nil, fmt.Errorf("seller enumerator required")
	}
	if catalog == nil {
		return nil, fmt.Errorf("product catalog required")
	}
	return &service{
		directory:  directory,
		enumerator: enumerator,
		catalog:    catalog,
		cfg:        cfg,
		metrics:    m,
		logg:       logg,
	}, nil
}

// SyncSellerProducts copies the seller's canonical location onto every
// product the seller owns. A missing profile or missing coordinates is a
// logged no-op, not an error: the seller simply has nothing to sync yet.
func (s *service) SyncSellerProducts(ctx context.Context, sellerType enums.SellerType, sellerID uuid.UUID) (int64, error) {
	if !sellerType.IsValid() {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "unknown seller type")
	}

	started := time.Now()
	logCtx := ctx
	if s.logg != nil {
		logCtx = s.logg.WithSellerID(ctx, sellerID.String())
		logCtx = s.logg.WithSellerType(logCtx, sellerType.String())
	}

	profile, err := s.directory.GetProfile(ctx, sellerType, sellerID)
	if err != nil {
		if isNotFound(err) {
			if s.logg != nil {
				s.logg.Warn(logCtx, "sync skipped: seller profile not found")
			}
			return 0, nil
		}
		return 0, err
	}
	if !profile.HasCoordinates() {
		if s.logg != nil {
			s.logg.Warn(logCtx, "sync skipped: seller has no coordinates")
		}
		return 0, nil
	}

	address := profile.Address
	radius := profile.DeliveryRadiusKm
	snapshot := products.LocationSnapshot{
		Latitude:         profile.Latitude,
		Longitude:        profile.Longitude,
		Address:          &address,
		DeliveryRadiusKm: &radius,
	}

	count, err := s.updateWithRetry(ctx, sellerType, sellerID, snapshot)
	if err != nil {
		s.metrics.IncFailure("seller")
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "bulk update product snapshots")
	}

	s.metrics.ObserveDuration("seller", time.Since(started))
	s.metrics.AddProductsUpdated(sellerType.String(), int(count))
	if s.logg != nil {
		s.logg.Info(logCtx, fmt.Sprintf("synced %d product snapshots", count))
	}
	return count, nil
}

// SyncAll resyncs every seller with bounded parallelism. Per-seller
// failures are logged, counted, and skipped so one bad record cannot abort
// the batch; the returned error is non-nil only when seller enumeration
// itself fails.
func (s *service) SyncAll(ctx context.Context) (*Summary, error) {
	started := time.Now()
	summary := &Summary{}
	var failures error

	for _, sellerType := range enums.SellerTypes() {
		ids, err := s.enumerator.ListIDs(ctx, sellerType)
		if err != nil {
			s.metrics.IncFailure("all")
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "enumerate sellers")
		}

		var processed atomic.Int64
		var updated atomic.Int64
		var skipped atomic.Int64
		var failed atomic.Int64
		var failMu sync.Mutex

		group, groupCtx := errgroup.WithContext(ctx)
		group.SetLimit(s.parallelism())

		for _, id := range ids {
			id := id
			group.Go(func() error {
				count, err := s.SyncSellerProducts(groupCtx, sellerType, id)
				if err != nil {
					failed.Add(1)
					failMu.Lock()
					failures = multierr.Append(failures, fmt.Errorf("seller %s: %w", id, err))
					failMu.Unlock()
					if s.logg != nil {
						s.logg.Error(groupCtx, "seller sync failed", err)
					}
					return nil
				}
				if count == 0 {
					skipped.Add(1)
				}
				updated.Add(count)

				done := processed.Add(1)
				if s.cfg.CheckpointEvery > 0 && done%int64(s.cfg.CheckpointEvery) == 0 && s.logg != nil {
					checkpointCtx := s.logg.WithFields(groupCtx, map[string]any{
						"seller_type": sellerType.String(),
						"processed":   done,
						"total":       len(ids),
					})
					s.logg.Info(checkpointCtx, "sync checkpoint")
				}
				return nil
			})
		}
		if err := group.Wait(); err != nil {
			return nil, err
		}

		switch sellerType {
		case enums.SellerTypeFarmer:
			summary.FarmersUpdated += updated.Load()
		case enums.SellerTypeRetailer:
			summary.RetailersUpdated += updated.Load()
		}
		summary.SellersProcessed += processed.Load() + failed.Load()
		summary.SellersSkipped += skipped.Load()
		summary.SellersFailed += failed.Load()
	}

	summary.Total = summary.FarmersUpdated + summary.RetailersUpdated

	s.metrics.ObserveDuration("all", time.Since(started))
	if failures != nil && s.logg != nil {
		s.logg.Error(ctx, fmt.Sprintf("full sync finished with %d failed sellers", summary.SellersFailed), failures)
	}
	if s.logg != nil {
		logCtx := s.logg.WithFields(ctx, map[string]any{
			"products_updated": summary.Total,
			"sellers":          summary.SellersProcessed,
			"skipped":          summary.SellersSkipped,
			"failed":           summary.SellersFailed,
		})
		s.logg.Info(logCtx, "full sync completed")
	}
	return summary, nil
}

func (s *service) updateWithRetry(ctx context.Context, sellerType enums.SellerType, sellerID uuid.UUID, snapshot products.LocationSnapshot) (int64, error) {
	attempts := uint64(s.cfg.RetryAttempts)
	backoff := retry.WithMaxRetries(attempts, retry.NewConstant(s.cfg.RetryBackoff))

	var count int64
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		var updateErr error
		count, updateErr = s.catalog.BulkUpdateLocationSnapshot(ctx, sellerType, sellerID, snapshot)
		if updateErr != nil {
			return retry.RetryableError(updateErr)
		}
		return nil
	})
	return count, err
}

func (s *service) parallelism() int {
	if s.cfg.Parallelism > 0 {
		return s.cfg.Parallelism
	}
	return 1
}

func isNotFound(err error) bool {
	if coded := pkgerrors.As(err); coded != nil {
		return coded.Code() == pkgerrors.CodeNotFound
	}
	return false
}
