package search

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"

	"github.com/harvestlane/harvestlane-backend/internal/geo"
	"github.com/harvestlane/harvestlane-backend/internal/products"
	"github.com/harvestlane/harvestlane-backend/internal/sellers"
	"github.com/harvestlane/harvestlane-backend/pkg/config"
	"github.com/harvestlane/harvestlane-backend/pkg/db/models"
	"github.com/harvestlane/harvestlane-backend/pkg/enums"
	pkgerrors "github.com/harvestlane/harvestlane-backend/pkg/errors"
	"github.com/harvestlane/harvestlane-backend/pkg/logger"
	"github.com/harvestlane/harvestlane-backend/pkg/metrics"
	"github.com/harvestlane/harvestlane-backend/pkg/pagination"
)

type candidateSource interface {
	SearchCandidates(ctx context.Context, filters products.SearchFilters) ([]models.Product, error)
}

type sellerDirectory interface {
	GetProfiles(ctx context.Context, sellerType enums.SellerType, ids []uuid.UUID) (map[uuid.UUID]sellers.SellerProfile, error)
}

// Service exposes the geospatial product search.
type Service interface {
	Search(ctx context.Context, query Query) (*Response, error)
}

type service struct {
	catalog candidateSource
	sellers sellerDirectory
	cfg     config.SearchConfig
	metrics *metrics.SearchMetrics
	logg    *logger.Logger
}

// NewService builds a search service with the provided dependencies.
func NewService(catalog candidateSource, directory sellerDirectory, cfg config.SearchConfig, m *metrics.SearchMetrics, logg *logger.Logger) (Service, error) {
	if catalog == nil {
		return nil, fmt.Errorf("product catalog required")
	}
	if directory == nil {
		return nil, fmt.Errorf("seller directory required")
	}
	return &service{catalog: catalog, sellers: directory, cfg: cfg, metrics: m, logg: logg}, nil
}

type match struct {
	product           models.Product
	distanceKm        float64
	deliveryAvailable bool
	pickupAvailable   bool
	seller            *sellers.SellerProfile
}

// Search runs the full pipeline: SQL attribute + bounding-box prefilter,
// exact radius check, delivery annotation against live seller data,
// deterministic sort, offset pagination, and seller enrichment.
func (s *service) Search(ctx context.Context, query Query) (*Response, error) {
	q, err := query.Normalize()
	if err != nil {
		return nil, err
	}

	started := time.Now()
	if s.cfg.QueryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.QueryTimeout)
		defer cancel()
	}

	buyer := q.Buyer()
	bounds := geo.BoundingBox(buyer, q.RadiusKm)
	filters := products.SearchFilters{
		Query:          q.Text,
		Category:       q.Category,
		SellerType:     q.SellerType,
		Certifications: q.Certifications,
		MinPrice:       q.MinPrice,
		MaxPrice:       q.MaxPrice,
		Condition:      q.Condition,
		Origin:         q.Origin,
		PickupOnly:     q.PickupOnly,
		MinRating:      q.MinRating,
		Bounds:         &bounds,
	}

	candidates, err := s.fetchCandidates(ctx, filters)
	if err != nil {
		s.metrics.IncFailure()
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "query product catalog")
	}

	matches := make([]match, 0, len(candidates))
	for _, candidate := range candidates {
		if !candidate.HasLocationSnapshot() {
			continue
		}
		cached := geo.Point{Lat: *candidate.SellerLatitude, Lng: *candidate.SellerLongitude}
		distance := geo.Distance(buyer, cached)
		if distance > q.RadiusKm {
			continue
		}
		matches = append(matches, match{product: candidate, distanceKm: distance})
	}

	// The delivery filter needs live seller data for every match, not just
	// the returned page, so the total reflects the filter.
	if q.DeliveryAvailable != nil {
		s.annotate(ctx, buyer, matches)
		filtered := matches[:0]
		for _, m := range matches {
			if m.deliveryAvailable == *q.DeliveryAvailable {
				filtered = append(filtered, m)
			}
		}
		matches = filtered
	}

	sortMatches(matches, q.SortBy)
	total := len(matches)
	page := pagination.Window(matches, q.Page)

	if q.DeliveryAvailable == nil {
		s.annotate(ctx, buyer, page)
	}

	results := make([]Result, 0, len(page))
	for _, m := range page {
		results = append(results, buildResult(m))
	}

	s.metrics.ObserveSearch(q.SortBy.String(), time.Since(started), total)

	return &Response{
		Results: results,
		Meta: Meta{
			Meta:         pagination.MetaFor(q.Page, total),
			SearchRadius: q.RadiusKm,
			UserLocation: UserLocation{Latitude: q.Latitude, Longitude: q.Longitude},
		},
	}, nil
}

// fetchCandidates retries transient catalog errors a bounded number of
// times; the read is idempotent.
func (s *service) fetchCandidates(ctx context.Context, filters products.SearchFilters) ([]models.Product, error) {
	attempts := uint64(s.cfg.RetryAttempts)
	backoff := retry.WithMaxRetries(attempts, retry.NewConstant(s.cfg.RetryBackoff))

	var candidates []models.Product
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		var fetchErr error
		candidates, fetchErr = s.catalog.SearchCandidates(ctx, filters)
		if fetchErr != nil {
			return retry.RetryableError(fetchErr)
		}
		return nil
	})
	return candidates, err
}

// annotate fills delivery/pickup availability and the live seller profile
// for the given matches. Lookup failures degrade to the cached snapshot.
func (s *service) annotate(ctx context.Context, buyer geo.Point, matches []match) {
	byType := make(map[enums.SellerType][]uuid.UUID)
	seen := make(map[uuid.UUID]struct{})
	for _, m := range matches {
		if _, ok := seen[m.product.SellerID]; ok {
			continue
		}
		seen[m.product.SellerID] = struct{}{}
		byType[m.product.SellerType] = append(byType[m.product.SellerType], m.product.SellerID)
	}

	profiles := make(map[uuid.UUID]sellers.SellerProfile)
	for sellerType, ids := range byType {
		batch, err := s.sellers.GetProfiles(ctx, sellerType, ids)
		if err != nil {
			if s.logg != nil {
				s.logg.Warn(ctx, "seller batch lookup failed, degrading to cached snapshots")
			}
			continue
		}
		for id, profile := range batch {
			profiles[id] = profile
		}
	}

	for i := range matches {
		m := &matches[i]
		if profile, ok := profiles[m.product.SellerID]; ok {
			p := profile
			m.seller = &p
			m.deliveryAvailable = p.DeliversTo(buyer)
			m.pickupAvailable = m.product.PickupOnly || len(p.PickupLocations) > 0
			continue
		}
		// Fall back to the cached radius against the cached point.
		if m.product.SellerDeliveryRadiusKm != nil {
			m.deliveryAvailable = float64(*m.product.SellerDeliveryRadiusKm) >= m.distanceKm
		}
		m.pickupAvailable = m.product.PickupOnly
	}
}

func buildResult(m match) Result {
	result := resultFromProduct(m.product, m.distanceKm)
	result.DeliveryAvailable = m.deliveryAvailable
	result.PickupAvailable = m.pickupAvailable

	if m.seller != nil {
		result.Seller = SellerInfo{
			ID:               m.seller.ID,
			Type:             m.seller.Type,
			Name:             m.seller.DisplayName,
			Slug:             m.seller.Slug,
			Latitude:         m.seller.Latitude,
			Longitude:        m.seller.Longitude,
			DeliveryRadiusKm: m.seller.DeliveryRadiusKm,
			DeliveryDays:     m.seller.DeliveryDays,
			PickupLocations:  m.seller.PickupLocations,
			AverageRating:    m.seller.AverageRating,
			TotalReviews:     m.seller.TotalReviews,
		}
		return result
	}

	info := SellerInfo{
		ID:   m.product.SellerID,
		Type: m.product.SellerType,
		Name: UnknownSellerName,
	}
	info.Latitude = m.product.SellerLatitude
	info.Longitude = m.product.SellerLongitude
	if m.product.SellerDeliveryRadiusKm != nil {
		info.DeliveryRadiusKm = *m.product.SellerDeliveryRadiusKm
	}
	result.Seller = info
	return result
}
