package search

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/harvestlane/harvestlane-backend/internal/products"
	"github.com/harvestlane/harvestlane-backend/internal/sellers"
	"github.com/harvestlane/harvestlane-backend/pkg/config"
	"github.com/harvestlane/harvestlane-backend/pkg/db/models"
	"github.com/harvestlane/harvestlane-backend/pkg/enums"
	pkgerrors "github.com/harvestlane/harvestlane-backend/pkg/errors"
	"github.com/harvestlane/harvestlane-backend/pkg/pagination"
)

var (
	sellerPoint = struct{ lat, lng float64 }{49.2827, -123.1207}
	nearBuyer   = struct{ lat, lng float64 }{49.30, -123.10}
	farBuyer    = struct{ lat, lng float64 }{48.95, -123.10}
)

// fakeCatalog mirrors the repository contract: it applies availability and
// the bounding-box prefilter, leaving exact radius checks to the engine.
type fakeCatalog struct {
	rows     []models.Product
	failures int
	calls    int
}

func (f *fakeCatalog) SearchCandidates(_ context.Context, filters products.SearchFilters) ([]models.Product, error) {
	f.calls++
	if f.failures > 0 {
		f.failures--
		return nil, errors.New("transient catalog error")
	}

	var out []models.Product
	for _, row := range f.rows {
		if row.Status != enums.ProductStatusActive || !row.IsAvailable {
			continue
		}
		if filters.Bounds != nil {
			if row.SellerLatitude == nil || row.SellerLongitude == nil {
				continue
			}
			if *row.SellerLatitude < filters.Bounds.MinLat || *row.SellerLatitude > filters.Bounds.MaxLat {
				continue
			}
			if !filters.Bounds.Whole &&
				(*row.SellerLongitude < filters.Bounds.MinLng || *row.SellerLongitude > filters.Bounds.MaxLng) {
				continue
			}
		}
		out = append(out, row)
	}
	return out, nil
}

type fakeDirectory struct {
	profiles map[uuid.UUID]sellers.SellerProfile
	err      error
}

func (f *fakeDirectory) GetProfiles(_ context.Context, _ enums.SellerType, ids []uuid.UUID) (map[uuid.UUID]sellers.SellerProfile, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make(map[uuid.UUID]sellers.SellerProfile)
	for _, id := range ids {
		if p, ok := f.profiles[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func testSeller(radiusKm int) sellers.SellerProfile {
	lat, lng := sellerPoint.lat, sellerPoint.lng
	return sellers.SellerProfile{
		ID:               uuid.New(),
		Type:             enums.SellerTypeFarmer,
		DisplayName:      "Green Acres",
		Slug:             "green-acres",
		Latitude:         &lat,
		Longitude:        &lng,
		DeliveryRadiusKm: radiusKm,
		AverageRating:    4.8,
	}
}

func productFor(seller sellers.SellerProfile, name, price string) models.Product {
	return models.Product{
		ID:                     uuid.New(),
		SellerID:               seller.ID,
		SellerType:             seller.Type,
		Name:                   name,
		Slug:                   name,
		Status:                 enums.ProductStatusActive,
		IsAvailable:            true,
		Price:                  decimal.RequireFromString(price),
		SellerLatitude:         seller.Latitude,
		SellerLongitude:        seller.Longitude,
		SellerDeliveryRadiusKm: intPtr(seller.DeliveryRadiusKm),
		CreatedAt:              time.Now(),
	}
}

func newTestService(t *testing.T, catalog *fakeCatalog, directory *fakeDirectory) Service {
	t.Helper()
	cfg := config.SearchConfig{
		QueryTimeout:  time.Second,
		RetryAttempts: 2,
		RetryBackoff:  time.Millisecond,
	}
	svc, err := NewService(catalog, directory, cfg, nil, nil)
	require.NoError(t, err)
	return svc
}

func baseQuery() Query {
	return Query{Latitude: nearBuyer.lat, Longitude: nearBuyer.lng, RadiusKm: 10}
}

func TestSearchIncludesNearbySellerWithDelivery(t *testing.T) {
	seller := testSeller(25)
	catalog := &fakeCatalog{rows: []models.Product{productFor(seller, "tomatoes", "4.50")}}
	directory := &fakeDirectory{profiles: map[uuid.UUID]sellers.SellerProfile{seller.ID: seller}}
	svc := newTestService(t, catalog, directory)

	resp, err := svc.Search(context.Background(), baseQuery())
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)

	result := resp.Results[0]
	require.True(t, result.DeliveryAvailable)
	require.InDelta(t, 2.4, result.DistanceKm, 1.0)
	require.Equal(t, "Green Acres", result.Seller.Name)
	require.Equal(t, 1, resp.Meta.Total)
	require.Equal(t, 10.0, resp.Meta.SearchRadius)
}

func TestSearchExcludesSellerOutsideRadius(t *testing.T) {
	seller := testSeller(25)
	catalog := &fakeCatalog{rows: []models.Product{productFor(seller, "tomatoes", "4.50")}}
	directory := &fakeDirectory{profiles: map[uuid.UUID]sellers.SellerProfile{seller.ID: seller}}
	svc := newTestService(t, catalog, directory)

	// Buyer ~39 km south; the 10 km search radius excludes the seller.
	query := baseQuery()
	query.Latitude = farBuyer.lat
	query.Longitude = farBuyer.lng

	resp, err := svc.Search(context.Background(), query)
	require.NoError(t, err)
	require.Empty(t, resp.Results)
	require.Equal(t, 0, resp.Meta.Total)
}

func TestSearchExcludesUnavailableProducts(t *testing.T) {
	seller := testSeller(25)
	unavailable := productFor(seller, "wilted-lettuce", "1.00")
	unavailable.IsAvailable = false
	catalog := &fakeCatalog{rows: []models.Product{unavailable}}
	directory := &fakeDirectory{profiles: map[uuid.UUID]sellers.SellerProfile{seller.ID: seller}}
	svc := newTestService(t, catalog, directory)

	resp, err := svc.Search(context.Background(), baseQuery())
	require.NoError(t, err)
	require.Empty(t, resp.Results)
}

func TestSearchExcludesProductsWithoutSnapshot(t *testing.T) {
	seller := testSeller(25)
	unsynced := productFor(seller, "new-arrival", "2.00")
	unsynced.SellerLatitude = nil
	unsynced.SellerLongitude = nil
	catalog := &fakeCatalog{rows: []models.Product{unsynced}}
	directory := &fakeDirectory{profiles: map[uuid.UUID]sellers.SellerProfile{seller.ID: seller}}
	svc := newTestService(t, catalog, directory)

	resp, err := svc.Search(context.Background(), baseQuery())
	require.NoError(t, err)
	require.Empty(t, resp.Results)
}

func TestSearchPriceAscendingIsNonDecreasing(t *testing.T) {
	seller := testSeller(25)
	catalog := &fakeCatalog{rows: []models.Product{
		productFor(seller, "c", "7.25"),
		productFor(seller, "a", "2.00"),
		productFor(seller, "b", "4.10"),
	}}
	directory := &fakeDirectory{profiles: map[uuid.UUID]sellers.SellerProfile{seller.ID: seller}}
	svc := newTestService(t, catalog, directory)

	query := baseQuery()
	query.SortBy = enums.SearchSortByPriceAsc

	resp, err := svc.Search(context.Background(), query)
	require.NoError(t, err)
	require.Len(t, resp.Results, 3)
	for i := 1; i < len(resp.Results); i++ {
		require.True(t, resp.Results[i].Price.GreaterThanOrEqual(resp.Results[i-1].Price))
	}
}

func TestSearchDeterministicOrderingAndPagination(t *testing.T) {
	seller := testSeller(25)
	// Same price everywhere forces the id tie-break.
	rows := make([]models.Product, 5)
	for i := range rows {
		rows[i] = productFor(seller, "same", "3.00")
	}
	catalog := &fakeCatalog{rows: rows}
	directory := &fakeDirectory{profiles: map[uuid.UUID]sellers.SellerProfile{seller.ID: seller}}
	svc := newTestService(t, catalog, directory)

	query := baseQuery()
	query.SortBy = enums.SearchSortByPriceAsc

	first, err := svc.Search(context.Background(), query)
	require.NoError(t, err)
	second, err := svc.Search(context.Background(), query)
	require.NoError(t, err)

	require.Equal(t, ids(first.Results), ids(second.Results))

	// Page 1 + page 2 concatenate to the full ordering with no overlap.
	query.Page = pagination.Params{Page: 1, Limit: 3}
	pageOne, err := svc.Search(context.Background(), query)
	require.NoError(t, err)
	query.Page = pagination.Params{Page: 2, Limit: 3}
	pageTwo, err := svc.Search(context.Background(), query)
	require.NoError(t, err)

	require.Equal(t, 5, pageOne.Meta.Total)
	require.Equal(t, 5, pageTwo.Meta.Total)
	combined := append(ids(pageOne.Results), ids(pageTwo.Results)...)
	require.Equal(t, ids(first.Results), combined)
}

func TestSearchDeliveryUsesLiveRadius(t *testing.T) {
	seller := testSeller(25)
	product := productFor(seller, "tomatoes", "4.50")

	// Live profile shrank its radius to 1 km after the last sync; the
	// cached snapshot still says 25.
	live := seller
	live.DeliveryRadiusKm = 1
	catalog := &fakeCatalog{rows: []models.Product{product}}
	directory := &fakeDirectory{profiles: map[uuid.UUID]sellers.SellerProfile{seller.ID: live}}
	svc := newTestService(t, catalog, directory)

	resp, err := svc.Search(context.Background(), baseQuery())
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	require.False(t, resp.Results[0].DeliveryAvailable)
}

func TestSearchDeliveryAvailableFilterAppliesBeforePagination(t *testing.T) {
	delivering := testSeller(25)
	pickupOnly := testSeller(0)
	pickupOnly.DisplayName = "Pickup Farm"

	catalog := &fakeCatalog{rows: []models.Product{
		productFor(delivering, "delivered", "4.00"),
		productFor(pickupOnly, "pickup", "3.00"),
	}}
	directory := &fakeDirectory{profiles: map[uuid.UUID]sellers.SellerProfile{
		delivering.ID: delivering,
		pickupOnly.ID: pickupOnly,
	}}
	svc := newTestService(t, catalog, directory)

	wantDelivery := true
	query := baseQuery()
	query.DeliveryAvailable = &wantDelivery

	resp, err := svc.Search(context.Background(), query)
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	require.Equal(t, "delivered", resp.Results[0].Name)
	require.Equal(t, 1, resp.Meta.Total)
}

func TestSearchDegradesWhenSellerLookupFails(t *testing.T) {
	seller := testSeller(25)
	catalog := &fakeCatalog{rows: []models.Product{productFor(seller, "tomatoes", "4.50")}}
	directory := &fakeDirectory{err: errors.New("directory down")}
	svc := newTestService(t, catalog, directory)

	resp, err := svc.Search(context.Background(), baseQuery())
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)

	result := resp.Results[0]
	require.Equal(t, UnknownSellerName, result.Seller.Name)
	// Cached radius 25 covers the ~2.4 km distance.
	require.True(t, result.DeliveryAvailable)
}

func TestSearchRetriesTransientCatalogErrors(t *testing.T) {
	seller := testSeller(25)
	catalog := &fakeCatalog{
		rows:     []models.Product{productFor(seller, "tomatoes", "4.50")},
		failures: 1,
	}
	directory := &fakeDirectory{profiles: map[uuid.UUID]sellers.SellerProfile{seller.ID: seller}}
	svc := newTestService(t, catalog, directory)

	resp, err := svc.Search(context.Background(), baseQuery())
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	require.Equal(t, 2, catalog.calls)
}

func TestSearchValidationRejectsWithoutClamping(t *testing.T) {
	svc := newTestService(t, &fakeCatalog{}, &fakeDirectory{})

	cases := []struct {
		name   string
		mutate func(*Query)
	}{
		{"bad latitude", func(q *Query) { q.Latitude = 91 }},
		{"bad longitude", func(q *Query) { q.Longitude = -181 }},
		{"radius too small", func(q *Query) { q.RadiusKm = 0.5 }},
		{"radius too large", func(q *Query) { q.RadiusKm = 501 }},
		{"page below one", func(q *Query) { q.Page.Page = -1 }},
		{"limit too large", func(q *Query) { q.Page.Limit = 101 }},
		{"unknown sort", func(q *Query) { q.SortBy = "alphabetical" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			query := baseQuery()
			tc.mutate(&query)
			_, err := svc.Search(context.Background(), query)
			require.Error(t, err)

			coded := pkgerrors.As(err)
			require.NotNil(t, coded)
			require.Equal(t, pkgerrors.CodeValidation, coded.Code())
		})
	}
}

func TestSearchDefaultsRadiusAndSort(t *testing.T) {
	seller := testSeller(25)
	catalog := &fakeCatalog{rows: []models.Product{productFor(seller, "tomatoes", "4.50")}}
	directory := &fakeDirectory{profiles: map[uuid.UUID]sellers.SellerProfile{seller.ID: seller}}
	svc := newTestService(t, catalog, directory)

	query := baseQuery()
	query.RadiusKm = 0

	resp, err := svc.Search(context.Background(), query)
	require.NoError(t, err)
	require.Equal(t, DefaultRadiusKm, resp.Meta.SearchRadius)
	require.Equal(t, pagination.DefaultLimit, resp.Meta.Limit)
}

func ids(results []Result) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(results))
	for _, r := range results {
		out = append(out, r.ID)
	}
	return out
}
