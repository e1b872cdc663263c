package products

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/harvestlane/harvestlane-backend/internal/geo"
	"github.com/harvestlane/harvestlane-backend/pkg/enums"
)

func TestSearchCandidatesBoundingBox(t *testing.T) {
	conn := openTestDB(t)
	tx := conn.Begin()
	defer tx.Rollback()

	seller := uuid.New()
	inside := mustCreateTestProduct(t, tx, seller, testProductOpts{
		name: "Close Carrots",
		lat:  floatPtr(49.2827), lng: floatPtr(-123.1207), radius: intPtr(25),
	})
	mustCreateTestProduct(t, tx, seller, testProductOpts{
		name: "Far Figs",
		lat:  floatPtr(43.6532), lng: floatPtr(-79.3832), radius: intPtr(25),
	})
	mustCreateTestProduct(t, tx, seller, testProductOpts{
		name: "Unlocated Lettuce",
	})

	repo := NewRepository(tx)
	bounds := geo.BoundingBox(geo.Point{Lat: 49.30, Lng: -123.10}, 10)

	candidates, err := repo.SearchCandidates(context.Background(), SearchFilters{Bounds: &bounds})
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	require.Equal(t, inside.ID, candidates[0].ID)
}

func TestSearchCandidatesCertificationOverlap(t *testing.T) {
	conn := openTestDB(t)
	tx := conn.Begin()
	defer tx.Rollback()

	seller := uuid.New()
	organic := mustCreateTestProduct(t, tx, seller, testProductOpts{
		name: "Organic Kale", certs: []string{"organic", "locally_grown"},
	})
	mustCreateTestProduct(t, tx, seller, testProductOpts{
		name: "Plain Kale",
	})

	repo := NewRepository(tx)
	candidates, err := repo.SearchCandidates(context.Background(), SearchFilters{
		Certifications: []string{"organic"},
	})
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	require.Equal(t, organic.ID, candidates[0].ID)
}

func TestSearchCandidatesTextQuery(t *testing.T) {
	conn := openTestDB(t)
	tx := conn.Begin()
	defer tx.Rollback()

	seller := uuid.New()
	match := mustCreateTestProduct(t, tx, seller, testProductOpts{name: "Golden Beets"})
	mustCreateTestProduct(t, tx, seller, testProductOpts{name: "Red Apples"})

	repo := NewRepository(tx)
	candidates, err := repo.SearchCandidates(context.Background(), SearchFilters{Query: "beet"})
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	require.Equal(t, match.ID, candidates[0].ID)
}

func TestBulkUpdateLocationSnapshot(t *testing.T) {
	conn := openTestDB(t)
	tx := conn.Begin()
	defer tx.Rollback()

	seller := uuid.New()
	other := uuid.New()
	mustCreateTestProduct(t, tx, seller, testProductOpts{name: "First"})
	mustCreateTestProduct(t, tx, seller, testProductOpts{name: "Second"})
	untouched := mustCreateTestProduct(t, tx, other, testProductOpts{name: "Other Seller"})

	repo := NewRepository(tx)
	updated, err := repo.BulkUpdateLocationSnapshot(context.Background(), enums.SellerTypeFarmer, seller, LocationSnapshot{
		Latitude:         floatPtr(49.2827),
		Longitude:        floatPtr(-123.1207),
		Address:          strPtr("4100 Valley Rd"),
		DeliveryRadiusKm: intPtr(25),
	})
	require.NoError(t, err)
	require.EqualValues(t, 2, updated)

	rows, err := repo.ListBySeller(context.Background(), enums.SellerTypeFarmer, seller)
	require.NoError(t, err)
	for _, row := range rows {
		require.NotNil(t, row.SellerLatitude)
		require.InDelta(t, 49.2827, *row.SellerLatitude, 1e-6)
		require.Equal(t, 25, *row.SellerDeliveryRadiusKm)
	}

	// Re-running with identical values touches the same rows and changes
	// nothing observable.
	again, err := repo.BulkUpdateLocationSnapshot(context.Background(), enums.SellerTypeFarmer, seller, LocationSnapshot{
		Latitude:         floatPtr(49.2827),
		Longitude:        floatPtr(-123.1207),
		Address:          strPtr("4100 Valley Rd"),
		DeliveryRadiusKm: intPtr(25),
	})
	require.NoError(t, err)
	require.EqualValues(t, 2, again)

	check, err := repo.FindByID(context.Background(), untouched.ID)
	require.NoError(t, err)
	require.Nil(t, check.SellerLatitude)
}
