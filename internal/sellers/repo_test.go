package sellers

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/harvestlane/harvestlane-backend/pkg/enums"
)

func TestRepositoryFindBySlug(t *testing.T) {
	conn := openTestDB(t)
	tx := conn.Begin()
	defer tx.Rollback()

	farmer := mustCreateTestFarmer(t, tx)
	retailer := mustCreateTestRetailer(t, tx)

	repo := NewRepository(tx)
	ctx := context.Background()

	got, err := repo.FindBySlug(ctx, farmer.BusinessSlug)
	require.NoError(t, err)
	require.Equal(t, enums.SellerTypeFarmer, got.Type)
	require.Equal(t, "Green Acres", got.DisplayName)
	require.True(t, got.HasCoordinates())

	got, err = repo.FindBySlug(ctx, retailer.BusinessSlug)
	require.NoError(t, err)
	require.Equal(t, enums.SellerTypeRetailer, got.Type)
	require.Equal(t, "Corner Grocer", got.DisplayName)

	_, err = repo.FindBySlug(ctx, "no-such-slug")
	require.Error(t, err)
}

func TestRepositoryFindByIDs(t *testing.T) {
	conn := openTestDB(t)
	tx := conn.Begin()
	defer tx.Rollback()

	first := mustCreateTestFarmer(t, tx)
	second := mustCreateTestFarmer(t, tx)

	repo := NewRepository(tx)

	profiles, err := repo.FindByIDs(context.Background(), enums.SellerTypeFarmer, []uuid.UUID{first.ID, second.ID, uuid.New()})
	require.NoError(t, err)
	require.Len(t, profiles, 2)
	require.Contains(t, profiles, first.ID)
	require.Contains(t, profiles, second.ID)
}

func TestRepositoryUpdateLocationWithTx(t *testing.T) {
	conn := openTestDB(t)
	tx := conn.Begin()
	defer tx.Rollback()

	farmer := mustCreateTestFarmer(t, tx)
	repo := NewRepository(tx)

	err := repo.UpdateLocationWithTx(tx, enums.SellerTypeFarmer, farmer.ID, map[string]any{
		"latitude":           48.4284,
		"longitude":          -123.3656,
		"delivery_radius_km": 40,
	})
	require.NoError(t, err)

	profile, err := repo.FindByIDWithTx(tx, enums.SellerTypeFarmer, farmer.ID)
	require.NoError(t, err)
	require.InDelta(t, 48.4284, *profile.Latitude, 1e-6)
	require.Equal(t, 40, profile.DeliveryRadiusKm)

	err = repo.UpdateLocationWithTx(tx, enums.SellerTypeFarmer, uuid.New(), map[string]any{"latitude": 0.0})
	require.Error(t, err)
}
