package products

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/harvestlane/harvestlane-backend/internal/sellers"
	"github.com/harvestlane/harvestlane-backend/pkg/db/models"
	"github.com/harvestlane/harvestlane-backend/pkg/enums"
	pkgerrors "github.com/harvestlane/harvestlane-backend/pkg/errors"
)

type fakeProductRepo struct {
	created []*models.Product
	bySlug  map[string]*models.Product
	err     error
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{bySlug: make(map[string]*models.Product)}
}

func (f *fakeProductRepo) Create(_ context.Context, product *models.Product) error {
	if f.err != nil {
		return f.err
	}
	product.ID = uuid.New()
	f.created = append(f.created, product)
	f.bySlug[product.Slug] = product
	return nil
}

func (f *fakeProductRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Product, error) {
	for _, p := range f.created {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeProductRepo) FindBySlug(_ context.Context, slug string) (*models.Product, error) {
	if p, ok := f.bySlug[slug]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeSellerResolver struct {
	profiles map[uuid.UUID]*sellers.SellerProfile
}

func (f *fakeSellerResolver) GetProfile(_ context.Context, _ enums.SellerType, id uuid.UUID) (*sellers.SellerProfile, error) {
	if p, ok := f.profiles[id]; ok {
		return p, nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "seller not found")
}

func locatedSeller() *sellers.SellerProfile {
	lat, lng := 49.2827, -123.1207
	return &sellers.SellerProfile{
		ID:               uuid.New(),
		Type:             enums.SellerTypeFarmer,
		DisplayName:      "Green Acres",
		Slug:             "green-acres",
		Address:          "4100 Valley Rd",
		Latitude:         &lat,
		Longitude:        &lng,
		DeliveryRadiusKm: 25,
	}
}

func validInput(sellerID uuid.UUID) CreateProductInput {
	return CreateProductInput{
		SellerID:   sellerID,
		SellerType: enums.SellerTypeFarmer,
		Name:       "Heirloom Tomatoes",
		Slug:       "heirloom-tomatoes",
		Category:   enums.ProductCategoryVegetables,
		Price:      decimal.RequireFromString("4.50"),
		Quantity:   10,
	}
}

func TestCreateCopiesSellerSnapshot(t *testing.T) {
	repo := newFakeProductRepo()
	seller := locatedSeller()
	resolver := &fakeSellerResolver{profiles: map[uuid.UUID]*sellers.SellerProfile{seller.ID: seller}}
	svc, err := NewService(repo, resolver, nil)
	require.NoError(t, err)

	product, err := svc.Create(context.Background(), validInput(seller.ID))
	require.NoError(t, err)

	require.NotNil(t, product.SellerLatitude)
	require.InDelta(t, 49.2827, *product.SellerLatitude, 1e-9)
	require.NotNil(t, product.SellerLongitude)
	require.Equal(t, "4100 Valley Rd", *product.SellerAddress)
	require.Equal(t, 25, *product.SellerDeliveryRadiusKm)
	require.NotNil(t, product.SellerLocation)
	require.Equal(t, enums.ProductStatusActive, product.Status)
}

func TestCreateUnlocatedSellerLeavesSnapshotEmpty(t *testing.T) {
	repo := newFakeProductRepo()
	seller := locatedSeller()
	seller.Latitude = nil
	seller.Longitude = nil
	resolver := &fakeSellerResolver{profiles: map[uuid.UUID]*sellers.SellerProfile{seller.ID: seller}}
	svc, err := NewService(repo, resolver, nil)
	require.NoError(t, err)

	product, err := svc.Create(context.Background(), validInput(seller.ID))
	require.NoError(t, err)
	require.Nil(t, product.SellerLatitude)
	require.Nil(t, product.SellerLocation)
}

func TestCreateValidation(t *testing.T) {
	repo := newFakeProductRepo()
	seller := locatedSeller()
	resolver := &fakeSellerResolver{profiles: map[uuid.UUID]*sellers.SellerProfile{seller.ID: seller}}
	svc, err := NewService(repo, resolver, nil)
	require.NoError(t, err)

	cases := []struct {
		name   string
		mutate func(*CreateProductInput)
	}{
		{"missing name", func(i *CreateProductInput) { i.Name = "" }},
		{"missing slug", func(i *CreateProductInput) { i.Slug = "" }},
		{"bad seller type", func(i *CreateProductInput) { i.SellerType = "warehouse" }},
		{"bad category", func(i *CreateProductInput) { i.Category = "gadgets" }},
		{"negative price", func(i *CreateProductInput) { i.Price = decimal.RequireFromString("-1") }},
		{"negative quantity", func(i *CreateProductInput) { i.Quantity = -1 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validInput(seller.ID)
			tc.mutate(&input)
			_, err := svc.Create(context.Background(), input)
			require.Error(t, err)

			coded := pkgerrors.As(err)
			require.NotNil(t, coded)
			require.Equal(t, pkgerrors.CodeValidation, coded.Code())
		})
	}
}

func TestCreateSlugConflict(t *testing.T) {
	repo := newFakeProductRepo()
	repo.err = errors.New(`duplicate key value violates unique constraint "ux_products_slug"`)
	seller := locatedSeller()
	resolver := &fakeSellerResolver{profiles: map[uuid.UUID]*sellers.SellerProfile{seller.ID: seller}}
	svc, err := NewService(repo, resolver, nil)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), validInput(seller.ID))
	require.Error(t, err)

	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	require.Equal(t, pkgerrors.CodeConflict, coded.Code())
}

func TestGetBySlugNotFound(t *testing.T) {
	repo := newFakeProductRepo()
	seller := locatedSeller()
	resolver := &fakeSellerResolver{profiles: map[uuid.UUID]*sellers.SellerProfile{seller.ID: seller}}
	svc, err := NewService(repo, resolver, nil)
	require.NoError(t, err)

	_, err = svc.GetBySlug(context.Background(), "missing")
	require.Error(t, err)

	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	require.Equal(t, pkgerrors.CodeNotFound, coded.Code())
}
