package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/harvestlane/harvestlane-backend/internal/sellers"
	"github.com/harvestlane/harvestlane-backend/pkg/enums"
	pkgerrors "github.com/harvestlane/harvestlane-backend/pkg/errors"
)

type fakeSellerService struct {
	bySlug    map[string]*sellers.SellerProfile
	lastInput sellers.UpdateLocationInput
	updated   *sellers.SellerProfile
	updateErr error
}

func (f *fakeSellerService) GetProfile(context.Context, enums.SellerType, uuid.UUID) (*sellers.SellerProfile, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "seller not found")
}

func (f *fakeSellerService) GetBySlug(_ context.Context, slug string) (*sellers.SellerProfile, error) {
	if profile, ok := f.bySlug[slug]; ok {
		return profile, nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "seller not found")
}

func (f *fakeSellerService) GetProfiles(context.Context, enums.SellerType, []uuid.UUID) (map[uuid.UUID]sellers.SellerProfile, error) {
	return nil, nil
}

func (f *fakeSellerService) UpdateLocation(_ context.Context, _ enums.SellerType, _ uuid.UUID, input sellers.UpdateLocationInput) (*sellers.SellerProfile, error) {
	f.lastInput = input
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.updated, nil
}

func sellerTestRouter(svc sellers.Service) http.Handler {
	r := chi.NewRouter()
	r.Get("/v1/sellers/slug/{slug}", SellerBySlug(svc, nil))
	r.Patch("/v1/sellers/{sellerType}/{sellerId}/location", SellerUpdateLocation(svc, nil))
	return r
}

func TestSellerBySlugFound(t *testing.T) {
	profile := &sellers.SellerProfile{
		ID:          uuid.New(),
		Type:        enums.SellerTypeFarmer,
		DisplayName: "Green Acres",
		Slug:        "green-acres",
	}
	router := sellerTestRouter(&fakeSellerService{bySlug: map[string]*sellers.SellerProfile{"green-acres": profile}})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/v1/sellers/slug/green-acres", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Green Acres")
}

func TestSellerBySlugNotFound(t *testing.T) {
	router := sellerTestRouter(&fakeSellerService{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/v1/sellers/slug/missing", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "NOT_FOUND")
}

func TestSellerUpdateLocationForwardsInput(t *testing.T) {
	svc := &fakeSellerService{updated: &sellers.SellerProfile{ID: uuid.New(), Type: enums.SellerTypeFarmer}}
	router := sellerTestRouter(svc)

	body := `{"latitude":49.2827,"longitude":-123.1207,"address":"4100 Valley Rd","deliveryRadiusKm":30,"deliveryDays":["monday","friday"]}`
	req := httptest.NewRequest("PATCH", "/v1/sellers/farmer/"+uuid.NewString()+"/location", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.InDelta(t, 49.2827, svc.lastInput.Latitude, 1e-9)
	require.InDelta(t, -123.1207, svc.lastInput.Longitude, 1e-9)
	require.NotNil(t, svc.lastInput.Address)
	require.Equal(t, "4100 Valley Rd", *svc.lastInput.Address)
	require.NotNil(t, svc.lastInput.DeliveryRadiusKm)
	require.Equal(t, 30, *svc.lastInput.DeliveryRadiusKm)
}

func TestSellerUpdateLocationRejectsBadSellerType(t *testing.T) {
	router := sellerTestRouter(&fakeSellerService{})

	body := `{"latitude":49.0,"longitude":-123.0}`
	req := httptest.NewRequest("PATCH", "/v1/sellers/wholesaler/"+uuid.NewString()+"/location", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSellerUpdateLocationRejectsMissingCoordinates(t *testing.T) {
	router := sellerTestRouter(&fakeSellerService{})

	body := `{"address":"somewhere"}`
	req := httptest.NewRequest("PATCH", "/v1/sellers/farmer/"+uuid.NewString()+"/location", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
}

func TestSellerUpdateLocationRejectsUnknownDeliveryDay(t *testing.T) {
	router := sellerTestRouter(&fakeSellerService{})

	body := `{"latitude":49.0,"longitude":-123.0,"deliveryDays":["someday"]}`
	req := httptest.NewRequest("PATCH", "/v1/sellers/farmer/"+uuid.NewString()+"/location", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}
