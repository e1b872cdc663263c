package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/harvestlane/harvestlane-backend/internal/locationsync"
	"github.com/harvestlane/harvestlane-backend/pkg/enums"
	pkgerrors "github.com/harvestlane/harvestlane-backend/pkg/errors"
)

type fakeLocationSync struct {
	count    int64
	err      error
	summary  *locationsync.Summary
	lastID   uuid.UUID
	lastType enums.SellerType
}

func (f *fakeLocationSync) SyncSellerProducts(_ context.Context, sellerType enums.SellerType, sellerID uuid.UUID) (int64, error) {
	f.lastType = sellerType
	f.lastID = sellerID
	return f.count, f.err
}

func (f *fakeLocationSync) SyncAll(context.Context) (*locationsync.Summary, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.summary, nil
}

func syncTestRouter(svc locationsync.Service) http.Handler {
	r := chi.NewRouter()
	r.Post("/v1/admin/sync/sellers/{sellerType}/{sellerId}", SyncSeller(svc, nil))
	r.Post("/v1/admin/sync/all", SyncAll(svc, nil))
	return r
}

func TestSyncSellerReportsRowsTouched(t *testing.T) {
	svc := &fakeLocationSync{count: 7}
	router := syncTestRouter(svc)

	sellerID := uuid.New()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("POST", "/v1/admin/sync/sellers/retailer/"+sellerID.String(), nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, sellerID, svc.lastID)
	require.Equal(t, enums.SellerTypeRetailer, svc.lastType)

	var envelope struct {
		Data struct {
			ProductsUpdated int64 `json:"productsUpdated"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.EqualValues(t, 7, envelope.Data.ProductsUpdated)
}

func TestSyncSellerRejectsBadSellerID(t *testing.T) {
	router := syncTestRouter(&fakeLocationSync{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("POST", "/v1/admin/sync/sellers/farmer/not-a-uuid", nil))

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSyncAllReturnsSummary(t *testing.T) {
	svc := &fakeLocationSync{summary: &locationsync.Summary{
		FarmersUpdated:   12,
		RetailersUpdated: 4,
		SellersProcessed: 6,
	}}
	router := syncTestRouter(svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("POST", "/v1/admin/sync/all", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Data locationsync.Summary `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.EqualValues(t, 12, envelope.Data.FarmersUpdated)
	require.EqualValues(t, 4, envelope.Data.RetailersUpdated)
}

func TestSyncAllMapsDependencyFailure(t *testing.T) {
	svc := &fakeLocationSync{err: pkgerrors.New(pkgerrors.CodeDependency, "enumerate sellers")}
	router := syncTestRouter(svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("POST", "/v1/admin/sync/all", nil))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Contains(t, rec.Body.String(), "DEPENDENCY_ERROR")
}
