package controllers

import (
	"net/http"

	"github.com/harvestlane/harvestlane-backend/api/responses"
	"github.com/harvestlane/harvestlane-backend/internal/locationsync"
	"github.com/harvestlane/harvestlane-backend/pkg/logger"
)

// SyncSeller handles POST /v1/admin/sync/sellers/{sellerType}/{sellerId},
// the operator trigger for one seller's product snapshots.
func SyncSeller(syncService locationsync.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sellerType, sellerID, err := parseSellerParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		count, err := syncService.SyncSellerProducts(r.Context(), sellerType, sellerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{
			"sellerId":        sellerID,
			"sellerType":      sellerType,
			"productsUpdated": count,
		})
	}
}

// SyncAll handles POST /v1/admin/sync/all, the full resync across every
// farmer and retailer.
func SyncAll(syncService locationsync.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, err := syncService.SyncAll(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}
