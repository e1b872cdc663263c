package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/harvestlane/harvestlane-backend/api/responses"
	"github.com/harvestlane/harvestlane-backend/api/validators"
	"github.com/harvestlane/harvestlane-backend/internal/sellers"
	"github.com/harvestlane/harvestlane-backend/pkg/enums"
	pkgerrors "github.com/harvestlane/harvestlane-backend/pkg/errors"
	"github.com/harvestlane/harvestlane-backend/pkg/logger"
	"github.com/harvestlane/harvestlane-backend/pkg/types"
)

// SellerBySlug handles GET /v1/sellers/slug/{slug}.
func SellerBySlug(sellerService sellers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		profile, err := sellerService.GetBySlug(r.Context(), slug)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, profile)
	}
}

type updateLocationRequest struct {
	Latitude         *float64               `json:"latitude" validate:"required,latitude"`
	Longitude        *float64               `json:"longitude" validate:"required,longitude"`
	Address          *string                `json:"address"`
	DeliveryRadiusKm *int                   `json:"deliveryRadiusKm" validate:"omitempty,min=0"`
	DeliveryDays     *[]string              `json:"deliveryDays"`
	PickupLocations  *types.PickupLocations `json:"pickupLocations"`
}

// SellerUpdateLocation handles PATCH /v1/sellers/{sellerType}/{sellerId}/location.
// The write also queues the seller.location_changed event; product snapshots
// catch up when the sync worker consumes it.
func SellerUpdateLocation(sellerService sellers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sellerType, sellerID, err := parseSellerParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateLocationRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if body.DeliveryDays != nil {
			for _, day := range *body.DeliveryDays {
				if _, err := enums.ParseDeliveryDay(day); err != nil {
					responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid delivery day"))
					return
				}
			}
		}

		input := sellers.UpdateLocationInput{
			Latitude:         *body.Latitude,
			Longitude:        *body.Longitude,
			Address:          body.Address,
			DeliveryRadiusKm: body.DeliveryRadiusKm,
			DeliveryDays:     body.DeliveryDays,
			PickupLocations:  body.PickupLocations,
		}

		profile, err := sellerService.UpdateLocation(r.Context(), sellerType, sellerID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, profile)
	}
}

func parseSellerParams(r *http.Request) (enums.SellerType, uuid.UUID, error) {
	sellerType, err := enums.ParseSellerType(chi.URLParam(r, "sellerType"))
	if err != nil {
		return "", uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid seller type")
	}
	sellerID, err := uuid.Parse(chi.URLParam(r, "sellerId"))
	if err != nil {
		return "", uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid seller id")
	}
	return sellerType, sellerID, nil
}
