package controllers

import (
	"net/http"

	"github.com/harvestlane/harvestlane-backend/api/responses"
	"github.com/harvestlane/harvestlane-backend/api/validators"
	"github.com/harvestlane/harvestlane-backend/internal/search"
	"github.com/harvestlane/harvestlane-backend/pkg/enums"
	pkgerrors "github.com/harvestlane/harvestlane-backend/pkg/errors"
	"github.com/harvestlane/harvestlane-backend/pkg/logger"
	"github.com/harvestlane/harvestlane-backend/pkg/pagination"
)

// SearchProducts handles GET /v1/search/products. Every SearchQuery field is
// a query parameter; range checks happen in search.Query.Normalize so the
// controller only converts types.
func SearchProducts(searchService search.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query, err := parseSearchQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := searchService.Search(r.Context(), query)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func parseSearchQuery(r *http.Request) (search.Query, error) {
	var query search.Query
	var err error

	if query.Latitude, err = validators.ParseQueryFloat(r, "latitude"); err != nil {
		return query, err
	}
	if query.Longitude, err = validators.ParseQueryFloat(r, "longitude"); err != nil {
		return query, err
	}

	radius, err := validators.ParseQueryFloatOptional(r, "radiusKm")
	if err != nil {
		return query, err
	}
	if radius != nil {
		// An explicit zero would read as "not provided" downstream; reject it
		// here so out-of-range radii are never rewritten to the default.
		if *radius == 0 {
			return query, pkgerrors.New(pkgerrors.CodeValidation, "query parameter out of range").
				WithDetails(map[string]any{"field": "radiusKm", "min": search.MinRadiusKm, "max": search.MaxRadiusKm})
		}
		query.RadiusKm = *radius
	}

	query.Text = r.URL.Query().Get("query")
	query.Certifications = validators.ParseQueryCSV(r, "certifications")

	if raw := r.URL.Query().Get("category"); raw != "" {
		category, err := enums.ParseProductCategory(raw)
		if err != nil {
			return query, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category")
		}
		query.Category = &category
	}
	if raw := r.URL.Query().Get("condition"); raw != "" {
		condition, err := enums.ParseProductCondition(raw)
		if err != nil {
			return query, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid condition")
		}
		query.Condition = &condition
	}
	if raw := r.URL.Query().Get("origin"); raw != "" {
		origin, err := enums.ParseProductOrigin(raw)
		if err != nil {
			return query, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid origin")
		}
		query.Origin = &origin
	}
	if raw := r.URL.Query().Get("sellerType"); raw != "" {
		sellerType, err := enums.ParseSellerType(raw)
		if err != nil {
			return query, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid seller type")
		}
		query.SellerType = &sellerType
	}
	if raw := r.URL.Query().Get("sortBy"); raw != "" {
		sortBy, err := enums.ParseSearchSortBy(raw)
		if err != nil {
			return query, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid sort order")
		}
		query.SortBy = sortBy
	}

	if query.MinPrice, err = validators.ParseQueryDecimal(r, "minPrice"); err != nil {
		return query, err
	}
	if query.MaxPrice, err = validators.ParseQueryDecimal(r, "maxPrice"); err != nil {
		return query, err
	}
	if query.MinRating, err = validators.ParseQueryFloatOptional(r, "minRating"); err != nil {
		return query, err
	}
	if query.DeliveryAvailable, err = validators.ParseQueryBool(r, "deliveryAvailable"); err != nil {
		return query, err
	}
	if query.PickupOnly, err = validators.ParseQueryBool(r, "pickupOnly"); err != nil {
		return query, err
	}

	pageNum, err := validators.ParseQueryIntOptional(r, "page")
	if err != nil {
		return query, err
	}
	limitNum, err := validators.ParseQueryIntOptional(r, "limit")
	if err != nil {
		return query, err
	}

	var page pagination.Params
	if pageNum != nil {
		if *pageNum == 0 {
			return query, pkgerrors.New(pkgerrors.CodeValidation, "query parameter out of range").
				WithDetails(map[string]any{"field": "page", "min": 1})
		}
		page.Page = *pageNum
	}
	if limitNum != nil {
		if *limitNum == 0 {
			return query, pkgerrors.New(pkgerrors.CodeValidation, "query parameter out of range").
				WithDetails(map[string]any{"field": "limit", "min": 1, "max": pagination.MaxLimit})
		}
		page.Limit = *limitNum
	}
	query.Page = page

	return query, nil
}
