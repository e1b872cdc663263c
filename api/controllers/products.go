package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/harvestlane/harvestlane-backend/api/responses"
	"github.com/harvestlane/harvestlane-backend/api/validators"
	"github.com/harvestlane/harvestlane-backend/internal/products"
	"github.com/harvestlane/harvestlane-backend/pkg/enums"
	pkgerrors "github.com/harvestlane/harvestlane-backend/pkg/errors"
	"github.com/harvestlane/harvestlane-backend/pkg/logger"
)

type createProductRequest struct {
	SellerID       string   `json:"sellerId" validate:"required,uuid"`
	SellerType     string   `json:"sellerType" validate:"required"`
	Name           string   `json:"name" validate:"required,max=255"`
	Slug           string   `json:"slug" validate:"required,max=255"`
	Description    string   `json:"description"`
	Category       string   `json:"category"`
	Price          string   `json:"price" validate:"required"`
	Quantity       int      `json:"quantity" validate:"min=0"`
	Tags           []string `json:"tags"`
	Certifications []string `json:"certifications"`
	Condition      string   `json:"condition"`
	Origin         string   `json:"origin"`
	PickupOnly     bool     `json:"pickupOnly"`
}

// ProductCreate handles POST /v1/products. The owning seller's current
// location is copied onto the row so the listing is searchable immediately.
func ProductCreate(productService products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body createProductRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := body.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := productService.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

// ProductBySlug handles GET /v1/products/slug/{slug}.
func ProductBySlug(productService products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		product, err := productService.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

func (body createProductRequest) toInput() (products.CreateProductInput, error) {
	var input products.CreateProductInput

	sellerID, err := uuid.Parse(body.SellerID)
	if err != nil {
		return input, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid seller id")
	}
	sellerType, err := enums.ParseSellerType(body.SellerType)
	if err != nil {
		return input, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid seller type")
	}
	price, err := decimal.NewFromString(body.Price)
	if err != nil {
		return input, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid price")
	}

	input = products.CreateProductInput{
		SellerID:       sellerID,
		SellerType:     sellerType,
		Name:           body.Name,
		Slug:           body.Slug,
		Description:    body.Description,
		Category:       enums.ProductCategory(body.Category),
		Price:          price,
		Quantity:       body.Quantity,
		Tags:           body.Tags,
		Certifications: body.Certifications,
		Condition:      enums.ProductCondition(body.Condition),
		Origin:         enums.ProductOrigin(body.Origin),
		PickupOnly:     body.PickupOnly,
	}
	return input, nil
}
