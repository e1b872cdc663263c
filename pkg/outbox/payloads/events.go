package payloads

import (
	"github.com/google/uuid"

	"github.com/harvestlane/harvestlane-backend/pkg/enums"
)

// SellerLocationChangedEvent is emitted when a seller profile's location
// fields change. The dispatcher uses it to resync the seller's products.
type SellerLocationChangedEvent struct {
	SellerID         uuid.UUID        `json:"seller_id"`
	SellerType       enums.SellerType `json:"seller_type"`
	Latitude         *float64         `json:"latitude"`
	Longitude        *float64         `json:"longitude"`
	Address          string           `json:"address"`
	DeliveryRadiusKm int              `json:"delivery_radius_km"`
}

// SellerProfileCreatedEvent signals that a new seller profile exists.
type SellerProfileCreatedEvent struct {
	SellerID   uuid.UUID        `json:"seller_id"`
	SellerType enums.SellerType `json:"seller_type"`
	Slug       string           `json:"slug"`
}
