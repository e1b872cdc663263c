package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// PickupLocation describes one place where buyers can collect orders.
type PickupLocation struct {
	Name          string   `json:"name"`
	Address       string   `json:"address"`
	Latitude      float64  `json:"latitude"`
	Longitude     float64  `json:"longitude"`
	AvailableDays []string `json:"availableDays,omitempty"`
	Hours         string   `json:"hours,omitempty"`
}

// PickupLocations is stored as a jsonb array on seller profiles.
type PickupLocations []PickupLocation

// Value marshals the slice into jsonb.
func (p PickupLocations) Value() (driver.Value, error) {
	if p == nil {
		return "[]", nil
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("pickup locations: marshal: %w", err)
	}
	return string(raw), nil
}

// Scan decodes the jsonb payload returned by the database.
func (p *PickupLocations) Scan(value interface{}) error {
	if value == nil {
		*p = nil
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("pickup locations: unsupported scan type %T", value)
	}

	if len(raw) == 0 {
		*p = nil
		return nil
	}
	return json.Unmarshal(raw, p)
}
