package enums

import "fmt"

// SellerType is the tagged variant distinguishing the two seller profiles.
// Both the sync and enrichment paths switch over it exhaustively; adding a
// third kind means extending every switch that returns ErrUnknownSellerType.
type SellerType string

const (
	SellerTypeFarmer   SellerType = "farmer"
	SellerTypeRetailer SellerType = "retailer"
)

var validSellerTypes = []SellerType{
	SellerTypeFarmer,
	SellerTypeRetailer,
}

// String implements fmt.Stringer.
func (s SellerType) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SellerType.
func (s SellerType) IsValid() bool {
	for _, candidate := range validSellerTypes {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSellerType converts raw input into a SellerType.
func ParseSellerType(value string) (SellerType, error) {
	for _, candidate := range validSellerTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid seller type %q", value)
}

// SellerTypes returns every known seller variant, farmers first.
func SellerTypes() []SellerType {
	out := make([]SellerType, len(validSellerTypes))
	copy(out, validSellerTypes)
	return out
}
