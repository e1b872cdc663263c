package products

import (
	"github.com/lib/pq"

	"github.com/harvestlane/harvestlane-backend/pkg/types"
)

func toStringArray(values []string) pq.StringArray {
	out := make(pq.StringArray, len(values))
	copy(out, values)
	return out
}

func newLocationPoint(lat, lng float64) types.GeographyPoint {
	return types.NewGeographyPoint(lat, lng)
}
