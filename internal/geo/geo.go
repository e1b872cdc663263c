package geo

import (
	"fmt"
	"math"
)

// EarthRadiusKm is the mean earth radius used for great-circle math.
const EarthRadiusKm = 6371.0

// Point is a WGS84 coordinate pair.
type Point struct {
	Lat float64
	Lng float64
}

// Validate rejects out-of-range or non-finite coordinates.
func (p Point) Validate() error {
	if math.IsNaN(p.Lat) || math.IsInf(p.Lat, 0) || math.IsNaN(p.Lng) || math.IsInf(p.Lng, 0) {
		return fmt.Errorf("coordinates must be finite, got (%v, %v)", p.Lat, p.Lng)
	}
	if p.Lat < -90 || p.Lat > 90 {
		return fmt.Errorf("latitude must be between -90 and 90, got %v", p.Lat)
	}
	if p.Lng < -180 || p.Lng > 180 {
		return fmt.Errorf("longitude must be between -180 and 180, got %v", p.Lng)
	}
	return nil
}

// Distance returns the great-circle distance between two points in
// kilometers using the haversine formula. Every distance comparison in
// the platform goes through this one function so search and delivery
// checks can never disagree.
func Distance(a, b Point) float64 {
	latA := radians(a.Lat)
	latB := radians(b.Lat)
	dLat := radians(b.Lat - a.Lat)
	dLng := radians(b.Lng - a.Lng)

	sinLat := math.Sin(dLat / 2)
	sinLng := math.Sin(dLng / 2)
	h := sinLat*sinLat + math.Cos(latA)*math.Cos(latB)*sinLng*sinLng

	return 2 * EarthRadiusKm * math.Asin(math.Min(1, math.Sqrt(h)))
}

// Bounds is a latitude/longitude rectangle used to prefilter candidates
// before the exact distance check.
type Bounds struct {
	MinLat float64
	MaxLat float64
	MinLng float64
	MaxLng float64
	// Whole is set when the rectangle degenerates near a pole or the
	// antimeridian; callers must skip the longitude prefilter entirely.
	Whole bool
}

// BoundingBox returns a rectangle guaranteed to contain every point within
// radiusKm of center. The rectangle over-covers; exact filtering happens
// afterwards with Distance.
func BoundingBox(center Point, radiusKm float64) Bounds {
	if radiusKm <= 0 {
		return Bounds{
			MinLat: center.Lat, MaxLat: center.Lat,
			MinLng: center.Lng, MaxLng: center.Lng,
		}
	}

	dLat := degrees(radiusKm / EarthRadiusKm)
	minLat := center.Lat - dLat
	maxLat := center.Lat + dLat

	// Near the poles the longitude delta is meaningless; fall back to the
	// full longitude range and let the exact check do the work.
	if minLat <= -90 || maxLat >= 90 {
		return Bounds{
			MinLat: math.Max(minLat, -90),
			MaxLat: math.Min(maxLat, 90),
			MinLng: -180,
			MaxLng: 180,
			Whole:  true,
		}
	}

	dLng := degrees(radiusKm / (EarthRadiusKm * math.Cos(radians(center.Lat))))
	minLng := center.Lng - dLng
	maxLng := center.Lng + dLng

	// A box crossing the antimeridian would need a split range query, so
	// widen to the full range instead.
	if minLng < -180 || maxLng > 180 {
		return Bounds{
			MinLat: minLat,
			MaxLat: maxLat,
			MinLng: -180,
			MaxLng: 180,
			Whole:  true,
		}
	}

	return Bounds{MinLat: minLat, MaxLat: maxLat, MinLng: minLng, MaxLng: maxLng}
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

func degrees(rad float64) float64 { return rad * 180 / math.Pi }
