package types

import (
	"database/sql/driver"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// GeographyPoint represents a PostGIS Point expressed in geography format.
// It backs the seller_location column cached on products.
type GeographyPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// EWKB geometry type flags.
const (
	wkbPoint     = 1
	ewkbSRIDFlag = 0x20000000
	ewkbMFlag    = 0x40000000
	ewkbZFlag    = 0x80000000
)

// NewGeographyPoint builds a point from latitude/longitude ordering.
func NewGeographyPoint(lat, lng float64) GeographyPoint {
	return GeographyPoint{Lat: lat, Lng: lng}
}

// Value produces an EWKT literal so Postgres can cast the geography.
func (g GeographyPoint) Value() (driver.Value, error) {
	lng := strconv.FormatFloat(g.Lng, 'f', -1, 64)
	lat := strconv.FormatFloat(g.Lat, 'f', -1, 64)
	return fmt.Sprintf("SRID=4326;POINT(%s %s)", lng, lat), nil
}

// Scan accepts WKT/EWKT, raw (E)WKB bytes, or the hex-encoded EWKB string
// PostGIS returns for geography columns by default.
func (g *GeographyPoint) Scan(value interface{}) error {
	if value == nil {
		*g = GeographyPoint{}
		return nil
	}

	switch v := value.(type) {
	case string:
		return g.fromEncoded(v)
	case []byte:
		if len(v) > 0 && (v[0] == 0 || v[0] == 1) {
			return g.fromWKB(v)
		}
		return g.fromEncoded(string(v))
	default:
		if stringer, ok := value.(fmt.Stringer); ok {
			return g.fromEncoded(stringer.String())
		}
		return fmt.Errorf("geography: unsupported scan type %T", value)
	}
}

func (g *GeographyPoint) fromEncoded(raw string) error {
	raw = strings.TrimSpace(raw)
	upper := strings.ToUpper(raw)
	if strings.HasPrefix(upper, "SRID=") || strings.HasPrefix(upper, "POINT") {
		return g.fromText(raw)
	}
	if decoded, err := hex.DecodeString(raw); err == nil {
		return g.fromWKB(decoded)
	}
	return fmt.Errorf("geography: unsupported text %q", raw)
}

func (g *GeographyPoint) fromText(raw string) error {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(strings.ToUpper(raw), "SRID=") {
		if idx := strings.Index(raw, ";"); idx != -1 {
			raw = raw[idx+1:]
		}
	}

	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(strings.ToUpper(raw), "POINT(") || !strings.HasSuffix(raw, ")") {
		return fmt.Errorf("geography: unsupported text %q", raw)
	}

	content := strings.TrimSpace(raw[len("POINT(") : len(raw)-1])
	segments := strings.Fields(content)
	if len(segments) != 2 {
		return fmt.Errorf("geography: unexpected POINT content %q", content)
	}

	lng, err := strconvParseFloat(segments[0])
	if err != nil {
		return err
	}
	lat, err := strconvParseFloat(segments[1])
	if err != nil {
		return err
	}

	g.Lng = lng
	g.Lat = lat
	return nil
}

func (g *GeographyPoint) fromWKB(raw []byte) error {
	if len(raw) < 21 {
		return fmt.Errorf("geography: wkb too short")
	}

	var order binary.ByteOrder
	switch raw[0] {
	case 0:
		order = binary.BigEndian
	case 1:
		order = binary.LittleEndian
	default:
		return fmt.Errorf("geography: invalid byte order %d", raw[0])
	}

	geomType := order.Uint32(raw[1:5])
	if geomType&^uint32(ewkbSRIDFlag|ewkbMFlag|ewkbZFlag) != wkbPoint {
		return fmt.Errorf("geography: unexpected geometry type %d", geomType)
	}

	coords := raw[5:]
	if geomType&ewkbSRIDFlag != 0 {
		// 4-byte SRID sits between the type and the coordinates.
		coords = coords[4:]
	}
	if len(coords) < 16 {
		return fmt.Errorf("geography: wkb too short")
	}

	g.Lng = math.Float64frombits(order.Uint64(coords[0:8]))
	g.Lat = math.Float64frombits(order.Uint64(coords[8:16]))
	return nil
}

func strconvParseFloat(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("geography: empty coordinate")
	}

	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("geography: parse coordinate %w", err)
	}
	return f, nil
}
