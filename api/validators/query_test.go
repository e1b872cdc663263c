package validators

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	pkgerrors "github.com/harvestlane/harvestlane-backend/pkg/errors"
)

func TestParseQueryIntDefaultsAndBounds(t *testing.T) {
	r := httptest.NewRequest("GET", "/?limit=30", nil)
	value, err := ParseQueryInt(r, "limit", 20, 1, 100)
	require.NoError(t, err)
	require.Equal(t, 30, value)

	r = httptest.NewRequest("GET", "/", nil)
	value, err = ParseQueryInt(r, "limit", 20, 1, 100)
	require.NoError(t, err)
	require.Equal(t, 20, value)

	r = httptest.NewRequest("GET", "/?limit=500", nil)
	_, err = ParseQueryInt(r, "limit", 20, 1, 100)
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestParseQueryIntOptionalKeepsExplicitZero(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	value, err := ParseQueryIntOptional(r, "page")
	require.NoError(t, err)
	require.Nil(t, value)

	r = httptest.NewRequest("GET", "/?page=0", nil)
	value, err = ParseQueryIntOptional(r, "page")
	require.NoError(t, err)
	require.NotNil(t, value)
	require.Equal(t, 0, *value)

	r = httptest.NewRequest("GET", "/?page=first", nil)
	_, err = ParseQueryIntOptional(r, "page")
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestParseQueryFloatRejectsMissingAndGarbage(t *testing.T) {
	r := httptest.NewRequest("GET", "/?latitude=49.2827", nil)
	value, err := ParseQueryFloat(r, "latitude")
	require.NoError(t, err)
	require.InDelta(t, 49.2827, value, 1e-9)

	r = httptest.NewRequest("GET", "/", nil)
	_, err = ParseQueryFloat(r, "latitude")
	require.Error(t, err)

	r = httptest.NewRequest("GET", "/?latitude=north", nil)
	_, err = ParseQueryFloat(r, "latitude")
	require.Error(t, err)

	r = httptest.NewRequest("GET", "/?latitude=NaN", nil)
	_, err = ParseQueryFloat(r, "latitude")
	require.Error(t, err)
}

func TestParseQueryFloatOptionalAbsentIsNil(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	value, err := ParseQueryFloatOptional(r, "minRating")
	require.NoError(t, err)
	require.Nil(t, value)

	r = httptest.NewRequest("GET", "/?minRating=4.5", nil)
	value, err = ParseQueryFloatOptional(r, "minRating")
	require.NoError(t, err)
	require.NotNil(t, value)
	require.InDelta(t, 4.5, *value, 1e-9)
}

func TestParseQueryDecimal(t *testing.T) {
	r := httptest.NewRequest("GET", "/?minPrice=12.50", nil)
	value, err := ParseQueryDecimal(r, "minPrice")
	require.NoError(t, err)
	require.NotNil(t, value)
	require.Equal(t, "12.5", value.String())

	r = httptest.NewRequest("GET", "/?minPrice=cheap", nil)
	_, err = ParseQueryDecimal(r, "minPrice")
	require.Error(t, err)
}

func TestParseQueryBool(t *testing.T) {
	r := httptest.NewRequest("GET", "/?pickupOnly=true", nil)
	value, err := ParseQueryBool(r, "pickupOnly")
	require.NoError(t, err)
	require.NotNil(t, value)
	require.True(t, *value)

	r = httptest.NewRequest("GET", "/", nil)
	value, err = ParseQueryBool(r, "pickupOnly")
	require.NoError(t, err)
	require.Nil(t, value)

	r = httptest.NewRequest("GET", "/?pickupOnly=maybe", nil)
	_, err = ParseQueryBool(r, "pickupOnly")
	require.Error(t, err)
}

func TestParseQueryCSVDropsEmptySegments(t *testing.T) {
	r := httptest.NewRequest("GET", "/?certifications=organic,%20non_gmo,,", nil)
	require.Equal(t, []string{"organic", "non_gmo"}, ParseQueryCSV(r, "certifications"))

	r = httptest.NewRequest("GET", "/", nil)
	require.Nil(t, ParseQueryCSV(r, "certifications"))
}
