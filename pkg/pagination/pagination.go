package pagination

import "fmt"

const (
	// DefaultPage is used when a page is not provided.
	DefaultPage = 1
	// DefaultLimit is the standard page size when a limit is not provided.
	DefaultLimit = 20
	// MaxLimit caps how many rows any paged query can request.
	MaxLimit = 100
)

// Params holds offset pagination inputs from controllers or services.
// Zero values mean "not provided" and Normalize fills in the defaults;
// explicitly out-of-range values are rejected, never clamped.
type Params struct {
	Page  int
	Limit int
}

// Normalize applies defaults for unset fields and validates the rest.
func (p Params) Normalize() (Params, error) {
	if p.Page == 0 {
		p.Page = DefaultPage
	}
	if p.Limit == 0 {
		p.Limit = DefaultLimit
	}
	if p.Page < 1 {
		return Params{}, fmt.Errorf("page must be >= 1, got %d", p.Page)
	}
	if p.Limit < 1 || p.Limit > MaxLimit {
		return Params{}, fmt.Errorf("limit must be between 1 and %d, got %d", MaxLimit, p.Limit)
	}
	return p, nil
}

// Offset returns the number of rows to skip for the current page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Meta describes one page of a larger result set.
type Meta struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasMore    bool `json:"hasMore"`
}

// MetaFor computes page metadata for a total computed before slicing.
func MetaFor(params Params, total int) Meta {
	totalPages := 0
	if total > 0 {
		totalPages = (total + params.Limit - 1) / params.Limit
	}
	return Meta{
		Page:       params.Page,
		Limit:      params.Limit,
		Total:      total,
		TotalPages: totalPages,
		HasMore:    params.Offset()+params.Limit < total,
	}
}

// Window slices an in-memory result set to the requested page. A page past
// the end of the data returns an empty slice, not an error.
func Window[T any](items []T, params Params) []T {
	start := params.Offset()
	if start >= len(items) {
		return []T{}
	}
	end := start + params.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
