package domain

import "math"

// Search result paging defaults.
const (
	DefaultPageLimit = 20
	MaxPageLimit     = 50

	// MaxPage keeps (Page-1)*Limit inside an int32 OFFSET.
	MaxPage = math.MaxInt32 / MaxPageLimit
)

// PaginationParams carries page/limit values from the HTTP layer to the repo layer.
// Page is 1-indexed.
type PaginationParams struct {
	Page  int
	Limit int
}

// NewPaginationParams builds PaginationParams from optional query values.
// Nil or non-positive values fall back to page=1 and limit=DefaultPageLimit.
// The limit is capped at MaxPageLimit and the page at MaxPage.
func NewPaginationParams(page, limit *int) PaginationParams {
	p := PaginationParams{Page: 1, Limit: DefaultPageLimit}
	if page != nil && *page >= 1 {
		p.Page = min(*page, MaxPage)
	}
	if limit != nil && *limit >= 1 {
		p.Limit = min(*limit, MaxPageLimit)
	}
	return p
}

// Offset returns the zero-based row offset for a SQL OFFSET clause.
func (p PaginationParams) Offset() int {
	return (p.Page - 1) * p.Limit
}
