// internal/app/system/paging/paging.go
package paging

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
)

// DefaultLimit is the number of rows returned when the caller does not ask
// for a specific page size.
const DefaultLimit = 10

// MaxLimit caps the page size so a single request cannot pull the whole
// collection.
const MaxLimit = 100

// Params holds the parsed offset pagination parameters for a list request.
type Params struct {
	Page  int
	Limit int
}

// Parse extracts page/limit from the query string. Missing or malformed
// values fall back to page 1 and DefaultLimit; limit is clamped to
// [1, MaxLimit].
func Parse(r *http.Request) Params {
	p := Params{Page: 1, Limit: DefaultLimit}

	if s := query.Get(r, "page"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n >= 1 {
			p.Page = n
		}
	}
	if s := query.Get(r, "limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n >= 1 {
			p.Limit = n
			if p.Limit > MaxLimit {
				p.Limit = MaxLimit
			}
		}
	}
	return p
}

// Skip returns the number of documents to skip for Mongo Find options.
func (p Params) Skip() int64 {
	return int64((p.Page - 1) * p.Limit)
}

// Limit64 returns the page size as int64 for Mongo Find options.
func (p Params) Limit64() int64 {
	return int64(p.Limit)
}

// TotalPages returns how many pages the given total spans at this page
// size. A zero total yields zero pages.
func (p Params) TotalPages(total int64) int {
	if total <= 0 {
		return 0
	}
	pages := total / int64(p.Limit)
	if total%int64(p.Limit) != 0 {
		pages++
	}
	return int(pages)
}
