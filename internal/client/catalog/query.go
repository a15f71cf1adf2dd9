// Package catalog implements the public catalog's query/filter/pagination
// state: the applied query snapshot, the staged filter drawer, the debounced
// search input and the fetch coordinator that keeps the rendered page in sync
// with the applied parameters.
package catalog

import (
	"strconv"

	"github.com/ArsStudium-Tech/car-garage-catalog-frontend/internal/client/api"
	"github.com/ArsStudium-Tech/car-garage-catalog-frontend/internal/client/models"
)

// All is the sentinel "no filter" value for brand and year filters.
const All = "all"

// TriState is the financeable filter: yes, no, or no filter at all.
type TriState string

const (
	TriAll TriState = "all"
	TriYes TriState = "true"
	TriNo  TriState = "false"
)

// Filters are the drawer-editable fields of the query: everything except the
// search text and the page cursor.
type Filters struct {
	Brand       string // brand display name, or All
	Year        string // four-digit year, or All
	Financeable TriState
	MinPrice    *int64
	MaxPrice    *int64
	Sort        models.SortOrder
}

// DefaultFilters returns the no-filter state: everything "all", no price
// bounds, newest first.
func DefaultFilters() Filters {
	return Filters{
		Brand:       All,
		Year:        All,
		Financeable: TriAll,
		Sort:        models.SortNewest,
	}
}

// Active reports whether any field differs from the default.
func (f Filters) Active() bool {
	return f.Brand != All || f.Year != All || f.Financeable != TriAll ||
		f.MinPrice != nil || f.MaxPrice != nil || f.Sort != models.SortNewest
}

// ActiveCount is the number of non-default fields, shown on the filter badge.
func (f Filters) ActiveCount() int {
	n := 0
	for _, active := range []bool{
		f.Brand != All,
		f.Year != All,
		f.Financeable != TriAll,
		f.MinPrice != nil || f.MaxPrice != nil,
		f.Sort != models.SortNewest,
	} {
		if active {
			n++
		}
	}
	return n
}

// QueryState is the applied filter/sort/pagination snapshot driving the
// current catalog request. It is an immutable value: the With* methods return
// an updated copy, and every change except page navigation resets the page
// back to 1.
type QueryState struct {
	SearchText string
	Filters    Filters
	Page       int
	PageSize   int
}

// DefaultQuery returns page 1 of an unfiltered catalog.
func DefaultQuery(pageSize int) QueryState {
	return QueryState{
		Filters:  DefaultFilters(),
		Page:     1,
		PageSize: pageSize,
	}
}

func (q QueryState) WithSearch(text string) QueryState {
	q.SearchText = text
	q.Page = 1
	return q
}

func (q QueryState) WithFilters(f Filters) QueryState {
	q.Filters = f
	q.Page = 1
	return q
}

func (q QueryState) WithBrand(brand string) QueryState {
	q.Filters.Brand = brand
	q.Page = 1
	return q
}

func (q QueryState) WithYear(year string) QueryState {
	q.Filters.Year = year
	q.Page = 1
	return q
}

func (q QueryState) WithFinanceable(v TriState) QueryState {
	q.Filters.Financeable = v
	q.Page = 1
	return q
}

func (q QueryState) WithPriceRange(min, max *int64) QueryState {
	q.Filters.MinPrice = min
	q.Filters.MaxPrice = max
	q.Page = 1
	return q
}

func (q QueryState) WithSort(order models.SortOrder) QueryState {
	q.Filters.Sort = order
	q.Page = 1
	return q
}

// WithPage moves to the given page without touching the filters. Pages below
// 1 are clamped.
func (q QueryState) WithPage(page int) QueryState {
	if page < 1 {
		page = 1
	}
	q.Page = page
	return q
}

// BuildParams maps the applied query state onto the request parameters,
// leaving out every no-filter field. The brand display name is resolved to
// its id by exact name match against the directory; an unknown name means no
// brand filter.
func BuildParams(q QueryState, brands []models.Brand) api.ListCarsParams {
	params := api.ListCarsParams{
		Page:     q.Page,
		Limit:    q.PageSize,
		Search:   q.SearchText,
		OrderBy:  q.Filters.Sort,
		MinPrice: q.Filters.MinPrice,
		MaxPrice: q.Filters.MaxPrice,
	}

	if q.Filters.Brand != All {
		for _, b := range brands {
			if b.Name == q.Filters.Brand {
				params.BrandID = b.ID
				break
			}
		}
	}

	if q.Filters.Year != All {
		if year, err := strconv.Atoi(q.Filters.Year); err == nil {
			params.Year = year
		}
	}

	switch q.Filters.Financeable {
	case TriYes:
		v := true
		params.Financeable = &v
	case TriNo:
		v := false
		params.Financeable = &v
	}

	return params
}
