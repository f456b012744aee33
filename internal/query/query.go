package query

import (
	"net/url"
	"strconv"
	"strings"
)

// Direction is the sort order requested for a table column.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// State describes the complete subset/order of rows a table wants to display:
// current page, sort, free-text search, and per-field filters.
type State struct {
	Page     int
	PageSize int
	SortKey  string
	SortDir  Direction
	Search   string
	Filters  map[string]string
}

// New returns the default state: first page, no sort, no search, no filters.
func New(pageSize int) State {
	if pageSize < 1 {
		pageSize = 10
	}
	return State{
		Page:     1,
		PageSize: pageSize,
		SortDir:  Asc,
		Filters:  map[string]string{},
	}
}

func (s State) cloneFilters() map[string]string {
	out := make(map[string]string, len(s.Filters))
	for k, v := range s.Filters {
		out[k] = v
	}
	return out
}

// ApplySort selects a sort column. Re-selecting the current column flips the
// direction; a new column starts ascending. Page resets to 1.
func ApplySort(s State, key string) State {
	next := s
	next.Filters = s.cloneFilters()
	if s.SortKey == key && s.SortDir == Asc {
		next.SortDir = Desc
	} else {
		next.SortDir = Asc
	}
	next.SortKey = key
	next.Page = 1
	return next
}

// ApplyFilter sets or clears one filter field. An empty value clears the
// constraint. Page resets to 1.
func ApplyFilter(s State, field, value string) State {
	next := s
	next.Filters = s.cloneFilters()
	if strings.TrimSpace(value) == "" {
		delete(next.Filters, field)
	} else {
		next.Filters[field] = value
	}
	next.Page = 1
	return next
}

// ApplySearch replaces the free-text query. Page resets to 1.
func ApplySearch(s State, text string) State {
	next := s
	next.Filters = s.cloneFilters()
	next.Search = text
	next.Page = 1
	return next
}

// ApplyPage sets the page verbatim. Out-of-range values are not validated
// here; the caller disables out-of-range requests.
func ApplyPage(s State, page int) State {
	next := s
	next.Filters = s.cloneFilters()
	next.Page = page
	return next
}

// ClearAll drops sort, search, and all filters, and returns to page 1.
func ClearAll(s State) State {
	next := s
	next.SortKey = ""
	next.SortDir = Asc
	next.Search = ""
	next.Filters = map[string]string{}
	next.Page = 1
	return next
}

// Values encodes the state as upstream query parameters: page, limit, search,
// sort_by, sort_order, plus one parameter per active filter.
func (s State) Values() url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(s.Page))
	v.Set("limit", strconv.Itoa(s.PageSize))
	if s.Search != "" {
		v.Set("search", s.Search)
	}
	if s.SortKey != "" {
		v.Set("sort_by", s.SortKey)
		v.Set("sort_order", string(s.SortDir))
	}
	for field, val := range s.Filters {
		v.Set(field, val)
	}
	return v
}

// FromValues parses the same parameter shape from an incoming request.
// filterFields names the parameters that are treated as filters.
func FromValues(v url.Values, pageSize int, filterFields []string) State {
	s := New(pageSize)
	if page, err := strconv.Atoi(v.Get("page")); err == nil && page >= 1 {
		s.Page = page
	}
	if limit, err := strconv.Atoi(v.Get("limit")); err == nil && limit >= 1 {
		s.PageSize = limit
	}
	s.Search = v.Get("search")
	if key := v.Get("sort_by"); key != "" {
		s.SortKey = key
		if Direction(v.Get("sort_order")) == Desc {
			s.SortDir = Desc
		}
	}
	for _, field := range filterFields {
		if val := v.Get(field); val != "" {
			s.Filters[field] = val
		}
	}
	return s
}
