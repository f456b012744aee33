package table

import (
	"sort"
	"strings"

	"backoffice/internal/query"
)

// Processor applies client-mode row derivation over an already-fetched full
// data set. Server mode never goes through here; those rows arrive already
// filtered, sorted, and paginated by the upstream API.
type Processor struct {
	// Searchable names the fields whose string form is matched against the
	// free-text query.
	Searchable []string
}

// Apply runs the fixed pipeline filter -> search -> sort and returns the rows
// to render. No pagination is applied in client mode; every matching row is
// returned. The input slice is not modified.
func (p Processor) Apply(s query.State, rows []Row) []Row {
	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		if !matchesFilters(row, s.Filters) {
			continue
		}
		if !p.matchesSearch(row, s.Search) {
			continue
		}
		out = append(out, row)
	}

	if s.SortKey != "" {
		// Stable: rows with equal sort keys keep their original relative order.
		sort.SliceStable(out, func(i, j int) bool {
			c := compareValues(out[i][s.SortKey], out[j][s.SortKey])
			if s.SortDir == query.Desc {
				return c > 0
			}
			return c < 0
		})
	}
	return out
}

// matchesFilters keeps a row only when every active filter field equals its
// selected value.
func matchesFilters(row Row, filters map[string]string) bool {
	for field, want := range filters {
		if CellString(row[field]) != want {
			return false
		}
	}
	return true
}

func (p Processor) matchesSearch(row Row, text string) bool {
	if text == "" {
		return true
	}
	needle := strings.ToLower(text)
	for _, field := range p.Searchable {
		if strings.Contains(strings.ToLower(CellString(row[field])), needle) {
			return true
		}
	}
	return false
}

// compareValues is a three-way comparison over the loosely typed cell values
// the upstream API returns. Numbers compare numerically, everything else by
// string form.
func compareValues(a, b any) int {
	af, aok := asFloat(a)
	bf, bok := asFloat(b)
	if aok && bok {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(CellString(a), CellString(b))
}

func asFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	}
	return 0, false
}
