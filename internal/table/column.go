package table

import (
	"fmt"
	"strconv"
)

// Row is a schema-less record keyed by column identifiers. Shapes vary per
// upstream endpoint, so structure is validated defensively at the render
// boundary instead of being assumed.
type Row map[string]any

// Column declares how one field of a Row is displayed and exported.
// Render, when set, must be a pure transform of (cell value, row); its result
// is used both for display and for export serialization.
type Column struct {
	Key      string
	Label    string
	Sortable bool
	Render   func(value any, row Row) any
}

// Cell resolves a row's value for the column, applying Render when present.
func (c Column) Cell(row Row) any {
	v := row[c.Key]
	if c.Render != nil {
		return c.Render(v, row)
	}
	return v
}

// CellString renders a cell into its string form for search matching and
// export output.
func CellString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprintf("%v", x)
	}
}
