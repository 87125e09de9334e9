package scoring

import (
	"sort"
	"strings"
)

// Row is a single record: column name -> raw cell value. Rows are never
// mutated by the engine; missing keys read as empty cells.
type Row map[string]string

// Columns derives the column set from the first row of a dataset. Go maps
// carry no insertion order, so the keys are returned sorted to keep every
// scoring call deterministic. Callers that know the real header order
// (e.g. the CSV ingester) should pass it explicitly instead.
func Columns(rows []Row) []string {
	if len(rows) == 0 {
		return nil
	}
	cols := make([]string, 0, len(rows[0]))
	for name := range rows[0] {
		cols = append(cols, name)
	}
	sort.Strings(cols)
	return cols
}

// cell returns the trimmed value of a column in a row. Rows are not
// validated against the column set, so an absent key is just an empty cell.
func cell(r Row, col string) string {
	return strings.TrimSpace(r[col])
}
