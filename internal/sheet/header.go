package sheet

import "strings"

// Column is the resolved position of a named header.
// Found is false when the header row has no matching cell.
type Column struct {
	Index int
	Found bool
}

// Columns maps logical column names to their resolved positions.
// It is computed once per document by [Resolve] and is read-only afterwards.
type Columns map[string]Column

// IndexOf returns the zero-based index of the first header cell whose
// trimmed text equals name case-insensitively, or -1 when none does.
func IndexOf(header []string, name string) int {
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i
		}
	}
	return -1
}

// Resolve locates every name in the header row.
func Resolve(header []string, names ...string) Columns {
	cols := make(Columns, len(names))
	for _, name := range names {
		if i := IndexOf(header, name); i >= 0 {
			cols[name] = Column{Index: i, Found: true}
		} else {
			cols[name] = Column{Index: -1}
		}
	}
	return cols
}

// Has reports whether the named column exists in the header row.
func (c Columns) Has(name string) bool {
	return c[name].Found
}

// Raw returns the untrimmed cell for the named column.
// Absent columns and rows too short to reach the column yield "".
func (c Columns) Raw(row []string, name string) string {
	col, ok := c[name]
	if !ok || !col.Found || col.Index >= len(row) {
		return ""
	}
	return row[col.Index]
}

// Cell returns the trimmed cell for the named column, "" when absent.
func (c Columns) Cell(row []string, name string) string {
	return strings.TrimSpace(c.Raw(row, name))
}

// Missing returns the names that were not found, in the order given.
func (c Columns) Missing(names ...string) []string {
	var out []string
	for _, name := range names {
		if !c.Has(name) {
			out = append(out, name)
		}
	}
	return out
}
