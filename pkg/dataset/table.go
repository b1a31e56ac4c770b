package dataset

import "slices"

// Table is the in-memory representation used by tabular dataset variants
// (csv, sqlite): a header row plus string-valued records.
type Table struct {
	Columns []string   `json:"columns"`
	Records [][]string `json:"records"`
}

// NewTable builds a table from a header and records.
func NewTable(columns []string, records [][]string) *Table {
	return &Table{Columns: columns, Records: records}
}

// Equal reports whether two tables hold the same columns and records in
// the same order.
func (t *Table) Equal(other *Table) bool {
	if t == nil || other == nil {
		return t == other
	}
	if !slices.Equal(t.Columns, other.Columns) {
		return false
	}
	if len(t.Records) != len(other.Records) {
		return false
	}
	for i := range t.Records {
		if !slices.Equal(t.Records[i], other.Records[i]) {
			return false
		}
	}
	return true
}
