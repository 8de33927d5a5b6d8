package sqlmodel

import (
	"database/sql"
	"fmt"
	"strings"
)

// Row is a positional database row. Generated FromRow methods read it by
// index, in the order the model's fields were declared.
type Row struct {
	Columns []string
	Values  []any
}

// NewRow returns a row holding the given values.
func NewRow(values ...any) Row {
	return Row{Values: values}
}

// Len returns the number of values in the row.
func (r Row) Len() int { return len(r.Values) }

// Get returns the value at position i. The second result is false when the
// row has no value at that position.
func (r Row) Get(i int) (any, bool) {
	if i < 0 || i >= len(r.Values) {
		return nil, false
	}
	return r.Values[i], true
}

// Column returns the column name at position i, if known.
func (r Row) Column(i int) string {
	if i < 0 || i >= len(r.Columns) {
		return ""
	}
	return r.Columns[i]
}

// String returns a debug representation of the row.
func (r Row) String() string {
	var b strings.Builder
	b.WriteString("Row(")
	for i, v := range r.Values {
		if i > 0 {
			b.WriteString(", ")
		}
		if c := r.Column(i); c != "" {
			b.WriteString(c)
			b.WriteByte('=')
		}
		fmt.Fprintf(&b, "%v", v)
	}
	b.WriteByte(')')
	return b.String()
}

// ScanRows reads all remaining rows from rs. The caller closes rs.
func ScanRows(rs *sql.Rows) ([]Row, error) {
	columns, err := rs.Columns()
	if err != nil {
		return nil, err
	}
	var rows []Row
	for rs.Next() {
		values := make([]any, len(columns))
		dest := make([]any, len(columns))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rs.Scan(dest...); err != nil {
			return nil, err
		}
		rows = append(rows, Row{Columns: columns, Values: values})
	}
	return rows, rs.Err()
}
