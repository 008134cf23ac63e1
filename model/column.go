package model

import (
	"fmt"
	"math/bits"
	"strings"
)

// Column identifies one output column. The numeric order is the order in
// which columns are written.
type Column int

const (
	ColRowID Column = iota
	ColFileNumber
	ColFilePath
	ColFileName
	ColPage
	ColTotalPage
	ColYStart
	ColYSmooth
	ColXStart
	ColXEnd
	ColFontSize
	ColRotation
	ColContent

	columnCount
)

var columnNames = [columnCount]string{
	"row_id", "file_number", "file_path", "file_name", "pdf_page", "total_page",
	"y_start", "y_smooth", "x_start", "x_end", "font_size", "rotation", "content",
}

// Name returns the header name of the column.
func (c Column) Name() string {
	if c < 0 || c >= columnCount {
		return fmt.Sprintf("column(%d)", int(c))
	}
	return columnNames[c]
}

// String implements fmt.Stringer.
func (c Column) String() string {
	return c.Name()
}

// ColumnSet is a set of columns, one bit per Column.
type ColumnSet uint16

const (
	// AllColumns contains every column.
	AllColumns ColumnSet = 1<<columnCount - 1

	// DefaultColumns is every column except the file path and file name.
	DefaultColumns = AllColumns &^ (1<<ColFilePath | 1<<ColFileName)
)

// NewColumnSet builds a set from the given columns.
func NewColumnSet(cols ...Column) ColumnSet {
	var s ColumnSet
	for _, c := range cols {
		s = s.With(c)
	}
	return s
}

// Has reports whether c is in the set.
func (s ColumnSet) Has(c Column) bool {
	if c < 0 || c >= columnCount {
		return false
	}
	return s&(1<<c) != 0
}

// With returns the set with c added.
func (s ColumnSet) With(c Column) ColumnSet {
	if c < 0 || c >= columnCount {
		return s
	}
	return s | 1<<c
}

// Without returns the set with every column in cols removed.
func (s ColumnSet) Without(cols ...Column) ColumnSet {
	for _, c := range cols {
		if c >= 0 && c < columnCount {
			s &^= 1 << c
		}
	}
	return s
}

// Intersect returns the columns present in both sets.
func (s ColumnSet) Intersect(other ColumnSet) ColumnSet {
	return s & other
}

// Len returns the number of columns in the set.
func (s ColumnSet) Len() int {
	return bits.OnesCount16(uint16(s & AllColumns))
}

// Columns returns the columns of the set in output order.
func (s ColumnSet) Columns() []Column {
	cols := make([]Column, 0, s.Len())
	for c := Column(0); c < columnCount; c++ {
		if s.Has(c) {
			cols = append(cols, c)
		}
	}
	return cols
}

// Names returns the header names of the set in output order.
func (s ColumnSet) Names() []string {
	cols := s.Columns()
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name()
	}
	return names
}

// String returns the comma separated column names.
func (s ColumnSet) String() string {
	return strings.Join(s.Names(), ",")
}

// ParseColumn looks a column up by its header name.
func ParseColumn(name string) (Column, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for c := Column(0); c < columnCount; c++ {
		if columnNames[c] == name {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown column %q", name)
}

// ParseColumns parses a comma separated list of column names. The keywords
// "all" and "default" expand to AllColumns and DefaultColumns.
func ParseColumns(list string) (ColumnSet, error) {
	var s ColumnSet
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		switch strings.ToLower(part) {
		case "":
			continue
		case "all":
			s |= AllColumns
		case "default":
			s |= DefaultColumns
		default:
			c, err := ParseColumn(part)
			if err != nil {
				return 0, err
			}
			s = s.With(c)
		}
	}
	return s, nil
}
