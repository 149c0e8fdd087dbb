// Package table provides the queryable container for matched files and
// their extracted field values.
//
// A Container holds ordered rows under a fixed column schema: "filename"
// plus one column per template key. Every filtering or slicing operation
// returns a new Container; a caller holding an earlier handle never sees it
// mutate.
package table

import (
	"fmt"
	"iter"
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/spf13/cast"
)

// filenameColumn is the fixed first column of every container.
const filenameColumn = "filename"

// Row is one matched file: its path plus the value of every template key.
type Row struct {
	Filename string
	Fields   map[string]string
}

// Container is an ordered collection of rows with a fixed column schema.
type Container struct {
	keys []string
	rows []Row
}

// UnknownColumnError reports a lookup against a column the container's
// schema does not have.
type UnknownColumnError struct {
	Column  string
	Columns []string
}

func (e *UnknownColumnError) Error() string {
	return fmt.Sprintf("unknown column %q, columns are: %s", e.Column, strings.Join(e.Columns, ", "))
}

// New builds a container over the given key columns and rows. Both slices
// are copied; rows are treated as immutable once stored.
func New(keys []string, rows []Row) *Container {
	c := &Container{
		keys: make([]string, len(keys)),
		rows: make([]Row, len(rows)),
	}
	copy(c.keys, keys)
	copy(c.rows, rows)
	return c
}

// Len returns the row count.
func (c *Container) Len() int { return len(c.rows) }

// Columns returns the schema: filename plus the key columns, in order.
func (c *Container) Columns() []string {
	cols := make([]string, 0, len(c.keys)+1)
	cols = append(cols, filenameColumn)
	return append(cols, c.keys...)
}

// All iterates the rows in table order, yielding each filename and a copy
// of its field values. Re-iterating yields the same sequence.
func (c *Container) All() iter.Seq2[string, map[string]string] {
	return func(yield func(string, map[string]string) bool) {
		for _, row := range c.rows {
			if !yield(row.Filename, copyFields(row.Fields)) {
				return
			}
		}
	}
}

// At returns the row at position i. Indexing is positional, not label
// based, so duplicate labels after concatenation cannot alias.
func (c *Container) At(i int) (string, map[string]string) {
	row := c.rows[i]
	return row.Filename, copyFields(row.Fields)
}

// Slice returns a new container over rows [lo, hi).
func (c *Container) Slice(lo, hi int) *Container {
	return New(c.keys, c.rows[lo:hi])
}

// Pick returns a new container over the rows at the given positions, in the
// order given.
func (c *Container) Pick(indices ...int) *Container {
	rows := make([]Row, len(indices))
	for i, idx := range indices {
		rows[i] = c.rows[idx]
	}
	return New(c.keys, rows)
}

// Concat appends other's rows after c's and returns the result as a new
// container. The schemas must match exactly.
func (c *Container) Concat(other *Container) (*Container, error) {
	if len(c.keys) != len(other.keys) {
		return nil, fmt.Errorf("mismatched columns: %v vs %v", c.Columns(), other.Columns())
	}
	for i, k := range c.keys {
		if other.keys[i] != k {
			return nil, fmt.Errorf("mismatched columns: %v vs %v", c.Columns(), other.Columns())
		}
	}
	rows := make([]Row, 0, len(c.rows)+len(other.rows))
	rows = append(rows, c.rows...)
	rows = append(rows, other.rows...)
	return New(c.keys, rows), nil
}

// CombineKeys joins the string forms of the named columns per row with sep.
// A nil keys selects every column except filename; an empty sep means ".".
// The result doubles as a composite row identifier and the input to the
// uniqueness check.
func (c *Container) CombineKeys(keys []string, sep string) ([]string, error) {
	if keys == nil {
		keys = c.keys
	}
	if sep == "" {
		sep = "."
	}
	for _, k := range keys {
		if err := c.checkColumn(k); err != nil {
			return nil, err
		}
	}

	out := make([]string, len(c.rows))
	for i, row := range c.rows {
		parts := make([]string, len(keys))
		for j, k := range keys {
			parts[j] = c.columnValue(row, k)
		}
		out[i] = strings.Join(parts, sep)
	}
	return out, nil
}

// Search returns a new container holding exactly the rows matching every
// constraint. A slice constraint matches rows whose column equals any
// element; constraints on distinct fields combine with AND; nil constraints
// are ignored. An empty query returns an empty container, never the full
// table.
func (c *Container) Search(query map[string]any) (*Container, error) {
	if len(query) == 0 {
		return New(c.keys, nil), nil
	}
	for col := range query {
		if err := c.checkColumn(col); err != nil {
			return nil, err
		}
	}

	var rows []Row
	for _, row := range c.rows {
		if c.matches(row, query) {
			rows = append(rows, row)
		}
	}
	return New(c.keys, rows), nil
}

// FuzzySearch returns a new container holding the rows whose value in the
// named column fuzzy-matches needle, ordered best match first.
func (c *Container) FuzzySearch(column, needle string) (*Container, error) {
	if err := c.checkColumn(column); err != nil {
		return nil, err
	}
	values := make([]string, len(c.rows))
	for i, row := range c.rows {
		values[i] = c.columnValue(row, column)
	}

	matches := fuzzy.Find(needle, values)
	rows := make([]Row, len(matches))
	for i, m := range matches {
		rows[i] = c.rows[m.Index]
	}
	return New(c.keys, rows), nil
}

// String summarizes the schema and row count.
func (c *Container) String() string {
	return fmt.Sprintf("<Container>\ncolumns: %s\nrows: %d\n", strings.Join(c.Columns(), ", "), len(c.rows))
}

func (c *Container) matches(row Row, query map[string]any) bool {
	for col, constraint := range query {
		if constraint == nil {
			continue
		}
		value := c.columnValue(row, col)
		if !anyEqual(constraint, value) {
			return false
		}
	}
	return true
}

// anyEqual reports whether value equals the constraint, or any element of a
// slice constraint. Non-string scalars are stringified before comparing.
func anyEqual(constraint any, value string) bool {
	switch cv := constraint.(type) {
	case string:
		return cv == value
	case []string:
		for _, e := range cv {
			if e == value {
				return true
			}
		}
		return false
	case []any:
		for _, e := range cv {
			if cast.ToString(e) == value {
				return true
			}
		}
		return false
	default:
		return cast.ToString(cv) == value
	}
}

func (c *Container) checkColumn(col string) error {
	if col == filenameColumn {
		return nil
	}
	for _, k := range c.keys {
		if k == col {
			return nil
		}
	}
	return &UnknownColumnError{Column: col, Columns: c.Columns()}
}

func (c *Container) columnValue(row Row, col string) string {
	if col == filenameColumn {
		return row.Filename
	}
	return row.Fields[col]
}

func copyFields(fields map[string]string) map[string]string {
	out := make(map[string]string, len(fields))
	for k, v := range fields {
		out[k] = v
	}
	return out
}
