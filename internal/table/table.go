// Package table holds the rectangular string-table value type produced by
// CSV parsing, plus the normalization step that unifies missing cells.
// Cells are kept as raw strings on purpose: coercing early would lose
// information such as leading zeros that later classification depends on.
package table

import (
	"fmt"
	"strings"
)

// Missing is the single internal representation of a missing cell,
// regardless of how it was spelled in the source bytes.
const Missing = ""

// Table is an immutable rectangular table of string cells. Every row has
// exactly len(Columns) cells. Pipeline stages derive new tables instead of
// mutating in place.
type Table struct {
	Columns []string
	Rows    [][]string

	// Delimiter is the delimiter that actually produced this table (the
	// detector's pick, unless a retry with another candidate won).
	Delimiter rune

	// RenamedColumns is set when duplicate header names were deduplicated.
	RenamedColumns bool
}

// Index returns the position of the named column.
func (t *Table) Index(name string) (int, bool) {
	for i, c := range t.Columns {
		if c == name {
			return i, true
		}
	}
	return 0, false
}

// Column returns all cells of the named column in row order.
func (t *Table) Column(name string) ([]string, bool) {
	idx, ok := t.Index(name)
	if !ok {
		return nil, false
	}
	vals := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		vals[i] = row[idx]
	}
	return vals, true
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	out := &Table{
		Columns:        append([]string(nil), t.Columns...),
		Rows:           make([][]string, len(t.Rows)),
		Delimiter:      t.Delimiter,
		RenamedColumns: t.RenamedColumns,
	}
	for i, row := range t.Rows {
		out.Rows[i] = append([]string(nil), row...)
	}
	return out
}

// MissingCount returns the number of missing cells in the named column.
func (t *Table) MissingCount(col int) int {
	n := 0
	for _, row := range t.Rows {
		if row[col] == Missing {
			n++
		}
	}
	return n
}

// DedupeColumns trims surrounding whitespace from column names and makes
// repeats unique by appending __2, __3, ... in order of appearance. The
// operation is idempotent on its own output.
func DedupeColumns(names []string) ([]string, bool) {
	seen := make(map[string]int, len(names))
	taken := make(map[string]struct{}, len(names))
	out := make([]string, len(names))
	renamed := false

	for i, n := range names {
		n = strings.TrimSpace(n)
		if _, dup := taken[n]; dup {
			base := n
			c := seen[base]
			if c == 0 {
				c = 1 // suffixes start at __2
			}
			for {
				c++
				n = fmt.Sprintf("%s__%d", base, c)
				if _, clash := taken[n]; !clash {
					break
				}
			}
			seen[base] = c
			renamed = true
		}
		taken[n] = struct{}{}
		out[i] = n
	}
	return out, renamed
}
