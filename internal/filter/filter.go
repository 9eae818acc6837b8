// Package filter applies range, set and text predicates to a table when
// preparing data for aggregation or charting. Predicate semantics follow
// the target column's inferred kind.
package filter

import (
	"fmt"
	"strings"

	"github.com/tablescan/tablescan-cli/internal/format"
	"github.com/tablescan/tablescan-cli/internal/profile"
	"github.com/tablescan/tablescan-cli/internal/table"
)

// Op is a text predicate operator.
type Op string

const (
	// OpContains keeps rows whose value contains the given substring,
	// case-insensitively.
	OpContains Op = "contains"
	// OpEquals keeps rows whose value equals the given string exactly.
	OpEquals Op = "equals"
)

// Spec describes one filter over at most one column. A zero Column means
// "no filter": the table passes through unchanged.
type Spec struct {
	Column string

	// Numeric range bounds. A nil bound imposes no constraint.
	Min *float64
	Max *float64

	// Values is a categorical membership set.
	Values []string

	// Op and Value form a text predicate.
	Op    Op
	Value string
}

// UnknownColumnError reports a filter referencing a column the table does
// not have.
type UnknownColumnError struct {
	Column string
}

func (e *UnknownColumnError) Error() string {
	return fmt.Sprintf("unknown column: %q", e.Column)
}

// Apply returns the subset of rows satisfying the spec. classes must be
// index-aligned with t.Columns; when empty, the target column is classified
// on the fly with default thresholds.
func Apply(t *table.Table, classes []profile.Classification, spec Spec) (*table.Table, error) {
	if spec.Column == "" {
		return t, nil
	}

	idx, ok := t.Index(spec.Column)
	if !ok {
		return nil, &UnknownColumnError{Column: spec.Column}
	}

	var cls profile.Classification
	if idx < len(classes) {
		cls = classes[idx]
	} else {
		col, _ := t.Column(spec.Column)
		cls = profile.Classify(col, profile.DefaultThresholds())
	}

	var keep func(cell string) bool
	switch {
	case cls.Semantic == profile.SemMeasure:
		keep = rangePredicate(spec.Min, spec.Max)
	case len(spec.Values) > 0:
		keep = setPredicate(spec.Values)
	case spec.Op != "":
		var err error
		keep, err = textPredicate(spec.Op, spec.Value)
		if err != nil {
			return nil, err
		}
	default:
		return t, nil
	}

	out := &table.Table{
		Columns:        append([]string(nil), t.Columns...),
		Delimiter:      t.Delimiter,
		RenamedColumns: t.RenamedColumns,
	}
	for _, row := range t.Rows {
		if keep(row[idx]) {
			out.Rows = append(out.Rows, append([]string(nil), row...))
		}
	}
	return out, nil
}

// rangePredicate keeps numerically parseable cells within the bounds.
// With no bounds at all, everything passes.
func rangePredicate(min, max *float64) func(string) bool {
	return func(cell string) bool {
		if min == nil && max == nil {
			return true
		}
		x, ok := format.ParseNumber(cell)
		if !ok {
			return false
		}
		if min != nil && x < *min {
			return false
		}
		if max != nil && x > *max {
			return false
		}
		return true
	}
}

func setPredicate(values []string) func(string) bool {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return func(cell string) bool {
		_, ok := set[cell]
		return ok
	}
}

func textPredicate(op Op, value string) (func(string) bool, error) {
	switch op {
	case OpContains:
		needle := strings.ToLower(value)
		return func(cell string) bool {
			return strings.Contains(strings.ToLower(cell), needle)
		}, nil
	case OpEquals:
		return func(cell string) bool {
			return cell == value
		}, nil
	default:
		return nil, fmt.Errorf("unsupported filter operator: %q", op)
	}
}
