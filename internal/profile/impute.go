package profile

import (
	"sort"
	"strconv"

	"github.com/tablescan/tablescan-cli/internal/format"
	"github.com/tablescan/tablescan-cli/internal/table"
)

// DefaultPlaceholder fills missing cells of categorical columns.
const DefaultPlaceholder = "missing"

// Impute derives a table with missing cells filled per column type:
// measures get the column median (median, not mean, so a single outlier
// cannot skew the fill), categoricals get the placeholder token, and
// datetime and code columns are left untouched because no generic fill is
// safe for either. classes must be index-aligned with t.Columns.
//
// Imputing a table with no missing cells is a no-op, so the operation is
// idempotent.
func Impute(t *table.Table, classes []Classification, placeholder string) *table.Table {
	if placeholder == "" {
		placeholder = DefaultPlaceholder
	}

	out := t.Clone()
	for j := range out.Columns {
		if out.MissingCount(j) == 0 {
			continue
		}

		var cls Classification
		if j < len(classes) {
			cls = classes[j]
		}

		switch cls.Semantic {
		case SemMeasure:
			med, ok := columnMedian(out, j)
			if !ok {
				continue
			}
			fill := strconv.FormatFloat(med, 'f', -1, 64)
			fillMissing(out, j, fill)
		case SemDatetime:
			// no safe generic fill
		default:
			if cls.Inferred == TypeCode {
				break
			}
			fillMissing(out, j, placeholder)
		}
	}
	return out
}

func fillMissing(t *table.Table, col int, fill string) {
	for _, row := range t.Rows {
		if row[col] == table.Missing {
			row[col] = fill
		}
	}
}

func columnMedian(t *table.Table, col int) (float64, bool) {
	var vals []float64
	for _, row := range t.Rows {
		if row[col] == table.Missing {
			continue
		}
		if x, ok := format.ParseNumber(row[col]); ok {
			vals = append(vals, x)
		}
	}
	if len(vals) == 0 {
		return 0, false
	}
	sort.Float64s(vals)
	mid := len(vals) / 2
	if len(vals)%2 == 1 {
		return vals[mid], true
	}
	return (vals[mid-1] + vals[mid]) / 2, true
}
