package profile

import (
	"github.com/tablescan/tablescan-cli/internal/format"
	"github.com/tablescan/tablescan-cli/internal/table"
)

// NumericSummary describes the coercible subset of one column.
type NumericSummary struct {
	Min  float64 `json:"min" yaml:"min"`
	Max  float64 `json:"max" yaml:"max"`
	Mean float64 `json:"mean" yaml:"mean"`

	// Missing counts cells that did not coerce to a number, whether they
	// were missing outright or textual.
	Missing int `json:"missing" yaml:"missing"`

	// NonNumeric counts cells that were present but did not coerce.
	NonNumeric int `json:"non_numeric" yaml:"non_numeric"`
}

// Stats are dataset-wide counts plus per-column numeric summaries.
type Stats struct {
	Rows           int                       `json:"rows" yaml:"rows"`
	Cols           int                       `json:"cols" yaml:"cols"`
	Columns        []string                  `json:"columns" yaml:"columns"`
	MissingTotal   int                       `json:"missing_total" yaml:"missing_total"`
	NumericColumns []string                  `json:"numeric_columns" yaml:"numeric_columns"`
	NumericSummary map[string]NumericSummary `json:"numeric_summary" yaml:"numeric_summary"`
}

// ComputeStats summarizes a table as-is, before or after imputation. Every
// column with at least one coercible numeric value gets a summary computed
// over the coercible subset. Coercion here is deliberately lenient and
// independent of the classifier's ratio gate: this describes the raw data
// rather than typing it.
func ComputeStats(t *table.Table) *Stats {
	s := &Stats{
		Rows:           len(t.Rows),
		Cols:           len(t.Columns),
		Columns:        append([]string(nil), t.Columns...),
		NumericSummary: make(map[string]NumericSummary),
	}

	for j, name := range t.Columns {
		var (
			sum        float64
			count      int
			nonNumeric int
			summary    NumericSummary
		)
		for _, row := range t.Rows {
			cell := row[j]
			if cell == table.Missing {
				s.MissingTotal++
				continue
			}
			x, ok := format.ParseNumber(cell)
			if !ok {
				nonNumeric++
				continue
			}
			if count == 0 || x < summary.Min {
				summary.Min = x
			}
			if count == 0 || x > summary.Max {
				summary.Max = x
			}
			sum += x
			count++
		}
		if count == 0 {
			continue
		}
		summary.Mean = sum / float64(count)
		summary.NonNumeric = nonNumeric
		summary.Missing = len(t.Rows) - count
		s.NumericColumns = append(s.NumericColumns, name)
		s.NumericSummary[name] = summary
	}

	return s
}
