package profile

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tablescan/tablescan-cli/internal/format"
	"github.com/tablescan/tablescan-cli/internal/table"
)

// Options control one profiling run.
type Options struct {
	Thresholds Thresholds

	// PreviewRows bounds the raw-row preview included in the result.
	PreviewRows int

	// SampleValues bounds the per-column distinct sample list.
	SampleValues int

	// SampleBytes is how many leading bytes format detection inspects.
	SampleBytes int

	// NormalizeNullTokens folds the textual spellings in NullTokens into
	// the missing sentinel during normalization. Off by default.
	NormalizeNullTokens bool
	NullTokens          []string
}

// DefaultOptions returns the defaults used when the caller has no config.
func DefaultOptions() Options {
	return Options{
		Thresholds:   DefaultThresholds(),
		PreviewRows:  20,
		SampleValues: 20,
		SampleBytes:  format.DefaultSampleSize,
		NullTokens:   []string{"null", "na", "n/a", "none", "nan"},
	}
}

// NumericStats summarizes a measure column.
type NumericStats struct {
	Min  float64 `json:"min" yaml:"min"`
	Max  float64 `json:"max" yaml:"max"`
	Mean float64 `json:"mean" yaml:"mean"`
}

// DateRange summarizes a datetime column as ISO date strings.
type DateRange struct {
	Min string `json:"min" yaml:"min"`
	Max string `json:"max" yaml:"max"`
}

// ColumnProfile describes one typed column.
type ColumnProfile struct {
	Name         string       `json:"name" yaml:"name"`
	InferredType InferredType `json:"inferred_type" yaml:"inferred_type"`
	SemanticType SemanticType `json:"semantic_type" yaml:"semantic_type"`
	Nullable     bool         `json:"nullable" yaml:"nullable"`
	MissingCount int          `json:"missing_count" yaml:"missing_count"`
	UniqueCount  int          `json:"unique_count" yaml:"unique_count"`
	SampleValues []string     `json:"sample_values,omitempty" yaml:"sample_values,omitempty"`

	// ParseRatio is the winning strategy's success ratio for ratio-gated
	// classifications (numeric, datetime); zero otherwise.
	ParseRatio float64 `json:"parse_ratio,omitempty" yaml:"parse_ratio,omitempty"`

	// Stats is present only for measure columns.
	Stats *NumericStats `json:"stats,omitempty" yaml:"stats,omitempty"`

	// DateRange is present only for datetime columns.
	DateRange *DateRange `json:"date_range,omitempty" yaml:"date_range,omitempty"`
}

// Suggestions groups column names by the chart role they can play.
type Suggestions struct {
	Dimensions []string `json:"dimensions" yaml:"dimensions"`
	Measures   []string `json:"measures" yaml:"measures"`
	Datetimes  []string `json:"datetimes" yaml:"datetimes"`
}

// Meta carries the detected format and table dimensions.
type Meta struct {
	Encoding    string `json:"encoding" yaml:"encoding"`
	Delimiter   string `json:"delimiter" yaml:"delimiter"`
	Header      bool   `json:"header" yaml:"header"`
	Rows        int    `json:"rows" yaml:"rows"`
	Cols        int    `json:"cols" yaml:"cols"`
	PreviewRows int    `json:"preview_rows" yaml:"preview_rows"`
}

// Result is the structured profile of one uploaded file. It lives for a
// single request/response cycle and is never persisted.
type Result struct {
	ID          string          `json:"id" yaml:"id"`
	Meta        Meta            `json:"meta" yaml:"meta"`
	Columns     []ColumnProfile `json:"columns" yaml:"columns"`
	Suggestions Suggestions     `json:"suggestions" yaml:"suggestions"`
	Preview     [][]string      `json:"preview" yaml:"preview"`
	Warnings    []string        `json:"warnings,omitempty" yaml:"warnings,omitempty"`

	// Classes holds the per-column classifications, index-aligned with the
	// table's columns, for downstream imputation and filtering.
	Classes []Classification `json:"-" yaml:"-"`
}

// Profile runs the whole pipeline on raw file bytes: format detection,
// parsing, normalization and per-column classification. It returns the
// profile and the normalized table for downstream imputation, statistics
// or filtering.
func Profile(data []byte, opts Options) (*Result, *table.Table, error) {
	if opts.PreviewRows <= 0 {
		opts.PreviewRows = DefaultOptions().PreviewRows
	}
	if opts.SampleValues <= 0 {
		opts.SampleValues = DefaultOptions().SampleValues
	}
	if opts.Thresholds.Numeric <= 0 {
		opts.Thresholds.Numeric = DefaultThreshold
	}
	if opts.Thresholds.Datetime <= 0 {
		opts.Thresholds.Datetime = DefaultThreshold
	}

	sample := data
	if opts.SampleBytes > 0 && len(sample) > opts.SampleBytes {
		sample = sample[:opts.SampleBytes]
	}
	f := format.Detect(sample)

	parsed, err := table.Parse(data, f)
	if err != nil {
		return nil, nil, fmt.Errorf("parse table: %w", err)
	}

	var normOpts table.NormalizeOptions
	if opts.NormalizeNullTokens {
		normOpts.NullTokens = opts.NullTokens
	}
	t := table.Normalize(parsed, normOpts)

	res := &Result{
		ID: uuid.NewString(),
		Meta: Meta{
			Encoding:    string(f.Encoding),
			Delimiter:   string(t.Delimiter),
			Header:      f.HasHeader,
			Rows:        len(t.Rows),
			Cols:        len(t.Columns),
			PreviewRows: min(opts.PreviewRows, len(t.Rows)),
		},
		Columns: make([]ColumnProfile, 0, len(t.Columns)),
		Classes: make([]Classification, 0, len(t.Columns)),
	}
	if t.RenamedColumns {
		res.Warnings = append(res.Warnings,
			"duplicate column names were renamed with __N suffixes")
	}

	for i, name := range t.Columns {
		values := columnValues(t, i)
		cls := Classify(values, opts.Thresholds)
		res.Classes = append(res.Classes, cls)

		cp := ColumnProfile{
			Name:         name,
			InferredType: cls.Inferred,
			SemanticType: cls.Semantic,
			MissingCount: t.MissingCount(i),
			UniqueCount:  uniqueCount(values),
			SampleValues: sampleValues(values, opts.SampleValues),
			ParseRatio:   cls.Ratio,
		}
		cp.Nullable = cp.MissingCount > 0

		switch cls.Semantic {
		case SemMeasure:
			cp.Stats = numericStats(values)
			res.Suggestions.Measures = append(res.Suggestions.Measures, name)
		case SemDatetime:
			cp.DateRange = dateRange(values, cls.DayFirst)
			res.Suggestions.Datetimes = append(res.Suggestions.Datetimes, name)
		default:
			res.Suggestions.Dimensions = append(res.Suggestions.Dimensions, name)
		}

		res.Columns = append(res.Columns, cp)
	}

	for _, row := range t.Rows[:res.Meta.PreviewRows] {
		res.Preview = append(res.Preview, append([]string(nil), row...))
	}

	return res, t, nil
}

func columnValues(t *table.Table, col int) []string {
	vals := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		vals[i] = row[col]
	}
	return vals
}

// uniqueCount counts distinct non-missing values by their post-trim string
// representation.
func uniqueCount(values []string) int {
	seen := make(map[string]struct{})
	for _, v := range values {
		if v == table.Missing {
			continue
		}
		seen[trimmed(v)] = struct{}{}
	}
	return len(seen)
}

func sampleValues(values []string, max int) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, v := range values {
		if v == table.Missing {
			continue
		}
		v = trimmed(v)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
		if len(out) == max {
			break
		}
	}
	return out
}

func numericStats(values []string) *NumericStats {
	var (
		sum   float64
		count int
		stats NumericStats
	)
	for _, v := range values {
		if v == table.Missing {
			continue
		}
		x, ok := format.ParseNumber(v)
		if !ok {
			continue
		}
		if count == 0 || x < stats.Min {
			stats.Min = x
		}
		if count == 0 || x > stats.Max {
			stats.Max = x
		}
		sum += x
		count++
	}
	if count == 0 {
		return nil
	}
	stats.Mean = sum / float64(count)
	return &stats
}

func dateRange(values []string, dayFirst bool) *DateRange {
	var lo, hi time.Time
	found := false
	for _, v := range values {
		if v == table.Missing {
			continue
		}
		t, ok := ParseDate(v, dayFirst)
		if !ok {
			continue
		}
		if !found || t.Before(lo) {
			lo = t
		}
		if !found || t.After(hi) {
			hi = t
		}
		found = true
	}
	if !found {
		return nil
	}
	return &DateRange{
		Min: lo.Format("2006-01-02"),
		Max: hi.Format("2006-01-02"),
	}
}

func trimmed(s string) string {
	// Cells are stored verbatim; comparisons use the trimmed form.
	return strings.TrimSpace(s)
}
