// Package profile classifies the columns of a parsed table, fills missing
// cells, and derives summary statistics. Everything here is a pure function
// of its input: profiles are recomputed per call and never cached.
package profile

import (
	"regexp"
	"strings"
	"time"

	"github.com/tablescan/tablescan-cli/internal/format"
	"github.com/tablescan/tablescan-cli/internal/table"
)

// InferredType is the storage-level type of a column.
type InferredType string

const (
	TypeString  InferredType = "string"
	TypeNumeric InferredType = "numeric"
	TypeDate    InferredType = "date"
	TypeCode    InferredType = "code"
)

// SemanticType is the role a column plays in downstream aggregation.
type SemanticType string

const (
	SemCategorical SemanticType = "categorical"
	SemMeasure     SemanticType = "measure"
	SemDatetime    SemanticType = "datetime"
)

// DefaultThreshold is the success-ratio gate for numeric and datetime
// classification.
const DefaultThreshold = 0.9

// Thresholds are the classification confidence gates. A column is accepted
// by the datetime or numeric branch only when the fraction of non-missing
// values that parse reaches the corresponding threshold.
type Thresholds struct {
	Numeric  float64
	Datetime float64
}

// DefaultThresholds returns both gates at their 0.9 default.
func DefaultThresholds() Thresholds {
	return Thresholds{Numeric: DefaultThreshold, Datetime: DefaultThreshold}
}

// Classification is the outcome of typing one column.
type Classification struct {
	Inferred InferredType
	Semantic SemanticType

	// Ratio is the parse success ratio of the winning strategy. Zero for
	// code and fallback classifications, which are not ratio-gated.
	Ratio float64

	// DayFirst records which datetime ordering won, for re-parsing values.
	DayFirst bool
}

// classifier evaluates one branch of the precedence order. The first branch
// to accept wins.
type classifier func(values []string, th Thresholds) (Classification, bool)

// Precedence: code protection first (so postal codes and zero-padded IDs
// are never coerced into numbers), then datetime, then numeric, with
// categorical text as the fallback.
var classifiers = []classifier{
	classifyCode,
	classifyDatetime,
	classifyNumeric,
}

// Classify types a single column. The input is the full column including
// missing sentinels; ratios are computed over non-missing values only.
func Classify(values []string, th Thresholds) Classification {
	nonMissing := make([]string, 0, len(values))
	for _, v := range values {
		if v == table.Missing {
			continue
		}
		nonMissing = append(nonMissing, strings.TrimSpace(v))
	}

	for _, fn := range classifiers {
		if c, ok := fn(nonMissing, th); ok {
			return c
		}
	}
	return Classification{Inferred: TypeString, Semantic: SemCategorical}
}

var (
	leadingZeroRe = regexp.MustCompile(`^0\d+$`)
	allDigitsRe   = regexp.MustCompile(`^\d+$`)
)

const (
	codeMaxLength          = 6
	codeMaxDistinctLengths = 3

	// codeWidthDominance is how much of an all-digit column must share a
	// single width before it is treated as a fixed-width identifier.
	// Without this guard, short free-range quantities (10, 100, 50) would
	// be mistaken for codes.
	codeWidthDominance = 0.9
)

// classifyCode keeps identifier-like columns as opaque text: any value with
// a leading zero, or a column of short all-digit values with near-fixed
// width (postal codes, zero-padded IDs).
func classifyCode(values []string, _ Thresholds) (Classification, bool) {
	if len(values) == 0 {
		return Classification{}, false
	}

	allDigits := true
	lengths := make(map[int]int)
	maxLen := 0

	for _, v := range values {
		if leadingZeroRe.MatchString(v) {
			return Classification{Inferred: TypeCode, Semantic: SemCategorical}, true
		}
		if !allDigitsRe.MatchString(v) {
			allDigits = false
			continue
		}
		lengths[len(v)]++
		if len(v) > maxLen {
			maxLen = len(v)
		}
	}

	if !allDigits || len(lengths) > codeMaxDistinctLengths || maxLen > codeMaxLength {
		return Classification{}, false
	}
	dominant := 0
	for _, n := range lengths {
		if n > dominant {
			dominant = n
		}
	}
	if float64(dominant) < codeWidthDominance*float64(len(values)) {
		return Classification{}, false
	}
	return Classification{Inferred: TypeCode, Semantic: SemCategorical}, true
}

// Layout sets for the two datetime parse strategies. The first prefers
// ISO/international ordering, the second day-first ordering.
var (
	isoFirstLayouts = []string{
		"2006-01-02",
		"2006-01-02 15:04",
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
		time.RFC3339,
		"2006/01/02",
		"01/02/2006",
		"01-02-2006",
	}
	dayFirstLayouts = []string{
		"02-01-2006",
		"02/01/2006",
		"02.01.2006",
		"02/01/2006 15:04",
		"02-01-2006 15:04:05",
		"2006-01-02",
		"2006-01-02 15:04:05",
	}
)

// ParseDate parses one value with the given strategy's layout set.
func ParseDate(s string, dayFirst bool) (time.Time, bool) {
	s = strings.TrimSpace(s)
	layouts := isoFirstLayouts
	if dayFirst {
		layouts = dayFirstLayouts
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// classifyDatetime runs both parse strategies and accepts when the better
// success ratio clears the threshold. Ties prefer the ISO-first strategy.
func classifyDatetime(values []string, th Thresholds) (Classification, bool) {
	if len(values) == 0 {
		return Classification{}, false
	}

	isoRatio := parseRatio(values, false)
	dayRatio := parseRatio(values, true)

	best, dayFirst := isoRatio, false
	if dayRatio > isoRatio {
		best, dayFirst = dayRatio, true
	}
	if best < th.Datetime {
		return Classification{}, false
	}
	return Classification{
		Inferred: TypeDate,
		Semantic: SemDatetime,
		Ratio:    best,
		DayFirst: dayFirst,
	}, true
}

func parseRatio(values []string, dayFirst bool) float64 {
	ok := 0
	for _, v := range values {
		if _, parsed := ParseDate(v, dayFirst); parsed {
			ok++
		}
	}
	return float64(ok) / float64(len(values))
}

// classifyNumeric accepts when enough values parse under lenient numeric
// normalization (spaces stripped, comma decimal mapped to period).
func classifyNumeric(values []string, th Thresholds) (Classification, bool) {
	if len(values) == 0 {
		return Classification{}, false
	}

	ok := 0
	for _, v := range values {
		if _, parsed := format.ParseNumber(v); parsed {
			ok++
		}
	}
	ratio := float64(ok) / float64(len(values))
	if ratio < th.Numeric {
		return Classification{}, false
	}
	return Classification{Inferred: TypeNumeric, Semantic: SemMeasure, Ratio: ratio}, true
}
