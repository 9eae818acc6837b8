package format

import (
	"strconv"
	"strings"
)

var numberNormalizer = strings.NewReplacer(
	" ", "",
	" ", "", // no-break space used as a thousands separator
	",", ".",
)

// ParseNumber parses a numeric cell leniently: surrounding whitespace and
// space-style thousands separators are removed and a comma decimal separator
// is mapped to a period before parsing.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(numberNormalizer.Replace(s), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
