// Package format infers the byte encoding, field delimiter and header
// presence of a raw CSV sample. Detection is a pure function of the sample
// and never fails: every step has a deterministic fallback.
package format

import (
	"bytes"
	"encoding/csv"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Encoding names a supported byte encoding.
type Encoding string

const (
	// EncodingUTF8 is strict UTF-8 without a byte-order mark.
	EncodingUTF8 Encoding = "utf-8"
	// EncodingUTF8BOM is UTF-8 preceded by the EF BB BF marker.
	EncodingUTF8BOM Encoding = "utf-8-sig"
	// EncodingWindows1250 is the Central-European legacy fallback. Decoding
	// with it cannot fail: every byte value maps to some character.
	EncodingWindows1250 Encoding = "windows-1250"
)

// Delimiters is the candidate set, in tie-break order.
var Delimiters = []rune{',', ';', '\t', '|'}

// DefaultSampleSize is how many leading bytes detection looks at.
const DefaultSampleSize = 64 * 1024

var utf8BOM = []byte{0xef, 0xbb, 0xbf}

// Format is the detected shape of a CSV byte stream.
type Format struct {
	Encoding  Encoding `json:"encoding"`
	Delimiter rune     `json:"-"`
	HasHeader bool     `json:"header"`
}

// Detect sniffs encoding, delimiter and header presence from a byte sample.
// The first ~8-64 KB of the input is sufficient.
func Detect(sample []byte) Format {
	enc := DetectEncoding(sample)
	text := Decode(sample, enc)

	lines := sampleLines(text, 50)
	delim, ok := sniffDelimiter(lines)
	if !ok {
		delim = fallbackDelimiter(lines)
	}

	return Format{
		Encoding:  enc,
		Delimiter: delim,
		HasHeader: detectHeader(lines, delim),
	}
}

// DetectEncoding picks the encoding for a byte sample: BOM-marked UTF-8,
// then strict UTF-8, then the Windows-1250 terminal fallback.
func DetectEncoding(sample []byte) Encoding {
	if bytes.HasPrefix(sample, utf8BOM) {
		return EncodingUTF8BOM
	}
	if validUTF8Prefix(sample) {
		return EncodingUTF8
	}
	return EncodingWindows1250
}

// Decode converts raw bytes to a string under the given encoding. The
// Windows-1250 path replaces the handful of unmapped byte values with
// U+FFFD rather than failing.
func Decode(data []byte, enc Encoding) string {
	switch enc {
	case EncodingUTF8BOM:
		return string(bytes.TrimPrefix(data, utf8BOM))
	case EncodingWindows1250:
		s, err := charmap.Windows1250.NewDecoder().String(string(data))
		if err != nil {
			// Charmap decoding has no error states in practice; keep the
			// raw bytes readable if one ever appears.
			return string(data)
		}
		return s
	default:
		return string(data)
	}
}

// validUTF8Prefix reports whether the sample is valid UTF-8, tolerating a
// multi-byte rune cut off at the sample boundary.
func validUTF8Prefix(sample []byte) bool {
	if utf8.Valid(sample) {
		return true
	}
	for trim := 1; trim <= 3 && trim < len(sample); trim++ {
		tail := sample[len(sample)-trim:]
		if utf8.RuneStart(tail[0]) && utf8.Valid(sample[:len(sample)-trim]) {
			return true
		}
	}
	return false
}

func sampleLines(text string, max int) []string {
	var lines []string
	for _, ln := range strings.Split(text, "\n") {
		ln = strings.TrimRight(ln, "\r")
		if strings.TrimSpace(ln) == "" {
			continue
		}
		lines = append(lines, ln)
		if len(lines) == max {
			break
		}
	}
	return lines
}

// sniffDelimiter looks for a candidate that occurs a consistent, non-zero
// number of times on every sampled line. Among consistent candidates the
// highest per-line count wins. Reports false on ambiguous samples.
func sniffDelimiter(lines []string) (rune, bool) {
	if len(lines) == 0 {
		return 0, false
	}

	var best rune
	bestCount := 0
	for _, d := range Delimiters {
		count := strings.Count(lines[0], string(d))
		if count == 0 {
			continue
		}
		consistent := true
		for _, ln := range lines[1:] {
			if strings.Count(ln, string(d)) != count {
				consistent = false
				break
			}
		}
		if consistent && count > bestCount {
			best = d
			bestCount = count
		}
	}
	return best, bestCount > 0
}

// fallbackDelimiter counts candidates in the first non-blank line and picks
// the most frequent, ties broken by candidate order.
func fallbackDelimiter(lines []string) rune {
	if len(lines) == 0 {
		return ','
	}
	best := ','
	bestCount := -1
	for _, d := range Delimiters {
		if count := strings.Count(lines[0], string(d)); count > bestCount {
			best = d
			bestCount = count
		}
	}
	return best
}

// detectHeader compares the type homogeneity of the first record against the
// rest: a mostly-numeric column headed by a numeric cell means the first row
// is data. Anything inconclusive defaults to "header present", because the
// rest of the pipeline assumes named columns.
func detectHeader(lines []string, delim rune) bool {
	r := csv.NewReader(strings.NewReader(strings.Join(lines, "\n")))
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	var records [][]string
	for len(records) < 20 {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return true
		}
		records = append(records, rec)
	}
	if len(records) < 2 {
		return true
	}

	first := records[0]
	for j := range first {
		if !numericToken(first[j]) {
			continue
		}
		numeric, total := 0, 0
		for _, rec := range records[1:] {
			if j >= len(rec) || strings.TrimSpace(rec[j]) == "" {
				continue
			}
			total++
			if numericToken(rec[j]) {
				numeric++
			}
		}
		// First cell numeric and the column body overwhelmingly numeric:
		// the first row is a data row.
		if total > 0 && numeric*5 >= total*4 {
			return false
		}
	}
	return true
}

func numericToken(s string) bool {
	_, ok := ParseNumber(s)
	return ok
}
