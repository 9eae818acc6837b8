package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/tablescan/tablescan-cli/internal/format"
)

// Parse decodes raw bytes with the detected encoding and splits them into a
// rectangular table using the detected delimiter.
//
// As a guard against a detector mistake, every other candidate delimiter is
// also attempted and the attempt yielding strictly more columns than the
// primary one wins. Cells stay raw strings throughout.
func Parse(data []byte, f format.Format) (*Table, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}

	text := format.Decode(data, f.Encoding)

	best, err := parseWith(text, f.Delimiter, f.HasHeader)
	if best != nil {
		best.Delimiter = f.Delimiter
	}
	for _, d := range format.Delimiters {
		if d == f.Delimiter {
			continue
		}
		alt, altErr := parseWith(text, d, f.HasHeader)
		if altErr != nil {
			continue
		}
		if best == nil || len(alt.Columns) > len(best.Columns) {
			alt.Delimiter = d
			best = alt
			err = nil
		}
	}

	if best == nil {
		return nil, &ParseError{Err: err}
	}
	if len(best.Columns) == 0 {
		return nil, ErrNoColumns
	}
	if len(best.Rows) == 0 {
		return nil, ErrNoRows
	}
	return best, nil
}

func parseWith(text string, delim rune, hasHeader bool) (*Table, error) {
	r := csv.NewReader(strings.NewReader(text))
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	var records [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if len(records) == 0 {
		return nil, ErrNoRows
	}

	var columns []string
	var body [][]string
	renamed := false
	if hasHeader {
		columns, renamed = DedupeColumns(records[0])
		body = records[1:]
	} else {
		columns = syntheticColumns(len(records[0]))
		body = records
	}

	rows := make([][]string, len(body))
	for i, rec := range body {
		row := make([]string, len(columns))
		copy(row, rec) // pads short records, drops cells past the header width
		rows[i] = row
	}

	return &Table{Columns: columns, Rows: rows, RenamedColumns: renamed}, nil
}

func syntheticColumns(n int) []string {
	cols := make([]string, n)
	for i := range cols {
		cols[i] = fmt.Sprintf("column_%d", i+1)
	}
	return cols
}
