package table

import "strings"

// NormalizeOptions controls which cell spellings collapse into the missing
// sentinel.
type NormalizeOptions struct {
	// NullTokens, when non-empty, lists textual "no value" spellings
	// (compared case-insensitively after trimming) that are folded into the
	// sentinel in addition to structural blanks. Off by default: a literal
	// "null" in the source may be a legitimate category.
	NullTokens []string
}

// Normalize derives a table in which every cell that is blank or consists
// only of whitespace is replaced by the missing sentinel. Non-missing cells
// are kept verbatim.
func Normalize(t *Table, opts NormalizeOptions) *Table {
	tokens := make(map[string]struct{}, len(opts.NullTokens))
	for _, tok := range opts.NullTokens {
		tokens[strings.ToLower(strings.TrimSpace(tok))] = struct{}{}
	}

	out := t.Clone()
	for _, row := range out.Rows {
		for j, cell := range row {
			trimmed := strings.TrimSpace(cell)
			if trimmed == "" {
				row[j] = Missing
				continue
			}
			if len(tokens) > 0 {
				if _, ok := tokens[strings.ToLower(trimmed)]; ok {
					row[j] = Missing
				}
			}
		}
	}
	return out
}
