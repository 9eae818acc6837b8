package table

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyFile reports zero-length input.
	ErrEmptyFile = errors.New("file is empty")

	// ErrNoRows reports a structurally valid parse that yielded no data rows.
	ErrNoRows = errors.New("table has no rows")

	// ErrNoColumns reports a parse that yielded no columns.
	ErrNoColumns = errors.New("table has no columns")
)

// ParseError reports that no delimiter candidate produced a usable table.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unable to parse with supported delimiters: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
