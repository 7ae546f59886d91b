package ingest

import (
	"fmt"
	"strings"
)

// ReadError means the file could not be parsed as a delimited table under
// any of the attempted delimiter/encoding strategies.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read %s as a delimited table: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// MissingColumnsError means a named vendor template was selected but the
// file lacks one or more of its required columns.
type MissingColumnsError struct {
	MapName string
	Missing []string
	Found   []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing required columns for map %q: [%s]; columns found: [%s]",
		e.MapName, strings.Join(e.Missing, ", "), strings.Join(e.Found, ", "))
}

// AutoDetectError means auto mode could not resolve a timestamp or current
// column. Found carries the full column list for diagnosis.
type AutoDetectError struct {
	Found []string
}

func (e *AutoDetectError) Error() string {
	return fmt.Sprintf("auto-detect failed: CSV must include a timestamp and current column; columns found: [%s]",
		strings.Join(e.Found, ", "))
}

// NoValidRowsError means every row was dropped during coercion.
type NoValidRowsError struct {
	Found []string
}

func (e *NoValidRowsError) Error() string {
	return fmt.Sprintf("no valid rows after parsing; check timestamp/current formatting; columns: [%s]",
		strings.Join(e.Found, ", "))
}
