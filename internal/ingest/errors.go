// Package ingest parses uploaded spreadsheets and pasted delimited text into
// untyped tables.
package ingest

import (
	"errors"
	"fmt"
)

// ErrNoColumns is returned for input that has no header row at all.
var ErrNoColumns = errors.New("no columns to parse from input")

// ParseError reports a malformed spreadsheet or delimited text. The wrapped
// error carries the underlying parser detail.
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("error parsing %s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// DelimiterDetectionError reports that the separator could not be sniffed
// from a sample. It is recoverable: the user picks a separator manually.
type DelimiterDetectionError struct {
	Reason string
}

func (e *DelimiterDetectionError) Error() string {
	if e == nil {
		return ""
	}
	return "could not determine delimiter: " + e.Reason
}
