package dataset

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrEmptyDataset is returned when an operation needs at least one row.
var ErrEmptyDataset = errors.New("no data available to generate Gantt chart")

// ErrInvalidCompletion is returned for a completion outside [0, 1].
var ErrInvalidCompletion = errors.New("completion must be a fraction between 0 and 1")

// IncompleteMappingError reports column roles the user left unselected.
type IncompleteMappingError struct {
	Missing []string
}

func (e *IncompleteMappingError) Error() string {
	return "incomplete column mapping: select a column for " + strings.Join(e.Missing, ", ")
}

// UnknownColumnError reports a mapping selection that names no column.
type UnknownColumnError struct {
	Column string
}

func (e *UnknownColumnError) Error() string {
	return fmt.Sprintf("unknown column: %q", e.Column)
}

// MissingColumnError reports canonical columns absent from a table handed
// to the normalizer.
type MissingColumnError struct {
	Columns []string
}

func (e *MissingColumnError) Error() string {
	return "missing required column: " + strings.Join(e.Columns, ", ")
}

// InvalidRangeError reports an activity that ends before it starts.
type InvalidRangeError struct {
	Start time.Time
	End   time.Time
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("end date %s is before start date %s", FormatDate(e.End), FormatDate(e.Start))
}

// MissingFieldError reports an empty required field on add.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return "missing required field: " + e.Field
}
