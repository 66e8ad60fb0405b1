package dataset

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/gantt-tools/gantt-go/internal/table"
)

// Reasons a row is dropped during normalization.
const (
	ReasonInvalidStart = "invalid start date"
	ReasonInvalidEnd   = "invalid end date"
	ReasonNoActivity   = "missing activity"
)

// NormalizeOptions controls row normalization.
type NormalizeOptions struct {
	// MaxActivityLength truncates activity labels; zero uses the default.
	MaxActivityLength int
}

// DefaultNormalizeOptions returns the default normalization options.
func DefaultNormalizeOptions() NormalizeOptions {
	return NormalizeOptions{MaxActivityLength: MaxActivityLength}
}

// DroppedRow records a source row removed by normalization.
type DroppedRow struct {
	Index    int    `json:"index"`
	Activity string `json:"activity,omitempty"`
	Reason   string `json:"reason"`
}

// Report summarizes what normalization did to a table.
type Report struct {
	Input             int          `json:"input"`
	Kept              int          `json:"kept"`
	Dropped           []DroppedRow `json:"dropped,omitempty"`
	Truncated         int          `json:"truncated"`
	InvalidCompletion int          `json:"invalid_completion"`
}

// DroppedCount returns the number of rows removed.
func (r *Report) DroppedCount() int {
	return len(r.Dropped)
}

// DroppedDates returns the number of rows removed for unparseable dates.
func (r *Report) DroppedDates() int {
	n := 0
	for _, d := range r.Dropped {
		if d.Reason != ReasonNoActivity {
			n++
		}
	}
	return n
}

// Messages returns informational lines describing the report.
func (r *Report) Messages() []string {
	var msgs []string
	if n := r.DroppedDates(); n > 0 {
		msgs = append(msgs, fmt.Sprintf("Removed %d rows with invalid dates", n))
	}
	if n := r.DroppedCount() - r.DroppedDates(); n > 0 {
		msgs = append(msgs, fmt.Sprintf("Removed %d rows without an activity", n))
	}
	if r.Truncated > 0 {
		msgs = append(msgs, fmt.Sprintf("Truncated %d activity labels", r.Truncated))
	}
	if r.InvalidCompletion > 0 {
		msgs = append(msgs, fmt.Sprintf("Ignored %d invalid completion values", r.InvalidCompletion))
	}
	return msgs
}

// Normalize coerces a canonical table into a typed dataset. Rows whose start
// or end date cannot be parsed, or whose activity is blank, are dropped and
// recorded in the report. End-before-start rows are kept.
func Normalize(t *table.Table, opts NormalizeOptions) (*Dataset, *Report, error) {
	var missing []string
	for _, col := range RequiredColumns() {
		if !t.Has(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, nil, &MissingColumnError{Columns: missing}
	}
	limit := opts.MaxActivityLength
	if limit <= 0 {
		limit = MaxActivityLength
	}

	ds := NewDataset()
	ds.maxActivity = limit
	ds.hasCompletion = t.Has(ColCompletion)
	ds.hasCategory = t.Has(ColCategory)

	report := &Report{Input: t.Len()}
	for i := 0; i < t.Len(); i++ {
		// Only leading space is trimmed so a label cut at a space keeps its
		// full length on the next pass.
		activity := strings.TrimLeftFunc(t.Cell(i, ColActivity), unicode.IsSpace)
		start, startOK := ParseDate(t.Cell(i, ColStart))
		end, endOK := ParseDate(t.Cell(i, ColEnd))

		drop := func(reason string) {
			report.Dropped = append(report.Dropped, DroppedRow{Index: i, Activity: activity, Reason: reason})
		}
		switch {
		case !startOK:
			drop(ReasonInvalidStart)
			continue
		case !endOK:
			drop(ReasonInvalidEnd)
			continue
		case strings.TrimSpace(activity) == "":
			drop(ReasonNoActivity)
			continue
		}

		row := Row{Start: start, End: end}
		var truncated bool
		row.Activity, truncated = truncate(activity, limit)
		if truncated {
			report.Truncated++
		}

		if ds.hasCompletion {
			raw := strings.TrimSpace(t.Cell(i, ColCompletion))
			if raw != "" {
				if c, ok := ParseCompletion(raw); ok {
					row.Completion = &c
				} else {
					report.InvalidCompletion++
				}
			}
		}
		if ds.hasCategory {
			row.Category = strings.TrimSpace(t.Cell(i, ColCategory))
		}

		ds.rows = append(ds.rows, row)
	}

	report.Kept = ds.Len()
	ds.dirty = true
	return ds, report, nil
}

// ParseCompletion reads a completion as a fraction in [0, 1]. It accepts
// fractions ("0.4"), percentages ("40%") and whole percents ("40").
func ParseCompletion(value string) (float64, bool) {
	value = strings.TrimSpace(value)
	percent := strings.HasSuffix(value, "%")
	value = strings.TrimSpace(strings.TrimSuffix(value, "%"))

	f, err := strconv.ParseFloat(value, 64)
	if err != nil || f != f {
		return 0, false
	}
	if percent || f > 1 {
		f /= 100
	}
	if f < 0 || f > 1 {
		return 0, false
	}
	return f, true
}
