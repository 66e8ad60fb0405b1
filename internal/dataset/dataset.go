package dataset

import (
	"strconv"
	"strings"
	"time"

	"github.com/gantt-tools/gantt-go/internal/table"
)

// Row is one activity of the canonical dataset.
type Row struct {
	Activity   string    `json:"activity"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	Completion *float64  `json:"completion,omitempty"`
	Category   string    `json:"category,omitempty"`
}

// Duration returns the inclusive length of the activity in days.
func (r Row) Duration() int {
	return int(r.End.Sub(r.Start).Hours()/24) + 1
}

func (r Row) clone() Row {
	if r.Completion != nil {
		c := *r.Completion
		r.Completion = &c
	}
	return r
}

// Dataset is the in-memory canonical timeline table.
type Dataset struct {
	// rows preserves input order; the first row is drawn at the top.
	rows []Row

	// hasCompletion and hasCategory track which optional columns exist.
	hasCompletion bool
	hasCategory   bool

	// maxActivity is the activity label limit applied on add.
	maxActivity int

	// dirty tracks if the dataset has been modified since the last export.
	dirty bool
}

// NewDataset creates a new empty dataset.
func NewDataset() *Dataset {
	return &Dataset{
		rows:        make([]Row, 0),
		maxActivity: MaxActivityLength,
	}
}

// Len returns the number of rows.
func (ds *Dataset) Len() int {
	return len(ds.rows)
}

// IsEmpty returns true if the dataset has no rows.
func (ds *Dataset) IsEmpty() bool {
	return len(ds.rows) == 0
}

// Row returns a copy of row i.
func (ds *Dataset) Row(i int) Row {
	return ds.rows[i].clone()
}

// Rows returns a copy of all rows in order.
func (ds *Dataset) Rows() []Row {
	rows := make([]Row, len(ds.rows))
	for i, r := range ds.rows {
		rows[i] = r.clone()
	}
	return rows
}

// HasCompletion returns true if the dataset carries a Completion column.
func (ds *Dataset) HasCompletion() bool {
	return ds.hasCompletion
}

// HasCategory returns true if the dataset carries a Category column.
func (ds *Dataset) HasCategory() bool {
	return ds.hasCategory
}

// IsDirty returns true if the dataset has unsaved changes.
func (ds *Dataset) IsDirty() bool {
	return ds.dirty
}

// MarkClean marks the dataset as exported.
func (ds *Dataset) MarkClean() {
	ds.dirty = false
}

// Columns returns the canonical columns the dataset currently exposes.
func (ds *Dataset) Columns() []string {
	cols := RequiredColumns()
	if ds.hasCompletion {
		cols = append(cols, ColCompletion)
	}
	if ds.hasCategory {
		cols = append(cols, ColCategory)
	}
	return cols
}

// Labels returns the unique activity labels in first-seen order.
func (ds *Dataset) Labels() []string {
	seen := make(map[string]bool)
	var labels []string
	for _, r := range ds.rows {
		if !seen[r.Activity] {
			seen[r.Activity] = true
			labels = append(labels, r.Activity)
		}
	}
	return labels
}

// Categories returns the unique non-empty categories in first-seen order.
func (ds *Dataset) Categories() []string {
	seen := make(map[string]bool)
	var cats []string
	for _, r := range ds.rows {
		if r.Category != "" && !seen[r.Category] {
			seen[r.Category] = true
			cats = append(cats, r.Category)
		}
	}
	return cats
}

// Span returns the earliest start and latest end. ok is false when empty.
func (ds *Dataset) Span() (start, end time.Time, ok bool) {
	if len(ds.rows) == 0 {
		return time.Time{}, time.Time{}, false
	}
	start, end = ds.rows[0].Start, ds.rows[0].End
	// Imported rows may end before they start, so both bounds check both dates.
	for _, r := range ds.rows {
		for _, d := range []time.Time{r.Start, r.End} {
			if d.Before(start) {
				start = d
			}
			if d.After(end) {
				end = d
			}
		}
	}
	return start, end, true
}

// Clone returns a deep copy of the dataset.
func (ds *Dataset) Clone() *Dataset {
	c := *ds
	c.rows = ds.Rows()
	return &c
}

// RowOption configures an added row.
type RowOption func(*Row)

// WithCompletion sets the completion fraction of an added row.
func WithCompletion(fraction float64) RowOption {
	return func(r *Row) {
		r.Completion = &fraction
	}
}

// WithCategory sets the category of an added row.
func WithCategory(category string) RowOption {
	return func(r *Row) {
		r.Category = strings.TrimSpace(category)
	}
}

// AddActivity appends a row after validating it. The activity label is
// truncated to the dataset's limit; the dates are reduced to calendar dates.
func (ds *Dataset) AddActivity(activity string, start, end time.Time, opts ...RowOption) error {
	activity = strings.TrimSpace(activity)
	switch {
	case activity == "":
		return &MissingFieldError{Field: "activity"}
	case start.IsZero():
		return &MissingFieldError{Field: "start date"}
	case end.IsZero():
		return &MissingFieldError{Field: "end date"}
	}

	start, end = Date(start), Date(end)
	if end.Before(start) {
		return &InvalidRangeError{Start: start, End: end}
	}

	row := Row{Start: start, End: end}
	row.Activity, _ = truncate(activity, ds.maxActivity)
	for _, opt := range opts {
		opt(&row)
	}
	if row.Completion != nil && (*row.Completion < 0 || *row.Completion > 1) {
		return ErrInvalidCompletion
	}

	ds.rows = append(ds.rows, row)
	if row.Completion != nil {
		ds.hasCompletion = true
	}
	if row.Category != "" {
		ds.hasCategory = true
	}
	ds.dirty = true
	return nil
}

// RemoveActivity removes every row whose activity equals label exactly and
// returns the number of rows removed.
func (ds *Dataset) RemoveActivity(label string) int {
	kept := make([]Row, 0, len(ds.rows))
	for _, r := range ds.rows {
		if r.Activity != label {
			kept = append(kept, r)
		}
	}
	removed := len(ds.rows) - len(kept)
	if removed > 0 {
		ds.rows = kept
		ds.dirty = true
	}
	return removed
}

// Table serializes the dataset back into an untyped canonical table. Dates
// are written as YYYY-MM-DD so the table normalizes to the same dataset.
func (ds *Dataset) Table() *table.Table {
	t := table.New(ds.Columns()...)
	for _, r := range ds.rows {
		cells := []string{r.Activity, FormatDate(r.Start), FormatDate(r.End)}
		if ds.hasCompletion {
			cells = append(cells, formatCompletion(r.Completion))
		}
		if ds.hasCategory {
			cells = append(cells, r.Category)
		}
		_ = t.AddRow(cells...)
	}
	return t
}

func formatCompletion(c *float64) string {
	if c == nil {
		return ""
	}
	return strconv.FormatFloat(*c, 'f', -1, 64)
}
