// Package session holds the per-user working state of the timeline editor:
// the raw imported table, the column mapping and the canonical dataset.
package session

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/gantt-tools/gantt-go/internal/chart"
	"github.com/gantt-tools/gantt-go/internal/dataset"
	"github.com/gantt-tools/gantt-go/internal/ingest"
	"github.com/gantt-tools/gantt-go/internal/logger"
	"github.com/gantt-tools/gantt-go/internal/table"
)

// ErrEmptyDataset is returned by actions that need at least one row.
var ErrEmptyDataset = dataset.ErrEmptyDataset

// ErrNothingImported is returned when mapping is requested before any import.
var ErrNothingImported = errors.New("no data imported yet")

// Options configures the processing stages a session runs.
type Options struct {
	Import    ingest.Options
	Map       dataset.MapOptions
	Normalize dataset.NormalizeOptions
}

// DefaultOptions returns the default session options.
func DefaultOptions() Options {
	return Options{
		Import:    ingest.Options{SampleBytes: ingest.DefaultSampleBytes},
		Map:       dataset.MapOptions{RetainOptional: true},
		Normalize: dataset.DefaultNormalizeOptions(),
	}
}

// Flash levels.
const (
	FlashInfo    = "info"
	FlashSuccess = "success"
	FlashWarning = "warning"
	FlashError   = "error"
)

// Flash is a one-shot message shown after an action.
type Flash struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// ImportResult describes a successful import.
type ImportResult struct {
	Kind       ingest.Kind      `json:"kind"`
	Separator  ingest.Separator `json:"-"`
	Columns    []string         `json:"columns"`
	Rows       int              `json:"rows"`
	AutoMapped bool             `json:"auto_mapped"`
	Report     *dataset.Report  `json:"report,omitempty"`
}

// Session is the explicit state of one editing session. Every action runs to
// completion under the session lock and leaves the last good state in place
// when it fails.
type Session struct {
	ID string

	mu         sync.Mutex
	opts       Options
	raw        *table.Table
	mapping    dataset.Mapping
	data       *dataset.Dataset
	report     *dataset.Report
	flashes    []Flash
	lastAccess time.Time
	log        logger.Logger
}

// New creates an empty session.
func New(id string, opts Options) *Session {
	return &Session{
		ID:         id,
		opts:       opts,
		data:       dataset.NewDataset(),
		lastAccess: time.Now(),
		log:        logger.With("session", id),
	}
}

// ImportText parses pasted delimited text. An auto separator is sniffed.
func (s *Session) ImportText(text string, sep ingest.Separator) (*ImportResult, error) {
	tbl, detected, err := ingest.ReadText(text, sep, s.opts.Import.SampleBytes)
	if err != nil {
		s.log.Warn("text import failed", "error", err)
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	res := s.replaceRaw(tbl)
	res.Kind = ingest.KindText
	res.Separator = detected
	s.log.Info("text imported", "rows", res.Rows, "columns", len(res.Columns), "separator", detected.String())
	return res, nil
}

// ImportFile parses an uploaded spreadsheet or delimited text file.
func (s *Session) ImportFile(data []byte, filename string, sep ingest.Separator) (*ImportResult, error) {
	opts := s.opts.Import
	opts.Separator = sep
	read, err := ingest.Read(data, filename, opts)
	if err != nil {
		s.log.Warn("file import failed", "file", filename, "error", err)
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	res := s.replaceRaw(read.Table)
	res.Kind = read.Kind
	res.Separator = read.Separator
	s.log.Info("file imported", "file", filename, "rows", res.Rows, "columns", len(res.Columns))
	return res, nil
}

// replaceRaw installs a freshly imported table. The dataset is emptied
// unless the table already carries the canonical columns.
func (s *Session) replaceRaw(tbl *table.Table) *ImportResult {
	s.raw = tbl
	s.mapping = dataset.SuggestMapping(tbl.Columns())
	s.data = dataset.NewDataset()
	s.report = nil

	res := &ImportResult{Columns: tbl.Columns(), Rows: tbl.Len()}
	if m, ok := dataset.AutoMapping(tbl.Columns()); ok {
		if report, err := s.applyMapping(m); err == nil {
			res.AutoMapped = true
			res.Report = report
		}
	}
	return res
}

// Map applies a column mapping to the imported table and replaces the
// dataset with the normalized result.
func (s *Session) Map(m dataset.Mapping) (*dataset.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.raw == nil {
		return nil, ErrNothingImported
	}
	report, err := s.applyMapping(m)
	if err != nil {
		s.log.Warn("mapping rejected", "error", err)
		return nil, err
	}
	s.log.Info("columns mapped", "activity", m.Activity, "start", m.Start, "end", m.End, "rows", report.Kept)
	return report, nil
}

func (s *Session) applyMapping(m dataset.Mapping) (*dataset.Report, error) {
	mapped, err := dataset.ApplyMapping(s.raw, m, s.opts.Map)
	if err != nil {
		return nil, err
	}
	ds, report, err := dataset.Normalize(mapped, s.opts.Normalize)
	if err != nil {
		return nil, err
	}
	s.mapping = m
	s.install(ds, report)
	return report, nil
}

func (s *Session) install(ds *dataset.Dataset, report *dataset.Report) {
	s.data = ds
	s.report = report
	if report.DroppedCount() > 0 {
		s.log.Warn("rows dropped during normalization", "dropped", report.DroppedCount(), "kept", report.Kept)
	}
}

// AddActivity appends a validated row to the dataset.
func (s *Session) AddActivity(activity string, start, end time.Time, opts ...dataset.RowOption) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.data.AddActivity(activity, start, end, opts...); err != nil {
		s.log.Warn("add rejected", "activity", activity, "error", err)
		return err
	}
	s.log.Info("activity added", "activity", activity, "rows", s.data.Len())
	return nil
}

// RemoveActivity removes every row labelled label and returns the count.
func (s *Session) RemoveActivity(label string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data.IsEmpty() {
		return 0, ErrEmptyDataset
	}
	n := s.data.RemoveActivity(label)
	s.log.Info("activity removed", "activity", label, "removed", n, "rows", s.data.Len())
	return n, nil
}

// Edit replaces the dataset with an edited canonical table. The table is
// always re-normalized, so rows with unparseable dates are dropped again.
func (s *Session) Edit(t *table.Table) (*dataset.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ds, report, err := dataset.Normalize(t, s.opts.Normalize)
	if err != nil {
		s.log.Warn("edit rejected", "error", err)
		return nil, err
	}
	s.install(ds, report)
	s.log.Info("dataset edited", "rows", ds.Len())
	return report, nil
}

// EditCSV applies an edit given as comma-separated text with a header row.
func (s *Session) EditCSV(text string) (*dataset.Report, error) {
	tbl, err := ingest.ReadDelimited(text, ingest.SepComma)
	if err != nil {
		return nil, err
	}
	return s.Edit(tbl)
}

// ExportCSV writes the dataset as CSV and marks it clean.
func (s *Session) ExportCSV(w io.Writer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.data.WriteCSV(w); err != nil {
		return fmt.Errorf("failed to export CSV: %w", err)
	}
	s.data.MarkClean()
	return nil
}

// Render draws the dataset with r.
func (s *Session) Render(w io.Writer, r chart.Renderer, opts chart.Options) error {
	s.mu.Lock()
	ds := s.data.Clone()
	s.mu.Unlock()

	if ds.IsEmpty() {
		return ErrEmptyDataset
	}
	return r.Render(w, ds, opts)
}

// IsEmpty reports whether the dataset has no rows.
func (s *Session) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.IsEmpty()
}

// Dataset returns a copy of the current dataset.
func (s *Session) Dataset() *dataset.Dataset {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.Clone()
}

// Columns returns the columns of the imported table offered for mapping.
func (s *Session) Columns() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.raw == nil {
		return nil
	}
	return s.raw.Columns()
}

// Mapping returns the last applied or suggested mapping.
func (s *Session) Mapping() dataset.Mapping {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mapping
}

// Report returns the report of the last normalization, or nil.
func (s *Session) Report() *dataset.Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.report
}

// AddFlash queues a message for the next page view.
func (s *Session) AddFlash(level, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flashes = append(s.flashes, Flash{Level: level, Message: message})
}

// Flashes returns and clears the queued messages.
func (s *Session) Flashes() []Flash {
	s.mu.Lock()
	defer s.mu.Unlock()
	f := s.flashes
	s.flashes = nil
	return f
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastAccess = now
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastAccess
}
