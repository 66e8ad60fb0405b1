// Package testutil provides fixtures and golden-file helpers for gantt tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/gantt-tools/gantt-go/internal/config"
	"github.com/gantt-tools/gantt-go/internal/dataset"
)

// SampleCanonicalCSV carries the canonical columns, day-first dates and one
// row whose start date cannot be parsed.
const SampleCanonicalCSV = "Activity,Start Date,End Date\n" +
	"Design,31/01/2024,02/02/2024\n" +
	"Broken,13/13/2024,02/02/2024\n" +
	"Build,03/02/2024,10/02/2024\n" +
	"Launch,12/02/2024,12/02/2024\n"

// SampleMappedCSV uses arbitrary column names that need a mapping.
const SampleMappedCSV = "Task;Owner;Begin;Finish;Completion\n" +
	"Design;ana;31/01/2024;02/02/2024;100%\n" +
	"Build;bo;03/02/2024;10/02/2024;40\n" +
	"Launch;cy;12/02/2024;12/02/2024;\n"

// Day returns the UTC midnight of a calendar date.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DatasetOption configures a test dataset.
type DatasetOption func(testing.TB, *dataset.Dataset)

// NewTestDataset creates a dataset for testing with optional configuration.
func NewTestDataset(t testing.TB, opts ...DatasetOption) *dataset.Dataset {
	t.Helper()

	ds := dataset.NewDataset()

	for _, opt := range opts {
		opt(t, ds)
	}

	return ds
}

// WithActivity adds a row with ISO or day-first dates to the dataset.
func WithActivity(name, start, end string, opts ...dataset.RowOption) DatasetOption {
	return func(t testing.TB, ds *dataset.Dataset) {
		t.Helper()
		s, ok := dataset.ParseDate(start)
		if !ok {
			t.Fatalf("bad fixture start date %q", start)
		}
		e, ok := dataset.ParseDate(end)
		if !ok {
			t.Fatalf("bad fixture end date %q", end)
		}
		if err := ds.AddActivity(name, s, e, opts...); err != nil {
			t.Fatalf("Failed to add fixture activity %q: %v", name, err)
		}
	}
}

// SampleDataset returns the normalized rows of SampleCanonicalCSV.
func SampleDataset(t testing.TB) *dataset.Dataset {
	t.Helper()

	ds := NewTestDataset(t,
		WithActivity("Design", "2024-01-31", "2024-02-02"),
		WithActivity("Build", "2024-02-03", "2024-02-10"),
		WithActivity("Launch", "2024-02-12", "2024-02-12"),
	)
	ds.MarkClean()
	return ds
}

// ConfigOption configures a test config.
type ConfigOption func(*config.Config)

// NewTestConfig creates a config for testing with optional configuration.
func NewTestConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Gantt.Log.Level = "disabled"

	for _, opt := range opts {
		opt(cfg)
	}

	return cfg
}

// WithBackend sets the chart backend.
func WithBackend(backend string) ConfigOption {
	return func(c *config.Config) {
		c.Gantt.Chart.Backend = backend
	}
}

// WithSeparator sets the import separator.
func WithSeparator(sep string) ConfigOption {
	return func(c *config.Config) {
		c.Gantt.Import.Separator = sep
	}
}

// WithRetainOptional sets whether the mapper keeps optional columns.
func WithRetainOptional(retain bool) ConfigOption {
	return func(c *config.Config) {
		c.Gantt.Mapping.RetainOptional = retain
	}
}

// WithSessionTTL sets the server session idle timeout.
func WithSessionTTL(ttl time.Duration) ConfigOption {
	return func(c *config.Config) {
		c.Gantt.Server.SessionTTL = ttl
	}
}

// WithChartTitle sets the chart title.
func WithChartTitle(title string) ConfigOption {
	return func(c *config.Config) {
		c.Gantt.Chart.Title = title
	}
}

// WithShowToday sets whether charts draw the today marker.
func WithShowToday(show bool) ConfigOption {
	return func(c *config.Config) {
		c.Gantt.Chart.ShowToday = show
	}
}

// TempProject creates a temporary directory with a .gantt directory.
func TempProject(t testing.TB) string {
	t.Helper()

	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, ".gantt"), 0755); err != nil {
		t.Fatalf("Failed to create .gantt directory: %v", err)
	}
	return dir
}

// TempProjectWithConfig creates a temp project with a config file.
func TempProjectWithConfig(t testing.TB, cfg *config.Config) string {
	t.Helper()

	dir := TempProject(t)
	if err := cfg.Save(filepath.Join(dir, ".gantt", "config.yaml")); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return dir
}

// WriteFile writes a data file into dir and returns its path.
func WriteFile(t testing.TB, dir, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

// Workbook builds an xlsx file whose first sheet holds rows, starting at A1.
// time.Time cells are stored as dates.
func Workbook(t testing.TB, rows ...[]any) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	dateStyle, err := f.NewStyle(&excelize.Style{NumFmt: 14})
	if err != nil {
		t.Fatalf("Failed to create date style: %v", err)
	}
	for i, row := range rows {
		for j, value := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("Failed to name cell: %v", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				t.Fatalf("Failed to set %s: %v", cell, err)
			}
			if _, ok := value.(time.Time); ok {
				if err := f.SetCellStyle(sheet, cell, cell, dateStyle); err != nil {
					t.Fatalf("Failed to style %s: %v", cell, err)
				}
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("Failed to write workbook: %v", err)
	}
	return buf.Bytes()
}
