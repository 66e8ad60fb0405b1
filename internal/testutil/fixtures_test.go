package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gantt-tools/gantt-go/internal/config"
	"github.com/gantt-tools/gantt-go/internal/dataset"
	"github.com/gantt-tools/gantt-go/internal/ingest"
)

func TestNewTestDataset(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		ds := NewTestDataset(t)
		if !ds.IsEmpty() {
			t.Errorf("Expected empty dataset, got %d rows", ds.Len())
		}
	})

	t.Run("with_activities", func(t *testing.T) {
		ds := NewTestDataset(t,
			WithActivity("Design", "31/01/2024", "2024-02-02", dataset.WithCompletion(0.5)),
			WithActivity("Build", "2024-02-03", "2024-02-10", dataset.WithCategory("eng")),
		)
		if ds.Len() != 2 {
			t.Fatalf("Expected 2 rows, got %d", ds.Len())
		}
		first := ds.Row(0)
		if !first.Start.Equal(Day(2024, time.January, 31)) {
			t.Errorf("Expected start 2024-01-31, got %v", first.Start)
		}
		if first.Completion == nil || *first.Completion != 0.5 {
			t.Errorf("Expected completion 0.5, got %v", first.Completion)
		}
		if !ds.HasCategory() {
			t.Error("Expected category column")
		}
	})
}

func TestSampleDataset(t *testing.T) {
	ds := SampleDataset(t)
	if ds.Len() != 3 {
		t.Errorf("Expected 3 rows, got %d", ds.Len())
	}
	if ds.IsDirty() {
		t.Error("Sample dataset should be clean")
	}
}

func TestSampleCSVFixtures(t *testing.T) {
	tbl, sep, err := ingest.ReadText(SampleCanonicalCSV, ingest.SepAuto, 0)
	if err != nil {
		t.Fatalf("ReadText failed: %v", err)
	}
	if sep != ingest.SepComma {
		t.Errorf("Expected comma separator, got %v", sep)
	}
	ds, report, err := dataset.Normalize(tbl, dataset.DefaultNormalizeOptions())
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if report.DroppedCount() != 1 {
		t.Errorf("Expected 1 dropped row, got %d", report.DroppedCount())
	}
	if ds.Len() != SampleDataset(t).Len() {
		t.Errorf("Expected sample CSV to match SampleDataset, got %d rows", ds.Len())
	}

	_, sep, err = ingest.ReadText(SampleMappedCSV, ingest.SepAuto, 0)
	if err != nil {
		t.Fatalf("ReadText failed: %v", err)
	}
	if sep != ingest.SepSemicolon {
		t.Errorf("Expected semicolon separator, got %v", sep)
	}
}

func TestNewTestConfig(t *testing.T) {
	cfg := NewTestConfig(t,
		WithBackend("png"),
		WithSeparator(";"),
		WithRetainOptional(false),
		WithSessionTTL(2*time.Hour),
		WithChartTitle("Roadmap"),
	)

	if cfg.Gantt.Chart.Backend != "png" {
		t.Errorf("Expected backend png, got %s", cfg.Gantt.Chart.Backend)
	}
	if cfg.Gantt.Import.Separator != ";" {
		t.Errorf("Expected separator ;, got %s", cfg.Gantt.Import.Separator)
	}
	if cfg.Gantt.Mapping.RetainOptional {
		t.Error("Expected RetainOptional false")
	}
	if cfg.Gantt.Server.SessionTTL != 2*time.Hour {
		t.Errorf("Expected session TTL 2h, got %v", cfg.Gantt.Server.SessionTTL)
	}
	if cfg.Gantt.Chart.Title != "Roadmap" {
		t.Errorf("Expected title Roadmap, got %s", cfg.Gantt.Chart.Title)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected valid config, got %v", err)
	}
}

func TestTempProject(t *testing.T) {
	dir := TempProject(t)

	info, err := os.Stat(filepath.Join(dir, ".gantt"))
	if err != nil {
		t.Fatalf(".gantt directory not created: %v", err)
	}
	if !info.IsDir() {
		t.Error(".gantt is not a directory")
	}
}

func TestTempProjectWithConfig(t *testing.T) {
	dir := TempProjectWithConfig(t, NewTestConfig(t, WithBackend("pdf")))

	cfg, err := config.LoadFromDir(dir)
	if err != nil {
		t.Fatalf("LoadFromDir failed: %v", err)
	}
	if cfg.Gantt.Chart.Backend != "pdf" {
		t.Errorf("Expected backend pdf, got %s", cfg.Gantt.Chart.Backend)
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := WriteFile(t, dir, "plan.csv", []byte(SampleCanonicalCSV))

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != SampleCanonicalCSV {
		t.Errorf("Unexpected file contents %q", data)
	}
}

func TestWorkbook(t *testing.T) {
	data := Workbook(t,
		[]any{"Activity", "Start Date", "End Date"},
		[]any{"Design", Day(2024, time.January, 31), Day(2024, time.February, 2)},
	)

	if kind := ingest.DetectKind(data, "plan.xlsx"); kind != ingest.KindSpreadsheet {
		t.Fatalf("Expected spreadsheet, got %s", kind)
	}
	res, err := ingest.Read(data, "plan.xlsx", ingest.Options{})
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if res.Table.Len() != 1 {
		t.Fatalf("Expected 1 row, got %d", res.Table.Len())
	}
	start, ok := dataset.ParseDate(res.Table.Cell(0, "Start Date"))
	if !ok || !start.Equal(Day(2024, time.January, 31)) {
		t.Errorf("Expected 2024-01-31, got %q", res.Table.Cell(0, "Start Date"))
	}
}
