package cmd

import (
	"bytes"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gantt-tools/gantt-go/internal/testutil"
)

func TestFileSystemInterface(t *testing.T) {
	var _ FileSystem = &OSFileSystem{}
	var _ FileSystem = &MemoryFileSystem{}
}

// useMemoryFS swaps the command filesystem for an in-memory one.
func useMemoryFS(t *testing.T) *MemoryFileSystem {
	t.Helper()
	mem := NewMemoryFileSystem()
	prev := fsys
	fsys = mem
	t.Cleanup(func() { fsys = prev })
	return mem
}

func TestOSFileSystem(t *testing.T) {
	fs := NewOSFileSystem()
	path := filepath.Join(t.TempDir(), "plan.csv")

	if fs.Exists(path) {
		t.Fatal("Exists returned true before write")
	}
	if err := fs.WriteFile(path, []byte("data"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if !fs.Exists(path) {
		t.Error("Exists returned false for existing file")
	}
	data, err := fs.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "data" {
		t.Errorf("Content mismatch: got %q", data)
	}
}

func TestMemoryFileSystem(t *testing.T) {
	mem := NewMemoryFileSystem()

	_, err := mem.ReadFile("missing.csv")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Expected ErrNotExist, got %v", err)
	}

	mem.AddFile("b.csv", []byte("b"))
	if err := mem.WriteFile("a.csv", []byte("a"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if !mem.Exists("a.csv") || mem.Exists("c.csv") {
		t.Error("Exists reported the wrong files")
	}
	if got := strings.Join(mem.Paths(), ","); got != "a.csv,b.csv" {
		t.Errorf("Paths() = %q", got)
	}

	data, _ := mem.ReadFile("a.csv")
	data[0] = 'z'
	again, _ := mem.ReadFile("a.csv")
	if string(again) != "a" {
		t.Error("ReadFile returned shared storage")
	}
}

func TestCommandsUseFileSystem(t *testing.T) {
	setupProject(t)
	mem := useMemoryFS(t)
	mem.AddFile("plan.csv", []byte(testutil.SampleCanonicalCSV))

	if _, err := executeCommand(t, "", "render", "plan.csv", "-o", "chart.svg"); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if _, err := executeCommand(t, "", "export", "plan.csv", "-o", "out.csv"); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	if got := strings.Join(mem.Paths(), ","); got != "chart.svg,out.csv,plan.csv" {
		t.Fatalf("Paths() = %q", got)
	}
	svg, _ := mem.ReadFile("chart.svg")
	if !bytes.Contains(svg, []byte("<svg")) {
		t.Error("Expected an SVG chart in memory")
	}
	csv, _ := mem.ReadFile("out.csv")
	if !strings.HasPrefix(string(csv), "Activity,Start Date,End Date\n") {
		t.Errorf("Unexpected export:\n%s", csv)
	}
}
