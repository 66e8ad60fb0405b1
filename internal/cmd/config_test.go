package cmd

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/gantt-tools/gantt-go/internal/config"
	"github.com/gantt-tools/gantt-go/internal/testutil"
)

func TestConfigCommand(t *testing.T) {
	setupProject(t, testutil.WithBackend("png"))

	output, err := executeCommand(t, "", "config", "--no-color")
	if err != nil {
		t.Fatalf("config command failed: %v", err)
	}

	expectedElements := []string{
		"gantt Configuration",
		"Config file:",
		".gantt/config.yaml",
		"Backend:    png",
		"Separator:   auto",
		"Max activity length:     50",
		"Session TTL: 2h0m0s",
	}
	for _, elem := range expectedElements {
		if !strings.Contains(output, elem) {
			t.Errorf("Expected config output to contain %q, got:\n%s", elem, output)
		}
	}
}

func TestConfigFormats(t *testing.T) {
	setupProject(t, testutil.WithSeparator("tab"))

	t.Run("json", func(t *testing.T) {
		output, err := executeCommand(t, "", "config", "--format", "json")
		if err != nil {
			t.Fatalf("config failed: %v", err)
		}
		var g config.GanttConfig
		if err := json.Unmarshal([]byte(output), &g); err != nil {
			t.Fatalf("Output is not JSON: %v\n%s", err, output)
		}
		if g.Import.Separator != "tab" {
			t.Errorf("Expected separator tab, got %s", g.Import.Separator)
		}
	})

	t.Run("yaml", func(t *testing.T) {
		output, err := executeCommand(t, "", "config", "--format", "yaml")
		if err != nil {
			t.Fatalf("config failed: %v", err)
		}
		if !strings.Contains(output, "separator: tab") {
			t.Errorf("Expected YAML separator, got:\n%s", output)
		}
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := executeCommand(t, "", "config", "--format", "xml")
		if code := exitCode(t, err); code != 2 {
			t.Errorf("Expected exit code 2, got %d", code)
		}
	})
}

func TestConfigValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		setupProject(t)

		output, err := executeCommand(t, "", "config", "--validate", "--no-color")
		if err != nil {
			t.Fatalf("validate failed: %v", err)
		}
		if !strings.Contains(output, "Status: VALID") || strings.Contains(output, "with warnings") {
			t.Errorf("Expected VALID, got:\n%s", output)
		}
		if !strings.Contains(output, "✓ Chart backend: svg (image/svg+xml)") {
			t.Errorf("Expected backend check, got:\n%s", output)
		}
	})

	t.Run("defaults", func(t *testing.T) {
		t.Chdir(t.TempDir())

		output, err := executeCommand(t, "", "config", "--validate", "--no-color")
		if err != nil {
			t.Fatalf("validate failed: %v", err)
		}
		if !strings.Contains(output, "VALID (with warnings)") {
			t.Errorf("Expected warnings for missing config, got:\n%s", output)
		}
	})

	t.Run("invalid", func(t *testing.T) {
		setupProject(t, testutil.WithBackend("gif"), testutil.WithSeparator("pipe"))

		output, err := executeCommand(t, "", "config", "--validate", "--no-color")
		if code := exitCode(t, err); code != 1 {
			t.Errorf("Expected exit code 1, got %d", code)
		}
		for _, want := range []string{"✗", "Backend", "Separator", "unknown chart backend", "Status: INVALID"} {
			if !strings.Contains(output, want) {
				t.Errorf("Expected output to contain %q, got:\n%s", want, output)
			}
		}
	})
}
