package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gantt-tools/gantt-go/internal/ingest"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Gantt.Chart.Backend != "svg" {
		t.Errorf("Default backend = %q, want svg", cfg.Gantt.Chart.Backend)
	}

	if cfg.Gantt.Chart.Title != "Gantt Chart" {
		t.Errorf("Default title = %q, want Gantt Chart", cfg.Gantt.Chart.Title)
	}

	if !cfg.Gantt.Mapping.RetainOptional {
		t.Error("Default retain_optional should be true")
	}

	if cfg.Gantt.Normalize.MaxActivityLength != 50 {
		t.Errorf("Default max_activity_length = %d, want 50", cfg.Gantt.Normalize.MaxActivityLength)
	}

	if cfg.Gantt.Server.SessionTTL != 2*time.Hour {
		t.Errorf("Default session_ttl = %v, want 2h", cfg.Gantt.Server.SessionTTL)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should validate: %v", err)
	}
}

func TestLoadConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "gantt.yaml")

	configContent := `
gantt:
  chart:
    backend: png
    title: Roadmap
  import:
    separator: semicolon
  server:
    session_ttl: 30m
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Gantt.Chart.Backend != "png" {
		t.Errorf("Backend = %q, want png", cfg.Gantt.Chart.Backend)
	}

	if cfg.Gantt.Chart.Title != "Roadmap" {
		t.Errorf("Title = %q, want Roadmap", cfg.Gantt.Chart.Title)
	}

	// Unset values keep their defaults
	if cfg.Gantt.Chart.Width != 1200 {
		t.Errorf("Width = %d, want 1200", cfg.Gantt.Chart.Width)
	}

	if cfg.Separator() != ingest.SepSemicolon {
		t.Errorf("Separator = %v, want semicolon", cfg.Separator())
	}

	if cfg.Gantt.Server.SessionTTL != 30*time.Minute {
		t.Errorf("SessionTTL = %v, want 30m", cfg.Gantt.Server.SessionTTL)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load of missing file should fail")
	}

	path := filepath.Join(t.TempDir(), "gantt.yaml")
	if err := os.WriteFile(path, []byte("gantt: [unclosed"), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load of malformed YAML should fail")
	}
}

func TestFindConfig(t *testing.T) {
	tmpDir := t.TempDir()
	ganttDir := filepath.Join(tmpDir, ".gantt")
	if err := os.MkdirAll(ganttDir, 0755); err != nil {
		t.Fatalf("Failed to create .gantt dir: %v", err)
	}

	configPath := filepath.Join(ganttDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("gantt:\n  chart:\n    title: test"), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	found, err := FindConfig(tmpDir)
	if err != nil {
		t.Fatalf("FindConfig failed: %v", err)
	}

	if found != configPath {
		t.Errorf("FindConfig = %q, want %q", found, configPath)
	}

	// Test finding from subdirectory
	subDir := filepath.Join(tmpDir, "plans", "q3")
	if err := os.MkdirAll(subDir, 0755); err != nil {
		t.Fatalf("Failed to create subdir: %v", err)
	}

	found, err = FindConfig(subDir)
	if err != nil {
		t.Fatalf("FindConfig from subdir failed: %v", err)
	}

	if found != configPath {
		t.Errorf("FindConfig from subdir = %q, want %q", found, configPath)
	}
}

func TestLoadFromDirDefaults(t *testing.T) {
	tmpDir := t.TempDir()

	if _, err := FindConfig(tmpDir); !errors.Is(err, ErrNotFound) {
		t.Skipf("a gantt config exists above %s", tmpDir)
	}

	cfg, err := LoadFromDir(tmpDir)
	if err != nil {
		t.Fatalf("LoadFromDir failed: %v", err)
	}

	if cfg.Gantt.Chart.Backend != "svg" {
		t.Errorf("Backend = %q, want default svg", cfg.Gantt.Chart.Backend)
	}
}

func TestSaveConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, ".gantt", "config.yaml")

	cfg := DefaultConfig()
	cfg.Gantt.Chart.Title = "Launch plan"
	cfg.Gantt.Server.SessionTTL = 90 * time.Minute

	if err := cfg.Save(configPath); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load after save failed: %v", err)
	}

	if loaded.Gantt.Chart.Title != "Launch plan" {
		t.Errorf("Loaded title = %q, want Launch plan", loaded.Gantt.Chart.Title)
	}

	if loaded.Gantt.Server.SessionTTL != 90*time.Minute {
		t.Errorf("Loaded session_ttl = %v, want 1h30m", loaded.Gantt.Server.SessionTTL)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		problem string
	}{
		{"unknown backend", func(c *Config) { c.Gantt.Chart.Backend = "bmp" }, "Backend"},
		{"unknown separator", func(c *Config) { c.Gantt.Import.Separator = "pipe" }, "Separator"},
		{"tiny width", func(c *Config) { c.Gantt.Chart.Width = 10 }, "Width"},
		{"zero activity length", func(c *Config) { c.Gantt.Normalize.MaxActivityLength = 0 }, "MaxActivityLength"},
		{"short ttl", func(c *Config) { c.Gantt.Server.SessionTTL = time.Second }, "SessionTTL"},
		{"empty addr", func(c *Config) { c.Gantt.Server.Addr = "" }, "Addr"},
		{"bad log level", func(c *Config) { c.Gantt.Log.Level = "trace" }, "Level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() = %v, want *ValidationError", err)
			}
			if !strings.Contains(verr.Error(), tt.problem) {
				t.Errorf("Validate() = %q, want mention of %s", verr.Error(), tt.problem)
			}
		})
	}
}

func TestOptionHelpers(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Gantt.Import.Separator = "tab"
	cfg.Gantt.Import.Sheet = "Plan"
	cfg.Gantt.Normalize.MaxActivityLength = 20
	cfg.Gantt.Mapping.RetainOptional = false

	opts := cfg.ImportOptions()
	if opts.Separator != ingest.SepTab || opts.Sheet != "Plan" || opts.SampleBytes != ingest.DefaultSampleBytes {
		t.Errorf("ImportOptions = %+v", opts)
	}

	if cfg.NormalizeOptions().MaxActivityLength != 20 {
		t.Errorf("NormalizeOptions = %+v", cfg.NormalizeOptions())
	}

	if cfg.MapOptions().RetainOptional {
		t.Error("MapOptions should not retain optional columns")
	}

	cfg.Gantt.Import.Separator = "bogus"
	if cfg.Separator() != ingest.SepAuto {
		t.Errorf("invalid separator should fall back to auto, got %v", cfg.Separator())
	}
}
