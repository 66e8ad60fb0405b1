// Package config provides configuration management for gantt.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/gantt-tools/gantt-go/internal/dataset"
	"github.com/gantt-tools/gantt-go/internal/ingest"
)

// Config represents the gantt configuration.
type Config struct {
	Gantt GanttConfig `yaml:"gantt" json:"gantt"`
}

// GanttConfig contains the main gantt settings.
type GanttConfig struct {
	// Chart configures timeline rendering.
	Chart ChartConfig `yaml:"chart" json:"chart"`

	// Import configures raw ingestion of uploads and pasted text.
	Import ImportConfig `yaml:"import" json:"import"`

	// Mapping configures the column mapper.
	Mapping MappingConfig `yaml:"mapping" json:"mapping"`

	// Normalize configures row normalization.
	Normalize NormalizeConfig `yaml:"normalize" json:"normalize"`

	// Server configures the form server.
	Server ServerConfig `yaml:"server" json:"server"`

	// Log configures logging.
	Log LogConfig `yaml:"log" json:"log"`
}

// ChartConfig contains chart rendering settings.
type ChartConfig struct {
	Backend   string `yaml:"backend" json:"backend" validate:"oneof=svg png pdf text"`
	Title     string `yaml:"title" json:"title"`
	Width     int    `yaml:"width" json:"width" validate:"gte=200,lte=10000"`
	Height    int    `yaml:"height" json:"height" validate:"gte=0,lte=10000"`
	ShowToday bool   `yaml:"show_today" json:"show_today"`
}

// ImportConfig contains ingestion settings.
type ImportConfig struct {
	Separator        string `yaml:"separator" json:"separator" validate:"separator"`
	SniffSampleBytes int    `yaml:"sniff_sample_bytes" json:"sniff_sample_bytes" validate:"gte=64"`
	Sheet            string `yaml:"sheet" json:"sheet"`
}

// MappingConfig contains column mapper settings.
type MappingConfig struct {
	RetainOptional bool `yaml:"retain_optional" json:"retain_optional"`
}

// NormalizeConfig contains normalizer settings.
type NormalizeConfig struct {
	MaxActivityLength int `yaml:"max_activity_length" json:"max_activity_length" validate:"gte=1,lte=1000"`
}

// ServerConfig contains form server settings.
type ServerConfig struct {
	Addr           string        `yaml:"addr" json:"addr" validate:"required"`
	SessionTTL     time.Duration `yaml:"session_ttl" json:"session_ttl" validate:"gte=1m"`
	MaxUploadBytes int64         `yaml:"max_upload_bytes" json:"max_upload_bytes" validate:"gte=1024"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level string `yaml:"level" json:"level" validate:"oneof=debug info warn error disabled"`
	JSON  bool   `yaml:"json" json:"json"`
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Gantt: GanttConfig{
			Chart: ChartConfig{
				Backend:   "svg",
				Title:     "Gantt Chart",
				Width:     1200,
				Height:    0,
				ShowToday: true,
			},
			Import: ImportConfig{
				Separator:        "auto",
				SniffSampleBytes: ingest.DefaultSampleBytes,
			},
			Mapping: MappingConfig{
				RetainOptional: true,
			},
			Normalize: NormalizeConfig{
				MaxActivityLength: 50,
			},
			Server: ServerConfig{
				Addr:           ":8501",
				SessionTTL:     2 * time.Hour,
				MaxUploadBytes: 10 << 20,
			},
			Log: LogConfig{
				Level: "info",
			},
		},
	}
}

// Load loads configuration from a file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// Save saves the configuration to a file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ErrNotFound is returned when no configuration file exists up the tree.
var ErrNotFound = errors.New("no gantt configuration found")

// FindConfig searches for a configuration file starting from the given path.
func FindConfig(startPath string) (string, error) {
	candidates := []string{
		".gantt/config.yaml",
		"gantt.yaml",
		"gantt.yml",
	}

	// Search from start path upward
	dir := startPath
	for {
		for _, candidate := range candidates {
			path := filepath.Join(dir, candidate)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", ErrNotFound
}

// LoadFromDir loads configuration from the given directory.
func LoadFromDir(dir string) (*Config, error) {
	path, err := FindConfig(dir)
	if err != nil {
		// Return default config if no config file found
		return DefaultConfig(), nil
	}

	return Load(path)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("separator", func(fl validator.FieldLevel) bool {
		_, err := ingest.ParseSeparator(fl.Field().String())
		return err == nil
	})
	return v
}

// ValidationError lists the configuration fields that failed validation.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid configuration: " + strings.Join(e.Problems, "; ")
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	problems := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		problem := fmt.Sprintf("%s: failed %q", fe.Namespace(), fe.Tag())
		if fe.Param() != "" {
			problem = fmt.Sprintf("%s: failed %q (%s)", fe.Namespace(), fe.Tag(), fe.Param())
		}
		problems = append(problems, problem)
	}
	return &ValidationError{Problems: problems}
}

// Separator returns the configured import separator.
func (c *Config) Separator() ingest.Separator {
	sep, err := ingest.ParseSeparator(c.Gantt.Import.Separator)
	if err != nil {
		return ingest.SepAuto
	}
	return sep
}

// ImportOptions returns the ingestion options for the configured separator.
func (c *Config) ImportOptions() ingest.Options {
	return ingest.Options{
		Separator:   c.Separator(),
		Sheet:       c.Gantt.Import.Sheet,
		SampleBytes: c.Gantt.Import.SniffSampleBytes,
	}
}

// MapOptions returns the column mapper options.
func (c *Config) MapOptions() dataset.MapOptions {
	return dataset.MapOptions{RetainOptional: c.Gantt.Mapping.RetainOptional}
}

// NormalizeOptions returns the row normalizer options.
func (c *Config) NormalizeOptions() dataset.NormalizeOptions {
	return dataset.NormalizeOptions{MaxActivityLength: c.Gantt.Normalize.MaxActivityLength}
}
