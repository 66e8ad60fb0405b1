package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/gantt-tools/gantt-go/internal/chart"
	"github.com/gantt-tools/gantt-go/internal/config"
	"github.com/gantt-tools/gantt-go/internal/output"
)

var (
	configValidate bool
	configFormat   string
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or validate gantt configuration",
	Long: `Display the effective configuration after merging defaults with gantt.yaml.

Examples:
    gantt config                     # Show current config
    gantt config --validate          # Check config validity
    gantt config --format yaml       # Output as YAML`,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&configValidate, "validate", false, "validate configuration values")
	configCmd.Flags().StringVar(&configFormat, "format", "terminal", "output format: terminal, yaml, json")
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	configPath := cfgFile
	if configPath == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}
		configPath, _ = config.FindConfig(cwd)
	}

	if configValidate {
		return validateConfig(cmd, cfg, configPath)
	}

	return displayConfig(cmd, cfg, configPath)
}

func validateConfig(cmd *cobra.Command, cfg *config.Config, configPath string) error {
	width := 80
	cmd.Println(output.Header("Configuration Validation", width))
	cmd.Println()

	problems := []string{}
	warnings := []string{}

	if configPath == "" {
		warnings = append(warnings, "Config file not found (using defaults)")
	} else {
		cmd.Printf("  %s Config file: %s\n", output.Checkmark(true), configPath)
	}

	if err := cfg.Validate(); err != nil {
		var verr *config.ValidationError
		if !errors.As(err, &verr) {
			return err
		}
		problems = append(problems, verr.Problems...)
	} else {
		cmd.Printf("  %s Values within range\n", output.Checkmark(true))
	}

	if r, err := chart.New(cfg.Gantt.Chart.Backend); err != nil {
		problems = append(problems, err.Error())
	} else {
		cmd.Printf("  %s Chart backend: %s (%s)\n", output.Checkmark(true), r.Name(), r.ContentType())
	}

	cmd.Println()

	for _, p := range problems {
		cmd.Printf("  %s %s\n", output.Checkmark(false), p)
	}
	for _, w := range warnings {
		cmd.Printf("  %s %s\n", output.Color("[WARN]", output.Yellow), w)
	}

	cmd.Println()

	if len(problems) > 0 {
		cmd.Printf("Status: %s\n", output.Color("INVALID", output.Red))
		return NewExitError(1, "configuration validation failed")
	} else if len(warnings) > 0 {
		cmd.Printf("Status: %s\n", output.Color("VALID (with warnings)", output.Yellow))
	} else {
		cmd.Printf("Status: %s\n", output.Color("VALID", output.Green))
	}

	return nil
}

func displayConfig(cmd *cobra.Command, cfg *config.Config, configPath string) error {
	switch configFormat {
	case "json":
		return displayConfigJSON(cmd, cfg)
	case "yaml":
		return displayConfigYAML(cmd, cfg)
	case "terminal":
		return displayConfigTerminal(cmd, cfg, configPath)
	default:
		return NewExitError(2, fmt.Sprintf("unknown format %q (want terminal, yaml or json)", configFormat))
	}
}

func displayConfigJSON(cmd *cobra.Command, cfg *config.Config) error {
	data, err := json.MarshalIndent(cfg.Gantt, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func displayConfigYAML(cmd *cobra.Command, cfg *config.Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	cmd.Print(string(data))
	return nil
}

func displayConfigTerminal(cmd *cobra.Command, cfg *config.Config, configPath string) error {
	width := 80
	cmd.Println(output.Header("gantt Configuration", width))
	cmd.Println()

	if configPath == "" {
		configPath = "(defaults)"
	}
	g := cfg.Gantt

	cmd.Printf("Config file: %s\n", configPath)
	cmd.Println()

	cmd.Println("Chart:")
	cmd.Printf("  Backend:    %s\n", g.Chart.Backend)
	cmd.Printf("  Title:      %s\n", g.Chart.Title)
	cmd.Printf("  Size:       %dx%d\n", g.Chart.Width, g.Chart.Height)
	cmd.Printf("  Show today: %v\n", g.Chart.ShowToday)
	cmd.Println()

	cmd.Println("Import:")
	cmd.Printf("  Separator:   %s\n", g.Import.Separator)
	cmd.Printf("  Sniff bytes: %d\n", g.Import.SniffSampleBytes)
	if g.Import.Sheet != "" {
		cmd.Printf("  Sheet:       %s\n", g.Import.Sheet)
	}
	cmd.Println()

	cmd.Println("Normalize:")
	cmd.Printf("  Retain optional columns: %v\n", g.Mapping.RetainOptional)
	cmd.Printf("  Max activity length:     %d\n", g.Normalize.MaxActivityLength)
	cmd.Println()

	cmd.Println("Server:")
	cmd.Printf("  Address:     %s\n", g.Server.Addr)
	cmd.Printf("  Session TTL: %s\n", g.Server.SessionTTL)
	cmd.Printf("  Max upload:  %d bytes\n", g.Server.MaxUploadBytes)
	cmd.Println()

	return nil
}
