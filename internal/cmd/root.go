// Package cmd provides the CLI commands for gantt.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gantt-tools/gantt-go/internal/config"
	"github.com/gantt-tools/gantt-go/internal/logger"
	"github.com/gantt-tools/gantt-go/internal/output"
)

var (
	// Version is set at build time via ldflags.
	Version = "dev"
	// Commit is set at build time via ldflags.
	Commit = "none"
	// Date is set at build time via ldflags.
	Date = "unknown"
)

var (
	cfgFile string
	noColor bool
	logJSON bool
	logLvl  string
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "gantt",
	Short: "Timeline charts from spreadsheets and CSV",
	Long: `gantt turns tabular schedules into Gantt charts.

Import a spreadsheet or delimited text, map its columns onto Activity,
Start Date and End Date, then render a chart or export a normalized CSV.
Run "gantt serve" for the browser editor.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupRoot,
}

// ExitError carries a process exit code out of a command.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

// NewExitError creates an ExitError.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	addGlobalFlags(rootCmd)

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(exportCmd)
}

func addGlobalFlags(root *cobra.Command) {
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: .gantt/config.yaml or gantt.yaml)")
	root.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	root.PersistentFlags().StringVar(&logLvl, "log-level", "", "log level: debug, info, warn, error, disabled")
	root.PersistentFlags().BoolVar(&logJSON, "log-json", false, "emit logs as JSON")
}

// setupRoot applies the global flags before any command runs. Flags win
// over the log section of the config file.
func setupRoot(cmd *cobra.Command, args []string) error {
	if noColor {
		output.DisableColor()
	} else {
		output.EnableColor()
	}

	level, asJSON, err := logger.GetLoggerConfig(cmd)
	if err != nil {
		return err
	}
	if level == "" || !cmd.Flags().Changed("log-json") {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if level == "" {
			level = cfg.Gantt.Log.Level
		}
		if !cmd.Flags().Changed("log-json") {
			asJSON = cfg.Gantt.Log.JSON
		}
	}
	logger.SetupLogger(cmd.ErrOrStderr(), level, asJSON, false)
	return nil
}

// loadConfig loads the --config file, or discovers one from the working
// directory. Defaults apply when none exists.
func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		return cfg, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	cfg, err := config.LoadFromDir(cwd)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// loadValidConfig loads the configuration and rejects invalid values with
// exit code 2.
func loadValidConfig() (*config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		var verr *config.ValidationError
		if errors.As(err, &verr) {
			return nil, NewExitError(2, err.Error())
		}
		return nil, err
	}
	return cfg, nil
}
