package cmd

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/gantt-tools/gantt-go/internal/chart"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the version, commit hash, build date, Go version and chart backends.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.Printf("gantt version %s\n", Version)
		cmd.Printf("  commit:   %s\n", Commit)
		cmd.Printf("  built:    %s\n", Date)
		cmd.Printf("  go:       %s\n", runtime.Version())
		cmd.Printf("  os/arch:  %s/%s\n", runtime.GOOS, runtime.GOARCH)
		cmd.Printf("  backends: %v\n", chart.Backends())
		return nil
	},
}
