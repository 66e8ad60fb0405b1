package cmd

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gantt-tools/gantt-go/internal/dataset"
)

var (
	exportInput inputFlags
	exportOut   string
)

var exportCmd = &cobra.Command{
	Use:   "export <input>",
	Short: "Export the normalized dataset as CSV",
	Long: `Import a file, map its columns and normalize the rows, then write the
canonical dataset as CSV with ISO dates. The output re-imports to the same
dataset.

Examples:
    gantt export plan.xlsx                   # gantt_data.csv
    gantt export tasks.txt -o - --sep tab    # write to stdout`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportInput.register(exportCmd)
	exportCmd.Flags().StringVarP(&exportOut, "output", "o", dataset.ExportFilename, "output file, - for stdout")
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadValidConfig()
	if err != nil {
		return err
	}

	ds, report, err := loadDataset(cmd, cfg, args[0], &exportInput)
	if err != nil {
		return err
	}

	if exportOut == "-" {
		return ds.WriteCSV(cmd.OutOrStdout())
	}

	var buf bytes.Buffer
	if err := ds.WriteCSV(&buf); err != nil {
		return err
	}
	if err := fsys.WriteFile(exportOut, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	ds.MarkClean()
	cmd.Printf("Exported %s to %s", plural(ds.Len(), "row"), exportOut)
	if n := report.DroppedCount(); n > 0 {
		cmd.Printf(" (%s dropped)", plural(n, "row"))
	}
	cmd.Println()
	return nil
}
