package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gantt-tools/gantt-go/internal/chart"
	"github.com/gantt-tools/gantt-go/internal/dataset"
	"github.com/gantt-tools/gantt-go/internal/output"
)

var (
	showInput   inputFlags
	showNoChart bool
	showWidth   int
)

// activityCellWidth caps the activity column of the show table.
const activityCellWidth = 40

var showCmd = &cobra.Command{
	Use:   "show <input>",
	Short: "Print the normalized dataset and a text timeline",
	Long: `Import a file, map its columns and normalize the rows, then print the
resulting table, what normalization removed or changed, and a timeline
drawn in the terminal.`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	showInput.register(showCmd)
	showCmd.Flags().BoolVar(&showNoChart, "no-chart", false, "skip the text timeline")
	showCmd.Flags().IntVar(&showWidth, "width", 100, "timeline width in columns")
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadValidConfig()
	if err != nil {
		return err
	}

	ds, report, err := loadDataset(cmd, cfg, args[0], &showInput)
	if err != nil {
		return err
	}

	width := 80
	cmd.Println(output.Header("Gantt Data", width))
	cmd.Println()

	cmd.Println(output.SubHeader("Normalization", width))
	displayReport(cmd, report)

	if ds.IsEmpty() {
		cmd.Println(output.Color("No data available to generate Gantt chart", output.Yellow))
		return nil
	}

	cmd.Println(output.SubHeader("Activities", width))
	cmd.Print(datasetTable(ds).Render())
	cmd.Println()

	cmd.Println(output.SubHeader("Summary", width))
	displaySummary(cmd, ds)

	if showNoChart {
		return nil
	}
	cmd.Println()
	opts := chartOptions(cfg)
	opts.Width = showWidth
	return chart.Text{}.Render(cmd.OutOrStdout(), ds, opts)
}

func displayReport(cmd *cobra.Command, report *dataset.Report) {
	cmd.Printf("Rows read: %d, kept: %d\n", report.Input, report.Kept)
	for _, msg := range report.Messages() {
		cmd.Printf("  %s %s\n", output.Color("[WARN]", output.Yellow), msg)
	}
	for _, d := range report.Dropped {
		label := d.Activity
		if label == "" {
			label = "(blank)"
		}
		cmd.Printf("    row %d %s: %s\n", d.Index+1, label, d.Reason)
	}
	cmd.Println()
}

func datasetTable(ds *dataset.Dataset) *output.Table {
	headers := []string{"#", "Activity", "Start", "End", "Days"}
	if ds.HasCompletion() {
		headers = append(headers, "Completion")
	}
	if ds.HasCategory() {
		headers = append(headers, "Category")
	}

	t := output.NewTable(headers...).AlignRight(0, 4).Limit(1, activityCellWidth)
	for i, r := range ds.Rows() {
		cells := []string{
			strconv.Itoa(i + 1),
			r.Activity,
			dataset.FormatDate(r.Start),
			dataset.FormatDate(r.End),
			strconv.Itoa(r.Duration()),
		}
		if ds.HasCompletion() {
			cell := ""
			if r.Completion != nil {
				cell = output.FormatPercent(*r.Completion * 100)
			}
			cells = append(cells, cell)
		}
		if ds.HasCategory() {
			cells = append(cells, r.Category)
		}
		t.AddRow(cells...)
	}
	return t
}

func displaySummary(cmd *cobra.Command, ds *dataset.Dataset) {
	start, end, _ := ds.Span()
	days := dataset.Row{Start: start, End: end}.Duration()

	cmd.Printf("Activities: %d (%d unique)\n", ds.Len(), len(ds.Labels()))
	cmd.Printf("Span:       %s to %s (%d days)\n", dataset.FormatDate(start), dataset.FormatDate(end), days)
	if cats := ds.Categories(); len(cats) > 0 {
		cmd.Printf("Categories: %d\n", len(cats))
	}

	if pct, ok := averageCompletion(ds); ok {
		cmd.Printf("Completion: %s  %s\n", output.ProgressBar(pct, 40), output.FormatPercent(pct))
	}
}

// averageCompletion averages the rows that carry a completion, in percent.
func averageCompletion(ds *dataset.Dataset) (float64, bool) {
	var sum float64
	n := 0
	for _, r := range ds.Rows() {
		if r.Completion != nil {
			sum += *r.Completion
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n) * 100, true
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
