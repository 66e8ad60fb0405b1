package cmd

import (
	"bytes"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/gantt-tools/gantt-go/internal/chart"
	"github.com/gantt-tools/gantt-go/internal/config"
)

var (
	renderInput   inputFlags
	renderOut     string
	renderBackend string
	renderTitle   string
	renderWidth   int
)

var renderCmd = &cobra.Command{
	Use:   "render <input>",
	Short: "Render a Gantt chart from a spreadsheet or CSV",
	Long: `Import a file, map its columns, normalize the rows and render a chart.

The backend is taken from --backend, then from the extension of --output,
then from chart.backend in the config.

Examples:
    gantt render plan.xlsx                       # gantt_chart.svg
    gantt render plan.csv -o plan.png            # PNG by extension
    gantt render tasks.txt --sep semicolon \
        --activity Task --start Begin --end Finish
    gantt render export.csv -i -o -              # prompt for columns, write to stdout`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	renderInput.register(renderCmd)
	renderCmd.Flags().StringVarP(&renderOut, "output", "o", "", "output file, - for stdout (default: gantt_chart.<ext>)")
	renderCmd.Flags().StringVar(&renderBackend, "backend", "", "chart backend: svg, png, pdf, text")
	renderCmd.Flags().StringVar(&renderTitle, "title", "", "chart title")
	renderCmd.Flags().IntVar(&renderWidth, "width", 0, "chart width (pixels, points or columns)")
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadValidConfig()
	if err != nil {
		return err
	}

	r, err := pickRenderer(cfg, renderBackend, renderOut)
	if err != nil {
		return NewExitError(2, err.Error())
	}

	ds, _, err := loadDataset(cmd, cfg, args[0], &renderInput)
	if err != nil {
		return err
	}

	opts := chartOptions(cfg)
	if renderTitle != "" {
		opts.Title = renderTitle
	}
	if renderWidth > 0 {
		opts.Width = renderWidth
	}

	var buf bytes.Buffer
	if err := r.Render(&buf, ds, opts); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}

	if renderOut == "-" {
		_, err := cmd.OutOrStdout().Write(buf.Bytes())
		return err
	}

	out := renderOut
	if out == "" {
		out = "gantt_chart" + r.Extension()
	}
	if err := fsys.WriteFile(out, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write chart: %w", err)
	}
	cmd.Printf("Wrote %s (%d activities, %s)\n", out, ds.Len(), r.Name())
	return nil
}

// pickRenderer resolves the backend from the flag, the output extension or
// the config, in that order.
func pickRenderer(cfg *config.Config, backend, out string) (chart.Renderer, error) {
	if backend != "" {
		return chart.New(backend)
	}
	if out != "" && out != "-" {
		if r := chart.ForExtension(out); r != nil {
			return r, nil
		}
	}
	return chart.New(cfg.Gantt.Chart.Backend)
}

func chartOptions(cfg *config.Config) chart.Options {
	c := cfg.Gantt.Chart
	return chart.Options{
		Title:     c.Title,
		Width:     c.Width,
		Height:    c.Height,
		Now:       time.Now(),
		ShowToday: c.ShowToday,
	}
}
