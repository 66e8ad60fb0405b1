package cmd

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/gantt-tools/gantt-go/internal/config"
	"github.com/gantt-tools/gantt-go/internal/dataset"
	"github.com/gantt-tools/gantt-go/internal/ingest"
	"github.com/gantt-tools/gantt-go/internal/logger"
)

// inputFlags are the import and mapping flags shared by render, show and
// export.
type inputFlags struct {
	sep         string
	sheet       string
	activity    string
	start       string
	end         string
	interactive bool
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.sep, "sep", "", "separator for delimited text: auto, comma, tab, semicolon")
	cmd.Flags().StringVar(&f.sheet, "sheet", "", "worksheet to read from a spreadsheet (default: first)")
	cmd.Flags().StringVar(&f.activity, "activity", "", "source column for Activity")
	cmd.Flags().StringVar(&f.start, "start", "", "source column for Start Date")
	cmd.Flags().StringVar(&f.end, "end", "", "source column for End Date")
	cmd.Flags().BoolVarP(&f.interactive, "interactive", "i", false, "prompt for unmapped columns")
}

func (f *inputFlags) mapping() dataset.Mapping {
	return dataset.Mapping{Activity: f.activity, Start: f.start, End: f.end}
}

// promptMapping asks the user to complete a column mapping.
var promptMapping = runMappingForm

// loadDataset runs import, mapping and normalization on the input at path.
// A path of "-" reads standard input.
func loadDataset(cmd *cobra.Command, cfg *config.Config, path string, f *inputFlags) (*dataset.Dataset, *dataset.Report, error) {
	data, name, err := readInput(cmd, path)
	if err != nil {
		return nil, nil, err
	}

	opts := cfg.ImportOptions()
	if f.sep != "" {
		sep, err := ingest.ParseSeparator(f.sep)
		if err != nil {
			return nil, nil, NewExitError(2, err.Error())
		}
		opts.Separator = sep
	}
	if f.sheet != "" {
		opts.Sheet = f.sheet
	}

	res, err := ingest.Read(data, name, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to import %s: %w", name, err)
	}
	logger.Debug("input parsed", "input", name, "kind", res.Kind, "rows", res.Table.Len(), "columns", res.Table.Width())

	columns := res.Table.Columns()
	m, err := resolveMapping(columns, f)
	if err != nil {
		return nil, nil, err
	}

	mapped, err := dataset.ApplyMapping(res.Table, m, cfg.MapOptions())
	if err != nil {
		var incomplete *dataset.IncompleteMappingError
		if errors.As(err, &incomplete) {
			return nil, nil, fmt.Errorf("%w (columns: %s; use --activity, --start and --end or --interactive)",
				err, strings.Join(columns, ", "))
		}
		return nil, nil, err
	}

	ds, report, err := dataset.Normalize(mapped, cfg.NormalizeOptions())
	if err != nil {
		return nil, nil, err
	}
	logger.Info("dataset loaded", "input", name, "rows", report.Kept, "dropped", report.DroppedCount())
	for _, msg := range report.Messages() {
		logger.Warn(msg, "input", name)
	}
	return ds, report, nil
}

func readInput(cmd *cobra.Command, path string) ([]byte, string, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, "", fmt.Errorf("failed to read standard input: %w", err)
		}
		return data, "stdin", nil
	}

	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read input: %w", err)
	}
	return data, filepath.Base(path), nil
}

// resolveMapping settles the column mapping. Without flags a table that
// already carries the canonical columns maps onto itself; an incomplete
// mapping is completed by prompt when interactive.
func resolveMapping(columns []string, f *inputFlags) (dataset.Mapping, error) {
	m := f.mapping()
	if m.IsZero() {
		if auto, ok := dataset.AutoMapping(columns); ok {
			return auto, nil
		}
	}
	if mappingComplete(m) || !f.interactive {
		return m, nil
	}

	suggested := dataset.SuggestMapping(columns)
	if m.Activity == "" {
		m.Activity = suggested.Activity
	}
	if m.Start == "" {
		m.Start = suggested.Start
	}
	if m.End == "" {
		m.End = suggested.End
	}
	return promptMapping(columns, m)
}

func mappingComplete(m dataset.Mapping) bool {
	return strings.TrimSpace(m.Activity) != "" &&
		strings.TrimSpace(m.Start) != "" &&
		strings.TrimSpace(m.End) != ""
}

func runMappingForm(columns []string, m dataset.Mapping) (dataset.Mapping, error) {
	options := huh.NewOptions(columns...)
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Activity").
			Description("Column that labels each bar").
			Options(options...).
			Value(&m.Activity),
		huh.NewSelect[string]().
			Title("Start Date").
			Description("Column holding the first day of each activity").
			Options(options...).
			Value(&m.Start),
		huh.NewSelect[string]().
			Title("End Date").
			Description("Column holding the last day of each activity").
			Options(options...).
			Value(&m.End),
	))

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return m, NewExitError(130, "mapping cancelled")
		}
		return m, fmt.Errorf("mapping prompt failed: %w", err)
	}
	return m, nil
}
