package chart

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/gantt-tools/gantt-go/internal/dataset"
	"github.com/gantt-tools/gantt-go/internal/output"
)

const (
	textColumns    = 100
	textLabelWidth = 24
	barRune        = '█'
	trackRune      = '·'
	todayRune      = '┊'
)

// Text renders a terminal timeline, one line per row.
type Text struct{}

func (Text) Name() string        { return "text" }
func (Text) ContentType() string { return "text/plain; charset=utf-8" }
func (Text) Extension() string   { return ".txt" }

// Render writes the timeline. Options.Width is read as a column count when
// it is small enough to be one; pixel widths fall back to 100 columns.
func (Text) Render(w io.Writer, ds *dataset.Dataset, opts Options) error {
	columns := opts.Width
	if columns < 40 || columns > 400 {
		columns = textColumns
	}
	opts.Width = 0
	l, err := NewLayout(ds, opts)
	if err != nil {
		return err
	}

	track := columns - textLabelWidth - 10
	col := func(x float64) int {
		return int(math.Round((x - l.Left) / (l.Right - l.Left) * float64(track)))
	}
	categoryIndex := make(map[string]int)
	for i, entry := range l.Legend {
		categoryIndex[entry.Label] = i
	}

	var sb strings.Builder
	sb.WriteString(output.Header(l.Title, columns))
	sb.WriteString("\n\n")

	from := dataset.FormatDate(l.From)
	to := dataset.FormatDate(l.To.Add(-day))
	axis := from + strings.Repeat(" ", max(1, track-len(from)-len(to))) + to
	fmt.Fprintf(&sb, "%s  %s\n", strings.Repeat(" ", textLabelWidth), axis)

	for _, bar := range l.Bars {
		start := col(bar.X)
		length := max(1, col(bar.X+bar.W)-start)
		line := []rune(output.SpanBar(start, length, track, string(barRune), string(trackRune)))
		if l.ShowToday {
			if t := col(l.Today); t >= 0 && t < len(line) && line[t] == trackRune {
				line[t] = todayRune
			}
		}

		color := output.CategoryColor(0)
		if ds.HasCategory() {
			color = output.CategoryColor(-1)
			if i, ok := categoryIndex[bar.Row.Category]; ok {
				color = output.CategoryColor(i)
			}
		}
		end := min(start+length, len(line))
		begin := min(start, end)
		rendered := output.Color(string(line[:begin]), output.Dim) +
			output.Color(string(line[begin:end]), color) +
			output.Color(string(line[end:]), output.Dim)

		label := output.PadRight(output.Truncate(bar.Row.Activity, textLabelWidth), textLabelWidth)
		fmt.Fprintf(&sb, "%s  %s", label, rendered)
		if bar.Progress >= 0 {
			fmt.Fprintf(&sb, " %s", output.Color(formatPercent(bar.Progress), output.CompletionColor(bar.Progress*100)))
		}
		sb.WriteString("\n")
	}

	if len(l.Legend) > 0 {
		sb.WriteString("\n")
		for i, entry := range l.Legend {
			fmt.Fprintf(&sb, "%s %s  ", output.Color(string(barRune), output.CategoryColor(i)), entry.Label)
		}
		sb.WriteString("\n")
	}
	if l.ShowToday {
		fmt.Fprintf(&sb, "\n%c today\n", todayRune)
	}

	_, err = io.WriteString(w, sb.String())
	return err
}
