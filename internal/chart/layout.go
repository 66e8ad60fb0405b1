package chart

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gantt-tools/gantt-go/internal/dataset"
)

const (
	day = 24 * time.Hour

	marginTop    = 60.0
	marginBottom = 48.0
	marginRight  = 24.0
	marginLeft   = 12.0
	laneHeight   = 32.0
	barInset     = 6.0
	charWidth    = 7.0
	maxTicks     = 10
	minCanvas    = 200
)

// palette holds the bar fill colors, cycled per category.
var palette = []string{
	"#636EFA", "#EF553B", "#00CC96", "#AB63FA", "#FFA15A",
	"#19D3F3", "#FF6692", "#B6E880", "#FF97FF", "#FECB52",
}

const uncategorizedFill = "#B0B0B0"

// Lane is one horizontal row of the chart, holding every bar of one activity.
type Lane struct {
	Label string
	// Y is the vertical center of the lane.
	Y float64
}

// Bar is one dataset row placed on the canvas.
type Bar struct {
	Row  dataset.Row
	Lane int
	X, Y float64
	W, H float64
	Fill string
	// Progress is the completed fraction, or -1 when unknown.
	Progress float64
}

// Tick is a labelled position on the time axis.
type Tick struct {
	X     float64
	Label string
}

// LegendEntry maps a category to its fill color.
type LegendEntry struct {
	Label string
	Fill  string
}

// Layout is the backend-independent geometry of a chart.
type Layout struct {
	Title         string
	Width, Height float64

	// Plot area, in canvas coordinates.
	Left, Top, Right, Bottom float64

	// From and To bound the time axis; To is exclusive.
	From, To time.Time

	Lanes  []Lane
	Bars   []Bar
	Ticks  []Tick
	Legend []LegendEntry

	ShowToday bool
	Today     float64
}

// NewLayout computes the chart geometry for ds. Lanes follow the first
// appearance of each activity, so the first row is drawn at the top. Each bar
// covers its start and end dates inclusively.
func NewLayout(ds *dataset.Dataset, opts Options) (*Layout, error) {
	if ds == nil || ds.IsEmpty() {
		return nil, ErrEmptyDataset
	}
	if opts.Title == "" {
		opts.Title = DefaultTitle
	}
	if opts.Width < minCanvas {
		opts.Width = DefaultOptions().Width
	}

	labels := ds.Labels()
	laneOf := make(map[string]int, len(labels))
	widest := 0
	for i, label := range labels {
		laneOf[label] = i
		if n := utf8.RuneCountInString(label); n > widest {
			widest = n
		}
	}

	l := &Layout{
		Title: opts.Title,
		Width: float64(opts.Width),
	}
	l.Left = marginLeft + clamp(float64(widest)*charWidth+16, 80, l.Width/3)
	l.Right = l.Width - marginRight
	l.Top = marginTop

	height := float64(opts.Height)
	if height <= 0 {
		height = marginTop + float64(len(labels))*laneHeight + marginBottom
	}
	if ds.HasCategory() {
		height += laneHeight
	}
	l.Height = height
	l.Bottom = l.Height - marginBottom
	if ds.HasCategory() {
		l.Bottom -= laneHeight
	}
	rowHeight := (l.Bottom - l.Top) / float64(len(labels))

	from, to, _ := ds.Span()
	l.From, l.To = from, to.Add(day)
	if opts.ShowToday && !opts.Now.IsZero() {
		today := dataset.Date(opts.Now)
		if today.Before(l.From) {
			l.From = today
		}
		if !today.Before(l.To) {
			l.To = today.Add(day)
		}
		l.ShowToday = true
		l.Today = l.X(today.Add(day / 2))
	}

	for i, label := range labels {
		l.Lanes = append(l.Lanes, Lane{Label: label, Y: l.Top + (float64(i)+0.5)*rowHeight})
	}

	fills := make(map[string]string)
	for i, cat := range ds.Categories() {
		fill := palette[i%len(palette)]
		fills[cat] = fill
		l.Legend = append(l.Legend, LegendEntry{Label: cat, Fill: fill})
	}

	inset := clamp(barInset, 0, rowHeight/4)
	for _, r := range ds.Rows() {
		lane := laneOf[r.Activity]
		start, end := r.Start, r.End
		if end.Before(start) {
			start, end = end, start
		}
		x0, x1 := l.X(start), l.X(end.Add(day))

		fill := palette[0]
		if ds.HasCategory() {
			fill = uncategorizedFill
			if f, ok := fills[r.Category]; ok {
				fill = f
			}
		}
		progress := -1.0
		if r.Completion != nil {
			progress = *r.Completion
		}
		l.Bars = append(l.Bars, Bar{
			Row:      r,
			Lane:     lane,
			X:        x0,
			Y:        l.Top + float64(lane)*rowHeight + inset,
			W:        x1 - x0,
			H:        rowHeight - 2*inset,
			Fill:     fill,
			Progress: progress,
		})
	}

	l.Ticks = l.ticks()
	return l, nil
}

// X maps a time onto the horizontal canvas axis.
func (l *Layout) X(t time.Time) float64 {
	span := l.To.Sub(l.From)
	if span <= 0 {
		return l.Left
	}
	return l.Left + float64(t.Sub(l.From))/float64(span)*(l.Right-l.Left)
}

// Days returns the number of days on the time axis.
func (l *Layout) Days() int {
	return int(l.To.Sub(l.From) / day)
}

var tickSteps = []int{1, 2, 7, 14, 30, 61, 91, 182, 365}

func (l *Layout) ticks() []Tick {
	days := l.Days()
	step := tickSteps[len(tickSteps)-1]
	for _, s := range tickSteps {
		if days/s <= maxTicks {
			step = s
			break
		}
	}

	var ticks []Tick
	if step < 30 {
		for t := l.From; t.Before(l.To); t = t.Add(time.Duration(step) * day) {
			ticks = append(ticks, Tick{X: l.X(t), Label: t.Format("Jan 2")})
		}
		return ticks
	}

	months := step / 30
	t := time.Date(l.From.Year(), l.From.Month(), 1, 0, 0, 0, 0, time.UTC)
	if t.Before(l.From) {
		t = t.AddDate(0, 1, 0)
	}
	for ; t.Before(l.To); t = t.AddDate(0, months, 0) {
		ticks = append(ticks, Tick{X: l.X(t), Label: t.Format("Jan 2006")})
	}
	return ticks
}

// Tooltip describes a bar for hover text and accessibility labels.
func (b Bar) Tooltip() string {
	lines := []string{
		"Activity: " + b.Row.Activity,
		"Start Date: " + dataset.FormatDate(b.Row.Start),
		"End Date: " + dataset.FormatDate(b.Row.End),
	}
	if b.Progress >= 0 {
		lines = append(lines, "Completion: "+formatPercent(b.Progress))
	}
	if b.Row.Category != "" {
		lines = append(lines, "Category: "+b.Row.Category)
	}
	return strings.Join(lines, "\n")
}

func formatPercent(fraction float64) string {
	return fmt.Sprintf("%.0f%%", fraction*100)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// rgb parses a #RRGGBB color.
func rgb(hex string) (r, g, b int) {
	_, _ = fmt.Sscanf(strings.TrimPrefix(hex, "#"), "%02x%02x%02x", &r, &g, &b)
	return r, g, b
}
