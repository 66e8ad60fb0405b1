package chart

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/gantt-tools/gantt-go/internal/dataset"
)

const (
	fontFamily = "Arial, sans-serif"
	textColor  = "#333333"
	gridColor  = "#E5E5E5"
	todayColor = "#D62728"
)

// SVG renders an interactive vector chart; each bar carries a hover tooltip.
type SVG struct{}

func (SVG) Name() string        { return "svg" }
func (SVG) ContentType() string { return "image/svg+xml" }
func (SVG) Extension() string   { return ".svg" }

// Render writes the chart as a standalone SVG document.
func (SVG) Render(w io.Writer, ds *dataset.Dataset, opts Options) error {
	l, err := NewLayout(ds, opts)
	if err != nil {
		return err
	}

	var svg strings.Builder
	fmt.Fprintf(&svg, `<?xml version="1.0" encoding="UTF-8"?>
<svg width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f" xmlns="http://www.w3.org/2000/svg" font-family="%s">
`, l.Width, l.Height, l.Width, l.Height, fontFamily)
	svg.WriteString(`<rect width="100%" height="100%" fill="#ffffff"/>` + "\n")
	fmt.Fprintf(&svg, `<text x="%.1f" y="32" font-size="18" fill="%s">%s</text>
`, l.Left, textColor, escapeXML(l.Title))

	// Axis grid and labels
	for _, tick := range l.Ticks {
		fmt.Fprintf(&svg, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="1"/>
`, tick.X, l.Top, tick.X, l.Bottom, gridColor)
		fmt.Fprintf(&svg, `<text x="%.1f" y="%.1f" font-size="11" text-anchor="middle" fill="%s">%s</text>
`, tick.X, l.Bottom+16, textColor, escapeXML(tick.Label))
	}
	fmt.Fprintf(&svg, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="1"/>
`, l.Left, l.Bottom, l.Right, l.Bottom, textColor)

	for _, lane := range l.Lanes {
		fmt.Fprintf(&svg, `<text x="%.1f" y="%.1f" font-size="12" text-anchor="end" dominant-baseline="middle" fill="%s">%s</text>
`, l.Left-8, lane.Y, textColor, escapeXML(lane.Label))
	}

	for _, bar := range l.Bars {
		svg.WriteString(`<g class="bar">`)
		fmt.Fprintf(&svg, `<title>%s</title>`, escapeXML(bar.Tooltip()))
		fmt.Fprintf(&svg, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="2" fill="%s" fill-opacity="0.85"/>`,
			bar.X, bar.Y, bar.W, bar.H, bar.Fill)
		if bar.Progress > 0 {
			fmt.Fprintf(&svg, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="#000000" fill-opacity="0.25"/>`,
				bar.X, bar.Y+bar.H*0.7, bar.W*bar.Progress, bar.H*0.3)
		}
		svg.WriteString("</g>\n")
	}

	if l.ShowToday {
		fmt.Fprintf(&svg, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="1.5" stroke-dasharray="4 4"><title>Today</title></line>
`, l.Today, l.Top, l.Today, l.Bottom, todayColor)
	}

	x := l.Left
	for _, entry := range l.Legend {
		y := l.Bottom + 32
		fmt.Fprintf(&svg, `<rect x="%.1f" y="%.1f" width="12" height="12" fill="%s"/>`, x, y, entry.Fill)
		fmt.Fprintf(&svg, `<text x="%.1f" y="%.1f" font-size="11" fill="%s">%s</text>
`, x+16, y+10, textColor, escapeXML(entry.Label))
		x += 16 + float64(len([]rune(entry.Label)))*charWidth + 16
	}

	svg.WriteString("</svg>\n")
	_, err = io.WriteString(w, svg.String())
	return err
}

// escapeXML escapes text for use in SVG content and attributes.
func escapeXML(s string) string {
	return html.EscapeString(s)
}
