package chart

import (
	"io"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/gantt-tools/gantt-go/internal/dataset"
)

// PNG renders a static raster chart.
type PNG struct{}

func (PNG) Name() string        { return "png" }
func (PNG) ContentType() string { return "image/png" }
func (PNG) Extension() string   { return ".png" }

// Render draws the chart with gg and encodes it as PNG.
func (PNG) Render(w io.Writer, ds *dataset.Dataset, opts Options) error {
	l, err := NewLayout(ds, opts)
	if err != nil {
		return err
	}

	dc := gg.NewContext(int(l.Width), int(l.Height))
	dc.SetFontFace(basicfont.Face7x13)
	dc.SetHexColor("#ffffff")
	dc.Clear()

	dc.SetHexColor(textColor)
	dc.DrawStringAnchored(l.Title, l.Left, 28, 0, 0.5)

	dc.SetLineWidth(1)
	for _, tick := range l.Ticks {
		dc.SetHexColor(gridColor)
		dc.DrawLine(tick.X, l.Top, tick.X, l.Bottom)
		dc.Stroke()
		dc.SetHexColor(textColor)
		dc.DrawStringAnchored(tick.Label, tick.X, l.Bottom+14, 0.5, 0.5)
	}
	dc.SetHexColor(textColor)
	dc.DrawLine(l.Left, l.Bottom, l.Right, l.Bottom)
	dc.Stroke()

	for _, lane := range l.Lanes {
		dc.DrawStringAnchored(lane.Label, l.Left-8, lane.Y, 1, 0.35)
	}

	for _, bar := range l.Bars {
		dc.SetHexColor(bar.Fill)
		dc.DrawRoundedRectangle(bar.X, bar.Y, bar.W, bar.H, 2)
		dc.Fill()
		if bar.Progress > 0 {
			dc.SetRGBA(0, 0, 0, 0.25)
			dc.DrawRectangle(bar.X, bar.Y+bar.H*0.7, bar.W*bar.Progress, bar.H*0.3)
			dc.Fill()
		}
	}

	if l.ShowToday {
		dc.SetHexColor(todayColor)
		dc.SetLineWidth(1.5)
		dc.SetDash(4, 4)
		dc.DrawLine(l.Today, l.Top, l.Today, l.Bottom)
		dc.Stroke()
		dc.SetDash()
	}

	x := l.Left
	for _, entry := range l.Legend {
		y := l.Bottom + 32
		dc.SetHexColor(entry.Fill)
		dc.DrawRectangle(x, y, 12, 12)
		dc.Fill()
		dc.SetHexColor(textColor)
		dc.DrawStringAnchored(entry.Label, x+16, y+6, 0, 0.35)
		x += 16 + float64(len([]rune(entry.Label)))*charWidth + 16
	}

	return dc.EncodePNG(w)
}
