package chart

import (
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/gantt-tools/gantt-go/internal/dataset"
)

// PDF renders a printable single-page chart. Canvas units are points.
type PDF struct{}

func (PDF) Name() string        { return "pdf" }
func (PDF) ContentType() string { return "application/pdf" }
func (PDF) Extension() string   { return ".pdf" }

// Render lays the chart out on a page sized to the canvas.
func (PDF) Render(w io.Writer, ds *dataset.Dataset, opts Options) error {
	l, err := NewLayout(ds, opts)
	if err != nil {
		return err
	}

	// Portrait keeps Size as given; landscape would swap it.
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: l.Width, Ht: l.Height},
	})
	pdf.SetTitle(l.Title, true)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	setText := func(hex string) {
		r, g, b := rgb(hex)
		pdf.SetTextColor(r, g, b)
	}
	setFill := func(hex string) {
		r, g, b := rgb(hex)
		pdf.SetFillColor(r, g, b)
	}
	setDraw := func(hex string) {
		r, g, b := rgb(hex)
		pdf.SetDrawColor(r, g, b)
	}

	pdf.SetFont("Helvetica", "B", 16)
	setText(textColor)
	pdf.Text(l.Left, 32, tr(l.Title))

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetLineWidth(0.5)
	for _, tick := range l.Ticks {
		setDraw(gridColor)
		pdf.Line(tick.X, l.Top, tick.X, l.Bottom)
		label := tr(tick.Label)
		pdf.Text(tick.X-pdf.GetStringWidth(label)/2, l.Bottom+14, label)
	}
	setDraw(textColor)
	pdf.Line(l.Left, l.Bottom, l.Right, l.Bottom)

	pdf.SetFont("Helvetica", "", 9)
	for _, lane := range l.Lanes {
		label := tr(lane.Label)
		pdf.Text(l.Left-8-pdf.GetStringWidth(label), lane.Y+3, label)
	}

	for _, bar := range l.Bars {
		setFill(bar.Fill)
		pdf.Rect(bar.X, bar.Y, bar.W, bar.H, "F")
		if bar.Progress > 0 {
			pdf.SetAlpha(0.25, "Normal")
			setFill("#000000")
			pdf.Rect(bar.X, bar.Y+bar.H*0.7, bar.W*bar.Progress, bar.H*0.3, "F")
			pdf.SetAlpha(1, "Normal")
		}
	}

	if l.ShowToday {
		setDraw(todayColor)
		pdf.SetLineWidth(1)
		pdf.SetDashPattern([]float64{4, 4}, 0)
		pdf.Line(l.Today, l.Top, l.Today, l.Bottom)
		pdf.SetDashPattern([]float64{}, 0)
	}

	x := l.Left
	pdf.SetFont("Helvetica", "", 8)
	for _, entry := range l.Legend {
		y := l.Bottom + 28
		setFill(entry.Fill)
		pdf.Rect(x, y, 10, 10, "F")
		label := tr(entry.Label)
		pdf.Text(x+14, y+8, label)
		x += 14 + pdf.GetStringWidth(label) + 16
	}

	return pdf.Output(w)
}
