package chart

import (
	"bytes"
	"encoding/xml"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gantt-tools/gantt-go/internal/dataset"
	"github.com/gantt-tools/gantt-go/internal/output"
	"github.com/gantt-tools/gantt-go/internal/table"
	"github.com/gantt-tools/gantt-go/internal/testutil"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sampleDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	ds := dataset.NewDataset()
	require.NoError(t, ds.AddActivity("Design", date(2024, 1, 1), date(2024, 1, 10), dataset.WithCategory("UX"), dataset.WithCompletion(1)))
	require.NoError(t, ds.AddActivity("Build <core>", date(2024, 1, 11), date(2024, 1, 31), dataset.WithCategory("Eng"), dataset.WithCompletion(0.4)))
	require.NoError(t, ds.AddActivity("Design", date(2024, 2, 1), date(2024, 2, 5)))
	return ds
}

func testOptions() Options {
	return Options{Title: "Roadmap", Width: 800, Now: date(2024, 1, 15), ShowToday: true}
}

func TestNew(t *testing.T) {
	for _, name := range []string{"svg", "png", "pdf", "text", " SVG "} {
		r, err := New(name)
		require.NoError(t, err, name)
		assert.Equal(t, strings.ToLower(strings.TrimSpace(name)), r.Name())
	}

	_, err := New("bmp")
	require.ErrorIs(t, err, ErrUnknownBackend)
	assert.Contains(t, err.Error(), "pdf, png, svg, text")

	assert.Equal(t, []string{"pdf", "png", "svg", "text"}, Backends())
}

func TestForExtension(t *testing.T) {
	assert.Equal(t, "png", ForExtension("out/chart.PNG").Name())
	assert.Equal(t, "pdf", ForExtension("chart.pdf").Name())
	assert.Nil(t, ForExtension("chart.gif"))
}

func TestNewLayout(t *testing.T) {
	t.Run("Should place lanes in first-seen order", func(t *testing.T) {
		l, err := NewLayout(sampleDataset(t), testOptions())
		require.NoError(t, err)

		require.Len(t, l.Lanes, 2)
		assert.Equal(t, "Design", l.Lanes[0].Label)
		assert.Less(t, l.Lanes[0].Y, l.Lanes[1].Y)

		require.Len(t, l.Bars, 3)
		assert.Equal(t, 0, l.Bars[0].Lane)
		assert.Equal(t, 1, l.Bars[1].Lane)
		assert.Equal(t, 0, l.Bars[2].Lane)
	})

	t.Run("Should scale the axis from first start to last end", func(t *testing.T) {
		l, err := NewLayout(sampleDataset(t), testOptions())
		require.NoError(t, err)

		assert.Equal(t, date(2024, 1, 1), l.From)
		assert.Equal(t, date(2024, 2, 6), l.To)
		assert.Equal(t, 36, l.Days())
		assert.InDelta(t, l.Left, l.Bars[0].X, 1e-9)
		assert.InDelta(t, l.Right, l.Bars[2].X+l.Bars[2].W, 1e-9)
		assert.NotEmpty(t, l.Ticks)
		assert.LessOrEqual(t, len(l.Ticks), maxTicks+1)
	})

	t.Run("Should widen the axis to include today", func(t *testing.T) {
		opts := testOptions()
		opts.Now = date(2024, 3, 1)
		l, err := NewLayout(sampleDataset(t), opts)
		require.NoError(t, err)
		assert.Equal(t, date(2024, 3, 2), l.To)
		assert.True(t, l.ShowToday)
		assert.Greater(t, l.Today, l.Bars[2].X)

		opts.ShowToday = false
		l, err = NewLayout(sampleDataset(t), opts)
		require.NoError(t, err)
		assert.Equal(t, date(2024, 2, 6), l.To)
		assert.False(t, l.ShowToday)
	})

	t.Run("Should color bars by category", func(t *testing.T) {
		l, err := NewLayout(sampleDataset(t), testOptions())
		require.NoError(t, err)
		assert.Equal(t, []LegendEntry{{"UX", palette[0]}, {"Eng", palette[1]}}, l.Legend)
		assert.Equal(t, uncategorizedFill, l.Bars[2].Fill)
		assert.InDelta(t, 0.4, l.Bars[1].Progress, 1e-9)
		assert.Equal(t, -1.0, l.Bars[2].Progress)
	})

	t.Run("Should draw backwards rows between their dates", func(t *testing.T) {
		ds, _, err := dataset.Normalize(backwardsTable(t), dataset.DefaultNormalizeOptions())
		require.NoError(t, err)
		l, err := NewLayout(ds, Options{Width: 600})
		require.NoError(t, err)
		assert.Greater(t, l.Bars[0].W, 0.0)
	})

	t.Run("Should reject an empty dataset", func(t *testing.T) {
		_, err := NewLayout(dataset.NewDataset(), testOptions())
		assert.ErrorIs(t, err, ErrEmptyDataset)
		_, err = NewLayout(nil, testOptions())
		assert.ErrorIs(t, err, ErrEmptyDataset)
	})

	t.Run("Should default the title", func(t *testing.T) {
		l, err := NewLayout(sampleDataset(t), Options{})
		require.NoError(t, err)
		assert.Equal(t, DefaultTitle, l.Title)
		assert.Equal(t, 1200.0, l.Width)
	})
}

func TestBarTooltip(t *testing.T) {
	l, err := NewLayout(sampleDataset(t), testOptions())
	require.NoError(t, err)
	assert.Equal(t, "Activity: Build <core>\nStart Date: 2024-01-11\nEnd Date: 2024-01-31\nCompletion: 40%\nCategory: Eng", l.Bars[1].Tooltip())
}

func TestRenderers(t *testing.T) {
	output.DisableColor()
	defer output.EnableColor()

	for _, name := range Backends() {
		t.Run(name, func(t *testing.T) {
			r, err := New(name)
			require.NoError(t, err)

			var buf bytes.Buffer
			require.NoError(t, r.Render(&buf, sampleDataset(t), testOptions()))
			require.NotZero(t, buf.Len())

			switch name {
			case "svg":
				assert.NoError(t, xml.Unmarshal(buf.Bytes(), new(struct{ XMLName xml.Name })))
				assert.Contains(t, buf.String(), "<title>Activity: Build &lt;core&gt;")
				assert.Contains(t, buf.String(), "Roadmap")
			case "png":
				img, err := png.Decode(&buf)
				require.NoError(t, err)
				assert.Equal(t, 800, img.Bounds().Dx())
			case "pdf":
				assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
			case "text":
				assert.Contains(t, buf.String(), "Build <core>")
				assert.Contains(t, buf.String(), "40%")
				assert.Contains(t, buf.String(), "2024-01-01")
			}

			err = r.Render(&bytes.Buffer{}, dataset.NewDataset(), testOptions())
			assert.ErrorIs(t, err, ErrEmptyDataset)
		})
	}
}

func TestTextRenderRowsInOrder(t *testing.T) {
	output.DisableColor()
	defer output.EnableColor()

	var buf bytes.Buffer
	require.NoError(t, Text{}.Render(&buf, sampleDataset(t), Options{Width: 80, ShowToday: false}))

	var labels []string
	for _, line := range strings.Split(buf.String(), "\n") {
		if len(labels) == 3 {
			break
		}
		if strings.ContainsRune(line, barRune) {
			labels = append(labels, strings.TrimSpace(line[:textLabelWidth]))
		}
	}
	assert.Equal(t, []string{"Design", "Build <core>", "Design"}, labels)
	assert.NotContains(t, buf.String(), "today")
}

func TestTextRenderGolden(t *testing.T) {
	ds := testutil.NewTestDataset(t,
		testutil.WithActivity("Design", "2024-01-01", "2024-01-04"),
		testutil.WithActivity("Build", "2024-01-05", "2024-01-12", dataset.WithCompletion(0.5)),
		testutil.WithActivity("Launch", "2024-01-13", "2024-01-16"),
	)

	var buf bytes.Buffer
	require.NoError(t, Text{}.Render(&buf, ds, Options{Title: "Plan", Width: 50, Now: date(2024, 1, 8)}))
	testutil.Golden(t, "text_chart", testutil.StripANSI(buf.Bytes()))
}

func backwardsTable(t *testing.T) *table.Table {
	t.Helper()
	tbl := table.New(dataset.RequiredColumns()...)
	require.NoError(t, tbl.AddRow("Backwards", "10/02/2024", "01/02/2024"))
	return tbl
}
