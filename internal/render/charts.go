// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render draws the aggregates computed by package analyze as PNG
// charts: a bar chart of publications per year, a horizontal bar chart of
// the top journals, and a word cloud of title words.
package render

import (
	"bytes"
	"fmt"
	"image/color"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/munyokii/cord19-explorer/pkg/types"
)

// Chart sizes.
var (
	ChartWidth  = 8 * vg.Inch
	ChartHeight = 5 * vg.Inch
	CloudWidth  = 10 * vg.Inch
	CloudHeight = 5 * vg.Inch
)

var (
	barColor     = color.RGBA{R: 70, G: 130, B: 180, A: 255}
	journalColor = color.RGBA{R: 46, G: 139, B: 87, A: 255}
)

func newPlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	return p
}

// YearChart returns a vertical bar chart with one bar per year. An empty
// input yields a titled plot without bars.
func YearChart(counts []types.YearCount) (*plot.Plot, error) {
	p := newPlot("Publications by Year", "Year", "Number of Papers")
	if len(counts) == 0 {
		return p, nil
	}

	values := make(plotter.Values, len(counts))
	labels := make([]string, len(counts))
	for i, c := range counts {
		values[i] = float64(c.Count)
		labels[i] = strconv.Itoa(c.Year)
	}

	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return nil, fmt.Errorf("building year bars: %w", err)
	}
	bars.Color = barColor
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars, plotter.NewGrid())
	p.NominalX(labels...)
	if len(labels) > 8 {
		p.X.Tick.Label.Rotation = 0.8
		p.X.Tick.Label.XAlign = draw.XRight
		p.X.Tick.Label.YAlign = draw.YCenter
	}
	p.Y.Min = 0
	return p, nil
}

// JournalChart returns a horizontal bar chart of journal counts with the
// first entry drawn on top. An empty input yields a titled plot without bars.
func JournalChart(counts []types.JournalCount) (*plot.Plot, error) {
	p := newPlot("Top Journals", "Number of Papers", "")
	if len(counts) == 0 {
		return p, nil
	}

	// Bars are drawn bottom-up, so the largest count goes last.
	n := len(counts)
	values := make(plotter.Values, n)
	labels := make([]string, n)
	for i, c := range counts {
		values[n-1-i] = float64(c.Count)
		labels[n-1-i] = truncate(c.Journal, 40)
	}

	bars, err := plotter.NewBarChart(values, vg.Points(14))
	if err != nil {
		return nil, fmt.Errorf("building journal bars: %w", err)
	}
	bars.Horizontal = true
	bars.Color = journalColor
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.NominalY(labels...)
	p.X.Min = 0
	return p, nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// PNG encodes p at the given size.
func PNG(p *plot.Plot, w, h vg.Length) ([]byte, error) {
	wt, err := p.WriterTo(w, h, "png")
	if err != nil {
		return nil, fmt.Errorf("creating png canvas: %w", err)
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("encoding png: %w", err)
	}
	return buf.Bytes(), nil
}
