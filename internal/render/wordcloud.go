// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"errors"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/munyokii/cord19-explorer/pkg/types"
)

// ErrNoWords is returned by WordCloud when there is nothing to draw.
var ErrNoWords = errors.New("no words to draw")

// Font size bounds for the word cloud, in points.
const (
	minFontSize = 10
	maxFontSize = 60
)

var cloudPalette = []color.Color{
	color.RGBA{R: 68, G: 1, B: 84, A: 255},
	color.RGBA{R: 59, G: 82, B: 139, A: 255},
	color.RGBA{R: 33, G: 145, B: 140, A: 255},
	color.RGBA{R: 94, G: 201, B: 98, A: 255},
	color.RGBA{R: 180, G: 120, B: 20, A: 255},
}

type box struct{ x0, y0, x1, y1 float64 }

func (b box) overlaps(o box) bool {
	return b.x0 < o.x1 && o.x0 < b.x1 && b.y0 < o.y1 && o.y0 < b.y1
}

func (b box) inside(w, h float64) bool {
	return b.x0 >= 0 && b.y0 >= 0 && b.x1 <= w && b.y1 <= h
}

// placement is one word positioned by layout, centred at X, Y in canvas
// points.
type placement struct {
	Word  string
	X, Y  float64
	Box   box
	Style text.Style
}

// WordCloud lays out words, most frequent first, on a spiral from the centre
// of a w by h canvas. Font size scales with the word's count. Words that do
// not fit are left out. Empty input yields ErrNoWords.
func WordCloud(words []types.WordCount, w, h vg.Length) (*plot.Plot, error) {
	width, height := float64(w.Points()), float64(h.Points())
	placed := layout(words, width, height)
	if len(placed) == 0 {
		return nil, ErrNoWords
	}

	// Data coordinates are canvas points: no axes, no padding, and the
	// labels report no glyph boxes, so the data area is the whole canvas.
	p := plot.New()
	p.HideAxes()
	p.X.Padding, p.Y.Padding = 0, 0
	p.X.Min, p.X.Max = 0, width
	p.Y.Min, p.Y.Max = 0, height

	xys := make([]plotter.XY, len(placed))
	labels := make([]string, len(placed))
	styles := make([]text.Style, len(placed))
	for i, pl := range placed {
		xys[i] = plotter.XY{X: pl.X, Y: pl.Y}
		labels[i] = pl.Word
		styles[i] = pl.Style
	}
	lbls, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: labels})
	if err != nil {
		return nil, err
	}
	lbls.TextStyle = styles
	p.Add(cloudLabels{lbls})
	return p, nil
}

// cloudLabels draws labels without exposing their glyph boxes, which would
// make the plot shrink its data area to fit them.
type cloudLabels struct {
	labels *plotter.Labels
}

func (c cloudLabels) Plot(canvas draw.Canvas, p *plot.Plot) { c.labels.Plot(canvas, p) }

// layout places words on a width by height canvas without overlaps.
func layout(words []types.WordCount, width, height float64) []placement {
	if len(words) == 0 {
		return nil
	}
	top, low := words[0].Count, words[len(words)-1].Count
	var (
		out    []placement
		placed []box
	)
	for i, wc := range words {
		style := text.Style{
			Color:   cloudPalette[i%len(cloudPalette)],
			Font:    plot.DefaultFont,
			XAlign:  text.XCenter,
			YAlign:  text.YCenter,
			Handler: plot.DefaultTextHandler,
		}
		style.Font.Size = vg.Points(fontSize(wc.Count, low, top))

		bw := float64(style.Width(wc.Word).Points())
		bh := float64(style.Height(wc.Word).Points())
		x, y, ok := findSpot(placed, bw, bh, width, height)
		if !ok {
			continue
		}
		b := box{x - bw/2, y - bh/2, x + bw/2, y + bh/2}
		placed = append(placed, b)
		out = append(out, placement{Word: wc.Word, X: x, Y: y, Box: b, Style: style})
	}
	return out
}

func fontSize(count, low, top int) float64 {
	if top <= low {
		return maxFontSize
	}
	frac := float64(count-low) / float64(top-low)
	return minFontSize + frac*(maxFontSize-minFontSize)
}

// findSpot walks an Archimedean spiral outwards from the centre until a box
// of size bw by bh fits inside the canvas without touching a placed box.
func findSpot(placed []box, bw, bh, width, height float64) (x, y float64, ok bool) {
	cx, cy := width/2, height/2
	aspect := height / width
	limit := math.Hypot(width, height) / 2
	for t := 0.0; ; t += 0.1 {
		r := 2 * t
		if r > limit {
			return 0, 0, false
		}
		x = cx + r*math.Cos(t)
		y = cy + r*math.Sin(t)*aspect
		b := box{x - bw/2, y - bh/2, x + bw/2, y + bh/2}
		if !b.inside(width, height) {
			continue
		}
		free := true
		for _, o := range placed {
			if b.overlaps(o) {
				free = false
				break
			}
		}
		if free {
			return x, y, true
		}
	}
}
