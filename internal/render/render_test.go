// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot"

	"github.com/munyokii/cord19-explorer/pkg/types"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func requirePNG(t *testing.T, data []byte) {
	t.Helper()
	require.True(t, bytes.HasPrefix(data, pngMagic), "not a png")
}

func TestYearChart(t *testing.T) {
	p, err := YearChart([]types.YearCount{{Year: 2019, Count: 3}, {Year: 2020, Count: 10}})
	require.NoError(t, err)
	data, err := PNG(p, ChartWidth, ChartHeight)
	require.NoError(t, err)
	requirePNG(t, data)
}

func TestChartsWithoutData(t *testing.T) {
	p, err := YearChart(nil)
	require.NoError(t, err)
	data, err := PNG(p, ChartWidth, ChartHeight)
	require.NoError(t, err)
	requirePNG(t, data)

	p, err = JournalChart(nil)
	require.NoError(t, err)
	data, err = PNG(p, ChartWidth, ChartHeight)
	require.NoError(t, err)
	requirePNG(t, data)
}

func TestJournalChart(t *testing.T) {
	p, err := JournalChart([]types.JournalCount{
		{Journal: "A very long journal name that will not fit on the axis at all", Count: 5},
		{Journal: "PLoS One", Count: 2},
	})
	require.NoError(t, err)
	data, err := PNG(p, ChartWidth, ChartHeight)
	require.NoError(t, err)
	requirePNG(t, data)
}

func TestWordCloud(t *testing.T) {
	words := []types.WordCount{
		{Word: "coronavirus", Count: 40},
		{Word: "respiratory", Count: 20},
		{Word: "infection", Count: 10},
		{Word: "virus", Count: 1},
	}
	p, err := WordCloud(words, CloudWidth, CloudHeight)
	require.NoError(t, err)
	data, err := PNG(p, CloudWidth, CloudHeight)
	require.NoError(t, err)
	requirePNG(t, data)

	_, err = WordCloud(nil, CloudWidth, CloudHeight)
	assert.ErrorIs(t, err, ErrNoWords)
}

func TestLayoutKeepsWordsApart(t *testing.T) {
	var words []types.WordCount
	for i, w := range []string{
		"coronavirus", "respiratory", "infection", "virus", "patients", "clinical",
		"pandemic", "transmission", "vaccine", "outbreak", "sars-cov-2", "china",
	} {
		words = append(words, types.WordCount{Word: w, Count: 40 - 3*i})
	}
	width, height := CloudWidth.Points(), CloudHeight.Points()

	placed := layout(words, width, height)
	require.NotEmpty(t, placed)
	for i, a := range placed {
		assert.True(t, a.Box.inside(width, height), "%s outside the canvas", a.Word)
		for _, b := range placed[i+1:] {
			assert.False(t, a.Box.overlaps(b.Box), "%s overlaps %s", a.Word, b.Word)
		}
	}
	assert.Nil(t, layout(nil, width, height))
}

func TestCloudLabelsReportNoGlyphBoxes(t *testing.T) {
	_, ok := any(cloudLabels{}).(plot.GlyphBoxer)
	assert.False(t, ok, "glyph boxes would shrink the data area")

	p, err := WordCloud([]types.WordCount{{Word: "virus", Count: 1}}, CloudWidth, CloudHeight)
	require.NoError(t, err)
	assert.Zero(t, p.X.Padding)
	assert.Zero(t, p.Y.Padding)
	assert.Equal(t, CloudWidth.Points(), p.X.Max)
}

func TestFindSpot(t *testing.T) {
	x, y, ok := findSpot(nil, 10, 10, 100, 50)
	require.True(t, ok)
	assert.InDelta(t, 50, x, 1e-9)
	assert.InDelta(t, 25, y, 1e-9)

	_, _, ok = findSpot(nil, 200, 10, 100, 50)
	assert.False(t, ok, "wider than the canvas")

	placed := []box{{0, 0, 100, 50}}
	_, _, ok = findSpot(placed, 5, 5, 100, 50)
	assert.False(t, ok, "canvas full")
}

func TestFontSize(t *testing.T) {
	assert.Equal(t, float64(maxFontSize), fontSize(5, 5, 5))
	assert.Equal(t, float64(minFontSize), fontSize(1, 1, 9))
	assert.Equal(t, float64(maxFontSize), fontSize(9, 1, 9))
}

func TestDirSinkOverwrites(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "images")
	sink := DirSink{Dir: dir}

	path, err := sink.Put("a.png", []byte("first"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "a.png"), path)

	_, err = sink.Put("a.png", []byte("second"))
	require.NoError(t, err)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestMemorySink(t *testing.T) {
	var sink MemorySink
	_, err := sink.Put("x.png", []byte{1, 2})
	require.NoError(t, err)
	got, ok := sink.Get("x.png")
	require.True(t, ok)
	assert.Equal(t, []byte{1, 2}, got)
	_, ok = sink.Get("missing")
	assert.False(t, ok)
}
