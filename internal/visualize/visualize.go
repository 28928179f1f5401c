// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package visualize produces the static chart images for a cleaned table.
package visualize

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"github.com/munyokii/cord19-explorer/internal/analyze"
	"github.com/munyokii/cord19-explorer/internal/dataset"
	"github.com/munyokii/cord19-explorer/internal/render"
	"github.com/munyokii/cord19-explorer/pkg/types"
)

// Artifact names.
const (
	YearChartFile    = "publications_by_year.png"
	JournalChartFile = "top_journals.png"
	WordCloudFile    = "title_wordcloud.png"
)

// Artifacts lists where each chart went. WordCloud is empty when there were
// no title words to draw.
type Artifacts struct {
	YearChart    string `json:"year_chart" yaml:"year_chart"`
	JournalChart string `json:"journal_chart" yaml:"journal_chart"`
	WordCloud    string `json:"word_cloud,omitempty" yaml:"word_cloud,omitempty"`
}

// Paths returns the locations written, in order.
func (a Artifacts) Paths() []string {
	out := []string{a.YearChart, a.JournalChart}
	if a.WordCloud != "" {
		out = append(out, a.WordCloud)
	}
	return out
}

// Render draws the charts for s into sink.
func Render(s analyze.Summary, sink render.Sink) (Artifacts, error) {
	var a Artifacts

	years, err := render.YearChart(s.ByYear)
	if err != nil {
		return Artifacts{}, err
	}
	if a.YearChart, err = put(sink, YearChartFile, years, render.ChartWidth, render.ChartHeight); err != nil {
		return Artifacts{}, err
	}

	journals, err := render.JournalChart(s.TopJournals)
	if err != nil {
		return Artifacts{}, err
	}
	if a.JournalChart, err = put(sink, JournalChartFile, journals, render.ChartWidth, render.ChartHeight); err != nil {
		return Artifacts{}, err
	}

	cloud, err := render.WordCloud(s.Words, render.CloudWidth, render.CloudHeight)
	if errors.Is(err, render.ErrNoWords) {
		return a, nil
	}
	if err != nil {
		return Artifacts{}, err
	}
	if a.WordCloud, err = put(sink, WordCloudFile, cloud, render.CloudWidth, render.CloudHeight); err != nil {
		return Artifacts{}, err
	}
	return a, nil
}

func put(sink render.Sink, name string, p *plot.Plot, w, h vg.Length) (string, error) {
	data, err := render.PNG(p, w, h)
	if err != nil {
		return "", fmt.Errorf("rendering %s: %w", name, err)
	}
	loc, err := sink.Put(name, data)
	if err != nil {
		return "", fmt.Errorf("saving %s: %w", name, err)
	}
	return loc, nil
}

// Run summarizes the cleaned table t, writes the charts into cfg.Output.Dir
// and reports each file to w.
func Run(t dataset.Table, cfg types.PipelineConfig, w io.Writer) (Artifacts, error) {
	summary, err := analyze.Summarize(t, analyze.Options{
		TopJournals: cfg.Analysis.TopJournals,
		MaxWords:    cfg.Analysis.MaxWords,
	})
	if err != nil {
		return Artifacts{}, fmt.Errorf("summarizing: %w", err)
	}

	dir := cfg.Output.Dir
	if dir == "" {
		dir = types.DefaultPipelineConfig().Output.Dir
	}
	a, err := Render(summary, render.DirSink{Dir: dir})
	if err != nil {
		return Artifacts{}, err
	}

	ok := color.New(color.FgGreen)
	for _, p := range a.Paths() {
		ok.Fprintf(w, "Saved %s\n", p)
	}
	if a.WordCloud == "" {
		fmt.Fprintln(w, "No title words to draw; word cloud skipped")
	}
	ok.Fprintf(w, "Visualizations saved to %s\n", dir)
	return a, nil
}
