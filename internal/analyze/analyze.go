// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package analyze computes the aggregates shown by the static charts and the
// dashboard: publications per year, the most frequent journals, and title
// word frequencies. Every function reads the table it is given and returns
// new values; none of them modify the table.
package analyze

import (
	"fmt"
	"sort"
	"strings"

	"github.com/munyokii/cord19-explorer/internal/dataset"
	"github.com/munyokii/cord19-explorer/pkg/types"
)

// DefaultTopJournals is the number of journals TopJournals keeps when n <= 0.
const DefaultTopJournals = 10

// CountsByYear counts rows per year in ascending year order. Rows with a
// null year are not counted.
func CountsByYear(t dataset.Table) ([]types.YearCount, error) {
	years, err := t.Ints(types.ColYear)
	if err != nil {
		return nil, err
	}

	counts := make(map[int]int)
	for _, y := range years {
		if y.Valid {
			counts[int(y.Int64)]++
		}
	}

	out := make([]types.YearCount, 0, len(counts))
	for y, c := range counts {
		out = append(out, types.YearCount{Year: y, Count: c})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out, nil
}

// TopJournals counts rows per journal and returns the n largest groups by
// count, descending. Ties keep the order in which journals first appear.
// Null journals are not counted.
func TopJournals(t dataset.Table, n int) ([]types.JournalCount, error) {
	if n <= 0 {
		n = DefaultTopJournals
	}
	journals, err := t.Strings(types.ColJournal)
	if err != nil {
		return nil, err
	}

	index := make(map[string]int)
	var out []types.JournalCount
	for _, j := range journals {
		if !j.Valid {
			continue
		}
		i, ok := index[j.String]
		if !ok {
			i = len(out)
			index[j.String] = i
			out = append(out, types.JournalCount{Journal: j.String})
		}
		out[i].Count++
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if len(out) > n {
		out = out[:n]
	}
	return out, nil
}

// TitleText joins every non-null title with a single space.
func TitleText(t dataset.Table) (string, error) {
	titles, err := t.Strings(types.ColTitle)
	if err != nil {
		return "", err
	}
	parts := make([]string, 0, len(titles))
	for _, s := range titles {
		if s.Valid {
			parts = append(parts, s.String)
		}
	}
	return strings.Join(parts, " "), nil
}

// YearBounds returns the smallest and largest non-null year in the table.
// ok is false when no row has a year.
func YearBounds(t dataset.Table) (bounds types.YearRange, ok bool, err error) {
	years, err := t.Ints(types.ColYear)
	if err != nil {
		return types.YearRange{}, false, err
	}
	for _, y := range years {
		if !y.Valid {
			continue
		}
		v := int(y.Int64)
		if !ok {
			bounds = types.YearRange{From: v, To: v}
			ok = true
			continue
		}
		bounds.From = min(bounds.From, v)
		bounds.To = max(bounds.To, v)
	}
	return bounds, ok, nil
}

// FilterYears returns the rows whose year lies in r, inclusive, in table
// order. Rows with a null year are excluded.
func FilterYears(t dataset.Table, r types.YearRange) (dataset.Table, error) {
	years, err := t.Ints(types.ColYear)
	if err != nil {
		return dataset.Table{}, err
	}
	var rows []int
	for i, y := range years {
		if y.Valid && r.Contains(int(y.Int64)) {
			rows = append(rows, i)
		}
	}
	out, err := t.Subset(rows)
	if err != nil {
		return dataset.Table{}, fmt.Errorf("filtering years %d-%d: %w", r.From, r.To, err)
	}
	return out, nil
}

// Options bounds the aggregates Summarize computes.
type Options struct {
	// TopJournals is the number of journals kept (default 10).
	TopJournals int
	// MaxWords is the number of words kept for the word cloud (0 keeps all).
	MaxWords int
}

// Summary holds the three aggregates rendered by the charts.
type Summary struct {
	Rows        int                  `json:"rows" yaml:"rows"`
	ByYear      []types.YearCount    `json:"by_year" yaml:"by_year"`
	TopJournals []types.JournalCount `json:"top_journals" yaml:"top_journals"`
	Words       []types.WordCount    `json:"words,omitempty" yaml:"words,omitempty"`
}

// HasWords reports whether the word cloud has anything to draw.
func (s Summary) HasWords() bool { return len(s.Words) > 0 }

// Summarize computes every aggregate over t. The table must have year,
// journal and title columns.
func Summarize(t dataset.Table, opts Options) (Summary, error) {
	if err := t.Require(types.ColYear, types.ColJournal, types.ColTitle); err != nil {
		return Summary{}, err
	}
	byYear, err := CountsByYear(t)
	if err != nil {
		return Summary{}, err
	}
	top, err := TopJournals(t, opts.TopJournals)
	if err != nil {
		return Summary{}, err
	}
	text, err := TitleText(t)
	if err != nil {
		return Summary{}, err
	}
	return Summary{
		Rows:        t.Nrow(),
		ByYear:      byYear,
		TopJournals: top,
		Words:       WordFrequencies(text, opts.MaxWords),
	}, nil
}
