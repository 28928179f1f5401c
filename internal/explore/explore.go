// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package explore prints a first look at a loaded table: its shape, column
// types, missing values and summary statistics for numeric columns.
package explore

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"

	"github.com/fatih/color"
	"github.com/go-gota/gota/series"
	"github.com/olekukonko/tablewriter"
	"gonum.org/v1/gonum/stat"

	"github.com/munyokii/cord19-explorer/internal/dataset"
)

// DefaultNullColumns is the number of columns Report lists missing values for.
const DefaultNullColumns = 20

// ColumnInfo describes one column of the table.
type ColumnInfo struct {
	Name    string `json:"name" yaml:"name"`
	Type    string `json:"type" yaml:"type"`
	NonNull int    `json:"non_null" yaml:"non_null"`
}

// NullCount is the number of missing values in a column.
type NullCount struct {
	Name  string `json:"name" yaml:"name"`
	Nulls int    `json:"nulls" yaml:"nulls"`
}

// ColumnStats summarizes the non-null values of a numeric column. Quartiles
// use linear interpolation between closest ranks.
type ColumnStats struct {
	Name  string  `json:"name" yaml:"name"`
	Count int     `json:"count" yaml:"count"`
	Mean  float64 `json:"mean" yaml:"mean"`
	Std   float64 `json:"std" yaml:"std"`
	Min   float64 `json:"min" yaml:"min"`
	Q1    float64 `json:"q1" yaml:"q1"`
	Q2    float64 `json:"median" yaml:"median"`
	Q3    float64 `json:"q3" yaml:"q3"`
	Max   float64 `json:"max" yaml:"max"`
}

// Info returns name, type and non-null count for every column in table order.
func Info(t dataset.Table) []ColumnInfo {
	names := t.Names()
	kinds := t.Types()
	out := make([]ColumnInfo, len(names))
	for i, name := range names {
		nulls := t.Frame().Col(name).IsNaN()
		out[i] = ColumnInfo{Name: name, Type: string(kinds[i]), NonNull: len(nulls) - countTrue(nulls)}
	}
	return out
}

// Nulls returns the missing-value count of the first limit columns. A limit
// <= 0 covers every column.
func Nulls(t dataset.Table, limit int) []NullCount {
	names := t.Names()
	if limit > 0 && len(names) > limit {
		names = names[:limit]
	}
	out := make([]NullCount, len(names))
	for i, name := range names {
		out[i] = NullCount{Name: name, Nulls: countTrue(t.Frame().Col(name).IsNaN())}
	}
	return out
}

// Describe returns statistics for every int and float column. Columns with
// no non-null values report a zero count and NaN statistics.
func Describe(t dataset.Table) []ColumnStats {
	var out []ColumnStats
	for i, name := range t.Names() {
		kind := t.Types()[i]
		if kind != series.Int && kind != series.Float {
			continue
		}
		out = append(out, describe(name, t.Frame().Col(name)))
	}
	return out
}

func describe(name string, s series.Series) ColumnStats {
	var vals []float64
	for _, v := range s.Float() {
		if !math.IsNaN(v) {
			vals = append(vals, v)
		}
	}
	cs := ColumnStats{Name: name, Count: len(vals)}
	if len(vals) == 0 {
		nan := math.NaN()
		cs.Mean, cs.Std, cs.Min, cs.Q1, cs.Q2, cs.Q3, cs.Max = nan, nan, nan, nan, nan, nan, nan
		return cs
	}
	sort.Float64s(vals)
	cs.Mean = stat.Mean(vals, nil)
	cs.Std = math.NaN()
	if len(vals) > 1 {
		cs.Std = stat.StdDev(vals, nil)
	}
	cs.Min = vals[0]
	cs.Q1 = quantile(vals, 0.25)
	cs.Q2 = quantile(vals, 0.5)
	cs.Q3 = quantile(vals, 0.75)
	cs.Max = vals[len(vals)-1]
	return cs
}

func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}

func countTrue(bs []bool) int {
	n := 0
	for _, b := range bs {
		if b {
			n++
		}
	}
	return n
}

// Report writes the shape, column info, missing values of the first
// nullColumns columns and the numeric summary to w.
func Report(w io.Writer, t dataset.Table, nullColumns int) error {
	heading := color.New(color.FgYellow, color.Bold)

	if _, err := fmt.Fprintf(w, "Data Shape: (%d, %d)\n", t.Nrow(), t.Ncol()); err != nil {
		return fmt.Errorf("writing shape: %w", err)
	}

	heading.Fprintln(w, "\nColumn Info")
	info := tablewriter.NewWriter(w)
	info.SetHeader([]string{"Column", "Non-Null", "Type"})
	for _, c := range Info(t) {
		info.Append([]string{c.Name, strconv.Itoa(c.NonNull), c.Type})
	}
	info.Render()

	heading.Fprintln(w, "\nMissing Values")
	nulls := tablewriter.NewWriter(w)
	nulls.SetHeader([]string{"Column", "Missing"})
	for _, n := range Nulls(t, nullColumns) {
		nulls.Append([]string{n.Name, strconv.Itoa(n.Nulls)})
	}
	nulls.Render()

	heading.Fprintln(w, "\nSummary Statistics")
	stats := Describe(t)
	if len(stats) == 0 {
		_, err := fmt.Fprintln(w, "no numeric columns")
		return err
	}
	desc := tablewriter.NewWriter(w)
	desc.SetHeader([]string{"Column", "Count", "Mean", "Std", "Min", "25%", "50%", "75%", "Max"})
	for _, s := range stats {
		desc.Append([]string{
			s.Name, strconv.Itoa(s.Count),
			num(s.Mean), num(s.Std), num(s.Min), num(s.Q1), num(s.Q2), num(s.Q3), num(s.Max),
		})
	}
	desc.Render()
	return nil
}

func num(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'f', 4, 64)
}
