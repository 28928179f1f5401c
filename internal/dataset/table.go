// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dataset holds the record table every pipeline stage works on and
// the loader that builds it from a CSV file. A Table is a value: operations
// that derive a new table never modify the receiver.
package dataset

import (
	"database/sql"
	"fmt"
	"slices"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/munyokii/cord19-explorer/pkg/types"
)

// Table is an ordered collection of uniformly-keyed rows backed by a
// gota DataFrame.
type Table struct {
	df dataframe.DataFrame
}

// New wraps a DataFrame, surfacing any error it carries.
func New(df dataframe.DataFrame) (Table, error) {
	if df.Err != nil {
		return Table{}, df.Err
	}
	return Table{df: df}, nil
}

// Frame returns the underlying DataFrame.
func (t Table) Frame() dataframe.DataFrame { return t.df }

// Nrow returns the number of rows.
func (t Table) Nrow() int { return t.df.Nrow() }

// Ncol returns the number of columns.
func (t Table) Ncol() int { return t.df.Ncol() }

// Names returns the column names in table order.
func (t Table) Names() []string { return t.df.Names() }

// Types returns the inferred column types in table order.
func (t Table) Types() []series.Type { return t.df.Types() }

// Has reports whether the table has a column called name.
func (t Table) Has(name string) bool {
	return slices.Contains(t.df.Names(), name)
}

// Require returns a *SchemaError listing every column in cols the table
// does not have.
func (t Table) Require(cols ...string) error {
	names := t.df.Names()
	var missing []string
	for _, c := range cols {
		if !slices.Contains(names, c) {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return &SchemaError{Missing: missing}
	}
	return nil
}

// Column returns the series called name.
func (t Table) Column(name string) (series.Series, error) {
	if err := t.Require(name); err != nil {
		return series.Series{}, err
	}
	s := t.df.Col(name)
	if s.Err != nil {
		return series.Series{}, fmt.Errorf("column %s: %w", name, s.Err)
	}
	return s, nil
}

// Strings returns column name as nullable strings.
func (t Table) Strings(name string) ([]sql.NullString, error) {
	s, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	out := make([]sql.NullString, s.Len())
	for i := range out {
		e := s.Elem(i)
		if e.IsNA() {
			continue
		}
		out[i] = sql.NullString{String: e.String(), Valid: true}
	}
	return out, nil
}

// Ints returns column name as nullable integers. Cells that do not hold an
// integer are null.
func (t Table) Ints(name string) ([]sql.NullInt64, error) {
	s, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	out := make([]sql.NullInt64, s.Len())
	for i := range out {
		e := s.Elem(i)
		if e.IsNA() {
			continue
		}
		v, err := e.Int()
		if err != nil {
			continue
		}
		out[i] = sql.NullInt64{Int64: int64(v), Valid: true}
	}
	return out, nil
}

// WithColumn returns a copy of the table with s added, or replacing the
// column of the same name.
func (t Table) WithColumn(s series.Series) (Table, error) {
	if s.Err != nil {
		return Table{}, fmt.Errorf("column %s: %w", s.Name, s.Err)
	}
	df := t.df.Mutate(s)
	if df.Err != nil {
		return Table{}, fmt.Errorf("setting column %s: %w", s.Name, df.Err)
	}
	return Table{df: df}, nil
}

// Subset returns the rows at the given positions, in the given order.
func (t Table) Subset(rows []int) (Table, error) {
	if t.Ncol() == 0 {
		return t, nil
	}
	if rows == nil {
		rows = []int{}
	}
	df := t.df.Subset(rows)
	if df.Err != nil {
		return Table{}, fmt.Errorf("subsetting rows: %w", df.Err)
	}
	return Table{df: df}, nil
}

// Head returns the first n rows.
func (t Table) Head(n int) (Table, error) {
	n = max(0, min(n, t.Nrow()))
	rows := make([]int, n)
	for i := range rows {
		rows[i] = i
	}
	return t.Subset(rows)
}

// Cells returns the given columns as display strings, one slice per row.
// Columns the table does not have are skipped; null cells are empty.
func (t Table) Cells(cols ...string) (header []string, rows [][]string) {
	var present []series.Series
	for _, c := range cols {
		if !t.Has(c) {
			continue
		}
		header = append(header, c)
		present = append(present, t.df.Col(c))
	}
	rows = make([][]string, t.Nrow())
	for i := range rows {
		row := make([]string, len(present))
		for j, s := range present {
			if e := s.Elem(i); !e.IsNA() {
				row[j] = e.String()
			}
		}
		rows[i] = row
	}
	return header, rows
}

// Records returns the typed view of every row. Columns the table lacks
// produce null fields; publish_time is parsed with ParseDate.
func (t Table) Records() ([]types.Record, error) {
	n := t.Nrow()
	recs := make([]types.Record, n)

	text := map[string]func(*types.Record) *sql.NullString{
		types.ColTitle:    func(r *types.Record) *sql.NullString { return &r.Title },
		types.ColAbstract: func(r *types.Record) *sql.NullString { return &r.Abstract },
		types.ColJournal:  func(r *types.Record) *sql.NullString { return &r.Journal },
	}
	for col, field := range text {
		if !t.Has(col) {
			continue
		}
		vals, err := t.Strings(col)
		if err != nil {
			return nil, err
		}
		for i, v := range vals {
			*field(&recs[i]) = v
		}
	}

	if t.Has(types.ColPublishTime) {
		vals, err := t.Strings(types.ColPublishTime)
		if err != nil {
			return nil, err
		}
		for i, v := range vals {
			if !v.Valid {
				continue
			}
			if ts, ok := ParseDate(v.String); ok {
				recs[i].PublishTime = sql.NullTime{Time: ts, Valid: true}
			}
		}
	}

	if t.Has(types.ColYear) {
		vals, err := t.Ints(types.ColYear)
		if err != nil {
			return nil, err
		}
		for i, v := range vals {
			recs[i].Year = v
		}
	}

	if t.Has(types.ColAbstractWordCount) {
		vals, err := t.Ints(types.ColAbstractWordCount)
		if err != nil {
			return nil, err
		}
		for i, v := range vals {
			recs[i].AbstractWordCount = int(v.Int64)
		}
	}

	return recs, nil
}
