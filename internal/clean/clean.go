// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package clean prepares a loaded metadata table for analysis: it
// normalizes publish_time, derives year and abstract_word_count, and drops
// rows without a title or a usable publish date.
package clean

import (
	"database/sql"
	"strconv"
	"strings"

	"github.com/go-gota/gota/series"

	"github.com/munyokii/cord19-explorer/internal/dataset"
	"github.com/munyokii/cord19-explorer/pkg/types"
)

// null is the cell value gota reads back as a missing value.
const null = "NaN"

// Clean returns a new table with publish_time rewritten as YYYY-MM-DD (null
// when unparsable), the derived year and abstract_word_count columns, and
// only the rows that have both a title and a publish date. Row order is
// preserved. The input table is not modified.
//
// A table without title, abstract or publish_time yields a
// *dataset.SchemaError.
func Clean(t dataset.Table) (dataset.Table, error) {
	if err := t.Require(types.ColTitle, types.ColAbstract, types.ColPublishTime); err != nil {
		return dataset.Table{}, err
	}

	titles, err := t.Strings(types.ColTitle)
	if err != nil {
		return dataset.Table{}, err
	}
	abstracts, err := t.Strings(types.ColAbstract)
	if err != nil {
		return dataset.Table{}, err
	}
	published, err := t.Strings(types.ColPublishTime)
	if err != nil {
		return dataset.Table{}, err
	}

	n := t.Nrow()
	dates := make([]string, n)
	years := make([]string, n)
	words := make([]int, n)
	keep := make([]int, 0, n)

	for i := range n {
		dates[i], years[i] = null, null
		if published[i].Valid {
			if ts, ok := dataset.ParseDate(published[i].String); ok {
				dates[i] = ts.Format(types.DateLayout)
				years[i] = strconv.Itoa(ts.Year())
			}
		}
		words[i] = WordCount(abstracts[i])
		if titles[i].Valid && dates[i] != null {
			keep = append(keep, i)
		}
	}

	out := t
	for _, s := range []series.Series{
		series.New(dates, series.String, types.ColPublishTime),
		series.New(years, series.Int, types.ColYear),
		series.New(words, series.Int, types.ColAbstractWordCount),
	} {
		if out, err = out.WithColumn(s); err != nil {
			return dataset.Table{}, err
		}
	}
	return out.Subset(keep)
}

// WordCount returns the number of whitespace-separated tokens in s, or zero
// when s is null.
func WordCount(s sql.NullString) int {
	if !s.Valid {
		return 0
	}
	return len(strings.Fields(s.String))
}
