// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/munyokii/cord19-explorer/pkg/types"
)

const sampleCSV = `cord_uid,title,abstract,journal,publish_time,citations
a1,Study A,a b c,J1,2020-05-01,3
a2,,some text,J2,2020-06-01,
a3,Study C,,J1,2021,7
`

func writeCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	tbl, err := Load(writeCSV(t, "metadata.csv", sampleCSV))
	require.NoError(t, err)

	assert.Equal(t, 3, tbl.Nrow())
	assert.Equal(t, 6, tbl.Ncol())
	assert.Equal(t, []string{"cord_uid", "title", "abstract", "journal", "publish_time", "citations"}, tbl.Names())

	colTypes := tbl.Types()
	assert.Equal(t, series.String, colTypes[1], "title forced to string")
	assert.Equal(t, series.String, colTypes[4], "publish_time forced to string")
	assert.Equal(t, series.Int, colTypes[5], "citations inferred as int")

	titles, err := tbl.Strings("title")
	require.NoError(t, err)
	assert.True(t, titles[0].Valid)
	assert.Equal(t, "Study A", titles[0].String)
	assert.False(t, titles[1].Valid, "empty cell loads as null")

	cites, err := tbl.Ints("citations")
	require.NoError(t, err)
	assert.Equal(t, int64(7), cites[2].Int64)
	assert.False(t, cites[1].Valid)
}

func TestLoadTSV(t *testing.T) {
	tbl, err := Load(writeCSV(t, "metadata.tsv", "title\tpublish_time\nX\t2020-01-01\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"title", "publish_time"}, tbl.Names())
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
		var ioErr *IOError
		require.ErrorAs(t, err, &ioErr)
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("directory", func(t *testing.T) {
		_, err := Load(t.TempDir())
		var ioErr *IOError
		require.ErrorAs(t, err, &ioErr)
	})

	t.Run("too many fields", func(t *testing.T) {
		_, err := Load(writeCSV(t, "bad.csv", "title,journal\nA,J1\nB,J2,extra\n"))
		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Contains(t, err.Error(), "line 3")
	})

	t.Run("empty file", func(t *testing.T) {
		_, err := Load(writeCSV(t, "empty.csv", ""))
		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr)
	})
}

func TestLoadShortRowsBecomeNulls(t *testing.T) {
	tbl, err := Load(writeCSV(t, "short.csv",
		"title,abstract,journal,publish_time\nA,a b,J1,2020-05-01\nB,c\n"))
	require.NoError(t, err)
	require.Equal(t, 2, tbl.Nrow())

	journals, err := tbl.Strings("journal")
	require.NoError(t, err)
	assert.Equal(t, "J1", journals[0].String)
	assert.False(t, journals[1].Valid, "missing trailing field loads as null")

	published, err := tbl.Strings("publish_time")
	require.NoError(t, err)
	assert.False(t, published[1].Valid)
}

func TestLoadStrayQuotes(t *testing.T) {
	tbl, err := Load(writeCSV(t, "quotes.csv",
		"title,abstract,journal,publish_time\nStudy \"A\" results,a b,J1,2020-05-01\nB,c,J2,2021\n"))
	require.NoError(t, err)
	require.Equal(t, 2, tbl.Nrow())

	titles, err := tbl.Strings("title")
	require.NoError(t, err)
	assert.Equal(t, `Study "A" results`, titles[0].String)
}

func TestLoadHeaderOnly(t *testing.T) {
	tbl, err := Load(writeCSV(t, "header.csv", "title,abstract,journal,publish_time\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, tbl.Nrow())
	assert.Equal(t, []string{"title", "abstract", "journal", "publish_time"}, tbl.Names())
	assert.NoError(t, tbl.Require("title", "publish_time"))
}

func TestFromRecordsPadsShortRows(t *testing.T) {
	tbl, err := FromRecords([][]string{{"title", "journal"}, {"A"}, {"B", "J2"}})
	require.NoError(t, err)
	_, rows := tbl.Cells("title", "journal")
	assert.Equal(t, [][]string{{"A", ""}, {"B", "J2"}}, rows)

	_, err = FromRecords([][]string{{"title"}, {"A", "extra"}})
	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestRequire(t *testing.T) {
	tbl, err := FromRecords([][]string{{"title", "journal"}, {"A", "J"}})
	require.NoError(t, err)

	assert.NoError(t, tbl.Require("title"))

	err = tbl.Require("title", "abstract", "publish_time")
	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, []string{"abstract", "publish_time"}, schemaErr.Missing)
	assert.Contains(t, err.Error(), "abstract, publish_time")
}

func TestSubsetAndHead(t *testing.T) {
	tbl, err := FromRecords([][]string{
		{"title", "journal"},
		{"A", "J1"},
		{"B", "J2"},
		{"C", "J3"},
	})
	require.NoError(t, err)

	sub, err := tbl.Subset([]int{2, 0})
	require.NoError(t, err)
	_, rows := sub.Cells("title")
	assert.Equal(t, [][]string{{"C"}, {"A"}}, rows)
	assert.Equal(t, 3, tbl.Nrow(), "receiver unchanged")

	empty, err := tbl.Subset(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Nrow())
	assert.Equal(t, 2, empty.Ncol())

	head, err := tbl.Head(10)
	require.NoError(t, err)
	assert.Equal(t, 3, head.Nrow())
}

func TestCellsSkipsMissingColumns(t *testing.T) {
	tbl, err := FromRecords([][]string{{"title", "journal"}, {"A", ""}})
	require.NoError(t, err)

	header, rows := tbl.Cells("title", "year", "journal")
	assert.Equal(t, []string{"title", "journal"}, header)
	assert.Equal(t, [][]string{{"A", ""}}, rows)
}

func TestRecords(t *testing.T) {
	tbl, err := FromRecords([][]string{
		{"title", "abstract", "journal", "publish_time"},
		{"Study A", "a b c", "J1", "2020-05-01"},
		{"", "", "", "not-a-date"},
	})
	require.NoError(t, err)
	tbl, err = tbl.WithColumn(series.New([]string{"2020", "NaN"}, series.Int, types.ColYear))
	require.NoError(t, err)

	recs, err := tbl.Records()
	require.NoError(t, err)
	require.Len(t, recs, 2)

	first := recs[0]
	assert.Equal(t, "Study A", first.Title.String)
	assert.Equal(t, "J1", first.Journal.String)
	assert.True(t, first.PublishTime.Valid)
	assert.Equal(t, time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC), first.PublishTime.Time)
	assert.Equal(t, int64(2020), first.Year.Int64)

	second := recs[1]
	assert.False(t, second.Title.Valid)
	assert.False(t, second.Abstract.Valid)
	assert.False(t, second.PublishTime.Valid)
	assert.False(t, second.Year.Valid)
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
		ok   bool
	}{
		{"2020-05-01", time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC), true},
		{" 2020-05-01 ", time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC), true},
		{"2020-05-01T13:45:00Z", time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC), true},
		{"2019", time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC), true},
		{"2021-03", time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC), true},
		{"2020 Apr 17", time.Date(2020, 4, 17, 0, 0, 0, 0, time.UTC), true},
		{"not-a-date", time.Time{}, false},
		{"", time.Time{}, false},
	}
	for _, tt := range tests {
		got, ok := ParseDate(tt.in)
		assert.Equal(t, tt.ok, ok, "ParseDate(%q)", tt.in)
		assert.Equal(t, tt.want, got, "ParseDate(%q)", tt.in)
	}
}
