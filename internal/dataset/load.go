// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/munyokii/cord19-explorer/pkg/types"
)

// nullTokens are the cell values loaded as nulls.
var nullTokens = []string{"", "NA", "NaN", "<nil>"}

// textColumns are always loaded as strings, whatever their content looks like.
var textColumns = map[string]series.Type{
	types.ColTitle:       series.String,
	types.ColAbstract:    series.String,
	types.ColJournal:     series.String,
	types.ColPublishTime: series.String,
}

func loadOptions() []dataframe.LoadOption {
	return []dataframe.LoadOption{
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(nullTokens),
		dataframe.WithTypes(textColumns),
	}
}

// Load reads the delimited file at path into a Table. Column types are
// inferred from the data; mixed columns fall back to strings. Rows shorter
// than the header are padded with nulls, stray quotes inside unquoted fields
// are kept as text, and a header without data rows gives an empty table.
//
// It returns an *IOError when the file is missing or unreadable and a
// *ParseError when it has no header or a row has more fields than the
// header.
func Load(path string) (Table, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Table{}, &IOError{Path: path, Err: err}
	}
	if info.IsDir() {
		return Table{}, &IOError{Path: path, Err: errors.New("is a directory")}
	}

	f, err := os.Open(path)
	if err != nil {
		return Table{}, &IOError{Path: path, Err: err}
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = sniffDelimiter(path)
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	var records [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Table{}, &ParseError{Path: path, Err: err}
		}
		if len(records) > 0 && len(rec) > len(records[0]) {
			line, _ := r.FieldPos(0)
			return Table{}, &ParseError{Path: path, Err: fmt.Errorf(
				"record on line %d: %d fields, header has %d", line, len(rec), len(records[0]))}
		}
		records = append(records, rec)
	}
	return fromRecords(path, records)
}

// FromRecords builds a Table from in-memory records whose first row is the
// header, applying the same rules as Load.
func FromRecords(records [][]string) (Table, error) {
	return fromRecords("<records>", records)
}

func fromRecords(path string, records [][]string) (Table, error) {
	if len(records) == 0 || len(records[0]) == 0 {
		return Table{}, &ParseError{Path: path, Err: errors.New("no header row")}
	}
	header := records[0]
	if len(records) == 1 {
		return emptyTable(path, header)
	}

	padded := make([][]string, len(records))
	padded[0] = header
	for i, rec := range records[1:] {
		if len(rec) > len(header) {
			return Table{}, &ParseError{Path: path, Err: fmt.Errorf(
				"record %d: %d fields, header has %d", i+1, len(rec), len(header))}
		}
		if len(rec) < len(header) {
			rec = append(append([]string(nil), rec...), make([]string, len(header)-len(rec))...)
		}
		padded[i+1] = rec
	}

	df := dataframe.LoadRecords(padded, loadOptions()...)
	if df.Err != nil {
		return Table{}, &ParseError{Path: path, Err: df.Err}
	}
	return Table{df: df}, nil
}

// emptyTable returns a table with the given columns and no rows. Every
// column is a string column since there is nothing to infer from.
func emptyTable(path string, header []string) (Table, error) {
	cols := make([]series.Series, len(header))
	for i, name := range header {
		cols[i] = series.New([]string{}, series.String, name)
	}
	df := dataframe.New(cols...)
	if df.Err != nil {
		return Table{}, &ParseError{Path: path, Err: df.Err}
	}
	return Table{df: df}, nil
}

func sniffDelimiter(path string) rune {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	return ','
}
