// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the cord19 pipeline:
// the typed view of a metadata row, the aggregates computed over a table,
// and the configuration of every stage.
package types

import (
	"database/sql"
	"encoding/json"
)

// Column names the pipeline reads or derives.
const (
	ColTitle             = "title"
	ColAbstract          = "abstract"
	ColJournal           = "journal"
	ColPublishTime       = "publish_time"
	ColYear              = "year"
	ColAbstractWordCount = "abstract_word_count"
)

// DateLayout is the canonical representation of publish_time after cleaning.
const DateLayout = "2006-01-02"

// Record is the typed view of one metadata row. Null cells are explicit:
// a field is null when Valid is false.
type Record struct {
	// Title is the paper title.
	Title sql.NullString `json:"title" yaml:"title"`

	// Abstract is the paper abstract.
	Abstract sql.NullString `json:"abstract" yaml:"abstract"`

	// Journal is the publishing venue.
	Journal sql.NullString `json:"journal" yaml:"journal"`

	// PublishTime is the parsed publication date. Null when the source
	// value is missing or unparsable.
	PublishTime sql.NullTime `json:"publish_time" yaml:"publish_time"`

	// Year is the calendar year of PublishTime, derived by cleaning.
	Year sql.NullInt64 `json:"year" yaml:"year"`

	// AbstractWordCount is the number of whitespace-separated tokens in
	// Abstract; zero for a null abstract.
	AbstractWordCount int `json:"abstract_word_count" yaml:"abstract_word_count"`
}

// MarshalJSON writes null fields as JSON null and publish_time as YYYY-MM-DD.
func (r Record) MarshalJSON() ([]byte, error) {
	str := func(s sql.NullString) *string {
		if !s.Valid {
			return nil
		}
		return &s.String
	}
	out := struct {
		Title             *string `json:"title"`
		Abstract          *string `json:"abstract"`
		Journal           *string `json:"journal"`
		PublishTime       *string `json:"publish_time"`
		Year              *int64  `json:"year"`
		AbstractWordCount int     `json:"abstract_word_count"`
	}{
		Title:             str(r.Title),
		Abstract:          str(r.Abstract),
		Journal:           str(r.Journal),
		AbstractWordCount: r.AbstractWordCount,
	}
	if r.PublishTime.Valid {
		d := r.PublishTime.Time.Format(DateLayout)
		out.PublishTime = &d
	}
	if r.Year.Valid {
		out.Year = &r.Year.Int64
	}
	return json.Marshal(out)
}
