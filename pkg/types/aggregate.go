// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// YearCount is the number of papers published in one calendar year.
type YearCount struct {
	Year  int `json:"year" yaml:"year"`
	Count int `json:"count" yaml:"count"`
}

// JournalCount is the number of papers published by one journal.
type JournalCount struct {
	Journal string `json:"journal" yaml:"journal"`
	Count   int    `json:"count" yaml:"count"`
}

// WordCount is the frequency of one word in a text corpus.
type WordCount struct {
	Word  string `json:"word" yaml:"word"`
	Count int    `json:"count" yaml:"count"`
}

// YearRange is an inclusive range of calendar years.
type YearRange struct {
	From int `json:"from" yaml:"from"`
	To   int `json:"to" yaml:"to"`
}

// Contains reports whether year lies within the range.
func (r YearRange) Contains(year int) bool {
	return year >= r.From && year <= r.To
}

// Clamp limits the range to bounds, swapping endpoints given in reverse order.
func (r YearRange) Clamp(bounds YearRange) YearRange {
	if r.From > r.To {
		r.From, r.To = r.To, r.From
	}
	r.From = min(max(r.From, bounds.From), bounds.To)
	r.To = min(max(r.To, bounds.From), bounds.To)
	return r
}
