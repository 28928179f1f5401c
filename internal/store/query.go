// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/munyokii/cord19-explorer/pkg/types"
)

// QueryOptions holds parameters for Query.
type QueryOptions struct {
	// Run selects the run; empty means the most recent one.
	Run string

	// FromYear and ToYear bound year inclusively when non-zero.
	FromYear int
	ToYear   int

	// Journal filters by exact journal name.
	Journal string

	// Limit caps the result count. Zero uses the store default.
	Limit int
}

// Query returns saved records in their original row order.
func (s *Store) Query(ctx context.Context, opts QueryOptions) ([]types.Record, error) {
	run, err := s.resolveRun(ctx, opts.Run)
	if err != nil {
		return nil, err
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = s.maxResults
	}

	var qb strings.Builder
	qb.WriteString(
		`SELECT title, abstract, journal, publish_time, year, abstract_word_count
		FROM papers WHERE run_id = ?`)
	args := []any{run.ID}

	if opts.FromYear != 0 {
		qb.WriteString(` AND year >= ?`)
		args = append(args, opts.FromYear)
	}
	if opts.ToYear != 0 {
		qb.WriteString(` AND year <= ?`)
		args = append(args, opts.ToYear)
	}
	if opts.Journal != "" {
		qb.WriteString(` AND journal = ?`)
		args = append(args, opts.Journal)
	}
	qb.WriteString(` ORDER BY row LIMIT ?`)
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying papers: %w", err)
	}
	defer rows.Close()

	var out []types.Record
	for rows.Next() {
		var (
			r         types.Record
			published sql.NullString
		)
		if err := rows.Scan(&r.Title, &r.Abstract, &r.Journal, &published, &r.Year, &r.AbstractWordCount); err != nil {
			return nil, fmt.Errorf("scanning paper: %w", err)
		}
		if published.Valid {
			if ts, err := time.Parse(types.DateLayout, published.String); err == nil {
				r.PublishTime = sql.NullTime{Time: ts, Valid: true}
			}
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// CountsByYear groups a run's rows by year, ascending, skipping null years.
func (s *Store) CountsByYear(ctx context.Context, runID string) ([]types.YearCount, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT year, count(*) FROM papers
		 WHERE run_id = ? AND year IS NOT NULL
		 GROUP BY year ORDER BY year`, runID)
	if err != nil {
		return nil, fmt.Errorf("counting years: %w", err)
	}
	defer rows.Close()

	var out []types.YearCount
	for rows.Next() {
		var c types.YearCount
		if err := rows.Scan(&c.Year, &c.Count); err != nil {
			return nil, fmt.Errorf("scanning year count: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// TopJournals returns the n most frequent journals of a run. Ties keep the
// order of first appearance.
func (s *Store) TopJournals(ctx context.Context, runID string, n int) ([]types.JournalCount, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT journal, count(*) AS c FROM papers
		 WHERE run_id = ? AND journal IS NOT NULL
		 GROUP BY journal ORDER BY c DESC, min(row) LIMIT ?`, runID, n)
	if err != nil {
		return nil, fmt.Errorf("counting journals: %w", err)
	}
	defer rows.Close()

	var out []types.JournalCount
	for rows.Next() {
		var c types.JournalCount
		if err := rows.Scan(&c.Journal, &c.Count); err != nil {
			return nil, fmt.Errorf("scanning journal count: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
