// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/munyokii/cord19-explorer/pkg/types"
)

const exportTopJournals = 10

// Export is the YAML summary of one run.
type Export struct {
	Run         Run                  `yaml:"run"`
	ByYear      []types.YearCount    `yaml:"by_year"`
	TopJournals []types.JournalCount `yaml:"top_journals"`
}

// ExportYAML writes the summary of run (the most recent when empty) to
// path and returns it.
func (s *Store) ExportYAML(ctx context.Context, run, path string) (Export, error) {
	r, err := s.resolveRun(ctx, run)
	if err != nil {
		return Export{}, err
	}
	byYear, err := s.CountsByYear(ctx, r.ID)
	if err != nil {
		return Export{}, err
	}
	top, err := s.TopJournals(ctx, r.ID, exportTopJournals)
	if err != nil {
		return Export{}, err
	}
	exp := Export{Run: r, ByYear: byYear, TopJournals: top}

	data, err := yaml.Marshal(exp)
	if err != nil {
		return Export{}, fmt.Errorf("marshaling YAML: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return Export{}, fmt.Errorf("creating export directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return Export{}, fmt.Errorf("writing %s: %w", path, err)
	}
	return exp, nil
}
