// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Mode selects what the default pipeline does after cleaning.
type Mode string

const (
	ModeStatic    Mode = "static"
	ModeDashboard Mode = "dashboard"
)

// DataConfig locates the input dataset.
type DataConfig struct {
	// Path is the CSV file to load (default "data/metadata.csv").
	Path string `json:"path" yaml:"path" mapstructure:"path"`
}

// ExploreConfig controls the exploration report.
type ExploreConfig struct {
	// Enabled runs the report as part of the default pipeline.
	Enabled bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`

	// NullColumns is how many columns the missing-values section lists (default 20).
	NullColumns int `json:"null_columns" yaml:"null_columns" mapstructure:"null_columns"`
}

// AnalysisConfig holds the aggregation limits shared by static and
// interactive rendering.
type AnalysisConfig struct {
	// TopJournals is the number of journals in the top-journals chart (default 10).
	TopJournals int `json:"top_journals" yaml:"top_journals" mapstructure:"top_journals"`

	// MaxWords is the maximum number of words drawn in the word cloud (default 100).
	MaxWords int `json:"max_words" yaml:"max_words" mapstructure:"max_words"`
}

// OutputConfig holds settings for the static chart artifacts.
type OutputConfig struct {
	// Dir receives the chart images (default "images"). Use "." to write
	// into the working directory.
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`
}

// DashboardConfig holds settings for the interactive dashboard.
type DashboardConfig struct {
	// Addr is the listen address (default ":8501").
	Addr string `json:"addr" yaml:"addr" mapstructure:"addr"`

	// DefaultFrom and DefaultTo are the initial year window before clamping
	// to the data (default 2020-2021).
	DefaultFrom int `json:"default_from" yaml:"default_from" mapstructure:"default_from"`
	DefaultTo   int `json:"default_to" yaml:"default_to" mapstructure:"default_to"`

	// PreviewRows is the number of filtered rows shown in the preview (default 5).
	PreviewRows int `json:"preview_rows" yaml:"preview_rows" mapstructure:"preview_rows"`

	// ShutdownTimeout bounds graceful shutdown (default 10s).
	ShutdownTimeout time.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
}

// StoreConfig holds settings for the SQLite export.
type StoreConfig struct {
	// Dir contains the database file cord19.db (default "data").
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`

	// MaxResults is the default query limit (default 20).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error (default info).
	Level string `json:"level" yaml:"level" mapstructure:"level"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Mode      Mode            `json:"mode" yaml:"mode" mapstructure:"mode"`
	Data      DataConfig      `json:"data" yaml:"data" mapstructure:"data"`
	Explore   ExploreConfig   `json:"explore" yaml:"explore" mapstructure:"explore"`
	Analysis  AnalysisConfig  `json:"analysis" yaml:"analysis" mapstructure:"analysis"`
	Output    OutputConfig    `json:"output" yaml:"output" mapstructure:"output"`
	Dashboard DashboardConfig `json:"dashboard" yaml:"dashboard" mapstructure:"dashboard"`
	Store     StoreConfig     `json:"store" yaml:"store" mapstructure:"store"`
	Log       LogConfig       `json:"log" yaml:"log" mapstructure:"log"`
}

// DefaultPipelineConfig returns the configuration used when no file,
// environment variable or flag overrides a value.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		Mode:     ModeStatic,
		Data:     DataConfig{Path: "data/metadata.csv"},
		Explore:  ExploreConfig{Enabled: true, NullColumns: 20},
		Analysis: AnalysisConfig{TopJournals: 10, MaxWords: 100},
		Output:   OutputConfig{Dir: "images"},
		Dashboard: DashboardConfig{
			Addr:            ":8501",
			DefaultFrom:     2020,
			DefaultTo:       2021,
			PreviewRows:     5,
			ShutdownTimeout: 10 * time.Second,
		},
		Store: StoreConfig{Dir: "data", MaxResults: 20},
		Log:   LogConfig{Level: "info"},
	}
}
