// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/munyokii/cord19-explorer/pkg/types"
)

// setDefaults registers every field of cfg with v so that environment
// variables and Unmarshal see the full key set.
func setDefaults(v *viper.Viper, cfg types.PipelineConfig) {
	v.SetDefault("mode", string(cfg.Mode))
	v.SetDefault("data.path", cfg.Data.Path)
	v.SetDefault("explore.enabled", cfg.Explore.Enabled)
	v.SetDefault("explore.null_columns", cfg.Explore.NullColumns)
	v.SetDefault("analysis.top_journals", cfg.Analysis.TopJournals)
	v.SetDefault("analysis.max_words", cfg.Analysis.MaxWords)
	v.SetDefault("output.dir", cfg.Output.Dir)
	v.SetDefault("dashboard.addr", cfg.Dashboard.Addr)
	v.SetDefault("dashboard.default_from", cfg.Dashboard.DefaultFrom)
	v.SetDefault("dashboard.default_to", cfg.Dashboard.DefaultTo)
	v.SetDefault("dashboard.preview_rows", cfg.Dashboard.PreviewRows)
	v.SetDefault("dashboard.shutdown_timeout", cfg.Dashboard.ShutdownTimeout)
	v.SetDefault("store.dir", cfg.Store.Dir)
	v.SetDefault("store.max_results", cfg.Store.MaxResults)
	v.SetDefault("log.level", cfg.Log.Level)
}

// loadConfig returns the effective configuration: defaults, then the config
// file, then CORD19_* environment variables, then flags.
func loadConfig() (types.PipelineConfig, error) {
	var cfg types.PipelineConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		return types.PipelineConfig{}, fmt.Errorf("reading configuration: %w", err)
	}
	switch cfg.Mode {
	case types.ModeStatic, types.ModeDashboard:
	default:
		return types.PipelineConfig{}, fmt.Errorf("unknown mode %q: want %q or %q", cfg.Mode, types.ModeStatic, types.ModeDashboard)
	}
	return cfg, nil
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(cfg)
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}
