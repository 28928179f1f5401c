// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/munyokii/cord19-explorer/internal/dataset"
	"github.com/munyokii/cord19-explorer/internal/explore"
)

var exploreCmd = &cobra.Command{
	Use:   "explore",
	Short: "Print shape, column types, missing values and statistics",
	Long: `Explore loads the metadata file and prints its shape, each column's type
and non-null count, the missing values of the first columns, and summary
statistics for numeric columns. The data is not cleaned.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		t, err := dataset.Load(cfg.Data.Path)
		if err != nil {
			return err
		}
		return explore.Report(cmd.OutOrStdout(), t, cfg.Explore.NullColumns)
	},
}

func init() {
	rootCmd.AddCommand(exploreCmd)
}
