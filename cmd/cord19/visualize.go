// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/munyokii/cord19-explorer/internal/visualize"
)

var visualizeCmd = &cobra.Command{
	Use:   "visualize",
	Short: "Write the three chart images",
	Long: `Visualize loads and cleans the metadata file, then writes
publications_by_year.png, top_journals.png and title_wordcloud.png into the
output directory, replacing earlier files. The word cloud is skipped when no
title words remain.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		t, err := loadCleaned(cfg, cmd.OutOrStdout(), false)
		if err != nil {
			return err
		}
		_, err = visualize.Run(t, cfg, cmd.OutOrStdout())
		return err
	},
}

func init() {
	rootCmd.AddCommand(visualizeCmd)
}
