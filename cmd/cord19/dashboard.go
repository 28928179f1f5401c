// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Serve the interactive dashboard",
	Long: `Dashboard loads and cleans the metadata file and serves a page with a
year-range filter. Each change recomputes the sample rows, publications per
year, top journals and the title word cloud for the selected years.

The JSON summary is available at /api/summary?from=YYYY&to=YYYY.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		t, err := loadCleaned(cfg, cmd.OutOrStdout(), false)
		if err != nil {
			return err
		}
		return serveDashboard(cmd.Context(), cfg, t)
	},
}

func init() {
	dashboardCmd.Flags().String("addr", "", "listen address (default :8501)")
	dashboardCmd.Flags().Int("from", 0, "initial first year")
	dashboardCmd.Flags().Int("to", 0, "initial last year")
	_ = viper.BindPFlag("dashboard.addr", dashboardCmd.Flags().Lookup("addr"))
	_ = viper.BindPFlag("dashboard.default_from", dashboardCmd.Flags().Lookup("from"))
	_ = viper.BindPFlag("dashboard.default_to", dashboardCmd.Flags().Lookup("to"))

	rootCmd.AddCommand(dashboardCmd)
}
