// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the cord19 CLI. Without a subcommand
// it runs the whole pipeline: load, explore, clean, then either write the
// static charts or serve the dashboard, depending on the configured mode.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/munyokii/cord19-explorer/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the cord19 CLI.
var rootCmd = &cobra.Command{
	Use:   "cord19",
	Short: "Explore the CORD-19 research metadata",
	Long: `cord19 loads the CORD-19 metadata.csv file, prints a short exploration
report, cleans the records and renders three charts: publications per year,
the top journals, and a word cloud of paper titles.

With mode "static" (the default) the charts are written to the output
directory. With mode "dashboard" an interactive page is served instead,
filtered by a year range.`,
	SilenceUsage: true,
	RunE:         runPipeline,
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./cord19.yaml or ~/.config/cord19/cord19.yaml)")
	pf.String("data", "", "path to metadata.csv")
	pf.String("log-level", "", "log level: debug, info, warn, error")
	pf.String("output", "", "directory for the chart images")

	rootCmd.Flags().String("mode", "", "static or dashboard")
	rootCmd.Flags().Bool("no-explore", false, "skip the exploration report")

	_ = viper.BindPFlag("data.path", pf.Lookup("data"))
	_ = viper.BindPFlag("log.level", pf.Lookup("log-level"))
	_ = viper.BindPFlag("mode", rootCmd.Flags().Lookup("mode"))
	_ = viper.BindPFlag("output.dir", pf.Lookup("output"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("cord19")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "cord19"))
		}
	}

	setDefaults(viper.GetViper(), types.DefaultPipelineConfig())

	viper.SetEnvPrefix("CORD19")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
