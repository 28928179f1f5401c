// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/munyokii/cord19-explorer/internal/store"
	"github.com/munyokii/cord19-explorer/pkg/types"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Save cleaned records to SQLite, query them, export summaries",
	Long: `Store keeps cleaned metadata in a local SQLite database (cord19.db in the
store directory). Each save creates a new run; query and export read the most
recent run unless --run is given.`,
}

// --- save subcommand ---

var storeSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Load, clean and save the metadata file as a new run",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		t, err := loadCleaned(cfg, cmd.OutOrStdout(), false)
		if err != nil {
			return err
		}

		s, err := store.Open(cfg.Store)
		if err != nil {
			return err
		}
		defer s.Close()

		sum, err := s.Save(cmd.Context(), cfg.Data.Path, t)
		if err != nil {
			return err
		}
		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "Saved run %s (%d rows) to %s\n", sum.ID, sum.RowCount, sum.Path)
		return nil
	},
}

// --- query subcommand ---

var storeQueryCmd = &cobra.Command{
	Use:   "query",
	Short: "List saved records filtered by year and journal",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		s, err := store.Open(cfg.Store)
		if err != nil {
			return err
		}
		defer s.Close()

		opts := store.QueryOptions{}
		opts.Run, _ = cmd.Flags().GetString("run")
		opts.FromYear, _ = cmd.Flags().GetInt("from")
		opts.ToYear, _ = cmd.Flags().GetInt("to")
		opts.Journal, _ = cmd.Flags().GetString("journal")
		opts.Limit, _ = cmd.Flags().GetInt("limit")

		recs, err := s.Query(cmd.Context(), opts)
		if err != nil {
			return err
		}
		jsonOutput, _ := cmd.Flags().GetBool("json")
		return formatRecords(cmd.OutOrStdout(), recs, jsonOutput)
	},
}

func formatRecords(w io.Writer, recs []types.Record, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(recs)
	}
	if len(recs) == 0 {
		fmt.Fprintln(w, "No results found.")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Title", "Journal", "Published", "Year", "Abstract Words"})
	for _, r := range recs {
		published, year := "", ""
		if r.PublishTime.Valid {
			published = r.PublishTime.Time.Format(types.DateLayout)
		}
		if r.Year.Valid {
			year = strconv.FormatInt(r.Year.Int64, 10)
		}
		table.Append([]string{
			shorten(r.Title.String, 60), shorten(r.Journal.String, 30),
			published, year, strconv.Itoa(r.AbstractWordCount),
		})
	}
	table.Render()
	fmt.Fprintf(w, "\n%d results\n", len(recs))
	return nil
}

// shorten cuts s to at most n runes.
func shorten(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// --- export subcommand ---

var storeExportCmd = &cobra.Command{
	Use:   "export [path]",
	Short: "Write a YAML summary of a run",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		s, err := store.Open(cfg.Store)
		if err != nil {
			return err
		}
		defer s.Close()

		path := "cord19-summary.yaml"
		if len(args) == 1 {
			path = args[0]
		}
		run, _ := cmd.Flags().GetString("run")
		exp, err := s.ExportYAML(cmd.Context(), run, path)
		if err != nil {
			return err
		}
		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "Exported run %s to %s\n", exp.Run.ID, path)
		return nil
	},
}

// --- runs subcommand ---

var storeRunsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List saved runs, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		s, err := store.Open(cfg.Store)
		if err != nil {
			return err
		}
		defer s.Close()

		runs, err := s.Runs(cmd.Context())
		if err != nil {
			return err
		}
		table := tablewriter.NewWriter(cmd.OutOrStdout())
		table.SetHeader([]string{"Run", "Source", "Created", "Rows"})
		for _, r := range runs {
			table.Append([]string{r.ID, r.Source, r.CreatedAt.Format("2006-01-02 15:04:05"), strconv.Itoa(r.RowCount)})
		}
		table.Render()
		return nil
	},
}

func init() {
	storeCmd.PersistentFlags().String("store-dir", "", "directory containing cord19.db (default data)")
	_ = viper.BindPFlag("store.dir", storeCmd.PersistentFlags().Lookup("store-dir"))

	storeQueryCmd.Flags().String("run", "", "run id (default: most recent)")
	storeQueryCmd.Flags().Int("from", 0, "first year")
	storeQueryCmd.Flags().Int("to", 0, "last year")
	storeQueryCmd.Flags().String("journal", "", "filter by journal")
	storeQueryCmd.Flags().Int("limit", 0, "maximum number of results (default store.max_results)")
	storeQueryCmd.Flags().Bool("json", false, "output results as JSON")

	storeExportCmd.Flags().String("run", "", "run id (default: most recent)")

	storeCmd.AddCommand(storeSaveCmd, storeQueryCmd, storeExportCmd, storeRunsCmd)
	rootCmd.AddCommand(storeCmd)
}
