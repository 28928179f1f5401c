// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/munyokii/cord19-explorer/internal/clean"
	"github.com/munyokii/cord19-explorer/internal/dashboard"
	"github.com/munyokii/cord19-explorer/internal/dataset"
	"github.com/munyokii/cord19-explorer/internal/explore"
	"github.com/munyokii/cord19-explorer/internal/logging"
	"github.com/munyokii/cord19-explorer/internal/visualize"
	"github.com/munyokii/cord19-explorer/pkg/types"
)

// loadCleaned loads cfg.Data.Path, optionally prints the exploration report
// to w, and returns the cleaned table.
func loadCleaned(cfg types.PipelineConfig, w io.Writer, report bool) (dataset.Table, error) {
	fmt.Fprintf(w, "Loading %s\n", cfg.Data.Path)
	raw, err := dataset.Load(cfg.Data.Path)
	if err != nil {
		return dataset.Table{}, err
	}

	if report {
		if err := explore.Report(w, raw, cfg.Explore.NullColumns); err != nil {
			return dataset.Table{}, fmt.Errorf("writing exploration report: %w", err)
		}
	}

	cleaned, err := clean.Clean(raw)
	if err != nil {
		return dataset.Table{}, fmt.Errorf("cleaning %s: %w", cfg.Data.Path, err)
	}
	fmt.Fprintf(w, "Cleaned: %d of %d rows kept\n", cleaned.Nrow(), raw.Nrow())
	return cleaned, nil
}

func runPipeline(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	noExplore, _ := cmd.Flags().GetBool("no-explore")

	out := cmd.OutOrStdout()
	cleaned, err := loadCleaned(cfg, out, cfg.Explore.Enabled && !noExplore)
	if err != nil {
		return err
	}

	if cfg.Mode == types.ModeDashboard {
		return serveDashboard(cmd.Context(), cfg, cleaned)
	}
	_, err = visualize.Run(cleaned, cfg, out)
	return err
}

// serveDashboard runs the dashboard until SIGINT or SIGTERM.
func serveDashboard(ctx context.Context, cfg types.PipelineConfig, t dataset.Table) error {
	log := logging.New(os.Stderr, cfg.Log.Level)
	srv, err := dashboard.New(t, cfg, log)
	if err != nil {
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	return srv.Run(ctx, func(addr string) {
		rng := srv.DefaultRange()
		log.Info("dashboard ready",
			slog.String("url", "http://"+displayAddr(addr)),
			slog.Int("from", rng.From), slog.Int("to", rng.To))
	})
}

// displayAddr turns a wildcard listen address into one a browser can open.
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	if len(addr) > 5 && addr[:5] == "[::]:" {
		return "localhost:" + addr[5:]
	}
	return addr
}
