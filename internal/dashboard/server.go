// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dashboard serves the interactive view of a cleaned table. The only
// control is a year range; every request recomputes the preview, the three
// aggregates and the charts for the requested window.
package dashboard

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/munyokii/cord19-explorer/internal/analyze"
	"github.com/munyokii/cord19-explorer/internal/dataset"
	"github.com/munyokii/cord19-explorer/internal/render"
	"github.com/munyokii/cord19-explorer/internal/visualize"
	"github.com/munyokii/cord19-explorer/pkg/types"
)

// PreviewColumns are shown in the preview table when present.
var PreviewColumns = []string{
	"cord_uid", types.ColTitle, types.ColJournal, types.ColPublishTime,
	types.ColYear, types.ColAbstractWordCount,
}

// Server holds the cleaned table and serves views of it. The table is only
// read, so handlers may run concurrently.
type Server struct {
	table    dataset.Table
	cfg      types.PipelineConfig
	bounds   types.YearRange
	hasYears bool
	log      *slog.Logger
	page     *template.Template
}

// New prepares a server for the cleaned table t.
func New(t dataset.Table, cfg types.PipelineConfig, log *slog.Logger) (*Server, error) {
	if err := t.Require(types.ColYear, types.ColJournal, types.ColTitle); err != nil {
		return nil, err
	}
	bounds, ok, err := analyze.YearBounds(t)
	if err != nil {
		return nil, fmt.Errorf("finding year bounds: %w", err)
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	page, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}
	return &Server{table: t, cfg: cfg, bounds: bounds, hasYears: ok, log: log, page: page}, nil
}

// Bounds returns the smallest and largest year in the data. ok is false when
// no row has a year.
func (s *Server) Bounds() (types.YearRange, bool) { return s.bounds, s.hasYears }

// DefaultRange is the configured default window clamped to the data.
func (s *Server) DefaultRange() types.YearRange {
	r := types.YearRange{From: s.cfg.Dashboard.DefaultFrom, To: s.cfg.Dashboard.DefaultTo}
	if !s.hasYears {
		return r
	}
	return r.Clamp(s.bounds)
}

// RangeFrom reads the from and to query parameters. Missing or malformed
// values fall back to the default window; the result is clamped to the data.
func (s *Server) RangeFrom(r *http.Request) types.YearRange {
	rng := s.DefaultRange()
	q := r.URL.Query()
	if v, err := strconv.Atoi(strings.TrimSpace(q.Get("from"))); err == nil {
		rng.From = v
	}
	if v, err := strconv.Atoi(strings.TrimSpace(q.Get("to"))); err == nil {
		rng.To = v
	}
	if !s.hasYears {
		return rng
	}
	return rng.Clamp(s.bounds)
}

// View is everything the page shows for one year window.
type View struct {
	Range   types.YearRange `json:"range"`
	Bounds  types.YearRange `json:"bounds"`
	Header  []string        `json:"preview_columns"`
	Preview [][]string      `json:"preview"`
	analyze.Summary

	YearChart    template.URL `json:"-"`
	JournalChart template.URL `json:"-"`
	WordCloud    template.URL `json:"-"`
}

// Compute filters the table to rng and recomputes every aggregate and chart.
// Charts are skipped when withCharts is false.
func (s *Server) Compute(rng types.YearRange, withCharts bool) (View, error) {
	filtered, err := analyze.FilterYears(s.table, rng)
	if err != nil {
		return View{}, err
	}
	head, err := filtered.Head(s.cfg.Dashboard.PreviewRows)
	if err != nil {
		return View{}, fmt.Errorf("building preview: %w", err)
	}
	summary, err := analyze.Summarize(filtered, analyze.Options{
		TopJournals: s.cfg.Analysis.TopJournals,
		MaxWords:    s.cfg.Analysis.MaxWords,
	})
	if err != nil {
		return View{}, fmt.Errorf("summarizing: %w", err)
	}

	v := View{Range: rng, Bounds: s.bounds, Summary: summary}
	v.Header, v.Preview = head.Cells(PreviewColumns...)
	if !withCharts {
		return v, nil
	}

	var sink render.MemorySink
	a, err := visualize.Render(summary, &sink)
	if err != nil {
		return View{}, err
	}
	v.YearChart = dataURI(&sink, a.YearChart)
	v.JournalChart = dataURI(&sink, a.JournalChart)
	v.WordCloud = dataURI(&sink, a.WordCloud)
	return v, nil
}

func dataURI(sink *render.MemorySink, name string) template.URL {
	if name == "" {
		return ""
	}
	data, ok := sink.Get(name)
	if !ok {
		return ""
	}
	return template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(data))
}

// Handler returns the router serving the dashboard.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handlePage)
	r.Get("/api/summary", s.handleSummary)
	r.Get("/health", s.handleHealth)
	return r
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "rows": s.table.Nrow()})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	rng := s.RangeFrom(r)
	v, err := s.Compute(rng, false)
	if err != nil {
		s.log.Error("computing summary", slog.Any("err", err), slog.Int("from", rng.From), slog.Int("to", rng.To))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	rng := s.RangeFrom(r)
	start := time.Now()
	v, err := s.Compute(rng, true)
	if err != nil {
		s.log.Error("rendering dashboard", slog.Any("err", err), slog.Int("from", rng.From), slog.Int("to", rng.To))
		http.Error(w, "rendering dashboard failed", http.StatusInternalServerError)
		return
	}
	s.log.Debug("dashboard rendered",
		slog.Int("from", rng.From), slog.Int("to", rng.To),
		slog.Int("rows", v.Rows), slog.Duration("took", time.Since(start)))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.page.Execute(w, v); err != nil {
		s.log.Error("writing dashboard", slog.Any("err", err))
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// Run serves the dashboard on cfg.Dashboard.Addr until ctx is cancelled,
// then shuts down gracefully. ready, when non-nil, receives the bound
// address once the listener is open.
func (s *Server) Run(ctx context.Context, ready func(addr string)) error {
	ln, err := net.Listen("tcp", s.cfg.Dashboard.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.cfg.Dashboard.Addr, err)
	}
	httpServer := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("dashboard starting", slog.String("addr", ln.Addr().String()))
		errCh <- httpServer.Serve(ln)
	}()
	if ready != nil {
		ready(ln.Addr().String())
	}

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving dashboard: %w", err)
	case <-ctx.Done():
	}

	s.log.Info("shutdown signal received")
	timeout := s.cfg.Dashboard.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down dashboard: %w", err)
	}
	return nil
}
