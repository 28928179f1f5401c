// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dashboard

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/munyokii/cord19-explorer/internal/clean"
	"github.com/munyokii/cord19-explorer/internal/dataset"
	"github.com/munyokii/cord19-explorer/pkg/types"
)

func newServer(t *testing.T, rows ...[]string) *Server {
	t.Helper()
	tbl, err := dataset.FromRecords(append([][]string{{"title", "abstract", "journal", "publish_time"}}, rows...))
	require.NoError(t, err)
	cleaned, err := clean.Clean(tbl)
	require.NoError(t, err)
	s, err := New(cleaned, types.DefaultPipelineConfig(), nil)
	require.NoError(t, err)
	return s
}

func papers() [][]string {
	return [][]string{
		{"Coronavirus spread in Wuhan", "a b", "Lancet", "2019-12-30"},
		{"Vaccine candidates for coronavirus", "c", "Nature", "2020-04-01"},
		{"Masks and transmission", "", "Lancet", "2020-06-01"},
		{"Long covid outcomes", "d e f", "BMJ", "2021-02-01"},
		{"Booster efficacy", "g", "BMJ", "2022-01-10"},
	}
}

func TestDefaultRange(t *testing.T) {
	s := newServer(t, papers()...)
	assert.Equal(t, types.YearRange{From: 2020, To: 2021}, s.DefaultRange())

	narrow := newServer(t, []string{"A", "", "J", "2021-03-01"}, []string{"B", "", "J", "2023-03-01"})
	assert.Equal(t, types.YearRange{From: 2021, To: 2021}, narrow.DefaultRange(), "clamped to data")

	late := newServer(t, []string{"A", "", "J", "2022-03-01"})
	assert.Equal(t, types.YearRange{From: 2022, To: 2022}, late.DefaultRange())
}

func TestRangeFrom(t *testing.T) {
	s := newServer(t, papers()...)

	tests := []struct {
		query string
		want  types.YearRange
	}{
		{"", types.YearRange{From: 2020, To: 2021}},
		{"?from=2019&to=2022", types.YearRange{From: 2019, To: 2022}},
		{"?from=1990&to=2050", types.YearRange{From: 2019, To: 2022}},
		{"?from=abc&to=2020", types.YearRange{From: 2020, To: 2020}},
		{"?from=2022&to=2019", types.YearRange{From: 2019, To: 2022}},
		{"?to=2022", types.YearRange{From: 2020, To: 2022}},
	}
	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/"+tt.query, nil)
		assert.Equal(t, tt.want, s.RangeFrom(r), "query %q", tt.query)
	}
}

func TestComputeRecomputesForRange(t *testing.T) {
	s := newServer(t, papers()...)

	v, err := s.Compute(types.YearRange{From: 2020, To: 2020}, false)
	require.NoError(t, err)
	assert.Equal(t, 2, v.Rows)
	assert.Equal(t, []types.YearCount{{Year: 2020, Count: 2}}, v.ByYear)
	assert.Equal(t, []types.JournalCount{{Journal: "Nature", Count: 1}, {Journal: "Lancet", Count: 1}}, v.TopJournals)
	assert.Len(t, v.Preview, 2)
	assert.Contains(t, v.Header, types.ColTitle)
	assert.Empty(t, v.YearChart)

	all, err := s.Compute(types.YearRange{From: 2019, To: 2022}, true)
	require.NoError(t, err)
	assert.Equal(t, 5, all.Rows)
	assert.Len(t, all.Preview, 5)
	assert.Contains(t, string(all.YearChart), "data:image/png;base64,")
	assert.NotEmpty(t, all.WordCloud)
}

func TestComputeEmptyWindowOmitsWordCloud(t *testing.T) {
	s := newServer(t, papers()...)

	v, err := s.Compute(types.YearRange{From: 2030, To: 2031}, true)
	require.NoError(t, err)
	assert.Equal(t, 0, v.Rows)
	assert.Empty(t, v.Preview)
	assert.NotEmpty(t, v.YearChart)
	assert.Empty(t, v.WordCloud)
}

func TestHandlers(t *testing.T) {
	srv := httptest.NewServer(newServer(t, papers()...).Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/api/summary?from=2021&to=2022")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got struct {
		Range  types.YearRange      `json:"range"`
		Rows   int                  `json:"rows"`
		ByYear []types.YearCount    `json:"by_year"`
		Top    []types.JournalCount `json:"top_journals"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, types.YearRange{From: 2021, To: 2022}, got.Range)
	assert.Equal(t, 2, got.Rows)
	assert.Equal(t, []types.JournalCount{{Journal: "BMJ", Count: 2}}, got.Top)

	page, err := http.Get(srv.URL + "/?from=2020&to=2020")
	require.NoError(t, err)
	defer page.Body.Close()
	body, err := io.ReadAll(page.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, page.StatusCode)
	assert.Contains(t, string(body), "CORD-19 Data Explorer")
	assert.Contains(t, string(body), "Masks and transmission")
	assert.Contains(t, string(body), "data:image/png;base64,")
}

func TestNewRequiresCleanedTable(t *testing.T) {
	tbl, err := dataset.FromRecords([][]string{{"title"}, {"A"}})
	require.NoError(t, err)
	_, err = New(tbl, types.DefaultPipelineConfig(), nil)
	var schemaErr *dataset.SchemaError
	assert.ErrorAs(t, err, &schemaErr)
}

func TestRunShutsDownOnCancel(t *testing.T) {
	s := newServer(t, papers()...)
	s.cfg.Dashboard.Addr = "127.0.0.1:0"

	ctx, cancel := context.WithCancel(context.Background())
	addrCh := make(chan string, 1)
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, func(addr string) { addrCh <- addr }) }()

	addr := <-addrCh
	resp, err := http.Get("http://" + addr + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
