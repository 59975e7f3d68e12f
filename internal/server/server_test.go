package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*httptest.Server, *Metrics) {
	t.Helper()
	m := NewMetrics()
	h := NewHandler(m)
	h.now = func() time.Time { return time.Date(2024, 10, 1, 12, 0, 0, 0, time.UTC) }
	srv := httptest.NewServer(NewRouter(h))
	t.Cleanup(srv.Close)
	return srv, m
}

func post(t *testing.T, srv *httptest.Server, path, body string) (int, map[string]any) {
	t.Helper()
	resp, err := http.Post(srv.URL+path, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var got map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	return resp.StatusCode, got
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	var got map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, map[string]string{"status": "ok", "timestamp": "2024-10-01T12:00:00Z"}, got)
}

func TestAnalyze(t *testing.T) {
	srv, m := newTestServer(t)

	status, got := post(t, srv, "/analyze", `{"n": 4, "edges": [[1, 2], [2, 3], [3, 4], [4, 1], [4, 5]], "algorithm": "dfs"}`)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1.0, got["components"])
	assert.Len(t, got["nodes"], 4)
	assert.Len(t, got["links"], 4)
	info := got["componentInfo"].([]any)
	require.Len(t, info, 1)
	assert.Equal(t, 4.0, info[0].(map[string]any)["edges"])
	stats := got["statistics"].(map[string]any)
	assert.Equal(t, "dfs", stats["algorithm"])
	assert.Equal(t, 4.0, stats["totalEdges"])
	assert.Regexp(t, `^\d+ms$`, stats["executionTime"])

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Analyses.WithLabelValues("dfs", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests.WithLabelValues("/analyze", "200")))
}

func TestAnalyze_defaultAlgorithm(t *testing.T) {
	srv, _ := newTestServer(t)

	status, got := post(t, srv, "/analyze", `{"n": 3, "edges": []}`)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 3.0, got["components"])
	assert.Equal(t, "bfs", got["statistics"].(map[string]any)["algorithm"])
}

func TestAnalyze_badRequest(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"n zero", `{"n": 0, "edges": []}`, "invalid n"},
		{"n absent", `{"edges": []}`, "invalid n"},
		{"edges absent", `{"n": 3}`, "edges must be"},
		{"edge not a pair", `{"n": 3, "edges": [[1, 2, 3]]}`, "edges must be"},
		{"unknown algorithm", `{"n": 3, "edges": [], "algorithm": "prim"}`, "unknown algorithm"},
		{"malformed json", `{"n": 3,`, "invalid request body"},
		{"edges not an array", `{"n": 3, "edges": "1-2"}`, "invalid request body"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, m := newTestServer(t)

			status, got := post(t, srv, "/analyze", tt.body)

			assert.Equal(t, http.StatusBadRequest, status)
			assert.Contains(t, got["error"], tt.want)
			assert.NotContains(t, got, "components")
			assert.Equal(t, 0.0, testutil.ToFloat64(m.Analyses.WithLabelValues("bfs", "ok")))
		})
	}
}

func TestAnalyze_tooManyEdges(t *testing.T) {
	srv, m := newTestServer(t)
	body := `{"n": 2, "edges": [` + strings.Repeat(`[1,2],`, 200_000) + `[1,2]]}`

	status, got := post(t, srv, "/analyze", body)

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, got["error"], "too many edges")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Analyses.WithLabelValues("bfs", "rejected")))
}

func TestAnalyze_unknownAlgorithmLabel(t *testing.T) {
	srv, m := newTestServer(t)

	for i := range 5 {
		status, _ := post(t, srv, "/analyze", fmt.Sprintf(`{"n": 3, "edges": [], "algorithm": "junk-%d"}`, i))
		assert.Equal(t, http.StatusBadRequest, status)
	}

	assert.Equal(t, 1, testutil.CollectAndCount(m.Analyses))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.Analyses.WithLabelValues("unknown", "rejected")))
}

func TestCompare(t *testing.T) {
	srv, m := newTestServer(t)

	status, got := post(t, srv, "/compare", `{"n": 5, "edges": [[1, 2], [3, 4], [4, 9]]}`)

	assert.Equal(t, http.StatusOK, status)
	require.Len(t, got, 3)
	for _, name := range []string{"bfs", "dfs", "union-find"} {
		timing := got[name].(map[string]any)
		assert.Equal(t, 3.0, timing["components"], name)
		assert.Contains(t, timing, "time")
		assert.NotContains(t, timing, "Partition")
		assert.Equal(t, 1.0, testutil.ToFloat64(m.Analyses.WithLabelValues(name, "ok")))
	}
	assert.Equal(t, 3, testutil.CollectAndCount(m.AnalysisDuration))
}

func TestCompare_badRequest(t *testing.T) {
	srv, m := newTestServer(t)

	status, got := post(t, srv, "/compare", `{"n": 100001, "edges": []}`)

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, got["error"], "invalid n")
	for _, name := range []string{"bfs", "dfs", "union-find"} {
		assert.Equal(t, 1.0, testutil.ToFloat64(m.Analyses.WithLabelValues(name, "rejected")), name)
	}
	assert.Equal(t, 3, testutil.CollectAndCount(m.Analyses))
}

func TestMetricsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)
	post(t, srv, "/analyze", `{"n": 1, "edges": []}`)

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	var buf strings.Builder
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, buf.String(), `clusters_analyses_total{algorithm="bfs",outcome="ok"} 1`)
}

func TestCORS(t *testing.T) {
	srv, _ := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/analyze", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
