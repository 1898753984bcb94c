package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/nodegraph/pkg/graph"
	"github.com/matzehuels/nodegraph/pkg/layout"
	"github.com/matzehuels/nodegraph/pkg/layout/pipeline"
)

const diamond = `{
  "nodes": [{"id": "A"}, {"id": "B"}, {"id": "C"}, {"id": "D"}],
  "edges": [
    {"id": "ab", "source": "A", "target": "B"},
    {"id": "ac", "source": "A", "target": "C"},
    {"id": "bd", "source": "B", "target": "D"},
    {"id": "cd", "source": "C", "target": "D"}
  ]
}`

func newTestServer(t *testing.T) (*httptest.Server, *Metrics) {
	t.Helper()
	r := layout.NewRegistry()
	r.Register(pipeline.Name, pipeline.New(pipeline.DefaultOptions()))
	m := NewMetrics()
	ts := httptest.NewServer(New(Options{Registry: r, Metrics: m}))
	t.Cleanup(ts.Close)
	return ts, m
}

func decodeError(t *testing.T, resp *http.Response) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestHealth(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestEngines(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/engines")
	require.NoError(t, err)
	defer resp.Body.Close()

	var body struct {
		Engines []string `json:"engines"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, []string{pipeline.Name}, body.Engines)
}

func TestLayout(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Post(ts.URL+"/layout/pipeline", "application/json", strings.NewReader(diamond))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	snap, err := graph.ReadSnapshot(resp.Body)
	require.NoError(t, err)
	require.Len(t, snap.Nodes, 4)
	assert.Len(t, snap.Edges, 4)

	got := map[string]graph.Position{}
	for _, n := range snap.Nodes {
		require.NotNil(t, n.Position, n.ID)
		got[n.ID] = *n.Position
	}
	assert.Equal(t, graph.Position{X: 50, Y: 50}, got["A"])
	assert.Equal(t, graph.Position{X: 320, Y: 120}, got["C"])
	assert.Equal(t, graph.Position{X: 590, Y: 50}, got["D"])
}

func TestLayoutUnknownEngine(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Post(ts.URL+"/layout/spring", "application/json", strings.NewReader(diamond))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	body := decodeError(t, resp)
	assert.Equal(t, "LAYOUT_NOT_FOUND", string(body.Error.Code))
	assert.Contains(t, body.Error.Message, "spring")
}

func TestLayoutMalformedSnapshot(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Post(ts.URL+"/layout/pipeline", "application/json", strings.NewReader(`{"nodes": [`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_SNAPSHOT", string(decodeError(t, resp).Error.Code))
}

func TestMetrics(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Post(ts.URL+"/layout/pipeline", "application/json", strings.NewReader(diamond))
	require.NoError(t, err)
	resp.Body.Close()

	resp, err = http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	text := string(body)
	assert.Contains(t, text, `nodegraph_layout_runs_total{engine="pipeline",outcome="ok"} 1`)
	assert.Contains(t, text, `nodegraph_store_mutations_total{op="layout"} 1`)
	assert.Contains(t, text, "nodegraph_layout_duration_seconds")
}
