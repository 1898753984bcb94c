package pipeline

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/matzehuels/nodegraph/pkg/dag"
	"github.com/matzehuels/nodegraph/pkg/graph"
	"github.com/matzehuels/nodegraph/pkg/layout"
)

func diamond() ([]graph.Node, []graph.Edge) {
	nodes := []graph.Node{{ID: "A"}, {ID: "B"}, {ID: "C"}, {ID: "D"}}
	edges := []graph.Edge{
		{ID: "ab", Source: "A", Target: "B"},
		{ID: "ac", Source: "A", Target: "C"},
		{ID: "bd", Source: "B", Target: "D"},
		{ID: "cd", Source: "C", Target: "D"},
	}
	return nodes, edges
}

func positions(nodes []graph.Node) map[string]graph.Position {
	m := make(map[string]graph.Position, len(nodes))
	for _, n := range nodes {
		if n.Position != nil {
			m[n.ID] = *n.Position
		}
	}
	return m
}

func TestColumnsDiamond(t *testing.T) {
	g := dag.New()
	for _, id := range []string{"A", "B", "C", "D"} {
		_ = g.AddNode(dag.Node{ID: id})
	}
	_ = g.AddEdge(dag.Edge{From: "A", To: "B"})
	_ = g.AddEdge(dag.Edge{From: "A", To: "C"})
	_ = g.AddEdge(dag.Edge{From: "B", To: "D"})
	_ = g.AddEdge(dag.Edge{From: "C", To: "D"})

	got := fmt.Sprint(Columns(g))
	if want := "[[A] [B C] [D]]"; got != want {
		t.Errorf("Columns = %s, want %s", got, want)
	}
}

func TestApplyDiamond(t *testing.T) {
	nodes, edges := diamond()

	out, err := New(DefaultOptions()).Apply(nodes, edges)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	want := map[string]graph.Position{
		"A": {X: 50, Y: 50},
		"B": {X: 320, Y: 50},
		"C": {X: 320, Y: 120},
		"D": {X: 590, Y: 50},
	}
	got := positions(out)
	for id, w := range want {
		if got[id] != w {
			t.Errorf("%s = %+v, want %+v", id, got[id], w)
		}
	}
	for _, n := range out {
		if n.SourcePosition != graph.HandleRight || n.TargetPosition != graph.HandleLeft {
			t.Errorf("%s handles = %s/%s, want right/left", n.ID, n.SourcePosition, n.TargetPosition)
		}
	}
	if nodes[0].Position != nil {
		t.Error("input nodes were mutated")
	}
}

func TestApplyCenteredDiamond(t *testing.T) {
	nodes, edges := diamond()
	opts := DefaultOptions()
	opts.Centered = true

	out, err := New(opts).Apply(nodes, edges)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	want := map[string]float64{"A": 85, "B": 50, "C": 120, "D": 85}
	got := positions(out)
	for id, y := range want {
		if got[id].Y != y {
			t.Errorf("%s.y = %v, want %v", id, got[id].Y, y)
		}
	}
}

func TestApplyWidestNodeCarriesForward(t *testing.T) {
	nodes, edges := diamond()
	nodes[0].Measured = &graph.Size{Width: 300, Height: 80}

	out, err := New(DefaultOptions()).Apply(nodes, edges)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	got := positions(out)
	tests := []struct {
		id   string
		want graph.Position
	}{
		{"A", graph.Position{X: 50, Y: 50}},
		{"B", graph.Position{X: 430, Y: 50}},
		{"C", graph.Position{X: 430, Y: 120}},
		{"D", graph.Position{X: 810, Y: 50}},
	}
	for _, tt := range tests {
		if got[tt.id] != tt.want {
			t.Errorf("%s = %+v, want %+v", tt.id, got[tt.id], tt.want)
		}
	}
}

func TestApplyHiddenNodesUntouched(t *testing.T) {
	nodes := []graph.Node{
		{ID: "a"},
		{ID: "h", Hidden: true, Position: graph.Pos(-1, -1)},
		{ID: "b"},
	}
	edges := []graph.Edge{
		{ID: "ah", Source: "a", Target: "h"},
		{ID: "hb", Source: "h", Target: "b"},
	}

	out, err := New(DefaultOptions()).Apply(nodes, edges)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("len = %d, want 3", len(out))
	}
	if *out[1].Position != (graph.Position{X: -1, Y: -1}) || out[1].SourcePosition != "" {
		t.Errorf("hidden node changed: %+v", out[1])
	}
	// With h excluded, a and b are both sources stacked in the first column.
	if got := positions(out)["b"]; got != (graph.Position{X: 50, Y: 120}) {
		t.Errorf("b = %+v, want {50 120}", got)
	}
}

func TestApplyIgnoresDanglingEdges(t *testing.T) {
	nodes := []graph.Node{{ID: "a"}, {ID: "b"}}
	edges := []graph.Edge{
		{ID: "xa", Source: "x", Target: "a"},
		{ID: "ab", Source: "a", Target: "b"},
	}

	out, err := New(DefaultOptions()).Apply(nodes, edges)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	got := positions(out)
	if got["a"].X != 50 || got["b"].X != 320 {
		t.Errorf("positions = %+v", got)
	}
}

func TestApplyEmpty(t *testing.T) {
	out, err := New(DefaultOptions()).Apply(nil, nil)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("len = %d, want 0", len(out))
	}
}

func TestApplyCycleIsDeterministic(t *testing.T) {
	nodes := []graph.Node{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	edges := []graph.Edge{
		{ID: "ab", Source: "a", Target: "b"},
		{ID: "bc", Source: "b", Target: "c"},
		{ID: "cb", Source: "c", Target: "b"},
	}

	first, _ := New(DefaultOptions()).Apply(nodes, edges)
	for range 5 {
		again, _ := New(DefaultOptions()).Apply(nodes, edges)
		if fmt.Sprint(positions(first)) != fmt.Sprint(positions(again)) {
			t.Fatal("layout of a cyclic graph is not deterministic")
		}
	}
	for _, n := range first {
		if n.Position == nil {
			t.Errorf("%s has no position", n.ID)
		}
	}
}

// randomDAG returns n nodes with random edges from lower to higher index.
func randomDAG(r *rand.Rand, n int) ([]graph.Node, []graph.Edge) {
	nodes := make([]graph.Node, n)
	for i := range nodes {
		nodes[i] = graph.Node{ID: fmt.Sprintf("n%d", i)}
		if r.IntN(3) == 0 {
			nodes[i].Measured = &graph.Size{Width: float64(100 + r.IntN(200)), Height: float64(30 + r.IntN(60))}
		}
	}
	var edges []graph.Edge
	for i := range n {
		for j := i + 1; j < n; j++ {
			if r.IntN(4) == 0 {
				edges = append(edges, graph.Edge{
					ID:     fmt.Sprintf("e%d-%d", i, j),
					Source: nodes[i].ID,
					Target: nodes[j].ID,
				})
			}
		}
	}
	// Shuffle input order so topological order differs from index order.
	r.Shuffle(len(nodes), func(i, j int) { nodes[i], nodes[j] = nodes[j], nodes[i] })
	return nodes, edges
}

func TestLayerProperties(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for iter := range 50 {
		nodes, edges := randomDAG(r, 2+r.IntN(15))

		out, err := New(DefaultOptions()).Apply(nodes, edges)
		if err != nil {
			t.Fatalf("iter %d: %v", iter, err)
		}
		pos := positions(out)

		hasIncoming := map[string]bool{}
		for _, e := range edges {
			hasIncoming[e.Target] = true
			if pos[e.Source].X >= pos[e.Target].X {
				t.Errorf("iter %d: edge %s goes from x=%v to x=%v", iter, e.ID, pos[e.Source].X, pos[e.Target].X)
			}
		}
		for _, n := range out {
			if !hasIncoming[n.ID] && pos[n.ID].X != DefaultStartLeft {
				t.Errorf("iter %d: source %s at x=%v, want first column", iter, n.ID, pos[n.ID].X)
			}
		}
	}
}

func TestCenteredMidpoints(t *testing.T) {
	opts := DefaultOptions()
	opts.Centered = true
	r := rand.New(rand.NewPCG(3, 4))

	for iter := range 50 {
		nodes, edges := randomDAG(r, 2+r.IntN(15))

		out, err := New(opts).Apply(nodes, edges)
		if err != nil {
			t.Fatalf("iter %d: %v", iter, err)
		}

		top := map[float64]float64{}
		bottom := map[float64]float64{}
		for _, n := range out {
			x := n.Position.X
			h := n.SizeOr(graph.Size{Width: opts.NodeWidthMin, Height: opts.NodeHeightMin}).Height
			if t0, ok := top[x]; !ok || n.Position.Y < t0 {
				top[x] = n.Position.Y
			}
			bottom[x] = max(bottom[x], n.Position.Y+h)
		}

		var mid float64
		first := true
		for x := range top {
			m := (top[x] + bottom[x]) / 2
			if first {
				mid, first = m, false
				continue
			}
			if d := m - mid; d > 1e-9 || d < -1e-9 {
				t.Errorf("iter %d: column x=%v midpoint %v, want %v", iter, x, m, mid)
			}
		}
	}
}

func TestRegisteredEngines(t *testing.T) {
	tests := []struct {
		name     string
		centered bool
	}{
		{Name, false},
		{CenteredName, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alg, err := layout.Lookup(tt.name)
			if err != nil {
				t.Fatalf("Lookup: %v", err)
			}
			if alg.Name() != tt.name {
				t.Errorf("Name() = %q", alg.Name())
			}
			if got := alg.(*Layout).Options().Centered; got != tt.centered {
				t.Errorf("Centered = %v, want %v", got, tt.centered)
			}
		})
	}
}
