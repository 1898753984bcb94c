package transform

import (
	"testing"

	"github.com/matzehuels/nodegraph/pkg/dag"
)

func build(t *testing.T, ids []string, edges [][2]string) *dag.DAG {
	t.Helper()
	g := dag.New()
	for _, id := range ids {
		if err := g.AddNode(dag.Node{ID: id}); err != nil {
			t.Fatalf("AddNode(%s): %v", id, err)
		}
	}
	for _, e := range edges {
		if err := g.AddEdge(dag.Edge{From: e[0], To: e[1]}); err != nil {
			t.Fatalf("AddEdge(%v): %v", e, err)
		}
	}
	return g
}

func TestBreakCycles(t *testing.T) {
	tests := []struct {
		name        string
		ids         []string
		edges       [][2]string
		wantRemoved int
		wantEdges   int
	}{
		{"empty", nil, nil, 0, 0},
		{"single node", []string{"a"}, nil, 0, 0},
		{"chain", []string{"a", "b", "c"}, [][2]string{{"a", "b"}, {"b", "c"}}, 0, 2},
		{"two-cycle", []string{"a", "b"}, [][2]string{{"a", "b"}, {"b", "a"}}, 1, 1},
		{"triangle", []string{"a", "b", "c"}, [][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}}, 1, 2},
		{"self loop", []string{"a"}, [][2]string{{"a", "a"}}, 1, 0},
		{
			"disjoint cycles",
			[]string{"a", "b", "c", "d"},
			[][2]string{{"a", "b"}, {"b", "a"}, {"c", "d"}, {"d", "c"}},
			2, 2,
		},
		{
			"diamond",
			[]string{"a", "b", "c", "d"},
			[][2]string{{"a", "b"}, {"a", "c"}, {"b", "d"}, {"c", "d"}},
			0, 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := build(t, tt.ids, tt.edges)
			if removed := BreakCycles(g); removed != tt.wantRemoved {
				t.Errorf("BreakCycles() removed %d edges, want %d", removed, tt.wantRemoved)
			}
			if g.EdgeCount() != tt.wantEdges {
				t.Errorf("EdgeCount() = %d, want %d", g.EdgeCount(), tt.wantEdges)
			}
			if err := g.Validate(); err != nil {
				t.Errorf("Validate() after BreakCycles = %v", err)
			}
		})
	}
}

func TestBackEdgesReportsClosingEdge(t *testing.T) {
	g := build(t, []string{"a", "b", "c", "d"}, [][2]string{{"a", "b"}, {"b", "c"}, {"c", "d"}, {"d", "b"}})

	back := BackEdges(g)
	if len(back) != 1 || back[0] != [2]string{"d", "b"} {
		t.Errorf("BackEdges() = %v, want [[d b]]", back)
	}
	if g.EdgeCount() != 4 {
		t.Errorf("BackEdges must not modify the graph, EdgeCount() = %d", g.EdgeCount())
	}
}

func TestAssignLayers(t *testing.T) {
	tests := []struct {
		name  string
		ids   []string
		edges [][2]string
		want  map[string]int
	}{
		{
			name:  "diamond",
			ids:   []string{"A", "B", "C", "D"},
			edges: [][2]string{{"A", "B"}, {"A", "C"}, {"B", "D"}, {"C", "D"}},
			want:  map[string]int{"A": 0, "B": 1, "C": 1, "D": 2},
		},
		{
			name:  "longest path wins",
			ids:   []string{"a", "b", "c", "d"},
			edges: [][2]string{{"a", "b"}, {"b", "c"}, {"a", "d"}, {"c", "d"}},
			want:  map[string]int{"a": 0, "b": 1, "c": 2, "d": 3},
		},
		{
			name:  "isolated nodes",
			ids:   []string{"x", "y"},
			edges: nil,
			want:  map[string]int{"x": 0, "y": 0},
		},
		{
			name:  "insertion order does not matter",
			ids:   []string{"d", "c", "b", "a"},
			edges: [][2]string{{"a", "b"}, {"b", "c"}, {"c", "d"}},
			want:  map[string]int{"a": 0, "b": 1, "c": 2, "d": 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := build(t, tt.ids, tt.edges)
			order := AssignLayers(g)
			if len(order) != len(tt.ids) {
				t.Fatalf("order has %d ids, want %d", len(order), len(tt.ids))
			}
			for id, want := range tt.want {
				n, _ := g.Node(id)
				if n.Row != want {
					t.Errorf("row(%s) = %d, want %d", id, n.Row, want)
				}
			}
			for _, e := range g.Edges() {
				from, _ := g.Node(e.From)
				to, _ := g.Node(e.To)
				if from.Row >= to.Row {
					t.Errorf("edge %s->%s not strictly increasing: %d >= %d", e.From, e.To, from.Row, to.Row)
				}
			}
		})
	}
}

func TestAssignLayersCycleIsDeterministic(t *testing.T) {
	edges := [][2]string{{"s", "a"}, {"a", "b"}, {"b", "a"}}
	first := AssignLayers(build(t, []string{"s", "a", "b"}, edges))
	second := AssignLayers(build(t, []string{"s", "a", "b"}, edges))

	if len(first) != 3 {
		t.Fatalf("order = %v, want every node", first)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("orders differ: %v vs %v", first, second)
		}
	}
}
