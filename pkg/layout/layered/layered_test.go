package layered

import (
	"math"
	"strings"
	"testing"

	"github.com/matzehuels/nodegraph/pkg/graph"
	"github.com/matzehuels/nodegraph/pkg/layout"
)

func TestParseBox(t *testing.T) {
	box, err := parseBox("0,0,424.5,122")
	if err != nil {
		t.Fatalf("parseBox: %v", err)
	}
	if box != [4]float64{0, 0, 424.5, 122} {
		t.Errorf("box = %v", box)
	}

	for _, in := range []string{"", "0,0,1", "0,0,a,1"} {
		if _, err := parseBox(in); err == nil {
			t.Errorf("parseBox(%q): expected error", in)
		}
	}
}

func TestParsePoint(t *testing.T) {
	tests := []struct {
		in   string
		want graph.Position
	}{
		{"117,18", graph.Position{X: 117, Y: 18}},
		{"329.5,97", graph.Position{X: 329.5, Y: 97}},
		{"10,20!", graph.Position{X: 10, Y: 20}},
	}
	for _, tt := range tests {
		got, err := parsePoint(tt.in)
		if err != nil {
			t.Errorf("parsePoint(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parsePoint(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}

	for _, in := range []string{"", "117", "x,18"} {
		if _, err := parsePoint(in); err == nil {
			t.Errorf("parsePoint(%q): expected error", in)
		}
	}
}

func TestRun(t *testing.T) {
	l := New(DefaultOptions())
	vertices, dot := l.ToDOT([]graph.Node{{ID: "a"}, {ID: "b"}}, []graph.Edge{{ID: "ab", Source: "a", Target: "b"}})

	centers, height, err := run(dot, vertices)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(centers) != 2 {
		t.Fatalf("got %d centers, want 2: %v", len(centers), centers)
	}
	a, b := centers[vertices["a"]], centers[vertices["b"]]
	if a.X >= b.X {
		t.Errorf("a should be left of b: %+v, %+v", a, b)
	}
	if a.Y != b.Y {
		t.Errorf("a and b should share a row: %v vs %v", a.Y, b.Y)
	}
	// A single row of default-height nodes fills the bounding box.
	if math.Abs(height-DefaultOptions().NodeHeightMin) > 1 {
		t.Errorf("height = %v, want about %v", height, DefaultOptions().NodeHeightMin)
	}
}

func TestToDOT(t *testing.T) {
	l := New(DefaultOptions())
	nodes := []graph.Node{
		{ID: "load data"},
		{ID: "train", Measured: &graph.Size{Width: 144, Height: 72}},
		{ID: "load data"},
	}
	edges := []graph.Edge{
		{ID: "e1", Source: "load data", Target: "train"},
		{ID: "e2", Source: "load data", Target: "missing"},
	}

	vertices, dot := l.ToDOT(nodes, edges)

	if len(vertices) != 2 || vertices["load data"] != "n0" || vertices["train"] != "n1" {
		t.Errorf("vertices = %v", vertices)
	}
	for _, want := range []string{
		"rankdir=LR;",
		"ranksep=0.6944;",
		"n0 [width=2.6389, height=0.6944];",
		"n1 [width=2.0000, height=1.0000];",
		"n0 -> n1;",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
	if strings.Count(dot, "->") != 1 {
		t.Errorf("dangling edge emitted:\n%s", dot)
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

func TestApplyChain(t *testing.T) {
	nodes := []graph.Node{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}}
	edges := []graph.Edge{
		{ID: "ab", Source: "a", Target: "b"},
		{ID: "ac", Source: "a", Target: "c"},
		{ID: "bd", Source: "b", Target: "d"},
		{ID: "cd", Source: "c", Target: "d"},
	}

	out, err := New(DefaultOptions()).Apply(nodes, edges)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	pos := map[string]graph.Position{}
	for _, n := range out {
		if n.Position == nil {
			t.Fatalf("%s has no position", n.ID)
		}
		if n.SourcePosition != graph.HandleRight || n.TargetPosition != graph.HandleLeft {
			t.Errorf("%s handles = %s/%s", n.ID, n.SourcePosition, n.TargetPosition)
		}
		pos[n.ID] = *n.Position
	}
	for _, e := range edges {
		if pos[e.Source].X >= pos[e.Target].X {
			t.Errorf("edge %s not left to right: %+v -> %+v", e.ID, pos[e.Source], pos[e.Target])
		}
	}
	if pos["b"].X != pos["c"].X {
		t.Errorf("b and c should share a rank: %v vs %v", pos["b"].X, pos["c"].X)
	}
	if pos["b"].Y == pos["c"].Y {
		t.Error("b and c overlap")
	}
	// The leftmost node starts at the translation offset.
	if math.Abs(pos["a"].X-DefaultOptions().OffsetX) > 0.01 {
		t.Errorf("a.x = %v, want %v", pos["a"].X, DefaultOptions().OffsetX)
	}
	if nodes[0].Position != nil {
		t.Error("input nodes were mutated")
	}
}

func TestRegistered(t *testing.T) {
	alg, err := layout.Lookup(Name)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if alg.Name() != Name {
		t.Errorf("Name() = %q", alg.Name())
	}
}
