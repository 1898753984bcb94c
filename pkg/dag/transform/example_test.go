package transform_test

import (
	"fmt"

	"github.com/matzehuels/nodegraph/pkg/dag"
	"github.com/matzehuels/nodegraph/pkg/dag/transform"
)

func ExampleAssignLayers() {
	// A fans out to B and C, which join again in D.
	g := dag.New()
	for _, id := range []string{"A", "B", "C", "D"} {
		_ = g.AddNode(dag.Node{ID: id})
	}
	_ = g.AddEdge(dag.Edge{From: "A", To: "B"})
	_ = g.AddEdge(dag.Edge{From: "A", To: "C"})
	_ = g.AddEdge(dag.Edge{From: "B", To: "D"})
	_ = g.AddEdge(dag.Edge{From: "C", To: "D"})

	order := transform.AssignLayers(g)
	fmt.Println("Order:", order)
	for _, row := range g.RowIDs() {
		fmt.Println("Row", row, dag.NodeIDs(g.NodesInRow(row)))
	}
	// Output:
	// Order: [A B C D]
	// Row 0 [A]
	// Row 1 [B C]
	// Row 2 [D]
}

func ExampleBreakCycles() {
	g := dag.New()
	_ = g.AddNode(dag.Node{ID: "a"})
	_ = g.AddNode(dag.Node{ID: "b"})
	_ = g.AddEdge(dag.Edge{From: "a", To: "b"})
	_ = g.AddEdge(dag.Edge{From: "b", To: "a"})

	fmt.Println("Removed:", transform.BreakCycles(g))
	fmt.Println("Valid:", g.Validate() == nil)
	// Output:
	// Removed: 1
	// Valid: true
}
