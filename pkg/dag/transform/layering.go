package transform

import "github.com/matzehuels/nodegraph/pkg/dag"

// AssignLayers assigns nodes to rows (layers) by longest path and returns the
// topological order it processed them in.
//
// Nodes are visited in [dag.DAG.TopologicalOrder]. Each node is placed at one
// plus the maximum row of any already-placed parent, or row 0 when it has
// none. This guarantees that:
//   - Source nodes (no incoming edges) are at row 0
//   - Every edge points from a lower to a strictly higher row
//   - No node sits further along than its longest dependency chain requires
//
// Existing row assignments in the DAG are overwritten.
//
// # Cycles
//
// AssignLayers assumes the graph is acyclic. Nodes on a cycle are visited
// after all others, in insertion order, and only parents placed before them
// are considered. The result is deterministic but carries no guarantees.
//
// # Performance
//
// Time complexity is O(V + E).
func AssignLayers(g *dag.DAG) []string {
	order, _ := g.TopologicalOrder()
	rows := make(map[string]int, len(order))

	for _, id := range order {
		row := 0
		for _, parent := range g.Parents(id) {
			if pr, ok := rows[parent]; ok && pr+1 > row {
				row = pr + 1
			}
		}
		rows[id] = row
	}

	g.SetRows(rows)
	return order
}
