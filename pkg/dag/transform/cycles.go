package transform

import "github.com/matzehuels/nodegraph/pkg/dag"

// BackEdges returns the edges that close a cycle during a depth-first search
// started from the sources and then from every unvisited node, in insertion
// order. Removing them leaves the graph acyclic.
func BackEdges(g *dag.DAG) [][2]string {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int)
	var backEdges [][2]string

	var dfs func(node string)
	dfs = func(node string) {
		color[node] = gray
		for _, child := range g.Children(node) {
			switch color[child] {
			case white:
				dfs(child)
			case gray:
				backEdges = append(backEdges, [2]string{node, child})
			}
		}
		color[node] = black
	}

	for _, n := range g.Sources() {
		if color[n.ID] == white {
			dfs(n.ID)
		}
	}

	for _, n := range g.Nodes() {
		if color[n.ID] == white {
			dfs(n.ID)
		}
	}

	return backEdges
}

// BreakCycles removes every back edge found by [BackEdges] and returns how
// many were removed.
func BreakCycles(g *dag.DAG) int {
	backEdges := BackEdges(g)
	for _, e := range backEdges {
		g.RemoveEdge(e[0], e[1])
	}
	return len(backEdges)
}
