package store

import "github.com/matzehuels/nodegraph/pkg/graph"

// Root is the focus value of the top-level view.
const Root = ""

// View is the visible subset of the graph under one focus.
type View struct {
	Focus string
	Nodes []graph.Node
	Edges []graph.Edge
}

// Clone returns a copy of v that shares no mutable state with it.
func (v View) Clone() View {
	out := View{
		Focus: v.Focus,
		Nodes: make([]graph.Node, len(v.Nodes)),
		Edges: make([]graph.Edge, len(v.Edges)),
	}
	for i, n := range v.Nodes {
		out.Nodes[i] = n.Clone()
	}
	for i, e := range v.Edges {
		out.Edges[i] = e.Clone()
	}
	return out
}

// Resolve derives the visible nodes and edges.
//
// With focus set to a group id, the visible nodes are the members of that
// group that exist in nodes; an unknown group yields an empty view. At [Root]
// the visible nodes are those that belong to no group. Edges are visible when
// both endpoints are visible nodes, so edges referencing missing nodes never
// show. Input order is preserved and the inputs are not copied.
func Resolve(focus string, members Membership, nodes []graph.Node, edges []graph.Edge) ([]graph.Node, []graph.Edge) {
	var keep func(id string) bool
	if focus != Root {
		set := make(map[string]bool, len(members[focus]))
		for _, id := range members[focus] {
			set[id] = true
		}
		keep = func(id string) bool { return set[id] }
	} else {
		grouped := members.Union()
		keep = func(id string) bool { return !grouped[id] }
	}

	visible := make(map[string]bool)
	outNodes := make([]graph.Node, 0, len(nodes))
	for _, n := range nodes {
		if keep(n.ID) {
			outNodes = append(outNodes, n)
			visible[n.ID] = true
		}
	}

	outEdges := make([]graph.Edge, 0, len(edges))
	for _, e := range edges {
		if visible[e.Source] && visible[e.Target] {
			outEdges = append(outEdges, e)
		}
	}
	return outNodes, outEdges
}
