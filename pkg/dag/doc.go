// Package dag provides an insertion-ordered directed graph used by the layout
// engines to layer the visible part of a node graph.
//
// # Overview
//
// Layout needs a stable view of the graph: the same input must always produce
// the same positions. Unlike a plain adjacency map, [DAG] remembers the order
// in which nodes and edges were added, and every query ([DAG.Nodes],
// [DAG.Children], [DAG.TopologicalOrder], [DAG.NodesInRow]) reports results in
// that order.
//
// # Basic Usage
//
//	g := dag.New()
//	g.AddNode(dag.Node{ID: "load"})
//	g.AddNode(dag.Node{ID: "resize"})
//	g.AddEdge(dag.Edge{From: "load", To: "resize"})
//
// Rows are assigned by the transform package ([transform.AssignLayers]) and
// stored back with [DAG.SetRows].
//
// # Cycles
//
// The type does not reject cycles on insertion. [DAG.Validate] reports them,
// and [DAG.TopologicalOrder] returns nodes on a cycle after every node it
// could order.
//
// # Concurrency
//
// DAG is not safe for concurrent use. Build one per layout run.
//
// [transform.AssignLayers]: github.com/matzehuels/nodegraph/pkg/dag/transform.AssignLayers
package dag
