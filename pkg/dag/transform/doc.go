// Package transform provides graph algorithms that prepare a [dag.DAG] for
// layered layout.
//
// # Layering
//
// [AssignLayers] performs longest-path layering: every node is placed one
// row after the deepest of its parents, so sources sit in row 0 and every
// edge points to a strictly higher row. It returns the topological order it
// used, which layout engines reuse to order nodes within a row.
//
// # Cycles
//
// Layering assumes an acyclic graph. [BackEdges] lists the edges that close
// a cycle under a depth-first traversal and [BreakCycles] removes them.
// Neither is applied automatically by the layout engines: a cyclic input is a
// caller error there, and these functions exist for diagnostics.
//
// [dag.DAG]: github.com/matzehuels/nodegraph/pkg/dag.DAG
package transform
