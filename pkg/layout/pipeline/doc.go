// Package pipeline implements longest-path layouts tailored to dataflow
// pipelines.
//
// Nodes are assigned to layers by longest path: a node with no incoming edge
// sits in layer 0 and every other node sits one layer after its deepest
// predecessor. Layers become columns placed left to right; within a column
// nodes are stacked top to bottom in topological order.
//
// Two engines are registered in [layout.Default]:
//
//   - "pipeline": columns are top aligned at StartTop
//   - "pipeline.centered": every column is vertically centered against the
//     tallest one
//
// Hidden nodes take no part in the layout and are returned unchanged. Edges
// whose endpoints are not both laid out are ignored. The input is expected to
// be acyclic; nodes on a cycle are still placed deterministically but the
// strict left-to-right property no longer holds for them.
package pipeline
