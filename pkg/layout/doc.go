// Package layout defines the contract shared by automatic layout engines and
// the name-keyed registry they are looked up from.
//
// An [Algorithm] receives the nodes and edges of one view and returns the
// same nodes with Position, SourcePosition and TargetPosition assigned.
// Algorithms are deterministic for a fixed input, perform no I/O and never
// change any other node field.
//
// # Registry
//
// Engines are registered under a unique name. The package keeps a
// process-wide default [Registry]; the built-in engines add themselves to it
// from the init functions of their packages, so importing them is enough:
//
//	import (
//	    _ "github.com/matzehuels/nodegraph/pkg/layout/layered"
//	    _ "github.com/matzehuels/nodegraph/pkg/layout/pipeline"
//	)
//
//	nodes, err := layout.Apply("pipeline", nodes, edges)
//
// Looking up a name that was never registered fails with an error coded
// LAYOUT_NOT_FOUND. There is no fallback engine.
//
// # Subpackages
//
//   - [github.com/matzehuels/nodegraph/pkg/layout/pipeline]: longest-path
//     pipeline layout and its vertically centered variant
//   - [github.com/matzehuels/nodegraph/pkg/layout/layered]: general layered
//     layout computed by Graphviz dot
package layout
