// Package layered lays out graphs with the layered (Sugiyama style) placement
// of Graphviz dot.
//
// The adapter mirrors the nodes and edges into a DOT graph with rankdir=LR,
// sizes every vertex from the node's measured size (or the default minimum),
// runs dot through [github.com/goccy/go-graphviz] and reads the computed
// vertex centers back from dot's own output. Graphviz anchors nodes at their
// center on a y-up canvas; the adapter flips y, converts to the top-left
// anchor used by the editor and translates by (OffsetX, OffsetY).
//
// Every node gets SourcePosition=right and TargetPosition=left. The engine is
// registered in [layout.Default] as "layered".
package layered
