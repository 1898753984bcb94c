// Package graph defines the node graph data model shared by the store and the
// layout engines, together with its JSON snapshot format.
//
// # Core Types
//
//   - [Node]: a typed vertex with an optional position and measured size
//   - [Edge]: a directed connection between two node handles
//   - [NodeData]: typed per-node fields plus an open extension map
//   - [Snapshot]: the persisted {nodes, edges} document
//
// # Snapshot Format
//
//	{
//	  "nodes": [
//	    {"id": "a", "type": "source", "position": {"x": 0, "y": 0}, "data": {"label": "A"}},
//	    {"id": "b", "type": "sink", "data": {}}
//	  ],
//	  "edges": [
//	    {"id": "a-b", "source": "a", "target": "b", "sourceHandle": "out", "targetHandle": null}
//	  ]
//	}
//
// The node "type" is opaque here; it is interpreted only by rendering and
// configuration collaborators. Group and boundary nodes use the reserved
// types [GroupNodeType], [GroupInputsNodeType] and [GroupOutputsNodeType].
//
// Group membership and the focused group are not part of a snapshot.
package graph
