package store

import (
	ngerrors "github.com/matzehuels/nodegraph/pkg/errors"
	"github.com/matzehuels/nodegraph/pkg/graph"
)

// Snapshot returns copies of all nodes and edges.
func (s *Store) Snapshot() graph.Snapshot {
	return graph.Snapshot{Nodes: s.AllNodes(), Edges: s.AllEdges()}
}

// Serialize encodes all nodes and edges as a JSON snapshot. Focus and group
// membership are not included.
func (s *Store) Serialize() (string, error) {
	data, err := graph.MarshalSnapshot(s.Snapshot())
	if err != nil {
		return "", ngerrors.Wrap(ngerrors.ErrCodeInternal, err, "serialize graph")
	}
	return string(data), nil
}

// Deserialize replaces all nodes and edges with those of a JSON snapshot.
// Focus and group membership are kept. Malformed input fails with
// INVALID_SNAPSHOT and leaves the store untouched.
func (s *Store) Deserialize(data string) error {
	snap, err := graph.UnmarshalSnapshot([]byte(data))
	if err != nil {
		return ngerrors.Wrap(ngerrors.ErrCodeInvalidSnapshot, err, "deserialize graph")
	}
	s.Load(snap)
	return nil
}

// Load replaces all nodes and edges with those of snap.
func (s *Store) Load(snap graph.Snapshot) {
	_ = s.mutate("load", func(t *tx) error {
		nodes := collection[graph.Node]{items: make(map[string]graph.Node, len(snap.Nodes))}
		for _, n := range snap.Nodes {
			nodes.put(n.ID, n.Clone())
		}
		edges := collection[graph.Edge]{items: make(map[string]graph.Edge, len(snap.Edges))}
		for _, e := range snap.Edges {
			edges.put(e.ID, e.Clone())
		}
		t.state.nodes, t.dirtyNodes = nodes, true
		t.state.edges, t.dirtyEdges = edges, true
		return nil
	})
}
