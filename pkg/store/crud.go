package store

import (
	"fmt"

	"github.com/matzehuels/nodegraph/pkg/graph"
)

// GetNode returns a copy of the node with the given id.
func (s *Store) GetNode(id string) (graph.Node, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, ok := s.state.nodes.get(id)
	if !ok {
		return graph.Node{}, false
	}
	return n.Clone(), true
}

// GetEdge returns a copy of the edge with the given id.
func (s *Store) GetEdge(id string) (graph.Edge, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.state.edges.get(id)
	if !ok {
		return graph.Edge{}, false
	}
	return e.Clone(), true
}

// AddNode adds n. While a group is focused the node becomes a member of it.
func (s *Store) AddNode(n graph.Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	return s.mutate("add_node", func(t *tx) error {
		if t.state.nodes.has(n.ID) {
			return fmt.Errorf("%w: %q", ErrDuplicateNodeID, n.ID)
		}
		t.applyNode(AddNodeChange(n))
		return nil
	})
}

// RemoveNode removes the node id and reports whether it existed. While a
// group is focused the node also leaves that group.
func (s *Store) RemoveNode(id string) bool {
	removed := false
	_ = s.mutate("remove_node", func(t *tx) error {
		if !t.state.nodes.has(id) {
			return errUnchanged
		}
		t.applyNode(RemoveNodeChange(id))
		removed = true
		return nil
	})
	return removed
}

// UpdateNode replaces the node id with fn applied to a copy of it. The id
// cannot be changed. fn runs under the store lock and must not call the
// store.
func (s *Store) UpdateNode(id string, fn func(graph.Node) graph.Node) bool {
	updated := false
	_ = s.mutate("update_node", func(t *tx) error {
		updated = t.updateNode(id, func(n *graph.Node) { *n = fn(*n) })
		if !updated {
			return errUnchanged
		}
		return nil
	})
	return updated
}

// ReplaceNode replaces the node with n's id by n.
func (s *Store) ReplaceNode(n graph.Node) bool {
	return s.UpdateNode(n.ID, func(graph.Node) graph.Node { return n.Clone() })
}

// UpdateNodeData merges patch into the data of node id. A nil value deletes
// the key. Reports whether the node exists.
func (s *Store) UpdateNodeData(id string, patch map[string]any) bool {
	return s.UpdateNodeDataFunc(id, func(graph.Node) map[string]any { return patch })
}

// UpdateNodeDataFunc merges the patch returned by fn, which receives a copy
// of the current node, into its data.
func (s *Store) UpdateNodeDataFunc(id string, fn func(graph.Node) map[string]any) bool {
	updated := false
	_ = s.mutate("update_node_data", func(t *tx) error {
		updated = t.updateNode(id, func(n *graph.Node) { n.Data = n.Data.Merge(fn(n.Clone())) })
		if !updated {
			return errUnchanged
		}
		return nil
	})
	return updated
}

// AddEdge adds e. Endpoints are not validated; an edge whose endpoints are
// not both visible is simply not shown.
func (s *Store) AddEdge(e graph.Edge) error {
	if e.ID == "" {
		return ErrInvalidEdgeID
	}
	return s.mutate("add_edge", func(t *tx) error {
		if t.state.edges.has(e.ID) {
			return fmt.Errorf("%w: %q", ErrDuplicateEdgeID, e.ID)
		}
		t.applyEdge(AddEdgeChange(e))
		return nil
	})
}

// RemoveEdge removes the edge id and reports whether it existed.
func (s *Store) RemoveEdge(id string) bool {
	removed := false
	_ = s.mutate("remove_edge", func(t *tx) error {
		if !t.state.edges.has(id) {
			return errUnchanged
		}
		t.applyEdge(RemoveEdgeChange(id))
		removed = true
		return nil
	})
	return removed
}

// UpdateEdge replaces the edge id with fn applied to a copy of it. The id
// cannot be changed.
func (s *Store) UpdateEdge(id string, fn func(graph.Edge) graph.Edge) bool {
	updated := false
	_ = s.mutate("update_edge", func(t *tx) error {
		e, ok := t.state.edges.get(id)
		if !ok {
			return errUnchanged
		}
		e = fn(e.Clone())
		e.ID = id
		t.writeEdges().put(id, e)
		updated = true
		return nil
	})
	return updated
}

// ReplaceEdge replaces the edge with e's id by e.
func (s *Store) ReplaceEdge(e graph.Edge) bool {
	return s.UpdateEdge(e.ID, func(graph.Edge) graph.Edge { return e.Clone() })
}
