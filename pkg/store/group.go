package store

import (
	"maps"
	"slices"

	ngerrors "github.com/matzehuels/nodegraph/pkg/errors"
	"github.com/matzehuels/nodegraph/pkg/graph"
)

// BoundaryOffsetX is the horizontal distance of the boundary nodes from the
// last grouped node.
const BoundaryOffsetX = 200

// Focus returns the focused group id, or [Root].
func (s *Store) Focus() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.focus
}

// SelectNodeGroup focuses the group id, or the root view for [Root]. An id
// that is not a group yields an empty view.
func (s *Store) SelectNodeGroup(id string) {
	_ = s.mutate("select_node_group", func(t *tx) error {
		t.state.focus = id
		return nil
	})
}

// Groups returns the ids of all groups in sorted order.
func (s *Store) Groups() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Sorted(maps.Keys(s.state.members))
}

// Members returns the member ids of group id in insertion order.
func (s *Store) Members(id string) ([]string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids, ok := s.state.members[id]
	return slices.Clone(ids), ok
}

// Membership returns a copy of the membership index.
func (s *Store) Membership() Membership {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.members.Clone()
}

// Group describes a group created by [Store.CreateNodeGroup].
type Group struct {
	ID      string
	Inputs  string // Input boundary node id
	Outputs string // Output boundary node id
	Members []string
}

// CreateNodeGroup groups the given nodes and focuses the new group.
//
// It adds a group node placed at the first listed node, an Input boundary 200
// units left of the last listed node and an Output boundary 200 units right
// of it. Nodes without a position count as the origin. Membership becomes the
// listed ids plus both boundaries.
//
// When another group is focused, the listed nodes leave it and the new group
// node joins it instead, which nests the new group inside the focused one.
//
// An empty list is a no-op returning the zero Group. Unknown ids fail with
// NODE_NOT_FOUND and leave the store untouched.
func (s *Store) CreateNodeGroup(nodeIDs ...string) (Group, error) {
	var group Group
	if len(nodeIDs) == 0 {
		return group, nil
	}
	err := s.mutate("create_node_group", func(t *tx) error {
		for _, id := range nodeIDs {
			if !t.state.nodes.has(id) {
				return ngerrors.New(ngerrors.ErrCodeNodeNotFound, "node %q not found", id)
			}
		}
		first, _ := t.state.nodes.get(nodeIDs[0])
		last, _ := t.state.nodes.get(nodeIDs[len(nodeIDs)-1])
		anchor, tail := first.PositionOrZero(), last.PositionOrZero()

		group.ID = s.uniqueID(t)
		t.writeNodes().put(group.ID, graph.Node{ID: group.ID, Type: graph.GroupNodeType, Position: graph.Pos(anchor.X, anchor.Y)})
		group.Inputs = s.uniqueID(t)
		t.writeNodes().put(group.Inputs, graph.Node{ID: group.Inputs, Type: graph.GroupInputsNodeType, Position: graph.Pos(tail.X-BoundaryOffsetX, tail.Y)})
		group.Outputs = s.uniqueID(t)
		t.writeNodes().put(group.Outputs, graph.Node{ID: group.Outputs, Type: graph.GroupOutputsNodeType, Position: graph.Pos(tail.X+BoundaryOffsetX, tail.Y)})

		members := t.writeMembers()
		if parent := t.state.focus; parent != Root {
			if _, ok := members[parent]; ok {
				members.remove(parent, nodeIDs...)
				members.add(parent, group.ID)
			}
		}
		members[group.ID] = nil
		members.add(group.ID, nodeIDs...)
		members.add(group.ID, group.Inputs, group.Outputs)
		group.Members = slices.Clone(members[group.ID])

		t.state.focus = group.ID
		return nil
	})
	if err != nil {
		return Group{}, err
	}
	s.logger.Info("created node group", "group", group.ID, "members", len(group.Members))
	return group, nil
}

// uniqueID draws ids until one is unused by any node or group.
func (s *Store) uniqueID(t *tx) string {
	for {
		id := s.newID()
		if id == "" || t.state.nodes.has(id) {
			continue
		}
		if _, ok := t.state.members[id]; ok {
			continue
		}
		return id
	}
}

// Ungroup dissolves group id. The group node, its boundary nodes and any edge
// touching them are removed; the remaining members return to the group that
// contained the group node, if any. When the dissolved group was focused,
// focus moves to that parent (or the root). Reports whether id was a group.
func (s *Store) Ungroup(id string) bool {
	dissolved := false
	_ = s.mutate("ungroup", func(t *tx) error {
		ids, ok := t.state.members[id]
		if !ok {
			return errUnchanged
		}

		removed := map[string]bool{id: true}
		var remaining []string
		for _, m := range ids {
			n, exists := t.state.nodes.get(m)
			if exists && (n.Type == graph.GroupInputsNodeType || n.Type == graph.GroupOutputsNodeType) {
				removed[m] = true
				continue
			}
			remaining = append(remaining, m)
		}

		members := t.writeMembers()
		parent, nested := members.ParentOf(id)
		delete(members, id)
		if nested {
			members.remove(parent, id)
			members.add(parent, remaining...)
		}

		for rid := range removed {
			t.writeNodes().remove(rid)
		}
		for _, e := range t.state.edges.values() {
			if removed[e.Source] || removed[e.Target] {
				t.writeEdges().remove(e.ID)
			}
		}

		if t.state.focus == id {
			t.state.focus = Root
			if nested {
				t.state.focus = parent
			}
		}
		dissolved = true
		return nil
	})
	return dissolved
}
