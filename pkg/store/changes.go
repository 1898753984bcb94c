package store

import (
	"errors"
	"fmt"

	"github.com/matzehuels/nodegraph/pkg/graph"
)

// ErrInvalidChange is returned when a change batch contains a change that
// cannot be applied. The whole batch is rejected.
var ErrInvalidChange = errors.New("invalid change")

// ChangeType identifies the kind of a [NodeChange] or [EdgeChange].
type ChangeType string

// Change types emitted by the editor.
const (
	ChangeAdd        ChangeType = "add"
	ChangeRemove     ChangeType = "remove"
	ChangeReplace    ChangeType = "replace"
	ChangePosition   ChangeType = "position"
	ChangeDimensions ChangeType = "dimensions"
	ChangeSelect     ChangeType = "select"
)

// NodeChange is one entry of a node change batch.
//
// Add and replace carry the node in Item. Position, dimensions and select
// address an existing node by ID. Changes addressing a missing node are
// skipped.
type NodeChange struct {
	Type       ChangeType      `json:"type"`
	ID         string          `json:"id,omitempty"`
	Item       *graph.Node     `json:"item,omitempty"`
	Position   *graph.Position `json:"position,omitempty"`
	Dimensions *graph.Size     `json:"dimensions,omitempty"`
	Selected   bool            `json:"selected,omitempty"`
}

// EdgeChange is one entry of an edge change batch.
type EdgeChange struct {
	Type     ChangeType  `json:"type"`
	ID       string      `json:"id,omitempty"`
	Item     *graph.Edge `json:"item,omitempty"`
	Selected bool        `json:"selected,omitempty"`
}

// AddNodeChange returns a change that adds n.
func AddNodeChange(n graph.Node) NodeChange { return NodeChange{Type: ChangeAdd, ID: n.ID, Item: &n} }

// RemoveNodeChange returns a change that removes the node id.
func RemoveNodeChange(id string) NodeChange { return NodeChange{Type: ChangeRemove, ID: id} }

// ReplaceNodeChange returns a change that replaces the node with n's id.
func ReplaceNodeChange(n graph.Node) NodeChange {
	return NodeChange{Type: ChangeReplace, ID: n.ID, Item: &n}
}

// PositionChange returns a change that moves the node id to p.
func PositionChange(id string, p graph.Position) NodeChange {
	return NodeChange{Type: ChangePosition, ID: id, Position: &p}
}

// DimensionsChange returns a change that records the measured size of id.
func DimensionsChange(id string, s graph.Size) NodeChange {
	return NodeChange{Type: ChangeDimensions, ID: id, Dimensions: &s}
}

// SelectNodeChange returns a change that sets the selection state of id.
func SelectNodeChange(id string, selected bool) NodeChange {
	return NodeChange{Type: ChangeSelect, ID: id, Selected: selected}
}

// AddEdgeChange returns a change that adds e.
func AddEdgeChange(e graph.Edge) EdgeChange { return EdgeChange{Type: ChangeAdd, ID: e.ID, Item: &e} }

// RemoveEdgeChange returns a change that removes the edge id.
func RemoveEdgeChange(id string) EdgeChange { return EdgeChange{Type: ChangeRemove, ID: id} }

// ReplaceEdgeChange returns a change that replaces the edge with e's id.
func ReplaceEdgeChange(e graph.Edge) EdgeChange {
	return EdgeChange{Type: ChangeReplace, ID: e.ID, Item: &e}
}

// SelectEdgeChange returns a change that sets the selection state of id.
func SelectEdgeChange(id string, selected bool) EdgeChange {
	return EdgeChange{Type: ChangeSelect, ID: id, Selected: selected}
}

func (c NodeChange) validate() error {
	switch c.Type {
	case ChangeAdd, ChangeReplace:
		if c.Item == nil || c.Item.ID == "" {
			return fmt.Errorf("%w: %s change without a node id", ErrInvalidChange, c.Type)
		}
	case ChangePosition:
		if c.Position == nil {
			return fmt.Errorf("%w: position change for %q without a position", ErrInvalidChange, c.ID)
		}
	case ChangeDimensions:
		if c.Dimensions == nil {
			return fmt.Errorf("%w: dimensions change for %q without dimensions", ErrInvalidChange, c.ID)
		}
	case ChangeRemove, ChangeSelect:
	default:
		return fmt.Errorf("%w: unknown node change type %q", ErrInvalidChange, c.Type)
	}
	return nil
}

func (c EdgeChange) validate() error {
	switch c.Type {
	case ChangeAdd, ChangeReplace:
		if c.Item == nil || c.Item.ID == "" {
			return fmt.Errorf("%w: %s change without an edge id", ErrInvalidChange, c.Type)
		}
	case ChangeRemove, ChangeSelect:
	default:
		return fmt.Errorf("%w: unknown edge change type %q", ErrInvalidChange, c.Type)
	}
	return nil
}

// applyNode applies c to t. Add and remove also update the membership of the
// focused group so nodes created inside a group stay in it.
func (t *tx) applyNode(c NodeChange) {
	switch c.Type {
	case ChangeAdd:
		t.writeNodes().put(c.Item.ID, c.Item.Clone())
		if t.state.focus != Root {
			t.writeMembers().add(t.state.focus, c.Item.ID)
		}
	case ChangeRemove:
		t.writeNodes().remove(c.ID)
		if t.state.focus != Root {
			t.writeMembers().remove(t.state.focus, c.ID)
		}
	case ChangeReplace:
		if t.state.nodes.has(c.Item.ID) {
			t.writeNodes().put(c.Item.ID, c.Item.Clone())
		}
	case ChangePosition:
		t.updateNode(c.ID, func(n *graph.Node) { n.Position = &graph.Position{X: c.Position.X, Y: c.Position.Y} })
	case ChangeDimensions:
		t.updateNode(c.ID, func(n *graph.Node) { n.Measured = &graph.Size{Width: c.Dimensions.Width, Height: c.Dimensions.Height} })
	case ChangeSelect:
		t.updateNode(c.ID, func(n *graph.Node) { n.Selected = c.Selected })
	}
}

func (t *tx) applyEdge(c EdgeChange) {
	switch c.Type {
	case ChangeAdd:
		t.writeEdges().put(c.Item.ID, c.Item.Clone())
	case ChangeRemove:
		t.writeEdges().remove(c.ID)
	case ChangeReplace:
		if t.state.edges.has(c.Item.ID) {
			t.writeEdges().put(c.Item.ID, c.Item.Clone())
		}
	case ChangeSelect:
		if e, ok := t.state.edges.get(c.ID); ok {
			e = e.Clone()
			e.Selected = c.Selected
			t.writeEdges().put(c.ID, e)
		}
	}
}
