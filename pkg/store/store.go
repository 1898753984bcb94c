package store

import (
	"errors"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/nodegraph/pkg/graph"
	"github.com/matzehuels/nodegraph/pkg/layout"
	"github.com/matzehuels/nodegraph/pkg/observability"
)

var (
	// ErrInvalidNodeID is returned by [Store.AddNode] when the node ID is empty.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Store.AddNode] when a node with the
	// same ID already exists.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrInvalidEdgeID is returned by [Store.AddEdge] when the edge ID is empty.
	ErrInvalidEdgeID = errors.New("edge ID must not be empty")

	// ErrDuplicateEdgeID is returned by [Store.AddEdge] when an edge with the
	// same ID already exists.
	ErrDuplicateEdgeID = errors.New("duplicate edge ID")
)

// errUnchanged aborts a mutation without committing or notifying.
var errUnchanged = errors.New("unchanged")

type state struct {
	nodes   collection[graph.Node]
	edges   collection[graph.Edge]
	members Membership
	focus   string
}

// tx is a pending mutation. Collections are cloned on first write.
type tx struct {
	state                                state
	dirtyNodes, dirtyEdges, dirtyMembers bool
}

func (t *tx) writeNodes() *collection[graph.Node] {
	if !t.dirtyNodes {
		t.state.nodes = t.state.nodes.clone()
		t.dirtyNodes = true
	}
	return &t.state.nodes
}

func (t *tx) writeEdges() *collection[graph.Edge] {
	if !t.dirtyEdges {
		t.state.edges = t.state.edges.clone()
		t.dirtyEdges = true
	}
	return &t.state.edges
}

func (t *tx) writeMembers() Membership {
	if !t.dirtyMembers {
		t.state.members = t.state.members.Clone()
		t.dirtyMembers = true
	}
	return t.state.members
}

// updateNode applies fn to a copy of node id and stores it.
func (t *tx) updateNode(id string, fn func(*graph.Node)) bool {
	n, ok := t.state.nodes.get(id)
	if !ok {
		return false
	}
	n = n.Clone()
	fn(&n)
	n.ID = id
	t.writeNodes().put(id, n)
	return true
}

// Store holds the nodes, edges, group membership and focus of one editor
// session. It is safe for concurrent use.
//
// The zero value is not usable - use New.
type Store struct {
	mu    sync.RWMutex
	state state
	view  View

	logger      *log.Logger
	hooks       observability.StoreHooks
	layoutHooks observability.LayoutHooks
	registry    *layout.Registry
	newID       func() string

	listeners    map[int]func(View)
	nextListener int
	autoLaidOut  bool
}

// Option configures a Store.
type Option func(*Store)

// WithNodes seeds the store with nodes. Later duplicates replace earlier ones.
func WithNodes(nodes ...graph.Node) Option {
	return func(s *Store) {
		for _, n := range nodes {
			s.state.nodes.put(n.ID, n.Clone())
		}
	}
}

// WithEdges seeds the store with edges. Later duplicates replace earlier ones.
func WithEdges(edges ...graph.Edge) Option {
	return func(s *Store) {
		for _, e := range edges {
			s.state.edges.put(e.ID, e.Clone())
		}
	}
}

// WithLogger sets the logger mutations are reported to at debug level.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithHooks sets the store hooks. Without it the globally registered
// [observability.Store] hooks are used.
func WithHooks(h observability.StoreHooks) Option {
	return func(s *Store) { s.hooks = h }
}

// WithLayoutHooks sets the layout hooks fired by [Store.Layout]. Without it
// the globally registered [observability.Layout] hooks are used.
func WithLayoutHooks(h observability.LayoutHooks) Option {
	return func(s *Store) { s.layoutHooks = h }
}

// WithRegistry sets the registry [Store.Layout] looks engines up in.
// Defaults to [layout.Default].
func WithRegistry(r *layout.Registry) Option {
	return func(s *Store) {
		if r != nil {
			s.registry = r
		}
	}
}

// WithIDGenerator sets the function used to create ids for group and
// boundary nodes. Defaults to random UUIDs.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// New creates a store focused on [Root].
func New(opts ...Option) *Store {
	s := &Store{
		state: state{
			nodes:   collection[graph.Node]{items: map[string]graph.Node{}},
			edges:   collection[graph.Edge]{items: map[string]graph.Edge{}},
			members: Membership{},
		},
		logger:    log.NewWithOptions(io.Discard, log.Options{}),
		registry:  layout.Default(),
		newID:     uuid.NewString,
		listeners: make(map[int]func(View)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.view = s.resolve(s.state)
	return s
}

func (s *Store) resolve(st state) View {
	nodes, edges := Resolve(st.focus, st.members, st.nodes.values(), st.edges.values())
	return View{Focus: st.focus, Nodes: nodes, Edges: edges}
}

func (s *Store) storeHooks() observability.StoreHooks {
	if s.hooks != nil {
		return s.hooks
	}
	return observability.Store()
}

func (s *Store) layoutHooksOrGlobal() observability.LayoutHooks {
	if s.layoutHooks != nil {
		return s.layoutHooks
	}
	return observability.Layout()
}

// mutate runs fn on a pending transaction and commits it when fn succeeds.
// Returning errUnchanged discards the transaction without error.
func (s *Store) mutate(kind string, fn func(*tx) error) error {
	s.mu.Lock()
	t := &tx{state: s.state}
	if err := fn(t); err != nil {
		s.mu.Unlock()
		if errors.Is(err, errUnchanged) {
			return nil
		}
		return err
	}
	s.state = t.state
	s.view = s.resolve(s.state)
	view := s.view
	listeners := make([]func(View), 0, len(s.listeners))
	for id := 0; id < s.nextListener; id++ {
		if fn, ok := s.listeners[id]; ok {
			listeners = append(listeners, fn)
		}
	}
	s.mu.Unlock()

	s.logger.Debug("graph mutated", "op", kind, "focus", view.Focus, "nodes", len(view.Nodes), "edges", len(view.Edges))
	s.storeHooks().OnMutation(kind, len(view.Nodes), len(view.Edges))
	for _, fn := range listeners {
		fn(view.Clone())
	}
	return nil
}

// Subscribe registers fn to receive the visible subset after every committed
// mutation and returns a function that unregisters it.
func (s *Store) Subscribe(fn func(View)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextListener
	s.nextListener++
	s.listeners[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// View returns a copy of the visible subset.
func (s *Store) View() View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view.Clone()
}

// Nodes returns copies of the visible nodes.
func (s *Store) Nodes() []graph.Node { return s.View().Nodes }

// Edges returns copies of the visible edges.
func (s *Store) Edges() []graph.Edge { return s.View().Edges }

// AllNodes returns copies of every node in insertion order.
func (s *Store) AllNodes() []graph.Node {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneNodes(s.state.nodes.values())
}

// AllEdges returns copies of every edge in insertion order.
func (s *Store) AllEdges() []graph.Edge {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneEdges(s.state.edges.values())
}

func cloneNodes(nodes []graph.Node) []graph.Node {
	for i := range nodes {
		nodes[i] = nodes[i].Clone()
	}
	return nodes
}

func cloneEdges(edges []graph.Edge) []graph.Edge {
	for i := range edges {
		edges[i] = edges[i].Clone()
	}
	return edges
}

// SetNodes replaces every node with the result of fn, which receives copies
// of all nodes in insertion order. Later duplicates in the result replace
// earlier ones. fn runs under the store lock and must not call the store.
func (s *Store) SetNodes(fn func([]graph.Node) []graph.Node) {
	_ = s.mutate("set_nodes", func(t *tx) error {
		next := fn(cloneNodes(t.state.nodes.values()))
		c := collection[graph.Node]{items: make(map[string]graph.Node, len(next))}
		for _, n := range next {
			c.put(n.ID, n.Clone())
		}
		t.state.nodes, t.dirtyNodes = c, true
		return nil
	})
}

// SetEdges replaces every edge with the result of fn, which receives copies
// of all edges in insertion order. fn runs under the store lock and must not
// call the store.
func (s *Store) SetEdges(fn func([]graph.Edge) []graph.Edge) {
	_ = s.mutate("set_edges", func(t *tx) error {
		next := fn(cloneEdges(t.state.edges.values()))
		c := collection[graph.Edge]{items: make(map[string]graph.Edge, len(next))}
		for _, e := range next {
			c.put(e.ID, e.Clone())
		}
		t.state.edges, t.dirtyEdges = c, true
		return nil
	})
}

// ApplyNodeChanges applies a batch of node changes atomically. If any change
// is malformed the batch is rejected with ErrInvalidChange and nothing is
// applied. While a group is focused, added nodes join the group and removed
// nodes leave it.
func (s *Store) ApplyNodeChanges(changes ...NodeChange) error {
	for _, c := range changes {
		if err := c.validate(); err != nil {
			return err
		}
	}
	return s.mutate("apply_node_changes", func(t *tx) error {
		for _, c := range changes {
			t.applyNode(c)
		}
		return nil
	})
}

// ApplyEdgeChanges applies a batch of edge changes atomically.
func (s *Store) ApplyEdgeChanges(changes ...EdgeChange) error {
	for _, c := range changes {
		if err := c.validate(); err != nil {
			return err
		}
	}
	return s.mutate("apply_edge_changes", func(t *tx) error {
		for _, c := range changes {
			t.applyEdge(c)
		}
		return nil
	})
}
