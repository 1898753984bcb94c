package layout

import (
	"maps"
	"slices"
	"sync"

	"github.com/matzehuels/nodegraph/pkg/errors"
	"github.com/matzehuels/nodegraph/pkg/graph"
)

// Algorithm computes node positions from graph topology.
type Algorithm interface {
	// Name returns the engine name the algorithm is usually registered under.
	Name() string

	// Apply returns copies of nodes with positions and handle sides assigned.
	// The input slices are not modified.
	Apply(nodes []graph.Node, edges []graph.Edge) ([]graph.Node, error)
}

// Registry maps engine names to algorithms. It is safe for concurrent use.
//
// The zero value is not usable - use NewRegistry.
type Registry struct {
	mu      sync.RWMutex
	engines map[string]Algorithm
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{engines: make(map[string]Algorithm)}
}

// Register adds alg under name, replacing any engine already registered
// under that name.
func (r *Registry) Register(name string, alg Algorithm) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.engines[name] = alg
}

// Lookup returns the engine registered under name.
func (r *Registry) Lookup(name string) (Algorithm, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	alg, ok := r.engines[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeLayoutNotFound, "Layout engine '%s' not found", name)
	}
	return alg, nil
}

// Names returns the registered engine names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.engines))
}

// Apply runs the engine registered under name.
func (r *Registry) Apply(name string, nodes []graph.Node, edges []graph.Edge) ([]graph.Node, error) {
	alg, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}
	return alg.Apply(nodes, edges)
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry used by the package-level functions.
func Default() *Registry { return defaultRegistry }

// Register adds alg to the default registry.
func Register(name string, alg Algorithm) { defaultRegistry.Register(name, alg) }

// Lookup returns the engine registered under name in the default registry.
func Lookup(name string) (Algorithm, error) { return defaultRegistry.Lookup(name) }

// Names returns the engine names of the default registry in sorted order.
func Names() []string { return defaultRegistry.Names() }

// Apply runs the engine registered under name in the default registry.
func Apply(name string, nodes []graph.Node, edges []graph.Edge) ([]graph.Node, error) {
	return defaultRegistry.Apply(name, nodes, edges)
}

// CloneNodes returns deep copies of nodes. Algorithms use it to honour the
// no-mutation contract of [Algorithm.Apply].
func CloneNodes(nodes []graph.Node) []graph.Node {
	out := make([]graph.Node, len(nodes))
	for i, n := range nodes {
		out[i] = n.Clone()
	}
	return out
}
