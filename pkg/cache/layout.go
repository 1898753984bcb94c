package cache

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/nodegraph/pkg/graph"
	"github.com/matzehuels/nodegraph/pkg/layout"
)

type keyNode struct {
	ID       string      `json:"id"`
	Type     string      `json:"type,omitempty"`
	Measured *graph.Size `json:"measured,omitempty"`
	Hidden   bool        `json:"hidden,omitempty"`
}

type keyEdge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// LayoutKey returns the key under which the layout of nodes and edges by
// engine is stored. scope carries the engine options; any JSON-encodable
// value works. Positions, selection and node data do not affect the key.
func LayoutKey(engine string, scope any, nodes []graph.Node, edges []graph.Edge) string {
	kn := make([]keyNode, len(nodes))
	for i, n := range nodes {
		kn[i] = keyNode{ID: n.ID, Type: n.Type, Measured: n.Measured, Hidden: n.Hidden}
	}
	ke := make([]keyEdge, len(edges))
	for i, e := range edges {
		ke[i] = keyEdge{Source: e.Source, Target: e.Target}
	}
	return hashKey("layout", engine, scope, kn, ke)
}

// placement is the cached result for one node.
type placement struct {
	ID             string               `json:"id"`
	Position       *graph.Position      `json:"position,omitempty"`
	SourcePosition graph.HandlePosition `json:"sourcePosition,omitempty"`
	TargetPosition graph.HandlePosition `json:"targetPosition,omitempty"`
}

// Algorithm is a [layout.Algorithm] that serves results from a [Cache] and
// fills it on misses. Cache failures are logged and never fail a layout.
type Algorithm struct {
	inner  layout.Algorithm
	cache  Cache
	scope  any
	ttl    time.Duration
	logger *log.Logger
}

// Option configures a cached [Algorithm].
type Option func(*Algorithm)

// WithScope mixes v, typically the engine options, into every key.
func WithScope(v any) Option {
	return func(a *Algorithm) { a.scope = v }
}

// WithTTL sets the lifetime of new entries. Zero never expires.
func WithTTL(d time.Duration) Option {
	return func(a *Algorithm) { a.ttl = d }
}

// WithLogger sets the logger for hits, misses and cache failures.
func WithLogger(l *log.Logger) Option {
	return func(a *Algorithm) {
		if l != nil {
			a.logger = l
		}
	}
}

// Wrap returns alg backed by c. A nil c disables caching.
func Wrap(alg layout.Algorithm, c Cache, opts ...Option) *Algorithm {
	if c == nil {
		c = NewNullCache()
	}
	a := &Algorithm{inner: alg, cache: c, logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Name returns the wrapped engine's name.
func (a *Algorithm) Name() string { return a.inner.Name() }

// Apply returns the cached layout for nodes and edges, or computes and
// stores it.
func (a *Algorithm) Apply(nodes []graph.Node, edges []graph.Edge) ([]graph.Node, error) {
	ctx := context.Background()
	key := LayoutKey(a.inner.Name(), a.scope, nodes, edges)

	if out, ok := a.lookup(ctx, key, nodes); ok {
		a.logger.Debug("layout cache hit", "engine", a.inner.Name(), "nodes", len(nodes))
		return out, nil
	}

	out, err := a.inner.Apply(nodes, edges)
	if err != nil {
		return nil, err
	}
	a.store(ctx, key, out)
	return out, nil
}

func (a *Algorithm) lookup(ctx context.Context, key string, nodes []graph.Node) ([]graph.Node, bool) {
	data, ok, err := a.cache.Get(ctx, key)
	if err != nil {
		a.logger.Warn("layout cache read failed", "error", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var cached []placement
	if err := json.Unmarshal(data, &cached); err != nil {
		a.logger.Warn("discarding unreadable layout cache entry", "error", err)
		return nil, false
	}
	byID := make(map[string]placement, len(cached))
	for _, p := range cached {
		byID[p.ID] = p
	}

	out := layout.CloneNodes(nodes)
	for i := range out {
		p, ok := byID[out[i].ID]
		if !ok {
			return nil, false
		}
		if p.Position != nil {
			out[i].Position = &graph.Position{X: p.Position.X, Y: p.Position.Y}
		}
		out[i].SourcePosition = p.SourcePosition
		out[i].TargetPosition = p.TargetPosition
	}
	return out, true
}

func (a *Algorithm) store(ctx context.Context, key string, nodes []graph.Node) {
	cached := make([]placement, len(nodes))
	for i, n := range nodes {
		cached[i] = placement{ID: n.ID, Position: n.Position, SourcePosition: n.SourcePosition, TargetPosition: n.TargetPosition}
	}
	data, err := json.Marshal(cached)
	if err == nil {
		err = a.cache.Set(ctx, key, data, a.ttl)
	}
	if err != nil {
		a.logger.Warn("layout cache write failed", "error", err)
	}
}

var _ layout.Algorithm = (*Algorithm)(nil)
