package store

import (
	"time"

	"github.com/matzehuels/nodegraph/pkg/graph"
	"github.com/matzehuels/nodegraph/pkg/layout"
)

// Layout positions the visible nodes with the engine registered under name.
// Unknown names fail with LAYOUT_NOT_FOUND and change nothing.
func (s *Store) Layout(name string) error {
	alg, err := s.registry.Lookup(name)
	if err != nil {
		return err
	}
	return s.runLayout(name, alg)
}

// ApplyLayout positions the visible nodes with alg.
func (s *Store) ApplyLayout(alg layout.Algorithm) error {
	return s.runLayout(alg.Name(), alg)
}

// LayoutIfUnpositioned runs [Store.Layout] the first time it is called on a
// store, and only if some visible node has no position. Later calls do
// nothing. It reports whether a layout ran.
func (s *Store) LayoutIfUnpositioned(name string) (bool, error) {
	s.mu.Lock()
	if s.autoLaidOut {
		s.mu.Unlock()
		return false, nil
	}
	s.autoLaidOut = true
	needed := false
	for _, n := range s.view.Nodes {
		if n.Position == nil {
			needed = true
			break
		}
	}
	s.mu.Unlock()

	if !needed {
		return false, nil
	}
	if err := s.Layout(name); err != nil {
		return false, err
	}
	return true, nil
}

// runLayout computes positions outside the lock and writes Position,
// SourcePosition and TargetPosition back in one mutation. Nodes removed in
// the meantime are skipped.
func (s *Store) runLayout(name string, alg layout.Algorithm) error {
	view := s.View()
	hooks := s.layoutHooksOrGlobal()

	hooks.OnLayoutStart(name, len(view.Nodes))
	start := time.Now()
	placed, err := alg.Apply(view.Nodes, view.Edges)
	hooks.OnLayoutComplete(name, len(view.Nodes), time.Since(start), err)
	if err != nil {
		s.logger.Error("layout failed", "engine", name, "error", err)
		return err
	}
	s.logger.Debug("layout computed", "engine", name, "nodes", len(placed), "duration", time.Since(start))

	return s.mutate("layout", func(t *tx) error {
		for _, p := range placed {
			if p.Position == nil {
				continue
			}
			t.updateNode(p.ID, func(n *graph.Node) {
				n.Position = &graph.Position{X: p.Position.X, Y: p.Position.Y}
				n.SourcePosition = p.SourcePosition
				n.TargetPosition = p.TargetPosition
			})
		}
		return nil
	})
}
