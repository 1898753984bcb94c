package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/nodegraph/pkg/cache"
	"github.com/matzehuels/nodegraph/pkg/graph"
	"github.com/matzehuels/nodegraph/pkg/layout"
	"github.com/matzehuels/nodegraph/pkg/store"
)

// layoutCommand creates the layout command for positioning a snapshot.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		engine  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "layout [snapshot.json]",
		Short: "Compute node positions for a graph snapshot",
		Long: `Compute node positions for a graph snapshot.

The layout command reads a snapshot ({"nodes": [...], "edges": [...]}), lays
out its root view with the selected engine and writes the positioned snapshot
to <input>.layout.json (or -o).

Engines: layered (Graphviz dot), pipeline, pipeline.centered. The default
comes from [layout] engine in the config file.

Results are cached on disk keyed by graph structure, engine and engine
options, so re-running on an unchanged graph skips the engine. Use
--no-cache or [cache] enabled = false to bypass it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], c.engineOrDefault(engine), output, !noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	c.engineFlag(cmd, &engine, "layout engine (default from config)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "compute the layout even if a cached one exists")

	return cmd
}

// runLayout loads the snapshot, lays it out, and writes output.
func (c *CLI) runLayout(ctx context.Context, input, engine, output string, useCache bool) error {
	logger := loggerFromContext(ctx)

	snap, err := readSnapshot(input)
	if err != nil {
		return err
	}
	alg, err := c.registry.Lookup(engine)
	if err != nil {
		return err
	}
	if useCache {
		alg = c.cached(alg, logger)
	}

	st := store.New(
		store.WithNodes(snap.Nodes...),
		store.WithEdges(snap.Edges...),
		store.WithRegistry(c.registry),
		store.WithLogger(logger),
	)

	spin := newSpinner(ctx, c.out, fmt.Sprintf("Computing %s layout...", engine))
	spin.Start()
	prog := newProgress(logger)
	if err := st.ApplyLayout(alg); err != nil {
		spin.Fail("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spin.Stop()
	if spin.Cancelled() {
		return ctx.Err()
	}
	prog.done("layout computed", "engine", engine, "nodes", len(st.Nodes()))

	path := outputPath(input, output, ".layout.json")
	if err := graph.WriteSnapshotFile(st.Snapshot(), path); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}

	c.out.success("Layout complete")
	c.out.file(path)
	c.out.stats(len(snap.Nodes), len(snap.Edges), engine)
	c.out.nextStep("Inspect", appName+" inspect "+path)

	return nil
}

// cached wraps alg with the configured file cache. When the cache is
// disabled or its directory is unusable, alg is returned unchanged.
func (c *CLI) cached(alg layout.Algorithm, logger *log.Logger) layout.Algorithm {
	if !c.config.Cache.Enabled {
		return alg
	}
	dir := c.config.Cache.Dir
	if dir == "" {
		dir = cache.DefaultDir()
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		logger.Warn("layout cache disabled", "dir", dir, "error", err)
		return alg
	}
	logger.Debug("using layout cache", "dir", fc.Dir())
	return cache.Wrap(alg, fc, cache.WithScope(c.config.Layout), cache.WithLogger(logger))
}
