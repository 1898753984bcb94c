package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/nodegraph/pkg/dag"
	"github.com/matzehuels/nodegraph/pkg/dag/transform"
	"github.com/matzehuels/nodegraph/pkg/graph"
)

// report summarises the structure of a snapshot.
type report struct {
	Nodes     int
	Edges     int
	Groups    int         // nodes of the group node type
	Dangling  []string    // edges whose source or target does not exist
	Cycles    [][2]string // edges that close a cycle
	Layers    int         // longest-path layers after cycles are broken
	Sources   []string
	Sinks     []string
	Unplaced  int // nodes without a position
	Duplicate []string
}

// inspectSnapshot builds a report for snap.
func inspectSnapshot(snap graph.Snapshot) report {
	r := report{Nodes: len(snap.Nodes), Edges: len(snap.Edges)}

	g := dag.New()
	for _, n := range snap.Nodes {
		if err := g.AddNode(dag.Node{ID: n.ID}); err != nil {
			r.Duplicate = append(r.Duplicate, n.ID)
			continue
		}
		if n.Type == graph.GroupNodeType {
			r.Groups++
		}
		if n.Position == nil {
			r.Unplaced++
		}
	}
	for _, e := range snap.Edges {
		if err := g.AddEdge(dag.Edge{From: e.Source, To: e.Target}); err != nil {
			r.Dangling = append(r.Dangling, e.ID)
		}
	}

	r.Sources = dag.NodeIDs(g.Sources())
	r.Sinks = dag.NodeIDs(g.Sinks())
	r.Cycles = transform.BackEdges(g)
	transform.BreakCycles(g)
	transform.AssignLayers(g)
	if g.NodeCount() > 0 {
		r.Layers = g.MaxRow() + 1
	}
	return r
}

// inspectCommand creates the inspect command for reporting graph structure.
func (c *CLI) inspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [snapshot.json]",
		Short: "Report the structure of a graph snapshot",
		Long: `Report the structure of a graph snapshot.

Prints node and edge counts, edges that reference missing nodes, edges that
close a cycle (pipeline layouts expect none) and the number of longest-path
layers the pipeline engines would produce.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := readSnapshot(args[0])
			if err != nil {
				return err
			}
			printReport(c.out, inspectSnapshot(snap))
			return nil
		},
	}
}

func printReport(out *output, r report) {
	out.count("nodes", r.Nodes)
	out.count("edges", r.Edges)
	out.count("groups", r.Groups)
	out.count("layers", r.Layers)
	out.count("unplaced", r.Unplaced)
	out.list("sources", r.Sources)
	out.list("sinks", r.Sinks)

	if len(r.Duplicate) > 0 {
		out.warning("%d duplicate node ids: %s", len(r.Duplicate), strings.Join(r.Duplicate, ", "))
	}
	if len(r.Dangling) > 0 {
		out.warning("%d edges reference missing nodes: %s", len(r.Dangling), strings.Join(r.Dangling, ", "))
	}
	if len(r.Cycles) > 0 {
		out.warning("%d edges close a cycle", len(r.Cycles))
		for _, e := range r.Cycles {
			out.detail("%s %s %s", e[0], iconArrow, e[1])
		}
	}
	if len(r.Dangling) == 0 && len(r.Cycles) == 0 && len(r.Duplicate) == 0 {
		out.success("Graph is a valid pipeline")
	}
}
