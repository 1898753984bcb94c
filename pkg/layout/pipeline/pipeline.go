package pipeline

import (
	"github.com/matzehuels/nodegraph/pkg/dag"
	"github.com/matzehuels/nodegraph/pkg/dag/transform"
	"github.com/matzehuels/nodegraph/pkg/graph"
	"github.com/matzehuels/nodegraph/pkg/layout"
)

// Engine names.
const (
	Name         = "pipeline"
	CenteredName = "pipeline.centered"
)

// Default geometry, in canvas units.
const (
	DefaultNodeWidthMin      = 190
	DefaultNodeHeightMin     = 50
	DefaultHorizontalSpacing = 80
	DefaultVerticalSpacing   = 20
	DefaultStartTop          = 50
	DefaultStartLeft         = 50
)

// Options configures the pipeline geometry.
type Options struct {
	NodeWidthMin      float64 // Width of nodes that have not been measured
	NodeHeightMin     float64 // Height of nodes that have not been measured
	HorizontalSpacing float64 // Gap between columns
	VerticalSpacing   float64 // Gap between nodes of one column
	StartTop          float64 // Y of the first node in a column
	StartLeft         float64 // X of the first column
	Centered          bool    // Center each column against the tallest one
}

// DefaultOptions returns the default top-aligned geometry.
func DefaultOptions() Options {
	return Options{
		NodeWidthMin:      DefaultNodeWidthMin,
		NodeHeightMin:     DefaultNodeHeightMin,
		HorizontalSpacing: DefaultHorizontalSpacing,
		VerticalSpacing:   DefaultVerticalSpacing,
		StartTop:          DefaultStartTop,
		StartLeft:         DefaultStartLeft,
	}
}

// Layout is the pipeline [layout.Algorithm].
type Layout struct {
	opts Options
}

// New creates a pipeline layout with the given options.
func New(opts Options) *Layout {
	return &Layout{opts: opts}
}

// Name returns "pipeline" or "pipeline.centered".
func (l *Layout) Name() string {
	if l.opts.Centered {
		return CenteredName
	}
	return Name
}

// Options returns the geometry the layout was created with.
func (l *Layout) Options() Options { return l.opts }

// Apply implements [layout.Algorithm].
func (l *Layout) Apply(nodes []graph.Node, edges []graph.Edge) ([]graph.Node, error) {
	out := layout.CloneNodes(nodes)

	g := dag.New()
	index := make(map[string]int, len(out))
	for i, n := range out {
		if n.Hidden {
			continue
		}
		if err := g.AddNode(dag.Node{ID: n.ID}); err != nil {
			// Duplicate ids keep the first occurrence.
			continue
		}
		index[n.ID] = i
	}
	for _, e := range edges {
		_ = g.AddEdge(dag.Edge{From: e.Source, To: e.Target})
	}

	columns := Columns(g)
	size := func(id string) graph.Size {
		return out[index[id]].SizeOr(graph.Size{Width: l.opts.NodeWidthMin, Height: l.opts.NodeHeightMin})
	}

	ys, heights := l.stack(columns, size)
	if l.opts.Centered {
		ys = l.center(columns, heights, size)
	}
	xs := l.columnX(columns, size)

	for c, column := range columns {
		for i, id := range column {
			n := &out[index[id]]
			n.Position = graph.Pos(xs[c], ys[c][i])
			n.SourcePosition = graph.HandleRight
			n.TargetPosition = graph.HandleLeft
		}
	}
	return out, nil
}

// Columns assigns longest-path layers to g and returns the node ids of each
// layer in topological order.
func Columns(g *dag.DAG) [][]string {
	order := transform.AssignLayers(g)
	var columns [][]string
	for _, id := range order {
		n, _ := g.Node(id)
		for len(columns) <= n.Row {
			columns = append(columns, nil)
		}
		columns[n.Row] = append(columns[n.Row], id)
	}
	return columns
}

// stack places every column top aligned and returns the y of each node,
// per column, plus the height each column reaches including trailing spacing.
func (l *Layout) stack(columns [][]string, size func(string) graph.Size) ([][]float64, []float64) {
	ys := make([][]float64, len(columns))
	heights := make([]float64, len(columns))
	for c, column := range columns {
		ys[c] = l.restack(column, l.opts.StartTop, size)
		heights[c] = l.opts.StartTop
		for _, id := range column {
			heights[c] += size(id).Height + l.opts.VerticalSpacing
		}
	}
	return ys, heights
}

// center restacks each column from (tallest - height)/2 + StartTop.
func (l *Layout) center(columns [][]string, heights []float64, size func(string) graph.Size) [][]float64 {
	tallest := 0.0
	for _, h := range heights {
		tallest = max(tallest, h)
	}
	ys := make([][]float64, len(columns))
	for c, column := range columns {
		ys[c] = l.restack(column, (tallest-heights[c])/2+l.opts.StartTop, size)
	}
	return ys
}

func (l *Layout) restack(column []string, top float64, size func(string) graph.Size) []float64 {
	ys := make([]float64, len(column))
	y := top
	for i, id := range column {
		ys[i] = y
		y += size(id).Height + l.opts.VerticalSpacing
	}
	return ys
}

// columnX returns the x of each column. The advance after a column is the
// widest node seen in it or any earlier column, plus HorizontalSpacing.
func (l *Layout) columnX(columns [][]string, size func(string) graph.Size) []float64 {
	xs := make([]float64, len(columns))
	x, width := l.opts.StartLeft, l.opts.NodeWidthMin
	for c, column := range columns {
		xs[c] = x
		for _, id := range column {
			width = max(width, size(id).Width)
		}
		x += width + l.opts.HorizontalSpacing
	}
	return xs
}

func init() {
	layout.Register(Name, New(DefaultOptions()))
	centered := DefaultOptions()
	centered.Centered = true
	layout.Register(CenteredName, New(centered))
}
