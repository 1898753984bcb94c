package layered

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/nodegraph/pkg/errors"
	"github.com/matzehuels/nodegraph/pkg/graph"
	"github.com/matzehuels/nodegraph/pkg/layout"
)

// Name is the engine name.
const Name = "layered"

// pointsPerInch converts canvas units to the inches dot expects for sizes
// and separations. Canvas units map one-to-one to dot points.
const pointsPerInch = 72

// Options configures the layered layout.
type Options struct {
	RankSep       float64 // Gap between ranks (columns)
	NodeSep       float64 // Gap between nodes of one rank
	OffsetX       float64 // Added to every x after the center to top-left shift
	OffsetY       float64 // Added to every y after the center to top-left shift
	NodeWidthMin  float64 // Width of nodes that have not been measured
	NodeHeightMin float64 // Height of nodes that have not been measured
}

// DefaultOptions returns the default separations and translation.
func DefaultOptions() Options {
	return Options{
		RankSep:       50,
		NodeSep:       50,
		OffsetX:       70,
		OffsetY:       50,
		NodeWidthMin:  190,
		NodeHeightMin: 50,
	}
}

// Layout is the layered [layout.Algorithm].
type Layout struct {
	opts Options
}

// New creates a layered layout with the given options.
func New(opts Options) *Layout {
	return &Layout{opts: opts}
}

// Name returns "layered".
func (l *Layout) Name() string { return Name }

// Options returns the options the layout was created with.
func (l *Layout) Options() Options { return l.opts }

// Apply implements [layout.Algorithm]. Graphviz failures are reported with
// code LAYOUT_FAILED.
func (l *Layout) Apply(nodes []graph.Node, edges []graph.Edge) ([]graph.Node, error) {
	out := layout.CloneNodes(nodes)
	if len(out) == 0 {
		return out, nil
	}

	vertices, dot := l.ToDOT(out, edges)
	centers, height, err := run(dot, vertices)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeLayoutFailed, err, "layered layout")
	}

	for i := range out {
		c, ok := centers[vertices[out[i].ID]]
		if !ok {
			continue
		}
		size := l.size(out[i])
		out[i].Position = graph.Pos(
			c.X-size.Width/2+l.opts.OffsetX,
			(height-c.Y)-size.Height/2+l.opts.OffsetY,
		)
		out[i].SourcePosition = graph.HandleRight
		out[i].TargetPosition = graph.HandleLeft
	}
	return out, nil
}

func (l *Layout) size(n graph.Node) graph.Size {
	return n.SizeOr(graph.Size{Width: l.opts.NodeWidthMin, Height: l.opts.NodeHeightMin})
}

// ToDOT converts nodes and edges to a DOT digraph. Node ids are replaced by
// generated vertex names (n0, n1, ...) so arbitrary ids need no quoting; the
// returned map resolves node ids to vertex names. Edges with an endpoint
// outside nodes are skipped, as are repeated node ids.
func (l *Layout) ToDOT(nodes []graph.Node, edges []graph.Edge) (map[string]string, string) {
	vertices := make(map[string]string, len(nodes))

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	fmt.Fprintf(&buf, "  ranksep=%s;\n", inches(l.opts.RankSep))
	fmt.Fprintf(&buf, "  nodesep=%s;\n", inches(l.opts.NodeSep))
	buf.WriteString("  node [shape=box, fixedsize=true, label=\"\"];\n")
	buf.WriteString("\n")

	for _, n := range nodes {
		if _, dup := vertices[n.ID]; dup {
			continue
		}
		v := "n" + strconv.Itoa(len(vertices))
		vertices[n.ID] = v
		size := l.size(n)
		fmt.Fprintf(&buf, "  %s [width=%s, height=%s];\n", v, inches(size.Width), inches(size.Height))
	}

	buf.WriteString("\n")
	for _, e := range edges {
		from, ok1 := vertices[e.Source]
		to, ok2 := vertices[e.Target]
		if !ok1 || !ok2 {
			continue
		}
		fmt.Fprintf(&buf, "  %s -> %s;\n", from, to)
	}

	buf.WriteString("}\n")
	return vertices, buf.String()
}

func inches(v float64) string {
	return strconv.FormatFloat(v/pointsPerInch, 'f', 4, 64)
}

// run lays out dot and returns the centers (y-up, relative to the bottom of
// the bounding box) of the named vertices and the height of the bounding box.
func run(dot string, vertices map[string]string) (map[string]graph.Position, float64, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, 0, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	// Rendering runs the layout and stores pos and bb on the graph.
	if err := gv.Render(ctx, g, graphviz.XDOT, io.Discard); err != nil {
		return nil, 0, fmt.Errorf("render: %w", err)
	}

	bb, err := parseBox(g.GetStr("bb"))
	if err != nil {
		return nil, 0, fmt.Errorf("bounding box: %w", err)
	}

	centers := make(map[string]graph.Position, len(vertices))
	for _, v := range vertices {
		n, err := g.NodeByName(v)
		if err != nil {
			return nil, 0, fmt.Errorf("vertex %s: %w", v, err)
		}
		if n == nil {
			continue
		}
		p, err := parsePoint(n.GetStr("pos"))
		if err != nil {
			return nil, 0, fmt.Errorf("position of %s: %w", v, err)
		}
		centers[v] = graph.Position{X: p.X, Y: p.Y - bb[1]}
	}
	return centers, bb[3] - bb[1], nil
}

// parseBox parses a graphviz rect attribute "llx,lly,urx,ury".
func parseBox(s string) ([4]float64, error) {
	var box [4]float64
	parts := strings.Split(s, ",")
	if len(parts) != len(box) {
		return box, fmt.Errorf("malformed rect %q", s)
	}
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return box, fmt.Errorf("malformed rect %q: %w", s, err)
		}
		box[i] = v
	}
	return box, nil
}

// parsePoint parses a graphviz point attribute "x,y". A trailing "!" (pinned
// node) is ignored.
func parsePoint(s string) (graph.Position, error) {
	x, y, ok := strings.Cut(strings.TrimSuffix(s, "!"), ",")
	if !ok {
		return graph.Position{}, fmt.Errorf("malformed point %q", s)
	}
	px, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
	if err != nil {
		return graph.Position{}, fmt.Errorf("malformed point %q: %w", s, err)
	}
	py, err := strconv.ParseFloat(strings.TrimSpace(y), 64)
	if err != nil {
		return graph.Position{}, fmt.Errorf("malformed point %q: %w", s, err)
	}
	return graph.Position{X: px, Y: py}, nil
}

func init() {
	layout.Register(Name, New(DefaultOptions()))
}
