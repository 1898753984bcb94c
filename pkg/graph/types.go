package graph

import (
	"encoding/json"
	"maps"
	"slices"
)

// Reserved node types created by grouping.
const (
	GroupNodeType        = "__groupNode"
	GroupInputsNodeType  = "__groupInputsNode"
	GroupOutputsNodeType = "__groupOutputsNode"
)

// HandlePosition is the side of a node where edges attach.
type HandlePosition string

// Handle sides.
const (
	HandleLeft   HandlePosition = "left"
	HandleRight  HandlePosition = "right"
	HandleTop    HandlePosition = "top"
	HandleBottom HandlePosition = "bottom"
)

// Position is a top-left anchored canvas coordinate.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pos returns a pointer to the position (x, y).
func Pos(x, y float64) *Position { return &Position{X: x, Y: y} }

// Size is the measured width and height of a rendered node.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Node is a graph vertex.
//
// Position and Measured are nil until the node has been placed or measured.
type Node struct {
	ID             string         `json:"id"`
	Type           string         `json:"type,omitempty"`
	Position       *Position      `json:"position,omitempty"`
	Measured       *Size          `json:"measured,omitempty"`
	SourcePosition HandlePosition `json:"sourcePosition,omitempty"`
	TargetPosition HandlePosition `json:"targetPosition,omitempty"`
	Hidden         bool           `json:"hidden,omitempty"`
	Selected       bool           `json:"selected,omitempty"`
	Data           NodeData       `json:"data"`
}

// Clone returns a copy of n that shares no mutable state with it.
func (n Node) Clone() Node {
	if n.Position != nil {
		p := *n.Position
		n.Position = &p
	}
	if n.Measured != nil {
		s := *n.Measured
		n.Measured = &s
	}
	n.Data = n.Data.Clone()
	return n
}

// PositionOrZero returns the node position, or the origin if it has none.
func (n Node) PositionOrZero() Position {
	if n.Position == nil {
		return Position{}
	}
	return *n.Position
}

// SizeOr returns the measured size, substituting def for missing or zero
// dimensions.
func (n Node) SizeOr(def Size) Size {
	s := def
	if n.Measured != nil {
		if n.Measured.Width > 0 {
			s.Width = n.Measured.Width
		}
		if n.Measured.Height > 0 {
			s.Height = n.Measured.Height
		}
	}
	return s
}

// Edge is a directed connection from Source to Target.
type Edge struct {
	ID           string         `json:"id"`
	Source       string         `json:"source"`
	Target       string         `json:"target"`
	SourceHandle *string        `json:"sourceHandle"`
	TargetHandle *string        `json:"targetHandle"`
	Selected     bool           `json:"selected,omitempty"`
	Data         map[string]any `json:"data,omitempty"`
}

// Clone returns a copy of e that shares no mutable state with it.
func (e Edge) Clone() Edge {
	if e.SourceHandle != nil {
		h := *e.SourceHandle
		e.SourceHandle = &h
	}
	if e.TargetHandle != nil {
		h := *e.TargetHandle
		e.TargetHandle = &h
	}
	e.Data = jsonObject(e.Data)
	return e
}

// Handle returns a pointer to the handle id h.
func Handle(h string) *string { return &h }

// Port describes one input or output of a node type, as supplied by the
// node-type configuration.
type Port struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ValueType string `json:"valueType"`
}

// Internals holds the ports resolved for a node from its type configuration.
type Internals struct {
	Inputs  []Port `json:"inputs"`
	Outputs []Port `json:"outputs"`
}

// Clone returns a deep copy of the internals.
func (in *Internals) Clone() *Internals {
	if in == nil {
		return nil
	}
	return &Internals{
		Inputs:  slices.Clone(in.Inputs),
		Outputs: slices.Clone(in.Outputs),
	}
}

// Reserved data keys for the typed NodeData fields.
const (
	DataKeyLabel     = "label"
	DataKeyCollapsed = "collapsed"
	DataKeyInternal  = "internal"
)

// NodeData is the per-node state bag. Known fields are typed; every other
// key lives in Extra. It encodes to a single flat JSON object.
type NodeData struct {
	Label     string
	Collapsed bool
	Internal  *Internals
	Extra     map[string]any
}

// Clone returns a deep copy of d. Extra values are converted to the shapes
// encoding/json decodes them to, so a cloned value survives a JSON round
// trip unchanged.
func (d NodeData) Clone() NodeData {
	d.Internal = d.Internal.Clone()
	d.Extra = jsonObject(d.Extra)
	return d
}

// Get returns the value stored under key, typed fields included.
func (d NodeData) Get(key string) (any, bool) {
	switch key {
	case DataKeyLabel:
		return d.Label, d.Label != ""
	case DataKeyCollapsed:
		return d.Collapsed, d.Collapsed
	case DataKeyInternal:
		return d.Internal, d.Internal != nil
	}
	v, ok := d.Extra[key]
	return v, ok
}

// Merge returns a copy of d with patch overlaid key by key. A nil value
// removes an extra key or resets a typed field. Values of the wrong type for
// a typed key are ignored.
func (d NodeData) Merge(patch map[string]any) NodeData {
	out := d.Clone()
	for k, v := range patch {
		switch k {
		case DataKeyLabel:
			if s, ok := v.(string); ok || v == nil {
				out.Label = s
			}
			continue
		case DataKeyCollapsed:
			if b, ok := v.(bool); ok || v == nil {
				out.Collapsed = b
			}
			continue
		case DataKeyInternal:
			switch in := v.(type) {
			case nil:
				out.Internal = nil
			case *Internals:
				out.Internal = in.Clone()
			case Internals:
				out.Internal = in.Clone()
			}
			continue
		}
		if v == nil {
			delete(out.Extra, k)
			continue
		}
		if out.Extra == nil {
			out.Extra = make(map[string]any)
		}
		out.Extra[k] = jsonValue(v)
	}
	if len(out.Extra) == 0 {
		out.Extra = nil
	}
	return out
}

// MarshalJSON encodes the data as one flat object.
func (d NodeData) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(d.Extra)+3)
	maps.Copy(out, d.Extra)
	if d.Label != "" {
		out[DataKeyLabel] = d.Label
	}
	if d.Collapsed {
		out[DataKeyCollapsed] = true
	}
	if d.Internal != nil {
		out[DataKeyInternal] = d.Internal
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes a flat object, routing known keys to typed fields.
func (d *NodeData) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	out := NodeData{}
	for k, v := range raw {
		var err error
		switch k {
		case DataKeyLabel:
			err = json.Unmarshal(v, &out.Label)
		case DataKeyCollapsed:
			err = json.Unmarshal(v, &out.Collapsed)
		case DataKeyInternal:
			err = json.Unmarshal(v, &out.Internal)
		default:
			var val any
			if err = json.Unmarshal(v, &val); err == nil {
				if out.Extra == nil {
					out.Extra = make(map[string]any)
				}
				out.Extra[k] = val
			}
		}
		if err != nil {
			return err
		}
	}
	*d = out
	return nil
}

// jsonObject deep-copies m with [jsonValue]. Empty maps become nil, matching
// how an omitted data object decodes.
func jsonObject(m map[string]any) map[string]any {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = jsonValue(v)
	}
	return out
}

// jsonValue returns a copy of v in the form encoding/json produces when
// decoding into any: numbers are float64, objects map[string]any and arrays
// []any. Values that cannot be encoded are returned as is.
func jsonValue(v any) any {
	switch x := v.(type) {
	case nil, string, bool, float64:
		return x
	case int:
		return float64(x)
	case int8:
		return float64(x)
	case int16:
		return float64(x)
	case int32:
		return float64(x)
	case int64:
		return float64(x)
	case uint:
		return float64(x)
	case uint8:
		return float64(x)
	case uint16:
		return float64(x)
	case uint32:
		return float64(x)
	case uint64:
		return float64(x)
	case map[string]any:
		if x == nil {
			return nil
		}
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = jsonValue(e)
		}
		return out
	case []any:
		if x == nil {
			return nil
		}
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = jsonValue(e)
		}
		return out
	}
	b, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return v
	}
	return out
}
