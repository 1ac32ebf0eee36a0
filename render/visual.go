package render

import "github.com/TFMV/forcegraph/models"

// Shape enumerates the node glyphs the adapters can draw.
type Shape string

const (
	ShapeCircle  Shape = "circle"
	ShapeSquare  Shape = "square"
	ShapeDiamond Shape = "diamond"
)

// LineStyle enumerates edge stroke patterns.
type LineStyle string

const (
	LineSolid  LineStyle = "solid"
	LineDashed LineStyle = "dashed"
	LineDotted LineStyle = "dotted"
)

// ArrowStyle enumerates edge terminators.
type ArrowStyle string

const (
	ArrowNone     ArrowStyle = "none"
	ArrowStandard ArrowStyle = "arrow"
)

// NodeStyle describes how nodes of one type are drawn. Label, when set,
// produces the display text for a node; a nil Label draws no label.
type NodeStyle[T any] struct {
	Size  float64
	Color string
	Shape Shape
	Label func(*models.Node[T]) string
}

// EdgeStyle describes how edges of one type are drawn.
type EdgeStyle struct {
	Color string
	Width float64
	Line  LineStyle
	Arrow ArrowStyle
}

// VisualConfig maps node/edge type discriminators to styles. It is
// deliberately separate from the graph so restyling never touches
// simulation state.
type VisualConfig[T any] struct {
	Nodes map[string]NodeStyle[T]
	Edges map[string]EdgeStyle
}

// NewVisualConfig returns an empty style map.
func NewVisualConfig[T any]() *VisualConfig[T] {
	return &VisualConfig[T]{
		Nodes: make(map[string]NodeStyle[T]),
		Edges: make(map[string]EdgeStyle),
	}
}

// Adapter-wide fallback styles for types missing from the config. A missing
// type is never an error.
func defaultNodeStyle[T any]() NodeStyle[T] {
	return NodeStyle[T]{Size: 10, Color: "#4285F4", Shape: ShapeCircle}
}

func defaultEdgeStyle() EdgeStyle {
	return EdgeStyle{Color: "#666666", Width: 1, Line: LineSolid, Arrow: ArrowNone}
}

// nodeStyle resolves a node's style, falling back to the default.
func (v *VisualConfig[T]) nodeStyle(t string) NodeStyle[T] {
	if v != nil {
		if s, ok := v.Nodes[t]; ok {
			if s.Size <= 0 {
				s.Size = defaultNodeStyle[T]().Size
			}
			if s.Color == "" {
				s.Color = defaultNodeStyle[T]().Color
			}
			if s.Shape == "" {
				s.Shape = ShapeCircle
			}
			return s
		}
	}
	return defaultNodeStyle[T]()
}

// edgeStyle resolves an edge's style, falling back to the default.
func (v *VisualConfig[T]) edgeStyle(t string) EdgeStyle {
	if v != nil {
		if s, ok := v.Edges[t]; ok {
			if s.Color == "" {
				s.Color = defaultEdgeStyle().Color
			}
			if s.Width <= 0 {
				s.Width = defaultEdgeStyle().Width
			}
			if s.Line == "" {
				s.Line = LineSolid
			}
			if s.Arrow == "" {
				s.Arrow = ArrowNone
			}
			return s
		}
	}
	return defaultEdgeStyle()
}
