package render

import (
	"fmt"

	"github.com/TFMV/forcegraph/models"
)

// SVGAdapter renders into a retained vector document. Each Render replaces
// the container's content with a complete SVG.
type SVGAdapter[T any] struct {
	dispatcher[T]

	container *Container
	width     float64
	height    float64
	destroyed bool
}

// NewSVGAdapter returns an uninitialized SVG adapter.
func NewSVGAdapter[T any]() *SVGAdapter[T] { return &SVGAdapter[T]{} }

// Init attaches the adapter to its container. It fails all-or-nothing with
// an InitializationError for a nil container, non-positive dimensions, or a
// destroyed adapter.
func (a *SVGAdapter[T]) Init(container *Container, width, height float64) error {
	if a.destroyed {
		return &InitializationError{Kind: KindSVG, Reason: "adapter was destroyed and must not be reused"}
	}
	if container == nil {
		return &InitializationError{Kind: KindSVG, Reason: "container is nil"}
	}
	if width <= 0 || height <= 0 {
		return &InitializationError{Kind: KindSVG, Reason: fmt.Sprintf("invalid surface dimensions %gx%g", width, height)}
	}
	if container.attached {
		return &InitializationError{Kind: KindSVG, Reason: "container already has an attached adapter"}
	}
	container.attached = true
	a.container = container
	a.width, a.height = width, height
	return nil
}

// Resize updates the surface dimensions for subsequent renders.
func (a *SVGAdapter[T]) Resize(width, height float64) {
	if width > 0 && height > 0 {
		a.width, a.height = width, height
	}
}

// Clear removes rendered content without destroying the adapter.
func (a *SVGAdapter[T]) Clear() {
	if a.container != nil {
		a.container.buf.Reset()
	}
	a.resetScene()
}

// Destroy releases the surface and detaches from the container. The
// instance must not be reused afterward.
func (a *SVGAdapter[T]) Destroy() {
	if a.container != nil {
		a.container.buf.Reset()
		a.container.attached = false
		a.container = nil
	}
	a.resetScene()
	a.destroyed = true
}

// Render draws the graph as a complete SVG document: edges first, nodes on
// top, styles resolved by type with an adapter default for unknown types.
// Hidden edges never draw. The graph is read, never written.
func (a *SVGAdapter[T]) Render(g *models.Graph[T], cfg *VisualConfig[T]) error {
	if a.container == nil || a.destroyed {
		return fmt.Errorf("svg adapter is not initialized")
	}
	buf := &a.container.buf
	buf.Reset()
	a.resetScene()

	fmt.Fprintf(buf, `<?xml version="1.0" encoding="UTF-8" standalone="no"?>
<svg width="%g" height="%g" viewBox="0 0 %g %g" xmlns="http://www.w3.org/2000/svg">
`, a.width, a.height, a.width, a.height)

	buf.WriteString(`<defs>
  <marker id="arrow" viewBox="0 0 10 10" refX="10" refY="5"
      markerWidth="6" markerHeight="6" orient="auto">
    <path d="M0,0 L10,5 L0,10 z" fill="#666666"/>
  </marker>
</defs>
`)

	for _, e := range g.Edges() {
		if e.Hidden {
			continue
		}
		src, tgt := g.Node(e.Source), g.Node(e.Target)
		if src == nil || tgt == nil {
			continue
		}
		style := cfg.edgeStyle(e.Type)

		dash := ""
		switch style.Line {
		case LineDashed:
			dash = ` stroke-dasharray="5,3"`
		case LineDotted:
			dash = ` stroke-dasharray="1,3"`
		}
		marker := ""
		if style.Arrow == ArrowStandard && !e.Undirected {
			marker = ` marker-end="url(#arrow)"`
		}
		fmt.Fprintf(buf, `<line x1="%g" y1="%g" x2="%g" y2="%g" stroke="%s" stroke-width="%g"%s%s />
`, src.X, src.Y, tgt.X, tgt.Y, style.Color, style.Width, dash, marker)

		a.addHitEdge(e, src.X, src.Y, tgt.X, tgt.Y, style.Width)
	}

	for _, n := range g.Nodes() {
		style := cfg.nodeStyle(n.Type)
		r := style.Size

		switch style.Shape {
		case ShapeSquare:
			fmt.Fprintf(buf, `<rect x="%g" y="%g" width="%g" height="%g" fill="%s" stroke="rgba(0,0,0,0.3)" stroke-width="0.5" />
`, n.X-r, n.Y-r, 2*r, 2*r, style.Color)
		case ShapeDiamond:
			fmt.Fprintf(buf, `<path d="M%g,%g L%g,%g L%g,%g L%g,%g z" fill="%s" stroke="rgba(0,0,0,0.3)" stroke-width="0.5" />
`, n.X, n.Y-r, n.X+r, n.Y, n.X, n.Y+r, n.X-r, n.Y, style.Color)
		default:
			fmt.Fprintf(buf, `<circle cx="%g" cy="%g" r="%g" fill="%s" stroke="rgba(0,0,0,0.3)" stroke-width="0.5" />
`, n.X, n.Y, r, style.Color)
		}

		if style.Label != nil {
			if label := style.Label(n); label != "" {
				fmt.Fprintf(buf, `<text x="%g" y="%g" font-family="sans-serif" font-size="10" fill="#333333" text-anchor="middle">%s</text>
`, n.X, n.Y+r+12, escapeXML(label))
			}
		}

		a.addHitNode(n, r)
	}

	buf.WriteString("</svg>\n")
	return nil
}

func escapeXML(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '&':
			out = append(out, "&amp;"...)
		case '<':
			out = append(out, "&lt;"...)
		case '>':
			out = append(out, "&gt;"...)
		case '"':
			out = append(out, "&quot;"...)
		default:
			out = append(out, s[i])
		}
	}
	return string(out)
}
