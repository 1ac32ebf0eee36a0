// Package render defines the adapter contract that decouples the simulation
// from any particular drawing technology, plus two concrete backends: a
// retained-vector SVG adapter and a raster-style ASCII adapter. Adapters are
// polymorphic over one capability set; the simulation and graph model never
// learn which backend is active.
package render

import (
	"bytes"
	"fmt"

	"github.com/TFMV/forcegraph/models"
)

// Kind selects a concrete adapter in the factory.
type Kind string

const (
	KindSVG   Kind = "svg"
	KindASCII Kind = "ascii"
)

// InitializationError reports that an adapter could not allocate its drawing
// surface. Init is all-or-nothing: on error the adapter holds no resources.
type InitializationError struct {
	Kind   Kind
	Reason string
}

func (e *InitializationError) Error() string {
	return fmt.Sprintf("%s adapter initialization failed: %s", e.Kind, e.Reason)
}

// Container is the surface sink an adapter attaches to. In a headless
// pipeline it collects the rendered bytes; a host embedding the engine reads
// them out with Bytes after each render.
type Container struct {
	buf      bytes.Buffer
	attached bool
}

// NewContainer returns an empty, unattached container.
func NewContainer() *Container { return &Container{} }

// Bytes returns the currently rendered content.
func (c *Container) Bytes() []byte { return c.buf.Bytes() }

// Adapter is the renderer contract. Implementations must not mutate the
// graph, must draw edges before nodes, must resolve styles through the
// visual config (falling back to a default for unknown types, never
// erroring), and must skip hidden edges. After Destroy the instance must
// not be reused.
type Adapter[T any] interface {
	Init(container *Container, width, height float64) error
	Resize(width, height float64)
	Render(g *models.Graph[T], cfg *VisualConfig[T]) error
	Clear()
	Destroy()

	On(ev EventType, h Handler[T])
	Dispatch(ev PointerEvent)
}

// New selects an adapter implementation by kind.
func New[T any](kind Kind) (Adapter[T], error) {
	switch kind {
	case KindSVG:
		return NewSVGAdapter[T](), nil
	case KindASCII:
		return NewASCIIAdapter[T](), nil
	default:
		return nil, fmt.Errorf("unsupported renderer kind: %q", kind)
	}
}
