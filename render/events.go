package render

import (
	"math"

	"github.com/TFMV/forcegraph/models"
)

// EventType names the interactions an adapter can delegate upward.
type EventType string

const (
	EventClick EventType = "click"
	EventHover EventType = "hover"
	EventDrag  EventType = "drag"
)

// DragPhase marks the discrete phases of a drag gesture.
type DragPhase string

const (
	DragStart DragPhase = "start"
	DragMove  DragPhase = "move"
	DragEnd   DragPhase = "end"
)

// PointerKind is the raw pointer input an embedding host feeds to Dispatch.
type PointerKind int

const (
	PointerMove PointerKind = iota
	PointerDown
	PointerUp
)

// PointerEvent is a raw pointer sample in world coordinates.
type PointerEvent struct {
	Kind PointerKind
	X, Y float64
}

// Event is what handlers receive. For hover, a nil Node and Edge means
// hover-end. For drag the consumer is responsible for pinning the node
// (Fixed=true) at DragStart and releasing it at DragEnd.
type Event[T any] struct {
	Type  EventType
	Node  *models.Node[T]
	Edge  *models.Edge[T]
	Phase DragPhase
	X, Y  float64
}

// Handler consumes delegated events. Multiple handlers may be registered
// per event type.
type Handler[T any] func(Event[T])

// edge hit slop in world units; thin edges would otherwise be impossible to
// point at.
const minEdgeHitWidth = 6.0

type hitNode[T any] struct {
	node *models.Node[T]
	x, y float64
	r    float64
}

type hitEdge[T any] struct {
	edge           *models.Edge[T]
	x1, y1, x2, y2 float64
	width          float64
}

// dispatcher owns handler registration, hit-testing against the last
// rendered scene, and the hover/drag state machines. Both adapters embed it.
type dispatcher[T any] struct {
	handlers map[EventType][]Handler[T]

	hitNodes []hitNode[T]
	hitEdges []hitEdge[T]

	hoverNode *models.Node[T]
	hoverEdge *models.Edge[T]
	dragNode  *models.Node[T]
	moved     bool
}

func (d *dispatcher[T]) On(ev EventType, h Handler[T]) {
	if d.handlers == nil {
		d.handlers = make(map[EventType][]Handler[T])
	}
	d.handlers[ev] = append(d.handlers[ev], h)
}

func (d *dispatcher[T]) emit(ev Event[T]) {
	for _, h := range d.handlers[ev.Type] {
		h(ev)
	}
}

// resetScene clears the hit geometry before a render pass repopulates it.
func (d *dispatcher[T]) resetScene() {
	d.hitNodes = d.hitNodes[:0]
	d.hitEdges = d.hitEdges[:0]
}

func (d *dispatcher[T]) addHitNode(n *models.Node[T], r float64) {
	d.hitNodes = append(d.hitNodes, hitNode[T]{node: n, x: n.X, y: n.Y, r: r})
}

func (d *dispatcher[T]) addHitEdge(e *models.Edge[T], x1, y1, x2, y2, width float64) {
	d.hitEdges = append(d.hitEdges, hitEdge[T]{edge: e, x1: x1, y1: y1, x2: x2, y2: y2, width: width})
}

// hitTest finds the topmost element under the pointer. Nodes draw above
// edges, and later nodes draw above earlier ones, so the scan runs nodes
// first in reverse draw order.
func (d *dispatcher[T]) hitTest(x, y float64) (*models.Node[T], *models.Edge[T]) {
	for i := len(d.hitNodes) - 1; i >= 0; i-- {
		h := d.hitNodes[i]
		dx, dy := x-h.x, y-h.y
		if dx*dx+dy*dy <= h.r*h.r {
			return h.node, nil
		}
	}
	for i := len(d.hitEdges) - 1; i >= 0; i-- {
		h := d.hitEdges[i]
		slop := math.Max(h.width, minEdgeHitWidth) / 2
		if pointSegmentDistance(x, y, h.x1, h.y1, h.x2, h.y2) <= slop {
			return nil, h.edge
		}
	}
	return nil, nil
}

// Dispatch runs the hover/click/drag state machine over one raw pointer
// sample and invokes the registered handlers.
func (d *dispatcher[T]) Dispatch(ev PointerEvent) {
	switch ev.Kind {
	case PointerDown:
		node, _ := d.hitTest(ev.X, ev.Y)
		d.moved = false
		if node != nil {
			d.dragNode = node
			d.emit(Event[T]{Type: EventDrag, Node: node, Phase: DragStart, X: ev.X, Y: ev.Y})
		}

	case PointerMove:
		if d.dragNode != nil {
			d.moved = true
			d.emit(Event[T]{Type: EventDrag, Node: d.dragNode, Phase: DragMove, X: ev.X, Y: ev.Y})
			return
		}
		node, edge := d.hitTest(ev.X, ev.Y)
		if node != d.hoverNode || edge != d.hoverEdge {
			d.hoverNode, d.hoverEdge = node, edge
			// nil node and edge signals hover-end.
			d.emit(Event[T]{Type: EventHover, Node: node, Edge: edge, X: ev.X, Y: ev.Y})
		}

	case PointerUp:
		if d.dragNode != nil {
			node := d.dragNode
			d.dragNode = nil
			d.emit(Event[T]{Type: EventDrag, Node: node, Phase: DragEnd, X: ev.X, Y: ev.Y})
			if !d.moved {
				d.emit(Event[T]{Type: EventClick, Node: node, X: ev.X, Y: ev.Y})
			}
			return
		}
		if node, edge := d.hitTest(ev.X, ev.Y); node != nil || edge != nil {
			d.emit(Event[T]{Type: EventClick, Node: node, Edge: edge, X: ev.X, Y: ev.Y})
		}
	}
}

// pointSegmentDistance returns the distance from point p to segment ab.
func pointSegmentDistance(px, py, ax, ay, bx, by float64) float64 {
	abx, aby := bx-ax, by-ay
	apx, apy := px-ax, py-ay
	lenSq := abx*abx + aby*aby
	if lenSq == 0 {
		return math.Hypot(apx, apy)
	}
	t := (apx*abx + apy*aby) / lenSq
	t = math.Max(0, math.Min(1, t))
	return math.Hypot(px-(ax+t*abx), py-(ay+t*aby))
}
