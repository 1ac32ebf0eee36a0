// Package models provides the typed node/edge containers shared by the
// simulation, rendering, and camera packages. A Graph owns its nodes and
// edges and enforces referential integrity at insertion time: an edge can
// never name an endpoint that is not present, and ids are unique per graph.
package models

import (
	"math"
)

// Default edge parameters applied when the caller leaves them unset.
const (
	DefaultEdgeStrength = 1.0
	DefaultEdgeDistance = 30.0
)

// Node is a positioned graph vertex. X and Y are required and must be
// finite; VX/VY and FX/FY are owned by the simulation integrator. When
// Fixed is true the integrator and all force functions skip the node.
type Node[T any] struct {
	ID    string  `json:"id"`
	Type  string  `json:"type"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	VX    float64 `json:"vx,omitempty"`
	VY    float64 `json:"vy,omitempty"`
	FX    float64 `json:"-"`
	FY    float64 `json:"-"`
	Fixed bool    `json:"fixed,omitempty"`
	Data  T       `json:"data,omitempty"`
}

// Edge connects two nodes by id. Edges are directed from Source to Target
// unless Undirected is set; the inverted field keeps the zero value on the
// directed default. Strength and Distance override the attraction force's
// global spring constant and ideal length for this edge. Hidden edges are
// excluded from rendering but still pull their endpoints.
type Edge[T any] struct {
	ID         string  `json:"id"`
	Type       string  `json:"type"`
	Source     string  `json:"source"`
	Target     string  `json:"target"`
	Undirected bool    `json:"undirected,omitempty"`
	Strength   float64 `json:"strength,omitempty"`
	Distance   float64 `json:"distance,omitempty"`
	Hidden     bool    `json:"hidden,omitempty"`
	Data       T       `json:"data,omitempty"`
}

// Graph is an owning container of nodes and edges keyed by id. Enumeration
// order is insertion order and is stable across a tick, which keeps force
// symmetry deterministic and testable.
type Graph[T any] struct {
	nodes     map[string]*Node[T]
	edges     map[string]*Edge[T]
	nodeOrder []string
	edgeOrder []string
	dragging  map[string]bool
}

// NewGraph creates an empty graph.
func NewGraph[T any]() *Graph[T] {
	return &Graph[T]{
		nodes:    make(map[string]*Node[T]),
		edges:    make(map[string]*Edge[T]),
		dragging: make(map[string]bool),
	}
}

// AddNode inserts a node. It fails with ErrCodeDuplicateID if the id is
// already present, ErrCodeInvalidValue for an empty id, and ErrCodeNonFinite
// if either coordinate is NaN or infinite. The graph stores a copy.
func (g *Graph[T]) AddNode(n Node[T]) error {
	if n.ID == "" {
		return NewError(ErrCodeInvalidValue, "node id must not be empty")
	}
	if _, ok := g.nodes[n.ID]; ok {
		return NewError(ErrCodeDuplicateID, "node %q already exists", n.ID)
	}
	if !finite(n.X) || !finite(n.Y) {
		return NewError(ErrCodeNonFinite, "node %q has non-finite position (%v, %v)", n.ID, n.X, n.Y)
	}
	g.nodes[n.ID] = &n
	g.nodeOrder = append(g.nodeOrder, n.ID)
	return nil
}

// AddEdge inserts an edge. Both endpoints must already exist
// (ErrCodeUnknownEndpoint) and the edge id must be new (ErrCodeDuplicateID).
// Zero Strength/Distance are filled with the package defaults; explicit
// values must be positive and finite.
func (g *Graph[T]) AddEdge(e Edge[T]) error {
	if e.ID == "" {
		return NewError(ErrCodeInvalidValue, "edge id must not be empty")
	}
	if _, ok := g.edges[e.ID]; ok {
		return NewError(ErrCodeDuplicateID, "edge %q already exists", e.ID)
	}
	if _, ok := g.nodes[e.Source]; !ok {
		return NewError(ErrCodeUnknownEndpoint, "edge %q: source node %q not in graph", e.ID, e.Source)
	}
	if _, ok := g.nodes[e.Target]; !ok {
		return NewError(ErrCodeUnknownEndpoint, "edge %q: target node %q not in graph", e.ID, e.Target)
	}
	if e.Strength == 0 {
		e.Strength = DefaultEdgeStrength
	}
	if e.Distance == 0 {
		e.Distance = DefaultEdgeDistance
	}
	if !finite(e.Strength) || e.Strength <= 0 {
		return NewError(ErrCodeInvalidValue, "edge %q: strength must be positive and finite, got %v", e.ID, e.Strength)
	}
	if !finite(e.Distance) || e.Distance <= 0 {
		return NewError(ErrCodeInvalidValue, "edge %q: distance must be positive and finite, got %v", e.ID, e.Distance)
	}
	g.edges[e.ID] = &e
	g.edgeOrder = append(g.edgeOrder, e.ID)
	return nil
}

// RemoveNode removes the node and every edge that references it. It fails
// with ErrCodeUnknownID if the node is absent.
func (g *Graph[T]) RemoveNode(id string) error {
	if _, ok := g.nodes[id]; !ok {
		return NewError(ErrCodeUnknownID, "node %q not in graph", id)
	}
	delete(g.nodes, id)
	delete(g.dragging, id)
	g.nodeOrder = removeID(g.nodeOrder, id)

	var cascade []string
	for _, eid := range g.edgeOrder {
		e := g.edges[eid]
		if e.Source == id || e.Target == id {
			cascade = append(cascade, eid)
		}
	}
	for _, eid := range cascade {
		delete(g.edges, eid)
		g.edgeOrder = removeID(g.edgeOrder, eid)
	}
	return nil
}

// RemoveEdge removes an edge unconditionally. It fails with ErrCodeUnknownID
// if the edge is absent.
func (g *Graph[T]) RemoveEdge(id string) error {
	if _, ok := g.edges[id]; !ok {
		return NewError(ErrCodeUnknownID, "edge %q not in graph", id)
	}
	delete(g.edges, id)
	g.edgeOrder = removeID(g.edgeOrder, id)
	return nil
}

// Node returns the node with the given id, or nil.
func (g *Graph[T]) Node(id string) *Node[T] { return g.nodes[id] }

// Edge returns the edge with the given id, or nil.
func (g *Graph[T]) Edge(id string) *Edge[T] { return g.edges[id] }

// Nodes returns all nodes in insertion order. The returned slice is freshly
// allocated but the pointed-to nodes are the graph's own.
func (g *Graph[T]) Nodes() []*Node[T] {
	out := make([]*Node[T], 0, len(g.nodeOrder))
	for _, id := range g.nodeOrder {
		out = append(out, g.nodes[id])
	}
	return out
}

// Edges returns all edges in insertion order.
func (g *Graph[T]) Edges() []*Edge[T] {
	out := make([]*Edge[T], 0, len(g.edgeOrder))
	for _, id := range g.edgeOrder {
		out = append(out, g.edges[id])
	}
	return out
}

// NodeCount returns the number of nodes.
func (g *Graph[T]) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges.
func (g *Graph[T]) EdgeCount() int { return len(g.edges) }

// BeginDrag pins the node for the duration of a drag interaction. Position
// writes outside the integrator are only legal between BeginDrag and
// EndDrag.
func (g *Graph[T]) BeginDrag(id string) error {
	n, ok := g.nodes[id]
	if !ok {
		return NewError(ErrCodeUnknownID, "node %q not in graph", id)
	}
	n.Fixed = true
	n.VX, n.VY = 0, 0
	g.dragging[id] = true
	return nil
}

// DragTo moves a node currently under drag. Coordinates must be finite.
func (g *Graph[T]) DragTo(id string, x, y float64) error {
	if !g.dragging[id] {
		return NewError(ErrCodeInvalidValue, "node %q is not being dragged", id)
	}
	if !finite(x) || !finite(y) {
		return NewError(ErrCodeNonFinite, "drag position (%v, %v) is non-finite", x, y)
	}
	n := g.nodes[id]
	n.X, n.Y = x, y
	return nil
}

// EndDrag releases the drag. The node stays pinned only when keepPinned is
// set (the "pin on release" interaction).
func (g *Graph[T]) EndDrag(id string, keepPinned bool) error {
	if !g.dragging[id] {
		return NewError(ErrCodeInvalidValue, "node %q is not being dragged", id)
	}
	delete(g.dragging, id)
	g.nodes[id].Fixed = keepPinned
	return nil
}

func removeID(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
