package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
)

// SnapshotVersion is the current snapshot wire version.
const SnapshotVersion = 1

// Viewport captures the camera state that accompanies a saved layout.
type Viewport struct {
	Zoom   float64 `json:"zoom"`
	Center Point   `json:"center"`
}

// Point is a plain 2D coordinate used in serialized form.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// SnapshotMetadata carries counts for quick inspection without decoding the
// full node/edge arrays.
type SnapshotMetadata struct {
	NodeCount int `json:"nodeCount"`
	EdgeCount int `json:"edgeCount"`
}

// Snapshot is the persisted form of a laid-out graph. The engine defines
// this shape; where it is stored is the caller's concern.
type Snapshot[T any] struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Nodes       []Node[T]        `json:"nodes"`
	Edges       []Edge[T]        `json:"edges"`
	Timestamp   time.Time        `json:"timestamp"`
	Version     int              `json:"version"`
	Metadata    SnapshotMetadata `json:"metadata"`
	Viewport    *Viewport        `json:"viewport,omitempty"`
}

// TakeSnapshot captures the graph's nodes and edges by value, in enumeration
// order, with a fresh uuid. The optional viewport may be nil.
func TakeSnapshot[T any](g *Graph[T], name, description string, vp *Viewport) Snapshot[T] {
	s := Snapshot[T]{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		Timestamp:   time.Now().UTC(),
		Version:     SnapshotVersion,
		Metadata:    SnapshotMetadata{NodeCount: g.NodeCount(), EdgeCount: g.EdgeCount()},
		Viewport:    vp,
	}
	for _, n := range g.Nodes() {
		s.Nodes = append(s.Nodes, *n)
	}
	for _, e := range g.Edges() {
		s.Edges = append(s.Edges, *e)
	}
	return s
}

// RestoreSnapshot rebuilds a graph from a snapshot. Every node and edge goes
// back through the validating Add operations, so a malformed snapshot fails
// here rather than entering simulation.
func RestoreSnapshot[T any](s Snapshot[T]) (*Graph[T], error) {
	g := NewGraph[T]()
	for _, n := range s.Nodes {
		if err := g.AddNode(n); err != nil {
			return nil, fmt.Errorf("restore snapshot %s: %w", s.ID, err)
		}
	}
	for _, e := range s.Edges {
		if err := g.AddEdge(e); err != nil {
			return nil, fmt.Errorf("restore snapshot %s: %w", s.ID, err)
		}
	}
	return g, nil
}

// MarshalSnapshot serializes a snapshot to pretty-printed JSON.
func MarshalSnapshot[T any](s Snapshot[T]) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return buf.Bytes(), nil
}

// UnmarshalSnapshot decodes a snapshot from JSON and checks the version.
func UnmarshalSnapshot[T any](data []byte) (Snapshot[T], error) {
	var s Snapshot[T]
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot[T]{}, fmt.Errorf("decode snapshot: %w", err)
	}
	if s.Version > SnapshotVersion {
		return Snapshot[T]{}, fmt.Errorf("snapshot version %d is newer than supported version %d", s.Version, SnapshotVersion)
	}
	return s, nil
}

// WriteSnapshot writes a snapshot as JSON to w.
func WriteSnapshot[T any](s Snapshot[T], w io.Writer) error {
	data, err := MarshalSnapshot(s)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// WriteSnapshotFile writes a snapshot to a JSON file with 0644 permissions.
func WriteSnapshotFile[T any](s Snapshot[T], path string) error {
	data, err := MarshalSnapshot(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadSnapshotFile reads and decodes a snapshot from a JSON file.
func ReadSnapshotFile[T any](path string) (Snapshot[T], error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot[T]{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalSnapshot[T](data)
}
