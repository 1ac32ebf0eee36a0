// Package ingest converts external edge-list data into validated graphs
// ready for simulation: JSON node-link documents and CSV edge lists. Every
// loaded element goes through the graph's validating Add operations.
package ingest

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/TFMV/forcegraph/models"
)

// Payload is the node/edge data type loaders attach to imported elements.
type Payload = map[string]any

// Loader parses one input format into a graph.
type Loader interface {
	Name() string
	Load(data []byte) (*models.Graph[Payload], error)
}

// ForFormat selects a loader by format name.
func ForFormat(format string) (Loader, error) {
	switch strings.ToLower(format) {
	case "json":
		return &JSONLoader{}, nil
	case "csv":
		return &CSVLoader{}, nil
	default:
		return nil, fmt.Errorf("unsupported import format: %q", format)
	}
}

// JSONLoader parses node-link JSON:
//
//	{"nodes": [{"id": "a", "type": "paper", "data": {...}}],
//	 "edges": [{"source": "a", "target": "b", "weight": 2}]}
//
// Edge ids are generated when absent. Weight maps to spring strength.
type JSONLoader struct{}

func (l *JSONLoader) Name() string { return "json" }

func (l *JSONLoader) Load(data []byte) (*models.Graph[Payload], error) {
	var doc struct {
		Nodes []struct {
			ID   string  `json:"id"`
			Type string  `json:"type"`
			X    float64 `json:"x"`
			Y    float64 `json:"y"`
			Data Payload `json:"data,omitempty"`
		} `json:"nodes"`
		Edges []struct {
			ID       string  `json:"id"`
			Type     string  `json:"type"`
			Source   string  `json:"source"`
			Target   string  `json:"target"`
			Weight   float64 `json:"weight"`
			Distance float64 `json:"distance"`
			Directed *bool   `json:"directed"`
			Hidden   bool    `json:"hidden"`
		} `json:"edges"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing node-link JSON: %w", err)
	}

	g := models.NewGraph[Payload]()
	for _, n := range doc.Nodes {
		if err := g.AddNode(models.Node[Payload]{
			ID: n.ID, Type: n.Type, X: n.X, Y: n.Y, Data: n.Data,
		}); err != nil {
			return nil, err
		}
	}
	for i, e := range doc.Edges {
		id := e.ID
		if id == "" {
			id = fmt.Sprintf("e%d:%s->%s", i, e.Source, e.Target)
		}
		// An absent "directed" keeps the directed default; only an explicit
		// false turns the edge undirected.
		if err := g.AddEdge(models.Edge[Payload]{
			ID:         id,
			Type:       e.Type,
			Source:     e.Source,
			Target:     e.Target,
			Undirected: e.Directed != nil && !*e.Directed,
			Strength:   e.Weight,
			Distance:   e.Distance,
			Hidden:     e.Hidden,
		}); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// CSVLoader parses an edge list with a header row. Source and target columns
// are matched by common names (source/from/src, target/to/dst); weight and
// type columns are optional. Nodes are created implicitly on first mention.
type CSVLoader struct{}

func (l *CSVLoader) Name() string { return "csv" }

func (l *CSVLoader) Load(data []byte) (*models.Graph[Payload], error) {
	reader := csv.NewReader(strings.NewReader(string(data)))
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	sourceIdx, targetIdx, weightIdx, typeIdx := -1, -1, -1, -1
	for i, col := range header {
		switch strings.ToLower(strings.TrimSpace(col)) {
		case "source", "from", "src":
			sourceIdx = i
		case "target", "to", "dst":
			targetIdx = i
		case "weight", "value", "strength":
			weightIdx = i
		case "type", "kind":
			typeIdx = i
		}
	}
	if sourceIdx == -1 || targetIdx == -1 {
		return nil, fmt.Errorf("CSV must contain source and target columns")
	}

	g := models.NewGraph[Payload]()
	row := 0
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV row: %w", err)
		}
		row++

		source, target := rec[sourceIdx], rec[targetIdx]
		for _, id := range []string{source, target} {
			if g.Node(id) == nil {
				if err := g.AddNode(models.Node[Payload]{ID: id}); err != nil {
					return nil, err
				}
			}
		}

		weight := 0.0
		if weightIdx >= 0 && weightIdx < len(rec) {
			if w, err := strconv.ParseFloat(strings.TrimSpace(rec[weightIdx]), 64); err == nil {
				weight = w
			}
		}
		edgeType := ""
		if typeIdx >= 0 && typeIdx < len(rec) {
			edgeType = rec[typeIdx]
		}

		if err := g.AddEdge(models.Edge[Payload]{
			ID:       fmt.Sprintf("e%d:%s->%s", row, source, target),
			Type:     edgeType,
			Source:   source,
			Target:   target,
			Strength: weight,
		}); err != nil {
			return nil, err
		}
	}
	return g, nil
}
