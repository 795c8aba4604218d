package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/courseflow/courseflow/pkg/analytics"
	"github.com/courseflow/courseflow/pkg/layout"
	"github.com/courseflow/courseflow/pkg/prereq"
)

// Document is the serialization format handed to the rendering layer.
// Positions are top-left anchors; the renderer draws without further
// computation.
type Document struct {
	Nodes   []DocumentNode    `json:"nodes"`
	Edges   []layout.Edge     `json:"edges"`
	Summary analytics.Summary `json:"summary"`
}

// DocumentNode flattens a positioned node into the renderer's shape.
type DocumentNode struct {
	ID       string   `json:"id"`
	Kind     string   `json:"kind"`
	Position Position `json:"position"`
	Width    float64  `json:"width"`
	Height   float64  `json:"height"`
	Data     NodeData `json:"data"`
}

// Position is a top-left anchor in pixels.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NodeData carries everything the renderer shows inside a node.
type NodeData struct {
	Label       string                 `json:"label"`
	Status      prereq.Status          `json:"status"`
	IsTarget    bool                   `json:"isTarget"`
	IsLogicNode bool                   `json:"isLogicNode"`
	CourseID    *int                   `json:"courseId,omitempty"`
	Metadata    *prereq.CourseMetadata `json:"metadata,omitempty"`
}

// FromResult builds a Document from a positioned graph and its summary.
func FromResult(res *layout.Result, summary analytics.Summary) Document {
	nodes := make([]DocumentNode, 0, len(res.Nodes))
	for _, n := range res.Nodes {
		nodes = append(nodes, DocumentNode{
			ID:       n.ID,
			Kind:     string(n.Kind),
			Position: Position{X: n.X, Y: n.Y},
			Width:    n.Width,
			Height:   n.Height,
			Data: NodeData{
				Label:       n.Label(),
				Status:      n.Status,
				IsTarget:    n.IsTarget,
				IsLogicNode: n.IsLogicNode(),
				CourseID:    n.CourseID,
				Metadata:    n.Meta,
			},
		})
	}
	edges := res.Edges
	if edges == nil {
		edges = []layout.Edge{}
	}
	return Document{Nodes: nodes, Edges: edges, Summary: summary}
}

// Marshal converts a document to indented JSON bytes.
func Marshal(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeTo(doc, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write writes a document as JSON to w.
func Write(doc Document, w io.Writer) error {
	return writeTo(doc, w)
}

// WriteFile writes a document to a JSON file with 0644 permissions.
func WriteFile(doc Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeTo(doc, f)
}

// Read decodes a document from r.
func Read(r io.Reader) (Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("decode: %w", err)
	}
	return doc, nil
}

// ReadFile decodes a document from a JSON file.
func ReadFile(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

func writeTo(doc Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
