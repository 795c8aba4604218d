package export

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/courseflow/courseflow/pkg/analytics"
	"github.com/courseflow/courseflow/pkg/layout"
	"github.com/courseflow/courseflow/pkg/prereq"
)

func intPtr(v int) *int { return &v }

func sampleResult() *layout.Result {
	return &layout.Result{
		Nodes: []layout.PositionedNode{
			{
				Node: prereq.Node{
					ID: "calc1", Kind: prereq.KindCourse, CourseID: intPtr(1),
					Meta: &prereq.CourseMetadata{CourseID: 1, Code: "MATH 151", Title: "Calculus I", Credits: "4"},
				},
				Status: prereq.StatusCompleted,
				X:      40, Y: 40, Width: 180, Height: 72,
			},
			{
				Node:   prereq.Node{ID: "and", Kind: prereq.KindAnd},
				Status: prereq.StatusLocked,
				X:      300, Y: 56, Width: 56, Height: 40,
			},
			{
				Node:     prereq.Node{ID: "calc2", Kind: prereq.KindCourse, CourseID: intPtr(2)},
				Status:   prereq.StatusAvailable,
				IsTarget: true,
				X:        460, Y: 40, Width: 180, Height: 72,
			},
		},
		Edges: []layout.Edge{
			{ID: "calc1->and", Source: "calc1", Target: "and"},
			{ID: "and->calc2", Source: "and", Target: "calc2"},
		},
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	res := sampleResult()
	doc := FromResult(res, analytics.Compute(res.Nodes, res.Edges))

	data, err := Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	got, err := Read(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	if len(got.Nodes) != 3 || len(got.Edges) != 2 {
		t.Fatalf("round trip lost content: %d nodes, %d edges", len(got.Nodes), len(got.Edges))
	}

	calc1 := got.Nodes[0]
	if calc1.ID != "calc1" || calc1.Position.X != 40 || calc1.Width != 180 {
		t.Errorf("calc1 = %+v", calc1)
	}
	if calc1.Data.Label != "MATH 151" || calc1.Data.Status != prereq.StatusCompleted {
		t.Errorf("calc1.Data = %+v", calc1.Data)
	}
	if calc1.Data.Metadata == nil || calc1.Data.Metadata.Title != "Calculus I" {
		t.Errorf("calc1 metadata lost: %+v", calc1.Data.Metadata)
	}

	and := got.Nodes[1]
	if !and.Data.IsLogicNode || and.Data.CourseID != nil {
		t.Errorf("and.Data = %+v", and.Data)
	}

	calc2 := got.Nodes[2]
	if !calc2.Data.IsTarget {
		t.Error("target flag lost")
	}

	if got.Summary.TotalNodes != 3 || got.Summary.MaxDepth != 2 {
		t.Errorf("summary = %+v", got.Summary)
	}
}

func TestWriteAndReadFile(t *testing.T) {
	res := sampleResult()
	doc := FromResult(res, analytics.Summary{TotalNodes: 3})
	path := filepath.Join(t.TempDir(), "graph.json")

	if err := WriteFile(doc, path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(got.Nodes) != 3 {
		t.Errorf("got %d nodes, want 3", len(got.Nodes))
	}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(sampleResult(), layout.DirectionLR)

	for _, want := range []string{
		"digraph prerequisites",
		"rankdir=LR",
		`"calc1" -> "and"`,
		`"and" -> "calc2"`,
		"fillcolor=palegreen", // completed
		"shape=diamond",       // connector
		"penwidth=3",          // target emphasis
		`label="MATH 151"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOT_InvalidDirectionFallsBack(t *testing.T) {
	dot := ToDOT(sampleResult(), layout.Direction("bogus"))
	if !strings.Contains(dot, "rankdir=LR") {
		t.Error("invalid direction did not fall back to LR")
	}
}
