package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/courseflow/courseflow/pkg/analytics"
	"github.com/courseflow/courseflow/pkg/export"
	"github.com/courseflow/courseflow/pkg/pipeline"
	"github.com/courseflow/courseflow/pkg/prereq"
)

func intPtr(v int) *int { return &v }

type stubSource struct{}

func (stubSource) FetchGraph(ctx context.Context, courseID int) (prereq.RawGraph, error) {
	return prereq.RawGraph{
		Nodes: []prereq.RawNode{
			{ID: "a", Type: "COURSE", CourseID: intPtr(1)},
			{ID: "t", Type: "COURSE", CourseID: intPtr(courseID)},
		},
		Links: []prereq.RawEdge{{Source: "a", Target: "t"}},
	}, nil
}

func (stubSource) FetchProgress(ctx context.Context, studentID string) (prereq.UserProgress, error) {
	return prereq.UserProgress{Completed: []int{1}}, nil
}

func newTestServer() *Server {
	return New(pipeline.NewRunner(nil, nil, nil), stubSource{}, nil, nil)
}

func TestHandleGraph(t *testing.T) {
	srv := httptest.NewServer(newTestServer().Router())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/courses/101/graph?student=s-1")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if got := resp.Header.Get("X-Request-ID"); got == "" {
		t.Error("missing X-Request-ID header")
	}

	var doc export.Document
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(doc.Nodes) != 2 || len(doc.Edges) != 1 {
		t.Errorf("doc has %d nodes, %d edges", len(doc.Nodes), len(doc.Edges))
	}

	var target *export.DocumentNode
	for i := range doc.Nodes {
		if doc.Nodes[i].Data.IsTarget {
			target = &doc.Nodes[i]
		}
	}
	if target == nil || target.ID != "t" {
		t.Errorf("target node not flagged: %+v", doc.Nodes)
	}
}

func TestHandleSummary(t *testing.T) {
	srv := httptest.NewServer(newTestServer().Router())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/courses/101/summary?student=s-1")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()

	var summary analytics.Summary
	if err := json.NewDecoder(resp.Body).Decode(&summary); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if summary.TotalNodes != 2 || summary.CompletedCourses != 1 {
		t.Errorf("summary = %+v", summary)
	}
}

func TestHandleGraph_BadCourseID(t *testing.T) {
	srv := httptest.NewServer(newTestServer().Router())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/courses/not-a-number/graph")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestHealthz(t *testing.T) {
	srv := httptest.NewServer(newTestServer().Router())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}
