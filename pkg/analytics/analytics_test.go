package analytics

import (
	"math"
	"testing"

	"github.com/courseflow/courseflow/pkg/layout"
	"github.com/courseflow/courseflow/pkg/prereq"
)

func intPtr(v int) *int { return &v }

func pnode(id string, status prereq.Status, credits string) layout.PositionedNode {
	n := prereq.Node{ID: id, Kind: prereq.KindCourse, CourseID: intPtr(1)}
	if credits != "" {
		n.Meta = &prereq.CourseMetadata{Credits: credits}
	}
	return layout.PositionedNode{Node: n, Status: status}
}

func edge(source, target string) layout.Edge {
	return layout.Edge{ID: source + "->" + target, Source: source, Target: target}
}

func TestCompute_Counts(t *testing.T) {
	nodes := []layout.PositionedNode{
		pnode("a", prereq.StatusCompleted, "3"),
		pnode("b", prereq.StatusCompleted, "4"),
		pnode("c", prereq.StatusInProgress, ""),
		pnode("d", prereq.StatusPlanned, "TBD"),
		pnode("e", prereq.StatusFailed, ""),
		pnode("f", prereq.StatusAvailable, "2"),
		pnode("g", prereq.StatusLocked, ""),
	}
	edges := []layout.Edge{edge("a", "c"), edge("b", "c")}

	s := Compute(nodes, edges)

	if s.TotalNodes != 7 || s.TotalEdges != 2 {
		t.Errorf("totals = (%d, %d), want (7, 2)", s.TotalNodes, s.TotalEdges)
	}
	if s.CompletedCourses != 2 || s.InProgressCourses != 1 || s.PlannedCourses != 1 ||
		s.FailedCourses != 1 || s.AvailableCourses != 1 || s.LockedCourses != 1 {
		t.Errorf("status counts wrong: %+v", s)
	}
	// Unparseable and absent credits are excluded from the mean: (3+4+2)/3.
	if math.Abs(s.AverageCredits-3.0) > 1e-9 {
		t.Errorf("AverageCredits = %v, want 3", s.AverageCredits)
	}
}

func TestCompute_NoCredits(t *testing.T) {
	nodes := []layout.PositionedNode{pnode("a", prereq.StatusAvailable, "")}
	if s := Compute(nodes, nil); s.AverageCredits != 0 {
		t.Errorf("AverageCredits = %v, want 0", s.AverageCredits)
	}
}

func TestMaxDepth(t *testing.T) {
	tests := []struct {
		name  string
		nodes []string
		edges [][2]string
		want  int
	}{
		{"Empty", nil, nil, 0},
		{"SingleNode", []string{"a"}, nil, 0},
		{"Chain", []string{"a", "b", "c"}, [][2]string{{"a", "b"}, {"b", "c"}}, 2},
		{
			"DiamondSharesSuffix",
			[]string{"a", "b", "c", "d"},
			[][2]string{{"a", "b"}, {"a", "c"}, {"b", "d"}, {"c", "d"}},
			2,
		},
		{
			"LongestBranchWins",
			[]string{"a", "b", "c", "d", "e"},
			[][2]string{{"a", "e"}, {"a", "b"}, {"b", "c"}, {"c", "d"}},
			3,
		},
		{
			"DisconnectedComponents",
			[]string{"a", "b", "x", "y", "z"},
			[][2]string{{"a", "b"}, {"x", "y"}, {"y", "z"}},
			2,
		},
		// Cyclic input must terminate; the figure is degraded (the back
		// edge is walked once before the path guard trips).
		{"Cycle", []string{"a", "b"}, [][2]string{{"a", "b"}, {"b", "a"}}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes := make([]layout.PositionedNode, 0, len(tt.nodes))
			for _, id := range tt.nodes {
				nodes = append(nodes, pnode(id, prereq.StatusAvailable, ""))
			}
			edges := make([]layout.Edge, 0, len(tt.edges))
			for _, e := range tt.edges {
				edges = append(edges, edge(e[0], e[1]))
			}
			if got := MaxDepth(nodes, edges); got != tt.want {
				t.Errorf("MaxDepth = %d, want %d", got, tt.want)
			}
		})
	}
}

// A course node feeding a connector feeding the target spans two edges.
func TestMaxDepth_CourseConnectorTarget(t *testing.T) {
	nodes := []layout.PositionedNode{
		pnode("prereq", prereq.StatusAvailable, ""),
		{Node: prereq.Node{ID: "and", Kind: prereq.KindAnd}, Status: prereq.StatusLocked},
		pnode("target", prereq.StatusAvailable, ""),
	}
	edges := []layout.Edge{edge("prereq", "and"), edge("and", "target")}

	if got := MaxDepth(nodes, edges); got != 2 {
		t.Errorf("MaxDepth = %d, want 2", got)
	}
}
