package layout

import (
	"reflect"
	"strings"
	"testing"

	"github.com/courseflow/courseflow/pkg/dag"
	"github.com/courseflow/courseflow/pkg/errors"
	"github.com/courseflow/courseflow/pkg/prereq"
)

func intPtr(v int) *int { return &v }

func courseNode(id string, courseID int) prereq.Node {
	return prereq.Node{ID: id, Kind: prereq.KindCourse, CourseID: intPtr(courseID)}
}

// chainGraph is intro → and → advanced with a detached elective.
func chainGraph() prereq.Graph {
	return prereq.Graph{
		Nodes: []prereq.Node{
			courseNode("intro", 1),
			{ID: "and", Kind: prereq.KindAnd},
			courseNode("advanced", 2),
			courseNode("elective", 3),
		},
		Edges: []prereq.Edge{
			{Source: "intro", Target: "and"},
			{Source: "and", Target: "advanced"},
		},
	}
}

func TestBuild_SingleNode(t *testing.T) {
	g := prereq.Graph{Nodes: []prereq.Node{courseNode("only", 1)}}

	res, err := Build(g, prereq.UserProgress{}, 1, DefaultConfig())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if len(res.Nodes) != 1 {
		t.Fatalf("got %d nodes, want 1", len(res.Nodes))
	}
	if len(res.Edges) != 0 {
		t.Fatalf("got %d edges, want 0", len(res.Edges))
	}

	n := res.Nodes[0]
	if n.X != DefaultMarginX || n.Y != DefaultMarginY {
		t.Errorf("position = (%v, %v), want margins (%v, %v)", n.X, n.Y, DefaultMarginX, DefaultMarginY)
	}
	if !n.IsTarget {
		t.Error("target course not flagged")
	}
}

func TestBuild_Deterministic(t *testing.T) {
	g := chainGraph()
	progress := prereq.UserProgress{Completed: []int{1}}

	first, err := Build(g, progress, 2, DefaultConfig())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for i := 0; i < 5; i++ {
		next, err := Build(g, progress, 2, DefaultConfig())
		if err != nil {
			t.Fatalf("Build: %v", err)
		}
		if !reflect.DeepEqual(first, next) {
			t.Fatalf("run %d differs:\nfirst: %+v\nnext:  %+v", i, first, next)
		}
	}
}

func TestBuild_RanksAdvanceAlongDirection(t *testing.T) {
	g := chainGraph()

	tests := []struct {
		direction Direction
		// check asserts that prerequisite precedes dependent along the flow.
		check func(t *testing.T, intro, advanced PositionedNode)
	}{
		{DirectionLR, func(t *testing.T, intro, advanced PositionedNode) {
			if intro.X >= advanced.X {
				t.Errorf("LR: intro.X %v >= advanced.X %v", intro.X, advanced.X)
			}
		}},
		{DirectionRL, func(t *testing.T, intro, advanced PositionedNode) {
			if intro.X <= advanced.X {
				t.Errorf("RL: intro.X %v <= advanced.X %v", intro.X, advanced.X)
			}
		}},
		{DirectionTB, func(t *testing.T, intro, advanced PositionedNode) {
			if intro.Y >= advanced.Y {
				t.Errorf("TB: intro.Y %v >= advanced.Y %v", intro.Y, advanced.Y)
			}
		}},
		{DirectionBT, func(t *testing.T, intro, advanced PositionedNode) {
			if intro.Y <= advanced.Y {
				t.Errorf("BT: intro.Y %v <= advanced.Y %v", intro.Y, advanced.Y)
			}
		}},
	}

	for _, tt := range tests {
		t.Run(string(tt.direction), func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Direction = tt.direction
			res, err := Build(g, prereq.UserProgress{}, 2, cfg)
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			tt.check(t, findNode(t, res, "intro"), findNode(t, res, "advanced"))
		})
	}
}

func TestBuild_StatusAndFlags(t *testing.T) {
	g := chainGraph()
	progress := prereq.UserProgress{Completed: []int{1}, InProgress: []int{3}}

	res, err := Build(g, progress, 2, DefaultConfig())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	intro := findNode(t, res, "intro")
	if intro.Status != prereq.StatusCompleted {
		t.Errorf("intro.Status = %q, want completed", intro.Status)
	}
	and := findNode(t, res, "and")
	if and.Status != prereq.StatusLocked {
		t.Errorf("and.Status = %q, want locked", and.Status)
	}
	if !and.IsLogicNode() {
		t.Error("and not flagged as logic node")
	}
	advanced := findNode(t, res, "advanced")
	if !advanced.IsTarget {
		t.Error("advanced not flagged as target")
	}
	if advanced.IsLogicNode() {
		t.Error("advanced flagged as logic node")
	}
}

func TestBuild_CyclicInputDegrades(t *testing.T) {
	g := prereq.Graph{
		Nodes: []prereq.Node{courseNode("a", 1), courseNode("b", 2)},
		Edges: []prereq.Edge{
			{Source: "a", Target: "b"},
			{Source: "b", Target: "a"},
		},
	}

	res, err := Build(g, prereq.UserProgress{}, 1, DefaultConfig())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(res.Nodes) != 2 {
		t.Errorf("got %d nodes, want 2", len(res.Nodes))
	}
	// Output edges keep the original endpoints even though ranking drops a
	// back edge internally.
	if len(res.Edges) != 2 {
		t.Errorf("got %d edges, want 2", len(res.Edges))
	}
}

func TestBuild_InvalidDirection(t *testing.T) {
	cfg := Config{Direction: "diagonal"}
	_, err := Build(chainGraph(), prereq.UserProgress{}, 1, cfg)
	if !errors.Is(err, errors.ErrCodeInvalidDirection) {
		t.Fatalf("err = %v, want INVALID_DIRECTION", err)
	}
}

func TestBuild_EdgeIDsUnique(t *testing.T) {
	g := prereq.Graph{
		Nodes: []prereq.Node{courseNode("a", 1), courseNode("b", 2)},
		Edges: []prereq.Edge{
			{Source: "a", Target: "b"},
			{Source: "a", Target: "b"},
		},
	}

	res, err := Build(g, prereq.UserProgress{}, 1, DefaultConfig())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	seen := make(map[string]bool)
	for _, e := range res.Edges {
		if seen[e.ID] {
			t.Errorf("duplicate edge id %q", e.ID)
		}
		seen[e.ID] = true
	}
}

func TestNodeSize(t *testing.T) {
	longCode := "VERYLONGDEPT 4990-HONORS-SEQ"
	tests := []struct {
		name string
		node prereq.Node
		w, h float64
	}{
		{"Connector", prereq.Node{ID: "x", Kind: prereq.KindOr}, logicWidth, logicHeight},
		{"CourseShortLabel", courseNode("c", 1), courseBaseWidth, courseBaseHeight},
		{
			"CourseLongLabel",
			prereq.Node{ID: "c", Kind: prereq.KindCourse, CourseID: intPtr(1), Meta: &prereq.CourseMetadata{Code: longCode}},
			courseBaseWidth + float64(len(longCode)-labelGrowThreshold)*widthPerExtraChar,
			courseBaseHeight,
		},
		{
			"CourseTallTitle",
			prereq.Node{ID: "c", Kind: prereq.KindCourse, CourseID: intPtr(1), Meta: &prereq.CourseMetadata{
				Code:  "CS 101",
				Title: "Introduction to the Design and Analysis of Algorithms",
			}},
			courseBaseWidth,
			courseBaseHeight + tallTierExtra,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := NodeSize(tt.node)
			if w != tt.w || h != tt.h {
				t.Errorf("NodeSize = (%v, %v), want (%v, %v)", w, h, tt.w, tt.h)
			}
		})
	}
}

func TestNodeSize_WidthCap(t *testing.T) {
	// A 200-char code would overflow the cap by a wide margin.
	meta := &prereq.CourseMetadata{Code: strings.Repeat("X", 200)}
	n := prereq.Node{ID: "c", Kind: prereq.KindCourse, CourseID: intPtr(1), Meta: meta}
	if w, _ := NodeSize(n); w != maxNodeWidth {
		t.Errorf("width = %v, want cap %v", w, maxNodeWidth)
	}
}

func TestBarycentric_EliminatesCrossing(t *testing.T) {
	// X pattern: a→y, b→x crosses under alphabetical order.
	d := dag.New()
	for _, id := range []string{"a", "b"} {
		if err := d.AddNode(dag.Node{ID: id}); err != nil {
			t.Fatal(err)
		}
	}
	for _, id := range []string{"x", "y"} {
		if err := d.AddNode(dag.Node{ID: id, Rank: 1}); err != nil {
			t.Fatal(err)
		}
	}
	for _, e := range []dag.Edge{{From: "a", To: "y"}, {From: "b", To: "x"}} {
		if err := d.AddEdge(e); err != nil {
			t.Fatal(err)
		}
	}

	if got := dag.CountLayerCrossings(d, []string{"a", "b"}, []string{"x", "y"}); got != 1 {
		t.Fatalf("initial crossings = %d, want 1", got)
	}

	orders := Barycentric{}.OrderRanks(d)
	if got := dag.CountCrossings(d, orders); got != 0 {
		t.Errorf("crossings after ordering = %d, want 0", got)
	}
}

func findNode(t *testing.T, res *Result, id string) PositionedNode {
	t.Helper()
	for _, n := range res.Nodes {
		if n.ID == id {
			return n
		}
	}
	t.Fatalf("node %q not in result", id)
	return PositionedNode{}
}
