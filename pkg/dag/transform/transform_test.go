package transform

import (
	"testing"

	"github.com/courseflow/courseflow/pkg/dag"
)

func buildGraph(t *testing.T, nodes []string, edges [][2]string) *dag.DAG {
	t.Helper()
	g := dag.New()
	for _, id := range nodes {
		if err := g.AddNode(dag.Node{ID: id}); err != nil {
			t.Fatalf("AddNode(%s): %v", id, err)
		}
	}
	for _, e := range edges {
		if err := g.AddEdge(dag.Edge{From: e[0], To: e[1]}); err != nil {
			t.Fatalf("AddEdge(%s→%s): %v", e[0], e[1], err)
		}
	}
	return g
}

func rankOf(t *testing.T, g *dag.DAG, id string) int {
	t.Helper()
	n, ok := g.Node(id)
	if !ok {
		t.Fatalf("node %s not found", id)
	}
	return n.Rank
}

func TestAssignRanks_Chain(t *testing.T) {
	g := buildGraph(t,
		[]string{"a", "b", "c"},
		[][2]string{{"a", "b"}, {"b", "c"}},
	)

	AssignRanks(g)

	for id, want := range map[string]int{"a": 0, "b": 1, "c": 2} {
		if got := rankOf(t, g, id); got != want {
			t.Errorf("rank(%s) = %d, want %d", id, got, want)
		}
	}
}

func TestAssignRanks_LongestPathWins(t *testing.T) {
	// a→b→c and a→c: c must sit below b, not directly below a.
	g := buildGraph(t,
		[]string{"a", "b", "c"},
		[][2]string{{"a", "b"}, {"b", "c"}, {"a", "c"}},
	)

	AssignRanks(g)

	if got := rankOf(t, g, "c"); got != 2 {
		t.Errorf("rank(c) = %d, want 2", got)
	}
}

func TestAssignRanks_IsolatedNodeAtRankZero(t *testing.T) {
	g := buildGraph(t,
		[]string{"a", "b", "island"},
		[][2]string{{"a", "b"}},
	)

	AssignRanks(g)

	if got := rankOf(t, g, "island"); got != 0 {
		t.Errorf("rank(island) = %d, want 0", got)
	}
}

func TestAssignRanks_AndOrFanIn(t *testing.T) {
	// Two leaves feed an AND connector which feeds the target.
	g := buildGraph(t,
		[]string{"A", "B", "and1", "target"},
		[][2]string{{"A", "and1"}, {"B", "and1"}, {"and1", "target"}},
	)

	AssignRanks(g)

	if got := rankOf(t, g, "and1"); got != 1 {
		t.Errorf("rank(and1) = %d, want 1", got)
	}
	if got := rankOf(t, g, "target"); got != 2 {
		t.Errorf("rank(target) = %d, want 2", got)
	}
}

func TestBreakCycles_NoCycles(t *testing.T) {
	g := buildGraph(t,
		[]string{"a", "b", "c"},
		[][2]string{{"a", "b"}, {"b", "c"}},
	)

	removed := BreakCycles(g)

	if removed != 0 {
		t.Errorf("BreakCycles() removed %d edges, want 0", removed)
	}
	if g.EdgeCount() != 2 {
		t.Errorf("EdgeCount() = %d, want 2", g.EdgeCount())
	}
}

func TestBreakCycles_SimpleCycle(t *testing.T) {
	g := buildGraph(t,
		[]string{"a", "b"},
		[][2]string{{"a", "b"}, {"b", "a"}},
	)

	removed := BreakCycles(g)

	if removed != 1 {
		t.Errorf("BreakCycles() removed %d edges, want 1", removed)
	}
	if err := g.Validate(); err != nil {
		t.Errorf("Validate() after BreakCycles = %v, want nil", err)
	}
}

func TestBreakCycles_TriangleCycle(t *testing.T) {
	g := buildGraph(t,
		[]string{"a", "b", "c"},
		[][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}},
	)

	removed := BreakCycles(g)

	if removed != 1 {
		t.Errorf("BreakCycles() removed %d edges, want 1", removed)
	}
	if g.EdgeCount() != 2 {
		t.Errorf("EdgeCount() = %d, want 2", g.EdgeCount())
	}
}

func TestBreakCycles_Deterministic(t *testing.T) {
	build := func() *dag.DAG {
		return buildGraph(t,
			[]string{"a", "b", "c", "d"},
			[][2]string{{"a", "b"}, {"b", "c"}, {"c", "b"}, {"c", "d"}, {"d", "a"}},
		)
	}

	g1, g2 := build(), build()
	BreakCycles(g1)
	BreakCycles(g2)

	e1, e2 := g1.Edges(), g2.Edges()
	if len(e1) != len(e2) {
		t.Fatalf("edge counts differ: %d vs %d", len(e1), len(e2))
	}
	for i := range e1 {
		if e1[i] != e2[i] {
			t.Errorf("edge %d differs: %v vs %v", i, e1[i], e2[i])
		}
	}
}

func TestSubdivide_LongEdge(t *testing.T) {
	g := buildGraph(t,
		[]string{"a", "b", "c"},
		[][2]string{{"a", "b"}, {"b", "c"}, {"a", "c"}},
	)
	AssignRanks(g)

	Subdivide(g)

	// The a→c edge (spanning ranks 0→2) is replaced by a→a_v_1→c.
	virtual, ok := g.Node("a_v_1")
	if !ok {
		t.Fatal("expected virtual node a_v_1")
	}
	if !virtual.IsVirtual() {
		t.Error("a_v_1 should be virtual")
	}
	if virtual.MasterID != "a" {
		t.Errorf("a_v_1.MasterID = %q, want %q", virtual.MasterID, "a")
	}

	// Every surviving edge connects consecutive ranks.
	for _, e := range g.Edges() {
		src, _ := g.Node(e.From)
		dst, _ := g.Node(e.To)
		if dst.Rank != src.Rank+1 {
			t.Errorf("edge %s→%s spans ranks %d→%d", e.From, e.To, src.Rank, dst.Rank)
		}
	}
}

func TestSubdivide_ShortEdgesUntouched(t *testing.T) {
	g := buildGraph(t,
		[]string{"a", "b"},
		[][2]string{{"a", "b"}},
	)
	AssignRanks(g)

	Subdivide(g)

	if g.NodeCount() != 2 {
		t.Errorf("NodeCount() = %d, want 2", g.NodeCount())
	}
	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount() = %d, want 1", g.EdgeCount())
	}
}

func TestSubdivide_IDCollision(t *testing.T) {
	// A pre-existing node already claims the generated virtual ID.
	g := buildGraph(t,
		[]string{"a", "b", "c", "a_v_1"},
		[][2]string{{"a", "b"}, {"b", "c"}, {"a", "c"}},
	)
	AssignRanks(g)

	Subdivide(g)

	if _, ok := g.Node("a_v_1__2"); !ok {
		t.Error("expected collision-suffixed virtual node a_v_1__2")
	}
}

func TestSubdivide_IDCollisionChain(t *testing.T) {
	// Both the bare virtual ID and its first suffix are taken.
	g := buildGraph(t,
		[]string{"a", "b", "c", "a_v_1", "a_v_1__2"},
		[][2]string{{"a", "b"}, {"b", "c"}, {"a", "c"}},
	)
	AssignRanks(g)

	Subdivide(g)

	if _, ok := g.Node("a_v_1__3"); !ok {
		t.Error("expected collision-suffixed virtual node a_v_1__3")
	}
}
