package transform

import (
	"fmt"

	"github.com/courseflow/courseflow/pkg/dag"
)

// Subdivide breaks edges that span multiple ranks into sequences of
// single-rank edges connected by synthetic virtual nodes.
//
// Subdivide ensures every edge in the graph connects nodes in consecutive
// ranks (parent.Rank + 1 == child.Rank). Any edge spanning multiple ranks is
// replaced by a chain of [dag.NodeKindVirtual] nodes. For example:
//
//	Before: calc1 (rank 0) → calc3 (rank 3)  [spans 3 ranks]
//	After:  calc1 → calc1_v_1 → calc1_v_2 → calc3  [3 single-rank edges]
//
// Each virtual node maintains a MasterID field linking back to the original
// source node. Virtual nodes take part in crossing reduction so that long
// edges are routed around intermediate ranks, and are stripped before the
// positioned graph is handed to the renderer.
//
// # Node IDs
//
// Virtual nodes are assigned unique IDs of the form "master_v_rank" (e.g.,
// "calc1_v_1"). If a collision occurs, a numeric suffix is appended
// ("calc1_v_1__2"). All generated IDs are tracked to guarantee uniqueness.
//
// # Performance
//
// Time complexity is O(V·D) where V is nodes and D is the maximum depth
// (rank count), as each long edge may spawn virtual nodes up to the depth.
func Subdivide(g *dag.DAG) {
	gen := newIDGen(g.Nodes())

	var toRemove []dag.Edge
	for _, e := range g.Edges() {
		src, srcOK := g.Node(e.From)
		dst, dstOK := g.Node(e.To)
		if !srcOK || !dstOK || dst.Rank <= src.Rank+1 {
			continue
		}

		toRemove = append(toRemove, e)
		prevID := src.ID
		for rank := src.Rank + 1; rank < dst.Rank; rank++ {
			prevID = addVirtual(g, gen, prevID, src.ID, rank)
		}
		if err := g.AddEdge(dag.Edge{From: prevID, To: dst.ID}); err != nil {
			panic(err)
		}
	}

	for _, e := range toRemove {
		g.RemoveEdge(e.From, e.To)
	}
}

func addVirtual(g *dag.DAG, gen *idGen, from, master string, rank int) string {
	id := gen.next(master, rank)
	if err := g.AddNode(dag.Node{
		ID:       id,
		Rank:     rank,
		Kind:     dag.NodeKindVirtual,
		MasterID: master,
	}); err != nil {
		panic(err)
	}
	if err := g.AddEdge(dag.Edge{From: from, To: id}); err != nil {
		panic(err)
	}
	return id
}

type idGen struct {
	used map[string]struct{}
}

func newIDGen(nodes []*dag.Node) *idGen {
	m := make(map[string]struct{}, len(nodes)*2)
	for _, n := range nodes {
		m[n.ID] = struct{}{}
	}
	return &idGen{used: m}
}

func (gen *idGen) next(base string, rank int) string {
	prefix := fmt.Sprintf("%s_v_%d", base, rank)
	id := prefix
	for i := 2; ; i++ {
		if _, exists := gen.used[id]; !exists {
			gen.used[id] = struct{}{}
			return id
		}
		id = fmt.Sprintf("%s__%d", prefix, i)
	}
}
