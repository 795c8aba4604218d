package dag

import (
	"maps"
	"slices"
)

// CountCrossings returns the total number of edge crossings for the given
// rank orderings. It sums the crossings between each pair of consecutive
// ranks. The orders map should contain node IDs in left-to-right order for
// each rank. Ranks without entries in the map are treated as empty.
//
// Example:
//
//	orders := map[int][]string{
//	    0: {"calc1", "calc2"},
//	    1: {"and-1", "or-1"},
//	}
//	crossings := dag.CountCrossings(g, orders)
//
// This function is used during ordering optimization to evaluate candidate
// orderings. It runs in O(R × E log V) time where R is the number of ranks,
// E is edges per layer, and V is nodes per layer.
func CountCrossings(g *DAG, orders map[int][]string) int {
	ranks := slices.Sorted(maps.Keys(orders))
	crossings := 0
	for i := 0; i < len(ranks)-1; i++ {
		r := ranks[i]
		crossings += CountLayerCrossings(g, orders[r], orders[r+1])
	}
	return crossings
}

// CountLayerCrossings counts edge crossings between two adjacent ranks using
// a Fenwick tree (binary indexed tree) for O(E log V) performance where E is
// the number of edges between the ranks and V is the number of nodes in the
// lower rank.
//
// Two edges (u1,v1) and (u2,v2) cross if and only if:
//
//	pos(u1) < pos(u2) AND pos(v1) > pos(v2)
//
// This is equivalent to counting inversions in the sequence of target
// positions when edges are sorted by source position.
//
// Returns 0 if either rank is empty or nil, as no crossings can exist
// without edges.
func CountLayerCrossings(g *DAG, upper, lower []string) int {
	if len(upper) == 0 || len(lower) == 0 {
		return 0
	}

	lowerPos := PosMap(lower)

	type edge struct{ upper, lower int }
	edges := make([]edge, 0, len(upper)*2)
	for i, nodeID := range upper {
		for _, child := range g.Children(nodeID) {
			if pos, ok := lowerPos[child]; ok {
				edges = append(edges, edge{i, pos})
			}
		}
	}
	if len(edges) < 2 {
		return 0
	}

	// Sort edges by source position, then by target position
	slices.SortFunc(edges, func(a, b edge) int {
		if a.upper != b.upper {
			return a.upper - b.upper
		}
		return a.lower - b.lower
	})

	// Count inversions using Fenwick tree
	fenwick := make([]int, len(lower)+1)
	crossings, total := 0, 0
	for _, e := range edges {
		// Query: count edges seen so far with target <= e.lower
		lessOrEqual := 0
		for q := e.lower + 1; q > 0; q -= q & (-q) {
			lessOrEqual += fenwick[q]
		}
		// Crossings = edges seen so far with target > e.lower
		crossings += total - lessOrEqual

		// Update: increment count at target position
		total++
		for u := e.lower + 1; u <= len(lower); u += u & (-u) {
			fenwick[u]++
		}
	}
	return crossings
}
