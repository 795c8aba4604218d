package layout

import (
	"slices"
	"sort"

	"github.com/courseflow/courseflow/pkg/dag"
)

// Orderer determines the sequence of nodes within each rank so that edge
// crossings are minimized. Implementations must be deterministic.
type Orderer interface {
	OrderRanks(g *dag.DAG) map[int][]string
}

// Barycentric implements the classic Sugiyama barycenter heuristic with
// transpose refinement. Each sweep sorts a rank by the average position of
// its neighbors in the adjacent rank, alternating sweep direction, then
// swaps adjacent pairs whenever that reduces crossings. The best ordering
// seen across all passes is returned.
//
// Ties sort by node id and the initial ordering is alphabetical, so the
// result is a pure function of the graph.
type Barycentric struct {
	// Passes bounds the number of down/up sweep pairs. Zero means
	// DefaultOrderingPasses.
	Passes int
}

// OrderRanks returns the per-rank node sequence.
func (b Barycentric) OrderRanks(g *dag.DAG) map[int][]string {
	passes := b.Passes
	if passes <= 0 {
		passes = DefaultOrderingPasses
	}

	orders := initialOrders(g)
	rankIDs := g.RankIDs()
	if len(rankIDs) < 2 {
		return orders
	}

	best := cloneOrders(orders)
	bestCrossings := dag.CountCrossings(g, best)

	for pass := 0; pass < passes && bestCrossings > 0; pass++ {
		// Downward sweep: parents fixed, reorder each lower rank.
		for i := 1; i < len(rankIDs); i++ {
			sortByBarycenter(g, orders, rankIDs[i], rankIDs[i-1], g.Parents)
		}
		// Upward sweep: children fixed, reorder each upper rank.
		for i := len(rankIDs) - 2; i >= 0; i-- {
			sortByBarycenter(g, orders, rankIDs[i], rankIDs[i+1], g.Children)
		}
		transpose(g, orders, rankIDs)

		if crossings := dag.CountCrossings(g, orders); crossings < bestCrossings {
			bestCrossings = crossings
			best = cloneOrders(orders)
		}
	}
	return best
}

// initialOrders seeds every rank alphabetically by node id.
func initialOrders(g *dag.DAG) map[int][]string {
	orders := make(map[int][]string)
	for _, rank := range g.RankIDs() {
		ids := dag.NodeIDs(g.NodesInRank(rank))
		slices.Sort(ids)
		orders[rank] = ids
	}
	return orders
}

// sortByBarycenter reorders orders[rank] by the mean position of each
// node's neighbors in the fixed adjacent rank. Nodes without neighbors
// keep their current position as their barycenter, which leaves isolated
// nodes stable across sweeps.
func sortByBarycenter(g *dag.DAG, orders map[int][]string, rank, fixedRank int, neighbors func(string) []string) {
	fixedPos := dag.PosMap(orders[fixedRank])
	current := orders[rank]

	weights := make(map[string]float64, len(current))
	for i, id := range current {
		var sum float64
		var count int
		for _, nb := range neighbors(id) {
			if pos, ok := fixedPos[nb]; ok {
				sum += float64(pos)
				count++
			}
		}
		if count == 0 {
			weights[id] = float64(i)
		} else {
			weights[id] = sum / float64(count)
		}
	}

	sort.SliceStable(current, func(i, j int) bool {
		wi, wj := weights[current[i]], weights[current[j]]
		if wi != wj {
			return wi < wj
		}
		return current[i] < current[j]
	})
}

// transpose greedily swaps adjacent nodes within each rank whenever the
// swap reduces crossings against both neighboring ranks, repeating until a
// full pass makes no improvement.
func transpose(g *dag.DAG, orders map[int][]string, rankIDs []int) {
	improved := true
	for improved {
		improved = false
		for idx, rank := range rankIDs {
			row := orders[rank]
			for i := 0; i+1 < len(row); i++ {
				before := localCrossings(g, orders, rankIDs, idx)
				row[i], row[i+1] = row[i+1], row[i]
				after := localCrossings(g, orders, rankIDs, idx)
				if after < before {
					improved = true
				} else {
					row[i], row[i+1] = row[i+1], row[i]
				}
			}
		}
	}
}

// localCrossings counts crossings in the two layers touching rankIDs[idx].
func localCrossings(g *dag.DAG, orders map[int][]string, rankIDs []int, idx int) int {
	total := 0
	if idx > 0 {
		total += dag.CountLayerCrossings(g, orders[rankIDs[idx-1]], orders[rankIDs[idx]])
	}
	if idx+1 < len(rankIDs) {
		total += dag.CountLayerCrossings(g, orders[rankIDs[idx]], orders[rankIDs[idx+1]])
	}
	return total
}

func cloneOrders(orders map[int][]string) map[int][]string {
	out := make(map[int][]string, len(orders))
	for rank, ids := range orders {
		out[rank] = slices.Clone(ids)
	}
	return out
}
