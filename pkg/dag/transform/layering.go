package transform

import (
	"slices"

	"github.com/courseflow/courseflow/pkg/dag"
)

// AssignRanks assigns nodes to ranks (layers) based on their depth in the
// graph.
//
// AssignRanks uses a longest-path algorithm via topological sort (Kahn's
// algorithm) to compute rank assignments. Each node is placed at one plus
// the maximum rank of any of its parents, ensuring that:
//   - Source nodes (no incoming edges) are at rank 0
//   - All parents are strictly above their children
//   - Each node is pushed as deep as necessary to avoid parent conflicts
//
// Isolated nodes have no incoming edges and therefore land in rank 0.
// Existing rank assignments in the DAG are overwritten.
//
// # Cycles
//
// AssignRanks assumes the graph is acyclic. If cycles exist, nodes in the
// cycle never reach zero in-degree and remain at rank 0 (their default).
// Run [BreakCycles] first to ensure correct layering.
//
// # Performance
//
// Time complexity is O(V + E), where V is nodes and E is edges. Space
// complexity is O(V) for the queue and rank/degree maps.
func AssignRanks(g *dag.DAG) {
	nodes := g.Nodes()
	inDegree := make(map[string]int, len(nodes))
	ranks := make(map[string]int, len(nodes))
	queue := make([]string, 0, len(nodes))

	for _, n := range nodes {
		degree := g.InDegree(n.ID)
		inDegree[n.ID] = degree
		if degree == 0 {
			queue = append(queue, n.ID)
		}
	}
	// Sorted seed keeps the traversal order independent of map iteration.
	slices.Sort(queue)

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		for _, child := range g.Children(curr) {
			if rank := ranks[curr] + 1; rank > ranks[child] {
				ranks[child] = rank
			}
			inDegree[child]--
			if inDegree[child] == 0 {
				queue = append(queue, child)
			}
		}
	}

	g.SetRanks(ranks)
}
