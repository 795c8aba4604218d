package transform

import (
	"slices"

	"github.com/courseflow/courseflow/pkg/dag"
)

// BreakCycles removes back edges until the graph is acyclic, returning the
// number of edges removed. Back edges are found with a depth-first search
// using white/gray/black coloring: an edge to a gray (in-progress) node
// closes a cycle.
//
// Traversal starts from source nodes in sorted ID order, then covers any
// remaining nodes, so the same input graph always sheds the same edges.
// A return value of 0 means the input already satisfied the acyclicity
// invariant.
func BreakCycles(g *dag.DAG) int {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int)
	var backEdges [][2]string

	var dfs func(node string)
	dfs = func(node string) {
		color[node] = gray
		for _, child := range g.Children(node) {
			switch color[child] {
			case white:
				dfs(child)
			case gray:
				backEdges = append(backEdges, [2]string{node, child})
			}
		}
		color[node] = black
	}

	sources := dag.NodeIDs(g.Sources())
	slices.Sort(sources)
	for _, id := range sources {
		if color[id] == white {
			dfs(id)
		}
	}

	remaining := dag.NodeIDs(g.Nodes())
	slices.Sort(remaining)
	for _, id := range remaining {
		if color[id] == white {
			dfs(id)
		}
	}

	for _, e := range backEdges {
		g.RemoveEdge(e[0], e[1])
	}
	return len(backEdges)
}
