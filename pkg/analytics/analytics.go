package analytics

import (
	"github.com/courseflow/courseflow/pkg/layout"
	"github.com/courseflow/courseflow/pkg/prereq"
)

// Summary aggregates a positioned graph. Status counts cover every node,
// logic connectors included (connectors always count as locked). Credit
// figures only consider nodes carrying parseable catalog credits.
type Summary struct {
	TotalNodes int `json:"totalNodes" bson:"total_nodes"`
	TotalEdges int `json:"totalEdges" bson:"total_edges"`

	CompletedCourses  int `json:"completedCourses" bson:"completed_courses"`
	InProgressCourses int `json:"inProgressCourses" bson:"in_progress_courses"`
	PlannedCourses    int `json:"plannedCourses" bson:"planned_courses"`
	FailedCourses     int `json:"failedCourses" bson:"failed_courses"`
	AvailableCourses  int `json:"availableCourses" bson:"available_courses"`
	LockedCourses     int `json:"lockedCourses" bson:"locked_courses"`

	// AverageCredits is the mean credit-hour value over nodes whose
	// catalog metadata carries a parseable credit figure; 0 when none do.
	AverageCredits float64 `json:"averageCredits" bson:"average_credits"`

	// MaxDepth is the longest directed path in the graph, counted in
	// edges. A single node or an empty graph has depth 0.
	MaxDepth int `json:"maxDepth" bson:"max_depth"`
}

// Compute builds the summary for a positioned graph.
func Compute(nodes []layout.PositionedNode, edges []layout.Edge) Summary {
	s := Summary{
		TotalNodes: len(nodes),
		TotalEdges: len(edges),
	}

	var creditSum float64
	var creditCount int
	for _, n := range nodes {
		switch n.Status {
		case prereq.StatusCompleted:
			s.CompletedCourses++
		case prereq.StatusInProgress:
			s.InProgressCourses++
		case prereq.StatusPlanned:
			s.PlannedCourses++
		case prereq.StatusFailed:
			s.FailedCourses++
		case prereq.StatusAvailable:
			s.AvailableCourses++
		case prereq.StatusLocked:
			s.LockedCourses++
		}

		if n.Meta != nil {
			if credits, ok := n.Meta.CreditHours(); ok {
				creditSum += credits
				creditCount++
			}
		}
	}
	if creditCount > 0 {
		s.AverageCredits = creditSum / float64(creditCount)
	}

	s.MaxDepth = MaxDepth(nodes, edges)
	return s
}

// MaxDepth returns the length in edges of the longest directed path.
// Each node's subtree depth is memoized so shared chains are walked once,
// and a per-path visited set keeps cyclic input from recursing forever
// (a back edge contributes nothing to depth).
func MaxDepth(nodes []layout.PositionedNode, edges []layout.Edge) int {
	outgoing := make(map[string][]string, len(nodes))
	for _, e := range edges {
		outgoing[e.Source] = append(outgoing[e.Source], e.Target)
	}

	d := &depthWalker{
		outgoing: outgoing,
		memo:     make(map[string]int, len(nodes)),
		onPath:   make(map[string]bool),
	}

	max := 0
	for _, n := range nodes {
		if depth := d.walk(n.ID); depth > max {
			max = depth
		}
	}
	return max
}

type depthWalker struct {
	outgoing map[string][]string
	memo     map[string]int
	onPath   map[string]bool
}

func (d *depthWalker) walk(id string) int {
	if v, ok := d.memo[id]; ok {
		return v
	}
	if d.onPath[id] {
		return 0
	}

	d.onPath[id] = true
	defer delete(d.onPath, id)

	depth := 0
	for _, next := range d.outgoing[id] {
		if v := 1 + d.walk(next); v > depth {
			depth = v
		}
	}
	d.memo[id] = depth
	return depth
}
