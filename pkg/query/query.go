package query

import (
	"slices"
	"strings"

	"github.com/courseflow/courseflow/pkg/layout"
	"github.com/courseflow/courseflow/pkg/prereq"
)

// MainCourseNode returns the node flagged as the course being explored.
// The second return is false when no node carries the flag.
func MainCourseNode(nodes []layout.PositionedNode) (layout.PositionedNode, bool) {
	for _, n := range nodes {
		if n.IsTarget {
			return n, true
		}
	}
	return layout.PositionedNode{}, false
}

// PathToCourse extracts the prerequisite chain leading to the course with
// the given id: a backward depth-first walk along incoming edges from the
// target, visiting each node at most once and prepending discovered nodes,
// so the last element is always the target and every element has a
// directed path to it. Returns an empty slice when the target is absent.
//
// Predecessors are walked in sorted id order, so the chain is
// deterministic. The visited set doubles as a cycle guard.
func PathToCourse(nodes []layout.PositionedNode, edges []layout.Edge, targetCourseID int) []layout.PositionedNode {
	byID := make(map[string]layout.PositionedNode, len(nodes))
	for _, n := range nodes {
		byID[n.ID] = n
	}

	var targetID string
	found := false
	for _, n := range nodes {
		if n.CourseID != nil && *n.CourseID == targetCourseID {
			targetID = n.ID
			found = true
			break
		}
	}
	if !found {
		return []layout.PositionedNode{}
	}

	incoming := make(map[string][]string, len(nodes))
	for _, e := range edges {
		incoming[e.Target] = append(incoming[e.Target], e.Source)
	}
	for _, preds := range incoming {
		slices.Sort(preds)
	}

	visited := make(map[string]bool, len(nodes))
	var chain []layout.PositionedNode

	var visit func(id string)
	visit = func(id string) {
		if visited[id] {
			return
		}
		visited[id] = true

		n, ok := byID[id]
		if !ok {
			return
		}
		chain = append([]layout.PositionedNode{n}, chain...)

		for _, pred := range incoming[id] {
			visit(pred)
		}
	}
	visit(targetID)

	return chain
}

// NodesByStatus returns the nodes carrying the given status.
func NodesByStatus(nodes []layout.PositionedNode, status prereq.Status) []layout.PositionedNode {
	out := make([]layout.PositionedNode, 0, len(nodes))
	for _, n := range nodes {
		if n.Status == status {
			out = append(out, n)
		}
	}
	return out
}

// Criteria is a conjunctive node filter. Every set criterion must hold for
// a node to survive; the zero value keeps everything.
type Criteria struct {
	// Per-status opt-outs. A true flag hides nodes with that status.
	ExcludeCompleted  bool
	ExcludeInProgress bool
	ExcludePlanned    bool
	ExcludeFailed     bool
	ExcludeAvailable  bool
	ExcludeLocked     bool

	// Credit range. When either bound is set, only nodes with parseable
	// catalog credits inside the range survive.
	MinCredits *float64
	MaxCredits *float64

	// Allow-lists matched against catalog metadata. An empty list is a
	// no-op; a non-empty list drops nodes without metadata. College names
	// match case-insensitively.
	Colleges []string
	Levels   []int
}

// Matches reports whether a node satisfies every set criterion.
func (c Criteria) Matches(n layout.PositionedNode) bool {
	if c.statusExcluded(n.Status) {
		return false
	}

	if c.MinCredits != nil || c.MaxCredits != nil {
		if n.Meta == nil {
			return false
		}
		credits, ok := n.Meta.CreditHours()
		if !ok {
			return false
		}
		if c.MinCredits != nil && credits < *c.MinCredits {
			return false
		}
		if c.MaxCredits != nil && credits > *c.MaxCredits {
			return false
		}
	}

	if len(c.Colleges) > 0 {
		if n.Meta == nil || !collegeAllowed(c.Colleges, n.Meta.College) {
			return false
		}
	}
	if len(c.Levels) > 0 {
		if n.Meta == nil || !slices.Contains(c.Levels, n.Meta.Level) {
			return false
		}
	}
	return true
}

func (c Criteria) statusExcluded(status prereq.Status) bool {
	switch status {
	case prereq.StatusCompleted:
		return c.ExcludeCompleted
	case prereq.StatusInProgress:
		return c.ExcludeInProgress
	case prereq.StatusPlanned:
		return c.ExcludePlanned
	case prereq.StatusFailed:
		return c.ExcludeFailed
	case prereq.StatusAvailable:
		return c.ExcludeAvailable
	case prereq.StatusLocked:
		return c.ExcludeLocked
	}
	return false
}

// FilterNodes applies the conjunctive criteria. Filtering an already
// filtered set with the same criteria returns an identical set.
func FilterNodes(nodes []layout.PositionedNode, criteria Criteria) []layout.PositionedNode {
	out := make([]layout.PositionedNode, 0, len(nodes))
	for _, n := range nodes {
		if criteria.Matches(n) {
			out = append(out, n)
		}
	}
	return out
}

// ConnectedEdges retains only edges whose endpoints are both present in
// the node subset. Used after filtering so the edge set stays consistent
// with the reduced node set.
func ConnectedEdges(nodes []layout.PositionedNode, edges []layout.Edge) []layout.Edge {
	present := make(map[string]struct{}, len(nodes))
	for _, n := range nodes {
		present[n.ID] = struct{}{}
	}

	out := make([]layout.Edge, 0, len(edges))
	for _, e := range edges {
		if _, ok := present[e.Source]; !ok {
			continue
		}
		if _, ok := present[e.Target]; !ok {
			continue
		}
		out = append(out, e)
	}
	return out
}

func collegeAllowed(allowed []string, college string) bool {
	if college == "" {
		return false
	}
	for _, a := range allowed {
		if strings.EqualFold(a, college) {
			return true
		}
	}
	return false
}
