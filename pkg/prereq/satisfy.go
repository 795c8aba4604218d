package prereq

import "slices"

// SatisfactionMap evaluates the boolean prerequisite logic bottom-up against
// the completed-course set and returns the truth value of every node:
//
//   - Course and leaf nodes are true iff their course id is in completed
//     (a leaf without a course id is never satisfiable).
//   - AND connectors are the conjunction of their direct prerequisites
//     (incoming edges); an AND with no inputs is vacuously true.
//   - OR connectors are the disjunction of their direct prerequisites;
//     an OR with no inputs is false.
//
// Evaluation memoizes per node id so shared sub-DAGs are computed once, and
// guards each traversal branch with a per-path visited set so cyclic input
// terminates (a node re-entered on its own path evaluates to false).
func SatisfactionMap(g Graph, completed []int) map[string]bool {
	e := &evaluator{
		graph:    g,
		incoming: incomingIndex(g),
		memo:     make(map[string]bool, len(g.Nodes)),
		onPath:   make(map[string]bool),
	}
	e.completed = completed

	for _, n := range g.Nodes {
		e.eval(n.ID)
	}
	return e.memo
}

// UnlockedMap reports, for every node, whether all of its direct
// prerequisites are satisfied per [SatisfactionMap]. A node with no
// incoming edges is trivially unlocked. This is the refinement of the
// simple status rule discussed in the resolver: it answers "could the
// student take this now?" rather than "has the student taken this?".
func UnlockedMap(g Graph, completed []int) map[string]bool {
	values := SatisfactionMap(g, completed)
	incoming := incomingIndex(g)

	unlocked := make(map[string]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		ok := true
		for _, pred := range incoming[n.ID] {
			if !values[pred] {
				ok = false
				break
			}
		}
		unlocked[n.ID] = ok
	}
	return unlocked
}

type evaluator struct {
	graph     Graph
	incoming  map[string][]string
	completed []int
	memo      map[string]bool
	onPath    map[string]bool
}

func (e *evaluator) eval(id string) bool {
	if v, ok := e.memo[id]; ok {
		return v
	}
	if e.onPath[id] {
		// Cycle: treat the re-entered node as unsatisfied on this branch.
		return false
	}

	n, ok := e.graph.NodeByID(id)
	if !ok {
		return false
	}

	e.onPath[id] = true
	defer delete(e.onPath, id)

	var v bool
	switch n.Kind {
	case KindAnd:
		v = true
		for _, pred := range e.incoming[id] {
			if !e.eval(pred) {
				v = false
				break
			}
		}
	case KindOr:
		v = false
		for _, pred := range e.incoming[id] {
			if e.eval(pred) {
				v = true
				break
			}
		}
	default:
		v = n.CourseID != nil && slices.Contains(e.completed, *n.CourseID)
	}

	e.memo[id] = v
	return v
}

func incomingIndex(g Graph) map[string][]string {
	incoming := make(map[string][]string, len(g.Nodes))
	for _, e := range g.Edges {
		incoming[e.Target] = append(incoming[e.Target], e.Source)
	}
	return incoming
}
