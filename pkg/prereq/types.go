package prereq

import (
	"slices"
	"strconv"
	"strings"
)

// Kind classifies a node in the prerequisite graph.
type Kind string

// Node kinds. Course and Leaf nodes may reference a catalog course;
// And and Or are pure structural connectors and never carry a course id.
const (
	KindCourse Kind = "COURSE"
	KindLeaf   Kind = "LEAF"
	KindAnd    Kind = "AND"
	KindOr     Kind = "OR"
)

// IsLogic reports whether the kind is a boolean connector (AND/OR).
func (k Kind) IsLogic() bool { return k == KindAnd || k == KindOr }

// Status is the derived completion state of a node relative to a student's
// academic progress.
type Status string

// Status values, in resolver priority order.
const (
	StatusCompleted  Status = "completed"
	StatusInProgress Status = "in-progress"
	StatusPlanned    Status = "planned"
	StatusFailed     Status = "failed"
	StatusAvailable  Status = "available"
	StatusLocked     Status = "locked"
)

// Node is a vertex in the canonical prerequisite graph.
type Node struct {
	ID       string          `json:"id" bson:"id"`
	Kind     Kind            `json:"kind" bson:"kind"`
	CourseID *int            `json:"course_id,omitempty" bson:"course_id,omitempty"`
	Meta     *CourseMetadata `json:"meta,omitempty" bson:"meta,omitempty"`
}

// Label returns the display label for the node: the course code if metadata
// is joined, otherwise the node ID. Logic connectors display their kind.
func (n Node) Label() string {
	if n.Kind.IsLogic() {
		return string(n.Kind)
	}
	if n.Meta != nil && n.Meta.Code != "" {
		return n.Meta.Code
	}
	return n.ID
}

// Edge is a directed connection: Source is a prerequisite contributing
// toward Target.
type Edge struct {
	Source string `json:"source" bson:"source"`
	Target string `json:"target" bson:"target"`
}

// Graph is the canonical prerequisite graph produced by [Normalize].
// Every edge's endpoints are guaranteed to exist in the node set.
type Graph struct {
	Nodes []Node `json:"nodes" bson:"nodes"`
	Edges []Edge `json:"edges" bson:"edges"`
}

// NodeByID returns the node with the given ID and true, or a zero node and
// false if not found.
func (g Graph) NodeByID(id string) (Node, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// NodeByCourseID returns the first node referencing the given course id.
func (g Graph) NodeByCourseID(courseID int) (Node, bool) {
	for _, n := range g.Nodes {
		if n.CourseID != nil && *n.CourseID == courseID {
			return n, true
		}
	}
	return Node{}, false
}

// CourseMetadata is the read-only catalog record for a course, supplied by
// an external service and keyed by numeric course id.
type CourseMetadata struct {
	CourseID       int    `json:"course_id" bson:"course_id"`
	Code           string `json:"code" bson:"code"`
	Title          string `json:"title" bson:"title"`
	Credits        string `json:"credits" bson:"credits"`
	Level          int    `json:"level" bson:"level"`
	College        string `json:"college" bson:"college"`
	LastTaughtTerm string `json:"last_taught_term" bson:"last_taught_term"`
}

// CreditHours parses the credit value. Catalog feeds deliver credits as
// strings ("3", "4.00", occasionally blank); the second return is false
// when no numeric value can be recovered.
func (m CourseMetadata) CreditHours() (float64, bool) {
	raw := strings.TrimSpace(m.Credits)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// UserProgress records a student's academic history as four id sets.
// A course id should appear in at most one set; the resolver does not
// enforce disjointness - that is the caller's responsibility.
type UserProgress struct {
	Completed  []int `json:"completed" bson:"completed"`
	InProgress []int `json:"in_progress" bson:"in_progress"`
	Planned    []int `json:"planned" bson:"planned"`
	Failed     []int `json:"failed" bson:"failed"`
}

// StatusOf resolves the completion status of a node. The rule is a strict
// priority order, first match wins:
//
//	no course id        → locked
//	id ∈ Completed      → completed
//	id ∈ InProgress     → in-progress
//	id ∈ Planned        → planned
//	id ∈ Failed         → failed
//	otherwise           → available
//
// The result is total and deterministic. Note this does not evaluate
// whether the AND/OR prerequisite logic upstream of the node is actually
// satisfied - use [UnlockedMap] for that.
func (p UserProgress) StatusOf(n Node) Status {
	if n.CourseID == nil {
		return StatusLocked
	}
	id := *n.CourseID
	switch {
	case slices.Contains(p.Completed, id):
		return StatusCompleted
	case slices.Contains(p.InProgress, id):
		return StatusInProgress
	case slices.Contains(p.Planned, id):
		return StatusPlanned
	case slices.Contains(p.Failed, id):
		return StatusFailed
	default:
		return StatusAvailable
	}
}
