package layout

import (
	"fmt"

	"github.com/courseflow/courseflow/pkg/dag"
	"github.com/courseflow/courseflow/pkg/dag/transform"
	"github.com/courseflow/courseflow/pkg/prereq"
)

// PositionedNode is a canonical node with a resolved status and a top-left
// anchored bounding box, ready for rendering.
type PositionedNode struct {
	prereq.Node

	Status   prereq.Status `json:"status" bson:"status"`
	IsTarget bool          `json:"isTarget" bson:"is_target"`

	X      float64 `json:"x" bson:"x"`
	Y      float64 `json:"y" bson:"y"`
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
}

// IsLogicNode reports whether the node is an AND/OR connector.
func (p PositionedNode) IsLogicNode() bool { return p.Kind.IsLogic() }

// Edge is a drawable connection with a synthesized unique id.
type Edge struct {
	ID     string `json:"id" bson:"id"`
	Source string `json:"source" bson:"source"`
	Target string `json:"target" bson:"target"`
}

// Result is the positioned graph handed to the rendering collaborator.
// Nodes follow the canonical input order; edges carry the original
// endpoints regardless of any cycle breaking or subdivision performed
// internally during layout.
type Result struct {
	Nodes []PositionedNode `json:"nodes" bson:"nodes"`
	Edges []Edge           `json:"edges" bson:"edges"`
}

// Build positions a canonical graph. Statuses are resolved against the
// student's progress, the node whose course id equals targetCourseID is
// flagged for rendering emphasis, and every node receives a top-left
// anchored box along cfg.Direction.
//
// Build never fails on graph content. Cyclic input loses back edges for
// ranking purposes, dangling state cannot occur on a normalized graph, and
// isolated nodes land in rank 0 after the connected ones. The only error
// is a rejected config.
func Build(g prereq.Graph, progress prereq.UserProgress, targetCourseID int, cfg Config) (*Result, error) {
	if err := cfg.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	d := dag.New()
	for _, n := range g.Nodes {
		w, h := NodeSize(n)
		if err := d.AddNode(dag.Node{ID: n.ID, W: w, H: h}); err != nil {
			// Duplicate ids collapse to the first occurrence.
			continue
		}
	}
	for _, e := range g.Edges {
		if err := d.AddEdge(dag.Edge{From: e.Source, To: e.Target}); err != nil {
			continue
		}
	}

	transform.BreakCycles(d)
	transform.AssignRanks(d)
	transform.Subdivide(d)

	orders := Barycentric{Passes: cfg.OrderingPasses}.OrderRanks(d)
	centers := assignCoordinates(d, orders, cfg)

	nodes := make([]PositionedNode, 0, len(g.Nodes))
	seen := make(map[string]struct{}, len(g.Nodes))
	for _, n := range g.Nodes {
		if _, dup := seen[n.ID]; dup {
			continue
		}
		seen[n.ID] = struct{}{}

		center, ok := centers[n.ID]
		if !ok {
			continue
		}
		w, h := NodeSize(n)
		nodes = append(nodes, PositionedNode{
			Node:     n,
			Status:   progress.StatusOf(n),
			IsTarget: n.CourseID != nil && *n.CourseID == targetCourseID,
			X:        center.x - w/2,
			Y:        center.y - h/2,
			Width:    w,
			Height:   h,
		})
	}

	return &Result{Nodes: nodes, Edges: buildEdges(g.Edges)}, nil
}

// buildEdges synthesizes stable, unique edge ids from the endpoints.
func buildEdges(in []prereq.Edge) []Edge {
	edges := make([]Edge, 0, len(in))
	used := make(map[string]struct{}, len(in))
	for _, e := range in {
		id := fmt.Sprintf("%s->%s", e.Source, e.Target)
		if _, dup := used[id]; dup {
			for i := 2; ; i++ {
				candidate := fmt.Sprintf("%s__%d", id, i)
				if _, taken := used[candidate]; !taken {
					id = candidate
					break
				}
			}
		}
		used[id] = struct{}{}
		edges = append(edges, Edge{ID: id, Source: e.Source, Target: e.Target})
	}
	return edges
}
