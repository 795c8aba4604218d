package prereq

import (
	"context"
	"slices"
	"strings"

	"github.com/courseflow/courseflow/pkg/observability"
)

// RawNode is a node as delivered by the prerequisite-data service. The wire
// format is loose: the course reference may arrive as either course_id or
// courseId, and the type field is free-form.
type RawNode struct {
	ID          string `json:"id"`
	Type        string `json:"type,omitempty"`
	CourseID    *int   `json:"course_id,omitempty"`
	CourseIDAlt *int   `json:"courseId,omitempty"`
}

// courseID returns the first populated course-id alias.
func (n RawNode) courseID() *int {
	if n.CourseID != nil {
		return n.CourseID
	}
	return n.CourseIDAlt
}

// RawEdge is an edge as delivered on the wire. Endpoints may arrive as
// source/target or from/to; whichever pair is populated wins.
type RawEdge struct {
	Source string `json:"source,omitempty"`
	Target string `json:"target,omitempty"`
	From   string `json:"from,omitempty"`
	To     string `json:"to,omitempty"`
}

// endpoints resolves each endpoint through its field aliases.
func (e RawEdge) endpoints() (source, target string) {
	source = e.Source
	if source == "" {
		source = e.From
	}
	target = e.Target
	if target == "" {
		target = e.To
	}
	return source, target
}

// RawGraph is the top-level wire shape. Some endpoints name the edge array
// "links", others "edges"; both are accepted.
type RawGraph struct {
	Nodes []RawNode `json:"nodes"`
	Links []RawEdge `json:"links,omitempty"`
	Edges []RawEdge `json:"edges,omitempty"`
}

// rawEdges returns whichever edge array is populated.
func (g RawGraph) rawEdges() []RawEdge {
	if len(g.Links) > 0 {
		return g.Links
	}
	return g.Edges
}

// RawEdgeCount returns the number of edges [Normalize] will consider:
// the length of the links array, or of the edges array when links is
// empty. The two arrays are aliases, never combined.
func (g RawGraph) RawEdgeCount() int {
	return len(g.rawEdges())
}

// CourseIDs returns the distinct course ids referenced by the raw nodes,
// in ascending order. Used to batch the catalog metadata lookup.
func (g RawGraph) CourseIDs() []int {
	seen := make(map[int]struct{})
	for _, n := range g.Nodes {
		if id := n.courseID(); id != nil {
			seen[*id] = struct{}{}
		}
	}
	ids := make([]int, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Normalize converts a raw wire graph into the canonical [Graph], joining
// catalog metadata onto course and leaf nodes by course id.
//
// Node kinds are classified from the raw type field: COURSE, AND, and OR
// are recognized (case-insensitively); anything else defaults to a leaf
// requirement. Logic connectors never carry a course id - a course
// reference on an AND/OR node is discarded.
//
// Edges whose endpoints do not resolve to a known node id are dropped
// rather than rejected; every drop is reported through
// observability.Normalizer().OnEdgeDropped. This lenient policy is
// deliberate: the engine must always produce something renderable, and
// upstream feeds are known to contain dangling references. Missing catalog
// metadata and unrecognized node types are likewise non-fatal and reported
// through the same hook set.
//
// Normalize performs no cycle or duplicate-edge detection; the canonical
// graph is assumed acyclic and later stages degrade gracefully if it is not.
func Normalize(ctx context.Context, raw RawGraph, metadata map[int]CourseMetadata) Graph {
	hooks := observability.Normalizer()

	nodes := make([]Node, 0, len(raw.Nodes))
	known := make(map[string]struct{}, len(raw.Nodes))

	for _, rn := range raw.Nodes {
		if rn.ID == "" {
			continue
		}

		kind := classifyKind(rn.Type)
		if kind == KindLeaf && rn.Type != "" && !strings.EqualFold(rn.Type, string(KindLeaf)) {
			hooks.OnUnknownKind(ctx, rn.ID, rn.Type)
		}

		n := Node{ID: rn.ID, Kind: kind}
		if !kind.IsLogic() {
			if id := rn.courseID(); id != nil {
				n.CourseID = id
				if meta, ok := metadata[*id]; ok {
					n.Meta = &meta
				} else {
					hooks.OnMissingMetadata(ctx, rn.ID, *id)
				}
			}
		}

		nodes = append(nodes, n)
		known[n.ID] = struct{}{}
	}

	var edges []Edge
	for _, re := range raw.rawEdges() {
		source, target := re.endpoints()
		if _, ok := known[source]; !ok {
			hooks.OnEdgeDropped(ctx, source, target)
			continue
		}
		if _, ok := known[target]; !ok {
			hooks.OnEdgeDropped(ctx, source, target)
			continue
		}
		edges = append(edges, Edge{Source: source, Target: target})
	}

	return Graph{Nodes: nodes, Edges: edges}
}

func classifyKind(rawType string) Kind {
	switch strings.ToUpper(strings.TrimSpace(rawType)) {
	case "COURSE":
		return KindCourse
	case "AND":
		return KindAnd
	case "OR":
		return KindOr
	default:
		return KindLeaf
	}
}
