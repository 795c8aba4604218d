package dag

import (
	"errors"
	"maps"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [DAG.AddNode] when the node ID is empty.
	// All nodes must have non-empty identifiers.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [DAG.AddNode] when a node with the
	// same ID already exists in the graph. Node IDs must be unique.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownSourceNode is returned by [DAG.AddEdge] when the From node
	// does not exist in the graph.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [DAG.AddEdge] when the To node
	// does not exist in the graph.
	ErrUnknownTargetNode = errors.New("unknown target node")

	// ErrGraphHasCycle is returned by [DAG.Validate] when a cycle is detected.
	// This indicates the graph is not a valid DAG. Cycles are detected using
	// depth-first search with white/gray/black coloring.
	ErrGraphHasCycle = errors.New("graph contains a cycle")
)

// NodeKind distinguishes between original and synthetic nodes created during
// graph transformation.
type NodeKind int

const (
	// NodeKindRegular represents an original vertex from prerequisite data.
	NodeKindRegular NodeKind = iota
	// NodeKindVirtual represents a synthetic node inserted to subdivide an
	// edge spanning multiple ranks. Virtual nodes keep long edges routable
	// through intermediate ranks during ordering, and are removed from the
	// final positioned output.
	NodeKindVirtual
)

// Node represents a vertex in the prerequisite graph with an assigned rank
// (layer). Nodes can be original vertices (NodeKindRegular) or synthetic
// routing points created during transformation (NodeKindVirtual).
//
// The zero value is not usable - ID must be set before adding to a DAG.
type Node struct {
	ID   string  // Unique identifier
	Rank int     // Layer assignment (0 = source/root, increasing along the flow)
	W, H float64 // Footprint used for spacing during coordinate assignment

	// Kind indicates whether this is an original or synthetic node.
	Kind NodeKind
	// MasterID links virtual chains back to the edge's source node.
	MasterID string
}

// IsVirtual reports whether the node was inserted to break a long edge.
func (n Node) IsVirtual() bool { return n.Kind == NodeKindVirtual }

// Edge represents a directed connection between two nodes.
// Semantically, From is a prerequisite contributing toward To.
type Edge struct {
	From string // Source node ID
	To   string // Target node ID
}

// DAG is a directed acyclic graph optimized for rank-based layered layouts.
// Nodes are organized into ranks (layers); after transformation every edge
// connects nodes in consecutive ranks, which is what the crossing-reduction
// and coordinate-assignment passes assume.
//
// The zero value is not usable - use New to create a valid DAG instance.
// DAG is not safe for concurrent use without external synchronization.
type DAG struct {
	nodes    map[string]*Node
	edges    []Edge
	outgoing map[string][]string // nodeID -> children IDs
	incoming map[string][]string // nodeID -> parent IDs
	ranks    map[int][]*Node     // rank -> nodes in that rank
}

// New creates an empty DAG.
func New() *DAG {
	return &DAG{
		nodes:    make(map[string]*Node),
		outgoing: make(map[string][]string),
		incoming: make(map[string][]string),
		ranks:    make(map[int][]*Node),
	}
}

// AddNode adds a node to the graph and automatically indexes it by its Rank.
// Returns ErrInvalidNodeID if the node ID is empty, or ErrDuplicateNodeID
// if a node with the same ID already exists.
//
// Node IDs must be unique across the entire graph, regardless of rank.
func (d *DAG) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := d.nodes[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	node := &n
	d.nodes[node.ID] = node
	d.ranks[node.Rank] = append(d.ranks[node.Rank], node)
	return nil
}

// SetRanks updates the rank assignments for nodes and rebuilds the rank index.
// Nodes not present in the ranks map retain their current rank assignment.
// This is typically used after layer assignment computes optimal depths.
//
// The rank index (used by NodesInRank) is completely rebuilt, so this
// operation is O(N) where N is the total number of nodes.
func (d *DAG) SetRanks(ranks map[string]int) {
	d.ranks = make(map[int][]*Node)
	for _, n := range d.nodes {
		if newRank, ok := ranks[n.ID]; ok {
			n.Rank = newRank
		}
		d.ranks[n.Rank] = append(d.ranks[n.Rank], n)
	}
}

// AddEdge adds a directed edge between two existing nodes.
// Returns ErrUnknownSourceNode if the From node doesn't exist, or
// ErrUnknownTargetNode if the To node doesn't exist.
//
// AddEdge does not validate rank consecutiveness - run the transform passes
// after building the graph. Multiple edges between the same nodes are allowed
// (though unusual in prerequisite graphs).
func (d *DAG) AddEdge(e Edge) error {
	if _, ok := d.nodes[e.From]; !ok {
		return ErrUnknownSourceNode
	}
	if _, ok := d.nodes[e.To]; !ok {
		return ErrUnknownTargetNode
	}
	d.edges = append(d.edges, e)
	d.outgoing[e.From] = append(d.outgoing[e.From], e.To)
	d.incoming[e.To] = append(d.incoming[e.To], e.From)
	return nil
}

// RemoveEdge removes the edge from→to if it exists.
// No error is returned if the edge does not exist. If multiple edges
// exist between the same nodes, all are removed.
func (d *DAG) RemoveEdge(from, to string) {
	d.edges = slices.DeleteFunc(d.edges, func(e Edge) bool { return e.From == from && e.To == to })
	d.outgoing[from] = slices.DeleteFunc(d.outgoing[from], func(s string) bool { return s == to })
	d.incoming[to] = slices.DeleteFunc(d.incoming[to], func(s string) bool { return s == from })
}

// Nodes returns all nodes in the graph.
// The order is not guaranteed. The returned slice contains pointers to
// the actual node structs, so modifications affect the graph.
func (d *DAG) Nodes() []*Node {
	nodes := make([]*Node, 0, len(d.nodes))
	for _, n := range d.nodes {
		nodes = append(nodes, n)
	}
	return nodes
}

// Edges returns a copy of all edges in the graph.
// The order matches insertion order.
func (d *DAG) Edges() []Edge { return slices.Clone(d.edges) }

// NodeCount returns the number of nodes in the graph.
func (d *DAG) NodeCount() int { return len(d.nodes) }

// EdgeCount returns the number of edges in the graph.
func (d *DAG) EdgeCount() int { return len(d.edges) }

// Children returns the IDs of nodes that this node has edges to.
// Returns nil if the node has no children or doesn't exist. The returned
// slice should not be modified - use it as a read-only view.
func (d *DAG) Children(id string) []string { return d.outgoing[id] }

// Parents returns the IDs of nodes that have edges to this node.
// Returns nil if the node has no parents or doesn't exist. The returned
// slice should not be modified - use it as a read-only view.
func (d *DAG) Parents(id string) []string { return d.incoming[id] }

// OutDegree returns the number of outgoing edges from the node.
// Returns 0 if the node doesn't exist.
func (d *DAG) OutDegree(id string) int { return len(d.outgoing[id]) }

// InDegree returns the number of incoming edges to the node.
// Returns 0 if the node doesn't exist.
func (d *DAG) InDegree(id string) int { return len(d.incoming[id]) }

// Node returns the node with the given ID and true, or nil and false if not
// found. The returned pointer refers to the actual node in the graph.
func (d *DAG) Node(id string) (*Node, bool) {
	n, ok := d.nodes[id]
	return n, ok
}

// NodesInRank returns all nodes assigned to the given rank.
// Returns nil if the rank is empty or doesn't exist. The returned slice
// contains pointers to the actual nodes. The order is insertion order.
func (d *DAG) NodesInRank(rank int) []*Node { return d.ranks[rank] }

// RankIDs returns all rank indices in sorted ascending order.
// Returns an empty slice for an empty graph.
func (d *DAG) RankIDs() []int {
	return slices.Sorted(maps.Keys(d.ranks))
}

// MaxRank returns the highest rank index, or 0 if the graph is empty.
func (d *DAG) MaxRank() int {
	if len(d.ranks) == 0 {
		return 0
	}
	rankIDs := d.RankIDs()
	return rankIDs[len(rankIDs)-1]
}

// Sources returns nodes with no incoming edges (entry points of the
// prerequisite flow). The order is not guaranteed. Returns nil for an
// empty graph.
func (d *DAG) Sources() []*Node {
	var sources []*Node
	for _, n := range d.nodes {
		if len(d.incoming[n.ID]) == 0 {
			sources = append(sources, n)
		}
	}
	return sources
}

// Sinks returns nodes with no outgoing edges (terminal targets).
// The order is not guaranteed. Returns nil for an empty graph.
func (d *DAG) Sinks() []*Node {
	var sinks []*Node
	for _, n := range d.nodes {
		if len(d.outgoing[n.ID]) == 0 {
			sinks = append(sinks, n)
		}
	}
	return sinks
}

// Validate checks that the graph is acyclic and returns nil if valid.
// Returns ErrGraphHasCycle if a cycle is detected. Use this before applying
// transformations that assume a valid DAG.
//
// Cycle detection runs in O(N+E) time using depth-first search.
func (d *DAG) Validate() error {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, len(d.nodes))
	var hasCycle bool

	var dfs func(id string)
	dfs = func(id string) {
		color[id] = gray
		for _, child := range d.outgoing[id] {
			switch color[child] {
			case white:
				dfs(child)
			case gray:
				hasCycle = true
				return
			}
		}
		color[id] = black
	}

	for id := range d.nodes {
		if color[id] == white {
			dfs(id)
			if hasCycle {
				return ErrGraphHasCycle
			}
		}
	}
	return nil
}

// PosMap creates a position lookup map from a slice of node IDs.
// The returned map maps each ID to its index in the slice.
// This is used to convert rank orderings into fast position lookups
// for crossing calculations. Returns an empty map for a nil slice.
func PosMap(ids []string) map[string]int {
	m := make(map[string]int, len(ids))
	for i, id := range ids {
		m[id] = i
	}
	return m
}

// NodeIDs extracts the ID from each node in a slice.
// Returns a new slice containing the IDs in the same order as the input.
func NodeIDs(nodes []*Node) []string {
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	return ids
}
