// Package dag provides a directed acyclic graph structure optimized for
// rank-based layered layouts.
//
// The DAG organizes nodes into ranks (layers). After the transform passes
// have run, every edge connects nodes in consecutive ranks, which is the
// shape the crossing-reduction and coordinate-assignment passes of the
// layout engine assume.
//
// # Basic Usage
//
// Create a graph, add nodes and edges, then validate:
//
//	g := dag.New()
//	g.AddNode(dag.Node{ID: "calc1"})
//	g.AddNode(dag.Node{ID: "calc2"})
//	g.AddEdge(dag.Edge{From: "calc1", To: "calc2"})
//	if err := g.Validate(); err != nil {
//	    // graph contains a cycle
//	}
//
// # Virtual Nodes
//
// Edges spanning multiple ranks are subdivided by transform.Subdivide into
// chains of [NodeKindVirtual] nodes. Virtual nodes participate in ordering
// and spacing but are stripped from the positioned output.
//
// # Errors
//
// Structural operations return sentinel errors ([ErrInvalidNodeID],
// [ErrDuplicateNodeID], [ErrUnknownSourceNode], [ErrUnknownTargetNode])
// that can be checked with errors.Is. [DAG.Validate] returns
// [ErrGraphHasCycle] for cyclic input.
package dag
