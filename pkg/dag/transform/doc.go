// Package transform provides graph transformation passes that prepare a
// prerequisite DAG for layered layout.
//
// The passes are applied in sequence by the layout engine:
//
//  1. [BreakCycles] removes back edges so the remaining graph is acyclic.
//     Prerequisite data is assumed acyclic, but malformed input must degrade
//     gracefully rather than hang the layering pass.
//  2. [AssignRanks] computes the longest-path layering: every node is placed
//     one rank below its deepest parent, sources at rank 0.
//  3. [Subdivide] breaks edges spanning multiple ranks into chains of
//     virtual nodes so that every edge connects consecutive ranks.
//
// Each pass mutates the graph in place. All passes are deterministic for a
// given insertion order of nodes and edges.
package transform
