// Package layout computes deterministic 2-D positions for prerequisite
// graphs using a layered (Sugiyama-style) drawing algorithm.
//
// The pipeline builds a [dag.DAG] from the canonical graph, breaks any
// cycles, assigns ranks by longest path, subdivides multi-rank edges with
// virtual routing nodes, minimizes edge crossings with barycenter sweeps,
// and finally assigns coordinates along the configured direction axis.
// Virtual nodes are stripped from the output and center coordinates are
// converted to top-left anchors, so the result can be handed to any
// rendering layer without further computation.
//
// Layout is a pure function of (graph, progress, config): identical inputs
// always produce identical coordinates. There is no randomness and no
// global state; every map iteration that could affect the result is
// replaced with a sorted traversal.
package layout
