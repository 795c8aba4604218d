// Package pkg provides the core libraries for Courseflow prerequisite graph
// exploration.
//
// # Overview
//
// Courseflow turns a course's raw prerequisite data into a positioned,
// annotated graph showing what must be taken before what. The pkg directory
// is organized into these areas:
//
//  1. [prereq] - Domain types, normalization, status resolution, satisfaction
//  2. [dag] - Directed graph structure and the layering transforms
//  3. [layout] - Layered coordinate assignment and crossing reduction
//  4. [analytics] - Aggregate metrics over a positioned graph
//  5. [query] - Path extraction and node filtering
//  6. [catalog] - Catalog API client and metadata stores
//  7. [export] - JSON document, DOT, and image artifacts
//  8. [pipeline] - Orchestration (fetch, normalize, layout, render)
//  9. [cache], [httputil], [errors], [observability] - Infrastructure
//
// # Architecture
//
// The typical data flow through Courseflow:
//
//	Catalog API
//	     ↓
//	prereq.RawGraph ─ normalize ─→ prereq.Graph
//	     ↓
//	dag.DAG ─ break cycles, rank, subdivide, order ─→ layout.Result
//	     ↓
//	analytics.Summary, query filters, export artifacts
//
// The pipeline package drives this flow and caches the raw graph and the
// positioned layout independently.
package pkg
