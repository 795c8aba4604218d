// Package prereq defines the canonical model for course prerequisite graphs
// and the transformations that produce it.
//
// A prerequisite graph mixes two families of nodes: course nodes (and leaf
// requirements) that may reference a catalog course, and logic connectors
// (AND/OR) that express how the requirements combine. Edges are directed:
// the source contributes toward satisfying the target.
//
// The package provides three independent, pure transformations:
//
//   - [Normalize] converts the loosely-structured wire format delivered by
//     the prerequisite-data service into the canonical [Graph], joining
//     catalog metadata onto course nodes and dropping edges with dangling
//     endpoints.
//   - [UserProgress.StatusOf] classifies a node's completion status against
//     a student's academic record.
//   - [SatisfactionMap] and [UnlockedMap] evaluate the boolean AND/OR logic
//     bottom-up against the completed-course set. This is an opt-in
//     refinement: StatusOf deliberately does not consult it, so a course
//     whose prerequisites are unmet still reads as "available".
//
// All functions hold no state between calls; the raw graph, catalog
// metadata, and progress record are supplied fresh per invocation.
package prereq
