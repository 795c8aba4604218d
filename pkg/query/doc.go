// Package query answers questions about a positioned prerequisite graph:
// locating the course being explored, extracting the prerequisite chain
// that leads to it, and reducing the node and edge sets with status or
// multi-criteria filters.
//
// All functions are pure: they never mutate their inputs and identical
// inputs yield identical results.
package query
