// Package analytics derives aggregate statistics from a positioned,
// status-annotated prerequisite graph: node and edge totals, per-status
// course counts, average credit hours, and the depth of the longest
// prerequisite chain.
package analytics
