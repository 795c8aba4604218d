// Package export serializes positioned prerequisite graphs for consumers:
// a JSON document format for the rendering collaborator (and for caching),
// and Graphviz DOT with SVG/PNG rendering for quick visual inspection from
// the CLI.
package export
