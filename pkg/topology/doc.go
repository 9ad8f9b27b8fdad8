// Package topology turns a pipeline configuration into a dialect-independent
// graph of nodes and edges.
//
// [Extract] emits one [Node] per declared component, in declaration order
// (sources, then transforms, then sinks), and one [Edge] per declared input.
// Each node owns its incoming edges in the order its inputs were declared, so
// flattening the graph with [Graph.Edges] yields edges grouped by target in
// node order. Renderers rely on that order for byte-stable output.
//
// The extractor trusts its input: it performs no validation and never merges
// nodes, even when two components share an identifier.
package topology
