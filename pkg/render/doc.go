// Package render serializes a topology graph as graph-description text.
//
// # Overview
//
// Two dialects are supported:
//
//   - [FormatDOT]: a Graphviz digraph, nodes shaped by kind
//     (trapezium, diamond, invtrapezium), port labels as edge attributes
//   - [FormatMermaid]: a Mermaid "flowchart TD", nodes shaped by kind,
//     port labels inline in the arrow
//
// Both are produced by the same traversal in [Render]; a dialect is only a
// table of templates. Nodes appear in graph order and each node is followed
// by its incoming edges, so equal graphs always render to identical bytes.
//
// # Usage
//
//	format, err := render.ParseFormat("mermaid")
//	if err != nil {
//	    return err // INVALID_FORMAT
//	}
//	text, err := render.Render(topology.Extract(cfg), format)
//
// # Escaping
//
// DOT identifiers and labels are double-quoted and embedded double quotes are
// escaped. Backslashes are emitted as-is; the configuration loader rejects
// them in identifiers and ports, so every graph extracted from a loaded
// configuration renders to a document Graphviz parses. Hand-built graphs with
// backslashes are not guaranteed to.
//
// Mermaid identifiers are emitted unchanged. Identifiers containing Mermaid
// syntax characters (brackets, braces, slashes, "-->", spaces) or equal to a
// reserved word such as "end" produce a document Mermaid cannot parse. Layout
// is never computed here; that is left to the tool consuming the text.
package render
