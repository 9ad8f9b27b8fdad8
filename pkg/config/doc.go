// Package config loads pipeline configurations and exposes them as an ordered
// model of sources, transforms, and sinks.
//
// # Overview
//
// A pipeline configuration declares three tables of components keyed by a
// unique identifier:
//
//	[sources.in]
//	type = "demo_logs"
//
//	[transforms.route]
//	type   = "route"
//	inputs = ["in"]
//	route.errors = '.level == "error"'
//
//	[sinks.out]
//	type   = "console"
//	inputs = ["route.errors"]
//
// Transforms and sinks name their upstream components in "inputs". An input is
// either a bare identifier or "component.port", where port selects a named
// output branch of the upstream component (see [InputRef]).
//
// # Ordering
//
// The model keeps declaration order: components appear in [Config] in the
// order files were given and, within a file, in the order they were written.
// Decoders read key order from the TOML metadata, the YAML node tree, or the
// JSON token stream, never from Go map iteration.
//
// # Loading
//
// [ProcessPaths] expands globs and directories into concrete files,
// [LoadFromPaths] decodes and merges them, then runs [Config.Validate]. All
// failures carry an error code from [github.com/matzehuels/pipegraph/pkg/errors].
package config
