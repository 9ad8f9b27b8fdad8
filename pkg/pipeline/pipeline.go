// Package pipeline runs the load → extract → render pipeline behind the
// graph command.
//
// # Architecture
//
// The pipeline consists of three stages, run once per invocation:
//
//  1. Load: resolve paths, decode and merge configuration files, validate
//  2. Extract: build the topology graph ([topology.Extract])
//  3. Render: serialize the graph in the requested dialect ([render.Render])
//
// Nothing is written anywhere: the rendered document is returned in
// [Result.Document] and the caller decides where it goes. A failure in any
// stage returns an error and no document.
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Paths:  []config.ConfigPath{{Path: "pipeline.toml"}},
//	    Format: render.FormatMermaid,
//	})
//	if err != nil {
//	    return err
//	}
//	fmt.Print(result.Document)
package pipeline

import (
	"time"

	"github.com/matzehuels/pipegraph/pkg/config"
	"github.com/matzehuels/pipegraph/pkg/render"
)

// Options configures one pipeline run.
type Options struct {
	// Paths are the files and directories to load. Globs are expanded.
	// An empty list targets [config.DefaultConfigPath].
	Paths []config.ConfigPath

	// Format is the output dialect. The zero value is DOT.
	Format render.Format
}

// Result holds the output of a pipeline run.
type Result struct {
	Document string
	Stats    Stats
}

// Stats tracks sizes and timing for a pipeline run.
type Stats struct {
	Files      int
	NodeCount  int
	EdgeCount  int
	LoadTime   time.Duration
	RenderTime time.Duration
}
