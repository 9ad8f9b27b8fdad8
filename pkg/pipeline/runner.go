package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pipegraph/pkg/config"
	"github.com/matzehuels/pipegraph/pkg/observability"
	"github.com/matzehuels/pipegraph/pkg/render"
	"github.com/matzehuels/pipegraph/pkg/topology"
)

// Runner executes the pipeline and reports progress to its logger.
// A Runner holds no per-run state and may be reused.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. If logger is nil, log.Default() is used.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Execute runs load → extract → render.
//
// Errors from loading keep their config error codes; render errors keep
// INVALID_FORMAT. ctx is checked between stages so an interrupted run
// returns context.Canceled instead of a document.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	cfg, files, err := r.Load(ctx, opts.Paths)
	if err != nil {
		return nil, err
	}
	result.Stats.Files = files
	result.Stats.LoadTime = time.Since(loadStart)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 2: Extract
	g := topology.Extract(cfg)
	result.Stats.NodeCount = g.NodeCount()
	result.Stats.EdgeCount = g.EdgeCount()
	r.Logger.Debug("extracted topology", "nodes", g.NodeCount(), "edges", g.EdgeCount())

	// Stage 3: Render
	renderStart := time.Now()
	doc, err := r.Render(ctx, g, opts.Format)
	if err != nil {
		return nil, err
	}
	result.Document = doc
	result.Stats.RenderTime = time.Since(renderStart)

	return result, nil
}

// Load resolves paths and loads the configuration they describe.
// It returns the configuration and the number of files read.
func (r *Runner) Load(ctx context.Context, paths []config.ConfigPath) (*config.Config, int, error) {
	resolved, err := config.ProcessPaths(paths)
	if err != nil {
		return nil, 0, err
	}
	for _, p := range resolved {
		r.Logger.Debug("reading config", "path", p.Path, "format", p.Format)
	}

	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, len(resolved))
	start := time.Now()

	cfg, err := config.LoadFromPaths(resolved)
	if err != nil {
		hooks.OnLoadComplete(ctx, 0, time.Since(start), err)
		return nil, 0, err
	}
	hooks.OnLoadComplete(ctx, cfg.Len(), time.Since(start), nil)

	r.Logger.Debug("loaded config",
		"files", len(resolved),
		"sources", len(cfg.Sources),
		"transforms", len(cfg.Transforms),
		"sinks", len(cfg.Sinks),
		"duration", time.Since(start))
	return cfg, len(resolved), nil
}

// Render serializes g in the given format.
func (r *Runner) Render(ctx context.Context, g *topology.Graph, format render.Format) (string, error) {
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, format.String(), g.NodeCount(), g.EdgeCount())
	start := time.Now()

	doc, err := render.Render(g, format)
	hooks.OnRenderComplete(ctx, format.String(), len(doc), time.Since(start), err)
	if err != nil {
		return "", fmt.Errorf("render %s: %w", format, err)
	}

	r.Logger.Debug("rendered graph", "format", format, "bytes", len(doc))
	return doc, nil
}
