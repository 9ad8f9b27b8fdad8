package pipeline

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pipegraph/pkg/config"
	perrors "github.com/matzehuels/pipegraph/pkg/errors"
	"github.com/matzehuels/pipegraph/pkg/observability"
	"github.com/matzehuels/pipegraph/pkg/render"
)

const exampleTOML = `
[sources.in]
type = "stdin"

[transforms.route]
type = "route"
inputs = ["in"]
route.a = '.level == "info"'

[sinks.out]
type = "console"
inputs = ["route.a"]
`

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func newTestRunner(buf *bytes.Buffer) *Runner {
	return NewRunner(log.NewWithOptions(buf, log.Options{Level: log.DebugLevel}))
}

func TestExecute(t *testing.T) {
	path := writeConfig(t, "pipeline.toml", exampleTOML)

	tests := []struct {
		format render.Format
		want   []string
	}{
		{render.FormatDOT, []string{
			`"in" [shape=trapezium]`,
			`"route" [shape=diamond]`,
			`"in" -> "route"`,
			`"out" [shape=invtrapezium]`,
			`"route" -> "out" [label="a"]`,
		}},
		{render.FormatMermaid, []string{
			`in[/in\]`,
			`route[{ route }]`,
			`in-->route`,
			`out[\ out /]`,
			`route--a-->out`,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			var logs bytes.Buffer
			result, err := newTestRunner(&logs).Execute(context.Background(), Options{
				Paths:  []config.ConfigPath{{Path: path}},
				Format: tt.format,
			})
			if err != nil {
				t.Fatalf("Execute() error: %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(result.Document, want) {
					t.Errorf("document missing %q:\n%s", want, result.Document)
				}
			}
			if result.Stats.Files != 1 || result.Stats.NodeCount != 3 || result.Stats.EdgeCount != 2 {
				t.Errorf("Stats = %+v, want 1 file, 3 nodes, 2 edges", result.Stats)
			}
			if !strings.Contains(logs.String(), "loaded config") {
				t.Errorf("debug log missing load summary:\n%s", logs.String())
			}
		})
	}
}

func TestExecuteConfigError(t *testing.T) {
	path := writeConfig(t, "pipeline.toml", `
[sources.in]
type = "stdin"

[sinks.out]
inputs = ["missing"]
`)
	var logs bytes.Buffer
	result, err := newTestRunner(&logs).Execute(context.Background(), Options{
		Paths: []config.ConfigPath{{Path: path}},
	})
	if err == nil {
		t.Fatal("Execute() error = nil, want config error")
	}
	if result != nil {
		t.Errorf("Execute() returned a result on error: %+v", result)
	}
	if !perrors.Is(err, perrors.ErrCodeInvalidConfig) {
		t.Errorf("error code = %s, want %s", perrors.GetCode(err), perrors.ErrCodeInvalidConfig)
	}
}

func TestExecuteUnsupportedFormat(t *testing.T) {
	path := writeConfig(t, "pipeline.toml", exampleTOML)
	var logs bytes.Buffer
	_, err := newTestRunner(&logs).Execute(context.Background(), Options{
		Paths:  []config.ConfigPath{{Path: path}},
		Format: render.Format(7),
	})
	if !perrors.Is(err, perrors.ErrCodeInvalidFormat) {
		t.Errorf("Execute() error = %v, want %s", err, perrors.ErrCodeInvalidFormat)
	}
}

func TestExecuteCanceled(t *testing.T) {
	path := writeConfig(t, "pipeline.toml", exampleTOML)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var logs bytes.Buffer
	_, err := newTestRunner(&logs).Execute(ctx, Options{Paths: []config.ConfigPath{{Path: path}}})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Execute() error = %v, want context.Canceled", err)
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	events []string
}

func (h *recordingHooks) OnLoadStart(_ context.Context, files int) {
	h.events = append(h.events, "load-start")
}

func (h *recordingHooks) OnLoadComplete(_ context.Context, components int, _ time.Duration, err error) {
	h.events = append(h.events, "load-complete")
}

func (h *recordingHooks) OnRenderStart(_ context.Context, format string, nodes, edges int) {
	h.events = append(h.events, "render-start:"+format)
}

func (h *recordingHooks) OnRenderComplete(_ context.Context, format string, n int, _ time.Duration, err error) {
	h.events = append(h.events, "render-complete:"+format)
}

func TestExecuteFiresHooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetPipelineHooks(hooks)
	defer observability.Reset()

	path := writeConfig(t, "pipeline.toml", exampleTOML)
	var logs bytes.Buffer
	if _, err := newTestRunner(&logs).Execute(context.Background(), Options{
		Paths:  []config.ConfigPath{{Path: path}},
		Format: render.FormatMermaid,
	}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	want := []string{"load-start", "load-complete", "render-start:mermaid", "render-complete:mermaid"}
	if strings.Join(hooks.events, ",") != strings.Join(want, ",") {
		t.Errorf("hook events = %v, want %v", hooks.events, want)
	}
}

func TestNewRunnerDefaultLogger(t *testing.T) {
	if r := NewRunner(nil); r.Logger == nil {
		t.Error("NewRunner(nil) should fall back to the default logger")
	}
}
