package config

import (
	"strings"
	"testing"
)

func src(id string) Component { return Component{ID: id, Kind: KindSource} }

func xform(id, typ string, inputs ...string) Component {
	return Component{ID: id, Kind: KindTransform, Type: typ, Inputs: refs(inputs...)}
}

func sink(id string, inputs ...string) Component {
	return Component{ID: id, Kind: KindSink, Inputs: refs(inputs...)}
}

func refs(inputs ...string) []InputRef {
	out := make([]InputRef, 0, len(inputs))
	for _, s := range inputs {
		r, err := ParseInputRef(s)
		if err != nil {
			panic(err)
		}
		out = append(out, r)
	}
	return out
}

func TestValidate(t *testing.T) {
	route := xform("route", "route", "in")
	route.Options = map[string]any{"route": map[string]any{"a": "true", "b": "false"}}

	tests := []struct {
		name    string
		cfg     Config
		wantErr []string
	}{
		{
			name: "valid",
			cfg: Config{
				Sources:    []Component{src("in")},
				Transforms: []Component{route},
				Sinks:      []Component{sink("out", "route.a", "route._unmatched")},
			},
		},
		{
			name:    "empty",
			cfg:     Config{},
			wantErr: []string{"no sources defined", "no sinks defined"},
		},
		{
			name: "duplicate across kinds",
			cfg: Config{
				Sources: []Component{src("x")},
				Sinks:   []Component{sink("x", "x")},
			},
			wantErr: []string{`duplicate component id "x" (declared as source and sink)`},
		},
		{
			name: "dot in identifier",
			cfg: Config{
				Sources: []Component{src("a.b")},
				Sinks:   []Component{sink("out", "a")},
			},
			wantErr: []string{`identifier must not contain "."`},
		},
		{
			name: "backslash in identifier",
			cfg: Config{
				Sources: []Component{src(`a\`), src(`x\"y`)},
				Sinks:   []Component{sink("out", "in")},
			},
			wantErr: []string{
				`source "a\\": identifier must not contain "\\"`,
				`source "x\\\"y": identifier must not contain "\\"`,
			},
		},
		{
			name: "sink without inputs",
			cfg: Config{
				Sources: []Component{src("in")},
				Sinks:   []Component{sink("out")},
			},
			wantErr: []string{`sink "out" has no inputs`},
		},
		{
			name: "unknown input",
			cfg: Config{
				Sources: []Component{src("in")},
				Sinks:   []Component{sink("out", "nope")},
			},
			wantErr: []string{`references unknown component "nope"`},
		},
		{
			name: "input from sink",
			cfg: Config{
				Sources: []Component{src("in")},
				Sinks:   []Component{sink("a", "in"), sink("b", "a")},
			},
			wantErr: []string{`references sink "a"`},
		},
		{
			name: "unknown route port",
			cfg: Config{
				Sources:    []Component{src("in")},
				Transforms: []Component{route},
				Sinks:      []Component{sink("out", "route.c")},
			},
			wantErr: []string{`route "route" has no output "c" (available: a, b, _unmatched)`},
		},
		{
			name: "ports on other transforms are not checked",
			cfg: Config{
				Sources:    []Component{src("in")},
				Transforms: []Component{xform("split", "remap", "in")},
				Sinks:      []Component{sink("out", "split.dropped")},
			},
		},
		{
			name: "transform cycle",
			cfg: Config{
				Sources:    []Component{src("in")},
				Transforms: []Component{xform("a", "remap", "in", "b"), xform("b", "remap", "a")},
				Sinks:      []Component{sink("out", "b")},
			},
			wantErr: []string{"cycle detected in transforms: a <- b <- a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if len(tt.wantErr) == 0 {
				if err != nil {
					t.Fatalf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() = nil, want errors %v", tt.wantErr)
			}
			for _, want := range tt.wantErr {
				if !strings.Contains(err.Error(), want) {
					t.Errorf("Validate() error = %q, want it to contain %q", err, want)
				}
			}
		})
	}
}
