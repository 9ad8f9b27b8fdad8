package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"maps"
	"os"
	"slices"

	perrors "github.com/matzehuels/pipegraph/pkg/errors"
)

// LoadFromPaths reads, decodes, and merges the given files, then validates
// the result.
//
// Paths are normally the output of [ProcessPaths], so every entry is a file
// with a known format. Components are appended file by file; a component
// identifier declared twice, in the same file or across files, is an error.
//
// LoadFromPaths never returns a partially loaded Config. Decode failures are
// reported for the first bad file; structural and validation problems are
// collected and reported together under [perrors.ErrCodeInvalidConfig].
func LoadFromPaths(paths []ConfigPath) (*Config, error) {
	var docs []*document
	for _, p := range paths {
		data, err := os.ReadFile(p.Path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, perrors.Wrap(perrors.ErrCodeFileNotFound, err, "config file %s", p.Path)
			}
			return nil, perrors.Wrap(perrors.ErrCodeInvalidPath, err, "read config file %s", p.Path)
		}
		doc, err := decodeFile(data, p)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return build(docs)
}

// Load decodes a single configuration document from r and validates it.
func Load(r io.Reader, format Format) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInvalidPath, err, "read config")
	}
	doc, err := decodeFile(data, ConfigPath{Path: "<input>", Format: format})
	if err != nil {
		return nil, err
	}
	return build([]*document{doc})
}

func decodeFile(data []byte, p ConfigPath) (*document, error) {
	format := p.Format
	if format == FormatUnknown {
		detected, ok := FormatFromPath(p.Path)
		if !ok {
			return nil, perrors.New(perrors.ErrCodeInvalidPath, "cannot detect config format of %s", p.Path)
		}
		format = detected
	}
	doc, err := decode(data, format)
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInvalidConfig, err, "parse %s as %s", p.Path, format)
	}
	return doc, nil
}

func build(docs []*document) (*Config, error) {
	cfg := &Config{}
	var errs []error
	for _, doc := range docs {
		for _, e := range doc.entries {
			comp, err := componentFromTable(e)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s %q: %w", e.kind, e.id, err))
				continue
			}
			cfg.add(comp)
		}
	}
	if len(errs) == 0 {
		if err := cfg.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return nil, perrors.Wrap(perrors.ErrCodeInvalidConfig, errors.Join(errs...), "invalid configuration")
	}
	return cfg, nil
}

// componentFromTable converts a decoded component table. "type" and "inputs"
// are lifted into fields; everything else is kept in Options. Keys are visited
// in sorted order so the reported error does not depend on map order.
func componentFromTable(e entry) (Component, error) {
	comp := Component{ID: e.id, Kind: e.kind, Options: map[string]any{}}
	if e.table == nil {
		return comp, nil
	}
	table, ok := e.table.(map[string]any)
	if !ok {
		return Component{}, fmt.Errorf("must be a table, got %T", e.table)
	}

	for _, key := range slices.Sorted(maps.Keys(table)) {
		value := table[key]
		switch key {
		case "type":
			s, ok := value.(string)
			if !ok {
				return Component{}, fmt.Errorf("type must be a string, got %T", value)
			}
			comp.Type = s
		case "inputs":
			if e.kind == KindSource {
				return Component{}, fmt.Errorf("sources cannot declare inputs")
			}
			inputs, err := parseInputs(value)
			if err != nil {
				return Component{}, err
			}
			comp.Inputs = inputs
		default:
			comp.Options[key] = value
		}
	}
	return comp, nil
}

func parseInputs(value any) ([]InputRef, error) {
	var raw []string
	switch v := value.(type) {
	case []string:
		raw = v
	case []any:
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("inputs must be a list of strings, got element %T", item)
			}
			raw = append(raw, s)
		}
	default:
		return nil, fmt.Errorf("inputs must be a list of strings, got %T", value)
	}

	refs := make([]InputRef, 0, len(raw))
	for _, s := range raw {
		ref, err := ParseInputRef(s)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, nil
}
