package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// sections maps top-level table names to component kinds. Other top-level
// keys (global options) are ignored.
var sections = []struct {
	name string
	kind Kind
}{
	{"sources", KindSource},
	{"transforms", KindTransform},
	{"sinks", KindSink},
}

// entry is one undecoded component table in declaration order.
type entry struct {
	kind  Kind
	id    string
	table any
}

// document is the ordered content of one configuration file.
type document struct {
	entries []entry
}

func (d *document) add(kind Kind, id string, table any) {
	d.entries = append(d.entries, entry{kind: kind, id: id, table: table})
}

func decode(data []byte, format Format) (*document, error) {
	switch format {
	case FormatTOML:
		return decodeTOML(data)
	case FormatJSON:
		return decodeJSON(data)
	case FormatYAML:
		return decodeYAML(data)
	default:
		return nil, fmt.Errorf("unsupported config format %s", format)
	}
}

func decodeTOML(data []byte) (*document, error) {
	var raw map[string]any
	md, err := toml.Decode(string(data), &raw)
	if err != nil {
		return nil, err
	}

	doc := &document{}
	for _, s := range sections {
		value, ok := raw[s.name]
		if !ok {
			continue
		}
		tables, ok := value.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%s must be a table", s.name)
		}

		// MetaData.Keys is in document order; inline tables may not list
		// every child, so leftovers are appended by name.
		seen := make(map[string]bool, len(tables))
		for _, key := range md.Keys() {
			if len(key) < 2 || key[0] != s.name || seen[key[1]] {
				continue
			}
			seen[key[1]] = true
			doc.add(s.kind, key[1], tables[key[1]])
		}
		var rest []string
		for id := range tables {
			if !seen[id] {
				rest = append(rest, id)
			}
		}
		slices.Sort(rest)
		for _, id := range rest {
			doc.add(s.kind, id, tables[id])
		}
	}
	return doc, nil
}

func decodeYAML(data []byte) (*document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	doc := &document{}
	if len(root.Content) == 0 {
		return doc, nil
	}

	top := root.Content[0]
	if top.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: top level must be a mapping", top.Line)
	}
	for i := 0; i+1 < len(top.Content); i += 2 {
		key, value := top.Content[i], top.Content[i+1]
		kind, ok := sectionKind(key.Value)
		if !ok {
			continue
		}
		if value.Kind == yaml.AliasNode {
			value = value.Alias
		}
		if value.Tag == "!!null" {
			continue
		}
		if value.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("line %d: %s must be a mapping", value.Line, key.Value)
		}
		for j := 0; j+1 < len(value.Content); j += 2 {
			var table any
			if err := value.Content[j+1].Decode(&table); err != nil {
				return nil, fmt.Errorf("%s.%s: %w", key.Value, value.Content[j].Value, err)
			}
			doc.add(kind, value.Content[j].Value, table)
		}
	}
	return doc, nil
}

func decodeJSON(data []byte) (*document, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, err
	}

	doc := &document{}
	for _, s := range sections {
		raw, ok := top[s.name]
		if !ok {
			continue
		}
		ids, err := objectKeys(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s.name, err)
		}
		var tables map[string]any
		if err := json.Unmarshal(raw, &tables); err != nil {
			return nil, fmt.Errorf("%s: %w", s.name, err)
		}
		for _, id := range ids {
			doc.add(s.kind, id, tables[id])
		}
	}
	return doc, nil
}

// objectKeys returns the keys of a JSON object in document order.
// A JSON null yields no keys.
func objectKeys(raw json.RawMessage) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if tok == nil {
		return nil, nil
	}
	if tok != json.Delim('{') {
		return nil, fmt.Errorf("must be an object")
	}

	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v", tok)
		}
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, nil
}

func sectionKind(name string) (Kind, bool) {
	for _, s := range sections {
		if s.name == name {
			return s.kind, true
		}
	}
	return 0, false
}
