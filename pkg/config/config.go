package config

import "slices"

// Kind distinguishes the three component tables of a configuration.
type Kind int

const (
	KindSource Kind = iota
	KindTransform
	KindSink
)

// String returns the singular table name ("source", "transform", "sink").
func (k Kind) String() string {
	switch k {
	case KindSource:
		return "source"
	case KindTransform:
		return "transform"
	case KindSink:
		return "sink"
	default:
		return "unknown"
	}
}

// Component is one declared source, transform, or sink.
//
// Inputs is always empty for sources. Options holds every key of the
// component table except "type" and "inputs".
type Component struct {
	ID      string
	Kind    Kind
	Type    string
	Inputs  []InputRef
	Options map[string]any
}

// Config is a loaded pipeline configuration. Each slice is in declaration order.
//
// The zero value is an empty configuration. Config is read-only once
// [LoadFromPaths] returns it.
type Config struct {
	Sources    []Component
	Transforms []Component
	Sinks      []Component
}

// Components returns every component: sources, then transforms, then sinks.
func (c *Config) Components() []Component {
	return slices.Concat(c.Sources, c.Transforms, c.Sinks)
}

// Component returns the first component declared with id.
func (c *Config) Component(id string) (Component, bool) {
	for _, comp := range c.Components() {
		if comp.ID == id {
			return comp, true
		}
	}
	return Component{}, false
}

// Len returns the total number of components.
func (c *Config) Len() int {
	return len(c.Sources) + len(c.Transforms) + len(c.Sinks)
}

func (c *Config) add(comp Component) {
	switch comp.Kind {
	case KindSource:
		c.Sources = append(c.Sources, comp)
	case KindTransform:
		c.Transforms = append(c.Transforms, comp)
	case KindSink:
		c.Sinks = append(c.Sinks, comp)
	}
}
