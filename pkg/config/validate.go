package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// routeUnmatched is the implicit port of a route transform that receives
// events no branch matched.
const routeUnmatched = "_unmatched"

// Validate checks the structural rules the topology relies on and returns
// every violation joined with errors.Join, or nil.
//
// Rules:
//   - at least one source and one sink
//   - identifiers are non-empty, contain no [PortSeparator] or backslash, and
//     are unique across all kinds
//   - transforms and sinks declare at least one input
//   - every input names an existing source or transform
//   - ports on a "route" transform name one of its routes or "_unmatched"
//   - transforms do not form a cycle
func (c *Config) Validate() error {
	var errs []error
	if len(c.Sources) == 0 {
		errs = append(errs, errors.New("no sources defined"))
	}
	if len(c.Sinks) == 0 {
		errs = append(errs, errors.New("no sinks defined"))
	}

	byID := make(map[string]Component, c.Len())
	for _, comp := range c.Components() {
		switch {
		case comp.ID == "":
			errs = append(errs, fmt.Errorf("%s with empty identifier", comp.Kind))
			continue
		case strings.Contains(comp.ID, PortSeparator):
			errs = append(errs, fmt.Errorf("%s %q: identifier must not contain %q", comp.Kind, comp.ID, PortSeparator))
		case strings.ContainsAny(comp.ID, reservedChars):
			errs = append(errs, fmt.Errorf("%s %q: identifier must not contain %q", comp.Kind, comp.ID, reservedChars))
		}
		if prev, dup := byID[comp.ID]; dup {
			errs = append(errs, fmt.Errorf("duplicate component id %q (declared as %s and %s)", comp.ID, prev.Kind, comp.Kind))
			continue
		}
		byID[comp.ID] = comp
	}

	for _, comp := range slices.Concat(c.Transforms, c.Sinks) {
		if len(comp.Inputs) == 0 {
			errs = append(errs, fmt.Errorf("%s %q has no inputs", comp.Kind, comp.ID))
		}
		for _, in := range comp.Inputs {
			if err := checkInput(byID, in); err != nil {
				errs = append(errs, fmt.Errorf("%s %q: %w", comp.Kind, comp.ID, err))
			}
		}
	}

	if err := detectCycles(c.Transforms); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func checkInput(byID map[string]Component, in InputRef) error {
	up, ok := byID[in.Component]
	if !ok {
		return fmt.Errorf("input %q references unknown component %q", in, in.Component)
	}
	if up.Kind == KindSink {
		return fmt.Errorf("input %q references sink %q", in, in.Component)
	}
	if in.HasPort() && up.Type == "route" {
		if ports := routePorts(up); !slices.Contains(ports, in.Port) {
			return fmt.Errorf("input %q: route %q has no output %q (available: %s)",
				in, up.ID, in.Port, strings.Join(ports, ", "))
		}
	}
	return nil
}

// routePorts returns the sorted branch names of a route transform plus its
// implicit unmatched output.
func routePorts(c Component) []string {
	routes, _ := c.Options["route"].(map[string]any)
	ports := make([]string, 0, len(routes)+1)
	for name := range routes {
		ports = append(ports, name)
	}
	slices.Sort(ports)
	return append(ports, routeUnmatched)
}

// detectCycles reports the first transform cycle found, walking transforms
// in declaration order.
func detectCycles(transforms []Component) error {
	const (
		white = iota
		gray
		black
	)

	upstream := make(map[string][]string, len(transforms))
	isTransform := make(map[string]bool, len(transforms))
	for _, t := range transforms {
		isTransform[t.ID] = true
		for _, in := range t.Inputs {
			upstream[t.ID] = append(upstream[t.ID], in.Component)
		}
	}

	color := make(map[string]int, len(transforms))
	var path []string
	var cycle []string

	var dfs func(id string) bool
	dfs = func(id string) bool {
		color[id] = gray
		path = append(path, id)
		for _, next := range upstream[id] {
			if !isTransform[next] {
				continue
			}
			switch color[next] {
			case white:
				if dfs(next) {
					return true
				}
			case gray:
				start := slices.Index(path, next)
				cycle = append(slices.Clone(path[start:]), next)
				return true
			}
		}
		path = path[:len(path)-1]
		color[id] = black
		return false
	}

	for _, t := range transforms {
		if color[t.ID] == white && dfs(t.ID) {
			return fmt.Errorf("cycle detected in transforms: %s", strings.Join(cycle, " <- "))
		}
	}
	return nil
}
