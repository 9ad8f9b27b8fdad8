package config

import (
	"fmt"
	"strings"
)

// PortSeparator joins a component identifier and a port in an input reference.
const PortSeparator = "."

// reservedChars may not appear in identifiers or ports. A backslash cannot be
// carried through a quoted DOT string unambiguously.
const reservedChars = `\`

// InputRef references an upstream component, optionally through a named port.
// Port is empty for a bare reference and non-empty otherwise.
type InputRef struct {
	Component string
	Port      string
}

// ParseInputRef parses "component" or "component.port". The string is split
// at the first separator, so ports may themselves contain dots.
func ParseInputRef(s string) (InputRef, error) {
	component, port, ported := strings.Cut(s, PortSeparator)
	if component == "" {
		return InputRef{}, fmt.Errorf("input %q: missing component", s)
	}
	if ported && port == "" {
		return InputRef{}, fmt.Errorf("input %q: empty port", s)
	}
	if strings.ContainsAny(s, reservedChars) {
		return InputRef{}, fmt.Errorf("input %q: must not contain %q", s, reservedChars)
	}
	return InputRef{Component: component, Port: port}, nil
}

// HasPort reports whether the reference names a port.
func (r InputRef) HasPort() bool { return r.Port != "" }

// String returns the reference in its configuration syntax.
func (r InputRef) String() string {
	if r.Port == "" {
		return r.Component
	}
	return r.Component + PortSeparator + r.Port
}
