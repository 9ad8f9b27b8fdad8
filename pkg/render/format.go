package render

import (
	"slices"

	perrors "github.com/matzehuels/pipegraph/pkg/errors"
)

// Format selects an output dialect. The zero value is [FormatDOT].
type Format int

const (
	FormatDOT Format = iota
	FormatMermaid
)

// formatNames is ordered by Format value.
var formatNames = []string{"dot", "mermaid"}

// String returns the name accepted by [ParseFormat].
func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return "unknown"
	}
	return formatNames[f]
}

// ParseFormat resolves a format name. The empty string selects DOT. Any other
// unknown name is an [perrors.ErrCodeInvalidFormat] error.
func ParseFormat(name string) (Format, error) {
	if name == "" {
		return FormatDOT, nil
	}
	if i := slices.Index(formatNames, name); i >= 0 {
		return Format(i), nil
	}
	return 0, perrors.New(perrors.ErrCodeInvalidFormat, "unsupported output format %q (must be one of: dot, mermaid)", name)
}

// Formats returns the accepted format names.
func Formats() []string {
	return slices.Clone(formatNames)
}
