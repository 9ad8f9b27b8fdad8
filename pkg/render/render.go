package render

import (
	"fmt"
	"strings"

	perrors "github.com/matzehuels/pipegraph/pkg/errors"
	"github.com/matzehuels/pipegraph/pkg/topology"
)

const indent = "  "

// dialect is the syntax table for one output format.
//
// Node templates take the identifier as %[1]s. Edge templates take from, to,
// and port as %[1]s, %[2]s, %[3]s. escape is applied to every argument.
type dialect struct {
	header  string
	footer  string
	nodes   map[topology.Kind]string
	edge    string
	labeled string
	escape  func(string) string
}

var dialects = map[Format]dialect{
	FormatDOT: {
		header: "digraph {",
		footer: "}",
		nodes: map[topology.Kind]string{
			topology.KindSource:    `"%[1]s" [shape=trapezium]`,
			topology.KindTransform: `"%[1]s" [shape=diamond]`,
			topology.KindSink:      `"%[1]s" [shape=invtrapezium]`,
		},
		edge:    `"%[1]s" -> "%[2]s"`,
		labeled: `"%[1]s" -> "%[2]s" [label="%[3]s"]`,
		escape:  strings.NewReplacer(`"`, `\"`).Replace,
	},
	FormatMermaid: {
		header: "flowchart TD",
		nodes: map[topology.Kind]string{
			topology.KindSource:    `%[1]s[/%[1]s\]`,
			topology.KindTransform: `%[1]s[{ %[1]s }]`,
			topology.KindSink:      `%[1]s[\ %[1]s /]`,
		},
		edge:    `%[1]s-->%[2]s`,
		labeled: `%[1]s--%[3]s-->%[2]s`,
		escape:  func(s string) string { return s },
	},
}

// Render serializes g in the given dialect. The result is a sequence of
// newline-terminated lines: a header, each node followed by its incoming
// edges, then the footer if the dialect has one.
func Render(g *topology.Graph, format Format) (string, error) {
	d, ok := dialects[format]
	if !ok {
		return "", perrors.New(perrors.ErrCodeInvalidFormat, "unsupported output format %s", format)
	}
	lines := d.lines(g)
	return strings.Join(lines, "\n") + "\n", nil
}

func (d dialect) lines(g *topology.Graph) []string {
	lines := make([]string, 0, 2+g.NodeCount()+g.EdgeCount())
	lines = append(lines, d.header)
	for _, n := range g.Nodes {
		lines = append(lines, indent+fmt.Sprintf(d.nodes[n.Kind], d.escape(n.ID)))
		for _, e := range n.Inputs {
			lines = append(lines, indent+d.edgeLine(e))
		}
	}
	if d.footer != "" {
		lines = append(lines, d.footer)
	}
	return lines
}

func (d dialect) edgeLine(e topology.Edge) string {
	tmpl := d.edge
	if e.Labeled() {
		tmpl = d.labeled
	}
	return fmt.Sprintf(tmpl, d.escape(e.From), d.escape(e.To), d.escape(e.Port))
}
