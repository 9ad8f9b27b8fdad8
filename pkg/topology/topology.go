package topology

import "github.com/matzehuels/pipegraph/pkg/config"

// Kind is the role of a node in the pipeline.
type Kind = config.Kind

const (
	KindSource    = config.KindSource
	KindTransform = config.KindTransform
	KindSink      = config.KindSink
)

// Edge is a directed connection from an upstream component to a consumer.
// Port is the upstream output branch named by the input, or empty.
type Edge struct {
	From string
	To   string
	Port string
}

// Labeled reports whether the edge carries a port label.
func (e Edge) Labeled() bool { return e.Port != "" }

// Node is one graph vertex together with its incoming edges.
type Node struct {
	ID     string
	Kind   Kind
	Inputs []Edge
}

// Graph is the normalized topology of one configuration.
// It is immutable by convention once returned from [Extract].
type Graph struct {
	Nodes []Node
}

// Extract builds the graph for cfg. Node order follows declaration order;
// each node's edges follow its declared input order.
func Extract(cfg *config.Config) *Graph {
	g := &Graph{Nodes: make([]Node, 0, cfg.Len())}
	for _, comp := range cfg.Components() {
		g.Nodes = append(g.Nodes, nodeFor(comp))
	}
	return g
}

func nodeFor(comp config.Component) Node {
	n := Node{ID: comp.ID, Kind: comp.Kind}
	if comp.Kind == KindSource {
		return n
	}
	n.Inputs = make([]Edge, 0, len(comp.Inputs))
	for _, in := range comp.Inputs {
		n.Inputs = append(n.Inputs, Edge{From: in.Component, To: comp.ID, Port: in.Port})
	}
	return n
}

// Edges returns every edge, grouped by target in node order.
func (g *Graph) Edges() []Edge {
	var out []Edge
	for _, n := range g.Nodes {
		out = append(out, n.Inputs...)
	}
	return out
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.Nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int {
	count := 0
	for _, n := range g.Nodes {
		count += len(n.Inputs)
	}
	return count
}
