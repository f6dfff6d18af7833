package dot

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/exp/slices"
)

// Dotfile is a graphviz digraph. Nodes and subgraphs are written in the order
// they were added
type Dotfile struct {
	SubGraph
	w io.Writer
}

// New creates an empty graph that will be written to w
func New(w io.Writer) *Dotfile {
	return &Dotfile{w: w}
}

func (d Dotfile) Name() string {
	return d.SubGraph.Name()
}

type GraphPrinter interface {
	AsDot() (string, []Edge)
	Name() string
}

// GraphItem is any item in the graph
type GraphItem interface {
	GraphPrinter
	HasSubgraph(name string) bool                             // Whether the item has the given subgraph
	Subgraph(name string) GraphItem                           // Returns the named subgraph, adding it if necessary
	AddNode(name string, edges ...string)                     // Adds a node to the graph
	AddShapedNode(name string, shape string, edges ...string) // Adds a node drawn with the given shape
}

type Edge struct {
	From string
	To   []string
}

type SubGraph struct {
	name      string
	nodes     []Node
	subgraphs []GraphItem
}

// Methods for GraphItem
func (g SubGraph) HasSubgraph(name string) bool {
	return g.subgraphIndex(name) >= 0
}

func (g SubGraph) subgraphIndex(name string) int {
	return slices.IndexFunc(g.subgraphs, func(item GraphItem) bool {
		return item.Name() == name
	})
}

func (g *SubGraph) Subgraph(name string) GraphItem {
	if ind := g.subgraphIndex(name); ind >= 0 {
		return g.subgraphs[ind]
	}
	sub := &SubGraph{name: name}
	g.subgraphs = append(g.subgraphs, sub)
	return sub
}

func (g *SubGraph) AddNode(name string, edges ...string) {
	g.AddShapedNode(name, "", edges...)
}

// AddShapedNode adds a node, replacing any node with the same name
func (g *SubGraph) AddShapedNode(name string, shape string, edges ...string) {
	node := Node{name: name, shape: shape, edges: edges}
	if ind := g.nodeIndex(name); ind >= 0 {
		g.nodes[ind] = node
		return
	}
	g.nodes = append(g.nodes, node)
}

func (g SubGraph) nodeIndex(name string) int {
	return slices.IndexFunc(g.nodes, func(node Node) bool {
		return node.name == name
	})
}

func (g SubGraph) Name() string {
	return g.name
}

func (g SubGraph) AsDot() (string, []Edge) {
	totalEdges := []Edge{}
	var total strings.Builder
	fmt.Fprintf(&total, "subgraph %s {\n", quote("cluster_"+g.name))
	fmt.Fprintf(&total, "label=%s\n", quote(g.name))
	for _, item := range g.nodes {
		totalEdges = append(totalEdges, Edge{From: item.name, To: item.edges})
		total.WriteString(item.declaration() + "\n")
	}
	for _, item := range g.subgraphs {
		sub, edges := item.AsDot()
		total.WriteString(sub + "\n")
		totalEdges = append(totalEdges, edges...)
	}
	total.WriteString("}")
	return total.String(), totalEdges
}

type Node struct {
	name  string
	shape string
	edges []string
}

func (n Node) AsDot() (string, []Edge) {
	return n.declaration(), []Edge{{From: n.name, To: n.edges}}
}

func (n Node) Name() string {
	return n.name
}

func (n Node) declaration() string {
	if n.shape == "" {
		return quote(n.name)
	}
	return fmt.Sprintf("%s [shape=%s]", quote(n.name), n.shape)
}

func quote(name string) string {
	return "\"" + strings.ReplaceAll(name, "\"", "\\\"") + "\""
}

func commaSeparatedString(list []string) string {
	var total strings.Builder
	for ind, item := range list {
		total.WriteString(quote(item))
		if ind < len(list)-1 {
			total.WriteString(", ")
		}
	}
	return total.String()
}

// String renders the whole graph in the dot language
func (d *Dotfile) String() string {
	var total strings.Builder
	totalEdges := []Edge{}
	total.WriteString("digraph {\n")

	// First, write out all the subgraphs
	for _, graph := range d.subgraphs {
		sub, edges := graph.AsDot()
		totalEdges = append(totalEdges, edges...)
		total.WriteString(sub + "\n")
	}

	// Then, go through the nodes
	for _, node := range d.nodes {
		total.WriteString(node.declaration() + "\n")
		totalEdges = append(totalEdges, Edge{From: node.name, To: node.edges})
	}

	// Finally, connect all the edges from everything else
	for _, edge := range totalEdges {
		// Skip creating edges that don't point anywhere
		if len(edge.To) == 0 {
			continue
		}
		// Also skip empty nodes
		if edge.From == "" {
			continue
		}
		fmt.Fprintf(&total, "%s -> {%s}\n", quote(edge.From), commaSeparatedString(edge.To))
	}
	total.WriteString("}\n")
	return total.String()
}

// Write writes the graph to the Dotfile's writer
func (d *Dotfile) Write() error {
	_, err := io.WriteString(d.w, d.String())
	return err
}
