package dot

import (
	"io"

	"github.com/NickyBoy89/cfc/symbol"
)

// Hierarchy graphs the given classes, drawing an edge from every class to each
// of its children. Classes are grouped into one cluster per parcel, except for
// the classes of the default parcel, which are drawn at the top level
func Hierarchy(w io.Writer, reg *symbol.Registry, classes []*symbol.Class) *Dotfile {
	graph := New(w)
	for _, class := range classes {
		children := class.Children()
		edges := make([]string, len(children))
		for ind, child := range children {
			edges[ind] = child.Name()
		}

		var item GraphItem = &graph.SubGraph
		if class.Parcel() != reg.DefaultParcel() {
			item = graph.Subgraph(class.Parcel().Name())
		}
		item.AddShapedNode(class.Name(), shapeOf(class), edges...)
	}
	return graph
}

func shapeOf(class *symbol.Class) string {
	switch {
	case class.Inert():
		return "note"
	case class.Final():
		return "box"
	}
	return ""
}
