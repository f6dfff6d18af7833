package nodeutil

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// Children returns the named children of a node
func Children(node *sitter.Node) []*sitter.Node {
	count := int(node.NamedChildCount())
	children := make([]*sitter.Node, count)
	for i := 0; i < count; i++ {
		children[i] = node.NamedChild(i)
	}
	return children
}

// UnnamedChildren returns every child of a node, including anonymous tokens
// such as modifier keywords
func UnnamedChildren(node *sitter.Node) []*sitter.Node {
	count := int(node.ChildCount())
	children := make([]*sitter.Node, count)
	for i := 0; i < count; i++ {
		children[i] = node.Child(i)
	}
	return children
}

// FirstError returns the first node in the tree that is an error or a missing
// token, or nil if the tree parsed cleanly
func FirstError(node *sitter.Node) *sitter.Node {
	if node == nil || !node.HasError() && !node.IsMissing() {
		return nil
	}
	if node.Type() == "ERROR" || node.IsMissing() {
		return node
	}
	for _, child := range UnnamedChildren(node) {
		if found := FirstError(child); found != nil {
			return found
		}
	}
	return node
}
