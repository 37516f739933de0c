package similarity

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// leaf node types whose children carry only literal text
var leafTypes = map[string]bool{
	"string":              true,
	"concatenated_string": true,
	"integer":             true,
	"float":               true,
	"identifier":          true,
	"true":                true,
	"false":               true,
	"none":                true,
}

type normalizer struct {
	content    []byte
	keepPrints bool
}

// body renders the named descendants of node, excluding node itself.
func (n *normalizer) body(node *sitter.Node) []string {
	var lines []string
	for i := 0; i < int(node.NamedChildCount()); i++ {
		lines = n.walk(node.NamedChild(i), 0, lines)
	}
	return lines
}

func (n *normalizer) walk(node *sitter.Node, depth int, lines []string) []string {
	if node.Type() == "comment" {
		return lines
	}
	if !n.keepPrints && n.isPrint(node) {
		return lines
	}

	line := strings.Repeat("  ", depth) + node.Type()
	if op := node.ChildByFieldName("operator"); op != nil {
		line += " " + op.Type()
	}
	lines = append(lines, line)

	if leafTypes[node.Type()] {
		return lines
	}
	for i := 0; i < int(node.NamedChildCount()); i++ {
		lines = n.walk(node.NamedChild(i), depth+1, lines)
	}
	return lines
}

// isPrint matches a statement consisting of a bare print(...) call.
func (n *normalizer) isPrint(node *sitter.Node) bool {
	if node.Type() != "expression_statement" || node.NamedChildCount() != 1 {
		return false
	}
	call := node.NamedChild(0)
	if call.Type() != "call" {
		return false
	}
	fn := call.ChildByFieldName("function")
	return fn != nil && fn.Type() == "identifier" && fn.Content(n.content) == "print"
}
