package similarity

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// python 2 statements the grammar still accepts
var legacyStatements = map[string]bool{
	"print_statement": true,
	"exec_statement":  true,
}

// layoutError returns the first node that breaks Python's statement or
// indentation rules in a tree tree-sitter parsed without ERROR nodes.
func layoutError(root *sitter.Node) *sitter.Node {
	if bad := alignedStatements(statements(root), 0); bad != nil {
		return bad
	}
	return walkLayout(root)
}

func walkLayout(node *sitter.Node) *sitter.Node {
	if legacyStatements[node.Type()] {
		return node
	}
	if node.Type() == "block" {
		if bad := blockError(node); bad != nil {
			return bad
		}
	}
	for i := 0; i < int(node.NamedChildCount()); i++ {
		if bad := walkLayout(node.NamedChild(i)); bad != nil {
			return bad
		}
	}
	return nil
}

// blockError checks a suite: at least one statement, indented past its
// header, every line starting at the same column.
func blockError(block *sitter.Node) *sitter.Node {
	stmts := statements(block)
	if len(stmts) == 0 {
		return block
	}
	header := block.Parent()
	if header == nil {
		return nil
	}
	indent := stmts[0].StartPoint().Column
	if indent <= header.StartPoint().Column {
		return stmts[0]
	}
	return alignedStatements(stmts, indent)
}

// alignedStatements reports the first statement opening a new line at a
// column other than indent. Statements after ';' share their line.
func alignedStatements(stmts []*sitter.Node, indent uint32) *sitter.Node {
	for i, s := range stmts {
		if i > 0 && s.StartPoint().Row <= stmts[i-1].EndPoint().Row {
			continue
		}
		if s.StartPoint().Column != indent {
			return s
		}
	}
	return nil
}

func statements(node *sitter.Node) []*sitter.Node {
	var out []*sitter.Node
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child.Type() == "comment" {
			continue
		}
		out = append(out, child)
	}
	return out
}
