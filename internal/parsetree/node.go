package parsetree

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// Node-kind discriminants produced by the external grammar front-end,
// matched against (*sitter.Node).Type().
const (
	KindSourceFile        = "source_file"
	KindFunctionDef       = "function_definition"
	KindResourceDef       = "resource_definition"
	KindPathGroup         = "path_group"
	KindIndexer           = "indexer"
	KindParameterList     = "parameter_list"
	KindParameter         = "parameter"
	KindBlock             = "block"
	KindVarDecl           = "variable_declaration"
	KindAssignment        = "assignment"
	KindIfStmt            = "if_statement"
	KindElifClause        = "elif_clause"
	KindElseClause        = "else_clause"
	KindWhileStmt         = "while_statement"
	KindBreakStmt         = "break_statement"
	KindContinueStmt      = "continue_statement"
	KindReturnStmt        = "return_statement"
	KindExprStmt          = "expression_statement"
	KindFieldDecl         = "field_declaration"
	KindTypeRef           = "type_reference"
	KindIdentifier        = "identifier"
	KindIntegerLit        = "integer_literal"
	KindFloatLit          = "float_literal"
	KindBoolLit           = "bool_literal"
	KindCharLit           = "char_literal"
	KindNullLit           = "null_literal"
	KindBinaryExpr        = "binary_expression"
	KindUnaryExpr         = "unary_expression"
	KindTernaryExpr       = "ternary_expression"
	KindLogicalExpr       = "logical_expression"
	KindMethodCall        = "method_call"
	KindFieldAccess       = "field_access"
	KindExpressionList    = "expression_list"
	KindStringLit         = "string_literal"
	KindConstructorCall   = "constructor_call"
	KindTypeConversion    = "type_conversion"
)

// Node wraps a single *sitter.Node with its source buffer so every
// accessor can slice out identifier/literal text without the caller
// re-threading the byte slice through every call.
type Node struct {
	n      *sitter.Node
	source []byte
}

// Wrap adapts a raw sitter node plus its originating source buffer.
// It returns the zero Node (IsNil() true) for a nil input, so callers
// can chain accessors without nil-checking every step.
func Wrap(n *sitter.Node, source []byte) Node {
	return Node{n: n, source: source}
}

// IsNil reports whether this Node wraps no underlying sitter node.
func (nd Node) IsNil() bool { return nd.n == nil }

// Kind returns the production name, e.g. "if_statement".
func (nd Node) Kind() string {
	if nd.IsNil() {
		return ""
	}
	return nd.n.Type()
}

// Pos reports the 1-based line and 0-based column of the leading
// token, matching the front-end's point convention.
func (nd Node) Pos() (line, col int) {
	if nd.IsNil() {
		return 0, 0
	}
	p := nd.n.StartPoint()
	return int(p.Row) + 1, int(p.Column)
}

// Text returns the exact source slice this node spans, used for
// identifier names and literal token text.
func (nd Node) Text() string {
	if nd.IsNil() {
		return ""
	}
	return nd.n.Content(nd.source)
}

// ChildCount returns the number of named children (anonymous tokens
// like ":" or "(" are excluded, matching how the grammar groups its
// productions).
func (nd Node) ChildCount() int {
	if nd.IsNil() {
		return 0
	}
	return int(nd.n.NamedChildCount())
}

// Child returns the i-th named child, or the nil Node if out of range.
func (nd Node) Child(i int) Node {
	if nd.IsNil() || i < 0 || i >= nd.ChildCount() {
		return Node{}
	}
	return Wrap(nd.n.NamedChild(i), nd.source)
}

// Field returns the child bound to the grammar's named field, or the
// nil Node if the field is absent (e.g. an if-statement with no
// else_clause).
func (nd Node) Field(name string) Node {
	if nd.IsNil() {
		return Node{}
	}
	return Wrap(nd.n.ChildByFieldName(name), nd.source)
}

// Children returns every named child of kind, in source order, used
// for repeated productions (elif_clause, parameter, statements).
func (nd Node) Children(kind string) []Node {
	if nd.IsNil() {
		return nil
	}
	var out []Node
	for i := 0; i < nd.ChildCount(); i++ {
		c := nd.Child(i)
		if c.Kind() == kind {
			out = append(out, c)
		}
	}
	return out
}

// All returns every named child regardless of kind, in source order.
func (nd Node) All() []Node {
	if nd.IsNil() {
		return nil
	}
	out := make([]Node, nd.ChildCount())
	for i := range out {
		out[i] = nd.Child(i)
	}
	return out
}
