package parsetree

// File is the root adapter over one compilation unit's parse tree
type File struct {
	Root Node
	Path string
}

// NewFile wraps a parsed source_file root node together with the
// compilation unit's path, used as the file identifier for visibility
// checks.
func NewFile(root Node, path string) *File {
	return &File{Root: root, Path: path}
}

// Functions returns every top-level function definition, in source order.
func (f *File) Functions() []Node { return f.Root.Children(KindFunctionDef) }

// Resources returns every top-level resource definition, in source order.
func (f *File) Resources() []Node { return f.Root.Children(KindResourceDef) }

// --- function_definition ---

// FuncName returns the "name" field text of a function_definition.
func FuncName(fn Node) string { return fn.Field("name").Text() }

// FuncIsPub reports whether the function carries a `pub` qualifier
func FuncIsPub(fn Node) bool { return !fn.Field("pub").IsNil() }

// FuncParams returns the parameter_list node, or the nil Node if the
// function takes none.
func FuncParams(fn Node) Node { return fn.Field("parameters") }

// FuncReturnType returns the declared return-type reference node, or
// the nil Node when no explicit return type was written (non-main
// functions default to `()` in that case).
func FuncReturnType(fn Node) Node { return fn.Field("return_type") }

// FuncBody returns the function's block node.
func FuncBody(fn Node) Node { return fn.Field("body") }

// --- parameter_list / parameter ---

// Params returns every parameter child of a parameter_list, in order.
func Params(list Node) []Node { return list.Children(KindParameter) }

// ParamName returns a parameter's name field text.
func ParamName(p Node) string { return p.Field("name").Text() }

// ParamType returns a parameter's type-reference field node.
func ParamType(p Node) Node { return p.Field("type") }

// --- resource_definition ---

// ResourceName returns a resource_definition's name field text.
func ResourceName(r Node) string { return r.Field("name").Text() }

// ResourceIsPub reports whether the resource's initializer is public
func ResourceIsPub(r Node) bool { return !r.Field("pub").IsNil() }

// ResourceFields returns every field_declaration of a resource, in
// declared order.
func ResourceFields(r Node) []Node { return r.Children(KindFieldDecl) }

// FieldName returns a field_declaration's name field text.
func FieldName(fd Node) string { return fd.Field("name").Text() }

// FieldType returns a field_declaration's type-reference field node.
func FieldType(fd Node) Node { return fd.Field("type") }

// FieldIsPub reports a field_declaration's own visibility, independent
// of the resource's initializer visibility.
func FieldIsPub(fd Node) bool { return !fd.Field("pub").IsNil() }

// FieldIsConst reports whether a field_declaration is immutable after
// construction.
func FieldIsConst(fd Node) bool { return !fd.Field("const").IsNil() }

// PathGroups returns every path_group of a resource definition, each
// grouping an indexer chain with the methods nested under it.
func PathGroups(r Node) []Node { return r.Children(KindPathGroup) }

// PathIndexers returns the ordered indexer segments of a path_group
func PathIndexers(pg Node) []Node { return pg.Children(KindIndexer) }

// IndexerName returns an indexer segment's bound name.
func IndexerName(ix Node) string { return ix.Field("name").Text() }

// IndexerType returns an indexer segment's declared type-reference node.
func IndexerType(ix Node) Node { return ix.Field("type") }

// PathMethods returns every method (function_definition-shaped) nested
// directly under a path_group.
func PathMethods(pg Node) []Node { return pg.Children(KindFunctionDef) }

// --- type_reference ---

// TypeName returns a type_reference's base name text, e.g. "Vector"
// for `Vector<u8>`.
func TypeName(tr Node) string { return tr.Field("name").Text() }

// TypeArgs returns the generic argument type_reference nodes of a
// type_reference, empty for a non-generic type.
func TypeArgs(tr Node) []Node { return tr.Children(KindTypeRef) }

// --- block / statements ---

// Statements returns every direct statement child of a block, in
// source order.
func Statements(b Node) []Node { return b.All() }

// --- if_statement ---

// IfCond returns the leading condition expression node.
func IfCond(s Node) Node { return s.Field("condition") }

// IfBody returns the primary `if` branch's block node.
func IfBody(s Node) Node { return s.Field("body") }

// ElifClauses returns the ordered elif_clause children.
func ElifClauses(s Node) []Node { return s.Children(KindElifClause) }

// ElifCond returns an elif_clause's condition expression node.
func ElifCond(e Node) Node { return e.Field("condition") }

// ElifBody returns an elif_clause's block node.
func ElifBody(e Node) Node { return e.Field("body") }

// ElseClause returns the else_clause child, or the nil Node if absent.
func ElseClause(s Node) Node { return s.Field("else_clause") }

// ElseBody returns an else_clause's block node.
func ElseBody(e Node) Node { return e.Field("body") }

// --- while_statement ---

// WhileCond returns a while_statement's condition expression node.
func WhileCond(s Node) Node { return s.Field("condition") }

// WhileBody returns a while_statement's block node.
func WhileBody(s Node) Node { return s.Field("body") }

// --- return_statement ---

// ReturnValue returns the returned expression node, or the nil Node
// for a bare `return`.
func ReturnValue(s Node) Node { return s.Field("value") }

// --- variable_declaration ---

// VarName returns a variable_declaration's bound name text.
func VarName(s Node) string { return s.Field("name").Text() }

// VarIsConst reports whether the declaration used `const` rather than `let`.
func VarIsConst(s Node) bool { return !s.Field("const").IsNil() }

// VarExplicitType returns the declared type-reference node, or the
// nil Node when the type must be inferred from the initializer's
// default type.
func VarExplicitType(s Node) Node { return s.Field("type") }

// VarInit returns the mandatory initializer expression node
func VarInit(s Node) Node { return s.Field("value") }

// --- assignment ---

// AssignOp returns the compound-assignment operator token text
//, read from the anonymous
// "operator" field the grammar exposes for this production.
func AssignOp(s Node) string { return s.Field("operator").Text() }

// AssignTarget returns the assignment's lvalue expression node
// (either an identifier or a field_access).
func AssignTarget(s Node) Node { return s.Field("target") }

// AssignValue returns the assignment's right-hand expression node.
func AssignValue(s Node) Node { return s.Field("value") }

// --- expression_statement ---

// ExprStmtValue returns the wrapped expression of an expression_statement.
func ExprStmtValue(s Node) Node { return s.Child(0) }

// --- expressions ---

// BinaryOp returns a binary_expression's operator token text.
func BinaryOp(e Node) string { return e.Field("operator").Text() }

// BinaryLeft returns a binary_expression's left operand node.
func BinaryLeft(e Node) Node { return e.Field("left") }

// BinaryRight returns a binary_expression's right operand node.
func BinaryRight(e Node) Node { return e.Field("right") }

// UnaryOpText returns a unary_expression's operator token text.
func UnaryOpText(e Node) string { return e.Field("operator").Text() }

// UnaryOperand returns a unary_expression's operand node.
func UnaryOperand(e Node) Node { return e.Field("operand") }

// TernaryCond returns a ternary_expression's condition node.
func TernaryCond(e Node) Node { return e.Field("condition") }

// TernaryThen returns a ternary_expression's "then" branch node.
func TernaryThen(e Node) Node { return e.Field("then") }

// TernaryElse returns a ternary_expression's "else" branch node.
func TernaryElse(e Node) Node { return e.Field("else") }

// LogicalOpText returns a logical_expression's operator token text
// ("and"/"or"), kept distinct from binary_expression because its
// lowering emits control flow rather than a single instruction.
func LogicalOpText(e Node) string { return e.Field("operator").Text() }

// LogicalLeft returns a logical_expression's left operand node.
func LogicalLeft(e Node) Node { return e.Field("left") }

// LogicalRight returns a logical_expression's right operand node.
func LogicalRight(e Node) Node { return e.Field("right") }

// --- method_call ---

// CallReceiver returns a method_call's receiver expression node.
func CallReceiver(e Node) Node { return e.Field("receiver") }

// CallPath returns the ordered indexer-argument expression_list nodes
// along a method_call's path, one per indexer segment traversed.
func CallPath(e Node) []Node { return e.Children(KindExpressionList) }

// CallName returns a method_call's method-name text.
func CallName(e Node) string { return e.Field("name").Text() }

// CallArgs returns a method_call's explicit argument expression nodes.
func CallArgs(e Node) []Node {
	list := e.Field("arguments")
	if list.IsNil() {
		return nil
	}
	return list.All()
}

// --- field_access ---

// FieldAccessReceiver returns a field_access's receiver expression node.
func FieldAccessReceiver(e Node) Node { return e.Field("receiver") }

// FieldAccessName returns a field_access's field-name text.
func FieldAccessName(e Node) string { return e.Field("name").Text() }

// --- string_literal ---

// StringLitRaw returns a string_literal's raw token text, quotes
// included, exactly as the lexer produced it.
func StringLitRaw(e Node) string { return e.Text() }

// --- constructor_call (`Type<Generics>{fields...}` / `Type<Generics>(args...)`) ---

// ConstructorType returns a constructor_call's type-reference node,
// e.g. the `Vector<u8>` of `Vector<u8>()` or the `Point` of
// `Point{x, y}`.
func ConstructorType(e Node) Node { return e.Field("type") }

// ConstructorIsBraceForm reports whether this is a `T{...}` resource
// initializer (field values, one per ordered field) as opposed to a
// `T(...)` call-form constructor (built-in collections like Vector<T>).
func ConstructorIsBraceForm(e Node) bool { return !e.Field("fields").IsNil() }

// ConstructorArgs returns the ordered argument expressions of a
// call-form constructor_call.
func ConstructorArgs(e Node) []Node {
	list := e.Field("arguments")
	if list.IsNil() {
		return nil
	}
	return list.All()
}

// ConstructorFieldValues returns the ordered field-value expressions
// of a brace-form constructor_call.
func ConstructorFieldValues(e Node) []Node {
	list := e.Field("fields")
	if list.IsNil() {
		return nil
	}
	return list.All()
}

// --- type_conversion ---

// ConversionSource returns a type_conversion expression's operand node.
func ConversionSource(e Node) Node { return e.Field("value") }

// ConversionTarget returns a type_conversion expression's declared
// target type_reference node.
func ConversionTarget(e Node) Node { return e.Field("type") }
