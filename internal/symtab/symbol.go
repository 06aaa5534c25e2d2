package symtab

import (
	"github.com/llir/llvm/ir/value"

	"github.com/reso-lang/reso-sub002/internal/resotype"
)

// Visibility controls whether a file-scoped symbol is reachable
// outside its declaring compilation unit.
type Visibility int

const (
	FilePrivate Visibility = iota
	GlobalVisibility
)

// SymbolKind distinguishes same-name entries that occupy different
// namespaces (a resource and a function may share a name); scope
// lookups key on (name, kind).
type SymbolKind int

const (
	KindVariable SymbolKind = iota
	KindFunction
	KindType
	KindResource
)

// VariableSymbol holds an alloca'd local or parameter. Initialized is
// not part of the struct's mutable state: initializeVariable replaces
// the scope-map entry with a new,
// initialized VariableSymbol rather than mutate the old one in place,
// so a stale alias to the old value never observes the flag flip.
type VariableSymbol struct {
	Name        string
	Type        *resotype.Type
	Ptr         value.Value
	IsConstant  bool
	Initialized bool
}

// Initialize returns a new VariableSymbol identical to v but marked
// initialized; it does not mutate v.
func (v *VariableSymbol) Initialize() *VariableSymbol {
	next := *v
	next.Initialized = true
	return &next
}

// CallBuilder lets a FunctionSymbol/MethodSymbol override how a call
// to it is emitted; when Builder is nil the caller emits a direct call
// to IR. No registration path in this module sets one: Vector<T>
// methods are lowered directly by internal/codegen.
type CallBuilder func(args []value.Value) (value.Value, error)

// FunctionSymbol is a registered top-level function.
type FunctionSymbol struct {
	Name       string
	ReturnType *resotype.Type
	Params     []Param
	IR         value.Value
	Visibility Visibility
	File       string
	Builder    CallBuilder
}

// Param is one parameter slot in a function or method signature.
type Param struct {
	Name string
	Type *resotype.Type
}

// PathSegment is one indexer hop in a resource method path, e.g. the
// `{index: usize}` in `/{index: usize}.get`.
type PathSegment struct {
	IndexerName string
	IndexerType *resotype.Type
}

// MethodSymbol is one method registered under a resource's path group
//: its parameter list is always [receiver, indexer params in
// path order, explicit params].
type MethodSymbol struct {
	Name       string
	ReturnType *resotype.Type
	Path       []PathSegment
	Params     []Param
	IR         value.Value
	Visibility Visibility
	File       string
	Builder    CallBuilder
}

// methodKey identifies a method within its owning resource: the path
// string (segments joined by "/") plus the method name, since two
// different paths may each define a "get". An indexer segment's
// display form is the positional placeholder "{Indexer}" rather than
// its bound name, matching the path string's own display rule — a
// call site supplies indexer argument expressions, never their
// declared names, so the key must not depend on them.
func methodKey(path []PathSegment, name string) string {
	key := ""
	for range path {
		key += "/{Indexer}"
	}
	return key + "." + name
}

// ResourceSymbol is a user-defined or built-in resource type:
// ordered fields plus a method table keyed by (path, name).
type ResourceSymbol struct {
	Name              string
	Type              *resotype.Type
	Fields            []FieldSymbol
	Methods           map[string]*MethodSymbol
	InitVisibility    Visibility
	File              string
}

// FieldSymbol is one ordered field of a resource, with its own
// visibility independent of the resource's initializer visibility
type FieldSymbol struct {
	Name       string
	Type       *resotype.Type
	Index      int
	Visibility Visibility
	IsConst    bool
}

// NewResourceSymbol creates an empty resource symbol ready to receive
// fields and methods during the resource registration pass.
func NewResourceSymbol(name string, t *resotype.Type, file string, initVis Visibility) *ResourceSymbol {
	return &ResourceSymbol{
		Name:           name,
		Type:           t,
		Methods:        make(map[string]*MethodSymbol),
		InitVisibility: initVis,
		File:           file,
	}
}

// AddMethod registers m under its (path, name) key, overwriting any
// earlier registration for the same key (redefinition within a single
// resource is rejected by the caller before this is reached).
func (r *ResourceSymbol) AddMethod(m *MethodSymbol) {
	r.Methods[methodKey(m.Path, m.Name)] = m
}

// LookupMethod finds a previously registered method by path and name.
func (r *ResourceSymbol) LookupMethod(path []PathSegment, name string) (*MethodSymbol, bool) {
	m, ok := r.Methods[methodKey(path, name)]
	return m, ok
}

// TypeSymbol is a non-resource named type alias entry. Nothing in the
// pipeline registers one: type names, primitives included, resolve
// through resotype.Registry.ResolveName.
type TypeSymbol struct {
	Name string
	Type *resotype.Type
	File string
}

// visible reports whether (vis, declaringFile) is reachable from
// accessFile.
func visible(vis Visibility, declaringFile, accessFile string) bool {
	return vis == GlobalVisibility || declaringFile == accessFile
}
