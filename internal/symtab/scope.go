package symtab

import "github.com/reso-lang/reso-sub002/internal/resotype"

// entryKey is how a single scope map distinguishes a variable named
// "x" from a resource also named "x".
type entryKey struct {
	name string
	kind SymbolKind
}

type scope struct {
	entries map[entryKey]any
	// isFunctionScope marks the scope that owns a function-return-type
	// frame, so exiting it pops returnTypes.
	isFunctionScope bool
}

func newScope(isFunctionScope bool) *scope {
	return &scope{entries: make(map[entryKey]any), isFunctionScope: isFunctionScope}
}

// Table is the nested scope stack: a
// Vec<HashMap<(name,kind), Symbol>> where lookups walk top-down and
// the "parent scope" is implicit in stack position. Index 0 is always
// the global (file) scope and is never popped.
type Table struct {
	file        string
	scopes      []*scope
	returnTypes []*resotype.Type
}

// NewTable creates a Table with its permanent global scope already
// pushed, tagged with the compilation unit's file identifier used for
// visibility checks.
func NewTable(file string) *Table {
	t := &Table{file: file}
	t.scopes = []*scope{newScope(false)}
	return t
}

// File returns the compilation unit this table's global scope
// belongs to; it doubles as the "current access context" default.
func (t *Table) File() string { return t.file }

// PushBlockScope opens a nested lexical scope (if/while bodies, etc.).
func (t *Table) PushBlockScope() {
	t.scopes = append(t.scopes, newScope(false))
}

// PushFunctionScope opens a function scope carrying returnType on the
// function-return-type stack, so nested returns know their target
// type without threading it through every lowering call.
func (t *Table) PushFunctionScope(returnType *resotype.Type) {
	t.scopes = append(t.scopes, newScope(true))
	t.returnTypes = append(t.returnTypes, returnType)
}

// PopScope exits the innermost scope. Exiting the permanent global
// scope is an error.
func (t *Table) PopScope() error {
	if len(t.scopes) <= 1 {
		return &Diagnostic{Code: ErrScopeUnderflow, Message: "cannot exit global scope", File: t.file}
	}
	top := t.scopes[len(t.scopes)-1]
	if top.isFunctionScope {
		if len(t.returnTypes) == 0 {
			return &Diagnostic{Code: ErrScopeUnderflow, Message: "function scope exited with no return-type frame", File: t.file}
		}
		t.returnTypes = t.returnTypes[:len(t.returnTypes)-1]
	}
	t.scopes = t.scopes[:len(t.scopes)-1]
	return nil
}

// CurrentReturnType reports the return type of the innermost
// enclosing function scope, used by return-statement lowering.
func (t *Table) CurrentReturnType() (*resotype.Type, bool) {
	if len(t.returnTypes) == 0 {
		return nil, false
	}
	return t.returnTypes[len(t.returnTypes)-1], true
}

// InFunction reports whether a function scope is currently open, used
// to reject `return` at file scope.
func (t *Table) InFunction() bool { return len(t.returnTypes) > 0 }

func (t *Table) top() *scope { return t.scopes[len(t.scopes)-1] }

// DefineVariable adds a new VariableSymbol to the innermost scope.
// Defining in global scope is forbidden; redefinition in the
// same scope is an error, while shadowing an outer scope's entry is
// allowed (a new map entry simply occludes it during lookup).
func (t *Table) DefineVariable(v *VariableSymbol) error {
	if len(t.scopes) == 1 {
		return &Diagnostic{Code: ErrGlobalVariable, Message: "cannot define a variable in global scope: " + v.Name, File: t.file}
	}
	key := entryKey{v.Name, KindVariable}
	if _, exists := t.top().entries[key]; exists {
		return &Diagnostic{Code: ErrRedefinition, Message: "redefinition of " + v.Name, File: t.file}
	}
	t.top().entries[key] = v
	return nil
}

// DefineGlobal adds a FunctionSymbol, ResourceSymbol, or TypeSymbol to
// the global scope; these are only ever registered there.
func (t *Table) DefineGlobal(name string, kind SymbolKind, sym any) error {
	key := entryKey{name, kind}
	global := t.scopes[0]
	if _, exists := global.entries[key]; exists {
		return &Diagnostic{Code: ErrRedefinition, Message: "redefinition of " + name, File: t.file}
	}
	global.entries[key] = sym
	return nil
}

// lookup walks the scope stack top-down for (name, kind), returning
// the first (innermost) match.
func (t *Table) lookup(name string, kind SymbolKind) (any, bool) {
	for i := len(t.scopes) - 1; i >= 0; i-- {
		if sym, ok := t.scopes[i].entries[entryKey{name, kind}]; ok {
			return sym, true
		}
	}
	return nil, false
}

// FindReadableVariable looks up a variable for a read: it
// surfaces "not defined" and "not initialized" as distinct errors
// rather than folding them into one failure mode.
func (t *Table) FindReadableVariable(name string) (*VariableSymbol, error) {
	sym, ok := t.lookup(name, KindVariable)
	if !ok {
		return nil, notDefined(t.file, name)
	}
	v := sym.(*VariableSymbol)
	if !v.Initialized {
		return nil, notInitialized(t.file, name)
	}
	return v, nil
}

// LookupVariable finds a variable regardless of its initialized
// state, used by assignment lowering which initializes on first write.
func (t *Table) LookupVariable(name string) (*VariableSymbol, bool) {
	sym, ok := t.lookup(name, KindVariable)
	if !ok {
		return nil, false
	}
	return sym.(*VariableSymbol), true
}

// InitializeVariable walks from the current scope upward and replaces
// the first matching entry with an initialized copy. It
// refuses to re-initialize a constant.
func (t *Table) InitializeVariable(name string) (*VariableSymbol, error) {
	for i := len(t.scopes) - 1; i >= 0; i-- {
		key := entryKey{name, KindVariable}
		if sym, ok := t.scopes[i].entries[key]; ok {
			v := sym.(*VariableSymbol)
			if v.Initialized && v.IsConstant {
				return nil, &Diagnostic{Code: ErrConstAssign, Message: "cannot assign to constant: " + name, File: t.file}
			}
			next := v.Initialize()
			t.scopes[i].entries[key] = next
			return next, nil
		}
	}
	return nil, notDefined(t.file, name)
}

// LookupFunction resolves a top-level function by name, checking
// visibility against accessFile.
func (t *Table) LookupFunction(name, accessFile string) (*FunctionSymbol, error) {
	sym, ok := t.scopes[0].entries[entryKey{name, KindFunction}]
	if !ok {
		return nil, notDefined(t.file, name)
	}
	f := sym.(*FunctionSymbol)
	if !visible(f.Visibility, f.File, accessFile) {
		return nil, &Diagnostic{Code: ErrVisibility, Message: "not visible from this file: " + name, File: accessFile}
	}
	return f, nil
}

// LookupResource resolves a registered resource symbol by name; its
// type itself carries no visibility (only its initializer and its
// members do), so this lookup never fails on visibility grounds.
func (t *Table) LookupResource(name string) (*ResourceSymbol, bool) {
	sym, ok := t.scopes[0].entries[entryKey{name, KindResource}]
	if !ok {
		return nil, false
	}
	return sym.(*ResourceSymbol), true
}

// CheckVisible reports the access-check decision directly, for callers
// (field/method lookup in internal/codegen) that already hold the
// symbol and only need the boolean decision plus a ready-made error.
func CheckVisible(vis Visibility, declaringFile, accessFile, what string) error {
	if visible(vis, declaringFile, accessFile) {
		return nil
	}
	return &Diagnostic{Code: ErrVisibility, Message: "not visible from this file: " + what, File: accessFile}
}
