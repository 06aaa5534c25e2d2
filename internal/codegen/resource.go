package codegen

import (
	"github.com/llir/llvm/ir"

	"github.com/reso-lang/reso-sub002/internal/parsetree"
	"github.com/reso-lang/reso-sub002/internal/resotype"
	"github.com/reso-lang/reso-sub002/internal/symtab"
)

// RegisterResourceSignature runs the first half of resource
// registration: declare a resource's opaque struct type and its empty
// ResourceSymbol shell. This must run for every resource across every
// compilation unit before RegisterResourceDecl runs for any of them,
// so a field or method referencing another unit's resource type
// always finds it already declared.
func (c *Context) RegisterResourceSignature(file string, resNode parsetree.Node) bool {
	name := parsetree.ResourceName(resNode)
	line, col := resNode.Pos()

	t := c.Reg.Resource(name, nil)
	c.LLVMType(t)

	vis := symtab.FilePrivate
	if parsetree.ResourceIsPub(resNode) {
		vis = symtab.GlobalVisibility
	}
	sym := symtab.NewResourceSymbol(name, t, file, vis)
	if err := c.Table.DefineGlobal(name, symtab.KindResource, sym); err != nil {
		c.reportSymtabErr(err, line, col)
		return false
	}
	return true
}

// RegisterResourceDecl runs the second half of resource registration:
// populate a previously-signature-registered resource's field list
// and finalize its opaque struct body, then register a MethodSymbol
// (with a declared, bodyless *ir.Func) for every method nested under
// each of its path groups. User-defined resources in this front end
// carry no generic parameter list of their own — only the Vector<T>
// built-in is generic, and its methods are handled as compiler
// intrinsics in calls.go rather than through this registration path
// (see DESIGN.md).
func (c *Context) RegisterResourceDecl(file string, resNode parsetree.Node) bool {
	name := parsetree.ResourceName(resNode)
	resSym, found := c.Table.LookupResource(name)
	if !found {
		panic("codegen: resource signature not registered before declaration pass: " + name)
	}

	ok := true
	for i, fd := range parsetree.ResourceFields(resNode) {
		ft, tok := c.ResolveType(parsetree.FieldType(fd))
		if !tok {
			ok = false
			continue
		}
		fieldVis := symtab.FilePrivate
		if parsetree.FieldIsPub(fd) {
			fieldVis = symtab.GlobalVisibility
		}
		resSym.Type.Fields = append(resSym.Type.Fields, resotype.Field{Name: parsetree.FieldName(fd), Type: ft, Index: i})
		resSym.Fields = append(resSym.Fields, symtab.FieldSymbol{
			Name: parsetree.FieldName(fd), Type: ft, Index: i,
			Visibility: fieldVis, IsConst: parsetree.FieldIsConst(fd),
		})
	}
	if !ok {
		return false
	}
	c.FinalizeResourceBody(resSym.Type)

	for _, pg := range parsetree.PathGroups(resNode) {
		path, pathParams, pok := c.resolvePath(pg)
		if !pok {
			ok = false
			continue
		}
		for _, m := range parsetree.PathMethods(pg) {
			if !c.registerMethod(file, resSym, path, pathParams, m) {
				ok = false
			}
		}
	}
	return ok
}

func (c *Context) resolvePath(pg parsetree.Node) ([]symtab.PathSegment, []symtab.Param, bool) {
	indexers := parsetree.PathIndexers(pg)
	if len(indexers) == 0 {
		return nil, nil, true
	}
	path := make([]symtab.PathSegment, 0, len(indexers))
	params := make([]symtab.Param, 0, len(indexers))
	for _, ix := range indexers {
		it, ok := c.ResolveType(parsetree.IndexerType(ix))
		if !ok {
			return nil, nil, false
		}
		name := parsetree.IndexerName(ix)
		path = append(path, symtab.PathSegment{IndexerName: name, IndexerType: it})
		params = append(params, symtab.Param{Name: name, Type: it})
	}
	return path, params, true
}

func (c *Context) registerMethod(file string, resSym *symtab.ResourceSymbol, path []symtab.PathSegment, pathParams []symtab.Param, m parsetree.Node) bool {
	name := parsetree.FuncName(m)
	line, col := m.Pos()

	if _, exists := resSym.LookupMethod(path, name); exists {
		c.Diag.Report(ErrDuplicateDefinition, line, col, "redefinition of method %s on %s", name, resSym.Name)
		return false
	}

	explicitParams, ok := c.resolveParams(parsetree.FuncParams(m))
	if !ok {
		return false
	}

	returnTypeNode := parsetree.FuncReturnType(m)
	var returnType *resotype.Type
	if returnTypeNode.IsNil() {
		returnType = c.Reg.Primitive(resotype.KindUnit)
	} else {
		t, tok := c.ResolveType(returnTypeNode)
		if !tok {
			return false
		}
		returnType = t
	}

	allParams := make([]symtab.Param, 0, 1+len(pathParams)+len(explicitParams))
	allParams = append(allParams, symtab.Param{Name: "this", Type: resSym.Type})
	allParams = append(allParams, pathParams...)
	allParams = append(allParams, explicitParams...)

	irFn := c.Module.NewFunc(resSym.Name+"."+name, c.LLVMType(returnType))
	for _, p := range allParams {
		irFn.Params = append(irFn.Params, ir.NewParam(p.Name, c.LLVMType(p.Type)))
	}

	vis := symtab.FilePrivate
	if parsetree.FuncIsPub(m) {
		vis = symtab.GlobalVisibility
	}

	resSym.AddMethod(&symtab.MethodSymbol{
		Name: name, ReturnType: returnType, Path: path, Params: allParams,
		IR: irFn, Visibility: vis, File: file,
	})
	return true
}

// EmitResourceMethods emits every method body of a single resource
// definition: re-walk its path groups (cheap — ResolveType returns the
// same cached *resotype.Type instances the registration pass already
// resolved) to recover each method's registered MethodSymbol, then
// lower its body.
func (c *Context) EmitResourceMethods(file string, resNode parsetree.Node) bool {
	name := parsetree.ResourceName(resNode)
	resSym, found := c.Table.LookupResource(name)
	if !found {
		panic("codegen: resource not registered before emission: " + name)
	}

	c.PushAccessFile(file)
	defer c.PopAccessFile()

	ok := true
	for _, pg := range parsetree.PathGroups(resNode) {
		path, _, pok := c.resolvePath(pg)
		if !pok {
			ok = false
			continue
		}
		for _, m := range parsetree.PathMethods(pg) {
			sym, found := resSym.LookupMethod(path, parsetree.FuncName(m))
			if !found {
				panic("codegen: method not registered before emission: " + parsetree.FuncName(m))
			}
			if !c.LowerMethodBody(m, sym) {
				ok = false
			}
		}
	}
	return ok
}

// RegisterBuiltins registers the String resource: a single
// public field wrapping a Vector<u8> of the string's bytes, with a
// public initializer. Vector<T> itself needs no ResourceSymbol — every
// Vector<T> instantiation is handled directly by Registry.VectorOf
// plus the hardcoded intrinsics in calls.go/vector.go, never through
// the method table (see DESIGN.md).
func (c *Context) RegisterBuiltins(file string) bool {
	stringT := c.Reg.Resource("String", nil)
	c.LLVMType(stringT)

	u8 := c.Reg.Primitive(resotype.KindU8)
	bytesType := c.Reg.VectorOf(u8)

	stringT.Fields = []resotype.Field{{Name: "bytes", Type: bytesType, Index: 0}}
	resSym := symtab.NewResourceSymbol("String", stringT, file, symtab.GlobalVisibility)
	resSym.Fields = []symtab.FieldSymbol{{Name: "bytes", Type: bytesType, Index: 0, Visibility: symtab.GlobalVisibility}}
	c.FinalizeResourceBody(stringT)

	if err := c.Table.DefineGlobal("String", symtab.KindResource, resSym); err != nil {
		c.reportSymtabErr(err, 0, 0)
		return false
	}
	return true
}
