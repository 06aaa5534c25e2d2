package codegen

import (
	"github.com/llir/llvm/ir"

	"github.com/reso-lang/reso-sub002/internal/parsetree"
	"github.com/reso-lang/reso-sub002/internal/resotype"
	"github.com/reso-lang/reso-sub002/internal/symtab"
)

// RegisterFunctionSignature runs in the first registration pass, once
// per top-level function definition of a compilation unit: it
// registers a FunctionSymbol for fnNode, declaring its *ir.Func (with no body yet)
// so pass 3 only has to look it up. `pub` maps to GLOBAL visibility,
// its absence to FILEPRIVATE; `main` is additionally constrained to
// take no parameters and declare an explicit i32 return type.
func (c *Context) RegisterFunctionSignature(file string, fnNode parsetree.Node) bool {
	name := parsetree.FuncName(fnNode)
	line, col := fnNode.Pos()
	isMain := name == "main"

	params, ok := c.resolveParams(parsetree.FuncParams(fnNode))
	if !ok {
		return false
	}

	returnTypeNode := parsetree.FuncReturnType(fnNode)
	var returnType *resotype.Type
	switch {
	case isMain:
		if returnTypeNode.IsNil() {
			c.Diag.Report(ErrReturnInvalid, line, col, "main must declare an explicit return type of i32")
			return false
		}
		t, tok := c.ResolveType(returnTypeNode)
		if !tok {
			return false
		}
		if t.Kind != resotype.KindI32 {
			c.Diag.Report(ErrReturnInvalid, line, col, "main must return i32")
			return false
		}
		if len(params) != 0 {
			c.Diag.Report(ErrArgCountMismatch, line, col, "main must take no parameters")
			return false
		}
		returnType = t
	case returnTypeNode.IsNil():
		returnType = c.Reg.Primitive(resotype.KindUnit)
	default:
		t, tok := c.ResolveType(returnTypeNode)
		if !tok {
			return false
		}
		returnType = t
	}

	irFn := c.Module.NewFunc(name, c.LLVMType(returnType))
	for _, p := range params {
		irFn.Params = append(irFn.Params, ir.NewParam(p.Name, c.LLVMType(p.Type)))
	}

	vis := symtab.FilePrivate
	if parsetree.FuncIsPub(fnNode) {
		vis = symtab.GlobalVisibility
	}

	sym := &symtab.FunctionSymbol{
		Name: name, ReturnType: returnType, Params: params,
		IR: irFn, Visibility: vis, File: file,
	}
	if err := c.Table.DefineGlobal(name, symtab.KindFunction, sym); err != nil {
		c.reportSymtabErr(err, line, col)
		return false
	}
	return true
}

// resolveParams resolves a parameter_list's declared types in order;
// list may be the nil Node for a zero-parameter signature.
func (c *Context) resolveParams(list parsetree.Node) ([]symtab.Param, bool) {
	if list.IsNil() {
		return nil, true
	}
	raw := parsetree.Params(list)
	params := make([]symtab.Param, 0, len(raw))
	for _, p := range raw {
		t, ok := c.ResolveType(parsetree.ParamType(p))
		if !ok {
			return nil, false
		}
		params = append(params, symtab.Param{Name: parsetree.ParamName(p), Type: t})
	}
	return params, true
}
