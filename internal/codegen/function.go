package codegen

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	lltypes "github.com/llir/llvm/ir/types"

	"github.com/reso-lang/reso-sub002/internal/parsetree"
	"github.com/reso-lang/reso-sub002/internal/resotype"
	"github.com/reso-lang/reso-sub002/internal/symtab"
)

// LowerFunctionBody emits a registered top-level function's body.
// sym.IR must already hold the *ir.Func the registration pass
// (pass 1) declared.
func (c *Context) LowerFunctionBody(fnNode parsetree.Node, sym *symtab.FunctionSymbol) bool {
	fn := sym.IR.(*ir.Func)
	return c.lowerCallableBody(fn, sym.ReturnType, sym.Params, parsetree.FuncBody(fnNode), sym.Name == "main")
}

// LowerMethodBody emits a registered resource method's body. sym.IR
// must already hold the *ir.Func the resource declaration pass (pass
// 2) declared, and sym.Params[0] is always the "this" receiver.
func (c *Context) LowerMethodBody(methodNode parsetree.Node, sym *symtab.MethodSymbol) bool {
	fn := sym.IR.(*ir.Func)
	return c.lowerCallableBody(fn, sym.ReturnType, sym.Params, parsetree.FuncBody(methodNode), false)
}

// lowerCallableBody is the shared entry-block/parameter-binding/
// implicit-return machinery behind both function and method bodies:
// a fresh entry block is created, the scratch-alloca position
// resets to its top, each parameter is given its own alloca (the
// "this" receiver included), and main additionally calls gc_init
// before its body and returns i32 0 when its body falls off the end.
func (c *Context) lowerCallableBody(fn *ir.Func, returnType *resotype.Type, params []symtab.Param, body parsetree.Node, isMain bool) bool {
	entry := fn.NewBlock("entry")
	prevFunc, prevBlock := c.Func, c.Block
	c.EnterFunction(fn, entry)
	c.Table.PushFunctionScope(returnType)

	if isMain {
		c.GCInit()
	}

	for i, p := range params {
		ptr := c.Alloca(c.LLVMType(p.Type), p.Name)
		c.Block.NewStore(fn.Params[i], ptr)
		v := &symtab.VariableSymbol{
			Name: p.Name, Type: p.Type, Ptr: ptr,
			Initialized: true, IsConstant: p.Name == "this",
		}
		if err := c.Table.DefineVariable(v); err != nil {
			c.reportSymtabErr(err, 0, 0)
		}
	}

	ok := c.LowerBlock(body, nil)
	if ok && c.Block.Term == nil {
		ok = c.emitImplicitReturn(returnType, isMain)
	}

	if err := c.Table.PopScope(); err != nil {
		c.reportSymtabErr(err, 0, 0)
		ok = false
	}
	c.ExitFunction()
	c.Func, c.Block = prevFunc, prevBlock
	return ok
}

// emitImplicitReturn appends the return a falling-off-the-end
// function body requires: main always returns
// i32 0 regardless of its declared analysis, any other unit-returning
// function returns (), and anything else is an error (a function with
// a non-unit return type must return on every path).
func (c *Context) emitImplicitReturn(returnType *resotype.Type, isMain bool) bool {
	if isMain {
		c.Block.NewRet(constant.NewInt(lltypes.I32, 0))
		return true
	}
	if returnType.IsUnit() {
		c.Block.NewRet(c.unitConstant())
		return true
	}
	c.Diag.Report(ErrReturnInvalid, 0, 0, "function must return a value of type %s on every path", returnType)
	return false
}
