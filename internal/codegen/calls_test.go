package codegen

import (
	"testing"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reso-lang/reso-sub002/internal/resotype"
	"github.com/reso-lang/reso-sub002/internal/resoval"
	"github.com/reso-lang/reso-sub002/internal/symtab"
)

// registerIndexedMethod declares a resource with a single-segment
// indexer path group and one explicit-param method under it, the way
// RegisterResourceDecl/registerMethod would for
// `res/{index: usize}.methodName(value: u8)`.
func registerIndexedMethod(t *testing.T, ctx *Context, resName, methodName string) (*symtab.ResourceSymbol, *symtab.MethodSymbol) {
	t.Helper()
	usize := ctx.Reg.Primitive(resotype.KindUsize)
	u8 := ctx.Reg.Primitive(resotype.KindU8)
	resType := ctx.Reg.Resource(resName, nil)
	resSym := symtab.NewResourceSymbol(resName, resType, "t.reso", symtab.GlobalVisibility)

	path := []symtab.PathSegment{{IndexerName: "index", IndexerType: usize}}
	irFn := ctx.Module.NewFunc(resName+"."+methodName, ctx.LLVMType(u8))
	irFn.Params = append(irFn.Params,
		ir.NewParam("this", ctx.LLVMType(resType)),
		ir.NewParam("index", ctx.LLVMType(usize)),
		ir.NewParam("value", ctx.LLVMType(u8)))
	m := &symtab.MethodSymbol{
		Name: methodName, ReturnType: u8, Path: path,
		Params: []symtab.Param{
			{Name: "this", Type: resType},
			{Name: "index", Type: usize},
			{Name: "value", Type: u8},
		},
		IR: irFn, Visibility: symtab.GlobalVisibility, File: "t.reso",
	}
	resSym.AddMethod(m)
	require.NoError(t, ctx.Table.DefineGlobal(resName, symtab.KindResource, resSym))
	return resSym, m
}

func TestResolveMethodByPathMatchesOnArityNotIndexerName(t *testing.T) {
	ctx := newTestContext(t)
	resSym, _ := registerIndexedMethod(t, ctx, "Grid", "set")

	m, ok := resolveMethodByPath(resSym, "set", 1)
	require.True(t, ok, "a one-segment path call must match a one-indexer registration")
	assert.Equal(t, "set", m.Name)
	assert.Len(t, m.Path, 1)

	_, ok = resolveMethodByPath(resSym, "set", 0)
	assert.False(t, ok, "a zero-segment path call must not match a one-indexer registration")

	_, ok = resolveMethodByPath(resSym, "missing", 1)
	assert.False(t, ok)
}

func TestEmitMethodCallPrependsReceiverThenPathArgsThenExplicitArgs(t *testing.T) {
	ctx := newTestContext(t)
	_, m := registerIndexedMethod(t, ctx, "Grid", "set")
	usize := ctx.Reg.Primitive(resotype.KindUsize)
	u8 := ctx.Reg.Primitive(resotype.KindU8)

	receiver := ir.NewParam("recv", ctx.LLVMType(m.Params[0].Type))
	idxArg := ir.NewParam("idx", ctx.LLVMType(usize))
	valArg := ir.NewParam("val", ctx.LLVMType(u8))

	result, ok := ctx.emitMethodCall(m, receiver, []value.Value{idxArg}, []value.Value{valArg}, 0, 0)
	require.True(t, ok)
	conc, ok := result.(*resoval.Concrete)
	require.True(t, ok)

	call, ok := conc.IR.(*ir.InstCall)
	require.True(t, ok, "emitMethodCall must emit a direct call when no Builder is set, got %T", conc.IR)
	require.Len(t, call.Args, 3)
	assert.Equal(t, value.Value(receiver), call.Args[0], "receiver must be argument 0")
	assert.Equal(t, value.Value(idxArg), call.Args[1], "path indexer value must be argument 1")
	assert.Equal(t, value.Value(valArg), call.Args[2], "explicit argument must be argument 2")
}
