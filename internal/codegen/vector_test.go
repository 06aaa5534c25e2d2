package codegen

import (
	"testing"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	lltypes "github.com/llir/llvm/ir/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reso-lang/reso-sub002/internal/resotype"
)

// VectorConstruct must produce a value of exactly the Vector<elem>
// pointer type the registry hands out for that element, so later
// field/method lowering can rely on LLVMType(vecType) describing it.
func TestVectorConstructReturnsVectorPointerType(t *testing.T) {
	ctx := newTestContext(t)
	u8 := ctx.Reg.Primitive(resotype.KindU8)
	vecType := ctx.Reg.VectorOf(u8)

	vec := ctx.VectorConstruct(u8)
	assert.Equal(t, ctx.LLVMType(vecType), vec.Type())
}

// VectorGet's bounds check must branch into a
// trap block that never falls through, leaving exactly one extra
// live block (the in-range continuation) for the caller to keep
// emitting into.
func TestVectorGetEmitsBoundsCheckBlocks(t *testing.T) {
	ctx := newTestContext(t)
	u8 := ctx.Reg.Primitive(resotype.KindU8)
	vecType := ctx.Reg.VectorOf(u8)
	vec := ctx.VectorConstruct(u8)

	before := len(ctx.Func.Blocks)
	index := ctx.usizeConst(0)
	ctx.VectorGet(vecType, vec, index)
	after := len(ctx.Func.Blocks)

	assert.Equal(t, before+2, after, "bounds check must add exactly an ok block and a trap block")
	okBlock := ctx.Func.Blocks[len(ctx.Func.Blocks)-2]
	assert.Same(t, ctx.Block, okBlock, "emission must continue in the in-range block")

	trap := ctx.Func.Blocks[len(ctx.Func.Blocks)-1]
	_, ok := trap.Term.(*ir.TermUnreachable)
	require.True(t, ok, "the trap block must terminate with unreachable")
}

// VectorAdd always runs ensureCapacity first, so
// even appending into a freshly constructed vector with room to
// spare still emits the grow/continue block pair; only the runtime
// branch decides which arm actually executes.
func TestVectorAddEmitsCapacityCheckBlocks(t *testing.T) {
	ctx := newTestContext(t)
	i32 := ctx.Reg.Primitive(resotype.KindI32)
	vecType := ctx.Reg.VectorOf(i32)
	vec := ctx.VectorConstruct(i32)

	before := len(ctx.Func.Blocks)
	val := constant.NewInt(lltypes.I32, 42)
	ctx.VectorAdd(vecType, vec, val)
	after := len(ctx.Func.Blocks)

	assert.Equal(t, before+2, after, "ensureCapacity must add exactly a grow block and a continue block")
}

// VectorRemove returns the element it loads out of the vector, typed
// as the vector's element type.
func TestVectorRemoveReturnsElementTypedValue(t *testing.T) {
	ctx := newTestContext(t)
	i32 := ctx.Reg.Primitive(resotype.KindI32)
	vecType := ctx.Reg.VectorOf(i32)
	vec := ctx.VectorConstruct(i32)

	removed := ctx.VectorRemove(vecType, vec, ctx.usizeConst(0))
	assert.Equal(t, ctx.LLVMType(i32), removed.Type())
}
