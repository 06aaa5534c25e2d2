package codegen

import (
	"testing"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	lltypes "github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reso-lang/reso-sub002/internal/resotype"
	"github.com/reso-lang/reso-sub002/internal/resoval"
	"github.com/reso-lang/reso-sub002/internal/symtab"
)

func newTestContext(t *testing.T) *Context {
	t.Helper()
	reg := resotype.NewRegistry(64)
	table := symtab.NewTable("t.reso")
	ctx := NewContext("t", reg, table)
	fn := ctx.Module.NewFunc("f", lltypes.Void)
	entry := fn.NewBlock("entry")
	ctx.EnterFunction(fn, entry)
	return ctx
}

// arithInt's Mod case implements the adjusted-remainder law: a signed mod lowers to an SRem behind a select that
// adds b back in whenever the remainder is nonzero and the operand
// signs differ, never an unconditional add.
func TestArithIntSignedModEmitsAdjustSelect(t *testing.T) {
	ctx := newTestContext(t)
	i32 := lltypes.I32
	l := ir.NewParam("a", i32)
	r := ir.NewParam("b", i32)

	result := arithInt(ctx, resoval.Mod, l, r, true)
	sel, ok := result.(*ir.InstSelect)
	require.True(t, ok, "signed Mod must lower to a select, got %T", result)

	adjusted, ok := sel.Y.(*ir.InstAdd)
	require.True(t, ok, "the false (adjusted) arm must be an add, got %T", sel.Y)
	assert.Equal(t, r, adjusted.Y)

	rem, ok := sel.X.(*ir.InstSRem)
	require.True(t, ok, "the true (unadjusted) arm must be the raw srem, got %T", sel.X)
	assert.Equal(t, value.Value(rem), adjusted.X)
}

func TestArithIntUnsignedModIsPlainURem(t *testing.T) {
	ctx := newTestContext(t)
	i32 := lltypes.I32
	l := ir.NewParam("a", i32)
	r := ir.NewParam("b", i32)

	result := arithInt(ctx, resoval.Mod, l, r, false)
	_, ok := result.(*ir.InstURem)
	require.True(t, ok, "unsigned Mod must lower directly to urem, got %T", result)
}

func TestArithIntDivSelectsSignedness(t *testing.T) {
	i32 := lltypes.I32
	l := ir.NewParam("a", i32)
	r := ir.NewParam("b", i32)

	signed := arithInt(newTestContext(t), resoval.Div, l, r, true)
	_, ok := signed.(*ir.InstSDiv)
	require.True(t, ok)

	unsigned := arithInt(newTestContext(t), resoval.Div, l, r, false)
	_, ok = unsigned.(*ir.InstUDiv)
	require.True(t, ok)
}

func TestArithFloatModEmitsAdjustSelect(t *testing.T) {
	ctx := newTestContext(t)
	f64 := lltypes.Double
	l := ir.NewParam("a", f64)
	r := ir.NewParam("b", f64)

	result := arithFloat(ctx, resoval.Mod, l, r)
	sel, ok := result.(*ir.InstSelect)
	require.True(t, ok, "float Mod must lower to a select, got %T", result)
	_, ok = sel.Y.(*ir.InstFAdd)
	require.True(t, ok)
}

func TestArithFloatRemIsPlainFRem(t *testing.T) {
	ctx := newTestContext(t)
	f64 := lltypes.Double
	l := ir.NewParam("a", f64)
	r := ir.NewParam("b", f64)

	result := arithFloat(ctx, resoval.Rem, l, r)
	_, ok := result.(*ir.InstFRem)
	require.True(t, ok)
}

func TestArithIntZeroConstantMatchesOperandWidth(t *testing.T) {
	ctx := newTestContext(t)
	i8 := lltypes.I8
	l := ir.NewParam("a", i8)
	r := ir.NewParam("b", i8)
	result := arithInt(ctx, resoval.Mod, l, r, true)
	sel := result.(*ir.InstSelect)
	cond := sel.Cond.(*ir.InstOr)
	remIsZero := cond.X.(*ir.InstICmp)
	zero := remIsZero.Y.(*constant.Int)
	assert.Equal(t, i8, zero.Typ)
}
