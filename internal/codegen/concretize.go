package codegen

import (
	"math/big"

	"github.com/llir/llvm/ir/constant"
	lltypes "github.com/llir/llvm/ir/types"

	"github.com/reso-lang/reso-sub002/internal/resotype"
	"github.com/reso-lang/reso-sub002/internal/resoval"
)

// Concretize commits v to target, emitting IR exactly once per
// deferred node and returning
// the resulting Concrete. ok is false when v cannot concretize to
// target or a nested concretization failed; the caller has already
// had a diagnostic reported by the point this returns false and must
// not invent a fallback value.
//
// This free function, not a method on ResoValue, is what keeps
// internal/resoval import-cycle-free: it type-switches over the
// value kinds internal/resoval exports and is the one place that
// knows how to turn each of them into IR.
func Concretize(ctx *Context, v resoval.Value, target *resotype.Type) (*resoval.Concrete, bool) {
	if !v.CanConcretizeTo(target) {
		line, col := v.Pos()
		ctx.Diag.Report(ErrTypeMismatch, line, col, "cannot convert %s to %s", v.Type(), target)
		return nil, false
	}
	switch n := v.(type) {
	case *resoval.Concrete:
		ir, ok := ctx.Convert(n.IR, n.T, target)
		if !ok {
			return nil, false
		}
		return resoval.NewConcrete(target, ir, n.Line, n.Col), true

	case *resoval.IntegerLit:
		return concretizeIntLit(ctx, n, target), true

	case *resoval.FloatLit:
		return concretizeFloatLit(ctx, n, target), true

	case *resoval.Arithmetic:
		return concretizeArithmetic(ctx, n, target)

	case *resoval.Bitwise:
		return concretizeBitwise(ctx, n, target)

	case *resoval.Compare:
		return concretizeCompare(ctx, n)

	case *resoval.Logical:
		return concretizeLogical(ctx, n)

	case *resoval.Unary:
		return concretizeUnary(ctx, n, target)

	case *resoval.Ternary:
		return concretizeTernary(ctx, n, target)

	case *resoval.VectorCtor:
		return concretizeVectorCtor(ctx, n, target)
	}
	panic("codegen: Concretize: unhandled ResoValue kind")
}

// ConcretizeToDefault concretizes v to its own default type, identical
// to Concretize(defaultType), erroring when the value has no default
// (e.g. a naked Vector constructor).
func ConcretizeToDefault(ctx *Context, v resoval.Value) (*resoval.Concrete, bool) {
	target, ok := v.DefaultType()
	if !ok {
		line, col := v.Pos()
		ctx.Diag.Report(ErrTypeMismatch, line, col, "value has no default type and no target was given")
		return nil, false
	}
	return Concretize(ctx, v, target)
}

func concretizeIntLit(ctx *Context, lit *resoval.IntegerLit, target *resotype.Type) *resoval.Concrete {
	ll := ctx.LLVMType(target).(*lltypes.IntType)
	bi := new(big.Int).SetUint64(lit.Magnitude)
	if lit.Negative {
		bi.Neg(bi)
	}
	c := constant.NewIntFromBigInt(ll, bi)
	return resoval.NewConcrete(target, c, lit.Line, lit.Col)
}

func concretizeFloatLit(ctx *Context, lit *resoval.FloatLit, target *resotype.Type) *resoval.Concrete {
	ll := ctx.LLVMType(target).(*lltypes.FloatType)
	c := constant.NewFloat(ll, lit.Value)
	return resoval.NewConcrete(target, c, lit.Line, lit.Col)
}

func concretizeVectorCtor(ctx *Context, v *resoval.VectorCtor, target *resotype.Type) (*resoval.Concrete, bool) {
	vec := ctx.VectorConstruct(target.Generics[0])
	return resoval.NewConcrete(target, vec, v.Line, v.Col), true
}
