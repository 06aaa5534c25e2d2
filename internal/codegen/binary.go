package codegen

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	lltypes "github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/reso-lang/reso-sub002/internal/resotype"
	"github.com/reso-lang/reso-sub002/internal/resoval"
)

func concretizeArithmetic(ctx *Context, a *resoval.Arithmetic, target *resotype.Type) (*resoval.Concrete, bool) {
	left, ok := Concretize(ctx, a.Left, target)
	if !ok {
		return nil, false
	}
	right, ok := Concretize(ctx, a.Right, target)
	if !ok {
		return nil, false
	}
	var result value.Value
	if target.IsFloat() {
		result = arithFloat(ctx, a.Op, left.IR, right.IR)
	} else {
		result = arithInt(ctx, a.Op, left.IR, right.IR, target.IsSignedInteger())
	}
	return resoval.NewConcrete(target, result, a.Line, a.Col), true
}

func arithFloat(ctx *Context, op resoval.ArithOp, l, r value.Value) value.Value {
	ft := l.Type().(*lltypes.FloatType)
	zero := constant.NewFloat(ft, 0)
	switch op {
	case resoval.Add:
		return ctx.Block.NewFAdd(l, r)
	case resoval.Sub:
		return ctx.Block.NewFSub(l, r)
	case resoval.Mul:
		return ctx.Block.NewFMul(l, r)
	case resoval.Div:
		return ctx.Block.NewFDiv(l, r)
	case resoval.Rem:
		return ctx.Block.NewFRem(l, r)
	case resoval.Mod:
		// Signed mod law: frem(a,b) adjusted by +b
		// when the remainder is nonzero and signs of a,b differ.
		rem := ctx.Block.NewFRem(l, r)
		adjusted := ctx.Block.NewFAdd(rem, r)
		remIsZero := ctx.Block.NewFCmp(enum.FPredOEQ, rem, zero)
		lNeg := ctx.Block.NewFCmp(enum.FPredOLT, l, zero)
		rNeg := ctx.Block.NewFCmp(enum.FPredOLT, r, zero)
		sameSign := ctx.Block.NewICmp(enum.IPredEQ, lNeg, rNeg)
		useRem := ctx.Block.NewOr(remIsZero, sameSign)
		return ctx.Block.NewSelect(useRem, rem, adjusted)
	}
	panic("codegen: unknown float arithmetic op")
}

func arithInt(ctx *Context, op resoval.ArithOp, l, r value.Value, signed bool) value.Value {
	it := l.Type().(*lltypes.IntType)
	zero := constant.NewInt(it, 0)
	switch op {
	case resoval.Add:
		return ctx.Block.NewAdd(l, r)
	case resoval.Sub:
		return ctx.Block.NewSub(l, r)
	case resoval.Mul:
		return ctx.Block.NewMul(l, r)
	case resoval.Div:
		if signed {
			return ctx.Block.NewSDiv(l, r)
		}
		return ctx.Block.NewUDiv(l, r)
	case resoval.Rem:
		if signed {
			return ctx.Block.NewSRem(l, r)
		}
		return ctx.Block.NewURem(l, r)
	case resoval.Mod:
		if !signed {
			return ctx.Block.NewURem(l, r)
		}
		// a mod b == srem(a,b) unless srem != 0 and signs differ, in
		// which case it's srem(a,b) + b.
		rem := ctx.Block.NewSRem(l, r)
		remIsZero := ctx.Block.NewICmp(enum.IPredEQ, rem, zero)
		lNeg := ctx.Block.NewICmp(enum.IPredSLT, l, zero)
		rNeg := ctx.Block.NewICmp(enum.IPredSLT, r, zero)
		sameSign := ctx.Block.NewICmp(enum.IPredEQ, lNeg, rNeg)
		useRem := ctx.Block.NewOr(remIsZero, sameSign)
		adjusted := ctx.Block.NewAdd(rem, r)
		return ctx.Block.NewSelect(useRem, rem, adjusted)
	}
	panic("codegen: unknown int arithmetic op")
}

func concretizeBitwise(ctx *Context, b *resoval.Bitwise, target *resotype.Type) (*resoval.Concrete, bool) {
	left, ok := Concretize(ctx, b.Left, target)
	if !ok {
		return nil, false
	}

	if b.Op.IsShift() {
		rightDefault, ok := ConcretizeToDefault(ctx, b.Right)
		if !ok {
			return nil, false
		}
		amount, ok := ctx.Convert(rightDefault.IR, rightDefault.T, target)
		if !ok {
			return nil, false
		}
		var result value.Value
		if b.Op == resoval.Shl {
			result = ctx.Block.NewShl(left.IR, amount)
		} else if target.IsSignedInteger() {
			result = ctx.Block.NewAShr(left.IR, amount)
		} else {
			result = ctx.Block.NewLShr(left.IR, amount)
		}
		return resoval.NewConcrete(target, result, b.Line, b.Col), true
	}

	right, ok := Concretize(ctx, b.Right, target)
	if !ok {
		return nil, false
	}
	var result value.Value
	switch b.Op {
	case resoval.And:
		result = ctx.Block.NewAnd(left.IR, right.IR)
	case resoval.Or:
		result = ctx.Block.NewOr(left.IR, right.IR)
	case resoval.Xor:
		result = ctx.Block.NewXor(left.IR, right.IR)
	default:
		panic("codegen: unknown bitwise op")
	}
	return resoval.NewConcrete(target, result, b.Line, b.Col), true
}

func concretizeCompare(ctx *Context, cmp *resoval.Compare) (*resoval.Concrete, bool) {
	operandType, ok := cmp.OperandType()
	if !ok {
		line, col := cmp.Pos()
		ctx.Diag.Report(ErrTypeMismatch, line, col, "operands of comparison cannot be unified to a common type")
		return nil, false
	}
	left, ok := Concretize(ctx, cmp.Left, operandType)
	if !ok {
		return nil, false
	}
	right, ok := Concretize(ctx, cmp.Right, operandType)
	if !ok {
		return nil, false
	}
	boolT := ctx.Reg.Primitive(resotype.KindBool)

	if operandType.IsUnit() {
		// () == () and () != () constant-fold; every other operator
		// on () is rejected here.
		if cmp.Op != resoval.Eq && cmp.Op != resoval.Ne {
			line, col := cmp.Pos()
			ctx.Diag.Report(ErrTypeMismatch, line, col, "only == and != are defined on ()")
			return nil, false
		}
		folded := cmp.Op == resoval.Eq
		return resoval.NewConcrete(boolT, constant.NewBool(folded), cmp.Line, cmp.Col), true
	}

	var result value.Value
	if operandType.IsFloat() {
		result = ctx.Block.NewFCmp(floatPred(cmp.Op), left.IR, right.IR)
	} else {
		signed := operandType.IsSignedInteger()
		result = ctx.Block.NewICmp(intPred(cmp.Op, signed), left.IR, right.IR)
	}
	return resoval.NewConcrete(boolT, result, cmp.Line, cmp.Col), true
}

func intPred(op resoval.CompareOp, signed bool) enum.IPred {
	switch op {
	case resoval.Eq:
		return enum.IPredEQ
	case resoval.Ne:
		return enum.IPredNE
	case resoval.Lt:
		if signed {
			return enum.IPredSLT
		}
		return enum.IPredULT
	case resoval.Le:
		if signed {
			return enum.IPredSLE
		}
		return enum.IPredULE
	case resoval.Gt:
		if signed {
			return enum.IPredSGT
		}
		return enum.IPredUGT
	case resoval.Ge:
		if signed {
			return enum.IPredSGE
		}
		return enum.IPredUGE
	}
	panic("codegen: unknown compare op")
}

func floatPred(op resoval.CompareOp) enum.FPred {
	switch op {
	case resoval.Eq:
		return enum.FPredOEQ
	case resoval.Ne:
		return enum.FPredONE
	case resoval.Lt:
		return enum.FPredOLT
	case resoval.Le:
		return enum.FPredOLE
	case resoval.Gt:
		return enum.FPredOGT
	case resoval.Ge:
		return enum.FPredOGE
	}
	panic("codegen: unknown compare op")
}

// concretizeLogical implements short-circuit evaluation with explicit
// control flow: the right operand's IR must
// never appear on the path where it is not evaluated.
func concretizeLogical(ctx *Context, l *resoval.Logical) (*resoval.Concrete, bool) {
	boolT := ctx.Reg.Primitive(resotype.KindBool)
	left, ok := Concretize(ctx, l.Left, boolT)
	if !ok {
		return nil, false
	}

	startBlock := ctx.Block
	rightBlock := ctx.Func.NewBlock("")
	mergeBlock := ctx.Func.NewBlock("")

	var shortCircuitValue value.Value
	if l.Op == resoval.LogicalAnd {
		shortCircuitValue = constant.False
		startBlock.NewCondBr(left.IR, rightBlock, mergeBlock)
	} else {
		shortCircuitValue = constant.True
		startBlock.NewCondBr(left.IR, mergeBlock, rightBlock)
	}

	ctx.Block = rightBlock
	right, ok := Concretize(ctx, l.Right, boolT)
	if !ok {
		return nil, false
	}
	rightEndBlock := ctx.Block
	rightEndBlock.NewBr(mergeBlock)

	ctx.Block = mergeBlock
	phi := mergeBlock.NewPhi(
		ir.NewIncoming(shortCircuitValue, startBlock),
		ir.NewIncoming(right.IR, rightEndBlock),
	)
	return resoval.NewConcrete(boolT, phi, l.Line, l.Col), true
}

func concretizeUnary(ctx *Context, u *resoval.Unary, target *resotype.Type) (*resoval.Concrete, bool) {
	operand, ok := Concretize(ctx, u.Operand, target)
	if !ok {
		return nil, false
	}
	var result value.Value
	switch u.Op {
	case resoval.UnaryPlus:
		result = operand.IR
	case resoval.UnaryNeg:
		if target.IsFloat() {
			result = ctx.Block.NewFNeg(operand.IR)
		} else {
			it := operand.IR.Type().(*lltypes.IntType)
			result = ctx.Block.NewSub(constant.NewInt(it, 0), operand.IR)
		}
	case resoval.UnaryNot:
		result = ctx.Block.NewXor(operand.IR, constant.True)
	case resoval.UnaryBitNot:
		it := operand.IR.Type().(*lltypes.IntType)
		result = ctx.Block.NewXor(operand.IR, constant.NewInt(it, -1))
	}
	return resoval.NewConcrete(target, result, u.Line, u.Col), true
}

func concretizeTernary(ctx *Context, t *resoval.Ternary, target *resotype.Type) (*resoval.Concrete, bool) {
	boolT := ctx.Reg.Primitive(resotype.KindBool)
	cond, ok := Concretize(ctx, t.Cond, boolT)
	if !ok {
		return nil, false
	}
	then, ok := Concretize(ctx, t.Then, target)
	if !ok {
		return nil, false
	}
	els, ok := Concretize(ctx, t.Else, target)
	if !ok {
		return nil, false
	}
	result := ctx.Block.NewSelect(cond.IR, then.IR, els.IR)
	return resoval.NewConcrete(target, result, t.Line, t.Col), true
}
