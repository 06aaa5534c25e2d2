package resoval

import (
	"testing"

	"github.com/reso-lang/reso-sub002/internal/resotype"
)

func TestIntegerLitRange(t *testing.T) {
	reg := resotype.NewRegistry(64)
	lit := &IntegerLit{Reg: reg, Magnitude: 300}
	i8 := reg.Primitive(resotype.KindI8)
	if lit.CanConcretizeTo(i8) {
		t.Fatal("300 must not fit in i8")
	}
	i32 := reg.Primitive(resotype.KindI32)
	if !lit.CanConcretizeTo(i32) {
		t.Fatal("300 must fit in i32")
	}
}

func TestIntegerLitNegativeRange(t *testing.T) {
	reg := resotype.NewRegistry(64)
	lit := &IntegerLit{Reg: reg, Magnitude: 7, Negative: true}
	u8 := reg.Primitive(resotype.KindU8)
	if lit.CanConcretizeTo(u8) {
		t.Fatal("-7 must not fit in an unsigned type")
	}
	i8 := reg.Primitive(resotype.KindI8)
	if !lit.CanConcretizeTo(i8) {
		t.Fatal("-7 must fit in i8")
	}
}

func TestArithmeticCanConcretizeTo(t *testing.T) {
	reg := resotype.NewRegistry(64)
	a := &IntegerLit{Reg: reg, Magnitude: 1}
	b := &IntegerLit{Reg: reg, Magnitude: 2}
	expr := &Arithmetic{Op: Add, Left: a, Right: b}

	i32 := reg.Primitive(resotype.KindI32)
	if !expr.CanConcretizeTo(i32) {
		t.Fatal("1 + 2 should concretize to i32")
	}
	boolT := reg.Primitive(resotype.KindBool)
	if expr.CanConcretizeTo(boolT) {
		t.Fatal("arithmetic must never concretize to bool")
	}

	dt, ok := expr.DefaultType()
	if !ok || dt != i32 {
		t.Fatalf("default type of 1+2 = %v (ok=%v), want i32", dt, ok)
	}
}

func TestShiftResultFollowsLeftOnly(t *testing.T) {
	reg := resotype.NewRegistry(64)
	left := &IntegerLit{Reg: reg, Magnitude: 1}
	right := &IntegerLit{Reg: reg, Magnitude: 999999} // would not fit in i8
	expr := &Bitwise{Op: Shl, Left: left, Right: right}

	i8 := reg.Primitive(resotype.KindI8)
	if !expr.CanConcretizeTo(i8) {
		t.Fatal("shift result type must depend only on the left operand")
	}
}

func TestCompareRequiresUnifiableOperandsAndYieldsBool(t *testing.T) {
	reg := resotype.NewRegistry(64)
	left := &IntegerLit{Reg: reg, Magnitude: 1}
	right := &IntegerLit{Reg: reg, Magnitude: 2}
	cmp := &Compare{Reg: reg, Op: Lt, Left: left, Right: right}

	boolT := reg.Primitive(resotype.KindBool)
	if !cmp.CanConcretizeTo(boolT) {
		t.Fatal("1 < 2 should concretize to bool")
	}
	i32 := reg.Primitive(resotype.KindI32)
	if cmp.CanConcretizeTo(i32) {
		t.Fatal("comparison must never concretize to a non-bool type")
	}
}

func TestVectorCtorHasNoDefaultType(t *testing.T) {
	reg := resotype.NewRegistry(64)
	u8 := reg.Primitive(resotype.KindU8)
	ctor := &VectorCtor{Reg: reg, Elem: u8}
	if _, ok := ctor.DefaultType(); ok {
		t.Fatal("a naked vector constructor must have no default type")
	}
	if !ctor.CanConcretizeTo(reg.VectorOf(u8)) {
		t.Fatal("vector constructor should concretize to Vector<u8>")
	}
}
