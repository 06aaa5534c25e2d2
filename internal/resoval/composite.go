package resoval

import "github.com/reso-lang/reso-sub002/internal/resotype"

// Arithmetic is the deferred ResoValue for +, -, *, div, rem, mod
// before a concrete result type is known.
type Arithmetic struct {
	Op          ArithOp
	Left, Right Value
	Line, Col   int
}

func (a *Arithmetic) CanConcretizeTo(target *resotype.Type) bool {
	return target.IsNumeric() && a.Left.CanConcretizeTo(target) && a.Right.CanConcretizeTo(target)
}

func (a *Arithmetic) DefaultType() (*resotype.Type, bool) {
	return defaultBinaryType(a.Left, a.Right, (*Arithmetic).CanConcretizeTo, a)
}

func (a *Arithmetic) Type() *resotype.Type { return fallbackType(a, a.Left) }
func (a *Arithmetic) Pos() (int, int)      { return a.Line, a.Col }

// Bitwise is the deferred ResoValue for &, |, ^, <<, >>.
// Shift is asymmetric: the result type always follows the left
// operand and the right-hand shift amount concretizes independently.
type Bitwise struct {
	Op          BitwiseOp
	Left, Right Value
	Line, Col   int
}

func (b *Bitwise) CanConcretizeTo(target *resotype.Type) bool {
	if !target.IsInteger() {
		return false
	}
	if b.Op.IsShift() {
		return b.Left.CanConcretizeTo(target)
	}
	return b.Left.CanConcretizeTo(target) && b.Right.CanConcretizeTo(target)
}

func (b *Bitwise) DefaultType() (*resotype.Type, bool) {
	if b.Op.IsShift() {
		return b.Left.DefaultType()
	}
	return defaultBinaryType(b.Left, b.Right, (*Bitwise).CanConcretizeTo, b)
}

func (b *Bitwise) Type() *resotype.Type { return fallbackType(b, b.Left) }
func (b *Bitwise) Pos() (int, int)      { return b.Line, b.Col }

// Compare is the deferred ResoValue for <, <=, >, >=, ==, != . It
// only ever concretizes to bool, and only when its operands can be
// unified to a common comparable type.
type Compare struct {
	Reg         *resotype.Registry
	Op          CompareOp
	Left, Right Value
	Line, Col   int
}

// OperandType is the common type both operands concretize to: the
// ResultType policy first, then, for two untyped operands such as
// `1 < 2`, the right and then the left operand's default type.
func (c *Compare) OperandType() (*resotype.Type, bool) {
	if t, ok := resotype.ResultType(c.Left, c.Left.Type(), c.Right, c.Right.Type()); ok {
		return t, true
	}
	for _, v := range []Value{c.Right, c.Left} {
		if t, ok := v.DefaultType(); ok && c.Left.CanConcretizeTo(t) && c.Right.CanConcretizeTo(t) {
			return t, true
		}
	}
	return nil, false
}

func (c *Compare) CanConcretizeTo(target *resotype.Type) bool {
	if !target.IsBool() {
		return false
	}
	_, ok := c.OperandType()
	return ok
}

func (c *Compare) DefaultType() (*resotype.Type, bool) {
	if _, ok := c.OperandType(); !ok {
		return nil, false
	}
	return c.Reg.Primitive(resotype.KindBool), true
}

func (c *Compare) Type() *resotype.Type { return c.Reg.Primitive(resotype.KindBool) }
func (c *Compare) Pos() (int, int)      { return c.Line, c.Col }

// Logical is the deferred ResoValue for the two short-circuit
// operators `and`/`or`. It is modeled
// separately from Bitwise/Compare because its concretization emits
// control flow (two blocks and a PHI) rather than a single
// instruction; both operands and the result are always bool.
type Logical struct {
	Reg         *resotype.Registry
	Op          LogicalOp
	Left, Right Value
	Line, Col   int
}

func (l *Logical) CanConcretizeTo(target *resotype.Type) bool {
	return target.IsBool() && l.Left.CanConcretizeTo(target) && l.Right.CanConcretizeTo(target)
}

func (l *Logical) DefaultType() (*resotype.Type, bool) { return l.Reg.Primitive(resotype.KindBool), true }
func (l *Logical) Type() *resotype.Type                { return l.Reg.Primitive(resotype.KindBool) }
func (l *Logical) Pos() (int, int)                     { return l.Line, l.Col }

// Unary is the deferred ResoValue for +, -, not, ~. All four
// operators are type-preserving on their operand: "+" and "-" require
// numeric, "not" requires bool, "~" requires integer.
type Unary struct {
	Op        UnaryOp
	Operand   Value
	Line, Col int
}

func (u *Unary) operandOK(target *resotype.Type) bool {
	switch u.Op {
	case UnaryPlus, UnaryNeg:
		return target.IsNumeric()
	case UnaryNot:
		return target.IsBool()
	case UnaryBitNot:
		return target.IsInteger()
	}
	return false
}

func (u *Unary) CanConcretizeTo(target *resotype.Type) bool {
	return u.operandOK(target) && u.Operand.CanConcretizeTo(target)
}

func (u *Unary) DefaultType() (*resotype.Type, bool) {
	t, ok := u.Operand.DefaultType()
	if !ok || !u.operandOK(t) {
		return nil, false
	}
	return t, true
}

func (u *Unary) Type() *resotype.Type { return fallbackType(u, u.Operand) }
func (u *Unary) Pos() (int, int)      { return u.Line, u.Col }

// Ternary is the deferred ResoValue for "t if cond else f".
// Cond is assumed already concretized to bool by the caller (the
// condition is evaluated eagerly, matching how if/while conditions
// are handled); Then/Else concretize to whatever common target the
// ternary itself is asked for.
type Ternary struct {
	Cond        Value
	Then, Else  Value
	Line, Col   int
}

func (t *Ternary) CanConcretizeTo(target *resotype.Type) bool {
	return t.Then.CanConcretizeTo(target) && t.Else.CanConcretizeTo(target)
}

func (t *Ternary) DefaultType() (*resotype.Type, bool) {
	return defaultBinaryType(t.Then, t.Else, (*Ternary).CanConcretizeTo, t)
}

func (t *Ternary) Type() *resotype.Type { return fallbackType(t, t.Then) }
func (t *Ternary) Pos() (int, int)      { return t.Line, t.Col }

// VectorCtor is the deferred ResoValue for a bare `Vector<T>()`
// constructor call before it is attached to a target resource type
type VectorCtor struct {
	Reg       *resotype.Registry
	Elem      *resotype.Type
	Line, Col int
}

func (v *VectorCtor) Type() *resotype.Type { return v.Reg.VectorOf(v.Elem) }

func (v *VectorCtor) DefaultType() (*resotype.Type, bool) { return nil, false }

func (v *VectorCtor) CanConcretizeTo(target *resotype.Type) bool {
	return target.IsResource() && target.Name == "Vector" && len(target.Generics) == 1 && target.Generics[0] == v.Elem
}

func (v *VectorCtor) Pos() (int, int) { return v.Line, v.Col }

// --- shared helpers ---

// defaultBinaryType implements a type-unification policy generically
// for any binary-shaped deferred node: prefer the right operand's
// default type if the left can concretize to it, else the left
// operand's default type if the right can concretize to it, else
// fall back to unifying the operands' own (possibly abstract) Type()
// values, else ambiguous.
func defaultBinaryType[T Value](left, right Value, canConcretizeTo func(T, *resotype.Type) bool, self T) (*resotype.Type, bool) {
	if rt, ok := right.DefaultType(); ok && canConcretizeTo(self, rt) {
		return rt, true
	}
	if lt, ok := left.DefaultType(); ok && canConcretizeTo(self, lt) {
		return lt, true
	}
	if t, ok := resotype.ResultType(left, left.Type(), right, right.Type()); ok && canConcretizeTo(self, t) {
		return t, true
	}
	return nil, false
}

// fallbackType returns self's DefaultType when resolvable, else the
// operand's own Type(), so composite Value.Type() never needs to
// return a nil *resotype.Type.
func fallbackType(self Value, operand Value) *resotype.Type {
	if t, ok := self.DefaultType(); ok {
		return t
	}
	return operand.Type()
}
