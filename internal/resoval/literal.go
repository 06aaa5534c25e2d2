package resoval

import "github.com/reso-lang/reso-sub002/internal/resotype"

// IntegerLit is the untyped ResoValue produced by an integer literal
// token. Magnitude is the absolute value;
// Negative records a leading "-" so range checks against signed
// targets see the true value.
type IntegerLit struct {
	Reg       *resotype.Registry
	Magnitude uint64
	Negative  bool
	Line, Col int
}

func (l *IntegerLit) Type() *resotype.Type { return l.Reg.Primitive(resotype.KindIntegerLiteral) }

func (l *IntegerLit) DefaultType() (*resotype.Type, bool) {
	return l.Reg.Primitive(resotype.KindI32), l.isInRange(l.Reg.Primitive(resotype.KindI32))
}

func (l *IntegerLit) Pos() (int, int) { return l.Line, l.Col }

// isInRange implements Invariant 3: v is in range for T iff
// v ∈ [minT, maxT], unsigned comparison used for unsigned targets.
func (l *IntegerLit) isInRange(target *resotype.Type) bool {
	if !target.IsInteger() {
		return false
	}
	min, max := l.Reg.IntegerRange(target)
	if l.Negative {
		if l.Magnitude == 0 {
			return min <= 0
		}
		// value = -Magnitude; only representable if the target is
		// signed (min < 0) and -Magnitude >= min.
		if min >= 0 {
			return false
		}
		if l.Magnitude > uint64(-(min)) {
			return false
		}
		return true
	}
	return l.Magnitude <= max
}

func (l *IntegerLit) CanConcretizeTo(target *resotype.Type) bool {
	return target.IsInteger() && l.isInRange(target)
}

// SignedValue returns the literal's value as a signed int64, valid
// only when the literal fits in 64 bits (true for every concretizable
// target narrower than u64).
func (l *IntegerLit) SignedValue() int64 {
	if l.Negative {
		return -int64(l.Magnitude)
	}
	return int64(l.Magnitude)
}

// FloatLit is the untyped ResoValue produced by a floating-point
// literal token. Value is whatever the literal text parsed to;
// internal/codegen's float-literal lowering rejects a non-finite
// result before building a FloatLit.
type FloatLit struct {
	Reg       *resotype.Registry
	Value     float64
	Line, Col int
}

func (l *FloatLit) Type() *resotype.Type { return l.Reg.Primitive(resotype.KindFloatLiteral) }

func (l *FloatLit) DefaultType() (*resotype.Type, bool) {
	return l.Reg.Primitive(resotype.KindF64), true
}

func (l *FloatLit) Pos() (int, int) { return l.Line, l.Col }

func (l *FloatLit) CanConcretizeTo(target *resotype.Type) bool {
	return target.IsFloat()
}
