package resotype

import lltypes "github.com/llir/llvm/ir/types"

// Kind is the universal discriminant for every entry in the Reso type
// lattice: fixed-width integers, floats, bool, char, the unit and null
// types, the two untyped literal kinds, and resource (heap, reference)
// types.
type Kind int

const (
	// KindInvalid marks a zero-value Type; getType must never return it.
	KindInvalid Kind = iota

	KindI8
	KindI16
	KindI32
	KindI64
	KindIsize

	KindU8
	KindU16
	KindU32
	KindU64
	KindUsize

	KindF32
	KindF64

	// KindBool is the two-valued boolean type. Never converts to/from
	// numeric types.
	KindBool

	// KindChar is a 32-bit Unicode code point. Neither signed nor
	// unsigned for predicate selection, but convertible to/from every
	// numeric type as if it were u32.
	KindChar

	// KindNull is the type of the null literal. Converts to/from
	// nothing but itself.
	KindNull

	// KindUnit is the zero-sized "()" type. Only "==" and "!=" are
	// defined on it, and both constant-fold.
	KindUnit

	// KindIntegerLiteral is the untyped type of an integer literal
	// before concretization; it carries no fixed width or signedness.
	KindIntegerLiteral

	// KindFloatLiteral is the untyped type of a floating-point literal
	// before concretization.
	KindFloatLiteral

	// KindResource is a named, heap-allocated, reference-typed
	// aggregate, optionally parameterized by generic type arguments.
	KindResource
)

// Field describes one ordered field of a resource type.
type Field struct {
	Name string
	Type *Type
	// Index is the struct-GEP index of this field within the
	// resource's LLVM layout.
	Index int
}

// Type is a single entry in the type registry. Two calls to
// Registry.Primitive with the same Kind, or two calls to
// Registry.Resource with the same name and generic arguments, return
// the identical *Type pointer: that pointer identity is what lets
// getType(handle) == getType(handle) hold.
type Type struct {
	Kind Kind

	// Name is the resource's declared name; empty for every
	// non-resource kind.
	Name string

	// Generics holds the resource's generic type arguments, e.g.
	// []*Type{u8} for Vector<u8>. Empty for non-generic resources and
	// for non-resource kinds.
	Generics []*Type

	// Fields is the resource's ordered field list. Populated by the
	// resource-registration pass; empty (and mutated in place) until
	// then, never reallocated after.
	Fields []Field

	// bits is the storage width for integer and float kinds; isize and
	// usize take the registry's target pointer width.
	bits int

	// ll caches the corresponding LLVM type so repeat lowering never
	// rebuilds identical struct/array types.
	ll lltypes.Type
}

// IsInteger reports whether t is one of the ten fixed-width integer
// kinds (signed or unsigned).
func (t *Type) IsInteger() bool {
	switch t.Kind {
	case KindI8, KindI16, KindI32, KindI64, KindIsize,
		KindU8, KindU16, KindU32, KindU64, KindUsize:
		return true
	}
	return false
}

// IsSignedInteger reports whether t is i8/i16/i32/i64/isize.
func (t *Type) IsSignedInteger() bool {
	switch t.Kind {
	case KindI8, KindI16, KindI32, KindI64, KindIsize:
		return true
	}
	return false
}

// IsUnsignedInteger reports whether t is u8/u16/u32/u64/usize.
func (t *Type) IsUnsignedInteger() bool {
	switch t.Kind {
	case KindU8, KindU16, KindU32, KindU64, KindUsize:
		return true
	}
	return false
}

// IsFloat reports whether t is f32 or f64.
func (t *Type) IsFloat() bool {
	return t.Kind == KindF32 || t.Kind == KindF64
}

// IsNumeric reports whether t can appear as an operand of arithmetic:
// any integer or float kind. char is numeric for conversion purposes
// but not for arithmetic, so it is excluded here.
func (t *Type) IsNumeric() bool {
	return t.IsInteger() || t.IsFloat()
}

// IsChar reports whether t is the char kind.
func (t *Type) IsChar() bool { return t.Kind == KindChar }

// IsBool reports whether t is the bool kind.
func (t *Type) IsBool() bool { return t.Kind == KindBool }

// IsUnit reports whether t is the unit kind.
func (t *Type) IsUnit() bool { return t.Kind == KindUnit }

// IsNull reports whether t is the null kind.
func (t *Type) IsNull() bool { return t.Kind == KindNull }

// IsResource reports whether t is a heap-allocated reference type.
func (t *Type) IsResource() bool { return t.Kind == KindResource }

// IsIntegerLiteral reports whether t is the untyped integer-literal
// pseudo-type.
func (t *Type) IsIntegerLiteral() bool { return t.Kind == KindIntegerLiteral }

// IsFloatLiteral reports whether t is the untyped float-literal
// pseudo-type.
func (t *Type) IsFloatLiteral() bool { return t.Kind == KindFloatLiteral }

// Bits returns the storage width in bits for integer and float kinds.
// It panics for kinds with no fixed width (resource, bool, unit, null,
// the two literal kinds) since callers must never need it there.
func (t *Type) Bits() int {
	if t.bits <= 0 {
		panic("resotype: Bits() called on a type with no fixed width: " + t.String())
	}
	return t.bits
}

// LLVM returns the cached LLVM representation of t, computing and
// caching it on first use via build.
func (t *Type) LLVM(build func() lltypes.Type) lltypes.Type {
	if t.ll == nil {
		t.ll = build()
	}
	return t.ll
}

// String renders a human-readable name, used in diagnostics and in the
// display form of resource paths.
func (t *Type) String() string {
	switch t.Kind {
	case KindI8:
		return "i8"
	case KindI16:
		return "i16"
	case KindI32:
		return "i32"
	case KindI64:
		return "i64"
	case KindIsize:
		return "isize"
	case KindU8:
		return "u8"
	case KindU16:
		return "u16"
	case KindU32:
		return "u32"
	case KindU64:
		return "u64"
	case KindUsize:
		return "usize"
	case KindF32:
		return "f32"
	case KindF64:
		return "f64"
	case KindBool:
		return "bool"
	case KindChar:
		return "char"
	case KindNull:
		return "Null"
	case KindUnit:
		return "()"
	case KindIntegerLiteral:
		return "<integer literal>"
	case KindFloatLiteral:
		return "<floating-point literal>"
	case KindResource:
		if len(t.Generics) == 0 {
			return t.Name
		}
		s := t.Name + "<"
		for i, g := range t.Generics {
			if i > 0 {
				s += ", "
			}
			s += g.String()
		}
		return s + ">"
	default:
		return "<invalid type>"
	}
}
