package resotype

import "fmt"

// Registry owns every Type instance for one compilation: the sixteen
// primitive kinds and the two literal pseudo-types, plus every
// resource type created while lowering.
// A Registry is not safe for concurrent use; the pipeline is
// single-threaded end to end.
type Registry struct {
	pointerBits int
	primitives  map[Kind]*Type
	resources   map[string]*Type
}

// NewRegistry creates a Registry whose isize/usize/pointer-carrying
// layouts use pointerBits (32 or 64) as the target pointer width,
// mirroring how the target triple/data layout are fixed once per
// module at context creation.
func NewRegistry(pointerBits int) *Registry {
	r := &Registry{
		pointerBits: pointerBits,
		primitives:  make(map[Kind]*Type, 17),
		resources:   make(map[string]*Type),
	}
	fixed := []struct {
		kind Kind
		bits int
	}{
		{KindI8, 8}, {KindI16, 16}, {KindI32, 32}, {KindI64, 64},
		{KindU8, 8}, {KindU16, 16}, {KindU32, 32}, {KindU64, 64},
		{KindF32, 32}, {KindF64, 64},
		{KindBool, 1}, {KindChar, 32}, {KindNull, pointerBits}, {KindUnit, 0},
		{KindIntegerLiteral, 0}, {KindFloatLiteral, 0},
	}
	for _, f := range fixed {
		r.primitives[f.kind] = &Type{Kind: f.kind, bits: f.bits}
	}
	r.primitives[KindIsize] = &Type{Kind: KindIsize, bits: pointerBits}
	r.primitives[KindUsize] = &Type{Kind: KindUsize, bits: pointerBits}
	return r
}

// PointerBits returns the target pointer width used for isize/usize.
func (r *Registry) PointerBits() int { return r.pointerBits }

// Primitive returns the single registered instance for kind. It
// panics on KindResource, KindInvalid, or an unknown kind — those are
// not obtainable this way.
func (r *Registry) Primitive(kind Kind) *Type {
	t, ok := r.primitives[kind]
	if !ok {
		panic(fmt.Sprintf("resotype: no primitive registered for kind %d", kind))
	}
	return t
}

var primitiveNames = map[string]Kind{
	"i8": KindI8, "i16": KindI16, "i32": KindI32, "i64": KindI64, "isize": KindIsize,
	"u8": KindU8, "u16": KindU16, "u32": KindU32, "u64": KindU64, "usize": KindUsize,
	"f32": KindF32, "f64": KindF64,
	"bool": KindBool, "char": KindChar,
	"Null": KindNull, "()": KindUnit,
}

// ResolveName resolves a syntactic type name to its registered Type,
// recognizing the fixed primitive names and any resource name already
// registered under Resource/Vector. It reports ok=false for unknown
// names; the caller is responsible for the "Unknown type: N"
// diagnostic.
func (r *Registry) ResolveName(name string) (*Type, bool) {
	if kind, ok := primitiveNames[name]; ok {
		return r.Primitive(kind), true
	}
	if t, ok := r.resources[name]; ok {
		return t, true
	}
	return nil, false
}

func resourceKey(name string, generics []*Type) string {
	key := name
	if len(generics) > 0 {
		key += "<"
		for i, g := range generics {
			if i > 0 {
				key += ","
			}
			key += g.String()
		}
		key += ">"
	}
	return key
}

// Resource returns the cached Type for the named, possibly generic,
// resource, creating and registering it on first request. Two
// resource types with the same name and generic arguments are always
// the same instance.
func (r *Registry) Resource(name string, generics []*Type) *Type {
	key := resourceKey(name, generics)
	if t, ok := r.resources[key]; ok {
		return t
	}
	t := &Type{Kind: KindResource, Name: name, Generics: generics}
	r.resources[key] = t
	return t
}

// LookupResource reports whether a resource with this name/generics
// has already been registered, without creating it.
func (r *Registry) LookupResource(name string, generics []*Type) (*Type, bool) {
	t, ok := r.resources[resourceKey(name, generics)]
	return t, ok
}

// VectorOf returns the cached Vector<elem> resource type, registering
// its elements/size/capacity field list the first time it's requested
// for this element type. The elements field is recorded with elem
// itself as its type; internal/codegen builds the concrete LLVM struct
// {elem* elements, usize size, usize capacity} from the generic
// argument.
func (r *Registry) VectorOf(elem *Type) *Type {
	generics := []*Type{elem}
	t, existed := func() (*Type, bool) {
		key := resourceKey("Vector", generics)
		existing, ok := r.resources[key]
		return existing, ok
	}()
	if existed {
		return t
	}
	vec := r.Resource("Vector", generics)
	usize := r.Primitive(KindUsize)
	vec.Fields = []Field{
		{Name: "elements", Type: elem, Index: 0},
		{Name: "size", Type: usize, Index: 1},
		{Name: "capacity", Type: usize, Index: 2},
	}
	return vec
}

// --- Conversion lattice ---

// ConversionKind classifies how a value of one concrete type is
// converted to another. ConvForbidden pairs must never reach
// internal/codegen's emission step; callers should reject them before
// calling Context.Convert there.
type ConversionKind int

const (
	ConvForbidden ConversionKind = iota
	ConvIdentity
	ConvIntSExt
	ConvIntZExt
	ConvIntTrunc
	ConvSIToFP
	ConvUIToFP
	ConvFPToSI
	ConvFPToUI
	ConvFPExt
	ConvFPTrunc
)

// intSignedness reports whether t is treated as signed or unsigned for
// conversion purposes; ok is false for a non-integer, non-char type.
// char reports unsigned here, although it is neither signed nor
// unsigned for predicate selection.
func intSignedness(t *Type) (signed, ok bool) {
	switch {
	case t.IsSignedInteger():
		return true, true
	case t.IsUnsignedInteger():
		return false, true
	case t.IsChar():
		return false, true
	default:
		return false, false
	}
}

// ClassifyConversion decides what instruction (if any) converts a
// value of type src to type dst. It implements the conversion matrix:
// int<->int, int<->float, float<->float, and char<->any numeric are
// allowed; bool<->numeric, ()<->anything, Null<->anything, and
// non-reference<->reference are forbidden.
func ClassifyConversion(src, dst *Type) ConversionKind {
	if src.Kind == dst.Kind && len(src.Generics) == len(dst.Generics) {
		// Resource identity is handled by the caller via pointer
		// equality; same-kind primitives need no conversion.
		if !src.IsResource() || src == dst {
			return ConvIdentity
		}
	}
	if src.IsResource() || dst.IsResource() || src.IsBool() || dst.IsBool() ||
		src.IsUnit() || dst.IsUnit() || src.IsNull() || dst.IsNull() {
		return ConvForbidden
	}

	srcNumericLike := src.IsInteger() || src.IsChar()
	dstNumericLike := dst.IsInteger() || dst.IsChar()

	switch {
	case srcNumericLike && dstNumericLike:
		srcSigned, _ := intSignedness(src)
		if src.Bits() == dst.Bits() {
			return ConvIdentity
		}
		if src.Bits() < dst.Bits() {
			if srcSigned {
				return ConvIntSExt
			}
			return ConvIntZExt
		}
		return ConvIntTrunc

	case srcNumericLike && dst.IsFloat():
		srcSigned, _ := intSignedness(src)
		if srcSigned {
			return ConvSIToFP
		}
		return ConvUIToFP

	case src.IsFloat() && dstNumericLike:
		dstSigned, _ := intSignedness(dst)
		if dstSigned {
			return ConvFPToSI
		}
		return ConvFPToUI

	case src.IsFloat() && dst.IsFloat():
		if src.Bits() == dst.Bits() {
			return ConvIdentity
		}
		if src.Bits() < dst.Bits() {
			return ConvFPExt
		}
		return ConvFPTrunc
	}
	return ConvForbidden
}

// --- Binary-operator result-type policy ---

// Concretizable abstracts the one fact the result-type policy needs
// from a value without importing internal/resoval (which itself
// depends on this package): whether that value can concretize to a
// candidate target type.
type Concretizable interface {
	CanConcretizeTo(target *Type) bool
}

// ResultType implements the non-shift binary-operator unification
// rule: prefer the right operand's type if the left can concretize
// to it, else the left operand's type if the right can concretize to
// it, else ambiguous (ok=false).
func ResultType(left Concretizable, leftType *Type, right Concretizable, rightType *Type) (result *Type, ok bool) {
	if left.CanConcretizeTo(rightType) {
		return rightType, true
	}
	if right.CanConcretizeTo(leftType) {
		return leftType, true
	}
	return nil, false
}

// IntegerRange returns the inclusive [min, max] range representable
// by an integer kind, as signed bounds; for unsigned kinds min is
// always 0. usize/isize use the registry's pointer width.
func (r *Registry) IntegerRange(t *Type) (min int64, max uint64) {
	bits := t.Bits()
	if t.IsSignedInteger() {
		return -(1 << (bits - 1)), uint64(1)<<(bits-1) - 1
	}
	if bits >= 64 {
		return 0, ^uint64(0)
	}
	return 0, uint64(1)<<bits - 1
}
