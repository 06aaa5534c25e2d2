package codegen

import (
	lltypes "github.com/llir/llvm/ir/types"

	"github.com/reso-lang/reso-sub002/internal/resotype"
)

// LLVMType lowers a resotype.Type to its LLVM representation, caching
// the result on the Type itself via Type.LLVM so a resource's struct
// body is only ever built once no matter how many call sites lower
// it.
func (c *Context) LLVMType(t *resotype.Type) lltypes.Type {
	return t.LLVM(func() lltypes.Type { return c.buildLLVMType(t) })
}

func (c *Context) buildLLVMType(t *resotype.Type) lltypes.Type {
	switch t.Kind {
	case resotype.KindI8, resotype.KindU8:
		return lltypes.I8
	case resotype.KindI16, resotype.KindU16:
		return lltypes.I16
	case resotype.KindI32, resotype.KindU32:
		return lltypes.I32
	case resotype.KindI64, resotype.KindU64:
		return lltypes.I64
	case resotype.KindIsize, resotype.KindUsize:
		if c.Reg.PointerBits() == 32 {
			return lltypes.I32
		}
		return lltypes.I64
	case resotype.KindF32:
		return lltypes.Float
	case resotype.KindF64:
		return lltypes.Double
	case resotype.KindBool:
		return lltypes.I1
	case resotype.KindChar:
		return lltypes.I32
	case resotype.KindNull:
		return lltypes.NewPointer(lltypes.I8)
	case resotype.KindUnit:
		return lltypes.NewStruct()
	case resotype.KindResource:
		return c.resourceLLVMType(t)
	}
	panic("codegen: no LLVM lowering for type " + t.String())
}

// resourceLLVMType declares a named struct type for t and returns a
// pointer to it. It deliberately does not read t.Fields: the resource
// registration pass declares every resource's opaque struct in one
// sweep before any of their field lists are populated, then calls
// FinalizeResourceBody once fields are known. A Vector<T>
// instantiation gets its fixed {T* elements, usize size, usize
// capacity} body here directly.
func (c *Context) resourceLLVMType(t *resotype.Type) lltypes.Type {
	body := lltypes.NewStruct()
	if t.Name == "Vector" && len(t.Generics) == 1 {
		usize := c.usizeType()
		body.Fields = []lltypes.Type{lltypes.NewPointer(c.LLVMType(t.Generics[0])), usize, usize}
	}
	def := c.Module.NewTypeDef(structName(t), body)
	return lltypes.NewPointer(def)
}

// FinalizeResourceBody fills in the previously-declared opaque struct
// body for t from its now-populated Fields list, declaring t's LLVM
// type through LLVMType first if that has not happened yet.
func (c *Context) FinalizeResourceBody(t *resotype.Type) {
	ptr, ok := c.LLVMType(t).(*lltypes.PointerType)
	if !ok {
		panic("codegen: resource type not declared as a pointer: " + t.String())
	}
	body, ok := ptr.ElemType.(*lltypes.StructType)
	if !ok {
		panic("codegen: resource pointee is not a struct: " + t.String())
	}
	body.Fields = body.Fields[:0]
	for _, f := range t.Fields {
		body.Fields = append(body.Fields, c.LLVMType(f.Type))
	}
}

func structName(t *resotype.Type) string {
	name := t.Name
	for _, g := range t.Generics {
		name += "_" + g.String()
	}
	return name
}
