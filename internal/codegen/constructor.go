package codegen

import (
	lltypes "github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/reso-lang/reso-sub002/internal/parsetree"
	"github.com/reso-lang/reso-sub002/internal/resotype"
	"github.com/reso-lang/reso-sub002/internal/resoval"
	"github.com/reso-lang/reso-sub002/internal/symtab"
)

// lowerConstructorCall dispatches a `T<...>(...)`/`T<...>{...}`
// construction expression: the brace form is a resource initializer,
// the call form is currently only defined for the Vector<T> built-in
// and returns a deferred VectorCtor so emission happens exactly
// once, at concretization.
func (c *Context) lowerConstructorCall(n parsetree.Node) (resoval.Value, bool) {
	line, col := n.Pos()
	target, ok := c.ResolveType(parsetree.ConstructorType(n))
	if !ok {
		return nil, false
	}

	if parsetree.ConstructorIsBraceForm(n) {
		return c.lowerResourceInitializer(n, target, line, col)
	}

	if target.Name == "Vector" && len(target.Generics) == 1 {
		return &resoval.VectorCtor{Reg: c.Reg, Elem: target.Generics[0], Line: line, Col: col}, true
	}
	c.Diag.Report(ErrOutOfContext, line, col, "no constructor for %s", target)
	return nil, false
}

// lowerResourceInitializer implements the `T{…}` resource
// initializer: it must run inside a function, supplies exactly one
// expression per ordered field, and GC-allocates the new instance
// (atomic when every field is a non-reference primitive).
func (c *Context) lowerResourceInitializer(n parsetree.Node, target *resotype.Type, line, col int) (resoval.Value, bool) {
	if c.Func == nil {
		c.Diag.Report(ErrOutOfContext, line, col, "resource initializer used outside a function")
		return nil, false
	}
	res, ok := c.Table.LookupResource(target.Name)
	if !ok {
		c.Diag.Report(ErrUnknownType, line, col, "unknown resource type %s", target)
		return nil, false
	}
	if err := symtab.CheckVisible(res.InitVisibility, res.File, c.CurrentFile(), target.Name); err != nil {
		c.reportSymtabErr(err, line, col)
		return nil, false
	}
	values := parsetree.ConstructorFieldValues(n)
	if len(values) != len(res.Fields) {
		c.Diag.Report(ErrArgCountMismatch, line, col, "resource %s has %d fields, got %d initializer expressions", target, len(res.Fields), len(values))
		return nil, false
	}
	fieldIR := make([]value.Value, len(values))
	for i, vn := range values {
		v, ok := c.LowerExpression(vn)
		if !ok {
			return nil, false
		}
		conc, ok := Concretize(c, v, res.Fields[i].Type)
		if !ok {
			c.Diag.Report(ErrArgConvertFail, line, col, "field %d of %s does not convert to %s", i, target, res.Fields[i].Type)
			return nil, false
		}
		fieldIR[i] = conc.IR
	}

	ptrType := c.LLVMType(target).(*lltypes.PointerType)
	size := c.structSizeOf(ptrType.ElemType)
	var raw value.Value
	if allNonReferencePrimitive(res.Fields) {
		raw = c.GCMallocAtomic(size)
	} else {
		raw = c.GCMalloc(size)
	}
	inst := c.Block.NewBitCast(raw, ptrType)
	for i, fv := range fieldIR {
		c.Block.NewStore(fv, c.fieldPtr(target, inst, i))
	}
	return resoval.NewConcrete(target, inst, line, col), true
}

func allNonReferencePrimitive(fields []symtab.FieldSymbol) bool {
	for _, f := range fields {
		if f.Type.IsResource() {
			return false
		}
	}
	return true
}

// lowerTypeConversion implements the explicit numeric/char cast:
// the source concretizes directly to the target when possible,
// otherwise to its own default type and then through the conversion
// matrix.
func (c *Context) lowerTypeConversion(n parsetree.Node) (resoval.Value, bool) {
	line, col := n.Pos()
	target, ok := c.ResolveType(parsetree.ConversionTarget(n))
	if !ok {
		return nil, false
	}
	srcVal, ok := c.LowerExpression(parsetree.ConversionSource(n))
	if !ok {
		return nil, false
	}

	if srcVal.CanConcretizeTo(target) {
		conc, ok := Concretize(c, srcVal, target)
		if !ok {
			return nil, false
		}
		return conc, true
	}

	def, ok := ConcretizeToDefault(c, srcVal)
	if !ok {
		return nil, false
	}
	ir, ok := c.Convert(def.IR, def.T, target)
	if !ok {
		c.Diag.Report(ErrTypeMismatch, line, col, "cannot convert %s to %s", def.T, target)
		return nil, false
	}
	return resoval.NewConcrete(target, ir, line, col), true
}
