package resoval

import (
	"github.com/llir/llvm/ir/value"

	"github.com/reso-lang/reso-sub002/internal/resotype"
)

// Value is the common contract every ResoValue — concrete or deferred
// — satisfies. Pos reports the source position of the leading token,
// used to annotate diagnostics.
type Value interface {
	// Type reports this value's own (possibly abstract) type: a
	// literal pseudo-type for an untyped literal, a concrete type for
	// a Concrete, or a derived type for a composite deferred node.
	Type() *resotype.Type

	// DefaultType reports the type this value concretizes to when no
	// target is dictated by context. ok is false for a value that
	// cannot stand alone (e.g. a naked Vector constructor).
	DefaultType() (t *resotype.Type, ok bool)

	// CanConcretizeTo reports whether this value can be concretized
	// to target without error.
	CanConcretizeTo(target *resotype.Type) bool

	// Pos returns the line and column of the leading token.
	Pos() (line, col int)
}

// Concrete is a ResoValue guaranteed to already carry a resolved
// concrete type and a materialized IR value.
type Concrete struct {
	T    *resotype.Type
	IR   value.Value
	Line int
	Col  int
}

func (c *Concrete) Type() *resotype.Type                 { return c.T }
func (c *Concrete) DefaultType() (*resotype.Type, bool)   { return c.T, true }
func (c *Concrete) Pos() (int, int)                       { return c.Line, c.Col }
func (c *Concrete) CanConcretizeTo(target *resotype.Type) bool {
	if c.T == target {
		return true
	}
	return resotype.ClassifyConversion(c.T, target) != resotype.ConvForbidden
}

// NewConcrete builds a Concrete from an already-emitted IR value.
func NewConcrete(t *resotype.Type, ir value.Value, line, col int) *Concrete {
	return &Concrete{T: t, IR: ir, Line: line, Col: col}
}
