package codegen

import (
	"github.com/reso-lang/reso-sub002/internal/parsetree"
	"github.com/reso-lang/reso-sub002/internal/resotype"
)

// ResolveType performs textual resolution of a
// type_reference node against the registered primitive and resource
// names, recursing into generic arguments first so `Vector<u8>`
// resolves its element type before looking up the outer name. ok is
// false after reporting "Unknown type: N"; callers must not
// invent a fallback type.
func (c *Context) ResolveType(n parsetree.Node) (*resotype.Type, bool) {
	line, col := n.Pos()
	name := parsetree.TypeName(n)
	argNodes := parsetree.TypeArgs(n)
	if len(argNodes) == 0 {
		t, ok := c.Reg.ResolveName(name)
		if !ok {
			c.Diag.Report(ErrUnknownType, line, col, "Unknown type: %s", name)
			return nil, false
		}
		return t, true
	}
	generics := make([]*resotype.Type, len(argNodes))
	for i, an := range argNodes {
		g, ok := c.ResolveType(an)
		if !ok {
			return nil, false
		}
		generics[i] = g
	}
	if name == "Vector" && len(generics) == 1 {
		return c.Reg.VectorOf(generics[0]), true
	}
	if t, ok := c.Reg.LookupResource(name, generics); ok {
		return t, true
	}
	c.Diag.Report(ErrUnknownType, line, col, "Unknown type: %s", name)
	return nil, false
}
