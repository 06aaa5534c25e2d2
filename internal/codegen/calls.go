package codegen

import (
	"github.com/llir/llvm/ir/value"

	"github.com/reso-lang/reso-sub002/internal/parsetree"
	"github.com/reso-lang/reso-sub002/internal/resotype"
	"github.com/reso-lang/reso-sub002/internal/resoval"
	"github.com/reso-lang/reso-sub002/internal/symtab"
)

var vectorMethodNames = map[string]bool{
	"get": true, "set": true, "add": true, "insert": true, "remove": true,
	"size": true, "capacity": true,
}

// lowerMethodCall dispatches a call-shaped expression: a bare name
// with no receiver resolves against the global function table; a
// receiver present resolves against the Vector<T> built-in contract
// or, for any other resource, a method looked up by its path-group
// arity and name.
func (c *Context) lowerMethodCall(n parsetree.Node) (resoval.Value, bool) {
	line, col := n.Pos()
	receiverNode := parsetree.CallReceiver(n)
	name := parsetree.CallName(n)

	if receiverNode.IsNil() {
		return c.lowerFreeCall(n, name, line, col)
	}

	receiverVal, ok := c.LowerExpression(receiverNode)
	if !ok {
		return nil, false
	}
	receiver, ok := ConcretizeToDefault(c, receiverVal)
	if !ok {
		return nil, false
	}
	if !receiver.T.IsResource() {
		c.Diag.Report(ErrTypeMismatch, line, col, "method call receiver must be a resource")
		return nil, false
	}

	if receiver.T.Name == "Vector" && vectorMethodNames[name] {
		return c.lowerVectorCall(n, receiver, name, line, col)
	}
	return c.lowerResourceMethodCall(n, receiver, name, line, col)
}

func (c *Context) lowerFreeCall(n parsetree.Node, name string, line, col int) (resoval.Value, bool) {
	fn, err := c.Table.LookupFunction(name, c.CurrentFile())
	if err != nil {
		c.reportSymtabErr(err, line, col)
		return nil, false
	}
	args, ok := c.lowerAndConvertArgs(parsetree.CallArgs(n), fn.Params, line, col)
	if !ok {
		return nil, false
	}
	if fn.Builder != nil {
		ir, err := fn.Builder(args)
		if err != nil {
			c.Diag.Report(ErrArgConvertFail, line, col, "%s", err.Error())
			return nil, false
		}
		return resoval.NewConcrete(fn.ReturnType, ir, line, col), true
	}
	call := c.Block.NewCall(fn.IR, args...)
	return resoval.NewConcrete(fn.ReturnType, call, line, col), true
}

// resolveMethodByPath looks up a method on res by name and path
// arity: the call site never knows the indexer names or types the
// declaration used, only how many indexer expressions it supplied, so
// the lookup key is purely positional ("{Indexer}" per segment,
// matching the path-string's own generic display form for an
// indexer).
func resolveMethodByPath(res *symtab.ResourceSymbol, name string, pathArity int) (*symtab.MethodSymbol, bool) {
	return res.LookupMethod(make([]symtab.PathSegment, pathArity), name)
}

// lowerResourceMethodCall resolves a method by (path arity, name)
// against res's method table, then lowers the path's indexer
// expressions and the explicit argument list, prepending the
// receiver and the indexer values (in path order) to the IR call's
// argument list.
func (c *Context) lowerResourceMethodCall(n parsetree.Node, receiver *resoval.Concrete, name string, line, col int) (resoval.Value, bool) {
	res, ok := c.Table.LookupResource(receiver.T.Name)
	if !ok {
		c.Diag.Report(ErrUnknownType, line, col, "unknown resource type %s", receiver.T)
		return nil, false
	}
	pathExprs := parsetree.CallPath(n)
	m, ok := resolveMethodByPath(res, name, len(pathExprs))
	if !ok {
		c.Diag.Report(ErrUndefinedVariable, line, col, "no method %q on %s", name, receiver.T)
		return nil, false
	}
	if err := symtab.CheckVisible(m.Visibility, m.File, c.CurrentFile(), name); err != nil {
		c.reportSymtabErr(err, line, col)
		return nil, false
	}
	pathArgs := make([]value.Value, len(pathExprs))
	for i, pe := range pathExprs {
		exprs := pe.All()
		if len(exprs) != 1 {
			c.Diag.Report(ErrArgCountMismatch, line, col, "path indexer %d takes exactly one expression", i)
			return nil, false
		}
		v, ok := c.LowerExpression(exprs[0])
		if !ok {
			return nil, false
		}
		conc, ok := Concretize(c, v, m.Path[i].IndexerType)
		if !ok {
			c.Diag.Report(ErrArgConvertFail, line, col, "path indexer %d does not convert to %s", i, m.Path[i].IndexerType)
			return nil, false
		}
		pathArgs[i] = conc.IR
	}
	args, ok := c.lowerAndConvertArgs(parsetree.CallArgs(n), m.Params[1+len(pathExprs):], line, col)
	if !ok {
		return nil, false
	}
	return c.emitMethodCall(m, receiver.IR, pathArgs, args, line, col)
}

// emitMethodCall assembles the final IR argument list — receiver,
// then path indexer values in path order, then explicit arguments —
// and emits either m's custom builder call or a direct ir.Func call.
func (c *Context) emitMethodCall(m *symtab.MethodSymbol, receiverIR value.Value, pathArgs, explicitArgs []value.Value, line, col int) (resoval.Value, bool) {
	allArgs := make([]value.Value, 0, 1+len(pathArgs)+len(explicitArgs))
	allArgs = append(allArgs, receiverIR)
	allArgs = append(allArgs, pathArgs...)
	allArgs = append(allArgs, explicitArgs...)
	if m.Builder != nil {
		ir, err := m.Builder(allArgs)
		if err != nil {
			c.Diag.Report(ErrArgConvertFail, line, col, "%s", err.Error())
			return nil, false
		}
		return resoval.NewConcrete(m.ReturnType, ir, line, col), true
	}
	call := c.Block.NewCall(m.IR, allArgs...)
	return resoval.NewConcrete(m.ReturnType, call, line, col), true
}

func (c *Context) lowerVectorCall(n parsetree.Node, receiver *resoval.Concrete, name string, line, col int) (resoval.Value, bool) {
	vecType := receiver.T
	elemType := vecType.Generics[0]
	usize := c.Reg.Primitive(resotype.KindUsize)
	args := parsetree.CallArgs(n)

	switch name {
	case "size":
		return resoval.NewConcrete(usize, c.VectorSizeOf(vecType, receiver.IR), line, col), true
	case "capacity":
		return resoval.NewConcrete(usize, c.VectorCapacityOf(vecType, receiver.IR), line, col), true
	case "get":
		idx, ok := c.lowerConcreteArg(args, 0, usize, line, col)
		if !ok {
			return nil, false
		}
		return resoval.NewConcrete(elemType, c.VectorGet(vecType, receiver.IR, idx), line, col), true
	case "set":
		idx, ok := c.lowerConcreteArg(args, 0, usize, line, col)
		if !ok {
			return nil, false
		}
		val, ok := c.lowerConcreteArg(args, 1, elemType, line, col)
		if !ok {
			return nil, false
		}
		c.VectorSet(vecType, receiver.IR, idx, val)
		return resoval.NewConcrete(c.Reg.Primitive(resotype.KindUnit), c.unitConstant(), line, col), true
	case "add":
		val, ok := c.lowerConcreteArg(args, 0, elemType, line, col)
		if !ok {
			return nil, false
		}
		c.VectorAdd(vecType, receiver.IR, val)
		return resoval.NewConcrete(c.Reg.Primitive(resotype.KindUnit), c.unitConstant(), line, col), true
	case "insert":
		idx, ok := c.lowerConcreteArg(args, 0, usize, line, col)
		if !ok {
			return nil, false
		}
		val, ok := c.lowerConcreteArg(args, 1, elemType, line, col)
		if !ok {
			return nil, false
		}
		c.VectorInsert(vecType, receiver.IR, idx, val)
		return resoval.NewConcrete(c.Reg.Primitive(resotype.KindUnit), c.unitConstant(), line, col), true
	case "remove":
		idx, ok := c.lowerConcreteArg(args, 0, usize, line, col)
		if !ok {
			return nil, false
		}
		return resoval.NewConcrete(elemType, c.VectorRemove(vecType, receiver.IR, idx), line, col), true
	}
	c.Diag.Report(ErrUndefinedVariable, line, col, "no Vector method %q", name)
	return nil, false
}

func (c *Context) lowerConcreteArg(args []parsetree.Node, i int, target *resotype.Type, line, col int) (value.Value, bool) {
	if i >= len(args) {
		c.Diag.Report(ErrArgCountMismatch, line, col, "missing argument %d", i)
		return nil, false
	}
	v, ok := c.LowerExpression(args[i])
	if !ok {
		return nil, false
	}
	conc, ok := Concretize(c, v, target)
	if !ok {
		return nil, false
	}
	return conc.IR, true
}

func (c *Context) lowerAndConvertArgs(argNodes []parsetree.Node, params []symtab.Param, line, col int) ([]value.Value, bool) {
	if len(argNodes) != len(params) {
		c.Diag.Report(ErrArgCountMismatch, line, col, "expected %d arguments, got %d", len(params), len(argNodes))
		return nil, false
	}
	out := make([]value.Value, len(params))
	for i, p := range params {
		v, ok := c.LowerExpression(argNodes[i])
		if !ok {
			return nil, false
		}
		conc, ok := Concretize(c, v, p.Type)
		if !ok {
			c.Diag.Report(ErrArgConvertFail, line, col, "argument %d does not convert to %s", i, p.Type)
			return nil, false
		}
		out[i] = conc.IR
	}
	return out, true
}

// lowerFieldAccess implements object.field reads.
func (c *Context) lowerFieldAccess(n parsetree.Node) (resoval.Value, bool) {
	line, col := n.Pos()
	recvVal, ok := c.LowerExpression(parsetree.FieldAccessReceiver(n))
	if !ok {
		return nil, false
	}
	receiver, ok := ConcretizeToDefault(c, recvVal)
	if !ok {
		return nil, false
	}
	if !receiver.T.IsResource() {
		c.Diag.Report(ErrTypeMismatch, line, col, "field access receiver must be a resource")
		return nil, false
	}
	name := parsetree.FieldAccessName(n)
	res, ok := c.Table.LookupResource(receiver.T.Name)
	if !ok {
		c.Diag.Report(ErrUnknownType, line, col, "unknown resource type %s", receiver.T)
		return nil, false
	}
	var field *symtab.FieldSymbol
	for i := range res.Fields {
		if res.Fields[i].Name == name {
			field = &res.Fields[i]
			break
		}
	}
	if field == nil {
		c.Diag.Report(ErrUndefinedVariable, line, col, "no field %q on %s", name, receiver.T)
		return nil, false
	}
	if err := symtab.CheckVisible(field.Visibility, res.File, c.CurrentFile(), name); err != nil {
		c.reportSymtabErr(err, line, col)
		return nil, false
	}
	ptr := c.fieldPtr(receiver.T, receiver.IR, field.Index)
	loaded := c.Block.NewLoad(c.LLVMType(field.Type), ptr)
	return resoval.NewConcrete(field.Type, loaded, line, col), true
}

// fieldPtr returns a struct-GEP pointer to field index i of a
// resource pointed to by recv.
func (c *Context) fieldPtr(resType *resotype.Type, recv value.Value, i int) value.Value {
	return c.vectorFieldPtr(resType, recv, int64(i))
}
