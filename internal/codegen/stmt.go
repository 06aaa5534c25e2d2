package codegen

import (
	"github.com/llir/llvm/ir"

	"github.com/reso-lang/reso-sub002/internal/parsetree"
	"github.com/reso-lang/reso-sub002/internal/resotype"
	"github.com/reso-lang/reso-sub002/internal/resoval"
	"github.com/reso-lang/reso-sub002/internal/symtab"
)

var assignCompoundArith = map[string]resoval.ArithOp{
	"+=": resoval.Add, "-=": resoval.Sub, "*=": resoval.Mul,
	"div=": resoval.Div, "rem=": resoval.Rem, "mod=": resoval.Mod,
}

var assignCompoundBitwise = map[string]resoval.BitwiseOp{
	"&=": resoval.And, "|=": resoval.Or, "^=": resoval.Xor,
	"<<=": resoval.Shl, ">>=": resoval.Shr,
}

// LowerBlock emits every statement of a block in its own lexical
// scope. Emission stops at the first statement that already
// sits behind a terminator; everything after that point is reported
// once as unreachable code rather than lowered. If endBlock is
// non-nil and the block falls through without a terminator, an
// unconditional branch to endBlock is appended.
func (c *Context) LowerBlock(n parsetree.Node, endBlock *ir.Block) bool {
	c.Table.PushBlockScope()
	defer c.Table.PopScope()

	warned := false
	ok := true
	for _, stmt := range parsetree.Statements(n) {
		if c.Block.Term != nil {
			if !warned {
				line, col := stmt.Pos()
				c.Diag.Warn(ErrUnreachableCode, line, col, "unreachable code")
				warned = true
			}
			continue
		}
		if !c.LowerStatement(stmt) {
			ok = false
			break
		}
	}
	if ok && endBlock != nil && c.Block.Term == nil {
		c.Block.NewBr(endBlock)
	}
	return ok
}

// LowerStatement dispatches a single top-level statement node.
func (c *Context) LowerStatement(n parsetree.Node) bool {
	switch n.Kind() {
	case parsetree.KindVarDecl:
		return c.lowerVarDecl(n)
	case parsetree.KindAssignment:
		return c.lowerAssignment(n)
	case parsetree.KindIfStmt:
		return c.lowerIfStmt(n)
	case parsetree.KindWhileStmt:
		return c.lowerWhileStmt(n)
	case parsetree.KindBreakStmt:
		return c.lowerBreakStmt(n)
	case parsetree.KindContinueStmt:
		return c.lowerContinueStmt(n)
	case parsetree.KindReturnStmt:
		return c.lowerReturnStmt(n)
	case parsetree.KindExprStmt:
		return c.lowerExprStmt(n)
	}
	line, col := n.Pos()
	c.Diag.Report(ErrOutOfContext, line, col, "unsupported statement kind %q", n.Kind())
	return false
}

// lowerVarDecl lowers a local variable declaration: the initializer is mandatory, the
// declared type is either the explicit annotation or the
// initializer's default type, the alloca is positioned in the entry
// block ahead of any other instruction there, and the symbol is
// defined (and immediately marked initialized) in the current scope.
func (c *Context) lowerVarDecl(n parsetree.Node) bool {
	line, col := n.Pos()
	name := parsetree.VarName(n)

	initVal, ok := c.LowerExpression(parsetree.VarInit(n))
	if !ok {
		return false
	}

	var declaredType *resotype.Type
	if typeNode := parsetree.VarExplicitType(n); !typeNode.IsNil() {
		t, tok := c.ResolveType(typeNode)
		if !tok {
			return false
		}
		declaredType = t
	} else {
		t, tok := initVal.DefaultType()
		if !tok {
			c.Diag.Report(ErrTypeMismatch, line, col, "cannot infer the type of %s from its initializer", name)
			return false
		}
		declaredType = t
	}

	conc, ok := Concretize(c, initVal, declaredType)
	if !ok {
		return false
	}

	ptr := c.Alloca(c.LLVMType(declaredType), name)
	c.Block.NewStore(conc.IR, ptr)

	v := &symtab.VariableSymbol{Name: name, Type: declaredType, Ptr: ptr, IsConstant: parsetree.VarIsConst(n)}
	if err := c.Table.DefineVariable(v); err != nil {
		c.reportSymtabErr(err, line, col)
		return false
	}
	if _, err := c.Table.InitializeVariable(name); err != nil {
		c.reportSymtabErr(err, line, col)
		return false
	}
	return true
}

// lowerAssignment lowers an assignment statement: a variable or resource-field
// lvalue, either overwritten directly ("=") or combined with its
// current value through one of the eleven compound operators.
func (c *Context) lowerAssignment(n parsetree.Node) bool {
	line, col := n.Pos()
	op := parsetree.AssignOp(n)
	target := parsetree.AssignTarget(n)
	valueNode := parsetree.AssignValue(n)

	switch target.Kind() {
	case parsetree.KindIdentifier:
		return c.lowerVariableAssign(target, valueNode, op, line, col)
	case parsetree.KindFieldAccess:
		return c.lowerFieldAssign(target, valueNode, op, line, col)
	}
	c.Diag.Report(ErrInvalidLvalue, line, col, "invalid assignment target")
	return false
}

// compoundExpr builds the deferred Arithmetic/Bitwise node a compound
// assignment operator reduces to, left = the target's current value.
func (c *Context) compoundExpr(op string, left, right resoval.Value, line, col int) (resoval.Value, bool) {
	if a, ok := assignCompoundArith[op]; ok {
		return &resoval.Arithmetic{Op: a, Left: left, Right: right, Line: line, Col: col}, true
	}
	if b, ok := assignCompoundBitwise[op]; ok {
		return &resoval.Bitwise{Op: b, Left: left, Right: right, Line: line, Col: col}, true
	}
	c.Diag.Report(ErrOutOfContext, line, col, "unknown compound assignment operator %q", op)
	return nil, false
}

func (c *Context) lowerVariableAssign(target, valueNode parsetree.Node, op string, line, col int) bool {
	name := target.Text()
	if name == "this" {
		c.Diag.Report(ErrInvalidLvalue, line, col, "'this' is not assignable")
		return false
	}

	if op == "=" {
		v, ok := c.Table.LookupVariable(name)
		if !ok {
			c.Diag.Report(ErrUndefinedVariable, line, col, "not defined: %s", name)
			return false
		}
		rhs, ok := c.LowerExpression(valueNode)
		if !ok {
			return false
		}
		conc, ok := Concretize(c, rhs, v.Type)
		if !ok {
			return false
		}
		c.Block.NewStore(conc.IR, v.Ptr)
		if _, err := c.Table.InitializeVariable(name); err != nil {
			c.reportSymtabErr(err, line, col)
			return false
		}
		return true
	}

	v, err := c.Table.FindReadableVariable(name)
	if err != nil {
		c.reportSymtabErr(err, line, col)
		return false
	}
	if v.IsConstant {
		c.Diag.Report(ErrConstReassignment, line, col, "cannot assign to constant: %s", name)
		return false
	}
	current := resoval.NewConcrete(v.Type, c.Block.NewLoad(c.LLVMType(v.Type), v.Ptr), line, col)
	rhs, ok := c.LowerExpression(valueNode)
	if !ok {
		return false
	}
	expr, ok := c.compoundExpr(op, current, rhs, line, col)
	if !ok {
		return false
	}
	result, ok := Concretize(c, expr, v.Type)
	if !ok {
		return false
	}
	c.Block.NewStore(result.IR, v.Ptr)
	return true
}

func (c *Context) lowerFieldAssign(target, valueNode parsetree.Node, op string, line, col int) bool {
	recvVal, ok := c.LowerExpression(parsetree.FieldAccessReceiver(target))
	if !ok {
		return false
	}
	receiver, ok := ConcretizeToDefault(c, recvVal)
	if !ok {
		return false
	}
	if !receiver.T.IsResource() {
		c.Diag.Report(ErrInvalidLvalue, line, col, "assignment target owner must be a resource")
		return false
	}
	fieldName := parsetree.FieldAccessName(target)
	res, ok := c.Table.LookupResource(receiver.T.Name)
	if !ok {
		c.Diag.Report(ErrUnknownType, line, col, "unknown resource type %s", receiver.T)
		return false
	}
	var field *symtab.FieldSymbol
	for i := range res.Fields {
		if res.Fields[i].Name == fieldName {
			field = &res.Fields[i]
			break
		}
	}
	if field == nil {
		c.Diag.Report(ErrUndefinedVariable, line, col, "no field %q on %s", fieldName, receiver.T)
		return false
	}
	if err := symtab.CheckVisible(field.Visibility, res.File, c.CurrentFile(), fieldName); err != nil {
		c.reportSymtabErr(err, line, col)
		return false
	}
	if field.IsConst {
		c.Diag.Report(ErrConstReassignment, line, col, "cannot assign to constant field %s.%s", receiver.T, fieldName)
		return false
	}
	ptr := c.fieldPtr(receiver.T, receiver.IR, field.Index)

	if op == "=" {
		rhs, ok := c.LowerExpression(valueNode)
		if !ok {
			return false
		}
		conc, ok := Concretize(c, rhs, field.Type)
		if !ok {
			return false
		}
		c.Block.NewStore(conc.IR, ptr)
		return true
	}

	current := resoval.NewConcrete(field.Type, c.Block.NewLoad(c.LLVMType(field.Type), ptr), line, col)
	rhs, ok := c.LowerExpression(valueNode)
	if !ok {
		return false
	}
	expr, ok := c.compoundExpr(op, current, rhs, line, col)
	if !ok {
		return false
	}
	result, ok := Concretize(c, expr, field.Type)
	if !ok {
		return false
	}
	c.Block.NewStore(result.IR, ptr)
	return true
}

// lowerIfStmt lowers an if statement: a chain of condition/body pairs
// (the primary if plus its elif clauses) falling through to an
// optional else, merging afterward unless AllBranchesReturn holds, in
// which case every path already terminated and no merge block is
// needed.
func (c *Context) lowerIfStmt(n parsetree.Node) bool {
	var mergeBlock *ir.Block
	if !AllBranchesReturn(n) {
		mergeBlock = c.Func.NewBlock("")
	}

	type clause struct{ cond, body parsetree.Node }
	clauses := []clause{{parsetree.IfCond(n), parsetree.IfBody(n)}}
	for _, e := range parsetree.ElifClauses(n) {
		clauses = append(clauses, clause{parsetree.ElifCond(e), parsetree.ElifBody(e)})
	}
	elseClause := parsetree.ElseClause(n)

	boolT := c.Reg.Primitive(resotype.KindBool)
	ok := true
	for i, cl := range clauses {
		condVal, condOK := c.LowerExpression(cl.cond)
		if !condOK {
			ok = false
			break
		}
		cond, condOK := Concretize(c, condVal, boolT)
		if !condOK {
			ok = false
			break
		}

		thenBlock := c.Func.NewBlock("")
		var nextBlock *ir.Block
		isLast := i == len(clauses)-1
		switch {
		case !isLast:
			nextBlock = c.Func.NewBlock("")
		case !elseClause.IsNil():
			nextBlock = c.Func.NewBlock("")
		default:
			nextBlock = mergeBlock
		}
		c.Block.NewCondBr(cond.IR, thenBlock, nextBlock)

		c.Block = thenBlock
		if !c.LowerBlock(cl.body, mergeBlock) {
			ok = false
			break
		}
		c.Block = nextBlock
	}

	if ok && !elseClause.IsNil() {
		if !c.LowerBlock(parsetree.ElseBody(elseClause), mergeBlock) {
			ok = false
		}
	}

	if mergeBlock != nil {
		c.Block = mergeBlock
	}
	return ok
}

// lowerWhileStmt lowers a while loop: a header block tests the
// condition and branches to the body or the exit block; the body
// lowers in a pushed loop context and
// falls back through to the header unless it already terminated.
func (c *Context) lowerWhileStmt(n parsetree.Node) bool {
	headerBlock := c.Func.NewBlock("")
	bodyBlock := c.Func.NewBlock("")
	exitBlock := c.Func.NewBlock("")

	if c.Block.Term == nil {
		c.Block.NewBr(headerBlock)
	}

	c.Block = headerBlock
	condVal, ok := c.LowerExpression(parsetree.WhileCond(n))
	if !ok {
		return false
	}
	boolT := c.Reg.Primitive(resotype.KindBool)
	cond, ok := Concretize(c, condVal, boolT)
	if !ok {
		return false
	}
	c.Block.NewCondBr(cond.IR, bodyBlock, exitBlock)

	c.Block = bodyBlock
	c.PushLoop(headerBlock, exitBlock)
	ok = c.LowerBlock(parsetree.WhileBody(n), headerBlock)
	c.PopLoop()
	if !ok {
		return false
	}

	c.Block = exitBlock
	return true
}

func (c *Context) lowerBreakStmt(n parsetree.Node) bool {
	line, col := n.Pos()
	_, breakBlock, ok := c.CurrentLoop()
	if !ok {
		c.Diag.Report(ErrLoopControlOutside, line, col, "'break' used outside a loop")
		return false
	}
	c.Block.NewBr(breakBlock)
	return true
}

func (c *Context) lowerContinueStmt(n parsetree.Node) bool {
	line, col := n.Pos()
	continueBlock, _, ok := c.CurrentLoop()
	if !ok {
		c.Diag.Report(ErrLoopControlOutside, line, col, "'continue' used outside a loop")
		return false
	}
	c.Block.NewBr(continueBlock)
	return true
}

// lowerReturnStmt lowers a return statement: a bare `return` is only valid
// when the enclosing function's return type is unit, otherwise the
// expression must concretize to that type.
func (c *Context) lowerReturnStmt(n parsetree.Node) bool {
	line, col := n.Pos()
	if !c.Table.InFunction() {
		c.Diag.Report(ErrReturnInvalid, line, col, "'return' used outside a function")
		return false
	}
	returnType, _ := c.Table.CurrentReturnType()
	valueNode := parsetree.ReturnValue(n)
	if valueNode.IsNil() {
		if !returnType.IsUnit() {
			c.Diag.Report(ErrReturnInvalid, line, col, "function must return a value of type %s", returnType)
			return false
		}
		c.Block.NewRet(c.unitConstant())
		return true
	}
	val, ok := c.LowerExpression(valueNode)
	if !ok {
		return false
	}
	conc, ok := Concretize(c, val, returnType)
	if !ok {
		return false
	}
	c.Block.NewRet(conc.IR)
	return true
}

func (c *Context) lowerExprStmt(n parsetree.Node) bool {
	_, ok := c.LowerExpression(parsetree.ExprStmtValue(n))
	return ok
}
