package codegen

import (
	"strconv"
	"strings"

	mewfloat "github.com/mewmew/float/float64"

	"github.com/reso-lang/reso-sub002/internal/parsetree"
	"github.com/reso-lang/reso-sub002/internal/resotype"
	"github.com/reso-lang/reso-sub002/internal/resoval"
	"github.com/reso-lang/reso-sub002/internal/symtab"
)

var binaryArith = map[string]resoval.ArithOp{
	"+": resoval.Add, "-": resoval.Sub, "*": resoval.Mul,
	"div": resoval.Div, "rem": resoval.Rem, "mod": resoval.Mod,
}

var binaryBitwise = map[string]resoval.BitwiseOp{
	"&": resoval.And, "|": resoval.Or, "^": resoval.Xor,
	"<<": resoval.Shl, ">>": resoval.Shr,
}

var binaryCompare = map[string]resoval.CompareOp{
	"<": resoval.Lt, "<=": resoval.Le, ">": resoval.Gt, ">=": resoval.Ge,
	"==": resoval.Eq, "!=": resoval.Ne,
}

// LowerExpression builds the deferred (or concrete) ResoValue tree for
// a single expression node, recursively lowering its children.
// A nil/false result means a diagnostic was already reported; callers
// must propagate nothing produced rather than substitute a value.
func (c *Context) LowerExpression(n parsetree.Node) (resoval.Value, bool) {
	line, col := n.Pos()
	switch n.Kind() {
	case parsetree.KindIntegerLit:
		return c.lowerIntegerLiteral(n)

	case parsetree.KindFloatLit:
		return c.lowerFloatLiteral(n)

	case parsetree.KindBoolLit:
		return c.lowerBoolLiteral(n)

	case parsetree.KindCharLit:
		return c.lowerCharLiteral(n)

	case parsetree.KindStringLit:
		return c.lowerStringLiteral(n)

	case parsetree.KindConstructorCall:
		return c.lowerConstructorCall(n)

	case parsetree.KindTypeConversion:
		return c.lowerTypeConversion(n)

	case parsetree.KindNullLit:
		nullT := c.Reg.Primitive(resotype.KindNull)
		return resoval.NewConcrete(nullT, nullConstant(c, nullT), line, col), true

	case parsetree.KindIdentifier:
		return c.lowerIdentifier(n)

	case parsetree.KindBinaryExpr:
		return c.lowerBinaryExpr(n)

	case parsetree.KindUnaryExpr:
		return c.lowerUnaryExpr(n)

	case parsetree.KindLogicalExpr:
		return c.lowerLogicalExpr(n)

	case parsetree.KindTernaryExpr:
		return c.lowerTernaryExpr(n)

	case parsetree.KindMethodCall:
		return c.lowerMethodCall(n)

	case parsetree.KindFieldAccess:
		return c.lowerFieldAccess(n)
	}
	c.Diag.Report(ErrOutOfContext, line, col, "unsupported expression kind %q", n.Kind())
	return nil, false
}

func (c *Context) lowerIntegerLiteral(n parsetree.Node) (resoval.Value, bool) {
	line, col := n.Pos()
	text := strings.ReplaceAll(n.Text(), "_", "")
	negative := strings.HasPrefix(text, "-")
	text = strings.TrimPrefix(text, "-")
	mag, err := strconv.ParseUint(text, 0, 64)
	if err != nil {
		c.Diag.Report(ErrBadLiteral, line, col, "malformed integer literal %q", n.Text())
		return nil, false
	}
	return &resoval.IntegerLit{Reg: c.Reg, Magnitude: mag, Negative: negative, Line: line, Col: col}, true
}

func (c *Context) lowerFloatLiteral(n parsetree.Node) (resoval.Value, bool) {
	line, col := n.Pos()
	text := strings.ReplaceAll(n.Text(), "_", "")
	v, err := mewfloat.Parse(text)
	if err != nil {
		c.Diag.Report(ErrBadLiteral, line, col, "malformed float literal %q", n.Text())
		return nil, false
	}
	if isNonFinite(v) {
		c.Diag.Report(ErrBadLiteral, line, col, "floating-point literal must be finite")
		return nil, false
	}
	return &resoval.FloatLit{Reg: c.Reg, Value: v, Line: line, Col: col}, true
}

func isNonFinite(v float64) bool { return v != v || v > maxFinite || v < -maxFinite }

const maxFinite = 1.7976931348623157e+308

func (c *Context) lowerBoolLiteral(n parsetree.Node) (resoval.Value, bool) {
	line, col := n.Pos()
	boolT := c.Reg.Primitive(resotype.KindBool)
	return resoval.NewConcrete(boolT, boolConstant(c, n.Text() == "true"), line, col), true
}

func (c *Context) lowerIdentifier(n parsetree.Node) (resoval.Value, bool) {
	line, col := n.Pos()
	name := n.Text()
	if name == "this" {
		v, ok := c.Table.LookupVariable("this")
		if !ok {
			c.Diag.Report(ErrOutOfContext, line, col, "'this' used outside a method body")
			return nil, false
		}
		return resoval.NewConcrete(v.Type, c.Block.NewLoad(c.LLVMType(v.Type), v.Ptr), line, col), true
	}
	v, err := c.Table.FindReadableVariable(name)
	if err != nil {
		c.reportSymtabErr(err, line, col)
		return nil, false
	}
	return resoval.NewConcrete(v.Type, c.Block.NewLoad(c.LLVMType(v.Type), v.Ptr), line, col), true
}

func (c *Context) lowerBinaryExpr(n parsetree.Node) (resoval.Value, bool) {
	line, col := n.Pos()
	left, ok := c.LowerExpression(parsetree.BinaryLeft(n))
	if !ok {
		return nil, false
	}
	right, ok := c.LowerExpression(parsetree.BinaryRight(n))
	if !ok {
		return nil, false
	}
	op := parsetree.BinaryOp(n)
	if arith, ok := binaryArith[op]; ok {
		return &resoval.Arithmetic{Op: arith, Left: left, Right: right, Line: line, Col: col}, true
	}
	if bw, ok := binaryBitwise[op]; ok {
		return &resoval.Bitwise{Op: bw, Left: left, Right: right, Line: line, Col: col}, true
	}
	if cmp, ok := binaryCompare[op]; ok {
		return &resoval.Compare{Reg: c.Reg, Op: cmp, Left: left, Right: right, Line: line, Col: col}, true
	}
	c.Diag.Report(ErrOutOfContext, line, col, "unknown binary operator %q", op)
	return nil, false
}

func (c *Context) lowerUnaryExpr(n parsetree.Node) (resoval.Value, bool) {
	line, col := n.Pos()
	operand, ok := c.LowerExpression(parsetree.UnaryOperand(n))
	if !ok {
		return nil, false
	}
	var op resoval.UnaryOp
	switch parsetree.UnaryOpText(n) {
	case "+":
		op = resoval.UnaryPlus
	case "-":
		op = resoval.UnaryNeg
	case "not":
		op = resoval.UnaryNot
	case "~":
		op = resoval.UnaryBitNot
	default:
		c.Diag.Report(ErrOutOfContext, line, col, "unknown unary operator %q", parsetree.UnaryOpText(n))
		return nil, false
	}
	return &resoval.Unary{Op: op, Operand: operand, Line: line, Col: col}, true
}

func (c *Context) lowerLogicalExpr(n parsetree.Node) (resoval.Value, bool) {
	line, col := n.Pos()
	left, ok := c.LowerExpression(parsetree.LogicalLeft(n))
	if !ok {
		return nil, false
	}
	right, ok := c.LowerExpression(parsetree.LogicalRight(n))
	if !ok {
		return nil, false
	}
	op := resoval.LogicalAnd
	if parsetree.LogicalOpText(n) == "or" {
		op = resoval.LogicalOr
	}
	return &resoval.Logical{Reg: c.Reg, Op: op, Left: left, Right: right, Line: line, Col: col}, true
}

func (c *Context) lowerTernaryExpr(n parsetree.Node) (resoval.Value, bool) {
	line, col := n.Pos()
	condVal, ok := c.LowerExpression(parsetree.TernaryCond(n))
	if !ok {
		return nil, false
	}
	boolT := c.Reg.Primitive(resotype.KindBool)
	cond, ok := Concretize(c, condVal, boolT)
	if !ok {
		return nil, false
	}
	then, ok := c.LowerExpression(parsetree.TernaryThen(n))
	if !ok {
		return nil, false
	}
	els, ok := c.LowerExpression(parsetree.TernaryElse(n))
	if !ok {
		return nil, false
	}
	return &resoval.Ternary{Cond: cond, Then: then, Else: els, Line: line, Col: col}, true
}

// reportSymtabErr translates a *symtab.Diagnostic into the matching
// ErrCode rather than collapsing every symbol-table failure into
// one bucket, so a caller switching on Diagnostic.Code sees the
// distinction between "not defined" and "not initialized".
func (c *Context) reportSymtabErr(err error, line, col int) {
	code := ErrUndefinedVariable
	if d, ok := err.(*symtab.Diagnostic); ok {
		switch d.Code {
		case symtab.ErrNotDefined, symtab.ErrNoEnclosingFunc:
			code = ErrUndefinedVariable
		case symtab.ErrNotInitialized:
			code = ErrUninitializedRead
		case symtab.ErrRedefinition, symtab.ErrGlobalVariable:
			code = ErrDuplicateDefinition
		case symtab.ErrConstAssign:
			code = ErrConstReassignment
		case symtab.ErrVisibility:
			code = ErrVisibilityViolation
		case symtab.ErrScopeUnderflow:
			code = ErrInternalInvariant
		}
	}
	c.Diag.Report(code, line, col, "%s", err.Error())
}
