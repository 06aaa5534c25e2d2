package codegen

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/llir/llvm/ir/value"
	lltypes "github.com/llir/llvm/ir/types"

	"github.com/reso-lang/reso-sub002/internal/parsetree"
	"github.com/reso-lang/reso-sub002/internal/resotype"
	"github.com/reso-lang/reso-sub002/internal/resoval"
)

// decodeEscapes strips a literal token's surrounding quote character
// and decodes the escape grammar shared by string and character
// literals: \n \t \r \b \f \' \" \\ and \u{HHHH...}, then
// validates the result round-trips through UTF-8.
func decodeEscapes(raw string) (string, error) {
	if len(raw) < 2 {
		return "", fmt.Errorf("malformed literal %q", raw)
	}
	body := raw[1 : len(raw)-1]
	var sb strings.Builder
	i := 0
	for i < len(body) {
		ch := body[i]
		if ch != '\\' {
			sb.WriteByte(ch)
			i++
			continue
		}
		i++
		if i >= len(body) {
			return "", fmt.Errorf("dangling escape in %q", raw)
		}
		switch body[i] {
		case 'n':
			sb.WriteByte('\n')
			i++
		case 't':
			sb.WriteByte('\t')
			i++
		case 'r':
			sb.WriteByte('\r')
			i++
		case 'b':
			sb.WriteByte('\b')
			i++
		case 'f':
			sb.WriteByte('\f')
			i++
		case '\'':
			sb.WriteByte('\'')
			i++
		case '"':
			sb.WriteByte('"')
			i++
		case '\\':
			sb.WriteByte('\\')
			i++
		case 'u':
			i++
			if i >= len(body) || body[i] != '{' {
				return "", fmt.Errorf("malformed unicode escape in %q", raw)
			}
			i++
			start := i
			for i < len(body) && body[i] != '}' {
				i++
			}
			if i >= len(body) {
				return "", fmt.Errorf("unterminated unicode escape in %q", raw)
			}
			hexDigits := body[start:i]
			i++ // consume '}'
			cp, err := strconv.ParseInt(hexDigits, 16, 64)
			if err != nil || cp < 0 || cp > 0x10FFFF {
				return "", fmt.Errorf("invalid unicode escape \\u{%s}", hexDigits)
			}
			sb.WriteRune(rune(cp))
		default:
			return "", fmt.Errorf("unknown escape \\%c in %q", body[i], raw)
		}
	}
	out := sb.String()
	if !utf8.ValidString(out) {
		return "", fmt.Errorf("literal does not round-trip through UTF-8: %q", raw)
	}
	return out, nil
}

// lowerStringLiteral decodes escapes, caches a global constant for the
// bytes, and synthesizes a String instance whose backing Vector<u8>
// points at those bytes with size/capacity = byte-length + 1 (the
// null terminator).
func (c *Context) lowerStringLiteral(n parsetree.Node) (resoval.Value, bool) {
	line, col := n.Pos()
	decoded, err := decodeEscapes(n.Text())
	if err != nil {
		c.Diag.Report(ErrBadLiteral, line, col, "%s", err.Error())
		return nil, false
	}
	stringT, ok := c.Reg.ResolveName("String")
	if !ok {
		panic("codegen: String built-in resource type not registered")
	}
	return resoval.NewConcrete(stringT, c.NewStringConstant(decoded), line, col), true
}

// NewStringConstant builds a String instance over the cached global
// bytes for s.
func (c *Context) NewStringConstant(s string) value.Value {
	u8 := c.Reg.Primitive(resotype.KindU8)
	vecType := c.Reg.VectorOf(u8)
	vecPtrType := c.LLVMType(vecType).(*lltypes.PointerType)

	dataPtr := c.GlobalStringPtr(s)
	length := c.usizeConst(int64(len(s)) + 1)

	vecSize := c.structSizeOf(vecPtrType.ElemType)
	rawVec := c.GCMalloc(vecSize)
	vec := c.Block.NewBitCast(rawVec, vecPtrType)
	c.Block.NewStore(dataPtr, c.vectorFieldPtr(vecType, vec, 0))
	c.Block.NewStore(length, c.vectorFieldPtr(vecType, vec, 1))
	c.Block.NewStore(length, c.vectorFieldPtr(vecType, vec, 2))

	stringType, ok := c.Reg.ResolveName("String")
	if !ok {
		panic("codegen: String built-in resource type not registered")
	}
	strPtrType := c.LLVMType(stringType).(*lltypes.PointerType)
	strSize := c.structSizeOf(strPtrType.ElemType)
	rawStr := c.GCMalloc(strSize)
	str := c.Block.NewBitCast(rawStr, strPtrType)
	c.Block.NewStore(vec, c.fieldPtr(stringType, str, 0))
	return str
}

// lowerCharLiteral decodes the same escape grammar as a string
// literal but requires exactly one resulting code point (a char holds
// a full Unicode code point, 0..=0x10FFFF, in 32 bits).
func (c *Context) lowerCharLiteral(n parsetree.Node) (resoval.Value, bool) {
	line, col := n.Pos()
	decoded, err := decodeEscapes(n.Text())
	if err != nil {
		c.Diag.Report(ErrBadLiteral, line, col, "%s", err.Error())
		return nil, false
	}
	r := []rune(decoded)
	if len(r) != 1 {
		c.Diag.Report(ErrBadLiteral, line, col, "character literal must contain exactly one code point: %q", n.Text())
		return nil, false
	}
	charT := c.Reg.Primitive(resotype.KindChar)
	return resoval.NewConcrete(charT, charConstant(c, int64(r[0])), line, col), true
}
