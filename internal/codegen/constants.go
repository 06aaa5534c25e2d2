package codegen

import (
	"github.com/llir/llvm/ir/constant"
	lltypes "github.com/llir/llvm/ir/types"

	"github.com/reso-lang/reso-sub002/internal/resotype"
)

func boolConstant(c *Context, v bool) constant.Constant { return constant.NewBool(v) }

func charConstant(c *Context, codepoint int64) constant.Constant {
	return constant.NewInt(lltypes.I32, codepoint)
}

func nullConstant(c *Context, t *resotype.Type) constant.Constant {
	return constant.NewNull(c.LLVMType(t).(*lltypes.PointerType))
}

func (c *Context) unitConstant() constant.Constant {
	return constant.NewStruct(c.LLVMType(c.Reg.Primitive(resotype.KindUnit)).(*lltypes.StructType))
}
