package codegen

import (
	"github.com/llir/llvm/ir/value"

	"github.com/reso-lang/reso-sub002/internal/resotype"
)

// Convert lowers src (already a materialized IR value of type
// srcType) to dst according to the numeric conversion matrix. It
// returns ok=false only for a forbidden pair; callers are expected to
// have already checked CanConcretizeTo so this should not happen in a
// well-formed lowering, but it is not a panic since a caller might
// still probe it directly.
func (c *Context) Convert(src value.Value, srcType, dst *resotype.Type) (value.Value, bool) {
	if srcType == dst {
		return src, true
	}
	kind := resotype.ClassifyConversion(srcType, dst)
	dstLL := c.LLVMType(dst)
	switch kind {
	case resotype.ConvIdentity:
		return src, true
	case resotype.ConvIntSExt:
		return c.Block.NewSExt(src, dstLL), true
	case resotype.ConvIntZExt:
		return c.Block.NewZExt(src, dstLL), true
	case resotype.ConvIntTrunc:
		return c.Block.NewTrunc(src, dstLL), true
	case resotype.ConvSIToFP:
		return c.Block.NewSIToFP(src, dstLL), true
	case resotype.ConvUIToFP:
		return c.Block.NewUIToFP(src, dstLL), true
	case resotype.ConvFPToSI:
		return c.Block.NewFPToSI(src, dstLL), true
	case resotype.ConvFPToUI:
		return c.Block.NewFPToUI(src, dstLL), true
	case resotype.ConvFPExt:
		return c.Block.NewFPExt(src, dstLL), true
	case resotype.ConvFPTrunc:
		return c.Block.NewFPTrunc(src, dstLL), true
	default:
		return nil, false
	}
}
