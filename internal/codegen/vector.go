package codegen

import (
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	lltypes "github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/reso-lang/reso-sub002/internal/resotype"
)

const vectorInitialCapacity = 8

// vectorFieldPtr returns a struct-GEP pointer to field index i
// (elements=0, size=1, capacity=2, matching Registry.VectorOf's
// layout) of the vector pointed to by recv.
func (c *Context) vectorFieldPtr(vecType *resotype.Type, recv value.Value, i int64) value.Value {
	ptrType := c.LLVMType(vecType).(*lltypes.PointerType)
	body := ptrType.ElemType
	zero := constant.NewInt(lltypes.I32, 0)
	idx := constant.NewInt(lltypes.I32, i)
	return c.Block.NewGetElementPtr(body, recv, zero, idx)
}

func (c *Context) usizeType() lltypes.Type {
	return c.LLVMType(c.Reg.Primitive(resotype.KindUsize))
}

func (c *Context) usizeConst(v int64) value.Value {
	return constant.NewInt(c.usizeType().(*lltypes.IntType), v)
}

// VectorConstruct emits a new Vector<elem> with capacity 8 and size 0
//: the wrapper struct itself and its element buffer are
// both GC allocations, the buffer atomic when elem carries no pointers.
func (c *Context) VectorConstruct(elemType *resotype.Type) value.Value {
	vecType := c.Reg.VectorOf(elemType)
	ptrType := c.LLVMType(vecType).(*lltypes.PointerType)
	body := ptrType.ElemType

	size := c.structSizeOf(body)
	raw := c.GCMalloc(size)
	vec := c.Block.NewBitCast(raw, ptrType)

	elemLL := c.LLVMType(elemType)
	elemSize := c.structSizeOf(elemLL)
	bufBytes := c.Block.NewMul(elemSize, c.usizeConst(vectorInitialCapacity))
	var rawBuf value.Value
	if elemType.IsResource() {
		rawBuf = c.GCMalloc(bufBytes)
	} else {
		rawBuf = c.GCMallocAtomic(bufBytes)
	}
	buf := c.Block.NewBitCast(rawBuf, lltypes.NewPointer(elemLL))

	c.Block.NewStore(buf, c.vectorFieldPtr(vecType, vec, 0))
	c.Block.NewStore(c.usizeConst(0), c.vectorFieldPtr(vecType, vec, 1))
	c.Block.NewStore(c.usizeConst(vectorInitialCapacity), c.vectorFieldPtr(vecType, vec, 2))
	return vec
}

// structSizeOf computes sizeof(t) via the classic
// getelementptr-on-null-then-ptrtoint trick, since llir/llvm has no
// direct SizeOf constant for arbitrary computed struct types.
func (c *Context) structSizeOf(t lltypes.Type) value.Value {
	ptr := lltypes.NewPointer(t)
	null := constant.NewNull(ptr)
	one := constant.NewInt(lltypes.I32, 1)
	gep := c.Block.NewGetElementPtr(t, null, one)
	return c.Block.NewPtrToInt(gep, c.usizeType())
}

func (c *Context) vectorElements(vecType *resotype.Type, recv value.Value) value.Value {
	return c.Block.NewLoad(lltypes.NewPointer(c.LLVMType(vecType.Generics[0])), c.vectorFieldPtr(vecType, recv, 0))
}

func (c *Context) vectorSize(vecType *resotype.Type, recv value.Value) value.Value {
	return c.Block.NewLoad(c.usizeType(), c.vectorFieldPtr(vecType, recv, 1))
}

func (c *Context) vectorCapacity(vecType *resotype.Type, recv value.Value) value.Value {
	return c.Block.NewLoad(c.usizeType(), c.vectorFieldPtr(vecType, recv, 2))
}

// emitBoundsCheck branches to a trap block (unreachable, matching the
// runtime's fatal-abort contract for an out-of-range access) unless
// 0 <= index < bound.
func (c *Context) emitBoundsCheck(index, bound value.Value) {
	inRange := c.Block.NewICmp(enum.IPredULT, index, bound)
	okBlock := c.Func.NewBlock("")
	trapBlock := c.Func.NewBlock("")
	c.Block.NewCondBr(inRange, okBlock, trapBlock)
	trapBlock.NewUnreachable()
	c.Block = okBlock
}

// VectorGet implements bounds-checked `v.get(index)`.
func (c *Context) VectorGet(vecType *resotype.Type, recv, index value.Value) value.Value {
	size := c.vectorSize(vecType, recv)
	c.emitBoundsCheck(index, size)
	elements := c.vectorElements(vecType, recv)
	elemLL := c.LLVMType(vecType.Generics[0])
	elemPtr := c.Block.NewGetElementPtr(elemLL, elements, index)
	return c.Block.NewLoad(elemLL, elemPtr)
}

// VectorSet implements bounds-checked `v.set(index, value)`.
func (c *Context) VectorSet(vecType *resotype.Type, recv, index, val value.Value) {
	size := c.vectorSize(vecType, recv)
	c.emitBoundsCheck(index, size)
	elements := c.vectorElements(vecType, recv)
	elemLL := c.LLVMType(vecType.Generics[0])
	elemPtr := c.Block.NewGetElementPtr(elemLL, elements, index)
	c.Block.NewStore(val, elemPtr)
}

// ensureCapacity grows the backing buffer by doubling (initial 8,
// thereafter max(1, 2*old)) whenever size == capacity, copying only
// the `size` live elements forward.
func (c *Context) ensureCapacity(vecType *resotype.Type, recv value.Value) {
	elemType := vecType.Generics[0]
	elemLL := c.LLVMType(elemType)
	elemSize := c.structSizeOf(elemLL)

	size := c.vectorSize(vecType, recv)
	capacity := c.vectorCapacity(vecType, recv)
	needsGrow := c.Block.NewICmp(enum.IPredUGE, size, capacity)

	growBlock := c.Func.NewBlock("")
	contBlock := c.Func.NewBlock("")
	c.Block.NewCondBr(needsGrow, growBlock, contBlock)

	c.Block = growBlock
	one := c.usizeConst(1)
	doubled := c.Block.NewMul(capacity, c.usizeConst(2))
	isZero := c.Block.NewICmp(enum.IPredEQ, capacity, c.usizeConst(0))
	newCapacity := c.Block.NewSelect(isZero, one, doubled)

	oldElements := c.vectorElements(vecType, recv)
	newBytes := c.Block.NewMul(elemSize, newCapacity)
	var rawBuf value.Value
	if elemType.IsResource() {
		rawBuf = c.GCMalloc(newBytes)
	} else {
		rawBuf = c.GCMallocAtomic(newBytes)
	}
	newElements := c.Block.NewBitCast(rawBuf, lltypes.NewPointer(elemLL))

	copyBytes := c.Block.NewMul(elemSize, size)
	oldI8 := c.Block.NewBitCast(oldElements, lltypes.NewPointer(lltypes.I8))
	newI8 := c.Block.NewBitCast(newElements, lltypes.NewPointer(lltypes.I8))
	c.Memcpy(newI8, oldI8, copyBytes)

	c.Block.NewStore(newElements, c.vectorFieldPtr(vecType, recv, 0))
	c.Block.NewStore(newCapacity, c.vectorFieldPtr(vecType, recv, 2))
	c.Block.NewBr(contBlock)

	c.Block = contBlock
}

// VectorAdd implements `v.add(value)`: append at the end, growing
// first if needed.
func (c *Context) VectorAdd(vecType *resotype.Type, recv, val value.Value) {
	c.ensureCapacity(vecType, recv)
	size := c.vectorSize(vecType, recv)
	elements := c.vectorElements(vecType, recv)
	elemLL := c.LLVMType(vecType.Generics[0])
	slot := c.Block.NewGetElementPtr(elemLL, elements, size)
	c.Block.NewStore(val, slot)
	newSize := c.Block.NewAdd(size, c.usizeConst(1))
	c.Block.NewStore(newSize, c.vectorFieldPtr(vecType, recv, 1))
}

// VectorInsert implements `v.insert(index, value)`: shifts
// [index, size) one slot forward via memmove before writing
func (c *Context) VectorInsert(vecType *resotype.Type, recv, index, val value.Value) {
	size := c.vectorSize(vecType, recv)
	inRange := c.Block.NewICmp(enum.IPredULE, index, size)
	okBlock := c.Func.NewBlock("")
	trapBlock := c.Func.NewBlock("")
	c.Block.NewCondBr(inRange, okBlock, trapBlock)
	trapBlock.NewUnreachable()
	c.Block = okBlock

	c.ensureCapacity(vecType, recv)
	size = c.vectorSize(vecType, recv)
	elemType := vecType.Generics[0]
	elemLL := c.LLVMType(elemType)
	elements := c.vectorElements(vecType, recv)
	elemSize := c.structSizeOf(elemLL)

	tailCount := c.Block.NewSub(size, index)
	srcPtr := c.Block.NewGetElementPtr(elemLL, elements, index)
	dstPtr := c.Block.NewGetElementPtr(elemLL, elements, c.Block.NewAdd(index, c.usizeConst(1)))
	bytes := c.Block.NewMul(elemSize, tailCount)
	srcI8 := c.Block.NewBitCast(srcPtr, lltypes.NewPointer(lltypes.I8))
	dstI8 := c.Block.NewBitCast(dstPtr, lltypes.NewPointer(lltypes.I8))
	c.Memmove(dstI8, srcI8, bytes)

	slot := c.Block.NewGetElementPtr(elemLL, elements, index)
	c.Block.NewStore(val, slot)
	newSize := c.Block.NewAdd(size, c.usizeConst(1))
	c.Block.NewStore(newSize, c.vectorFieldPtr(vecType, recv, 1))
}

// VectorRemove implements `v.remove(index)`: reads the element out,
// shifts [index+1, size) back one slot via memmove, decrements size
func (c *Context) VectorRemove(vecType *resotype.Type, recv, index value.Value) value.Value {
	size := c.vectorSize(vecType, recv)
	c.emitBoundsCheck(index, size)

	elemType := vecType.Generics[0]
	elemLL := c.LLVMType(elemType)
	elements := c.vectorElements(vecType, recv)
	elemSize := c.structSizeOf(elemLL)

	removedPtr := c.Block.NewGetElementPtr(elemLL, elements, index)
	removed := c.Block.NewLoad(elemLL, removedPtr)

	nextIndex := c.Block.NewAdd(index, c.usizeConst(1))
	tailCount := c.Block.NewSub(size, nextIndex)
	srcPtr := c.Block.NewGetElementPtr(elemLL, elements, nextIndex)
	dstPtr := c.Block.NewGetElementPtr(elemLL, elements, index)
	bytes := c.Block.NewMul(elemSize, tailCount)
	srcI8 := c.Block.NewBitCast(srcPtr, lltypes.NewPointer(lltypes.I8))
	dstI8 := c.Block.NewBitCast(dstPtr, lltypes.NewPointer(lltypes.I8))
	c.Memmove(dstI8, srcI8, bytes)

	newSize := c.Block.NewSub(size, c.usizeConst(1))
	c.Block.NewStore(newSize, c.vectorFieldPtr(vecType, recv, 1))
	return removed
}

// VectorSizeOf and VectorCapacityOf expose `v.size()`/`v.capacity()`.
func (c *Context) VectorSizeOf(vecType *resotype.Type, recv value.Value) value.Value {
	return c.vectorSize(vecType, recv)
}

func (c *Context) VectorCapacityOf(vecType *resotype.Type, recv value.Value) value.Value {
	return c.vectorCapacity(vecType, recv)
}
