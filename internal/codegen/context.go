package codegen

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	lltypes "github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/reso-lang/reso-sub002/internal/resotype"
	"github.com/reso-lang/reso-sub002/internal/symtab"
)

// loopFrame is one entry of the loop-context stack:
// break/continue target the innermost frame.
type loopFrame struct {
	continueBlock *ir.Block
	breakBlock    *ir.Block
}

// Context is the single owner of every emission resource for one
// build: the IR module, the symbol table shared across compilation
// units, the current function/block, the scratch-alloca builder, the
// loop and access-context stacks, and the global-string cache. Nothing here is safe for
// concurrent use; the driver runs one Context end to end.
type Context struct {
	Module *ir.Module
	Reg    *resotype.Registry
	Table  *symtab.Table
	Diag   *Diagnostics

	Func  *ir.Func
	Block *ir.Block

	// entry is the function's entry block, where parameter/variable
	// allocas are positioned ahead of the first non-alloca instruction
	entry *ir.Block

	loopStack   []loopFrame
	accessStack []string

	globalStrings map[string]constant.Constant

	gcInit          *ir.Func
	gcMalloc        *ir.Func
	gcMallocAtomic  *ir.Func
	memcpy, memmove *ir.Func

	warnedUnreachable bool
}

// RuntimeHookNames overrides the external symbol names the GC runtime
// is declared under. The zero value selects the standard names
// (gc_init, gc_malloc, gc_malloc_atomic); the driver only overrides
// these in development, when a build targets a runtime built with a
// prefixed symbol set.
type RuntimeHookNames struct {
	Init, Malloc, MallocAtomic string
}

func (n RuntimeHookNames) withDefaults() RuntimeHookNames {
	if n.Init == "" {
		n.Init = "gc_init"
	}
	if n.Malloc == "" {
		n.Malloc = "gc_malloc"
	}
	if n.MallocAtomic == "" {
		n.MallocAtomic = "gc_malloc_atomic"
	}
	return n
}

// NewContext creates a Context over a fresh module named sourceName
// and registers the GC/runtime hooks and LLVM intrinsics under their
// standard names. No access-context file is pushed; callers push one
// with PushAccessFile.
func NewContext(sourceName string, reg *resotype.Registry, table *symtab.Table) *Context {
	return NewContextWithHooks(sourceName, reg, table, RuntimeHookNames{})
}

// NewContextWithHooks is NewContext with the GC hook symbol names
// overridden by hooks (see RuntimeHookNames).
func NewContextWithHooks(sourceName string, reg *resotype.Registry, table *symtab.Table, hooks RuntimeHookNames) *Context {
	ctx := &Context{
		Module:        ir.NewModule(),
		Reg:           reg,
		Table:         table,
		Diag:          &Diagnostics{},
		globalStrings: make(map[string]constant.Constant),
	}
	ctx.Module.SourceFilename = sourceName
	ctx.declareRuntimeHooks(hooks.withDefaults())
	return ctx
}

// declareRuntimeHooks declares the GC allocator hooks and the
// memcpy/memmove intrinsics as external functions up front, mirroring
// declareGCFunctions in the dshills/alas LLVM generator this package
// is grounded on. The memcpy/memmove intrinsics are declared under the
// overload matching the registry's own usize width, since their `len`
// operand and LLVM's intrinsic name mangling must both track
// Registry.PointerBits() rather than a fixed i64.
func (c *Context) declareRuntimeHooks(hooks RuntimeHookNames) {
	i8ptr := lltypes.NewPointer(lltypes.I8)
	usize := c.usizeType()
	lenSuffix := "i64"
	if c.Reg.PointerBits() == 32 {
		lenSuffix = "i32"
	}

	c.gcInit = c.Module.NewFunc(hooks.Init, lltypes.Void)

	c.gcMalloc = c.Module.NewFunc(hooks.Malloc, i8ptr)
	c.gcMalloc.Params = append(c.gcMalloc.Params, ir.NewParam("size", usize))

	c.gcMallocAtomic = c.Module.NewFunc(hooks.MallocAtomic, i8ptr)
	c.gcMallocAtomic.Params = append(c.gcMallocAtomic.Params, ir.NewParam("size", usize))

	c.memcpy = c.Module.NewFunc("llvm.memcpy.p0i8.p0i8."+lenSuffix, lltypes.Void)
	c.memcpy.Params = append(c.memcpy.Params,
		ir.NewParam("dst", i8ptr), ir.NewParam("src", i8ptr),
		ir.NewParam("len", usize), ir.NewParam("isvolatile", lltypes.I1))

	c.memmove = c.Module.NewFunc("llvm.memmove.p0i8.p0i8."+lenSuffix, lltypes.Void)
	c.memmove.Params = append(c.memmove.Params,
		ir.NewParam("dst", i8ptr), ir.NewParam("src", i8ptr),
		ir.NewParam("len", usize), ir.NewParam("isvolatile", lltypes.I1))
}

// PushAccessFile pushes file as the current access context, used while
// emitting compilation unit file's bodies.
func (c *Context) PushAccessFile(file string) { c.accessStack = append(c.accessStack, file) }

// PopAccessFile pops the current access context.
func (c *Context) PopAccessFile() {
	c.accessStack = c.accessStack[:len(c.accessStack)-1]
}

// CurrentFile returns the innermost pushed access-context file.
func (c *Context) CurrentFile() string {
	if len(c.accessStack) == 0 {
		return ""
	}
	return c.accessStack[len(c.accessStack)-1]
}

// PushLoop pushes a new loop context for break/continue.
func (c *Context) PushLoop(continueBlock, breakBlock *ir.Block) {
	c.loopStack = append(c.loopStack, loopFrame{continueBlock, breakBlock})
}

// PopLoop pops the innermost loop context.
func (c *Context) PopLoop() { c.loopStack = c.loopStack[:len(c.loopStack)-1] }

// CurrentLoop returns the innermost loop context, or ok=false outside
// any loop.
func (c *Context) CurrentLoop() (continueBlock, breakBlock *ir.Block, ok bool) {
	if len(c.loopStack) == 0 {
		return nil, nil, false
	}
	top := c.loopStack[len(c.loopStack)-1]
	return top.continueBlock, top.breakBlock, true
}

// EnterFunction sets fn/entry as current and resets the scratch-alloca
// position to the top of the entry block.
func (c *Context) EnterFunction(fn *ir.Func, entry *ir.Block) {
	c.Func = fn
	c.entry = entry
	c.Block = entry
}

// ExitFunction clears the current function/block; callers save and
// restore the previous Func/Block around nested emission instead of
// relying on a call stack of generator objects.
func (c *Context) ExitFunction() {
	c.Func = nil
	c.entry = nil
	c.Block = nil
}

// Alloca inserts an alloca of typ at the top of the entry block,
// ahead of any instruction already positioned there.
func (c *Context) Alloca(typ lltypes.Type, name string) *ir.InstAlloca {
	a := ir.NewAlloca(typ)
	a.SetName(name)
	c.entry.Insts = append([]ir.Instruction{a}, c.entry.Insts...)
	return a
}

// GlobalString returns the cached global holding a null-terminated
// [len(s)+1 x i8] copy of s, creating it on first request
// (GlobalStringPtr gives the i8* to its first byte). The cache key is
// a content hash.
func (c *Context) GlobalString(s string) constant.Constant {
	sum := sha256.Sum256([]byte(s))
	key := hex.EncodeToString(sum[:])
	if v, ok := c.globalStrings[key]; ok {
		return v
	}
	data := constant.NewCharArrayFromString(s + "\x00")
	g := c.Module.NewGlobalDef(".str."+key[:16], data)
	g.Immutable = true
	c.globalStrings[key] = g
	return g
}

// GlobalStringPtr returns an i8* pointing at the first byte of the
// cached null-terminated global constant for s.
func (c *Context) GlobalStringPtr(s string) value.Value {
	g := c.GlobalString(s)
	arrType := lltypes.NewArray(uint64(len(s)+1), lltypes.I8)
	zero := constant.NewInt(lltypes.I32, 0)
	return c.Block.NewGetElementPtr(arrType, g, zero, zero)
}

// GCMalloc emits a call to gc_malloc(size) -> i8*.
func (c *Context) GCMalloc(size value.Value) *ir.InstCall {
	return c.Block.NewCall(c.gcMalloc, size)
}

// GCMallocAtomic emits a call to gc_malloc_atomic(size) -> i8*, used
// for allocations the collector never needs to scan for pointers
// (e.g. a Vector<T> backing buffer of a non-resource element type).
func (c *Context) GCMallocAtomic(size value.Value) *ir.InstCall {
	return c.Block.NewCall(c.gcMallocAtomic, size)
}

// GCInit emits a call to gc_init(), used once at the top of main
func (c *Context) GCInit() *ir.InstCall {
	return c.Block.NewCall(c.gcInit)
}

// Memcpy emits a non-volatile llvm.memcpy call (the .i32 or .i64
// overload, following the usize width), used when Vector<T> growth
// copies the live elements into the new buffer.
func (c *Context) Memcpy(dst, src value.Value, length value.Value) {
	c.Block.NewCall(c.memcpy, dst, src, length, constant.False)
}

// Memmove emits a non-volatile llvm.memmove call (the .i32 or .i64
// overload, following the usize width), used for overlapping
// Vector<T> shifts (insert/remove).
func (c *Context) Memmove(dst, src value.Value, length value.Value) {
	c.Block.NewCall(c.memmove, dst, src, length, constant.False)
}
