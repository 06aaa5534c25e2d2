// Package codegen emits SSA-form LLVM IR for one compilation: it owns
// the *ir.Module, the current basic block, and every other emission
// resource, and exposes free functions operating on a single *Context
// instead of a generator-class hierarchy (the context/sub-generator
// reference cycle the original design described dissolves once
// lowering is just functions over one struct). It is the only package
// that emits instructions through github.com/llir/llvm; the other
// internal packages import it only for type and value handles, and
// internal/resotype and internal/resoval stay pure decision logic.
package codegen
