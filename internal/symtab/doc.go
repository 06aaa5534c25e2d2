// Package symtab implements the nested lexical/function scope stack
// and the variable/function/type/resource/method symbol kinds it
// holds. It depends only on internal/resotype (for *resotype.Type)
// and github.com/llir/llvm/ir/value (for the IR handle a symbol
// carries), never on internal/codegen, so the table itself never
// emits IR — it only remembers where things are.
package symtab
