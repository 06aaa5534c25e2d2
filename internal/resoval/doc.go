// Package resoval implements the value algebra of the Reso
// code-generation core: ResoValue as a tagged sum of a
// concrete, IR-backed value and a handful of deferred expression
// kinds (literals, arithmetic, bitwise, comparison, unary, ternary,
// vector constructor) that carry no IR until concretized.
//
// This package holds only the pure, IR-free half of each kind: its
// reported (possibly abstract) type, its default type if it can
// stand alone, and CanConcretizeTo. Concretize — the operation that
// actually emits instructions — needs the active IR builder and so
// lives in internal/codegen as free functions over *codegen.Context,
// collapsing what would otherwise be a generator object per kind into
// plain functions over one shared context. Kinds are matched
// exhaustively by type switch there; this package never grows a
// class hierarchy for them.
package resoval
