// Package resotype implements the type system of the Reso code-generation
// core: the primitive/literal/resource lattice, textual type resolution,
// and the decision rules for legal conversions and binary-operator result
// types. It holds no IR-builder state — every function here is a pure
// decision over Type values; the actual instruction emission that acts on
// those decisions lives in internal/codegen.
package resotype
