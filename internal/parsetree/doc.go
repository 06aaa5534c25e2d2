// Package parsetree adapts the external grammar front-end's
// tree-sitter concrete syntax tree into the typed accessors the
// lowering pipeline consumes. Every accessor is a thin,
// panic-free wrapper over *sitter.Node traversal: a missing or
// mis-shaped child returns the zero value/false rather than panicking,
// so a malformed subtree degrades to a reported diagnostic instead of
// crashing the process.
package parsetree
