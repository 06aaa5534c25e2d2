// Package driver orchestrates the phased build pipeline across many
// compilation units: glob-based unit discovery (via
// github.com/bmatcuk/doublestar/v4), parsing each unit through the
// external tree-sitter grammar into internal/parsetree adapters,
// running the two signature-registration passes across every unit
// before any unit's body is emitted, then emitting bodies and
// producing the textual IR dump. It is the one package that
// knows how many files make up a build; internal/codegen knows
// nothing beyond the single *Context it is handed.
package driver
