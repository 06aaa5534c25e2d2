package codegen

import "fmt"

// ErrCode enumerates the abstract error kinds: every reported
// diagnostic carries one of these so a caller (the driver, a test)
// can switch on it instead of matching message text.
type ErrCode string

const (
	ErrUnknownType         ErrCode = "UnknownType"
	ErrUndefinedVariable   ErrCode = "UndefinedVariable"
	ErrUninitializedRead   ErrCode = "UninitializedRead"
	ErrDuplicateDefinition ErrCode = "DuplicateDefinition"
	ErrNotAssignable       ErrCode = "NotAssignable"
	ErrConstReassignment   ErrCode = "ConstReassignment"
	ErrVisibilityViolation ErrCode = "VisibilityViolation"
	ErrTypeMismatch        ErrCode = "TypeMismatch"
	ErrBadLiteral          ErrCode = "BadLiteral"
	ErrReturnInvalid       ErrCode = "ReturnInvalid"
	ErrLoopControlOutside  ErrCode = "LoopControlOutsideLoop"
	ErrInvalidLvalue       ErrCode = "InvalidLvalue"
	ErrOutOfContext        ErrCode = "OutOfContext"
	ErrArgCountMismatch    ErrCode = "ArgCountMismatch"
	ErrArgConvertFail      ErrCode = "ArgConvertFail"
	ErrUnreachableCode     ErrCode = "UnreachableCode"
	ErrInternalInvariant   ErrCode = "InternalInvariant"
)

// Diagnostic is one reported error or warning, carrying the position
// of the offending token.
type Diagnostic struct {
	Code    ErrCode
	Message string
	Line    int
	Col     int
	Warning bool
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%d:%d: %s: %s", d.Line, d.Col, d.Code, d.Message)
}

// Diagnostics is the single error-reporting sink a Context owns.
// Every lowering function that fails calls Report and returns its
// caller a false/nil "nothing produced" signal; it never fabricates a
// placeholder IR value.
type Diagnostics struct {
	entries []*Diagnostic
}

// Report records a hard error at (line, col).
func (d *Diagnostics) Report(code ErrCode, line, col int, format string, args ...any) {
	d.entries = append(d.entries, &Diagnostic{
		Code: code, Message: fmt.Sprintf(format, args...), Line: line, Col: col,
	})
}

// Warn records a warning (currently only ErrUnreachableCode); it does
// not affect Failed().
func (d *Diagnostics) Warn(code ErrCode, line, col int, format string, args ...any) {
	d.entries = append(d.entries, &Diagnostic{
		Code: code, Message: fmt.Sprintf(format, args...), Line: line, Col: col, Warning: true,
	})
}

// Failed reports whether any hard (non-warning) error was recorded;
// the driver uses this to decide the process's exit status.
func (d *Diagnostics) Failed() bool {
	for _, e := range d.entries {
		if !e.Warning {
			return true
		}
	}
	return false
}

// Entries returns every recorded diagnostic, in report order.
func (d *Diagnostics) Entries() []*Diagnostic { return d.entries }
