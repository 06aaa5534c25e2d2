package driver

import "encoding/json"

// Error code identifiers for driver-level failures (unit discovery,
// parse failures, I/O), distinct from the ErrCode taxonomy
// internal/codegen reports for source-level compile errors.
const (
	ErrNoUnitsMatched = "ERR_NO_UNITS_MATCHED"
	ErrParseFailed    = "ERR_PARSE_FAILED"
	ErrIO             = "ERR_IO"
	ErrCompileFailed  = "ERR_COMPILE_FAILED"
)

// CLIError is a uniform error payload for both human and JSON output,
// grounded on termfx-morfx's internal/core.CLIError: printed with %s
// it returns Message (plus Detail when present), and JSON() renders
// the full structured payload for tooling that wants it.
type CLIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

func (e CLIError) Error() string {
	if e.Detail != "" {
		return e.Message + ": " + e.Detail
	}
	return e.Message
}

func (e CLIError) String() string { return e.Error() }

func (e CLIError) JSON() string {
	b, _ := json.Marshal(e)
	return string(b)
}

// wrap builds a CLIError carrying inner's text as Detail.
func wrap(code, msg string, inner error) error {
	return CLIError{Code: code, Message: msg, Detail: inner.Error()}
}
