package driver

import (
	"fmt"
	"io"
	"os"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/reso-lang/reso-sub002/internal/codegen"
)

// EmitIR writes res.Module's textual LLVM IR to w, the llir/llvm
// *ir.Module.String() form a real `llc`/`lli` can consume directly
func EmitIR(res *Result, w io.Writer) error {
	_, err := io.WriteString(w, res.Module.String())
	if err != nil {
		return wrap(ErrIO, "failed to write IR output", err)
	}
	return nil
}

// WriteOutput writes res's IR to cfg.Output, or to stdout when Output
// is empty.
func WriteOutput(cfg Config, res *Result) error {
	if cfg.Output == "" {
		return EmitIR(res, os.Stdout)
	}
	f, err := os.Create(cfg.Output)
	if err != nil {
		return wrap(ErrIO, "cannot create "+cfg.Output, err)
	}
	defer f.Close()
	return EmitIR(res, f)
}

// DiffIR renders a unified diff between a previous build's IR output
// and res's, so a rebuild can show what changed before overwriting
// path (cmd/resoc's --diff flag).
func DiffIR(path string, res *Result) (string, error) {
	prev, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			prev = nil
		} else {
			return "", wrap(ErrIO, "cannot read "+path+" for diff", err)
		}
	}
	next := res.Module.String()
	d := difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(prev)),
		B:        difflib.SplitLines(next),
		FromFile: path,
		ToFile:   path + " (new)",
		Context:  3,
	}
	text, err := difflib.GetUnifiedDiffString(d)
	if err != nil {
		return "", wrap(ErrIO, "failed to compute IR diff", err)
	}
	return text, nil
}

// FormatDiagnostics renders res's diagnostics one per line, in the
// order given, each marked "error" for a hard error or "warning" for
// a warning, as "line:col: severity: code: message" (the same shape as the
// compiler front ends in this pack report diagnostics to stderr).
func FormatDiagnostics(diags []*codegen.Diagnostic) string {
	var out string
	for _, d := range diags {
		severity := "error"
		if d.Warning {
			severity = "warning"
		}
		out += fmt.Sprintf("%d:%d: %s: %s: %s\n", d.Line, d.Col, severity, d.Code, d.Message)
	}
	return out
}
