package driver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/llir/llvm/ir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reso-lang/reso-sub002/internal/codegen"
)

func TestFormatDiagnosticsMarksWarningsAndErrors(t *testing.T) {
	diags := []*codegen.Diagnostic{
		{Code: codegen.ErrUndefinedVariable, Message: "x not found", Line: 3, Col: 5},
		{Code: codegen.ErrUnreachableCode, Message: "dead code", Line: 7, Col: 1, Warning: true},
	}
	out := FormatDiagnostics(diags)
	assert.Contains(t, out, "3:5: error: UndefinedVariable: x not found")
	assert.Contains(t, out, "7:1: warning: UnreachableCode: dead code")
}

func TestDiffIRAgainstMissingFileShowsWholeModuleAsAdded(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.ll")

	res := &Result{Module: ir.NewModule()}
	res.Module.SourceFilename = "m"

	diff, err := DiffIR(path, res)
	require.NoError(t, err)
	assert.Contains(t, diff, "+")
}

func TestDiffIRNoChangeProducesEmptyDiff(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.ll")

	res := &Result{Module: ir.NewModule()}
	require.NoError(t, os.WriteFile(path, []byte(res.Module.String()), 0o644))

	diff, err := DiffIR(path, res)
	require.NoError(t, err)
	assert.Empty(t, diff)
}
