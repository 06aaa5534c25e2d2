package driver

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWiresConfigIntoContext(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TargetTriple = "x86_64-unknown-linux-gnu"
	cfg.Output = "mymodule"

	var logBuf bytes.Buffer
	p := New(cfg, nil, &logBuf)

	assert.Equal(t, "mymodule", p.Ctx.Module.SourceFilename)
	assert.Equal(t, "x86_64-unknown-linux-gnu", p.Ctx.Module.TargetTriple)
}

func TestBuildReportsNoUnitsMatched(t *testing.T) {
	cfg := DefaultConfig()
	p := New(cfg, nil, &bytes.Buffer{})

	_, err := p.Build([]string{t.TempDir() + "/*.reso"})
	require.Error(t, err)
	cliErr, ok := err.(CLIError)
	require.True(t, ok)
	assert.Equal(t, ErrNoUnitsMatched, cliErr.Code)
}
