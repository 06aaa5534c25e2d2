package driver

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnvOverridesAppliesValues(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envPath, []byte(
		"RESOC_TARGET_TRIPLE=aarch64-unknown-linux-gnu\n"+
			"RESOC_POINTER_BITS=32\n"+
			"RESOC_GC_INIT=myrt_init\n",
	), 0o644))
	for _, k := range []string{"RESOC_TARGET_TRIPLE", "RESOC_POINTER_BITS", "RESOC_GC_INIT", "RESOC_GC_MALLOC", "RESOC_GC_MALLOC_ATOMIC"} {
		t.Cleanup(func(k string) func() { return func() { os.Unsetenv(k) } }(k))
	}

	cfg := DefaultConfig()
	cfg.EnvFile = envPath
	require.NoError(t, cfg.LoadEnvOverrides())

	assert.Equal(t, "aarch64-unknown-linux-gnu", cfg.TargetTriple)
	assert.Equal(t, 32, cfg.PointerBits)
	assert.Equal(t, "myrt_init", cfg.Hooks.Init)
	assert.Empty(t, cfg.Hooks.Malloc)
}

func TestLoadEnvOverridesMissingFileIsNotAnError(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EnvFile = filepath.Join(t.TempDir(), "does-not-exist.env")
	require.NoError(t, cfg.LoadEnvOverrides())
}

func TestLoadEnvOverridesInvalidPointerBits(t *testing.T) {
	t.Setenv("RESOC_POINTER_BITS", "not-a-number")
	cfg := DefaultConfig()
	cfg.EnvFile = ""
	err := cfg.LoadEnvOverrides()
	require.Error(t, err)
	cliErr, ok := err.(CLIError)
	require.True(t, ok)
	assert.Equal(t, ErrIO, cliErr.Code)
}

func TestDefaultConfigUsesHostTriple(t *testing.T) {
	cfg := DefaultConfig()
	assert.NotEmpty(t, cfg.TargetTriple)
	assert.Equal(t, strconv.IntSize, cfg.PointerBits)
}
