package driver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeUnit(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("// unit\n"), 0o644))
	return path
}

func TestDiscoverUnitsExpandsAndSorts(t *testing.T) {
	dir := t.TempDir()
	b := writeUnit(t, dir, "b.reso")
	a := writeUnit(t, dir, "a.reso")

	got, err := DiscoverUnits([]string{filepath.Join(dir, "*.reso")})
	require.NoError(t, err)
	assert.Equal(t, []string{a, b}, got)
}

func TestDiscoverUnitsDedupesAcrossRoots(t *testing.T) {
	dir := t.TempDir()
	a := writeUnit(t, dir, "a.reso")

	pattern := filepath.Join(dir, "*.reso")
	got, err := DiscoverUnits([]string{pattern, pattern})
	require.NoError(t, err)
	assert.Equal(t, []string{a}, got)
}

func TestDiscoverUnitsRecursesSubdirectories(t *testing.T) {
	dir := t.TempDir()
	nested := writeUnit(t, dir, filepath.Join("pkg", "sub", "c.reso"))

	got, err := DiscoverUnits([]string{filepath.Join(dir, "**", "*.reso")})
	require.NoError(t, err)
	assert.Equal(t, []string{nested}, got)
}

func TestDiscoverUnitsNoMatchesReturnsCLIError(t *testing.T) {
	dir := t.TempDir()
	_, err := DiscoverUnits([]string{filepath.Join(dir, "*.reso")})
	require.Error(t, err)
	cliErr, ok := err.(CLIError)
	require.True(t, ok)
	assert.Equal(t, ErrNoUnitsMatched, cliErr.Code)
}

func TestDiscoverUnitsInvalidPatternIsIOError(t *testing.T) {
	_, err := DiscoverUnits([]string{"[unterminated"})
	require.Error(t, err)
	cliErr, ok := err.(CLIError)
	require.True(t, ok)
	assert.Equal(t, ErrIO, cliErr.Code)
}
