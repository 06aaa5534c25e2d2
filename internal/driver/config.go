package driver

import (
	"os"
	"runtime"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/reso-lang/reso-sub002/internal/codegen"
)

// Config is the driver's build configuration: defaults, then optional
// .env/environment overrides, then CLI flags applied by cmd/resoc.
type Config struct {
	// Roots are doublestar glob patterns naming the compilation
	// units, expanded and ordered by DiscoverUnits.
	Roots []string
	// Output is the path the textual IR dump is written to; empty
	// means stdout.
	Output string
	// TargetTriple and PointerBits fix the module's target triple and
	// the width of isize/usize for this build.
	TargetTriple string
	PointerBits  int
	// Hooks overrides the GC runtime's external symbol names; the
	// zero value selects the standard gc_init/gc_malloc/gc_malloc_atomic.
	Hooks codegen.RuntimeHookNames
	// EnvFile is the optional .env path LoadEnvOverrides reads
	// development overrides from.
	EnvFile string
}

// DefaultConfig returns a Config targeting the host's own
// architecture at its native pointer width, with no .env overrides
// yet applied.
func DefaultConfig() Config {
	return Config{
		PointerBits:  strconv.IntSize,
		TargetTriple: hostTriple(),
		EnvFile:      ".env",
	}
}

// hostTriple derives a best-effort LLVM target triple from the Go
// runtime's own GOOS/GOARCH, standing in for the host-machine
// detection the real toolchain would
// otherwise perform via the LLVM C API.
func hostTriple() string {
	arch := map[string]string{
		"amd64": "x86_64", "arm64": "aarch64", "386": "i386", "arm": "arm",
	}[runtime.GOARCH]
	if arch == "" {
		arch = "x86_64"
	}
	os_ := map[string]string{
		"linux": "unknown-linux-gnu", "darwin": "apple-macosx", "windows": "pc-windows-msvc",
	}[runtime.GOOS]
	if os_ == "" {
		os_ = "unknown-linux-gnu"
	}
	return arch + "-" + os_
}

// LoadEnvOverrides loads cfg.EnvFile (if present) via godotenv, then
// applies RESOC_TARGET_TRIPLE / RESOC_POINTER_BITS / RESOC_GC_INIT /
// RESOC_GC_MALLOC / RESOC_GC_MALLOC_ATOMIC environment overrides on
// top of cfg's current values. A missing .env file is not an error
// (development convenience only); a malformed RESOC_POINTER_BITS is.
func (cfg *Config) LoadEnvOverrides() error {
	if cfg.EnvFile != "" {
		if _, err := os.Stat(cfg.EnvFile); err == nil {
			if err := godotenv.Load(cfg.EnvFile); err != nil {
				return wrap(ErrIO, "failed to load "+cfg.EnvFile, err)
			}
		}
	}
	if v := os.Getenv("RESOC_TARGET_TRIPLE"); v != "" {
		cfg.TargetTriple = v
	}
	if v := os.Getenv("RESOC_POINTER_BITS"); v != "" {
		bits, err := strconv.Atoi(v)
		if err != nil {
			return wrap(ErrIO, "invalid RESOC_POINTER_BITS", err)
		}
		cfg.PointerBits = bits
	}
	if v := os.Getenv("RESOC_GC_INIT"); v != "" {
		cfg.Hooks.Init = v
	}
	if v := os.Getenv("RESOC_GC_MALLOC"); v != "" {
		cfg.Hooks.Malloc = v
	}
	if v := os.Getenv("RESOC_GC_MALLOC_ATOMIC"); v != "" {
		cfg.Hooks.MallocAtomic = v
	}
	return nil
}
