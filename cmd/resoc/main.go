package main

import (
	"fmt"
	"os"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/spf13/cobra"

	"github.com/reso-lang/reso-sub002/internal/driver"
)

// grammar is the compiled tree-sitter grammar this binary links
// against. resoc is built against whichever grammar package a
// concrete deployment vendors in, so this stays nil here and every
// parse call falls back to the parser's own default (no language
// set). A real build replaces this with the grammar's sitter.Language
// value.
var grammar *sitter.Language

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "resoc",
		Short: "resoc compiles Reso source files to LLVM IR",
		Long:  "resoc discovers compilation units by glob pattern, type-checks and lowers them, and emits textual LLVM IR.",
	}
	root.AddCommand(newBuildCmd())
	return root
}

func newBuildCmd() *cobra.Command {
	var (
		output       string
		targetTriple string
		pointerBits  int
		envFile      string
		jsonDiag     bool
		showDiff     bool
	)

	cmd := &cobra.Command{
		Use:   "build <glob>...",
		Short: "Compile the matched compilation units and emit LLVM IR",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := driver.DefaultConfig()
			cfg.Roots = args
			cfg.Output = output
			cfg.EnvFile = envFile
			if err := cfg.LoadEnvOverrides(); err != nil {
				return err
			}
			if targetTriple != "" {
				cfg.TargetTriple = targetTriple
			}
			if pointerBits != 0 {
				cfg.PointerBits = pointerBits
			}

			p := driver.New(cfg, grammar, cmd.ErrOrStderr())
			res, err := p.Build(cfg.Roots)
			if err != nil {
				return err
			}

			if len(res.Diagnostics) > 0 {
				fmt.Fprint(cmd.ErrOrStderr(), driver.FormatDiagnostics(res.Diagnostics))
			}
			if res.Failed {
				return driver.CLIError{Code: driver.ErrCompileFailed, Message: "compilation failed"}
			}

			if showDiff && output != "" {
				diff, err := driver.DiffIR(output, res)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), diff)
			}
			return driver.WriteOutput(cfg, res)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write IR to this path instead of stdout")
	cmd.Flags().StringVar(&targetTriple, "target", "", "override the LLVM target triple")
	cmd.Flags().IntVar(&pointerBits, "pointer-bits", 0, "override isize/usize width (0 keeps the host default)")
	cmd.Flags().StringVar(&envFile, "env", ".env", "path to a .env file with RESOC_* development overrides")
	cmd.Flags().BoolVar(&jsonDiag, "json", false, "reserved: report diagnostics as JSON instead of plain text")
	cmd.Flags().BoolVarP(&showDiff, "diff", "D", false, "show a unified diff against the previous output before overwriting it")

	return cmd
}
