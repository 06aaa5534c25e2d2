package driver

import (
	"context"
	"io"
	"log"
	"os"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/llir/llvm/ir"

	"github.com/reso-lang/reso-sub002/internal/codegen"
	"github.com/reso-lang/reso-sub002/internal/parsetree"
	"github.com/reso-lang/reso-sub002/internal/resotype"
	"github.com/reso-lang/reso-sub002/internal/symtab"
)

// Result is the outcome of one Pipeline.Build: the emitted module
// plus every diagnostic recorded along the way, in report order
type Result struct {
	Module      *ir.Module
	Diagnostics []*codegen.Diagnostic
	Failed      bool
}

// Pipeline drives the phased build over however many
// compilation units DiscoverUnits finds: one shared *resotype.Registry
// and *symtab.Table span every unit, and one *codegen.Context owns
// the single IR module they all emit into.
type Pipeline struct {
	Ctx    *codegen.Context
	Table  *symtab.Table
	Reg    *resotype.Registry
	parser *sitter.Parser
	log    *log.Logger
}

// New builds a Pipeline for cfg. language is the external grammar's
// compiled tree-sitter language — nil is accepted so the pipeline can be exercised
// in tests against pre-built parsetree.Node values without a real
// grammar linked in. Diagnostics and phase-transition logging go to
// logOut.
func New(cfg Config, language *sitter.Language, logOut io.Writer) *Pipeline {
	reg := resotype.NewRegistry(cfg.PointerBits)
	table := symtab.NewTable("<module>")
	ctx := codegen.NewContextWithHooks(moduleName(cfg), reg, table, cfg.Hooks)
	ctx.Module.TargetTriple = cfg.TargetTriple

	parser := sitter.NewParser()
	if language != nil {
		parser.SetLanguage(language)
	}
	if logOut == nil {
		logOut = os.Stderr
	}
	return &Pipeline{Ctx: ctx, Table: table, Reg: reg, parser: parser, log: log.New(logOut, "", 0)}
}

func moduleName(cfg Config) string {
	if cfg.Output != "" {
		return cfg.Output
	}
	return "module"
}

// Build runs unit discovery, parses every unit, then the three
// registration/emission passes in phase order: every unit's
// function and resource signatures register before any unit's
// resource declarations, which register before any unit's bodies
// emit. A panic from an "impossible state" internal invariant
// is caught per top-level declaration so one malformed subtree cannot
// abort its siblings, let alone other units.
func (p *Pipeline) Build(roots []string) (*Result, error) {
	paths, err := DiscoverUnits(roots)
	if err != nil {
		return nil, err
	}
	p.log.Printf("INFO: discovered %d compilation unit(s)", len(paths))

	units, trees, err := p.parseUnits(paths)
	defer func() {
		for _, t := range trees {
			t.Close()
		}
	}()
	if err != nil {
		return nil, err
	}

	p.log.Printf("INFO: pass 1: registering function signatures")
	funcOK := make(map[*parsetree.File]map[string]bool, len(units))
	for _, u := range units {
		funcOK[u] = make(map[string]bool)
		for _, fn := range u.Functions() {
			name := parsetree.FuncName(fn)
			funcOK[u][name] = p.step(u.Path, func() bool {
				return p.Ctx.RegisterFunctionSignature(u.Path, fn)
			})
		}
	}

	p.log.Printf("INFO: pass 2: registering resource and built-in types")
	p.step("<builtin>", func() bool { return p.Ctx.RegisterBuiltins("<builtin>") })
	resOK := make(map[*parsetree.File]map[string]bool, len(units))
	for _, u := range units {
		resOK[u] = make(map[string]bool)
		for _, res := range u.Resources() {
			name := parsetree.ResourceName(res)
			resOK[u][name] = p.step(u.Path, func() bool {
				return p.Ctx.RegisterResourceSignature(u.Path, res)
			})
		}
	}
	for _, u := range units {
		for _, res := range u.Resources() {
			name := parsetree.ResourceName(res)
			if !resOK[u][name] {
				continue
			}
			resOK[u][name] = p.step(u.Path, func() bool {
				return p.Ctx.RegisterResourceDecl(u.Path, res)
			})
		}
	}

	p.log.Printf("INFO: pass 3: emitting function and method bodies")
	for _, u := range units {
		p.Ctx.PushAccessFile(u.Path)
		for _, fn := range u.Functions() {
			name := parsetree.FuncName(fn)
			if !funcOK[u][name] {
				continue
			}
			sym, err := p.Table.LookupFunction(name, u.Path)
			if err != nil {
				continue
			}
			p.step(u.Path, func() bool { return p.Ctx.LowerFunctionBody(fn, sym) })
		}
		p.Ctx.PopAccessFile()

		for _, res := range u.Resources() {
			name := parsetree.ResourceName(res)
			if !resOK[u][name] {
				continue
			}
			p.step(u.Path, func() bool { return p.Ctx.EmitResourceMethods(u.Path, res) })
		}
	}

	failed := p.Ctx.Diag.Failed()
	if failed {
		p.log.Printf("WARN: compilation finished with errors")
	} else {
		p.log.Printf("INFO: compilation finished successfully")
	}
	return &Result{Module: p.Ctx.Module, Diagnostics: p.Ctx.Diag.Entries(), Failed: failed}, nil
}

// parseUnits reads and parses every path in order, returning the
// adapted parsetree.File for each alongside the underlying *sitter.Tree
// the caller must Close once done (the Node values borrow its memory).
func (p *Pipeline) parseUnits(paths []string) ([]*parsetree.File, []*sitter.Tree, error) {
	units := make([]*parsetree.File, 0, len(paths))
	trees := make([]*sitter.Tree, 0, len(paths))
	for _, path := range paths {
		src, err := os.ReadFile(path)
		if err != nil {
			return units, trees, wrap(ErrIO, "cannot read "+path, err)
		}
		tree, err := p.parser.ParseCtx(context.Background(), nil, src)
		if err != nil || tree == nil {
			return units, trees, wrap(ErrParseFailed, "failed to parse "+path, err)
		}
		trees = append(trees, tree)
		units = append(units, parsetree.NewFile(parsetree.Wrap(tree.RootNode(), src), path))
	}
	return units, trees, nil
}

// step runs one registration/emission call, recovering an
// InternalInvariant-class panic into a reported diagnostic instead of
// letting it unwind past the unit boundary.
func (p *Pipeline) step(file string, fn func() bool) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			p.Ctx.Diag.Report(codegen.ErrInternalInvariant, 0, 0, "%s: internal error: %v", file, r)
			p.log.Printf("WARN: %s: internal error: %v", file, r)
			ok = false
		}
	}()
	return fn()
}
