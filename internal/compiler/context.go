// Package compiler is the driver contract: the
// CompileContext every pass reads and writes, the Pipeline/Processor
// convention passes plug into, and the Parser/Emitter interfaces the
// surrounding tool (lexer/parser front end, bytecode back end) is
// expected to satisfy. Nothing outside this package parses source text
// or emits bytecode; those are the caller's job.
package compiler

import (
	"github.com/tailslide/tailslide-go/internal/arena"
	"github.com/tailslide/tailslide-go/internal/ast"
	"github.com/tailslide/tailslide-go/internal/config"
	"github.com/tailslide/tailslide-go/internal/diagnostics"
	"github.com/tailslide/tailslide-go/internal/symbols"
)

// CompileContext carries one script's compilation state through the
// pipeline: built once from
// source text, threaded through every Processor, read back by the
// caller once the pipeline returns.
type CompileContext struct {
	// File is the source path, used only for diagnostic messages and
	// multi-file host tooling; this package never opens it.
	File   string
	Source string

	// Script is the AST root once a Parser has populated it. Nil until
	// then, and passes must treat a nil Script as "nothing to do" rather
	// than panic.
	Script *ast.Node

	// Symbols is the root scope, seeded with builtins before resolution
	// runs.
	Symbols *symbols.Table

	// Arena owns every node/symbol allocated for this compilation.
	Arena *arena.Arena

	// Diagnostics accumulates every error and warning raised by every
	// pass; passes never abort the pipeline on error.
	Diagnostics *diagnostics.Logger

	// Options controls which optimizer passes run and how aggressively.
	Options *config.OptimizerOptions

	// Iterations records how many optimizer driver rounds actually ran,
	// for tooling/diagnostics that want to report convergence.
	Iterations int
}

// NewCompileContext builds a fresh context for compiling source from
// file, with a builtin-seeded root symbol table and default optimizer
// options. A Parser populates Script; everything else is ready to use.
func NewCompileContext(file, source string) *CompileContext {
	a := arena.New()
	root := symbols.NewTable(nil)
	symbols.RegisterBuiltins(root)
	return &CompileContext{
		File:        file,
		Source:      source,
		Symbols:     root,
		Arena:       a,
		Diagnostics: diagnostics.NewLogger(),
		Options:     config.Default(),
	}
}

// HasErrors reports whether any pass so far has raised a SeverityError
// diagnostic.
func (c *CompileContext) HasErrors() bool { return c.Diagnostics.HasErrors() }
