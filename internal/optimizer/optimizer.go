// Package optimizer is the driver that runs every other
// pass to a fixed point: resolve, typecheck, fold, desugar, fold again,
// recount, then prune whatever the options enable. It repeats while
// pruning actually removed something, bounded at Options.MaxIterations
// so a pathological script can't loop forever, then mangles names (if
// enabled) and runs a final validation pass over the converged tree.
//
// No single pass in isolation runs to a fixed point this way — each
// one runs once per round — so the convergence loop itself lives here,
// expressed with the same Pipeline/Processor convention (package
// compiler) every other pass already implements.
package optimizer

import (
	"github.com/tailslide/tailslide-go/internal/compiler"
	"github.com/tailslide/tailslide-go/internal/config"
	"github.com/tailslide/tailslide-go/internal/constfold"
	"github.com/tailslide/tailslide-go/internal/desugar"
	"github.com/tailslide/tailslide-go/internal/lint"
	"github.com/tailslide/tailslide-go/internal/resolve"
	"github.com/tailslide/tailslide-go/internal/typecheck"
)

const defaultMaxIterations = 8

// Driver owns one instance of each pass Processor and runs them in the
// order component dependencies require. Passes are stateless, so a
// single Driver value can be reused across many compilations.
type Driver struct {
	resolve   compiler.Processor
	typecheck compiler.Processor
	fold      compiler.Processor
	desugar   compiler.Processor
	lint      compiler.Processor
}

// NewDriver wires the default pass implementations.
func NewDriver() *Driver {
	return &Driver{
		resolve:   resolve.Processor{},
		typecheck: typecheck.Processor{},
		fold:      constfold.Processor{},
		desugar:   desugar.Processor{},
		lint:      lint.Processor{},
	}
}

// Run drives ctx's script through resolve -> typecheck -> fold ->
// desugar -> fold -> recount -> prune, repeating while a round pruned
// something, then mangles and validates. It satisfies
// compiler.Processor so a caller can drop it straight into a Pipeline.
func (d *Driver) Run(ctx *compiler.CompileContext) *compiler.CompileContext {
	if ctx.Script == nil {
		return ctx
	}
	opts := ctx.Options
	if opts == nil {
		opts = config.Default()
	}
	maxIter := opts.MaxIterations
	if maxIter <= 0 {
		maxIter = defaultMaxIterations
	}
	pruningEnabled := opts.PruneUnusedLocals || opts.PruneUnusedGlobals || opts.PruneUnusedFunctions

	iter := 0
	for {
		iter++
		ctx.Iterations = iter

		d.resolve.Process(ctx)
		d.typecheck.Process(ctx)
		if opts.FoldConstants {
			d.fold.Process(ctx)
		}
		if opts.Desugar {
			d.desugar.Process(ctx)
			if opts.FoldConstants {
				d.fold.Process(ctx)
			}
		}
		d.lint.Process(ctx)

		pruned := false
		if pruningEnabled && !ctx.HasErrors() {
			pruned = prune(ctx, opts)
		}
		if !pruned || iter >= maxIter {
			break
		}
	}

	if opts.MangleNames {
		ctx.Symbols.Root().SetMangledNames()
	}
	validate(ctx)
	return ctx
}

// Process satisfies compiler.Processor.
func (d *Driver) Process(ctx *compiler.CompileContext) *compiler.CompileContext {
	return d.Run(ctx)
}
