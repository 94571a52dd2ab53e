package optimizer

import (
	"github.com/tailslide/tailslide-go/internal/ast"
	"github.com/tailslide/tailslide-go/internal/compiler"
	"github.com/tailslide/tailslide-go/internal/diagnostics"
)

// validate runs the driver's final check over the converged tree:
// duplicate global names (the all-paths-return rule is not checked
// here; typecheck enforces it every round). It is reported, never auto-corrected
// — a script that still fails them after the optimizer loop is simply
// not emittable, and it's the caller's job to look at ctx.Diagnostics
// before handing the tree to a bytecode emitter. Report, don't recover.
func validate(ctx *compiler.CompileContext) {
	if ctx.Script == nil {
		return
	}
	checkDuplicateGlobals(ctx)
}

// checkDuplicateGlobals reports an error for top-level variable/function names
// declared more than once. Table.Define never rejects a redefinition
// (LookupLocal's "last wins" rule exists precisely so resolution can
// shadow forward references), so nothing upstream of this final pass
// ever reports the collision on its own.
func checkDuplicateGlobals(ctx *compiler.CompileContext) {
	seen := make(map[string]*ast.Node)
	for _, top := range ctx.Script.Children {
		var id *ast.Node
		switch top.Kind {
		case ast.KindGlobalVariable, ast.KindGlobalFunction:
			id = top.Child(0)
		default:
			continue
		}
		if id == nil || id.IsNull() {
			continue
		}
		if _, dup := seen[id.Name]; dup {
			ctx.Diagnostics.Errorf(diagnostics.ErrDuplicateGlobal, ctx.File, id.Range,
				"duplicate global declaration %q", id.Name)
			continue
		}
		seen[id.Name] = id
	}
}
