package optimizer

import (
	"github.com/tailslide/tailslide-go/internal/ast"
	"github.com/tailslide/tailslide-go/internal/compiler"
	"github.com/tailslide/tailslide-go/internal/config"
)

// prune drops every top-level declaration and every local variable
// declaration whose reference/assignment counts (as pass J just
// recounted them) are zero, for whichever categories opts enables. It
// reports whether it removed anything, the driver's only fixed-point
// signal for whether another round is worth running.
//
// The removal rule: a symbol with references==0 (and,
// for variables, assignments==0) has its declaration node dropped;
// pruning a function drops its parameters and body along with it since
// the whole GlobalFunction node goes.
func prune(ctx *compiler.CompileContext, opts *config.OptimizerOptions) bool {
	script := ctx.Script
	if script == nil || script.IsNull() {
		return false
	}
	changed := false

	kept := make([]*ast.Node, 0, len(script.Children))
	for _, top := range script.Children {
		switch top.Kind {
		case ast.KindGlobalVariable:
			if opts.PruneUnusedGlobals && isUnusedVariable(top.Child(0)) {
				changed = true
				continue
			}
		case ast.KindGlobalFunction:
			if opts.PruneUnusedFunctions && isUnusedFunction(top.Child(0)) {
				changed = true
				continue
			}
		}
		kept = append(kept, top)
	}
	script.SetChildren(kept)

	if opts.PruneUnusedLocals {
		for _, top := range script.Children {
			switch top.Kind {
			case ast.KindGlobalFunction:
				if pruneLocals(top.Child(2)) {
					changed = true
				}
			case ast.KindState:
				for _, h := range top.Children[1:] {
					if pruneLocals(h.Child(2)) {
						changed = true
					}
				}
			}
		}
	}

	return changed
}

func isUnusedVariable(id *ast.Node) bool {
	sym := id.Symbol
	return sym != nil && sym.References() == 0 && sym.Assignments() == 0
}

func isUnusedFunction(id *ast.Node) bool {
	sym := id.Symbol
	return sym != nil && sym.References() == 0
}

// pruneLocals removes unreferenced local declarations from n's subtree.
// A declaration sitting in a compound statement's list is spliced out
// outright; a declaration occupying a for-loop's fixed init slot is
// replaced with a no-op statement instead, since ForStatement always
// has exactly four children and SetChildren can't shrink that slot.
func pruneLocals(n *ast.Node) bool {
	if n == nil || n.IsNull() {
		return false
	}
	changed := false

	switch n.SubKind {
	case ast.SubCompoundStatement:
		kept := make([]*ast.Node, 0, len(n.Children))
		for _, c := range n.Children {
			if isUnreferencedDecl(c) {
				changed = true
				continue
			}
			if pruneLocals(c) {
				changed = true
			}
			kept = append(kept, c)
		}
		n.SetChildren(kept)

	case ast.SubIfStatement:
		if pruneLocals(n.Child(1)) {
			changed = true
		}
		if pruneLocals(n.Child(2)) {
			changed = true
		}

	case ast.SubWhileStatement:
		if pruneLocals(n.Child(1)) {
			changed = true
		}

	case ast.SubDoStatement:
		if pruneLocals(n.Child(0)) {
			changed = true
		}

	case ast.SubForStatement:
		if isUnreferencedDecl(n.Child(0)) {
			n.SetChild(0, ast.NewNopStatement(n.Child(0).Range))
			changed = true
		} else if pruneLocals(n.Child(0)) {
			changed = true
		}
		if pruneLocals(n.Child(3)) {
			changed = true
		}
	}

	return changed
}

func isUnreferencedDecl(c *ast.Node) bool {
	if c == nil || c.IsNull() || c.SubKind != ast.SubDeclaration {
		return false
	}
	sym := c.Child(0).Symbol
	return sym != nil && sym.References() == 0 && sym.Assignments() == 0
}
