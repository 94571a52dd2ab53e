// Package lint is the warning/bookkeeping pass: it
// recounts every symbol's references and assignments against the
// tree's current shape (desugaring may have cloned or removed
// lvalues since the last count), then raises the constant-condition,
// assignment-in-condition, duplicate-event-handler, and unused-symbol
// warnings.
package lint

import (
	"github.com/tailslide/tailslide-go/internal/ast"
	"github.com/tailslide/tailslide-go/internal/compiler"
	"github.com/tailslide/tailslide-go/internal/diagnostics"
	"github.com/tailslide/tailslide-go/internal/symbols"
	"github.com/tailslide/tailslide-go/internal/types"
)

// Processor runs the recount and warning pass over a CompileContext's
// script.
type Processor struct{}

func (Processor) Process(ctx *compiler.CompileContext) *compiler.CompileContext {
	if ctx.Script == nil {
		return ctx
	}
	l := &linter{file: ctx.File, diags: ctx.Diagnostics}

	ctx.Symbols.Root().Walk(func(s *symbols.Symbol) { s.ResetTracking() })
	for _, child := range ctx.Script.Children {
		l.top(child)
	}

	if ctx.Options != nil && ctx.Options.Lint {
		l.unusedSymbols(ctx.Symbols.Root())
	}
	return ctx
}

type linter struct {
	file  string
	diags *diagnostics.Logger
}

func (l *linter) top(n *ast.Node) {
	switch n.Kind {
	case ast.KindGlobalVariable:
		l.expr(n.Child(1))
	case ast.KindGlobalFunction:
		l.statement(n.Child(2))
	case ast.KindState:
		l.checkDuplicateHandlers(n)
		for _, h := range n.Children[1:] {
			l.statement(h.Child(2))
		}
	}
}

// checkDuplicateHandlers warns, on the LAST occurrence only, when a
// state declares the same event handler name more than once (the
// grammar permits it; only the final one the emitter would honor is
// flagged, matching the original's is_last-when-found-more-than-once
// rule).
func (l *linter) checkDuplicateHandlers(state *ast.Node) {
	handlers := state.Children[1:]
	counts := make(map[string]int)
	for _, h := range handlers {
		counts[h.Child(0).Name]++
	}
	for i, h := range handlers {
		name := h.Child(0).Name
		if counts[name] <= 1 {
			continue
		}
		isLast := true
		for _, other := range handlers[i+1:] {
			if other.Child(0).Name == name {
				isLast = false
				break
			}
		}
		if isLast {
			l.diags.Warnf(diagnostics.WarnMultipleEventHandler, l.file, h.Range,
				"multiple %q event handlers in this state, only the last is used", name)
		}
	}
}

func (l *linter) statement(n *ast.Node) {
	if n == nil || n.IsNull() {
		return
	}
	switch n.SubKind {
	case ast.SubCompoundStatement:
		for _, c := range n.Children {
			l.statement(c)
		}
	case ast.SubDeclaration:
		l.expr(n.Child(1))
	case ast.SubExpressionStatement:
		l.expr(n.Child(0))
	case ast.SubReturnStatement:
		l.expr(n.Child(0))
	case ast.SubIfStatement:
		l.checkCondition(n.Child(0))
		l.statement(n.Child(1))
		l.statement(n.Child(2))
	case ast.SubWhileStatement:
		l.checkCondition(n.Child(0))
		l.statement(n.Child(1))
	case ast.SubDoStatement:
		l.statement(n.Child(0))
		l.checkCondition(n.Child(1))
	case ast.SubForStatement:
		l.statement(n.Child(0))
		if !n.Child(1).IsNull() {
			l.checkCondition(n.Child(1))
		}
		l.statement(n.Child(2))
		l.statement(n.Child(3))
	}
}

// checkCondition raises always-true/always-false and
// assignment-in-condition warnings, then still recounts references
// inside the condition expression.
func (l *linter) checkCondition(cond *ast.Node) {
	if cond == nil || cond.IsNull() {
		return
	}
	if cond.Const != nil && cond.Const.Type == types.INTEGER {
		if cond.Const.Int != 0 {
			l.diags.Warnf(diagnostics.WarnConditionAlwaysTrue, l.file, cond.Range, "condition is always true")
		} else {
			l.diags.Warnf(diagnostics.WarnConditionAlwaysFalse, l.file, cond.Range, "condition is always false")
		}
	}
	if cond.SubKind == ast.SubBinaryExpression && cond.Op == types.OpAssign {
		l.diags.Warnf(diagnostics.WarnAssignmentInCond, l.file, cond.Range,
			"assignment used as a condition, did you mean ==?")
	}
	l.expr(cond)
}

// expr recounts every variable reference/assignment under n.
func (l *linter) expr(n *ast.Node) {
	if n == nil || n.IsNull() {
		return
	}
	switch n.SubKind {
	case ast.SubLValueExpression:
		id := n.Child(0)
		if id.Symbol != nil {
			id.Symbol.AddReference()
		}
		return

	case ast.SubFunctionExpression:
		id := n.Child(0)
		if id.Symbol != nil {
			id.Symbol.AddReference()
		}
		for _, a := range n.Children[1:] {
			l.expr(a)
		}
		return

	case ast.SubBinaryExpression:
		if n.Op == types.OpAssign || types.IsCompoundAssign(n.Op) {
			if lv := n.Child(0); lv.SubKind == ast.SubLValueExpression {
				if id := lv.Child(0); id.Symbol != nil {
					id.Symbol.AddAssignment()
				}
			}
		}
		if n.Op == types.OpAssign {
			l.expr(n.Child(1))
			return
		}

	case ast.SubUnaryExpression:
		switch n.Op {
		case types.OpIncPost, types.OpDecPost, types.OpIncPre, types.OpDecPre:
			if lv := n.Child(0); lv.SubKind == ast.SubLValueExpression {
				if id := lv.Child(0); id.Symbol != nil {
					id.Symbol.AddReference()
					id.Symbol.AddAssignment()
				}
			}
			return
		}
	}

	for _, c := range n.Children {
		l.expr(c)
	}
}

// unusedSymbols warns about every non-builtin variable or function
// that was declared but never read or written (variables) or never
// called (functions). Parameters are exempt: an unused parameter is
// extremely common (signature-mandated by an event) and not a useful
// warning on its own.
func (l *linter) unusedSymbols(root *symbols.Table) {
	root.Walk(func(s *symbols.Symbol) {
		if s.SubKind == symbols.BUILTIN || s.SubKind == symbols.FUNCTION_PARAMETER || s.SubKind == symbols.EVENT_PARAMETER {
			return
		}
		switch s.Kind {
		case symbols.VARIABLE:
			if s.References() == 0 && s.Assignments() == 0 {
				l.diags.Warnf(diagnostics.WarnUnusedVariable, l.file, s.Loc, "unused variable %q", s.Name)
			}
		case symbols.FUNCTION:
			if s.References() == 0 {
				l.diags.Warnf(diagnostics.WarnUnusedFunction, l.file, s.Loc, "unused function %q", s.Name)
			}
		}
	})
}
