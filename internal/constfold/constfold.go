// Package constfold is constant propagation and folding:
// a gated post-order walk that determines every node's compile-time
// Const value when one exists, propagating through assignment,
// parenthesization, member extraction, and variable references whose
// symbol was never reassigned.
//
// A node whose Type is already types.ERROR can never have a constant
// value, so node() marks it precluded and skips its subtree — a
// type error never surfaces a spurious "could have been constant"
// downstream. A node flagged Static survives the invalidation that
// otherwise clears every non-constant node's value at the start of each
// re-run (the optimizer driver may run this pass more than once as
// other passes change the tree).
package constfold

import (
	"github.com/tailslide/tailslide-go/internal/ast"
	"github.com/tailslide/tailslide-go/internal/compiler"
	"github.com/tailslide/tailslide-go/internal/diagnostics"
	"github.com/tailslide/tailslide-go/internal/types"
)

// Processor runs constant propagation/folding over a CompileContext's
// script.
type Processor struct{}

func (Processor) Process(ctx *compiler.CompileContext) *compiler.CompileContext {
	if ctx.Script == nil {
		return ctx
	}
	f := &folder{ctx: ctx}
	f.script(ctx.Script)
	return ctx
}

type folder struct {
	ctx *compiler.CompileContext
}

// script replicates the original's special iteration order: every
// global variable's initializer is folded first (so a later global's
// initializer, or a function body, may reference an already-known
// constant), then function bodies and event handlers are folded.
func (f *folder) script(script *ast.Node) {
	for _, child := range script.Children {
		if child.Kind == ast.KindGlobalVariable {
			f.globalVariable(child)
		}
	}
	for _, child := range script.Children {
		switch child.Kind {
		case ast.KindGlobalFunction:
			f.node(child.Child(2))
		case ast.KindState:
			for _, h := range child.Children[1:] {
				f.node(h.Child(2))
			}
		}
	}
}

func (f *folder) globalVariable(n *ast.Node) {
	id := n.Child(0)
	init := n.Child(1)
	if !init.IsNull() {
		f.node(init)
	}
	if id.Symbol == nil {
		return
	}
	if init.IsNull() {
		id.Symbol.SetConstantValue(nil)
		return
	}
	id.Symbol.SetConstantValue(init.Const)
	id.Symbol.SetConstantPrecluded(init.ConstantPrecluded)
}

// node folds n and its subtree, applying the precluding gate before
// descending and deriving n's own Const after its children are done.
func (f *folder) node(n *ast.Node) {
	if n == nil || n.IsNull() {
		return
	}

	if !n.Static && n.SubKind != ast.SubConstantExpression {
		n.SetConstantValue(nil)
		n.ConstantPrecluded = false
	}
	if n.Type == types.ERROR {
		n.ConstantPrecluded = true
		return
	}

	switch n.SubKind {
	case ast.SubDeclaration:
		f.declaration(n)
		return
	case ast.SubLValueExpression:
		f.lvalue(n)
		return
	}

	for _, c := range n.Children {
		f.node(c)
	}

	switch n.SubKind {
	case ast.SubConstantExpression:
		// already carries its own Const from construction.
	case ast.SubParenthesisExpression:
		inner := n.Child(0)
		n.SetConstantValue(inner.Const)
		n.ConstantPrecluded = inner.ConstantPrecluded
	case ast.SubBinaryExpression:
		f.binary(n)
	case ast.SubUnaryExpression:
		f.unary(n)
	case ast.SubTypecastExpression:
		f.typecast(n)
	case ast.SubVectorExpression, ast.SubQuaternionExpression:
		var comps []float32
		for _, c := range n.Children {
			if c != nil && c.Const != nil {
				if v, ok := numeric(c.Const); ok {
					comps = append(comps, v)
				}
			}
		}
		switch {
		case n.SubKind == ast.SubVectorExpression && len(comps) == 3:
			n.SetConstantValue(types.VectorConstant(comps[0], comps[1], comps[2]))
		case n.SubKind == ast.SubQuaternionExpression && len(comps) == 4:
			n.SetConstantValue(types.QuaternionConstant(comps[0], comps[1], comps[2], comps[3]))
		}
	default:
		// function calls, list literals, print/bool-conversion
		// expressions: no constant value, but descending already folded
		// anything foldable inside. A vector/quaternion literal with a
		// non-constant or non-numeric component also stays unfolded.
	}
}

func (f *folder) declaration(n *ast.Node) {
	id := n.Child(0)
	init := n.Child(1)
	if !init.IsNull() {
		f.node(init)
	}
	if id.Symbol == nil {
		return
	}
	if init.IsNull() {
		id.Symbol.SetConstantValue(nil)
		return
	}
	id.Symbol.SetConstantValue(init.Const)
	id.Symbol.SetConstantPrecluded(init.ConstantPrecluded)
}

// lvalue propagates a variable's statically known constant value,
// provided the variable is never reassigned anywhere in the script
// (symbol.Assignments() == 0) — an assignment anywhere, even one this
// walk hasn't reached yet, makes the "constant" stale, so this pass
// depends on pass J's reference/assignment count already being current
// before it runs.
func (f *folder) lvalue(n *ast.Node) {
	id := n.Child(0)
	member := n.Child(1)
	if id.Symbol == nil {
		n.ConstantPrecluded = true
		return
	}
	if id.Symbol.Assignments() != 0 {
		return
	}
	cv := id.Symbol.ConstantValue()
	if cv == nil {
		n.ConstantPrecluded = id.Symbol.ConstantPrecluded()
		return
	}
	if member.IsNull() {
		n.SetConstantValue(cv)
		return
	}
	switch {
	case cv.Type == types.VECTOR:
		switch member.Name {
		case "x":
			n.SetConstantValue(types.FloatConstant(cv.Vec.X))
		case "y":
			n.SetConstantValue(types.FloatConstant(cv.Vec.Y))
		case "z":
			n.SetConstantValue(types.FloatConstant(cv.Vec.Z))
		}
	case cv.Type == types.QUATERNION:
		switch member.Name {
		case "x":
			n.SetConstantValue(types.FloatConstant(cv.Quat.X))
		case "y":
			n.SetConstantValue(types.FloatConstant(cv.Quat.Y))
		case "z":
			n.SetConstantValue(types.FloatConstant(cv.Quat.Z))
		case "s":
			n.SetConstantValue(types.FloatConstant(cv.Quat.S))
		}
	}
}

func (f *folder) binary(n *ast.Node) {
	left := n.Child(0)
	right := n.Child(1)

	if n.Op == types.OpAssign {
		n.SetConstantValue(right.Const)
		n.ConstantPrecluded = right.ConstantPrecluded
		return
	}
	if types.IsCompoundAssign(n.Op) {
		// compound assignment is never itself a constant expression; it
		// always has an observable side effect.
		return
	}
	if left.Const == nil || right.Const == nil {
		return
	}
	v, ok, divByZero := applyBinary(n.Op, left.Const, right.Const)
	if ok {
		n.SetConstantValue(v)
		return
	}
	if divByZero && f.ctx != nil {
		f.ctx.Diagnostics.Warnf(diagnostics.WarnDivisionByZero, f.ctx.File, n.Range,
			"division by zero; expression has no constant value")
	}
}

func (f *folder) unary(n *ast.Node) {
	operand := n.Child(0)
	if operand.Const == nil {
		return
	}
	switch n.Op {
	case types.OpIncPre, types.OpDecPre, types.OpIncPost, types.OpDecPost:
		// increment/decrement always mutates a variable; never constant.
		return
	}
	v, ok := applyUnary(n.Op, operand.Const)
	if ok {
		n.SetConstantValue(v)
	}
}

func (f *folder) typecast(n *ast.Node) {
	inner := n.Child(0)
	if inner.Const == nil {
		return
	}
	v, ok := applyCast(inner.Const, n.Type)
	if ok {
		n.SetConstantValue(v)
	}
}
