// Package desugar is the desugaring pass: rewrites
// compound assignment into explicit `lhs = lhs op rhs` form (except
// the int*=float/float*=int pair, which compiles to its own opcode and
// must stay compound), rewrites pre-increment/decrement into an
// explicit assignment, inserts explicit typecasts wherever an implicit
// coercion would otherwise cross a type boundary, and replaces
// references to builtin constants with literal constant/vector/
// quaternion expression nodes the bytecode emitter can serialize
// directly.
package desugar

import (
	"github.com/tailslide/tailslide-go/internal/arena"
	"github.com/tailslide/tailslide-go/internal/ast"
	"github.com/tailslide/tailslide-go/internal/compiler"
	"github.com/tailslide/tailslide-go/internal/symbols"
	"github.com/tailslide/tailslide-go/internal/types"
)

// Processor runs desugaring over a CompileContext's script.
type Processor struct{}

func (Processor) Process(ctx *compiler.CompileContext) *compiler.CompileContext {
	if ctx.Script == nil {
		return ctx
	}
	d := &desugarer{arena: ctx.Arena}
	for _, child := range ctx.Script.Children {
		d.top(child)
	}
	return ctx
}

type desugarer struct {
	arena *arena.Arena
}

func (d *desugarer) top(n *ast.Node) {
	if n == nil || n.IsNull() {
		return
	}
	switch n.Kind {
	case ast.KindGlobalVariable:
		d.maybeInjectCastChild(n, 1, n.Child(0).Type)
	case ast.KindGlobalFunction:
		d.statement(n.Child(2))
	case ast.KindState:
		for _, h := range n.Children[1:] {
			d.statement(h.Child(2))
		}
	}
}

func (d *desugarer) statement(n *ast.Node) {
	if n == nil || n.IsNull() {
		return
	}
	switch n.SubKind {
	case ast.SubCompoundStatement:
		for _, c := range n.Children {
			d.statement(c)
		}
	case ast.SubDeclaration:
		init := n.Child(1)
		if !init.IsNull() {
			d.expr(init)
			d.maybeInjectCastChild(n, 1, n.Child(0).Type)
		}
	case ast.SubExpressionStatement:
		d.expr(n.Child(0))
	case ast.SubReturnStatement:
		expr := n.Child(0)
		if !expr.IsNull() {
			d.expr(expr)
			if fn := enclosingFunction(n); fn != nil {
				d.maybeInjectCastChild(n, 0, fn.Child(0).Type)
			}
		}
	case ast.SubIfStatement:
		d.expr(n.Child(0))
		d.statement(n.Child(1))
		d.statement(n.Child(2))
	case ast.SubWhileStatement:
		d.expr(n.Child(0))
		d.statement(n.Child(1))
	case ast.SubDoStatement:
		d.statement(n.Child(0))
		d.expr(n.Child(1))
	case ast.SubForStatement:
		d.statement(n.Child(0))
		if !n.Child(1).IsNull() {
			d.expr(n.Child(1))
		}
		d.statement(n.Child(2))
		d.statement(n.Child(3))
	}
}

func enclosingFunction(n *ast.Node) *ast.Node {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur.Kind == ast.KindGlobalFunction {
			return cur
		}
	}
	return nil
}

// expr walks an expression bottom-up, performing every node-local
// desugaring transform and then descending into (possibly already
// rewritten) children, matching the original visitor's "return true to
// keep descending" default.
func (d *desugarer) expr(n *ast.Node) {
	if n == nil || n.IsNull() || n.Type == types.ERROR {
		return
	}

	switch n.SubKind {
	case ast.SubBinaryExpression:
		d.expr(n.Child(0))
		d.expr(n.Child(1))
		d.binary(n)
		return

	case ast.SubUnaryExpression:
		// The unary node itself may be replaced; desugar it first, then
		// continue into whatever replaced it.
		if replaced := d.unary(n); replaced != nil {
			d.expr(replaced)
			return
		}
		d.expr(n.Child(0))
		return

	case ast.SubFunctionExpression:
		id := n.Child(0)
		args := n.Children[1:]
		if id.Symbol != nil {
			for i, a := range args {
				d.expr(a)
				if i < len(id.Symbol.ParamTypes) {
					d.maybeInjectCastChild(n, i+1, id.Symbol.ParamTypes[i])
				}
			}
			return
		}
		for _, a := range args {
			d.expr(a)
		}
		return

	case ast.SubVectorExpression, ast.SubQuaternionExpression:
		for i := range n.Children {
			d.expr(n.Child(i))
			d.maybeInjectCastChild(n, i, types.FLOAT)
		}
		return

	case ast.SubLValueExpression:
		if replaced := d.builtinConstant(n); replaced != nil {
			return // replaced node needs no further descent of its own
		}

	case ast.SubListExpression, ast.SubParenthesisExpression, ast.SubTypecastExpression,
		ast.SubBoolConversionExpression, ast.SubPrintExpression:
		// fall through to generic child descent below
	}

	for _, c := range n.Children {
		d.expr(c)
	}
}

// binary decouples a compound-assignment node into `lhs = lhs op rhs`,
// except the int*float/float*int exception, and injects a cast around
// a plain assignment's right-hand side when the types differ.
func (d *desugarer) binary(n *ast.Node) {
	left := n.Child(0)
	right := n.Child(1)
	if left.Type == types.ERROR || right.Type == types.ERROR {
		return
	}

	decoupled, isCompound := types.Decouple(n.Op)
	if !isCompound {
		if n.Op == types.OpAssign {
			d.maybeInjectCastChild(n, 1, left.Type)
		}
		return
	}

	if decoupled == types.OpMul && (left.Type == types.INTEGER && right.Type == types.FLOAT ||
		left.Type == types.FLOAT && right.Type == types.INTEGER) {
		return
	}

	taken := n.TakeChild(1)
	newRight := d.arena.Track(ast.NewBinaryExpression(left.Clone(), decoupled, taken, n.Range))
	newRight.Type = n.Type
	n.SetChild(1, newRight)
	n.Op = types.OpAssign
}

// unary rewrites a pre-increment/decrement into `lhs = lhs + 1` (or
// `- 1`), returning the replacement assignment node it installed in n's
// place, or nil if n wasn't a pre-inc/dec (post-forms are not sugar).
func (d *desugarer) unary(n *ast.Node) (replacement *ast.Node) {
	if n.Type == types.ERROR {
		return nil
	}
	var op types.Op
	switch n.Op {
	case types.OpIncPre:
		op = types.OpAdd
	case types.OpDecPre:
		op = types.OpSub
	default:
		return nil
	}

	lvalue := n.TakeChild(0)
	lvalueCopy := lvalue.Clone()
	one := d.arena.Track(ast.NewConstantExpression(types.OneValue(lvalue.Type), n.Range))

	newRHS := d.arena.Track(ast.NewBinaryExpression(lvalueCopy, op, one, n.Range))
	newRHS.Type = n.Type

	assign := d.arena.Track(ast.NewBinaryExpression(lvalue, types.OpAssign, newRHS, n.Range))
	assign.Type = n.Type

	ast.ReplaceNode(n, assign)
	return assign
}

func (d *desugarer) maybeInjectCastChild(n *ast.Node, childIdx int, to types.IType) {
	child := n.Child(childIdx)
	if child == nil || child.IsNull() || child.Type == to || child.Type == types.ERROR {
		return
	}
	if !types.CanCoerce(child.Type, to) {
		return
	}
	taken := n.TakeChild(childIdx)
	cast := d.arena.Track(ast.NewTypecastExpression(to, taken, taken.Range))
	n.SetChild(childIdx, cast)
}

// builtinConstant replaces a reference to a builtin constant symbol
// (TRUE, PI, ZERO_VECTOR, ...) with a literal node the emitter
// serializes directly: a constant-expression for scalar types, but a
// vector/quaternion-expression (of constant float components) for
// VECTOR/QUATERNION, since the emitter's wire format distinguishes a
// literal composite from a (potentially non-constant) composite
// expression and expects builtins to look like the latter.
func (d *desugarer) builtinConstant(n *ast.Node) *ast.Node {
	id := n.Child(0)
	if id.Symbol == nil || id.Symbol.Kind != symbols.VARIABLE || id.Symbol.SubKind != symbols.BUILTIN {
		return nil
	}
	cv := n.Const
	if cv == nil {
		return nil
	}

	var replacement *ast.Node
	switch cv.Type {
	case types.VECTOR:
		x := d.arena.Track(ast.NewConstantExpression(types.FloatConstant(cv.Vec.X), n.Range))
		y := d.arena.Track(ast.NewConstantExpression(types.FloatConstant(cv.Vec.Y), n.Range))
		z := d.arena.Track(ast.NewConstantExpression(types.FloatConstant(cv.Vec.Z), n.Range))
		replacement = d.arena.Track(ast.NewVectorExpression(x, y, z, n.Range))
		replacement.SetConstantValue(cv)
	case types.QUATERNION:
		x := d.arena.Track(ast.NewConstantExpression(types.FloatConstant(cv.Quat.X), n.Range))
		y := d.arena.Track(ast.NewConstantExpression(types.FloatConstant(cv.Quat.Y), n.Range))
		z := d.arena.Track(ast.NewConstantExpression(types.FloatConstant(cv.Quat.Z), n.Range))
		s := d.arena.Track(ast.NewConstantExpression(types.FloatConstant(cv.Quat.S), n.Range))
		replacement = d.arena.Track(ast.NewQuaternionExpression(x, y, z, s, n.Range))
		replacement.SetConstantValue(cv)
	default:
		replacement = d.arena.Track(ast.NewConstantExpression(cv, n.Range))
	}
	ast.ReplaceNode(n, replacement)
	return replacement
}
