// Package typecheck is static type inference and checking: a post-order
// walk that determines every expression's Type,
// validates coercions and operator legality against the fixed lattice
// in package types, and enforces the "all paths return" rule on
// non-void functions. A type error poisons the offending node to types.ERROR
// rather than aborting, so later passes and a single compile's
// diagnostics see the whole script, not just the first mistake.
package typecheck

import (
	"github.com/tailslide/tailslide-go/internal/ast"
	"github.com/tailslide/tailslide-go/internal/compiler"
	"github.com/tailslide/tailslide-go/internal/diagnostics"
	"github.com/tailslide/tailslide-go/internal/types"
)

// Processor runs typechecking over a CompileContext's script.
type Processor struct{}

func (Processor) Process(ctx *compiler.CompileContext) *compiler.CompileContext {
	if ctx.Script == nil {
		return ctx
	}
	c := &checker{file: ctx.File, diags: ctx.Diagnostics}
	for _, child := range ctx.Script.Children {
		c.checkTop(child)
	}
	return ctx
}

type checker struct {
	file  string
	diags *diagnostics.Logger

	// returnType is the enclosing function/event's declared return type,
	// consulted by return-statement checks; event handlers are always
	// types.NULL.
	returnType types.IType
}

func (c *checker) checkTop(n *ast.Node) {
	if n == nil || n.IsNull() {
		return
	}
	switch n.Kind {
	case ast.KindGlobalVariable:
		c.checkGlobalVariable(n)
	case ast.KindGlobalFunction:
		c.checkFunction(n)
	case ast.KindState:
		for _, h := range n.Children[1:] {
			c.checkEventHandler(h)
		}
	}
}

func (c *checker) checkGlobalVariable(n *ast.Node) {
	id := n.Child(0)
	init := n.Child(1)
	if init.IsNull() {
		return
	}
	c.checkExpr(init)
	if !types.CanCoerce(init.Type, id.Type) {
		c.diags.Errorf(diagnostics.ErrTypeMismatch, c.file, init.Range,
			"cannot initialize %s %q with %s value", id.Type, id.Name, init.Type)
	}
}

func (c *checker) checkFunction(n *ast.Node) {
	id := n.Child(0)
	body := n.Child(2)

	prevReturn := c.returnType
	c.returnType = id.Type
	c.checkStatement(body)
	c.returnType = prevReturn

	if id.Type != types.NULL && !allReturn(body) {
		c.diags.Errorf(diagnostics.ErrMissingReturn, c.file, id.Range,
			"not all control paths of %q return a value", id.Name)
	}
}

func (c *checker) checkEventHandler(n *ast.Node) {
	body := n.Child(2)
	prevReturn := c.returnType
	c.returnType = types.NULL
	c.checkStatement(body)
	c.returnType = prevReturn
}

// allReturn reports whether every control path through stmt ends in a
// return statement: a bare return
// statement always satisfies it; an if-statement satisfies it only when
// both branches do; a compound statement satisfies it if any statement
// inside does (a return makes everything after it dead; no pass warns
// about that dead code). Loops never unconditionally return, since their
// bodies may not execute at all.
func allReturn(n *ast.Node) bool {
	if n == nil || n.IsNull() {
		return false
	}
	if n.Kind != ast.KindStatement {
		return false
	}
	switch n.SubKind {
	case ast.SubReturnStatement:
		return true
	case ast.SubIfStatement:
		return allReturn(n.Child(1)) && allReturn(n.Child(2))
	case ast.SubCompoundStatement:
		for _, s := range n.Children {
			if allReturn(s) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func (c *checker) checkStatement(n *ast.Node) {
	if n == nil || n.IsNull() {
		return
	}
	switch n.SubKind {
	case ast.SubCompoundStatement:
		for _, s := range n.Children {
			c.checkStatement(s)
		}

	case ast.SubDeclaration:
		id := n.Child(0)
		init := n.Child(1)
		if !init.IsNull() {
			c.checkExpr(init)
			if !types.CanCoerce(init.Type, id.Type) {
				c.diags.Errorf(diagnostics.ErrTypeMismatch, c.file, init.Range,
					"cannot initialize %s %q with %s value", id.Type, id.Name, init.Type)
			}
		}

	case ast.SubExpressionStatement:
		c.checkExpr(n.Child(0))

	case ast.SubReturnStatement:
		expr := n.Child(0)
		if expr.IsNull() {
			if c.returnType != types.NULL {
				c.diags.Errorf(diagnostics.ErrMissingReturn, c.file, n.Range,
					"function expects a %s return value", c.returnType)
			}
			return
		}
		c.checkExpr(expr)
		if c.returnType == types.NULL {
			c.diags.Errorf(diagnostics.ErrVoidInExpression, c.file, expr.Range,
				"event handlers and void functions cannot return a value")
		} else if !types.CanCoerce(expr.Type, c.returnType) {
			c.diags.Errorf(diagnostics.ErrTypeMismatch, c.file, expr.Range,
				"cannot return %s value from function returning %s", expr.Type, c.returnType)
		}

	case ast.SubIfStatement:
		cond := n.Child(0)
		c.checkExpr(cond)
		c.requireBoolish(cond)
		c.checkStatement(n.Child(1))
		c.checkStatement(n.Child(2))

	case ast.SubWhileStatement:
		cond := n.Child(0)
		c.checkExpr(cond)
		c.requireBoolish(cond)
		c.checkStatement(n.Child(1))

	case ast.SubDoStatement:
		c.checkStatement(n.Child(0))
		cond := n.Child(1)
		c.checkExpr(cond)
		c.requireBoolish(cond)

	case ast.SubForStatement:
		c.checkStatement(n.Child(0))
		cond := n.Child(1)
		if !cond.IsNull() {
			c.checkExpr(cond)
			c.requireBoolish(cond)
		}
		c.checkStatement(n.Child(2))
		c.checkStatement(n.Child(3))

	case ast.SubLabel, ast.SubJumpStatement, ast.SubNopStatement, ast.SubStateStatement:
		// nothing to typecheck
	}
}

// requireBoolish reports an error if cond's type cannot be used in a
// truth test. Every non-void primitive type can, per LSL's "anything
// truthy" semantics (nonzero number, non-null key, non-empty
// string/list, nonzero vector/quaternion); only types.NULL cannot.
func (c *checker) requireBoolish(cond *ast.Node) {
	if cond.Type == types.NULL {
		c.diags.Errorf(diagnostics.ErrVoidInExpression, c.file, cond.Range, "condition must have a value")
	}
}

func (c *checker) checkExpr(n *ast.Node) {
	if n == nil || n.IsNull() {
		return
	}
	switch n.SubKind {
	case ast.SubConstantExpression:
		// Type was set at construction from the folded constant.

	case ast.SubLValueExpression:
		id := n.Child(0)
		member := n.Child(1)
		if id.Symbol != nil {
			id.Type = id.Symbol.Type
		}
		if member.IsNull() {
			n.Type = id.Type
			return
		}
		switch member.Name {
		case "x", "y", "z":
			if id.Type != types.VECTOR && id.Type != types.QUATERNION {
				c.diags.Errorf(diagnostics.ErrInvalidOperands, c.file, n.Range,
					"%q has no member %q", id.Name, member.Name)
				n.Type = types.ERROR
				return
			}
		case "s":
			if id.Type != types.QUATERNION {
				c.diags.Errorf(diagnostics.ErrInvalidOperands, c.file, n.Range,
					"%q has no member %q", id.Name, member.Name)
				n.Type = types.ERROR
				return
			}
		}
		n.Type = types.FLOAT

	case ast.SubFunctionExpression:
		id := n.Child(0)
		args := n.Children[1:]
		for _, a := range args {
			c.checkExpr(a)
		}
		if id.Symbol == nil {
			n.Type = types.ERROR
			return
		}
		n.Type = id.Symbol.Type
		if len(args) != len(id.Symbol.ParamTypes) {
			c.diags.Errorf(diagnostics.ErrWrongArgumentCount, c.file, n.Range,
				"%q expects %d argument(s), got %d", id.Name, len(id.Symbol.ParamTypes), len(args))
			return
		}
		for i, a := range args {
			want := id.Symbol.ParamTypes[i]
			if !types.CanCoerce(a.Type, want) {
				c.diags.Errorf(diagnostics.ErrWrongArgumentType, c.file, a.Range,
					"argument %d of %q: cannot use %s as %s", i+1, id.Name, a.Type, want)
			}
		}

	case ast.SubVectorExpression, ast.SubQuaternionExpression:
		for _, comp := range n.Children {
			c.checkExpr(comp)
			if !types.CanCoerce(comp.Type, types.FLOAT) {
				c.diags.Errorf(diagnostics.ErrTypeMismatch, c.file, comp.Range,
					"vector/quaternion component must be numeric, got %s", comp.Type)
			}
		}

	case ast.SubListExpression:
		for _, item := range n.Children {
			c.checkExpr(item)
		}

	case ast.SubTypecastExpression:
		inner := n.Child(0)
		c.checkExpr(inner)
		if !types.CanExplicitCast(inner.Type, n.Type) {
			c.diags.Errorf(diagnostics.ErrInvalidCast, c.file, n.Range,
				"cannot cast %s to %s", inner.Type, n.Type)
			n.Type = types.ERROR
		}

	case ast.SubBoolConversionExpression:
		c.checkExpr(n.Child(0))

	case ast.SubPrintExpression:
		c.checkExpr(n.Child(0))

	case ast.SubParenthesisExpression:
		inner := n.Child(0)
		c.checkExpr(inner)
		n.Type = inner.Type

	case ast.SubBinaryExpression:
		left := n.Child(0)
		right := n.Child(1)
		c.checkExpr(left)
		c.checkExpr(right)
		if types.IsCompoundAssign(n.Op) || n.Op == types.OpAssign {
			if !left.IsNull() && !types.CanCoerce(right.Type, left.Type) {
				c.diags.Errorf(diagnostics.ErrTypeMismatch, c.file, n.Range,
					"cannot assign %s to %s", right.Type, left.Type)
				n.Type = types.ERROR
				return
			}
			n.Type = left.Type
			return
		}
		result, ok := types.ResultType(n.Op, left.Type, right.Type)
		if !ok {
			c.diags.Errorf(diagnostics.ErrInvalidOperands, c.file, n.Range,
				"invalid operands %s %s %s", left.Type, n.Op, right.Type)
		}
		n.Type = result

	case ast.SubUnaryExpression:
		operand := n.Child(0)
		c.checkExpr(operand)
		result, ok := types.UnaryResultType(n.Op, operand.Type)
		if !ok {
			c.diags.Errorf(diagnostics.ErrInvalidOperands, c.file, n.Range,
				"invalid operand %s for unary %s", operand.Type, n.Op)
		}
		n.Type = result
	}
}
