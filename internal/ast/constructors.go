package ast

import (
	"github.com/tailslide/tailslide-go/internal/token"
	"github.com/tailslide/tailslide-go/internal/types"
)

// The constructors below are the contract the (external) parser targets
// when building an AST for this core to consume: every
// node is already the right kind/subkind with source locations, and
// every expression starts untyped (types.NULL) except declared types
// on identifiers in declaration position, which the grammar already
// knows. They also double as the test-fixture builders this module's
// own tests use, since no parser ships in this module.

// Script is the AST root: the parser installs it with its direct
// children (globals, functions, default state, additional states)
// already attached.
func NewScript(globals []*Node, states []*Node, r token.Range) *Node {
	body := New(KindScript, SubNone, r)
	body.SetChildren(append(append([]*Node{}, globals...), states...))
	return body
}

// NewIdentifier builds an identifier node. declaredType is types.NULL
// for a reference (to be resolved) and the declared type for a
// declaration-position identifier (variable, parameter, function
// return type).
func NewIdentifier(name string, declaredType types.IType, r token.Range) *Node {
	n := New(KindIdentifier, SubNone, r)
	n.Name = name
	n.Type = declaredType
	return n
}

// NewGlobalVariable builds `type name = init;` (init may be NullNode).
func NewGlobalVariable(id, init *Node, r token.Range) *Node {
	return New(KindGlobalVariable, SubNone, r, id, init)
}

// NewFunctionDec builds a function/event prototype: its children are
// parameter Identifier nodes (each carrying its declared type).
func NewFunctionDec(params []*Node, r token.Range) *Node {
	n := New(KindFunctionDec, SubNone, r)
	n.SetChildren(params)
	return n
}

func NewEventDec(params []*Node, r token.Range) *Node {
	n := New(KindEventDec, SubNone, r)
	n.SetChildren(params)
	return n
}

// NewGlobalFunction builds `returnType name(params) { body }`.
func NewGlobalFunction(id, dec, body *Node, r token.Range) *Node {
	n := New(KindGlobalFunction, SubNone, r, id, dec, body)
	return n
}

// NewEventHandler builds `name(params) { body }` inside a state.
func NewEventHandler(id, dec, body *Node, r token.Range) *Node {
	return New(KindEventHandler, SubNone, r, id, dec, body)
}

// NewState builds `state name { handlers... }` (or the default state,
// whose identifier name is conventionally "default").
func NewState(id *Node, handlers []*Node, r token.Range) *Node {
	n := New(KindState, SubNone, r)
	n.SetChildren(append([]*Node{id}, handlers...))
	return n
}

// --- statements ---

func NewCompoundStatement(stmts []*Node, r token.Range) *Node {
	n := New(KindStatement, SubCompoundStatement, r)
	n.SetChildren(stmts)
	return n
}

func NewNopStatement(r token.Range) *Node {
	return New(KindStatement, SubNopStatement, r)
}

func NewExpressionStatement(expr *Node, r token.Range) *Node {
	return New(KindStatement, SubExpressionStatement, r, expr)
}

func NewReturnStatement(expr *Node, r token.Range) *Node {
	return New(KindStatement, SubReturnStatement, r, expr)
}

func NewLabel(id *Node, r token.Range) *Node {
	return New(KindStatement, SubLabel, r, id)
}

func NewJumpStatement(id *Node, r token.Range) *Node {
	return New(KindStatement, SubJumpStatement, r, id)
}

func NewIfStatement(cond, then, els *Node, r token.Range) *Node {
	if els == nil {
		els = NullNode(r)
	}
	return New(KindStatement, SubIfStatement, r, cond, then, els)
}

func NewWhileStatement(cond, body *Node, r token.Range) *Node {
	return New(KindStatement, SubWhileStatement, r, cond, body)
}

func NewDoStatement(body, cond *Node, r token.Range) *Node {
	return New(KindStatement, SubDoStatement, r, body, cond)
}

// NewForStatement models `for (init; cond; step) body`. init and step
// are expression-statement (or nop) nodes.
func NewForStatement(init, cond, step, body *Node, r token.Range) *Node {
	return New(KindStatement, SubForStatement, r, init, cond, step, body)
}

// NewDeclaration builds `type name = init;` as a local declaration
// (init may be NullNode).
func NewDeclaration(id, init *Node, r token.Range) *Node {
	return New(KindStatement, SubDeclaration, r, id, init)
}

func NewStateStatement(targetName string, r token.Range) *Node {
	n := New(KindStatement, SubStateStatement, r)
	n.Name = targetName
	return n
}

// --- expressions ---

func NewConstantExpression(c *types.Constant, r token.Range) *Node {
	n := New(KindExpression, SubConstantExpression, r)
	n.Type = c.Type
	n.SetConstantValue(c)
	return n
}

func NewTypecastExpression(to types.IType, expr *Node, r token.Range) *Node {
	n := New(KindExpression, SubTypecastExpression, r, expr)
	n.Type = to
	return n
}

func NewBoolConversionExpression(expr *Node, r token.Range) *Node {
	n := New(KindExpression, SubBoolConversionExpression, r, expr)
	n.Type = types.INTEGER
	return n
}

func NewPrintExpression(expr *Node, r token.Range) *Node {
	n := New(KindExpression, SubPrintExpression, r, expr)
	n.Type = types.NULL
	return n
}

// NewFunctionExpression builds a call: children are [identifier, args...].
func NewFunctionExpression(id *Node, args []*Node, r token.Range) *Node {
	n := New(KindExpression, SubFunctionExpression, r)
	n.SetChildren(append([]*Node{id}, args...))
	return n
}

func NewVectorExpression(x, y, z *Node, r token.Range) *Node {
	n := New(KindExpression, SubVectorExpression, r, x, y, z)
	n.Type = types.VECTOR
	return n
}

func NewQuaternionExpression(x, y, z, s *Node, r token.Range) *Node {
	n := New(KindExpression, SubQuaternionExpression, r, x, y, z, s)
	n.Type = types.QUATERNION
	return n
}

func NewListExpression(items []*Node, r token.Range) *Node {
	n := New(KindExpression, SubListExpression, r)
	n.SetChildren(items)
	n.Type = types.LIST
	return n
}

// NewLValueExpression builds a variable reference, optionally with a
// `.x`/`.y`/`.z`/`.s` member access (member is nil for a plain
// reference).
func NewLValueExpression(id, member *Node, r token.Range) *Node {
	if member == nil {
		member = NullNode(r)
	}
	return New(KindExpression, SubLValueExpression, r, id, member)
}

func NewBinaryExpression(left *Node, op types.Op, right *Node, r token.Range) *Node {
	n := New(KindExpression, SubBinaryExpression, r, left, right)
	n.Op = op
	return n
}

func NewUnaryExpression(op types.Op, operand *Node, r token.Range) *Node {
	n := New(KindExpression, SubUnaryExpression, r, operand)
	n.Op = op
	return n
}

func NewParenthesisExpression(inner *Node, r token.Range) *Node {
	return New(KindExpression, SubParenthesisExpression, r, inner)
}
