// Package ast is the AST: a tagged-kind tree of nodes
// carrying parent/child links, a resolved type, a constant-value slot,
// and the synthesized/static/declaration-allowed flags every pass
// needs. Passes dispatch on Kind/SubKind (see Walk/Visitor for the
// generic traversal); children are stored as a slice with an explicit parent
// back-pointer rather than hand-rolled next/prev pointers (see
// DESIGN.md's Open Question resolution).
package ast

// Kind is the coarse node category.
type Kind int

const (
	KindNull Kind = iota
	KindScript
	KindIdentifier
	KindGlobalVariable
	KindGlobalConstant
	KindGlobalFunction
	KindFunctionDec
	KindEventDec
	KindState
	KindEventHandler
	KindStatement
	KindExpression
)

// SubKind refines Kind, mirroring LSLNodeSubType.
type SubKind int

const (
	SubNone SubKind = iota

	// constants
	SubIntegerConstant
	SubFloatConstant
	SubStringConstant
	SubKeyConstant
	SubVectorConstant
	SubQuaternionConstant
	SubListConstant

	// statements
	SubCompoundStatement
	SubNopStatement
	SubExpressionStatement
	SubReturnStatement
	SubLabel
	SubJumpStatement
	SubIfStatement
	SubForStatement
	SubDoStatement
	SubWhileStatement
	SubDeclaration
	SubStateStatement

	// expressions
	SubTypecastExpression
	SubBoolConversionExpression
	SubPrintExpression
	SubFunctionExpression
	SubVectorExpression
	SubQuaternionExpression
	SubListExpression
	SubLValueExpression
	SubBinaryExpression
	SubUnaryExpression
	SubParenthesisExpression
	SubConstantExpression
)

func (k Kind) String() string {
	names := [...]string{
		"null", "script", "identifier", "global-variable", "global-constant",
		"global-function", "function-dec", "event-dec", "state", "event-handler",
		"statement", "expression",
	}
	if int(k) < len(names) {
		return names[k]
	}
	return "?"
}

func (s SubKind) String() string {
	names := map[SubKind]string{
		SubNone:                     "none",
		SubIntegerConstant:          "integer-constant",
		SubFloatConstant:            "float-constant",
		SubStringConstant:           "string-constant",
		SubKeyConstant:              "key-constant",
		SubVectorConstant:           "vector-constant",
		SubQuaternionConstant:       "quaternion-constant",
		SubListConstant:             "list-constant",
		SubCompoundStatement:        "compound-statement",
		SubNopStatement:             "nop-statement",
		SubExpressionStatement:      "expression-statement",
		SubReturnStatement:          "return-statement",
		SubLabel:                    "label",
		SubJumpStatement:            "jump-statement",
		SubIfStatement:              "if-statement",
		SubForStatement:             "for-statement",
		SubDoStatement:              "do-statement",
		SubWhileStatement:           "while-statement",
		SubDeclaration:              "declaration",
		SubStateStatement:           "state-statement",
		SubTypecastExpression:       "typecast-expression",
		SubBoolConversionExpression: "bool-conversion-expression",
		SubPrintExpression:          "print-expression",
		SubFunctionExpression:       "function-expression",
		SubVectorExpression:         "vector-expression",
		SubQuaternionExpression:     "quaternion-expression",
		SubListExpression:           "list-expression",
		SubLValueExpression:         "lvalue-expression",
		SubBinaryExpression:         "binary-expression",
		SubUnaryExpression:          "unary-expression",
		SubParenthesisExpression:    "parenthesis-expression",
		SubConstantExpression:       "constant-expression",
	}
	if n, ok := names[s]; ok {
		return n
	}
	return "?"
}
