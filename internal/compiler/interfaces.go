package compiler

import "github.com/tailslide/tailslide-go/internal/ast"

// Parser is the external collaborator that turns source text into an
// AST this module's passes can resolve, typecheck, fold, desugar and
// optimize. No implementation ships in this module; a lexer/parser
// front end plugs in here.
type Parser interface {
	Parse(ctx *CompileContext) (*ast.Node, error)
}

// Emitter is the external collaborator that turns an optimized AST into
// bytecode (or any other target representation). No implementation
// ships in this module.
type Emitter interface {
	Emit(ctx *CompileContext, script *ast.Node) ([]byte, error)
}

// ParserFunc adapts a plain function to a Parser.
type ParserFunc func(ctx *CompileContext) (*ast.Node, error)

func (f ParserFunc) Parse(ctx *CompileContext) (*ast.Node, error) { return f(ctx) }

// EmitterFunc adapts a plain function to an Emitter.
type EmitterFunc func(ctx *CompileContext, script *ast.Node) ([]byte, error)

func (f EmitterFunc) Emit(ctx *CompileContext, script *ast.Node) ([]byte, error) {
	return f(ctx, script)
}
