package resolve

import (
	"testing"

	"github.com/tailslide/tailslide-go/internal/arena"
	"github.com/tailslide/tailslide-go/internal/ast"
	"github.com/tailslide/tailslide-go/internal/compiler"
	"github.com/tailslide/tailslide-go/internal/config"
	"github.com/tailslide/tailslide-go/internal/diagnostics"
	"github.com/tailslide/tailslide-go/internal/symbols"
	"github.com/tailslide/tailslide-go/internal/token"
	"github.com/tailslide/tailslide-go/internal/types"
)

func rng() token.Range { return token.Range{} }

func newCtx(script *ast.Node) *compiler.CompileContext {
	root := symbols.NewTable(nil)
	symbols.RegisterBuiltins(root)
	return &compiler.CompileContext{
		Script:      script,
		Symbols:     root,
		Arena:       arena.New(),
		Diagnostics: diagnostics.NewLogger(),
		Options:     config.Default(),
	}
}

func simpleFunction(body *ast.Node) *ast.Node {
	return ast.NewGlobalFunction(
		ast.NewIdentifier("f", types.NULL, rng()),
		ast.NewFunctionDec(nil, rng()),
		body,
		rng(),
	)
}

func TestResolveUndeclaredIdentifier(t *testing.T) {
	ref := ast.NewLValueExpression(ast.NewIdentifier("missing", types.NULL, rng()), nil, rng())
	body := ast.NewCompoundStatement([]*ast.Node{ast.NewExpressionStatement(ref, rng())}, rng())
	script := ast.NewScript([]*ast.Node{simpleFunction(body)}, nil, rng())

	ctx := newCtx(script)
	Processor{}.Process(ctx)

	if !ctx.Diagnostics.HasErrors() {
		t.Fatal("expected an undeclared-identifier error")
	}
	if got := ctx.Diagnostics.Errors()[0].Code; got != diagnostics.ErrUndeclaredIdentifier {
		t.Errorf("got code %s, want %s", got, diagnostics.ErrUndeclaredIdentifier)
	}
}

func TestResolveGlobalVariableReference(t *testing.T) {
	global := ast.NewGlobalVariable(ast.NewIdentifier("counter", types.INTEGER, rng()), ast.NullNode(rng()), rng())

	ref := ast.NewLValueExpression(ast.NewIdentifier("counter", types.NULL, rng()), nil, rng())
	body := ast.NewCompoundStatement([]*ast.Node{ast.NewExpressionStatement(ref, rng())}, rng())
	script := ast.NewScript([]*ast.Node{global, simpleFunction(body)}, nil, rng())

	ctx := newCtx(script)
	Processor{}.Process(ctx)

	if ctx.Diagnostics.HasErrors() {
		t.Fatalf("unexpected errors: %v", ctx.Diagnostics.Errors())
	}
	innerID := ref.Child(0)
	if innerID.Symbol == nil || innerID.Symbol.Name != "counter" {
		t.Fatal("reference should resolve to the global variable's symbol")
	}
	if innerID.Symbol.References() != 1 {
		t.Errorf("References() = %d, want 1", innerID.Symbol.References())
	}
}

func TestResolveForwardJumpWithinSameBody(t *testing.T) {
	jump := ast.NewJumpStatement(ast.NewIdentifier("done", types.NULL, rng()), rng())
	label := ast.NewLabel(ast.NewIdentifier("done", types.NULL, rng()), rng())
	body := ast.NewCompoundStatement([]*ast.Node{jump, label}, rng())
	script := ast.NewScript([]*ast.Node{simpleFunction(body)}, nil, rng())

	ctx := newCtx(script)
	Processor{}.Process(ctx)

	if ctx.Diagnostics.HasErrors() {
		t.Fatalf("unexpected errors: %v", ctx.Diagnostics.Errors())
	}
	if jump.Child(0).Symbol == nil {
		t.Error("a jump to a label declared later in the same body should resolve")
	}
}

func TestResolveUndeclaredLabel(t *testing.T) {
	jump := ast.NewJumpStatement(ast.NewIdentifier("nowhere", types.NULL, rng()), rng())
	body := ast.NewCompoundStatement([]*ast.Node{jump}, rng())
	script := ast.NewScript([]*ast.Node{simpleFunction(body)}, nil, rng())

	ctx := newCtx(script)
	Processor{}.Process(ctx)

	if !ctx.Diagnostics.HasErrors() {
		t.Fatal("expected an undeclared-label error")
	}
	if got := ctx.Diagnostics.Errors()[0].Code; got != diagnostics.ErrUndeclaredLabel {
		t.Errorf("got code %s, want %s", got, diagnostics.ErrUndeclaredLabel)
	}
}

func TestResolveDuplicateLabelCleanMode(t *testing.T) {
	label1 := ast.NewLabel(ast.NewIdentifier("here", types.NULL, rng()), rng())
	label2 := ast.NewLabel(ast.NewIdentifier("here", types.NULL, rng()), rng())
	body := ast.NewCompoundStatement([]*ast.Node{label1, label2}, rng())
	script := ast.NewScript([]*ast.Node{simpleFunction(body)}, nil, rng())

	ctx := newCtx(script)
	ctx.Options.JumpMode = config.JumpClean
	Processor{}.Process(ctx)

	if !ctx.Diagnostics.HasErrors() {
		t.Fatal("expected a duplicate-label error under clean jump semantics")
	}
}

func TestResolveUnknownFunctionCall(t *testing.T) {
	call := ast.NewFunctionExpression(ast.NewIdentifier("nope", types.NULL, rng()), nil, rng())
	body := ast.NewCompoundStatement([]*ast.Node{ast.NewExpressionStatement(call, rng())}, rng())
	script := ast.NewScript([]*ast.Node{simpleFunction(body)}, nil, rng())

	ctx := newCtx(script)
	Processor{}.Process(ctx)

	if !ctx.Diagnostics.HasErrors() {
		t.Fatal("expected an unknown-function error")
	}
	if got := ctx.Diagnostics.Errors()[0].Code; got != diagnostics.ErrUnknownFunction {
		t.Errorf("got code %s, want %s", got, diagnostics.ErrUnknownFunction)
	}
}

func TestResolveStateStatementDefaultAlwaysValid(t *testing.T) {
	stmt := ast.NewStateStatement("default", rng())
	body := ast.NewCompoundStatement([]*ast.Node{stmt}, rng())
	script := ast.NewScript([]*ast.Node{simpleFunction(body)}, nil, rng())

	ctx := newCtx(script)
	Processor{}.Process(ctx)

	if ctx.Diagnostics.HasErrors() {
		t.Fatalf("state-change to \"default\" should never error: %v", ctx.Diagnostics.Errors())
	}
}

func TestResolveEventHandlerWrongArity(t *testing.T) {
	body := ast.NewCompoundStatement(nil, rng())
	dec := ast.NewEventDec([]*ast.Node{
		ast.NewIdentifier("total_number", types.INTEGER, rng()),
		ast.NewIdentifier("extra", types.INTEGER, rng()),
	}, rng())
	handler := ast.NewEventHandler(ast.NewIdentifier("touch_start", types.NULL, rng()), dec, body, rng())
	state := ast.NewState(ast.NewIdentifier("default", types.NULL, rng()), []*ast.Node{handler}, rng())
	script := ast.NewScript(nil, []*ast.Node{state}, rng())

	ctx := newCtx(script)
	Processor{}.Process(ctx)

	if !ctx.Diagnostics.HasErrors() {
		t.Fatal("expected a too-many-arguments error for touch_start(integer, integer)")
	}
	if got := ctx.Diagnostics.Errors()[0].Code; got != diagnostics.ErrTooManyEventArguments {
		t.Errorf("got code %s, want %s", got, diagnostics.ErrTooManyEventArguments)
	}
}

func TestResolveEventHandlerWrongType(t *testing.T) {
	body := ast.NewCompoundStatement(nil, rng())
	dec := ast.NewEventDec([]*ast.Node{
		ast.NewIdentifier("total_number", types.STRING, rng()),
	}, rng())
	handler := ast.NewEventHandler(ast.NewIdentifier("touch_start", types.NULL, rng()), dec, body, rng())
	state := ast.NewState(ast.NewIdentifier("default", types.NULL, rng()), []*ast.Node{handler}, rng())
	script := ast.NewScript(nil, []*ast.Node{state}, rng())

	ctx := newCtx(script)
	Processor{}.Process(ctx)

	if !ctx.Diagnostics.HasErrors() {
		t.Fatal("expected a wrong-type error for touch_start(string)")
	}
	if got := ctx.Diagnostics.Errors()[0].Code; got != diagnostics.ErrWrongArgumentTypeEvent {
		t.Errorf("got code %s, want %s", got, diagnostics.ErrWrongArgumentTypeEvent)
	}
}

func TestResolveStateStatementUnknownState(t *testing.T) {
	stmt := ast.NewStateStatement("nonexistent", rng())
	body := ast.NewCompoundStatement([]*ast.Node{stmt}, rng())
	script := ast.NewScript([]*ast.Node{simpleFunction(body)}, nil, rng())

	ctx := newCtx(script)
	Processor{}.Process(ctx)

	if !ctx.Diagnostics.HasErrors() {
		t.Fatal("expected a state-not-found error")
	}
}
