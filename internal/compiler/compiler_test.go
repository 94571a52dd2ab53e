package compiler

import (
	"errors"
	"testing"

	"github.com/tailslide/tailslide-go/internal/ast"
	"github.com/tailslide/tailslide-go/internal/token"
)

func TestNewCompileContextSeedsBuiltinsAndDefaults(t *testing.T) {
	ctx := NewCompileContext("test.lsl", "default { state_entry() {} }")

	if ctx.File != "test.lsl" {
		t.Errorf("File = %q, want %q", ctx.File, "test.lsl")
	}
	if ctx.Script != nil {
		t.Error("Script should be nil until a Parser populates it")
	}
	if ctx.Symbols == nil {
		t.Fatal("Symbols should be seeded with a root table")
	}
	if ctx.Symbols.LookupLocal("TRUE", 0, true) == nil {
		t.Error("the root table should already have builtins registered")
	}
	if ctx.Arena == nil || ctx.Diagnostics == nil || ctx.Options == nil {
		t.Error("NewCompileContext should leave every other field ready to use")
	}
}

func TestHasErrorsDelegatesToDiagnostics(t *testing.T) {
	ctx := NewCompileContext("test.lsl", "")
	if ctx.HasErrors() {
		t.Fatal("a fresh context should report no errors")
	}
	ctx.Diagnostics.Errorf("E999", "test.lsl", token.Range{}, "boom")
	if !ctx.HasErrors() {
		t.Error("HasErrors should reflect a diagnostic added after construction")
	}
}

func TestPipelineRunsStagesInOrder(t *testing.T) {
	var order []string
	stage1 := ProcessorFunc(func(ctx *CompileContext) *CompileContext {
		order = append(order, "first")
		return ctx
	})
	stage2 := ProcessorFunc(func(ctx *CompileContext) *CompileContext {
		order = append(order, "second")
		return ctx
	})

	p := New(stage1, stage2)
	ctx := NewCompileContext("test.lsl", "")
	p.Run(ctx)

	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Fatalf("Pipeline should run stages in order, got %v", order)
	}
}

func TestPipelineDoesNotStopOnError(t *testing.T) {
	ran := false
	stage1 := ProcessorFunc(func(ctx *CompileContext) *CompileContext {
		ctx.Diagnostics.Errorf("E999", ctx.File, token.Range{}, "boom")
		return ctx
	})
	stage2 := ProcessorFunc(func(ctx *CompileContext) *CompileContext {
		ran = true
		return ctx
	})

	p := New(stage1, stage2)
	ctx := NewCompileContext("test.lsl", "")
	p.Run(ctx)

	if !ran {
		t.Error("a later stage should still run after an earlier one reports an error")
	}
	if !ctx.HasErrors() {
		t.Error("the error raised by stage1 should still be present after the pipeline finishes")
	}
}

func TestParserFuncAndEmitterFuncAdaptPlainFunctions(t *testing.T) {
	var p Parser = ParserFunc(func(ctx *CompileContext) (*ast.Node, error) {
		return ast.NewScript(nil, nil, token.Range{}), nil
	})
	ctx := NewCompileContext("test.lsl", "")
	script, err := p.Parse(ctx)
	if err != nil || script == nil {
		t.Fatalf("ParserFunc should adapt a plain function into a Parser, err=%v", err)
	}

	var e Emitter = EmitterFunc(func(ctx *CompileContext, script *ast.Node) ([]byte, error) {
		return nil, errors.New("no bytecode emitter in this module")
	})
	if _, err := e.Emit(ctx, script); err == nil {
		t.Error("EmitterFunc should adapt a plain function into an Emitter")
	}
}
