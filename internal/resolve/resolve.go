// Package resolve is symbol resolution: two phases per
// script — a global phase that hoists every global variable, function,
// and state declaration ahead of any function body, then a body phase
// that resolves every identifier reference inside each function/event
// body, deferring jump targets until the whole body has been walked so
// a jump may target a label declared later in the same body.
package resolve

import (
	"github.com/tailslide/tailslide-go/internal/arena"
	"github.com/tailslide/tailslide-go/internal/ast"
	"github.com/tailslide/tailslide-go/internal/compiler"
	"github.com/tailslide/tailslide-go/internal/config"
	"github.com/tailslide/tailslide-go/internal/diagnostics"
	"github.com/tailslide/tailslide-go/internal/symbols"
	"github.com/tailslide/tailslide-go/internal/types"
)

// Processor runs symbol resolution over a CompileContext's script,
// satisfying compiler.Processor.
type Processor struct{}

func (Processor) Process(ctx *compiler.CompileContext) *compiler.CompileContext {
	if ctx.Script == nil {
		return ctx
	}
	r := &resolver{
		file:  ctx.File,
		arena: ctx.Arena,
		diags: ctx.Diagnostics,
		opts:  ctx.Options,
	}
	r.resolveScript(ctx.Script, ctx.Symbols)
	return ctx
}

type resolver struct {
	file  string
	arena *arena.Arena
	diags *diagnostics.Logger
	opts  *config.OptimizerOptions

	pendingJumps []*ast.Node
	collected    []*ast.Node
}

// newScope allocates a fresh symbol table as a child of parent, tracks
// it in the arena, and installs it on node.
func (r *resolver) newScope(node *ast.Node, parent *symbols.Table) *symbols.Table {
	t := r.arena.TrackTable(symbols.NewTable(parent))
	node.SymbolTable = t
	return t
}

func (r *resolver) resolveScript(script *ast.Node, root *symbols.Table) {
	scriptTable := r.newScope(script, root)

	// Global phase: hoist every global variable, function, and state
	// declaration before any function body is resolved, so forward
	// references between globals and calls to functions declared later
	// in the file both work.
	for _, child := range script.Children {
		r.resolveGlobalHeader(child, scriptTable)
	}

	// Body phase: resolve every function body, event handler body, in
	// declaration order.
	for _, child := range script.Children {
		r.resolveBody(child)
	}
}

func (r *resolver) resolveGlobalHeader(n *ast.Node, scriptTable *symbols.Table) {
	if n == nil || n.IsNull() {
		return
	}
	switch n.Kind {
	case ast.KindGlobalVariable:
		// Resolve the initializer before defining the identifier, so
		// `string foo = foo;` correctly reports foo as undeclared on the
		// right-hand side.
		r.resolveExpr(n.Child(1))
		id := n.Child(0)
		sym := &symbols.Symbol{Name: id.Name, Type: id.Type, Kind: symbols.VARIABLE, SubKind: symbols.GLOBAL, Loc: id.Range}
		id.Symbol = sym
		scriptTable.Define(sym)

	case ast.KindGlobalFunction:
		id := n.Child(0)
		dec := n.Child(1)
		paramTypes, paramNames := paramSignature(dec)
		sym := &symbols.Symbol{
			Name: id.Name, Type: id.Type, Kind: symbols.FUNCTION, SubKind: symbols.GLOBAL, Loc: id.Range,
			ParamTypes: paramTypes, ParamNames: paramNames,
		}
		id.Symbol = sym
		scriptTable.Define(sym)
		// This function's own scope (for its parameters and body) is
		// created lazily in resolveBody; nothing else descends here.

	case ast.KindState:
		id := n.Child(0)
		sym := &symbols.Symbol{Name: id.Name, Type: id.Type, Kind: symbols.STATE, SubKind: symbols.GLOBAL, Loc: id.Range}
		id.Symbol = sym
		scriptTable.Define(sym)
		// States open their own scope so each event handler inside gets a
		// home for its EVENT symbol, even though states rarely declare
		// anything else directly.
		r.newScope(n, scriptTable)
	}
}

func paramSignature(dec *ast.Node) ([]types.IType, []string) {
	if dec == nil || dec.IsNull() {
		return nil, nil
	}
	paramTypes := make([]types.IType, 0, len(dec.Children))
	names := make([]string, 0, len(dec.Children))
	for _, p := range dec.Children {
		paramTypes = append(paramTypes, p.Type)
		names = append(names, p.Name)
	}
	return paramTypes, names
}

func (r *resolver) resolveBody(n *ast.Node) {
	if n == nil || n.IsNull() {
		return
	}
	switch n.Kind {
	case ast.KindGlobalFunction:
		id := n.Child(0)
		funcTable := r.newScope(n, n.Root().SymbolTable)
		r.registerParams(n.Child(1), funcTable, symbols.FUNCTION_PARAMETER)
		_ = id
		r.pendingJumps = nil
		r.collected = nil
		r.walkBody(n.Child(2))
		r.resolvePendingJumps()

	case ast.KindState:
		stateTable := n.SymbolTable
		for _, h := range n.Children[1:] {
			r.resolveEventHandler(h, stateTable)
		}
	}
}

func (r *resolver) resolveEventHandler(n *ast.Node, stateTable *symbols.Table) {
	id := n.Child(0)
	evSym := stateTable.Root().Lookup(id.Name, symbols.EVENT, false)
	if evSym == nil {
		r.diags.Errorf(diagnostics.ErrUnknownEvent, r.file, id.Range, "unknown event %q", id.Name)
		return
	}
	handlerTable := r.newScope(n, stateTable)
	paramTypes, paramNames := paramSignature(n.Child(1))
	r.checkEventSignature(id, evSym, paramTypes)
	sym := &symbols.Symbol{
		Name: id.Name, Type: evSym.Type, Kind: symbols.EVENT, SubKind: symbols.BUILTIN, Loc: id.Range,
		ParamTypes: paramTypes, ParamNames: paramNames,
	}
	id.Symbol = sym
	stateTable.Define(sym)
	r.registerParams(n.Child(1), handlerTable, symbols.EVENT_PARAMETER)

	r.pendingJumps = nil
	r.collected = nil
	r.walkBody(n.Child(2))
	r.resolvePendingJumps()
}

// checkEventSignature compares a handler's declared parameter list
// against the builtin prototype's ParamTypes, raising a wrong-arity or
// wrong-type diagnostic per mismatch found. The handler's own types are
// already resolved by the time this runs, since paramTypes comes
// straight off the declaration's identifiers.
func (r *resolver) checkEventSignature(id *ast.Node, evSym *symbols.Symbol, paramTypes []types.IType) {
	want := evSym.ParamTypes
	if len(paramTypes) > len(want) {
		r.diags.Errorf(diagnostics.ErrTooManyEventArguments, r.file, id.Range,
			"event %q takes %d argument(s), handler declares %d", id.Name, len(want), len(paramTypes))
		return
	}
	if len(paramTypes) < len(want) {
		r.diags.Errorf(diagnostics.ErrTooFewEventArguments, r.file, id.Range,
			"event %q takes %d argument(s), handler declares %d", id.Name, len(want), len(paramTypes))
		return
	}
	for i, got := range paramTypes {
		if got != want[i] {
			r.diags.Errorf(diagnostics.ErrWrongArgumentTypeEvent, r.file, id.Range,
				"event %q parameter %d: expected %s, got %s", id.Name, i+1, want[i], got)
		}
	}
}

func (r *resolver) registerParams(dec *ast.Node, table *symbols.Table, sub symbols.SubKind) {
	if dec == nil || dec.IsNull() {
		return
	}
	for _, p := range dec.Children {
		sym := &symbols.Symbol{Name: p.Name, Type: p.Type, Kind: symbols.VARIABLE, SubKind: sub, Loc: p.Range}
		p.Symbol = sym
		table.Define(sym)
	}
}

// walkBody resolves every statement/expression in a function or event
// body, opening a nested scope for each compound statement so block
// locals can shadow outer declarations.
func (r *resolver) walkBody(n *ast.Node) {
	if n == nil || n.IsNull() {
		return
	}
	switch {
	case n.Kind == ast.KindStatement && n.SubKind == ast.SubCompoundStatement:
		parent := n.Parent.SymbolTable
		if parent == nil {
			parent = r.enclosingTable(n.Parent)
		}
		r.newScope(n, parent)
		for _, c := range n.Children {
			r.walkBody(c)
		}
		return

	case n.Kind == ast.KindStatement && n.SubKind == ast.SubDeclaration:
		r.resolveExpr(n.Child(1))
		id := n.Child(0)
		sym := &symbols.Symbol{Name: id.Name, Type: id.Type, Kind: symbols.VARIABLE, SubKind: symbols.LOCAL, Loc: id.Range}
		id.Symbol = sym
		n.DefineSymbol(sym)
		if !n.DeclarationAllowed {
			r.diags.Errorf(diagnostics.ErrDeclarationNotAllowed, r.file, n.Range,
				"variable declaration %q not allowed here", id.Name)
		}
		return

	case n.Kind == ast.KindStatement && n.SubKind == ast.SubLabel:
		id := n.Child(0)
		sym := &symbols.Symbol{Name: id.Name, Type: id.Type, Kind: symbols.LABEL, SubKind: symbols.LOCAL, Loc: id.Range}
		if existing := lookupInNearestTable(n, id.Name); existing != nil && existing.Kind == symbols.LABEL && r.opts.JumpMode == config.JumpClean {
			r.diags.Errorf(diagnostics.ErrDuplicateLabel, r.file, id.Range, "duplicate label %q", id.Name)
		}
		id.Symbol = sym
		n.DefineSymbol(sym)
		r.collected = append(r.collected, id)

	case n.Kind == ast.KindStatement && n.SubKind == ast.SubJumpStatement:
		r.pendingJumps = append(r.pendingJumps, n.Child(0))

	case n.Kind == ast.KindStatement && n.SubKind == ast.SubStateStatement:
		if n.Name != "default" {
			if sym := n.LookupSymbol(n.Name, symbols.STATE, false); sym == nil {
				r.diags.Errorf(diagnostics.ErrStateNotFound, r.file, n.Range, "unknown state %q", n.Name)
			}
		}

	case n.Kind == ast.KindExpression:
		r.resolveExpr(n)
		return
	}

	for _, c := range n.Children {
		r.walkBody(c)
	}
}

func lookupInNearestTable(n *ast.Node, name string) *symbols.Symbol {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur.SymbolTable != nil {
			return cur.SymbolTable.LookupLocal(name, symbols.LABEL, false)
		}
	}
	return nil
}

func (r *resolver) enclosingTable(n *ast.Node) *symbols.Table {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur.SymbolTable != nil {
			return cur.SymbolTable
		}
	}
	return nil
}

// resolveExpr resolves identifier references inside an expression
// subtree: lvalues against VARIABLE symbols, call targets against
// FUNCTION symbols. Everything else just descends.
func (r *resolver) resolveExpr(n *ast.Node) {
	if n == nil || n.IsNull() {
		return
	}
	switch n.SubKind {
	case ast.SubLValueExpression:
		id := n.Child(0)
		sym := id.LookupSymbol(id.Name, symbols.VARIABLE, false)
		if sym == nil {
			r.diags.Errorf(diagnostics.ErrUndeclaredIdentifier, r.file, id.Range, "undeclared identifier %q", id.Name)
		} else {
			id.Symbol = sym
			sym.AddReference()
		}
		return

	case ast.SubFunctionExpression:
		id := n.Child(0)
		sym := id.LookupSymbol(id.Name, symbols.FUNCTION, false)
		if sym == nil {
			r.diags.Errorf(diagnostics.ErrUnknownFunction, r.file, id.Range, "call to undeclared function %q", id.Name)
		} else {
			id.Symbol = sym
			sym.AddReference()
		}
		for _, arg := range n.Children[1:] {
			r.resolveExpr(arg)
		}
		return
	}

	for _, c := range n.Children {
		r.resolveExpr(c)
	}
}

func (r *resolver) resolvePendingJumps() {
	for _, id := range r.pendingJumps {
		sym := id.LookupSymbol(id.Name, symbols.LABEL, false)
		if sym == nil {
			r.diags.Errorf(diagnostics.ErrUndeclaredLabel, r.file, id.Range, "undeclared label %q", id.Name)
			continue
		}
		id.Symbol = sym

		if r.opts.JumpMode != config.JumpLegacy {
			continue
		}

		// Legacy semantics: a jump always lands on the last occurrence of
		// a label with this name anywhere in the enclosing body, crossing
		// lexical scope boundaries, even though the target must still be
		// visible lexically to pass the check above.
		var newSym *symbols.Symbol
		for i := len(r.collected) - 1; i >= 0; i-- {
			cand := r.collected[i]
			if cand.Symbol != nil && cand.Name == sym.Name {
				newSym = cand.Symbol
				break
			}
		}
		if newSym != nil && newSym != sym {
			r.diags.Warnf(diagnostics.WarnJumpToWrongLabel, r.file, id.Range,
				"jump to %q resolves to a different label under legacy jump semantics", sym.Name)
			id.Symbol = newSym
		}
	}

	if r.opts.JumpMode == config.JumpLegacy {
		seen := make(map[string]bool)
		for _, id := range r.collected {
			if seen[id.Name] {
				r.diags.Warnf(diagnostics.WarnDuplicateLabelName, r.file, id.Range, "duplicate label name %q", id.Name)
			} else {
				seen[id.Name] = true
			}
		}
	}

	r.pendingJumps = nil
	r.collected = nil
}
