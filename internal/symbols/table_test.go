package symbols

import (
	"testing"

	"github.com/tailslide/tailslide-go/internal/types"
)

func TestDefineAndLookupLocal(t *testing.T) {
	root := NewTable(nil)
	sym := &Symbol{Name: "x", Type: types.INTEGER, Kind: VARIABLE}
	root.Define(sym)

	got := root.LookupLocal("x", VARIABLE, false)
	if got != sym {
		t.Fatalf("LookupLocal did not find the defined symbol")
	}
	if root.LookupLocal("y", VARIABLE, false) != nil {
		t.Error("LookupLocal found a symbol that was never defined")
	}
}

func TestLookupLocalLastDefinitionWins(t *testing.T) {
	root := NewTable(nil)
	first := &Symbol{Name: "x", Kind: VARIABLE}
	second := &Symbol{Name: "x", Kind: VARIABLE}
	root.Define(first)
	root.Define(second)

	if got := root.LookupLocal("x", VARIABLE, false); got != second {
		t.Errorf("LookupLocal should return the most recent definition")
	}
}

func TestLookupWalksAncestors(t *testing.T) {
	root := NewTable(nil)
	child := NewTable(root)
	sym := &Symbol{Name: "global", Kind: VARIABLE}
	root.Define(sym)

	if got := child.Lookup("global", VARIABLE, false); got != sym {
		t.Error("Lookup should find a symbol defined in an ancestor table")
	}
	if got := child.Lookup("missing", VARIABLE, false); got != nil {
		t.Errorf("Lookup found a nonexistent symbol: %v", got)
	}
}

func TestRoot(t *testing.T) {
	root := NewTable(nil)
	child := NewTable(root)
	grandchild := NewTable(child)

	if grandchild.Root() != root {
		t.Error("Root should walk all the way to the outermost ancestor")
	}
}

func TestWalkVisitsDescendants(t *testing.T) {
	root := NewTable(nil)
	child := NewTable(root)

	root.Define(&Symbol{Name: "a", Kind: VARIABLE})
	child.Define(&Symbol{Name: "b", Kind: VARIABLE})

	var names []string
	root.Walk(func(s *Symbol) { names = append(names, s.Name) })

	if len(names) != 2 {
		t.Fatalf("Walk visited %d symbols, want 2", len(names))
	}
}

func TestSetMangledNamesDeterministicOrder(t *testing.T) {
	root := NewTable(nil)
	a := &Symbol{Name: "longVariableNameOne", Kind: VARIABLE}
	b := &Symbol{Name: "longVariableNameTwo", Kind: VARIABLE}
	builtin := &Symbol{Name: "PI", Kind: VARIABLE, SubKind: BUILTIN}
	root.Define(a)
	root.Define(b)
	root.Define(builtin)

	root.SetMangledNames()

	if a.MangledName != "a" {
		t.Errorf("first declared symbol should mangle to %q, got %q", "a", a.MangledName)
	}
	if b.MangledName != "b" {
		t.Errorf("second declared symbol should mangle to %q, got %q", "b", b.MangledName)
	}
	if builtin.MangledName != "" {
		t.Error("builtin symbols should never be mangled")
	}
}

func TestSymbolReferenceAndAssignmentTracking(t *testing.T) {
	s := &Symbol{Name: "x", Kind: VARIABLE}
	s.AddReference()
	s.AddReference()
	s.AddAssignment()

	if s.References() != 2 || s.Assignments() != 1 {
		t.Errorf("References()=%d Assignments()=%d, want 2, 1", s.References(), s.Assignments())
	}

	s.ResetTracking()
	if s.References() != 0 || s.Assignments() != 0 {
		t.Error("ResetTracking should zero both counters")
	}
}

func TestSymbolConstantValue(t *testing.T) {
	s := &Symbol{Name: "x", Kind: VARIABLE}
	if s.ConstantValue() != nil {
		t.Error("a fresh symbol should have no constant value")
	}
	s.SetConstantValue(types.IntConstant(5))
	if s.ConstantValue().Int != 5 {
		t.Error("SetConstantValue should be retrievable via ConstantValue")
	}
	if s.ConstantPrecluded() {
		t.Error("setting a non-nil constant value should clear precluded")
	}
}
