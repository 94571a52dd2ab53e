package symbols

import (
	"testing"

	"github.com/tailslide/tailslide-go/internal/types"
)

func TestRegisterBuiltinsSeedsConstants(t *testing.T) {
	root := NewTable(nil)
	RegisterBuiltins(root)

	pi := root.LookupLocal("PI", VARIABLE, false)
	if pi == nil {
		t.Fatal("PI should be registered as a builtin")
	}
	if pi.ConstantValue() == nil || pi.ConstantValue().Type != types.FLOAT {
		t.Error("PI should carry a known float constant value")
	}

	say := root.LookupLocal("llSay", FUNCTION, false)
	if say == nil {
		t.Fatal("llSay should be registered as a builtin function")
	}
	if len(say.ParamTypes) != 2 {
		t.Errorf("llSay should take 2 parameters, got %d", len(say.ParamTypes))
	}
}

func TestRegisterBuiltinsClonesPerCall(t *testing.T) {
	rootA := NewTable(nil)
	rootB := NewTable(nil)
	RegisterBuiltins(rootA)
	RegisterBuiltins(rootB)

	symA := rootA.LookupLocal("TRUE", VARIABLE, false)
	symB := rootB.LookupLocal("TRUE", VARIABLE, false)
	if symA == symB {
		t.Fatal("RegisterBuiltins should clone a fresh Symbol per table, not share one instance")
	}

	symA.AddReference()
	if symB.References() != 0 {
		t.Error("mutating one compilation's builtin symbol leaked into another's")
	}
}
