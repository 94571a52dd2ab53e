package ast

import (
	"testing"

	"github.com/tailslide/tailslide-go/internal/token"
	"github.com/tailslide/tailslide-go/internal/types"
)

func rng() token.Range { return token.Range{} }

func TestSetChildFixesParentPointer(t *testing.T) {
	a := NewIdentifier("a", types.NULL, rng())
	b := NewIdentifier("b", types.NULL, rng())
	n := New(KindExpression, SubLValueExpression, rng(), a, NullNode(rng()))

	n.SetChild(0, b)

	if n.Child(0) != b {
		t.Fatal("SetChild should replace the child at the given index")
	}
	if b.Parent != n {
		t.Error("SetChild should fix up the replacement's Parent pointer")
	}
}

func TestTakeChildDetachesAndLeavesHole(t *testing.T) {
	child := NewIdentifier("x", types.NULL, rng())
	n := New(KindExpression, SubLValueExpression, rng(), child, NullNode(rng()))

	taken := n.TakeChild(0)

	if taken != child {
		t.Fatal("TakeChild should return the original child")
	}
	if taken.Parent != nil {
		t.Error("TakeChild should clear the detached node's Parent")
	}
	if n.Child(0) != nil {
		t.Error("TakeChild should leave a nil hole at the index")
	}
}

func TestReplaceNodeUpdatesParentsChildSlot(t *testing.T) {
	old := NewIdentifier("x", types.NULL, rng())
	replacement := NewIdentifier("y", types.NULL, rng())
	parent := New(KindExpression, SubLValueExpression, rng(), old, NullNode(rng()))

	ReplaceNode(old, replacement)

	if parent.Child(0) != replacement {
		t.Fatal("ReplaceNode should install the replacement in the parent's child slot")
	}
	if replacement.Parent != parent {
		t.Error("ReplaceNode should set the replacement's Parent")
	}
}

func TestReplaceNodeNoopOnRoot(t *testing.T) {
	root := NewIdentifier("x", types.NULL, rng())
	replacement := NewIdentifier("y", types.NULL, rng())

	ReplaceNode(root, replacement) // root has no parent; should not panic

	if root.Parent != nil {
		t.Error("a rootless node should be unaffected by ReplaceNode")
	}
}

func TestRootWalksToOutermostAncestor(t *testing.T) {
	leaf := NewIdentifier("x", types.NULL, rng())
	mid := New(KindExpression, SubParenthesisExpression, rng(), leaf)
	top := New(KindScript, SubNone, rng(), mid)

	if leaf.Root() != top {
		t.Error("Root should walk all the way up through every ancestor")
	}
}

func TestSetConstantValueClearsPrecluded(t *testing.T) {
	n := NewIdentifier("x", types.INTEGER, rng())
	n.ConstantPrecluded = true

	n.SetConstantValue(types.IntConstant(3))

	if n.ConstantPrecluded {
		t.Error("setting a non-nil constant value should clear ConstantPrecluded")
	}
	if !n.IsConstant() {
		t.Error("IsConstant should report true once a value is set")
	}

	n.SetConstantValue(nil)
	if n.IsConstant() {
		t.Error("IsConstant should report false once the value is cleared")
	}
}

func TestCloneIsDeepAndDetached(t *testing.T) {
	inner := NewIdentifier("x", types.INTEGER, rng())
	inner.SetConstantValue(types.IntConstant(5))
	outer := New(KindExpression, SubParenthesisExpression, rng(), inner)

	cp := outer.Clone()

	if cp == outer {
		t.Fatal("Clone should allocate a new node")
	}
	if cp.Parent != nil {
		t.Error("a cloned root should have no parent")
	}
	if cp.Child(0) == inner {
		t.Fatal("Clone should deep-copy children, not alias them")
	}
	cp.Child(0).Const.Int = 99
	if inner.Const.Int == 99 {
		t.Error("mutating a clone's constant should not affect the original")
	}
	if cp.Child(0).Parent != cp {
		t.Error("a cloned child's Parent should point at the clone, not the original")
	}
}

func TestIsNullHandlesNilAndNullKind(t *testing.T) {
	var nilNode *Node
	if !nilNode.IsNull() {
		t.Error("a nil *Node should report IsNull true")
	}
	if !NullNode(rng()).IsNull() {
		t.Error("a NullNode should report IsNull true")
	}
	if NewIdentifier("x", types.NULL, rng()).IsNull() {
		t.Error("an ordinary node should not report IsNull")
	}
}

