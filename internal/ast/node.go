package ast

import (
	"github.com/tailslide/tailslide-go/internal/symbols"
	"github.com/tailslide/tailslide-go/internal/token"
	"github.com/tailslide/tailslide-go/internal/types"
)

// Node is the single tagged-variant AST node type every construct in
// the language is built from, favoring a tagged-variant representation
// over deep class hierarchies.
//
// Children are an ordered slice with an explicit Parent back-pointer.
// SetChild/ReplaceNode mutate by index, which is what every pass that
// rewrites the tree while walking it actually needs:
// there is no hand-rolled next/prev pointer pair to keep consistent.
type Node struct {
	Kind    Kind
	SubKind SubKind
	Range   token.Range

	Parent   *Node
	Children []*Node

	// SymbolTable is non-nil only on scope-opening nodes (script,
	// state, global function, event handler, compound statement).
	SymbolTable *symbols.Table

	Type              types.IType
	Const             *types.Constant
	ConstantPrecluded bool

	// Synthesized marks a node a pass inserted; it must never emit
	// source-level diagnostics.
	Synthesized bool
	// Static marks a node immune to constant-slot invalidation between
	// constant-propagation re-runs.
	Static bool
	// DeclarationAllowed is false inside a single-statement if/while
	// body without a compound.
	DeclarationAllowed bool

	// --- kind-specific payload ---

	// Name holds an Identifier's source name, a Label's name, a Jump's
	// target name, or a state-change statement's target state name.
	Name string
	// Symbol is the resolved symbol for an Identifier/LValue, or the
	// declared symbol for a GlobalFunction/State/EventHandler/Label's
	// identifier child.
	Symbol *symbols.Symbol
	// Op is the operator for a Binary/UnaryExpression. Desugaring
	// mutates it in place (e.g. "+=" decouples to "=").
	Op types.Op
}

// New creates a node of the given kind/subkind with the given children
// already linked (parent pointers set).
func New(kind Kind, sub SubKind, r token.Range, children ...*Node) *Node {
	n := &Node{Kind: kind, SubKind: sub, Range: r, DeclarationAllowed: true}
	n.SetChildren(children)
	return n
}

// SetChildren replaces all children at once, fixing up parent pointers.
func (n *Node) SetChildren(children []*Node) {
	n.Children = children
	for _, c := range children {
		if c != nil {
			c.Parent = n
		}
	}
}

// Child returns the i-th child, or nil if i is out of range. A null
// placeholder slot is returned as is (check it with IsNull).
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.Children) {
		return nil
	}
	return n.Children[i]
}

// SetChild replaces the i-th child by index, so a pass may rewrite the
// node it is currently visiting without corrupting sibling iteration.
func (n *Node) SetChild(i int, child *Node) {
	if i < 0 || i >= len(n.Children) {
		return
	}
	n.Children[i] = child
	if child != nil {
		child.Parent = n
	}
}

// TakeChild removes the i-th child, returning it detached (parent
// cleared) and leaving a nil hole — callers immediately fill the hole
// with SetChild, never leave it dangling across a pass boundary.
func (n *Node) TakeChild(i int) *Node {
	c := n.Child(i)
	if c != nil {
		c.Parent = nil
	}
	n.Children[i] = nil
	return c
}

// ReplaceNode replaces old with replacement in old's parent's child
// list. A no-op if old has no parent (the root) or isn't actually one
// of the parent's children.
func ReplaceNode(old, replacement *Node) {
	if old == nil || old.Parent == nil {
		return
	}
	parent := old.Parent
	for i, c := range parent.Children {
		if c == old {
			parent.SetChild(i, replacement)
			return
		}
	}
}

// Root walks up to the outermost ancestor (the Script node).
func (n *Node) Root() *Node {
	r := n
	for r.Parent != nil {
		r = r.Parent
	}
	return r
}

// IsConstant reports whether this node has a known compile-time value.
func (n *Node) IsConstant() bool { return n.Const != nil }

// SetConstantValue stores v as this node's folded value. Setting a
// non-nil value clears ConstantPrecluded.
func (n *Node) SetConstantValue(v *types.Constant) {
	if v != nil {
		n.ConstantPrecluded = false
	}
	n.Const = v
}

// DefineSymbol adds sym to the nearest scope-opening table, starting at
// this node and walking up through ancestors — non-scope nodes proxy the
// definition to their nearest scope-owning ancestor.
func (n *Node) DefineSymbol(sym *symbols.Symbol) {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur.SymbolTable != nil {
			cur.SymbolTable.Define(sym)
			return
		}
	}
}

// LookupSymbol walks this node's ancestor chain, consulting each
// scope-opening ancestor's table, root table consulted last.
func (n *Node) LookupSymbol(name string, kind symbols.Kind, anyKind bool) *symbols.Symbol {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur.SymbolTable != nil {
			if sym := cur.SymbolTable.Lookup(name, kind, anyKind); sym != nil {
				return sym
			}
		}
	}
	return nil
}

// Clone makes a deep, detached (parent-less) copy of n, used by
// desugaring when an lvalue subtree needs to appear twice (e.g. `x +=
// 1` clones `x` for the new `x = x + 1` form).
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	cp := *n
	cp.Parent = nil
	cp.Const = n.Const.Copy()
	if len(n.Children) > 0 {
		cp.Children = make([]*Node, len(n.Children))
		for i, c := range n.Children {
			cp.Children[i] = c.Clone()
			if cp.Children[i] != nil {
				cp.Children[i].Parent = &cp
			}
		}
	}
	return &cp
}

// NullNode builds a placeholder occupying a child slot that has no
// content (e.g. a declaration with no initializer, a return with no
// expression). It carries the node's own location.
func NullNode(r token.Range) *Node {
	return &Node{Kind: KindNull, Range: r}
}

func (n *Node) IsNull() bool { return n == nil || n.Kind == KindNull }
