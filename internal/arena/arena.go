// Package arena is the per-compilation allocation scope: every node and
// symbol table tracked during one compile, bulk-released together when
// the compile ends. Go's garbage collector already reclaims
// unreachable nodes, so Arena keeps a "one scope per
// compilation" shape without doing any manual freeing itself: Reset
// exists as the documented seam a caller compiling many scripts in one
// process can use to drop the arena's own bookkeeping between compiles.
package arena

import (
	"github.com/tailslide/tailslide-go/internal/ast"
	"github.com/tailslide/tailslide-go/internal/symbols"
)

// Arena owns the nodes and symbol tables allocated for one compilation.
// Passes that synthesize nodes (desugaring's cast insertion and
// builtin-constant literals) should allocate through it rather
// than calling ast.New directly, so every synthesized node is
// discoverable for diagnostics/debugging without walking the whole
// tree.
type Arena struct {
	nodes  []*ast.Node
	tables []*symbols.Table
}

// New returns an empty Arena.
func New() *Arena {
	return &Arena{}
}

// Track records n as belonging to this arena and returns it unchanged,
// so callers can wrap a construction expression: `n := a.Track(ast.New(...))`.
func (a *Arena) Track(n *ast.Node) *ast.Node {
	if n != nil {
		a.nodes = append(a.nodes, n)
	}
	return n
}

// TrackTable records t as belonging to this arena and returns it
// unchanged.
func (a *Arena) TrackTable(t *symbols.Table) *symbols.Table {
	if t != nil {
		a.tables = append(a.tables, t)
	}
	return t
}

// NodeCount reports how many nodes have been tracked, for tests and
// diagnostics that want to bound how much a pass allocated.
func (a *Arena) NodeCount() int { return len(a.nodes) }

// TableCount reports how many symbol tables have been tracked.
func (a *Arena) TableCount() int { return len(a.tables) }

// Reset drops the arena's own bookkeeping. It does not, and cannot,
// free the nodes it tracked; Go's collector reclaims them once nothing
// else references them. Reset exists so a long-lived process compiling
// many scripts can bound this bookkeeping's own growth between compiles
// without needing a new Arena value each time.
func (a *Arena) Reset() {
	a.nodes = a.nodes[:0]
	a.tables = a.tables[:0]
}
