// Package token holds the source-location types shared by every AST node
// and diagnostic. The lexer/parser that produce these locations are
// external to this module (see internal/compiler.Parser); this package
// only defines the shape the core consumes.
package token

import "fmt"

// Position is a single point in a source file.
type Position struct {
	File string
	Line int
	Col  int
}

func (p Position) String() string {
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Col)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Col)
}

// Range is a half-open [Start, End) source range, as carried by every
// AST node: file id, start line/col, end line/col.
type Range struct {
	Start Position
	End   Position
}

func (r Range) String() string {
	return r.Start.String()
}

// NewRange builds a single-point range, useful for synthesized nodes
// that inherit their location from the node they replace.
func NewRange(p Position) Range {
	return Range{Start: p, End: p}
}
