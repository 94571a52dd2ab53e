// Package symbols is the symbol and scope model: symbol
// records, per-scope tables, hierarchical lookup, and deterministic name
// mangling.
package symbols

import (
	"github.com/tailslide/tailslide-go/internal/token"
	"github.com/tailslide/tailslide-go/internal/types"
)

// Kind is the symbol's category.
type Kind int

const (
	VARIABLE Kind = iota
	FUNCTION
	STATE
	LABEL
	EVENT
)

func (k Kind) String() string {
	switch k {
	case VARIABLE:
		return "variable"
	case FUNCTION:
		return "function"
	case STATE:
		return "state"
	case LABEL:
		return "label"
	case EVENT:
		return "event"
	default:
		return "unknown"
	}
}

// SubKind refines Kind with storage class / origin.
type SubKind int

const (
	LOCAL SubKind = iota
	GLOBAL
	BUILTIN
	FUNCTION_PARAMETER
	EVENT_PARAMETER
)

// Symbol is a declared name: a variable, function, state, label, or
// event handler.
//
// There is no raw AST
// declaration-node back-link: everything a pass needs from the
// declaration (its type, and for functions/events the parameter
// signature) is captured directly on the Symbol at resolution time.
// This sidesteps a symbols<->ast import cycle and, in practice, is all
// any later pass ever dereferenced the back-link for.
type Symbol struct {
	Name    string
	Type    types.IType
	Kind    Kind
	SubKind SubKind
	Loc     token.Range

	// ParamTypes/ParamNames describe a function or event's declared
	// signature, in order. Empty for variables/states/labels.
	ParamTypes []types.IType
	ParamNames []string

	constantValue     *types.Constant
	constantPrecluded bool

	references  int
	assignments int

	MangledName string
}

// ConstantValue returns the symbol's folded constant, or nil if not
// statically known.
func (s *Symbol) ConstantValue() *types.Constant { return s.constantValue }

// SetConstantValue stores v as the symbol's constant value.
// Setting a non-nil value clears "precluded".
func (s *Symbol) SetConstantValue(v *types.Constant) {
	if v != nil {
		s.constantPrecluded = false
	}
	s.constantValue = v
}

func (s *Symbol) ConstantPrecluded() bool       { return s.constantPrecluded }
func (s *Symbol) SetConstantPrecluded(p bool)   { s.constantPrecluded = p }

// References/Assignments are the reference-counting bookkeeping pass J
// maintains and pass H (constant propagation) and K (pruning) consult.
func (s *Symbol) References() int  { return s.references }
func (s *Symbol) Assignments() int { return s.assignments }

func (s *Symbol) AddReference() int  { s.references++; return s.references }
func (s *Symbol) AddAssignment() int { s.assignments++; return s.assignments }

// ResetTracking zeroes the reference/assignment counters ahead of a
// recount (pass J runs once per optimizer iteration).
func (s *Symbol) ResetTracking() {
	s.references = 0
	s.assignments = 0
}
