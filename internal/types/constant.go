package types

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Vector3 is a three-float vector constant payload.
type Vector3 struct{ X, Y, Z float32 }

// Quaternion is a four-float quaternion constant payload. Normalization
// is the program's responsibility, never the compiler's.
type Quaternion struct{ X, Y, Z, S float32 }

// NullKey is the well-known zero key, substituted whenever a key literal
// fails UUID validation.
const NullKey = "00000000-0000-0000-0000-000000000000"

// Constant is a tagged compile-time value. Exactly one of the typed
// fields is meaningful, selected by Type. Lists hold a flat slice of
// non-list Constants.
type Constant struct {
	Type IType

	Int   int32
	Float float32
	Str   string // also used for Key
	Vec   Vector3
	Quat  Quaternion
	List  []*Constant
}

func IntConstant(v int32) *Constant     { return &Constant{Type: INTEGER, Int: v} }
func FloatConstant(v float32) *Constant { return &Constant{Type: FLOAT, Float: v} }
func StringConstant(v string) *Constant { return &Constant{Type: STRING, Str: v} }
func ListConstant(items []*Constant) *Constant {
	return &Constant{Type: LIST, List: items}
}
func VectorConstant(x, y, z float32) *Constant {
	return &Constant{Type: VECTOR, Vec: Vector3{x, y, z}}
}
func QuaternionConstant(x, y, z, s float32) *Constant {
	return &Constant{Type: QUATERNION, Quat: Quaternion{x, y, z, s}}
}

// KeyConstant validates the string as UUID-shaped: a key is a
// validated UUID-shaped string, and an invalid key is NULL_KEY.
// An invalid key is never an error in itself — it silently becomes
// NULL_KEY, consistent with the poison-tolerant style of the rest of
// the pipeline (no secondary diagnostic for a malformed literal here;
// that is the lexer/parser's concern if it chooses to raise one).
func KeyConstant(v string) *Constant {
	if _, err := uuid.Parse(v); err != nil {
		return &Constant{Type: KEY, Str: NullKey}
	}
	return &Constant{Type: KEY, Str: v}
}

// OneValue returns the multiplicative identity for numeric types and
// the empty/zero value otherwise.
func OneValue(t IType) *Constant {
	switch t {
	case INTEGER:
		return IntConstant(1)
	case FLOAT:
		return FloatConstant(1)
	case VECTOR:
		return VectorConstant(0, 0, 0)
	case QUATERNION:
		return QuaternionConstant(0, 0, 0, 1)
	case STRING:
		return StringConstant("")
	case KEY:
		return KeyConstant(NullKey)
	case LIST:
		return ListConstant(nil)
	default:
		return IntConstant(0)
	}
}

// Copy returns a deep copy suitable for cloning into a new list or
// subtree.
func (c *Constant) Copy() *Constant {
	if c == nil {
		return nil
	}
	cp := *c
	if c.Type == LIST {
		cp.List = make([]*Constant, len(c.List))
		for i, e := range c.List {
			cp.List[i] = e.Copy()
		}
	}
	return &cp
}

// String renders the constant the way the (external) bytecode emitter's
// fixed formatting would: integers plain, floats with a trailing
// decimal, vectors/quaternions as "<x, y, z>"/"<x, y, z, s>", lists
// comma-joined in brackets.
func (c *Constant) String() string {
	if c == nil {
		return "<nil>"
	}
	switch c.Type {
	case INTEGER:
		return strconv.Itoa(int(c.Int))
	case FLOAT:
		return formatFloat(c.Float)
	case STRING, KEY:
		return c.Str
	case VECTOR:
		return fmt.Sprintf("<%s, %s, %s>", formatFloat(c.Vec.X), formatFloat(c.Vec.Y), formatFloat(c.Vec.Z))
	case QUATERNION:
		return fmt.Sprintf("<%s, %s, %s, %s>", formatFloat(c.Quat.X), formatFloat(c.Quat.Y), formatFloat(c.Quat.Z), formatFloat(c.Quat.S))
	case LIST:
		parts := make([]string, len(c.List))
		for i, e := range c.List {
			parts[i] = e.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return ""
	}
}

func formatFloat(f float32) string {
	s := strconv.FormatFloat(float64(f), 'f', -1, 32)
	if !strings.Contains(s, ".") && !strings.Contains(s, "e") {
		s += ".000000"
	}
	return s
}

// AddInt32 performs two's-complement wrapping 32-bit integer addition:
// 2147483647 + 1 wraps to -2147483648 with no diagnostic.
func AddInt32(a, b int32) int32 { return int32(uint32(a) + uint32(b)) }

// MulInt32 wraps on overflow the same way.
func MulInt32(a, b int32) int32 { return int32(uint32(a) * uint32(b)) }

// IntToFloat converts an integer constant to float with the legacy
// quirk: casting the minimum int32
// (0x80000000) to float produced NaN in the legacy VM due to a sign/
// magnitude conversion bug, rather than the mathematically correct
// -2147483648.0.
func IntToFloat(v int32) float32 {
	if uint32(v) == 0x80000000 {
		return float32(math.NaN())
	}
	return float32(v)
}
