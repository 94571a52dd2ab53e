package symbols

import (
	"sync"

	"github.com/tailslide/tailslide-go/internal/token"
	"github.com/tailslide/tailslide-go/internal/types"
)

// builtinDef is the immutable shape of one builtin symbol. The builtin
// table is initialized once at process start and shared by all
// compilations as read-only — defs is built exactly
// once, but RegisterBuiltins clones a fresh *Symbol per definition into
// each compilation's root table, since a Symbol's reference/assignment
// counters are per-compilation mutable state that
// must never leak between unrelated compiles.
type builtinDef struct {
	name       string
	kind       Kind
	typ        types.IType
	paramTypes []types.IType
	paramNames []string
	// value is non-nil only for VARIABLE builtins that are actual
	// compile-time constants (TRUE, PI, ZERO_VECTOR, ...), letting
	// constant folding propagate through a reference the same way it
	// would through any other never-reassigned global, and
	// letting desugaring replace that reference with a literal node the
	// emitter can serialize directly.
	value *types.Constant
}

var (
	builtinOnce sync.Once
	builtinDefs []builtinDef
)

func loadBuiltinDefs() {
	builtinDefs = []builtinDef{
		// constants
		{name: "TRUE", kind: VARIABLE, typ: types.INTEGER, value: types.IntConstant(1)},
		{name: "FALSE", kind: VARIABLE, typ: types.INTEGER, value: types.IntConstant(0)},
		{name: "PI", kind: VARIABLE, typ: types.FLOAT, value: types.FloatConstant(3.14159265)},
		{name: "PI_BY_TWO", kind: VARIABLE, typ: types.FLOAT, value: types.FloatConstant(1.57079633)},
		{name: "TWO_PI", kind: VARIABLE, typ: types.FLOAT, value: types.FloatConstant(6.28318530)},
		{name: "DEG_TO_RAD", kind: VARIABLE, typ: types.FLOAT, value: types.FloatConstant(0.01745329)},
		{name: "RAD_TO_DEG", kind: VARIABLE, typ: types.FLOAT, value: types.FloatConstant(57.29577951)},
		{name: "ZERO_VECTOR", kind: VARIABLE, typ: types.VECTOR, value: types.VectorConstant(0, 0, 0)},
		{name: "ZERO_ROTATION", kind: VARIABLE, typ: types.QUATERNION, value: types.QuaternionConstant(0, 0, 0, 1)},
		{name: "NULL_KEY", kind: VARIABLE, typ: types.KEY, value: types.KeyConstant(types.NullKey)},
		{name: "EOF", kind: VARIABLE, typ: types.STRING, value: types.StringConstant("\n\n\n")},

		// commonly used library functions
		{name: "llSay", kind: FUNCTION, typ: types.NULL,
			paramTypes: []types.IType{types.INTEGER, types.STRING}, paramNames: []string{"channel", "msg"}},
		{name: "llOwnerSay", kind: FUNCTION, typ: types.NULL,
			paramTypes: []types.IType{types.STRING}, paramNames: []string{"msg"}},
		{name: "llAbs", kind: FUNCTION, typ: types.INTEGER,
			paramTypes: []types.IType{types.INTEGER}, paramNames: []string{"val"}},
		{name: "llFabs", kind: FUNCTION, typ: types.FLOAT,
			paramTypes: []types.IType{types.FLOAT}, paramNames: []string{"val"}},
		{name: "llSqrt", kind: FUNCTION, typ: types.FLOAT,
			paramTypes: []types.IType{types.FLOAT}, paramNames: []string{"val"}},
		{name: "llGetOwner", kind: FUNCTION, typ: types.KEY},
		{name: "llVecMag", kind: FUNCTION, typ: types.FLOAT,
			paramTypes: []types.IType{types.VECTOR}, paramNames: []string{"v"}},
		{name: "llList2String", kind: FUNCTION, typ: types.STRING,
			paramTypes: []types.IType{types.LIST, types.INTEGER}, paramNames: []string{"src", "index"}},
		{name: "llGetListLength", kind: FUNCTION, typ: types.INTEGER,
			paramTypes: []types.IType{types.LIST}, paramNames: []string{"src"}},
		{name: "llSetTimerEvent", kind: FUNCTION, typ: types.NULL,
			paramTypes: []types.IType{types.FLOAT}, paramNames: []string{"sec"}},
		{name: "llResetScript", kind: FUNCTION, typ: types.NULL},

		// events
		{name: "state_entry", kind: EVENT, typ: types.NULL},
		{name: "state_exit", kind: EVENT, typ: types.NULL},
		{name: "touch_start", kind: EVENT, typ: types.NULL,
			paramTypes: []types.IType{types.INTEGER}, paramNames: []string{"total_number"}},
		{name: "timer", kind: EVENT, typ: types.NULL},
		{name: "on_rez", kind: EVENT, typ: types.NULL,
			paramTypes: []types.IType{types.INTEGER}, paramNames: []string{"start_param"}},
		{name: "listen", kind: EVENT, typ: types.NULL,
			paramTypes: []types.IType{types.INTEGER, types.STRING, types.KEY, types.STRING},
			paramNames: []string{"channel", "name", "id", "message"}},
	}
}

// RegisterBuiltins populates root with a fresh clone of every builtin
// symbol, ready for lookups from user code but isolated from any other
// compilation's tracking state.
func RegisterBuiltins(root *Table) {
	builtinOnce.Do(loadBuiltinDefs)
	for _, d := range builtinDefs {
		sym := &Symbol{
			Name:       d.name,
			Type:       d.typ,
			Kind:       d.kind,
			SubKind:    BUILTIN,
			Loc:        token.Range{},
			ParamTypes: append([]types.IType(nil), d.paramTypes...),
			ParamNames: append([]string(nil), d.paramNames...),
		}
		if d.value != nil {
			sym.SetConstantValue(d.value.Copy())
		}
		root.Define(sym)
	}
}
