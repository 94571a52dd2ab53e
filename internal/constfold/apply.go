package constfold

import (
	"strconv"
	"strings"

	"github.com/tailslide/tailslide-go/internal/types"
)

// applyBinary evaluates a binary operator over two known constants,
// restricted to the
// subset of result types package types.ResultType already validated at
// typecheck time. ok is false when the combination isn't one this
// folder knows how to evaluate (e.g. a runtime-only builtin-constant
// case), in which case the caller leaves the node non-constant rather
// than guessing. divByZero is true when the only reason ok is false was
// a zero divisor/modulus, so the caller can raise a warning instead of
// silently treating the expression as merely non-foldable.
func applyBinary(op types.Op, l, r *types.Constant) (result *types.Constant, ok bool, divByZero bool) {
	lf, lIsNum := numeric(l)
	rf, rIsNum := numeric(r)

	switch op {
	case types.OpAdd:
		if l.Type == types.STRING && r.Type == types.STRING {
			return types.StringConstant(l.Str + r.Str), true, false
		}
		if l.Type == types.VECTOR && r.Type == types.VECTOR {
			return types.VectorConstant(l.Vec.X+r.Vec.X, l.Vec.Y+r.Vec.Y, l.Vec.Z+r.Vec.Z), true, false
		}
		if l.Type == types.QUATERNION && r.Type == types.QUATERNION {
			return types.QuaternionConstant(l.Quat.X+r.Quat.X, l.Quat.Y+r.Quat.Y, l.Quat.Z+r.Quat.Z, l.Quat.S+r.Quat.S), true, false
		}
		if l.Type == types.LIST || r.Type == types.LIST {
			return concatList(l, r), true, false
		}
		if lIsNum && rIsNum {
			return numericResult(l, r, lf+rf, types.AddInt32(l.Int, r.Int)), true, false
		}

	case types.OpSub:
		if l.Type == types.VECTOR && r.Type == types.VECTOR {
			return types.VectorConstant(l.Vec.X-r.Vec.X, l.Vec.Y-r.Vec.Y, l.Vec.Z-r.Vec.Z), true, false
		}
		if l.Type == types.QUATERNION && r.Type == types.QUATERNION {
			return types.QuaternionConstant(l.Quat.X-r.Quat.X, l.Quat.Y-r.Quat.Y, l.Quat.Z-r.Quat.Z, l.Quat.S-r.Quat.S), true, false
		}
		if lIsNum && rIsNum {
			return numericResult(l, r, lf-rf, int32(int64(l.Int)-int64(r.Int))), true, false
		}

	case types.OpMul:
		if l.Type == types.VECTOR && r.Type == types.VECTOR {
			// dot product
			return types.FloatConstant(l.Vec.X*r.Vec.X + l.Vec.Y*r.Vec.Y + l.Vec.Z*r.Vec.Z), true, false
		}
		if l.Type == types.VECTOR && rIsNum {
			return types.VectorConstant(l.Vec.X*rf, l.Vec.Y*rf, l.Vec.Z*rf), true, false
		}
		if r.Type == types.VECTOR && lIsNum {
			return types.VectorConstant(r.Vec.X*lf, r.Vec.Y*lf, r.Vec.Z*lf), true, false
		}
		if lIsNum && rIsNum {
			return numericResult(l, r, lf*rf, types.MulInt32(l.Int, r.Int)), true, false
		}

	case types.OpDiv:
		if l.Type == types.VECTOR && rIsNum {
			if rf == 0 {
				return nil, false, true
			}
			return types.VectorConstant(l.Vec.X/rf, l.Vec.Y/rf, l.Vec.Z/rf), true, false
		}
		if lIsNum && rIsNum {
			if l.Type == types.INTEGER && r.Type == types.INTEGER {
				if r.Int == 0 {
					return nil, false, true
				}
				return types.IntConstant(l.Int / r.Int), true, false
			}
			if rf == 0 {
				return nil, false, true
			}
			return types.FloatConstant(lf / rf), true, false
		}

	case types.OpMod:
		if l.Type == types.VECTOR && r.Type == types.VECTOR {
			// cross product
			return types.VectorConstant(
				l.Vec.Y*r.Vec.Z-l.Vec.Z*r.Vec.Y,
				l.Vec.Z*r.Vec.X-l.Vec.X*r.Vec.Z,
				l.Vec.X*r.Vec.Y-l.Vec.Y*r.Vec.X,
			), true, false
		}
		if l.Type == types.INTEGER && r.Type == types.INTEGER {
			if r.Int == 0 {
				return nil, false, true
			}
			return types.IntConstant(l.Int % r.Int), true, false
		}

	case types.OpBitAnd:
		if l.Type == types.INTEGER && r.Type == types.INTEGER {
			return types.IntConstant(l.Int & r.Int), true, false
		}
	case types.OpBitOr:
		if l.Type == types.INTEGER && r.Type == types.INTEGER {
			return types.IntConstant(l.Int | r.Int), true, false
		}
	case types.OpBitXor:
		if l.Type == types.INTEGER && r.Type == types.INTEGER {
			return types.IntConstant(l.Int ^ r.Int), true, false
		}
	case types.OpShl:
		if l.Type == types.INTEGER && r.Type == types.INTEGER {
			return types.IntConstant(l.Int << uint32(r.Int&31)), true, false
		}
	case types.OpShr:
		if l.Type == types.INTEGER && r.Type == types.INTEGER {
			return types.IntConstant(l.Int >> uint32(r.Int&31)), true, false
		}

	case types.OpEq:
		return types.IntConstant(boolInt(equalConstant(l, r))), true, false
	case types.OpNeq:
		return types.IntConstant(boolInt(!equalConstant(l, r))), true, false

	case types.OpLt, types.OpLte, types.OpGt, types.OpGte:
		if lIsNum && rIsNum {
			var cmp bool
			switch op {
			case types.OpLt:
				cmp = lf < rf
			case types.OpLte:
				cmp = lf <= rf
			case types.OpGt:
				cmp = lf > rf
			case types.OpGte:
				cmp = lf >= rf
			}
			return types.IntConstant(boolInt(cmp)), true, false
		}

	case types.OpAnd:
		return types.IntConstant(boolInt(truthy(l) && truthy(r))), true, false
	case types.OpOr:
		return types.IntConstant(boolInt(truthy(l) || truthy(r))), true, false
	}

	return nil, false, false
}

func applyUnary(op types.Op, v *types.Constant) (*types.Constant, bool) {
	switch op {
	case types.OpNeg:
		switch v.Type {
		case types.INTEGER:
			return types.IntConstant(int32(-int64(v.Int))), true
		case types.FLOAT:
			return types.FloatConstant(-v.Float), true
		case types.VECTOR:
			return types.VectorConstant(-v.Vec.X, -v.Vec.Y, -v.Vec.Z), true
		case types.QUATERNION:
			return types.QuaternionConstant(-v.Quat.X, -v.Quat.Y, -v.Quat.Z, -v.Quat.S), true
		}
	case types.OpNot:
		if v.Type == types.INTEGER {
			return types.IntConstant(boolInt(v.Int == 0)), true
		}
	case types.OpBitNot:
		if v.Type == types.INTEGER {
			return types.IntConstant(^v.Int), true
		}
	}
	return nil, false
}

func applyCast(v *types.Constant, to types.IType) (*types.Constant, bool) {
	if v.Type == to {
		return v, true
	}
	switch to {
	case types.FLOAT:
		if v.Type == types.INTEGER {
			return types.FloatConstant(types.IntToFloat(v.Int)), true
		}
		if v.Type == types.STRING {
			if f, err := strconv.ParseFloat(strings.TrimSpace(v.Str), 32); err == nil {
				return types.FloatConstant(float32(f)), true
			}
			return types.FloatConstant(0), true
		}
	case types.INTEGER:
		if v.Type == types.FLOAT {
			return types.IntConstant(int32(v.Float)), true
		}
		if v.Type == types.STRING {
			if i, err := strconv.ParseInt(strings.TrimSpace(v.Str), 10, 32); err == nil {
				return types.IntConstant(int32(i)), true
			}
			return types.IntConstant(0), true
		}
	case types.STRING:
		return types.StringConstant(v.String()), true
	case types.KEY:
		if v.Type == types.STRING {
			return types.KeyConstant(v.Str), true
		}
	}
	return nil, false
}

func numeric(c *types.Constant) (float32, bool) {
	switch c.Type {
	case types.INTEGER:
		return float32(c.Int), true
	case types.FLOAT:
		return c.Float, true
	}
	return 0, false
}

// numericResult picks the integer or float variant of a numeric binary
// result depending on whether both operands were integers, matching
// package types' INTEGER/INTEGER->INTEGER, otherwise FLOAT promotion
// rule.
func numericResult(l, r *types.Constant, floatResult float32, intResult int32) *types.Constant {
	if l.Type == types.INTEGER && r.Type == types.INTEGER {
		return types.IntConstant(intResult)
	}
	return types.FloatConstant(floatResult)
}

func concatList(l, r *types.Constant) *types.Constant {
	var items []*types.Constant
	if l.Type == types.LIST {
		items = append(items, l.List...)
	} else {
		items = append(items, l)
	}
	if r.Type == types.LIST {
		items = append(items, r.List...)
	} else {
		items = append(items, r)
	}
	out := make([]*types.Constant, len(items))
	for i, it := range items {
		out[i] = it.Copy()
	}
	return types.ListConstant(out)
}

func equalConstant(l, r *types.Constant) bool {
	if lf, lok := numeric(l); lok {
		if rf, rok := numeric(r); rok {
			return lf == rf
		}
	}
	if isStringy(l.Type) && isStringy(r.Type) {
		return l.Str == r.Str
	}
	if l.Type != r.Type {
		return false
	}
	switch l.Type {
	case types.STRING, types.KEY:
		return l.Str == r.Str
	case types.VECTOR:
		return l.Vec == r.Vec
	case types.QUATERNION:
		return l.Quat == r.Quat
	case types.LIST:
		if len(l.List) != len(r.List) {
			return false
		}
		for i := range l.List {
			if !equalConstant(l.List[i], r.List[i]) {
				return false
			}
		}
		return true
	}
	return false
}

func isStringy(t types.IType) bool { return t == types.STRING || t == types.KEY }

func truthy(c *types.Constant) bool {
	switch c.Type {
	case types.INTEGER:
		return c.Int != 0
	case types.FLOAT:
		return c.Float != 0
	case types.STRING, types.KEY:
		return c.Str != ""
	case types.LIST:
		return len(c.List) != 0
	case types.VECTOR:
		return c.Vec.X != 0 || c.Vec.Y != 0 || c.Vec.Z != 0
	case types.QUATERNION:
		return c.Quat.X != 0 || c.Quat.Y != 0 || c.Quat.Z != 0 || c.Quat.S != 0
	}
	return false
}

func boolInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
