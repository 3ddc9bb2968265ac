package ir

import (
	"encoding/json"
	"fmt"
)

// ToAny converts a node to plain Go values (nil, bool, int64, float64,
// string, []any, map[string]any). Object field order is not preserved;
// use ToAny only at boundaries where order is irrelevant, such as
// expression environments.
func ToAny(y *Node) any {
	switch y.Type {
	case NullType:
		return nil
	case BoolType:
		return y.Bool
	case StringType:
		return y.String
	case NumberType:
		if y.Int64 != nil {
			return *y.Int64
		}
		if y.Float64 != nil {
			return *y.Float64
		}
		return y.Number
	case ArrayType:
		res := make([]any, len(y.Values))
		for i, v := range y.Values {
			res[i] = ToAny(v)
		}
		return res
	case ObjectType:
		res := make(map[string]any, len(y.Fields))
		for i, f := range y.Fields {
			res[f.String] = ToAny(y.Values[i])
		}
		return res
	default:
		panic("type")
	}
}

// FromAny converts plain Go values into a node tree. Map keys come out
// in sorted order.
func FromAny(v any) (*Node, error) {
	switch t := v.(type) {
	case nil:
		return Null(), nil
	case bool:
		return FromBool(t), nil
	case string:
		return FromString(t), nil
	case int:
		return FromInt(int64(t)), nil
	case int32:
		return FromInt(int64(t)), nil
	case int64:
		return FromInt(t), nil
	case uint:
		return FromInt(int64(t)), nil
	case uint32:
		return FromInt(int64(t)), nil
	case uint64:
		return FromInt(int64(t)), nil
	case float32:
		return FromFloat(float64(t)), nil
	case float64:
		return FromFloat(t), nil
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return FromInt(i), nil
		}
		if f, err := t.Float64(); err == nil {
			return FromFloat(f), nil
		}
		return FromDecimal(t.String()), nil
	case []any:
		vals := make([]*Node, len(t))
		for i, e := range t {
			sub, err := FromAny(e)
			if err != nil {
				return nil, err
			}
			vals[i] = sub
		}
		return FromSlice(vals), nil
	case map[string]any:
		m := make(map[string]*Node, len(t))
		for k, e := range t {
			sub, err := FromAny(e)
			if err != nil {
				return nil, err
			}
			m[k] = sub
		}
		return FromMap(m), nil
	default:
		return nil, fmt.Errorf("cannot represent %T as a node", v)
	}
}
