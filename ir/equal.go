package ir

import "math"

// Equal reports deep equality of two nodes.
//
// Equality is type strict: a bool is never equal to a number, and an
// integer node is never equal to a float node even when their values
// coincide. Objects are equal when their key sets are equal and the
// values under each key are recursively equal; field order does not
// matter. Arrays are equal when they have the same length and are
// positionally equal.
//
// Two float NaN values compare equal. Diff alignment needs a reflexive
// equality, so this one exception to IEEE comparison is made here and
// nowhere else.
func Equal(a, b *Node) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.Type != b.Type {
		return false
	}
	switch a.Type {
	case NullType:
		return true
	case BoolType:
		return a.Bool == b.Bool
	case StringType:
		return a.String == b.String
	case NumberType:
		return equalNumbers(a, b)
	case ArrayType:
		if len(a.Values) != len(b.Values) {
			return false
		}
		for i := range a.Values {
			if !Equal(a.Values[i], b.Values[i]) {
				return false
			}
		}
		return true
	case ObjectType:
		if len(a.Fields) != len(b.Fields) {
			return false
		}
		bMap := ToMap(b)
		for i, f := range a.Fields {
			bv, ok := bMap[f.String]
			if !ok {
				return false
			}
			if !Equal(a.Values[i], bv) {
				return false
			}
		}
		return true
	}
	return false
}

func equalNumbers(a, b *Node) bool {
	if (a.Int64 == nil) != (b.Int64 == nil) {
		return false
	}
	if (a.Float64 == nil) != (b.Float64 == nil) {
		return false
	}
	if a.Int64 != nil {
		return *a.Int64 == *b.Int64
	}
	if a.Float64 != nil {
		af, bf := *a.Float64, *b.Float64
		if math.IsNaN(af) && math.IsNaN(bf) {
			return true
		}
		return af == bf
	}
	return a.Number == b.Number
}
