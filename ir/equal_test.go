package ir

import (
	"math"
	"testing"
)

func TestEqual(t *testing.T) {
	nan := math.NaN()
	tests := []struct {
		name string
		a, b *Node
		want bool
	}{
		{"null == null", Null(), Null(), true},
		{"null != false", Null(), FromBool(false), false},
		{"bool strictness", FromBool(true), FromInt(1), false},
		{"int == int", FromInt(3), FromInt(3), true},
		{"int != float", FromInt(1), FromFloat(1.0), false},
		{"float == float", FromFloat(1.5), FromFloat(1.5), true},
		{"NaN == NaN", FromFloat(nan), FromFloat(nan), true},
		{"NaN != 1.0", FromFloat(nan), FromFloat(1.0), false},
		{"decimal == decimal", FromDecimal("1e400"), FromDecimal("1e400"), true},
		{"string", FromString("a"), FromString("a"), true},
		{"string != number string", FromString("1"), FromInt(1), false},
		{
			"array positional",
			FromSlice([]*Node{FromInt(1), FromInt(2)}),
			FromSlice([]*Node{FromInt(1), FromInt(2)}),
			true,
		},
		{
			"array length",
			FromSlice([]*Node{FromInt(1)}),
			FromSlice([]*Node{FromInt(1), FromInt(2)}),
			false,
		},
		{
			"object order-insensitive",
			FromKeyVals([]KeyVal{
				{Key: FromString("a"), Val: FromInt(1)},
				{Key: FromString("b"), Val: FromInt(2)},
			}),
			FromKeyVals([]KeyVal{
				{Key: FromString("b"), Val: FromInt(2)},
				{Key: FromString("a"), Val: FromInt(1)},
			}),
			true,
		},
		{
			"object key set",
			FromKeyVals([]KeyVal{{Key: FromString("a"), Val: FromInt(1)}}),
			FromKeyVals([]KeyVal{{Key: FromString("b"), Val: FromInt(1)}}),
			false,
		},
		{
			"nested NaN",
			FromSlice([]*Node{FromFloat(nan)}),
			FromSlice([]*Node{FromFloat(nan)}),
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.a, tt.b); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
			if got := Equal(tt.b, tt.a); got != tt.want {
				t.Errorf("Equal(b, a) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCloneIndependence(t *testing.T) {
	orig := FromKeyVals([]KeyVal{
		{Key: FromString("xs"), Val: FromSlice([]*Node{FromInt(1), FromInt(2)})},
	})
	cp := orig.Clone()
	if !Equal(orig, cp) {
		t.Fatal("clone differs from original")
	}
	Get(cp, "xs").Append(FromInt(3))
	if Equal(orig, cp) {
		t.Fatal("mutating clone affected original")
	}
	if len(Get(orig, "xs").Values) != 2 {
		t.Fatal("original grew")
	}
}
