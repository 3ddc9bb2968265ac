package query

import (
	"errors"
	"math"
	"testing"

	"github.com/treedoc-format/go-treedoc/ir"
)

type valueTest struct {
	src  string
	want *ir.Node // nil: must be a syntax error
}

var valueTests = []valueTest{
	{src: "null", want: ir.Null()},
	{src: "true", want: ir.FromBool(true)},
	{src: "false", want: ir.FromBool(false)},
	{src: "42", want: ir.FromInt(42)},
	{src: "-7", want: ir.FromInt(-7)},
	{src: "3.5", want: ir.FromFloat(3.5)},
	{src: "1e3", want: ir.FromFloat(1000)},
	{src: "-2.5e-1", want: ir.FromFloat(-0.25)},
	{src: `"hi\n"`, want: ir.FromString("hi\n")},
	{src: `""`, want: ir.FromString("")},
	{src: "18446744073709551616", want: ir.FromDecimal("18446744073709551616")},
	{src: "NaN", want: ir.FromFloat(math.NaN())},
	{src: "Infinity", want: ir.FromFloat(math.Inf(1))},
	{src: "-Infinity", want: ir.FromFloat(math.Inf(-1))},

	{src: ""},
	{src: "bogus"},
	{src: `"unterminated`},
	{src: "1.2.3"},
	{src: "--1"},
}

func TestParseValue(t *testing.T) {
	for _, tc := range valueTests {
		got, err := ParseValue(tc.src)
		if tc.want == nil {
			if err == nil {
				t.Errorf("ParseValue(%q): no error", tc.src)
			} else if !errors.Is(err, ErrSyntax) {
				t.Errorf("ParseValue(%q): %v is not a syntax error", tc.src, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseValue(%q): %v", tc.src, err)
			continue
		}
		if !ir.Equal(got, tc.want) {
			t.Errorf("ParseValue(%q) = %+v, want %+v", tc.src, got, tc.want)
		}
	}
}
