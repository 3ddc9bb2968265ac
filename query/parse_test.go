package query

import (
	"errors"
	"testing"
)

type parseTest struct {
	src    string
	errOff int // -1: parse must succeed
}

var parseTests = []parseTest{
	{src: "$", errOff: -1},
	{src: "@", errOff: -1},
	{src: "$?", errOff: -1},
	{src: "$.a.b", errOff: -1},
	{src: "$.~.dotted~.name", errOff: -1},
	{src: "$[0]", errOff: -1},
	{src: "$[-1]", errOff: -1},
	{src: "$[1:3]", errOff: -1},
	{src: "$[::2]", errOff: -1},
	{src: "$[::-1]", errOff: -1},
	{src: "$[end:start:-1]", errOff: -1},
	{src: "$[@.a == 1]", errOff: -1},
	{src: `$[@.a == 1 && @.b != "x"]`, errOff: -1},
	{src: "$[!@.a]", errOff: -1},
	{src: "$[@.a < @.b]", errOff: -1},
	{src: "$.a[0].b?", errOff: -1},

	{src: "", errOff: 0},
	{src: "a", errOff: 0},
	{src: "$.", errOff: 2},
	{src: "$x", errOff: 1},
	{src: "$?x", errOff: 2},
	{src: "$[", errOff: 2},
	{src: "$[]", errOff: 2},
	{src: "$[1:2:0]", errOff: 1},
	{src: "$[bad]", errOff: 2},
	{src: "$[@.a = 1]", errOff: 6},
	{src: "$[!@.a == 1]", errOff: 7},
	{src: "$[@.a == ]", errOff: 9},
	{src: "$[@.a == 1 & @.b]", errOff: 11},
}

func TestParse(t *testing.T) {
	for _, tc := range parseTests {
		q, err := Parse(tc.src)
		if tc.errOff == -1 {
			if err != nil {
				t.Errorf("Parse(%q): %v", tc.src, err)
				continue
			}
			if q.String() != tc.src {
				t.Errorf("Parse(%q).String() = %q", tc.src, q.String())
			}
			continue
		}
		if err == nil {
			t.Errorf("Parse(%q): no error, want one at offset %d", tc.src, tc.errOff)
			continue
		}
		if !errors.Is(err, ErrSyntax) {
			t.Errorf("Parse(%q): %v is not a syntax error", tc.src, err)
			continue
		}
		var se *SyntaxError
		if !errors.As(err, &se) {
			t.Errorf("Parse(%q): %v carries no position", tc.src, err)
			continue
		}
		if se.Pos.Off != tc.errOff {
			t.Errorf("Parse(%q): error at offset %d, want %d: %v",
				tc.src, se.Pos.Off, tc.errOff, err)
		}
	}
}

func mustParse(t *testing.T, src string) *Query {
	t.Helper()
	q, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	return q
}

func TestParseStructure(t *testing.T) {
	q := mustParse(t, "$.a[1:3][@.b == 2]?")
	if q.Relative() || !q.Optional() {
		t.Fatalf("anchor flags: relative=%v optional=%v", q.Relative(), q.Optional())
	}
	if len(q.segs) != 3 {
		t.Fatalf("got %d segments", len(q.segs))
	}
	if q.segs[0].kind != segProperty || q.segs[0].name != "a" {
		t.Errorf("seg 0: %+v", q.segs[0])
	}
	if q.segs[1].kind != segSlice || q.segs[1].slice != (Slice{Start: 1, Stop: 3, Step: 1}) {
		t.Errorf("seg 1: %+v", q.segs[1])
	}
	if q.segs[2].kind != segFilter || len(q.segs[2].filter) != 1 {
		t.Fatalf("seg 2: %+v", q.segs[2])
	}
	c := q.segs[2].filter[0]
	if c.negate || c.op != cmpEQ || c.lhs.String() != "@.b" {
		t.Errorf("cond: %+v", c)
	}
	if c.value == nil || c.value.Int64 == nil || *c.value.Int64 != 2 {
		t.Errorf("cond value: %+v", c.value)
	}
}

func TestParseEscapedProperty(t *testing.T) {
	q := mustParse(t, "$.~.dotted~.name")
	if q.segs[0].name != ".dotted.name" {
		t.Errorf("unescaped name %q", q.segs[0].name)
	}
	if EscapeProperty(".dotted.name") != "~.dotted~.name" {
		t.Errorf("EscapeProperty = %q", EscapeProperty(".dotted.name"))
	}
}

// Omitted slice bounds follow the step direction.
func TestParseSliceDefaults(t *testing.T) {
	s := mustParse(t, "$[:]").segs[0].slice
	if s != (Slice{Start: Start, Stop: End, Step: 1}) {
		t.Errorf("$[:] = %+v", s)
	}
	s = mustParse(t, "$[::-1]").segs[0].slice
	if s != (Slice{Start: End, Stop: Start, Step: -1}) {
		t.Errorf("$[::-1] = %+v", s)
	}
	s = mustParse(t, "$[2::-1]").segs[0].slice
	if s != (Slice{Start: 2, Stop: Start, Step: -1}) {
		t.Errorf("$[2::-1] = %+v", s)
	}
}
