package codec

import (
	"math"
	"strings"
	"testing"

	"github.com/treedoc-format/go-treedoc/ir"
)

func TestRoundTrip(t *testing.T) {
	docs := []string{
		`null`,
		`true`,
		`3`,
		`3.5`,
		`"hello"`,
		`[]`,
		`{}`,
		`[1, "two", null, [3], {"4": 5}]`,
		`{"a": {"b": [1, 2]}, "c": false}`,
		"a: 1\nb:\n  - x\n  - y\n",
	}
	for _, doc := range docs {
		node, err := DecodeString(doc)
		if err != nil {
			t.Fatalf("%q: %v", doc, err)
		}
		out, err := Encode(node)
		if err != nil {
			t.Fatalf("%q: %v", doc, err)
		}
		back, err := Decode(out)
		if err != nil {
			t.Fatalf("%q: re-decode %q: %v", doc, out, err)
		}
		if !ir.Equal(node, back) {
			t.Errorf("%q: round trip gave %q", doc, out)
		}
	}
}

func TestKeyOrderPreserved(t *testing.T) {
	node := MustDecode(`{"b": 1, "a": 2, "c": 3}`)
	want := []string{"b", "a", "c"}
	for i, f := range node.Fields {
		if f.String != want[i] {
			t.Fatalf("decoded order %d = %q, want %q", i, f.String, want[i])
		}
	}
	out := MustString(node)
	back := MustDecode(out)
	for i, f := range back.Fields {
		if f.String != want[i] {
			t.Errorf("re-encoded order %d = %q, want %q", i, f.String, want[i])
		}
	}
}

func TestScalarKinds(t *testing.T) {
	for _, tc := range []struct {
		src   string
		check func(n *ir.Node) bool
	}{
		{`3`, func(n *ir.Node) bool { return n.Int64 != nil && *n.Int64 == 3 }},
		{`0x10`, func(n *ir.Node) bool { return n.Int64 != nil && *n.Int64 == 16 }},
		{`3.0`, func(n *ir.Node) bool { return n.Float64 != nil && *n.Float64 == 3.0 }},
		{`1e3`, func(n *ir.Node) bool { return n.Float64 != nil && *n.Float64 == 1000 }},
		{`.nan`, func(n *ir.Node) bool { return n.Float64 != nil && math.IsNaN(*n.Float64) }},
		{`-.inf`, func(n *ir.Node) bool { return n.Float64 != nil && math.IsInf(*n.Float64, -1) }},
		// past int64, kept as a decimal string
		{`36893488147419103232`, func(n *ir.Node) bool { return n.Number == "36893488147419103232" }},
		{`"3"`, func(n *ir.Node) bool { return n.Type == ir.StringType && n.String == "3" }},
	} {
		node, err := DecodeString(tc.src)
		if err != nil {
			t.Fatalf("%q: %v", tc.src, err)
		}
		if node.Type != ir.StringType && node.Type != ir.NumberType {
			t.Fatalf("%q: decoded as %v", tc.src, node.Type)
		}
		if !tc.check(node) {
			t.Errorf("%q: decoded as %s", tc.src, MustString(node))
		}
	}
}

func TestEncodeJSON(t *testing.T) {
	node := MustDecode("b: 1\na:\n  - null\n  - true\n")
	out, err := Encode(node, JSON())
	if err != nil {
		t.Fatal(err)
	}
	s := strings.TrimSpace(string(out))
	if !strings.HasPrefix(s, "{") || !strings.HasSuffix(s, "}") {
		t.Fatalf("not a JSON object: %q", s)
	}
	if !ir.Equal(MustDecode(s), node) {
		t.Errorf("JSON encoding changed the value: %q", s)
	}
}

func TestDecodeError(t *testing.T) {
	if _, err := DecodeString("a: [1, 2"); err == nil {
		t.Error("unterminated flow sequence decoded")
	}
}
