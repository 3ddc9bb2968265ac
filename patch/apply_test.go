package patch

import (
	"errors"
	"strings"
	"testing"

	"github.com/treedoc-format/go-treedoc/codec"
	"github.com/treedoc-format/go-treedoc/ir"
	"github.com/treedoc-format/go-treedoc/query"
)

type applyTest struct {
	doc   string
	patch string
	want  string
	errIs error
}

var applyTests = []applyTest{
	// append / extend
	{doc: `[]`, patch: `[{"op": "append", "value": 1}]`, want: `[1]`},
	{doc: `{"a": []}`, patch: `[{"op": "append", "path": "$.a", "value": {"b": 2}}]`,
		want: `{"a": [{"b": 2}]}`},
	{doc: `{"a": 1}`, patch: `[{"op": "append", "value": 1}]`, errIs: query.ErrType},
	{doc: `[1]`, patch: `[{"op": "extend", "values": [2, 3]}]`, want: `[1, 2, 3]`},

	// insert
	{doc: `[1, 3]`, patch: `[{"op": "insert", "path": "$[1]", "value": 2}]`, want: `[1, 2, 3]`},
	{doc: `[1]`, patch: `[{"op": "insert", "path": "$[1]", "value": 2}]`, want: `[1, 2]`},
	{doc: `0`, patch: `[{"op": "insert", "path": "$", "value": 1}]`, errIs: query.ErrValue},

	// del, including reverse-order safety and root protection
	{doc: `[1, 0, 2, 0, 3]`, patch: `[{"op": "del", "path": "$[@ == 0]"}]`, want: `[1, 2, 3]`},
	{doc: `0`, patch: `[{"op": "del", "path": "$"}]`, errIs: query.ErrValue},
	{doc: `{"a": 1, "b": 2}`, patch: `[{"op": "del", "path": "$.b"}]`, want: `{"a": 1}`},
	{doc: `[1, 2, 3, 4]`, patch: `[{"op": "del", "path": "$[1:3]"}]`, want: `[1, 4]`},
	{doc: `{"a": 1}`, patch: `[{"op": "del", "path": "$.b"}]`, errIs: query.ErrValue},

	// set
	{doc: `{"a": 1}`, patch: `[{"op": "set", "path": "$.b", "value": 2}]`,
		want: `{"a": 1, "b": 2}`},
	{doc: `{"a": 1}`, patch: `[{"op": "set", "value": [1]}]`, want: `[1]`},
	{doc: `[1, 2, 3, 4]`, patch: `[{"op": "set", "path": "$[1:3]", "value": [9]}]`,
		want: `[1, 9, 4]`},
	// an empty slice selection keeps its position: an insertion point
	{doc: `[1, 2, 3, 4]`, patch: `[{"op": "set", "path": "$[2:2]", "value": [9]}]`,
		want: `[1, 2, 9, 3, 4]`},
	{doc: `[1, 2, 3, 4]`, patch: `[{"op": "set", "path": "$[10:20]", "value": [9]}]`,
		want: `[1, 2, 3, 4, 9]`},
	{doc: `[1, 2, 3, 4]`, patch: `[{"op": "set", "path": "$[0:0]", "value": [9]}]`,
		want: `[9, 1, 2, 3, 4]`},
	{doc: `[1, 2, 3, 4]`, patch: `[{"op": "set", "path": "$[3:1]", "value": [9]}]`,
		want: `[1, 2, 3, 9, 4]`},

	// clear / reverse / sort
	{doc: `[1, 2]`, patch: `[{"op": "clear"}]`, want: `[]`},
	{doc: `{"a": 1}`, patch: `[{"op": "clear"}]`, want: `{}`},
	{doc: `5`, patch: `[{"op": "clear"}]`, errIs: query.ErrType},
	{doc: `[1, 2, 3]`, patch: `[{"op": "reverse"}]`, want: `[3, 2, 1]`},
	{doc: `[3, 1, 2]`, patch: `[{"op": "sort"}]`, want: `[1, 2, 3]`},
	{doc: `[3, 1, 2]`, patch: `[{"op": "sort", "reverse": true}]`, want: `[3, 2, 1]`},

	// update
	{doc: `{"a": 1, "b": 2}`, patch: `[{"op": "update", "properties": {"b": 3, "c": 4}}]`,
		want: `{"a": 1, "b": 3, "c": 4}`},
	{doc: `[1]`, patch: `[{"op": "update", "properties": {"a": 1}}]`, errIs: query.ErrType},

	// copy / move
	{doc: `{"a": 1}`, patch: `[{"op": "copy", "from": "@.a", "to": "$.b"}]`,
		want: `{"a": 1, "b": 1}`},
	{doc: `{"a": 1}`, patch: `[{"op": "move", "from": "@.a", "to": "$.b"}]`,
		want: `{"b": 1}`},
	{doc: `{"a": 1}`, patch: `[{"op": "move", "from": "@", "to": "$.b"}]`,
		errIs: query.ErrValue},
	{doc: `[{"x": 1}, {"x": 2}]`,
		patch: `[{"op": "copy", "path": "$[0]", "from": "@.x", "to": "@.y"}]`,
		want:  `[{"x": 1, "y": 1}, {"x": 2}]`},
	{doc: `[1, 2]`, patch: `[{"op": "copy", "from": "@[@ > 0]", "to": "$.x"}]`,
		errIs: query.ErrValue},

	// assert
	{doc: `[1, 2]`, patch: `[{"op": "assert", "path": "$[@]", "expr": "@ < 3"}]`,
		want: `[1, 2]`},
	{doc: `[1, 5]`, patch: `[{"op": "assert", "path": "$[@]", "expr": "@ < 3"}]`,
		errIs: query.ErrValue},

	// document shape
	{doc: `{}`, patch: `[{"op": "bogus"}]`, errIs: query.ErrValue},
	{doc: `{}`, patch: `{"op": "set", "path": "$.a", "value": 1}`, want: `{"a": 1}`},
	{doc: `{}`, patch: `"nope"`, errIs: query.ErrType},
	{doc: `{}`, patch: `[{"path": "$"}]`, errIs: query.ErrValue},

	// extensions are off by default
	{doc: `[1]`, patch: `[{"op": "eval", "path": "$[0]", "expr": "value + 1"}]`,
		errIs: query.ErrValue},
}

func TestApply(t *testing.T) {
	for _, tc := range applyTests {
		doc := codec.MustDecode(tc.doc)
		got, err := Apply(doc, codec.MustDecode(tc.patch))
		if tc.errIs != nil {
			if !errors.Is(err, tc.errIs) {
				t.Errorf("%s to %s: err = %v, want %v", tc.patch, tc.doc, err, tc.errIs)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s to %s: %v", tc.patch, tc.doc, err)
			continue
		}
		if want := codec.MustDecode(tc.want); !ir.Equal(got, want) {
			t.Errorf("%s to %s = %s, want %s",
				tc.patch, tc.doc, codec.MustString(got), tc.want)
		}
	}
}

func TestEvalExtension(t *testing.T) {
	a := NewApplier(WithExtension("eval"))

	got, err := a.Apply(codec.MustDecode(`{"n": 2}`),
		codec.MustDecode(`[{"op": "eval", "path": "$.n", "expr": "value * 10"}]`))
	if err != nil {
		t.Fatal(err)
	}
	if want := codec.MustDecode(`{"n": 20}`); !ir.Equal(got, want) {
		t.Errorf("value binding: %s", codec.MustString(got))
	}

	got, err = a.Apply(codec.MustDecode(`{"a": 2, "b": 0}`),
		codec.MustDecode(`[{"op": "eval", "path": "$.b", "expr": "root.a + value"}]`))
	if err != nil {
		t.Fatal(err)
	}
	if want := codec.MustDecode(`{"a": 2, "b": 2}`); !ir.Equal(got, want) {
		t.Errorf("root binding: %s", codec.MustString(got))
	}
}

// A failure mid-document leaves earlier operations applied: the
// interpreter is deliberately not transactional.
func TestNoRollback(t *testing.T) {
	doc := codec.MustDecode(`[]`)
	_, err := Apply(doc, codec.MustDecode(
		`[{"op": "append", "value": 1}, {"op": "del", "path": "$"}]`))
	if err == nil {
		t.Fatal("no error")
	}
	if !strings.Contains(err.Error(), "op 1 (del)") {
		t.Errorf("error does not locate the failing op: %v", err)
	}
	if !ir.Equal(doc, codec.MustDecode(`[1]`)) {
		t.Errorf("earlier op was rolled back: %s", codec.MustString(doc))
	}
}

func TestSymbols(t *testing.T) {
	want := []string{
		"append", "assert", "clear", "copy", "del", "eval", "extend",
		"insert", "move", "reverse", "set", "sort", "update",
	}
	got := Symbols()
	if len(got) != len(want) {
		t.Fatalf("Symbols() = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Symbols() = %v", got)
		}
	}
}
