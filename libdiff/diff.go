// Package libdiff derives patch documents from tree pairs: applying
// Diff(old, new) to old yields new. Sequences align by longest common
// subsequence so the emitted del/insert set is minimal.
package libdiff

import (
	"github.com/treedoc-format/go-treedoc/debug"
	"github.com/treedoc-format/go-treedoc/ir"
)

// Diff computes the patch document transforming old into new when its
// operations apply in order. Equal trees produce an empty document.
func Diff(old, new *ir.Node) *ir.Node {
	var ops []*ir.Node
	walk(old, new, "$", &ops)
	if debug.Diff() {
		debug.Logf("diff: %d ops", len(ops))
	}
	return ir.FromSlice(ops)
}

func walk(old, new *ir.Node, path string, ops *[]*ir.Node) {
	if ir.Equal(old, new) {
		return
	}
	switch {
	case old.Type == ir.ObjectType && new.Type == ir.ObjectType:
		walkObjects(old, new, path, ops)
	case old.Type == ir.ArrayType && new.Type == ir.ArrayType:
		walkSequences(old, new, path, ops)
	default:
		*ops = append(*ops, mkSet(path, new))
	}
}

// walkObjects deletes old-only keys in old's field order, then walks
// new's field order, setting new-only keys and recursing into common
// ones.
func walkObjects(old, new *ir.Node, path string, ops *[]*ir.Node) {
	oldKeys, newKeys := ir.ToMap(old), ir.ToMap(new)
	for i := range old.Fields {
		k := old.Fields[i].String
		if _, ok := newKeys[k]; !ok {
			*ops = append(*ops, mkDel(fieldPath(path, k)))
		}
	}
	for i := range new.Fields {
		k := new.Fields[i].String
		ov, ok := oldKeys[k]
		if !ok {
			*ops = append(*ops, mkSet(fieldPath(path, k), new.Values[i]))
			continue
		}
		walk(ov, new.Values[i], fieldPath(path, k), ops)
	}
}

// walkSequences classifies each position against the LCS alignment:
// matched positions advance silently, paired mismatches recurse as a
// replace-in-place, and one-sided mismatches emit del/insert. All
// emitted paths carry the new-side index so that applying the ops in
// order against the evolving sequence stays index-consistent.
func walkSequences(old, new *ir.Node, path string, ops *[]*ir.Node) {
	pairs := lcsPairs(old.Values, new.Values)
	i, j, k := 0, 0, 0
	for i < len(old.Values) || j < len(new.Values) {
		mi, mj := -1, -1
		if k < len(pairs) {
			mi, mj = pairs[k].oi, pairs[k].nj
		}
		switch {
		case i == mi && j == mj:
			i++
			j++
			k++
		case i < len(old.Values) && i != mi && j < len(new.Values) && j != mj:
			walk(old.Values[i], new.Values[j], indexPath(path, j), ops)
			i++
			j++
		case i < len(old.Values) && i != mi:
			*ops = append(*ops, mkDel(indexPath(path, j)))
			i++
		default:
			*ops = append(*ops, mkInsert(indexPath(path, j), new.Values[j]))
			j++
		}
	}
}
