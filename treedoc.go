// Package treedoc manipulates JSON-like value trees through a path
// query language, a patch operation interpreter, and a structural diff
// whose output feeds back into the interpreter.
package treedoc

import (
	"github.com/treedoc-format/go-treedoc/ir"
	"github.com/treedoc-format/go-treedoc/libdiff"
	"github.com/treedoc-format/go-treedoc/patch"
	"github.com/treedoc-format/go-treedoc/query"
)

// Apply applies a patch document to doc, mutating it in place, and
// returns the resulting root. The root differs from doc when an
// operation replaced the whole document.
func Apply(doc, patchDoc *ir.Node) (*ir.Node, error) {
	return patch.Apply(doc, patchDoc)
}

// ApplyWith is Apply with extension operations enabled by name.
func ApplyWith(doc, patchDoc *ir.Node, exts ...string) (*ir.Node, error) {
	opts := make([]patch.Option, len(exts))
	for i, e := range exts {
		opts[i] = patch.WithExtension(e)
	}
	return patch.NewApplier(opts...).Apply(doc, patchDoc)
}

// Diff computes the patch document transforming old into new, so that
// Apply(old, Diff(old, new)) yields new.
func Diff(old, new *ir.Node) *ir.Node {
	return libdiff.Diff(old, new)
}

// Get returns a copy of the single value a query addresses. Queries
// matching zero or several locations are value errors.
func Get(doc *ir.Node, q string) (*ir.Node, error) {
	refs, err := query.Evaluate([]*ir.Node{doc}, q, nil)
	if err != nil {
		return nil, err
	}
	if len(refs) != 1 {
		return nil, query.ValueErrorf("%q matched %d locations, need exactly 1", q, len(refs))
	}
	v, err := refs[0].Read()
	if err != nil {
		return nil, err
	}
	return v.Clone(), nil
}

// List returns copies of every value a query addresses, slice results
// included.
func List(doc *ir.Node, q string) ([]*ir.Node, error) {
	refs, err := query.Evaluate([]*ir.Node{doc}, q, &query.Options{AllowSlice: true})
	if err != nil {
		return nil, err
	}
	res := make([]*ir.Node, len(refs))
	for i, r := range refs {
		v, err := r.Read()
		if err != nil {
			return nil, err
		}
		res[i] = v.Clone()
	}
	return res, nil
}
