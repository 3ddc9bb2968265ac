package query

import (
	"sort"

	"github.com/treedoc-format/go-treedoc/ir"
)

// Ref addresses one location in a document tree without owning it: a
// container node held by identity plus a key into it. Mutating through
// one ref is visible through every other ref aliasing the same
// container; the patch interpreter depends on that.
type Ref struct {
	Target *ir.Node
	Key    Key
}

// Root wraps doc in a fresh length-1 holder sequence and returns the
// ref addressing it. The holder gives queries with path "$" a stable
// outer container, so even the whole document can be replaced.
func Root(doc *ir.Node) Ref {
	holder := ir.FromSlice([]*ir.Node{doc})
	return Ref{Target: holder, Key: IndexKey(0)}
}

// lookup resolves the ref to its addressed child node. ok is false when
// the location does not exist; the error reports container/key kind
// mismatches. Slice refs always resolve and yield no single node.
func (r Ref) lookup() (*ir.Node, bool, error) {
	switch r.Key.Kind {
	case FieldKind:
		if r.Target.Type != ir.ObjectType {
			return nil, false, TypeErrorf("property %q of %s", r.Key.Field, r.Target.Type)
		}
		i := r.Target.FieldIndex(r.Key.Field)
		if i < 0 {
			return nil, false, nil
		}
		return r.Target.Values[i], true, nil
	case IndexKind:
		if r.Target.Type != ir.ArrayType {
			return nil, false, TypeErrorf("index %d of %s", r.Key.Index, r.Target.Type)
		}
		i, ok := r.resolveIndex()
		if !ok {
			return nil, false, nil
		}
		return r.Target.Values[i], true, nil
	case SliceKind:
		if r.Target.Type != ir.ArrayType {
			return nil, false, TypeErrorf("slice of %s", r.Target.Type)
		}
		return nil, true, nil
	}
	panic("key kind")
}

func (r Ref) resolveIndex() (int, bool) {
	n := int64(len(r.Target.Values))
	i := r.Key.Index
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		return 0, false
	}
	return int(i), true
}

// Exists reports whether the addressed location is present.
func (r Ref) Exists() (bool, error) {
	_, ok, err := r.lookup()
	return ok, err
}

// Read returns the addressed value. For slice refs the selected
// sub-range is materialized as a new sequence of copies; all other
// kinds return the tree's own node.
func (r Ref) Read() (*ir.Node, error) {
	v, ok, err := r.lookup()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, r.absentErr()
	}
	if r.Key.Kind != SliceKind {
		return v, nil
	}
	idxs := r.Key.Slice.indices(len(r.Target.Values))
	vals := make([]*ir.Node, len(idxs))
	for i, idx := range idxs {
		vals[i] = r.Target.Values[idx].Clone()
	}
	return ir.FromSlice(vals), nil
}

func (r Ref) absentErr() error {
	switch r.Key.Kind {
	case FieldKind:
		return ValueErrorf("no key %q", r.Key.Field)
	default:
		return ValueErrorf("index %d out of range (len %d)", r.Key.Index, len(r.Target.Values))
	}
}

// Write assigns v at the addressed location, deep-copying v first so
// the tree never aliases caller-held structures. Absent object keys are
// created; the one-past-end sequence index appends. Slice refs replace
// the selected sub-range: v must be a sequence, and for non-unit steps
// its length must match the selection.
func (r Ref) Write(v *ir.Node) error {
	switch r.Key.Kind {
	case FieldKind:
		if r.Target.Type != ir.ObjectType {
			return TypeErrorf("property %q of %s", r.Key.Field, r.Target.Type)
		}
		r.Target.SetField(r.Key.Field, v.Clone())
		return nil
	case IndexKind:
		if r.Target.Type != ir.ArrayType {
			return TypeErrorf("index %d of %s", r.Key.Index, r.Target.Type)
		}
		if i, ok := r.resolveIndex(); ok {
			r.Target.SetAt(i, v.Clone())
			return nil
		}
		if r.Key.Index == int64(len(r.Target.Values)) {
			r.Target.Append(v.Clone())
			return nil
		}
		return r.absentErr()
	case SliceKind:
		if r.Target.Type != ir.ArrayType {
			return TypeErrorf("slice of %s", r.Target.Type)
		}
		if v.Type != ir.ArrayType {
			return TypeErrorf("slice assignment needs a sequence, got %s", v.Type)
		}
		if r.Key.Slice.Step == 1 {
			vals := make([]*ir.Node, len(v.Values))
			for i, e := range v.Values {
				vals[i] = e.Clone()
			}
			// an empty selection is still positioned: splice there
			start, stop := r.Key.Slice.bounds(len(r.Target.Values))
			r.Target.Splice(start, stop, vals)
			return nil
		}
		idxs := r.Key.Slice.indices(len(r.Target.Values))
		if len(idxs) != len(v.Values) {
			return ValueErrorf("slice assignment length mismatch: %d selected, %d given",
				len(idxs), len(v.Values))
		}
		for i, idx := range idxs {
			r.Target.SetAt(idx, v.Values[i].Clone())
		}
		return nil
	}
	panic("key kind")
}

// Delete removes the addressed location from its container.
func (r Ref) Delete() error {
	switch r.Key.Kind {
	case FieldKind:
		if r.Target.Type != ir.ObjectType {
			return TypeErrorf("property %q of %s", r.Key.Field, r.Target.Type)
		}
		if !r.Target.RemoveField(r.Key.Field) {
			return r.absentErr()
		}
		return nil
	case IndexKind:
		if r.Target.Type != ir.ArrayType {
			return TypeErrorf("index %d of %s", r.Key.Index, r.Target.Type)
		}
		i, ok := r.resolveIndex()
		if !ok {
			return r.absentErr()
		}
		r.Target.RemoveAt(i)
		return nil
	case SliceKind:
		if r.Target.Type != ir.ArrayType {
			return TypeErrorf("slice of %s", r.Target.Type)
		}
		idxs := r.Key.Slice.indices(len(r.Target.Values))
		// descending so earlier removals don't shift later ones
		sort.Sort(sort.Reverse(sort.IntSlice(idxs)))
		for _, idx := range idxs {
			r.Target.RemoveAt(idx)
		}
		return nil
	}
	panic("key kind")
}

// Insert places v at the addressed sequence position, shifting later
// elements right. Only index refs accept insertion; the index may equal
// the sequence length (append position).
func (r Ref) Insert(v *ir.Node) error {
	if r.Key.Kind != IndexKind {
		return TypeErrorf("insert needs a sequence position, got %s key", r.Key.Kind)
	}
	if r.Target.Type != ir.ArrayType {
		return TypeErrorf("index %d of %s", r.Key.Index, r.Target.Type)
	}
	n := int64(len(r.Target.Values))
	i := r.Key.Index
	if i < 0 {
		i += n
	}
	if i < 0 || i > n {
		return ValueErrorf("insert index %d out of range (len %d)", r.Key.Index, n)
	}
	r.Target.InsertAt(int(i), v.Clone())
	return nil
}

func (k KeyKind) String() string {
	switch k {
	case IndexKind:
		return "index"
	case SliceKind:
		return "slice"
	case FieldKind:
		return "property"
	}
	return "<unknown key kind>"
}
