package ir

import "sort"

// In-place container mutation. These are the only functions that grow,
// shrink or reorder Fields/Values; they keep the Parent/ParentIndex/
// ParentField bookkeeping consistent so node identity survives mutation.

func (y *Node) reindex(from int) {
	for i := from; i < len(y.Values); i++ {
		v := y.Values[i]
		v.Parent = y
		v.ParentIndex = i
		if y.Type == ObjectType {
			f := y.Fields[i]
			f.Parent = y
			f.ParentIndex = i
			f.ParentField = f.String
			v.ParentField = f.String
		}
	}
}

// InsertAt inserts v at index i of an array node, 0 <= i <= len.
func (y *Node) InsertAt(i int, v *Node) {
	y.Values = append(y.Values, nil)
	copy(y.Values[i+1:], y.Values[i:])
	y.Values[i] = v
	y.reindex(i)
}

// Append pushes v onto an array node.
func (y *Node) Append(v *Node) {
	y.Values = append(y.Values, v)
	y.reindex(len(y.Values) - 1)
}

// RemoveAt removes and returns the value at index i of an array node.
func (y *Node) RemoveAt(i int) *Node {
	v := y.Values[i]
	y.Values = append(y.Values[:i], y.Values[i+1:]...)
	v.Parent = nil
	y.reindex(i)
	return v
}

// SetAt replaces the value at index i of an array node.
func (y *Node) SetAt(i int, v *Node) {
	old := y.Values[i]
	old.Parent = nil
	y.Values[i] = v
	y.reindex(i)
}

// Splice replaces Values[start:stop] of an array node with vs.
func (y *Node) Splice(start, stop int, vs []*Node) {
	for _, old := range y.Values[start:stop] {
		old.Parent = nil
	}
	res := make([]*Node, 0, len(y.Values)-(stop-start)+len(vs))
	res = append(res, y.Values[:start]...)
	res = append(res, vs...)
	res = append(res, y.Values[stop:]...)
	y.Values = res
	y.reindex(start)
}

// FieldIndex returns the index of the named field of an object node,
// or -1 when absent.
func (y *Node) FieldIndex(name string) int {
	for i := range y.Fields {
		if y.Fields[i].String == name {
			return i
		}
	}
	return -1
}

// SetField replaces the named field's value, or appends a new field
// when the key is absent.
func (y *Node) SetField(name string, v *Node) {
	if i := y.FieldIndex(name); i >= 0 {
		old := y.Values[i]
		old.Parent = nil
		y.Values[i] = v
		y.reindex(i)
		return
	}
	f := &Node{Type: StringType, String: name}
	y.Fields = append(y.Fields, f)
	y.Values = append(y.Values, v)
	y.reindex(len(y.Values) - 1)
}

// RemoveField removes the named field of an object node. It reports
// whether the key was present.
func (y *Node) RemoveField(name string) bool {
	i := y.FieldIndex(name)
	if i < 0 {
		return false
	}
	y.Values[i].Parent = nil
	y.Fields = append(y.Fields[:i], y.Fields[i+1:]...)
	y.Values = append(y.Values[:i], y.Values[i+1:]...)
	y.reindex(i)
	return true
}

// Clear empties a container node in place.
func (y *Node) Clear() {
	for _, v := range y.Values {
		v.Parent = nil
	}
	y.Fields = nil
	y.Values = nil
}

// Sort reorders an array node in place under less, stably.
func (y *Node) Sort(less func(a, b *Node) bool) {
	sort.SliceStable(y.Values, func(i, j int) bool {
		return less(y.Values[i], y.Values[j])
	})
	y.reindex(0)
}

// Reverse reverses an array node in place.
func (y *Node) Reverse() {
	n := len(y.Values)
	for i := 0; i < n/2; i++ {
		y.Values[i], y.Values[n-1-i] = y.Values[n-1-i], y.Values[i]
	}
	y.reindex(0)
}
