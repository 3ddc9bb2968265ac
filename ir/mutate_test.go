package ir

import "testing"

func intsOf(t *testing.T, y *Node) []int64 {
	t.Helper()
	res := make([]int64, len(y.Values))
	for i, v := range y.Values {
		if v.Int64 == nil {
			t.Fatalf("value %d is not an int", i)
		}
		res[i] = *v.Int64
	}
	return res
}

func checkParents(t *testing.T, y *Node) {
	t.Helper()
	for i, v := range y.Values {
		if v.Parent != y {
			t.Errorf("value %d has wrong parent", i)
		}
		if v.ParentIndex != i {
			t.Errorf("value %d has ParentIndex %d", i, v.ParentIndex)
		}
	}
	for i, f := range y.Fields {
		if f.ParentIndex != i {
			t.Errorf("field %d has ParentIndex %d", i, f.ParentIndex)
		}
		if y.Values[i].ParentField != f.String {
			t.Errorf("value %d has ParentField %q, field is %q",
				i, y.Values[i].ParentField, f.String)
		}
	}
}

func TestArrayMutation(t *testing.T) {
	arr := FromSlice([]*Node{FromInt(1), FromInt(2), FromInt(3)})

	arr.InsertAt(1, FromInt(9))
	want := []int64{1, 9, 2, 3}
	for i, w := range want {
		if got := intsOf(t, arr)[i]; got != w {
			t.Fatalf("after insert: got %v at %d, want %v", got, i, w)
		}
	}
	checkParents(t, arr)

	arr.RemoveAt(0)
	if got := intsOf(t, arr); got[0] != 9 || len(got) != 3 {
		t.Fatalf("after remove: %v", got)
	}
	checkParents(t, arr)

	arr.SetAt(2, FromInt(7))
	if got := intsOf(t, arr); got[2] != 7 {
		t.Fatalf("after set: %v", got)
	}
	checkParents(t, arr)

	arr.Splice(0, 2, []*Node{FromInt(5)})
	if got := intsOf(t, arr); len(got) != 2 || got[0] != 5 || got[1] != 7 {
		t.Fatalf("after splice: %v", got)
	}
	checkParents(t, arr)

	arr.Reverse()
	if got := intsOf(t, arr); got[0] != 7 || got[1] != 5 {
		t.Fatalf("after reverse: %v", got)
	}
	checkParents(t, arr)

	arr.Clear()
	if len(arr.Values) != 0 {
		t.Fatal("clear left values")
	}
}

func TestObjectMutation(t *testing.T) {
	obj := FromKeyVals([]KeyVal{
		{Key: FromString("a"), Val: FromInt(1)},
		{Key: FromString("b"), Val: FromInt(2)},
	})

	obj.SetField("a", FromInt(10))
	if v := Get(obj, "a"); v.Int64 == nil || *v.Int64 != 10 {
		t.Fatal("set existing field")
	}
	obj.SetField("c", FromInt(3))
	if obj.Fields[2].String != "c" {
		t.Fatal("new field not appended at end")
	}
	checkParents(t, obj)

	if !obj.RemoveField("a") {
		t.Fatal("remove reported absent")
	}
	if obj.RemoveField("a") {
		t.Fatal("double remove reported present")
	}
	if obj.FieldIndex("b") != 0 || obj.FieldIndex("c") != 1 {
		t.Fatal("field order broken after removal")
	}
	checkParents(t, obj)
}
