package libdiff

// Operation record constructors, matching the patch document wire
// shape.

import (
	"strconv"

	"github.com/treedoc-format/go-treedoc/ir"
	"github.com/treedoc-format/go-treedoc/query"
)

func mkDel(path string) *ir.Node {
	return ir.FromKeyVals([]ir.KeyVal{
		{Key: ir.FromString("op"), Val: ir.FromString("del")},
		{Key: ir.FromString("path"), Val: ir.FromString(path)},
	})
}

func mkSet(path string, v *ir.Node) *ir.Node {
	return ir.FromKeyVals([]ir.KeyVal{
		{Key: ir.FromString("op"), Val: ir.FromString("set")},
		{Key: ir.FromString("path"), Val: ir.FromString(path)},
		{Key: ir.FromString("value"), Val: v.Clone()},
	})
}

func mkInsert(path string, v *ir.Node) *ir.Node {
	return ir.FromKeyVals([]ir.KeyVal{
		{Key: ir.FromString("op"), Val: ir.FromString("insert")},
		{Key: ir.FromString("path"), Val: ir.FromString(path)},
		{Key: ir.FromString("value"), Val: v.Clone()},
	})
}

func fieldPath(path, key string) string {
	return path + "." + query.EscapeProperty(key)
}

func indexPath(path string, i int) string {
	return path + "[" + strconv.Itoa(i) + "]"
}
