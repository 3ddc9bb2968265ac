package patch

// Operation record field extraction. Records are mappings; these
// helpers type-check the fields shared across the catalog.

import (
	"github.com/treedoc-format/go-treedoc/ir"
	"github.com/treedoc-format/go-treedoc/query"
)

// recPath compiles the record's "path" field, defaulting to "$".
func recPath(rec *ir.Node) (*query.Query, error) {
	src, ok, err := recString(rec, "path")
	if err != nil {
		return nil, err
	}
	if !ok {
		src = "$"
	}
	return query.Parse(src)
}

// recQuery compiles a required query-valued field.
func recQuery(rec *ir.Node, field string) (*query.Query, error) {
	src, ok, err := recString(rec, field)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, query.ValueErrorf("missing %q field", field)
	}
	return query.Parse(src)
}

// recString reads an optional string field. ok is false when absent.
func recString(rec *ir.Node, field string) (string, bool, error) {
	v := ir.Get(rec, field)
	if v == nil {
		return "", false, nil
	}
	if v.Type != ir.StringType {
		return "", false, query.TypeErrorf("%q field must be a string, got %s", field, v.Type)
	}
	return v.String, true, nil
}

// recBool reads an optional bool field, false when absent.
func recBool(rec *ir.Node, field string) (bool, error) {
	v := ir.Get(rec, field)
	if v == nil {
		return false, nil
	}
	if v.Type != ir.BoolType {
		return false, query.TypeErrorf("%q field must be a bool, got %s", field, v.Type)
	}
	return v.Bool, nil
}

// need reads a required field of any type.
func need(rec *ir.Node, field string) (*ir.Node, error) {
	v := ir.Get(rec, field)
	if v == nil {
		return nil, query.ValueErrorf("missing %q field", field)
	}
	return v, nil
}

// readSeq resolves a ref and checks the addressed value is a sequence.
func readSeq(r query.Ref) (*ir.Node, error) {
	node, err := r.Read()
	if err != nil {
		return nil, err
	}
	if node.Type != ir.ArrayType {
		return nil, query.TypeErrorf("need a sequence, got %s", node.Type)
	}
	return node, nil
}

// reversed iterates refs back to front so sequence mutations from one
// query don't invalidate the later matches of the same query.
func reversed(refs []query.Ref) []query.Ref {
	res := make([]query.Ref, len(refs))
	for i, r := range refs {
		res[len(refs)-1-i] = r
	}
	return res
}
