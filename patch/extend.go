package patch

import (
	"github.com/treedoc-format/go-treedoc/ir"
	"github.com/treedoc-format/go-treedoc/query"
)

func init() {
	Register(extendSym)
}

var extendSym = &extendSymbol{name: "extend"}

type extendSymbol struct {
	name
}

func (s *extendSymbol) Instance(rec *ir.Node) (Op, error) {
	path, err := recPath(rec)
	if err != nil {
		return nil, err
	}
	values, err := need(rec, "values")
	if err != nil {
		return nil, err
	}
	if values.Type != ir.ArrayType {
		return nil, query.TypeErrorf("\"values\" field must be a sequence, got %s", values.Type)
	}
	return &extendOp{name: s.name, path: path, values: values}, nil
}

type extendOp struct {
	name
	path   *query.Query
	values *ir.Node
}

func (o *extendOp) Apply(ac *Context) error {
	refs, err := ac.Resolve(o.path, nil)
	if err != nil {
		return err
	}
	for _, r := range refs {
		node, err := readSeq(r)
		if err != nil {
			return err
		}
		for _, v := range o.values.Values {
			node.Append(v.Clone())
		}
	}
	return nil
}
