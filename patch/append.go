package patch

import (
	"github.com/treedoc-format/go-treedoc/ir"
	"github.com/treedoc-format/go-treedoc/query"
)

func init() {
	Register(appendSym)
}

var appendSym = &appendSymbol{name: "append"}

type appendSymbol struct {
	name
}

func (s *appendSymbol) Instance(rec *ir.Node) (Op, error) {
	path, err := recPath(rec)
	if err != nil {
		return nil, err
	}
	value, err := need(rec, "value")
	if err != nil {
		return nil, err
	}
	return &appendOp{name: s.name, path: path, value: value}, nil
}

type appendOp struct {
	name
	path  *query.Query
	value *ir.Node
}

func (o *appendOp) Apply(ac *Context) error {
	refs, err := ac.Resolve(o.path, nil)
	if err != nil {
		return err
	}
	for _, r := range refs {
		node, err := readSeq(r)
		if err != nil {
			return err
		}
		node.Append(o.value.Clone())
	}
	return nil
}
