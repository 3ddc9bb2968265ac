package patch

import (
	"github.com/treedoc-format/go-treedoc/ir"
	"github.com/treedoc-format/go-treedoc/query"
)

func init() {
	Register(reverseSym)
}

var reverseSym = &reverseSymbol{name: "reverse"}

type reverseSymbol struct {
	name
}

func (s *reverseSymbol) Instance(rec *ir.Node) (Op, error) {
	path, err := recPath(rec)
	if err != nil {
		return nil, err
	}
	return &reverseOp{name: s.name, path: path}, nil
}

type reverseOp struct {
	name
	path *query.Query
}

func (o *reverseOp) Apply(ac *Context) error {
	refs, err := ac.Resolve(o.path, nil)
	if err != nil {
		return err
	}
	for _, r := range refs {
		node, err := readSeq(r)
		if err != nil {
			return err
		}
		node.Reverse()
	}
	return nil
}
