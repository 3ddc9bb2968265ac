package patch

import (
	"github.com/treedoc-format/go-treedoc/ir"
	"github.com/treedoc-format/go-treedoc/query"
)

func init() {
	Register(sortSym)
}

var sortSym = &sortSymbol{name: "sort"}

type sortSymbol struct {
	name
}

func (s *sortSymbol) Instance(rec *ir.Node) (Op, error) {
	path, err := recPath(rec)
	if err != nil {
		return nil, err
	}
	rev, err := recBool(rec, "reverse")
	if err != nil {
		return nil, err
	}
	return &sortOp{name: s.name, path: path, reverse: rev}, nil
}

type sortOp struct {
	name
	path    *query.Query
	reverse bool
}

func (o *sortOp) Apply(ac *Context) error {
	refs, err := ac.Resolve(o.path, nil)
	if err != nil {
		return err
	}
	for _, r := range refs {
		node, err := readSeq(r)
		if err != nil {
			return err
		}
		if o.reverse {
			node.Sort(func(a, b *ir.Node) bool { return ir.Compare(a, b) > 0 })
			continue
		}
		node.Sort(func(a, b *ir.Node) bool { return ir.Compare(a, b) < 0 })
	}
	return nil
}
