package patch

import (
	"github.com/treedoc-format/go-treedoc/ir"
	"github.com/treedoc-format/go-treedoc/query"
)

func init() {
	Register(clearSym)
}

var clearSym = &clearSymbol{name: "clear"}

type clearSymbol struct {
	name
}

func (s *clearSymbol) Instance(rec *ir.Node) (Op, error) {
	path, err := recPath(rec)
	if err != nil {
		return nil, err
	}
	return &clearOp{name: s.name, path: path}, nil
}

type clearOp struct {
	name
	path *query.Query
}

func (o *clearOp) Apply(ac *Context) error {
	refs, err := ac.Resolve(o.path, nil)
	if err != nil {
		return err
	}
	for _, r := range refs {
		node, err := r.Read()
		if err != nil {
			return err
		}
		if !node.Type.IsContainer() {
			return query.TypeErrorf("cannot clear %s", node.Type)
		}
		node.Clear()
	}
	return nil
}
