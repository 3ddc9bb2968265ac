package patch

import (
	"github.com/treedoc-format/go-treedoc/debug"
	"github.com/treedoc-format/go-treedoc/ir"
	"github.com/treedoc-format/go-treedoc/query"
)

func init() {
	Register(insertSym)
}

var insertSym = &insertSymbol{name: "insert"}

type insertSymbol struct {
	name
}

func (s *insertSymbol) Instance(rec *ir.Node) (Op, error) {
	path, err := recPath(rec)
	if err != nil {
		return nil, err
	}
	value, err := need(rec, "value")
	if err != nil {
		return nil, err
	}
	return &insertOp{name: s.name, path: path, value: value}, nil
}

type insertOp struct {
	name
	path  *query.Query
	value *ir.Node
}

func (o *insertOp) Apply(ac *Context) error {
	// the append position is a legal insertion point
	refs, err := ac.Resolve(o.path, &query.Options{Mapping: true})
	if err != nil {
		return err
	}
	// back to front: an insertion must not shift the remaining matches
	for _, r := range reversed(refs) {
		if r.Target == ac.Holder {
			return query.ValueErrorf("cannot insert at root")
		}
		if debug.Op() {
			debug.Logf("insert at %s", r.Key)
		}
		if err := r.Insert(o.value); err != nil {
			return err
		}
	}
	return nil
}
