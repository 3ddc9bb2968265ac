package patch

import (
	"github.com/treedoc-format/go-treedoc/debug"
	"github.com/treedoc-format/go-treedoc/ir"
	"github.com/treedoc-format/go-treedoc/query"
)

func init() {
	Register(delSym)
}

var delSym = &delSymbol{name: "del"}

type delSymbol struct {
	name
}

func (s *delSymbol) Instance(rec *ir.Node) (Op, error) {
	path, err := recPath(rec)
	if err != nil {
		return nil, err
	}
	return &delOp{name: s.name, path: path}, nil
}

type delOp struct {
	name
	path *query.Query
}

func (o *delOp) Apply(ac *Context) error {
	refs, err := ac.Resolve(o.path, &query.Options{AllowSlice: true})
	if err != nil {
		return err
	}
	// back to front: a removal must not shift the remaining matches
	for _, r := range reversed(refs) {
		if r.Target == ac.Holder {
			return query.ValueErrorf("cannot delete root")
		}
		if debug.Op() {
			debug.Logf("del at %s", r.Key)
		}
		if err := r.Delete(); err != nil {
			return err
		}
	}
	return nil
}
