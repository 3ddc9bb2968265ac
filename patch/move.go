package patch

import (
	"github.com/treedoc-format/go-treedoc/ir"
	"github.com/treedoc-format/go-treedoc/query"
)

func init() {
	Register(moveSym)
}

var moveSym = &moveSymbol{name: "move"}

type moveSymbol struct {
	name
}

func (s *moveSymbol) Instance(rec *ir.Node) (Op, error) {
	path, from, to, err := copyMoveFields(rec)
	if err != nil {
		return nil, err
	}
	if from.String() == "@" {
		return nil, query.ValueErrorf("cannot move a node onto itself")
	}
	return &moveOp{name: s.name, path: path, from: from, to: to}, nil
}

type moveOp struct {
	name
	path *query.Query
	from *query.Query
	to   *query.Query
}

// Apply reads the source, removes it, and only then resolves the
// destination, so the write sees post-removal indices.
func (o *moveOp) Apply(ac *Context) error {
	val, src, err := resolveFrom(ac, o.path, o.from)
	if err != nil {
		return err
	}
	if src.Target == ac.Holder {
		return query.ValueErrorf("cannot move root")
	}
	if err := src.Delete(); err != nil {
		return err
	}
	return writeTo(ac, o.path, o.to, val)
}
