package patch

import (
	"github.com/treedoc-format/go-treedoc/ir"
	"github.com/treedoc-format/go-treedoc/query"
)

func init() {
	Register(assertSym)
}

var assertSym = &assertSymbol{name: "assert"}

type assertSymbol struct {
	name
}

func (s *assertSymbol) Instance(rec *ir.Node) (Op, error) {
	path, err := recPath(rec)
	if err != nil {
		return nil, err
	}
	expr, ok, err := recString(rec, "expr")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, query.ValueErrorf("missing \"expr\" field")
	}
	// fail on bad filter text at instantiation, before any mutation
	if _, err := query.ParseFilter(expr); err != nil {
		return nil, err
	}
	return &assertOp{name: s.name, path: path, expr: expr}, nil
}

type assertOp struct {
	name
	path *query.Query
	expr string
}

// Apply fails unless every node the path resolves satisfies the filter
// expression. Patch documents use it as an executable precondition in
// front of destructive operations.
func (o *assertOp) Apply(ac *Context) error {
	refs, err := ac.Resolve(o.path, nil)
	if err != nil {
		return err
	}
	nodes := make([]*ir.Node, len(refs))
	for i, r := range refs {
		if nodes[i], err = r.Read(); err != nil {
			return err
		}
	}
	kept, err := query.FilterEvaluate(nodes, o.expr)
	if err != nil {
		return err
	}
	if len(kept) != len(nodes) {
		return query.ValueErrorf("assertion %q failed for %d of %d nodes",
			o.expr, len(nodes)-len(kept), len(nodes))
	}
	return nil
}
