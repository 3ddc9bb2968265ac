package patch

import (
	"github.com/treedoc-format/go-treedoc/ir"
	"github.com/treedoc-format/go-treedoc/query"
)

func init() {
	Register(copySym)
}

var copySym = &copySymbol{name: "copy"}

type copySymbol struct {
	name
}

func (s *copySymbol) Instance(rec *ir.Node) (Op, error) {
	path, from, to, err := copyMoveFields(rec)
	if err != nil {
		return nil, err
	}
	return &copyOp{name: s.name, path: path, from: from, to: to}, nil
}

type copyOp struct {
	name
	path *query.Query
	from *query.Query
	to   *query.Query
}

func (o *copyOp) Apply(ac *Context) error {
	val, _, err := resolveFrom(ac, o.path, o.from)
	if err != nil {
		return err
	}
	return writeTo(ac, o.path, o.to, val)
}

func copyMoveFields(rec *ir.Node) (path, from, to *query.Query, err error) {
	if path, err = recPath(rec); err != nil {
		return nil, nil, nil, err
	}
	if from, err = recQuery(rec, "from"); err != nil {
		return nil, nil, nil, err
	}
	if !from.Relative() {
		return nil, nil, nil, query.ValueErrorf("\"from\" must be a relative query, got %q", from)
	}
	if to, err = recQuery(rec, "to"); err != nil {
		return nil, nil, nil, err
	}
	return path, from, to, nil
}

// resolveFrom resolves the operation's path, then the from query over
// the matches. Exactly one source location must result; its value is
// returned as a copy along with its ref.
func resolveFrom(ac *Context, path, from *query.Query) (*ir.Node, query.Ref, error) {
	pathRefs, err := ac.Resolve(path, nil)
	if err != nil {
		return nil, query.Ref{}, err
	}
	srcs, err := query.EvalRefs(pathRefs, from, &query.Options{Relative: true})
	if err != nil {
		return nil, query.Ref{}, err
	}
	if len(srcs) != 1 {
		return nil, query.Ref{}, query.ValueErrorf(
			"%q matched %d locations, need exactly 1", from, len(srcs))
	}
	v, err := srcs[0].Read()
	if err != nil {
		return nil, query.Ref{}, err
	}
	return v.Clone(), srcs[0], nil
}

// writeTo resolves the destination and assigns val at every match. A
// relative destination anchors at the path matches, an absolute one at
// the document roots.
func writeTo(ac *Context, path, to *query.Query, val *ir.Node) error {
	bases := ac.Roots
	if to.Relative() {
		pathRefs, err := ac.Resolve(path, nil)
		if err != nil {
			return err
		}
		bases = pathRefs
	}
	dsts, err := query.EvalRefs(bases, to, &query.Options{Relative: true, Mapping: true})
	if err != nil {
		return err
	}
	for _, d := range dsts {
		if err := d.Write(val); err != nil {
			return err
		}
	}
	return nil
}
