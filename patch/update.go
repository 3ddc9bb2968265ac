package patch

import (
	"github.com/treedoc-format/go-treedoc/ir"
	"github.com/treedoc-format/go-treedoc/query"
)

func init() {
	Register(updateSym)
}

var updateSym = &updateSymbol{name: "update"}

type updateSymbol struct {
	name
}

func (s *updateSymbol) Instance(rec *ir.Node) (Op, error) {
	path, err := recPath(rec)
	if err != nil {
		return nil, err
	}
	props, err := need(rec, "properties")
	if err != nil {
		return nil, err
	}
	if props.Type != ir.ObjectType {
		return nil, query.TypeErrorf("\"properties\" field must be a mapping, got %s", props.Type)
	}
	return &updateOp{name: s.name, path: path, props: props}, nil
}

type updateOp struct {
	name
	path  *query.Query
	props *ir.Node
}

func (o *updateOp) Apply(ac *Context) error {
	refs, err := ac.Resolve(o.path, nil)
	if err != nil {
		return err
	}
	for _, r := range refs {
		node, err := r.Read()
		if err != nil {
			return err
		}
		if node.Type != ir.ObjectType {
			return query.TypeErrorf("cannot update %s", node.Type)
		}
		for i := range o.props.Fields {
			node.SetField(o.props.Fields[i].String, o.props.Values[i].Clone())
		}
	}
	return nil
}
