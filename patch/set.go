package patch

import (
	"github.com/treedoc-format/go-treedoc/ir"
	"github.com/treedoc-format/go-treedoc/query"
)

func init() {
	Register(setSym)
}

var setSym = &setSymbol{name: "set"}

type setSymbol struct {
	name
}

func (s *setSymbol) Instance(rec *ir.Node) (Op, error) {
	path, err := recPath(rec)
	if err != nil {
		return nil, err
	}
	value, err := need(rec, "value")
	if err != nil {
		return nil, err
	}
	return &setOp{name: s.name, path: path, value: value}, nil
}

type setOp struct {
	name
	path  *query.Query
	value *ir.Node
}

func (o *setOp) Apply(ac *Context) error {
	// slices permit bulk replaces; mapping mode lets set create new
	// keys and append positions
	refs, err := ac.Resolve(o.path, &query.Options{AllowSlice: true, Mapping: true})
	if err != nil {
		return err
	}
	for _, r := range refs {
		if err := r.Write(o.value); err != nil {
			return err
		}
	}
	return nil
}
