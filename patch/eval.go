package patch

import (
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/treedoc-format/go-treedoc/debug"
	"github.com/treedoc-format/go-treedoc/ir"
	"github.com/treedoc-format/go-treedoc/query"
)

func init() {
	Register(evalSym)
}

var evalSym = &evalSymbol{name: "eval"}

type evalSymbol struct {
	name
}

func (s *evalSymbol) Instance(rec *ir.Node) (Op, error) {
	path, err := recPath(rec)
	if err != nil {
		return nil, err
	}
	src, ok, err := recString(rec, "expr")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, query.ValueErrorf("missing \"expr\" field")
	}
	prog, err := expr.Compile(src)
	if err != nil {
		return nil, query.ValueErrorf("bad expr %q: %v", src, err)
	}
	return &evalOp{name: s.name, path: path, src: src, prog: prog}, nil
}

// evalOp rewrites each resolved location with the result of an
// expression over it. It is an extension: appliers must enable it
// explicitly, since patch documents are often third-party input.
type evalOp struct {
	name
	path *query.Query
	src  string
	prog *vm.Program
}

func (o *evalOp) Apply(ac *Context) error {
	if !ac.Exts[string(o.name)] {
		return query.ValueErrorf("extension op %q not enabled", o.name)
	}
	refs, err := ac.Resolve(o.path, nil)
	if err != nil {
		return err
	}
	for _, r := range refs {
		cur, err := r.Read()
		if err != nil {
			return err
		}
		root, err := ac.Roots[0].Read()
		if err != nil {
			return err
		}
		env := map[string]any{
			"value": ir.ToAny(cur),
			"root":  ir.ToAny(root),
		}
		out, err := expr.Run(o.prog, env)
		if err != nil {
			return query.ValueErrorf("eval %q: %v", o.src, err)
		}
		if debug.Op() {
			debug.Logf("eval %q -> %v", o.src, out)
		}
		node, err := ir.FromAny(out)
		if err != nil {
			return query.TypeErrorf("eval %q produced unsupported %T", o.src, out)
		}
		if err := r.Write(node); err != nil {
			return err
		}
	}
	return nil
}
