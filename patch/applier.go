package patch

import (
	"fmt"

	"github.com/treedoc-format/go-treedoc/debug"
	"github.com/treedoc-format/go-treedoc/ir"
	"github.com/treedoc-format/go-treedoc/query"
)

// Applier applies patch documents. It holds only configuration and is
// safe to reuse across independent trees; mutating the same tree from
// multiple goroutines at once is the caller's problem.
type Applier struct {
	exts map[string]bool
}

type Option func(*Applier)

// WithExtension enables a registered extension operation by name.
// Extensions stay disabled unless the caller opts in.
func WithExtension(name string) Option {
	return func(a *Applier) {
		a.exts[name] = true
	}
}

func NewApplier(opts ...Option) *Applier {
	a := &Applier{exts: map[string]bool{}}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Apply runs the patch document against doc, mutating it in place, and
// returns the resulting root: it differs from doc when an operation
// replaced the whole document. Operations apply strictly in order with
// no rollback; a failure mid-document leaves earlier mutations applied.
func (a *Applier) Apply(doc, patchDoc *ir.Node) (*ir.Node, error) {
	recs, err := opRecords(patchDoc)
	if err != nil {
		return nil, err
	}
	root := query.Root(doc)
	ac := &Context{Holder: root.Target, Roots: []query.Ref{root}, Exts: a.exts}
	for i, rec := range recs {
		op, err := instance(rec)
		if err != nil {
			return nil, fmt.Errorf("op %d: %w", i, err)
		}
		if debug.Patch() {
			debug.Logf("apply op %d (%s)", i, op)
		}
		if err := op.Apply(ac); err != nil {
			return nil, fmt.Errorf("op %d (%s): %w", i, op, err)
		}
	}
	return root.Read()
}

// Apply applies patchDoc to doc with the default configuration.
func Apply(doc, patchDoc *ir.Node) (*ir.Node, error) {
	return NewApplier().Apply(doc, patchDoc)
}

// opRecords lists a document's operation records. The wire shape is a
// sequence of mappings; a bare mapping counts as a one-op document.
func opRecords(patchDoc *ir.Node) ([]*ir.Node, error) {
	switch patchDoc.Type {
	case ir.ArrayType:
		return patchDoc.Values, nil
	case ir.ObjectType:
		return []*ir.Node{patchDoc}, nil
	}
	return nil, query.TypeErrorf("patch document must be a sequence of operations, got %s",
		patchDoc.Type)
}

func instance(rec *ir.Node) (Op, error) {
	if rec.Type != ir.ObjectType {
		return nil, query.TypeErrorf("operation record must be a mapping, got %s", rec.Type)
	}
	opName := ir.Get(rec, "op")
	if opName == nil {
		return nil, query.ValueErrorf("operation record has no op field")
	}
	if opName.Type != ir.StringType {
		return nil, query.TypeErrorf("op field must be a string, got %s", opName.Type)
	}
	sym := Lookup(opName.String)
	if sym == nil {
		return nil, query.ValueErrorf("unknown op %q", opName.String)
	}
	return sym.Instance(rec)
}
