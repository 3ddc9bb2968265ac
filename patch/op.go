// Package patch applies ordered operation documents to value trees.
// Each operation resolves its path through the query evaluator and
// mutates the referenced locations in place.
package patch

import (
	"sort"
	"sync"

	"github.com/treedoc-format/go-treedoc/ir"
	"github.com/treedoc-format/go-treedoc/query"
)

// Symbol names an operation kind and instantiates it from an operation
// record.
type Symbol interface {
	String() string
	Instance(rec *ir.Node) (Op, error)
}

// Op is one instantiated patch operation.
type Op interface {
	String() string
	Apply(ac *Context) error
}

// Context is the state one operation runs against: the synthetic root
// holder and the base refs absolute queries resolve from.
type Context struct {
	Holder *ir.Node
	Roots  []query.Ref
	Exts   map[string]bool
}

// Resolve evaluates an operation's path query from the document roots.
func (ac *Context) Resolve(q *query.Query, opts *query.Options) ([]query.Ref, error) {
	o := query.Options{Relative: true}
	if opts != nil {
		o = *opts
		o.Relative = true
	}
	return query.EvalRefs(ac.Roots, q, &o)
}

// name is the shared Symbol naming mixin.
type name string

func (n name) String() string {
	return string(n)
}

var (
	regMu   sync.Mutex
	symbols = map[string]Symbol{}
)

// Register adds a Symbol to the operation registry. Later registrations
// under the same name win; the built-in catalog registers at init.
func Register(s Symbol) {
	regMu.Lock()
	defer regMu.Unlock()
	symbols[s.String()] = s
}

// Lookup returns the Symbol registered under name, or nil.
func Lookup(name string) Symbol {
	regMu.Lock()
	defer regMu.Unlock()
	return symbols[name]
}

// Symbols lists the registered operation names, sorted.
func Symbols() []string {
	regMu.Lock()
	defer regMu.Unlock()
	res := make([]string, 0, len(symbols))
	for n := range symbols {
		res = append(res, n)
	}
	sort.Strings(res)
	return res
}
