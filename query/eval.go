package query

import (
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/treedoc-format/go-treedoc/debug"
	"github.com/treedoc-format/go-treedoc/ir"
)

// Options control evaluation.
type Options struct {
	// AllowSlice permits slice refs in the result. Without it a query
	// whose last segment is a slice is a type error; mid-query slices
	// are always fine, they fan out to element refs.
	AllowSlice bool

	// Mapping keeps result refs that address creatable locations: an
	// absent object key, or the one-past-end sequence index. Mutating
	// operations that bring new locations into existence evaluate
	// their destinations this way.
	Mapping bool

	// Relative permits '@'-anchored queries; the given nodes or refs
	// serve as the bases.
	Relative bool
}

// Evaluate compiles src and evaluates it over the given document roots,
// returning refs to every match.
func Evaluate(nodes []*ir.Node, src string, opts *Options) ([]Ref, error) {
	q, err := Parse(src)
	if err != nil {
		return nil, err
	}
	return EvalQuery(nodes, q, opts)
}

// EvalQuery evaluates a compiled query over the given document roots.
// Each root is wrapped in a holder so that the empty path addresses the
// root itself and even the whole document is replaceable.
func EvalQuery(nodes []*ir.Node, q *Query, opts *Options) ([]Ref, error) {
	if opts == nil {
		opts = &Options{}
	}
	if q.relative && !opts.Relative {
		return nil, ValueErrorf("relative query %q needs a base", q.src)
	}
	refs := make([]Ref, len(nodes))
	for i, n := range nodes {
		refs[i] = Root(n)
	}
	return EvalRefs(refs, q, opts)
}

// EvalRefs evaluates a compiled query starting from already-resolved
// base refs. This is the form the patch interpreter uses: absolute
// queries start from the document holder, relative ones from the
// operation's path matches.
func EvalRefs(refs []Ref, q *Query, opts *Options) ([]Ref, error) {
	if opts == nil {
		opts = &Options{}
	}
	cur := append([]Ref(nil), refs...)
	for si := range q.segs {
		var err error
		cur, err = evalSegment(cur, q, &q.segs[si])
		if err != nil {
			return nil, err
		}
		if debug.Query() {
			debug.Logf("query %q seg %d: %d refs", q.src, si, len(cur))
		}
	}
	var res []Ref
	for _, r := range cur {
		if r.Key.Kind == SliceKind {
			if !opts.AllowSlice {
				return nil, TypeErrorf("%q selects a slice where a single location is needed", q.src)
			}
			res = append(res, r)
			continue
		}
		ok, err := r.Exists()
		if err != nil {
			return nil, err
		}
		if ok || (opts.Mapping && creatable(r)) {
			res = append(res, r)
		}
	}
	if len(res) == 0 && !q.relative && !q.optional {
		return nil, ValueErrorf("no matches for %q", q.src)
	}
	return res, nil
}

// creatable reports whether an absent location can be brought into
// existence by writing to it.
func creatable(r Ref) bool {
	switch r.Key.Kind {
	case FieldKind:
		return r.Target.Type == ir.ObjectType
	case IndexKind:
		return r.Target.Type == ir.ArrayType &&
			r.Key.Index == int64(len(r.Target.Values))
	}
	return false
}

// evalSegment descends one segment. Refs addressing absent locations
// drop out silently; present values of the wrong kind are type errors.
func evalSegment(in []Ref, q *Query, seg *segment) ([]Ref, error) {
	var out []Ref
	for _, r := range expandSlices(in) {
		node, ok, err := r.lookup()
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		switch seg.kind {
		case segProperty:
			if node.Type != ir.ObjectType {
				return nil, typeErrAt(q, seg, "property %q of %s", seg.name, node.Type)
			}
			out = append(out, Ref{Target: node, Key: FieldKey(seg.name)})
		case segIndex:
			if node.Type != ir.ArrayType {
				return nil, typeErrAt(q, seg, "index %d of %s", seg.index, node.Type)
			}
			out = append(out, Ref{Target: node, Key: IndexKey(seg.index)})
		case segSlice:
			if node.Type != ir.ArrayType {
				return nil, typeErrAt(q, seg, "slice of %s", node.Type)
			}
			out = append(out, Ref{Target: node, Key: Key{Kind: SliceKind, Slice: seg.slice}})
		case segFilter:
			cands, err := fanOut(node, q, seg)
			if err != nil {
				return nil, err
			}
			for _, cand := range cands {
				keep, err := evalConds(cand, seg.filter)
				if err != nil {
					return nil, err
				}
				if keep {
					out = append(out, cand)
				}
			}
		}
	}
	return out, nil
}

func typeErrAt(q *Query, seg *segment, format string, args ...any) error {
	return TypeErrorf("%s in %q at offset %d", fmt.Sprintf(format, args...), q.src, seg.off)
}

// expandSlices replaces slice refs with one index ref per selected
// element, preserving container identity.
func expandSlices(in []Ref) []Ref {
	out := make([]Ref, 0, len(in))
	for _, r := range in {
		if r.Key.Kind != SliceKind || r.Target.Type != ir.ArrayType {
			out = append(out, r)
			continue
		}
		for _, i := range r.Key.Slice.indices(len(r.Target.Values)) {
			out = append(out, Ref{Target: r.Target, Key: IndexKey(int64(i))})
		}
	}
	return out
}

// fanOut lists the filter candidates of a container: element refs of a
// sequence, value refs of a mapping.
func fanOut(node *ir.Node, q *Query, seg *segment) ([]Ref, error) {
	switch node.Type {
	case ir.ArrayType:
		res := make([]Ref, len(node.Values))
		for i := range node.Values {
			res[i] = Ref{Target: node, Key: IndexKey(int64(i))}
		}
		return res, nil
	case ir.ObjectType:
		res := make([]Ref, len(node.Fields))
		for i := range node.Fields {
			res[i] = Ref{Target: node, Key: FieldKey(node.Fields[i].String)}
		}
		return res, nil
	}
	return nil, typeErrAt(q, seg, "filter over %s", node.Type)
}

// FilterEvaluate applies bare filter expression text to each node,
// returning the ones that satisfy it in their given order. The result
// never grows: every node is kept or dropped.
func FilterEvaluate(nodes []*ir.Node, src string) ([]*ir.Node, error) {
	f, err := ParseFilter(src)
	if err != nil {
		return nil, err
	}
	var res []*ir.Node
	for _, n := range nodes {
		ok, err := f.Match(n)
		if err != nil {
			return nil, err
		}
		if ok {
			res = append(res, n)
		}
	}
	return res, nil
}

// Match reports whether node satisfies the filter.
func (f *Filter) Match(node *ir.Node) (bool, error) {
	r, restore := selfRef(node)
	defer restore()
	return evalConds(r, f.conds)
}

// selfRef builds a ref addressing node itself. In-tree nodes reuse
// their parent linkage; parentless roots are wrapped in a temporary
// holder whose reparenting is undone by the returned restore func.
func selfRef(node *ir.Node) (Ref, func()) {
	if p := node.Parent; p != nil {
		if node.ParentField != "" && p.Type == ir.ObjectType {
			return Ref{Target: p, Key: FieldKey(node.ParentField)}, func() {}
		}
		return Ref{Target: p, Key: IndexKey(int64(node.ParentIndex))}, func() {}
	}
	idx, field := node.ParentIndex, node.ParentField
	holder := ir.FromSlice([]*ir.Node{node})
	return Ref{Target: holder, Key: IndexKey(0)}, func() {
		node.Parent = nil
		node.ParentIndex = idx
		node.ParentField = field
	}
}

// evalConds evaluates an '&&'-chain against the value addressed by r.
func evalConds(r Ref, conds []cond) (bool, error) {
	for i := range conds {
		ok, err := evalCond(r, &conds[i])
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

func evalCond(r Ref, c *cond) (bool, error) {
	relOpts := &Options{Relative: true}
	lhs, err := EvalRefs([]Ref{r}, c.lhs, relOpts)
	if err != nil {
		return false, err
	}
	if c.op == cmpNone {
		return len(lhs) > 0 != c.negate, nil
	}
	if len(lhs) == 0 {
		return false, nil
	}
	lvs, err := readAll(lhs)
	if err != nil {
		return false, err
	}
	var rvs []*ir.Node
	if c.rhs != nil {
		rhs, err := EvalRefs([]Ref{r}, c.rhs, relOpts)
		if err != nil {
			return false, err
		}
		if rvs, err = readAll(rhs); err != nil {
			return false, err
		}
	} else {
		rvs = []*ir.Node{c.value}
	}
	if len(rvs) == 0 {
		return false, nil
	}
	// every lhs value must relate to every rhs value
	for _, lv := range lvs {
		for _, rv := range rvs {
			if !compareNodes(lv, rv, c.op) {
				return false, nil
			}
		}
	}
	return true, nil
}

func readAll(refs []Ref) ([]*ir.Node, error) {
	res := make([]*ir.Node, len(refs))
	for i, r := range refs {
		v, err := r.Read()
		if err != nil {
			return nil, err
		}
		res[i] = v
	}
	return res, nil
}

// compareNodes relates two values under op. Equality is the engine's
// structural equality; the ordering operators are defined for number
// pairs and string pairs and are false for every other combination,
// including any NaN operand.
func compareNodes(a, b *ir.Node, op cmpOp) bool {
	switch op {
	case cmpEQ:
		return ir.Equal(a, b)
	case cmpNE:
		return !ir.Equal(a, b)
	}
	if a.Type == ir.NumberType && b.Type == ir.NumberType {
		if a.Int64 != nil && b.Int64 != nil {
			return relateInts(*a.Int64, *b.Int64, op)
		}
		if a.Number != "" || b.Number != "" {
			return relateBig(a, b, op)
		}
		return relateFloats(numFloat(a), numFloat(b), op)
	}
	if a.Type == ir.StringType && b.Type == ir.StringType {
		return relateInts(int64(strings.Compare(a.String, b.String)), 0, op)
	}
	return false
}

func relateInts(a, b int64, op cmpOp) bool {
	switch op {
	case cmpLT:
		return a < b
	case cmpLE:
		return a <= b
	case cmpGE:
		return a >= b
	case cmpGT:
		return a > b
	}
	return false
}

// relateFloats follows IEEE ordering: every comparison with NaN is
// false.
func relateFloats(a, b float64, op cmpOp) bool {
	switch op {
	case cmpLT:
		return a < b
	case cmpLE:
		return a <= b
	case cmpGE:
		return a >= b
	case cmpGT:
		return a > b
	}
	return false
}

func numFloat(n *ir.Node) float64 {
	switch {
	case n.Int64 != nil:
		return float64(*n.Int64)
	case n.Float64 != nil:
		return *n.Float64
	}
	return math.NaN()
}

// relateBig orders number pairs where at least one side is a decimal
// fallback, at a precision float64 cannot offer. NaN operands and
// unparseable decimals relate as false, like the float path.
func relateBig(a, b *ir.Node, op cmpOp) bool {
	av, ok := bigNum(a)
	if !ok {
		return false
	}
	bv, ok := bigNum(b)
	if !ok {
		return false
	}
	return relateInts(int64(av.Cmp(bv)), 0, op)
}

func bigNum(n *ir.Node) (*big.Float, bool) {
	switch {
	case n.Int64 != nil:
		return new(big.Float).SetInt64(*n.Int64), true
	case n.Float64 != nil:
		if math.IsNaN(*n.Float64) {
			return nil, false
		}
		return new(big.Float).SetFloat64(*n.Float64), true
	}
	f, _, err := big.ParseFloat(n.Number, 10, 128, big.ToNearestEven)
	if err != nil {
		return nil, false
	}
	return f, true
}
