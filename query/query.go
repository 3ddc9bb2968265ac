package query

import "github.com/treedoc-format/go-treedoc/ir"

// Query is a compiled path expression: an anchor (absolute '$' or
// relative '@'), a run of segments, and an optional trailing '?'
// permitting zero-match results. Queries are stateless and may be
// evaluated repeatedly, including concurrently over independent trees.
type Query struct {
	src      string
	relative bool
	optional bool
	segs     []segment
}

func (q *Query) String() string {
	return q.src
}

// Relative reports whether the query is '@'-anchored.
func (q *Query) Relative() bool {
	return q.relative
}

// Optional reports whether the query carries the trailing '?' marker.
func (q *Query) Optional() bool {
	return q.optional
}

type segKind int

const (
	segProperty segKind = iota
	segIndex
	segSlice
	segFilter
)

type segment struct {
	kind segKind
	off  int // offset into src, for error reporting

	name   string // segProperty
	index  int64  // segIndex
	slice  Slice  // segSlice
	filter []cond // segFilter
}

type cmpOp int

const (
	cmpNone cmpOp = iota
	cmpLT
	cmpLE
	cmpEQ
	cmpNE
	cmpGE
	cmpGT
)

func (o cmpOp) String() string {
	switch o {
	case cmpLT:
		return "<"
	case cmpLE:
		return "<="
	case cmpEQ:
		return "=="
	case cmpNE:
		return "!="
	case cmpGE:
		return ">="
	case cmpGT:
		return ">"
	}
	return ""
}

// cond is one '&&'-chained filter condition: a relative left-hand
// query, optionally compared against a literal or a second relative
// query. With no operator it is a presence test, negatable with '!'.
type cond struct {
	off    int
	negate bool
	lhs    *Query
	op     cmpOp
	value  *ir.Node
	rhs    *Query
}
