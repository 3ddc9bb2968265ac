package query

import (
	"errors"
	"strconv"
	"strings"

	"github.com/treedoc-format/go-treedoc/ir"
)

// Parse compiles query source text. Errors are syntax-kind and point at
// the offending offset, not at the start of the query.
func Parse(src string) (*Query, error) {
	if len(src) == 0 {
		return nil, syntaxErrf(src, 0, "empty query")
	}
	q := &Query{src: src}
	switch src[0] {
	case '$':
	case '@':
		q.relative = true
	default:
		return nil, syntaxErrf(src, 0, "query must start with '$' or '@'")
	}
	p := &parser{src: src, i: 1}
	for !p.eof() {
		switch c := p.peek(); c {
		case '.':
			seg, err := p.property()
			if err != nil {
				return nil, err
			}
			q.segs = append(q.segs, seg)
		case '[':
			seg, err := p.bracket()
			if err != nil {
				return nil, err
			}
			q.segs = append(q.segs, seg)
		case '?':
			p.i++
			if !p.eof() {
				return nil, syntaxErrf(src, p.i, "text after optional marker")
			}
			q.optional = true
		default:
			return nil, syntaxErrf(src, p.i, "expected '.', '[' or '?', got %q", string(c))
		}
	}
	return q, nil
}

// Filter is a compiled bare filter expression, as used by the assert
// operation and FilterEvaluate.
type Filter struct {
	src   string
	conds []cond
}

func (f *Filter) String() string {
	return f.src
}

// ParseFilter compiles filter expression text: '&&'-chained conditions
// without the surrounding brackets.
func ParseFilter(src string) (*Filter, error) {
	p := &parser{src: src}
	conds, err := p.conds(0)
	if err != nil {
		return nil, err
	}
	return &Filter{src: src, conds: conds}, nil
}

type parser struct {
	src string
	i   int
}

func (p *parser) eof() bool {
	return p.i >= len(p.src)
}

func (p *parser) peek() byte {
	return p.src[p.i]
}

func (p *parser) skipSpace() {
	for !p.eof() && (p.peek() == ' ' || p.peek() == '\t') {
		p.i++
	}
}

func (p *parser) expect(c byte) error {
	if p.eof() || p.peek() != c {
		return syntaxErrf(p.src, p.i, "expected %q", string(c))
	}
	p.i++
	return nil
}

func (p *parser) property() (segment, error) {
	off := p.i // at '.'
	p.i++
	name, err := p.ident()
	if err != nil {
		return segment{}, err
	}
	if name == "" {
		return segment{}, syntaxErrf(p.src, p.i, "empty property name")
	}
	return segment{kind: segProperty, off: off, name: name}, nil
}

// ident scans a property name, honoring '~'-escapes for the reserved
// characters.
func (p *parser) ident() (string, error) {
	var b strings.Builder
	for !p.eof() {
		c := p.peek()
		if c == '~' {
			p.i++
			if p.eof() {
				return "", syntaxErrf(p.src, p.i, "dangling '~' escape")
			}
			b.WriteByte(p.peek())
			p.i++
			continue
		}
		if isReserved(c) || c == ' ' || c == '\t' {
			break
		}
		b.WriteByte(c)
		p.i++
	}
	return b.String(), nil
}

func (p *parser) bracket() (segment, error) {
	off := p.i // at '['
	p.i++
	p.skipSpace()
	if p.eof() {
		return segment{}, syntaxErrf(p.src, p.i, "unterminated '['")
	}
	if c := p.peek(); c == '@' || c == '!' {
		conds, err := p.conds(']')
		if err != nil {
			return segment{}, err
		}
		if err := p.expect(']'); err != nil {
			return segment{}, err
		}
		return segment{kind: segFilter, off: off, filter: conds}, nil
	}
	return p.indexOrSlice(off)
}

func (p *parser) indexOrSlice(off int) (segment, error) {
	first, firstSet, err := p.indexOpt()
	if err != nil {
		return segment{}, err
	}
	p.skipSpace()
	if p.eof() {
		return segment{}, syntaxErrf(p.src, p.i, "unterminated '['")
	}
	if p.peek() == ']' {
		p.i++
		if !firstSet {
			return segment{}, syntaxErrf(p.src, p.i-1, "expected index")
		}
		return segment{kind: segIndex, off: off, index: first}, nil
	}
	if p.peek() != ':' {
		return segment{}, syntaxErrf(p.src, p.i, "expected ':' or ']' in brackets")
	}
	p.i++
	stop, stopSet, err := p.indexOpt()
	if err != nil {
		return segment{}, err
	}
	p.skipSpace()
	step := int64(1)
	if !p.eof() && p.peek() == ':' {
		p.i++
		stepV, stepSet, err := p.stepOpt()
		if err != nil {
			return segment{}, err
		}
		if stepSet {
			step = stepV
		}
	}
	p.skipSpace()
	if err := p.expect(']'); err != nil {
		return segment{}, err
	}
	if step == 0 {
		return segment{}, syntaxErrf(p.src, off, "zero slice step")
	}
	// omitted bounds follow the step direction
	if !firstSet {
		first = Start
		if step < 0 {
			first = End
		}
	}
	if !stopSet {
		stop = End
		if step < 0 {
			stop = Start
		}
	}
	return segment{kind: segSlice, off: off, slice: Slice{Start: first, Stop: stop, Step: step}}, nil
}

// indexOpt scans an optional index: a signed integer or the 'start' and
// 'end' sentinel keywords.
func (p *parser) indexOpt() (int64, bool, error) {
	p.skipSpace()
	if p.eof() {
		return 0, false, nil
	}
	c := p.peek()
	if c >= 'a' && c <= 'z' {
		off := p.i
		j := p.i
		for j < len(p.src) && p.src[j] >= 'a' && p.src[j] <= 'z' {
			j++
		}
		switch word := p.src[p.i:j]; word {
		case "start":
			p.i = j
			return Start, true, nil
		case "end":
			p.i = j
			return End, true, nil
		default:
			return 0, false, syntaxErrf(p.src, off, "bad index keyword %q", word)
		}
	}
	return p.stepOpt()
}

// stepOpt scans an optional signed integer.
func (p *parser) stepOpt() (int64, bool, error) {
	p.skipSpace()
	if p.eof() {
		return 0, false, nil
	}
	c := p.peek()
	if c != '-' && c != '+' && (c < '0' || c > '9') {
		return 0, false, nil
	}
	off := p.i
	j := p.i
	if c == '-' || c == '+' {
		j++
	}
	for j < len(p.src) && p.src[j] >= '0' && p.src[j] <= '9' {
		j++
	}
	n, err := strconv.ParseInt(p.src[off:j], 10, 64)
	if err != nil {
		return 0, false, syntaxErrf(p.src, off, "bad index %q", p.src[off:j])
	}
	p.i = j
	return n, true, nil
}

func (p *parser) conds(term byte) ([]cond, error) {
	var res []cond
	for {
		p.skipSpace()
		c := cond{off: p.i}
		if !p.eof() && p.peek() == '!' {
			c.negate = true
			p.i++
			p.skipSpace()
		}
		lhs, err := p.relQuery()
		if err != nil {
			return nil, err
		}
		c.lhs = lhs
		p.skipSpace()
		op, opOff, err := p.cmpOp()
		if err != nil {
			return nil, err
		}
		if op != cmpNone {
			if c.negate {
				return nil, syntaxErrf(p.src, opOff, "cannot negate a comparison")
			}
			c.op = op
			p.skipSpace()
			if !p.eof() && p.peek() == '@' {
				rhs, err := p.relQuery()
				if err != nil {
					return nil, err
				}
				c.rhs = rhs
			} else {
				v, err := p.literal()
				if err != nil {
					return nil, err
				}
				c.value = v
			}
		}
		res = append(res, c)
		p.skipSpace()
		if p.eof() {
			if term == 0 {
				return res, nil
			}
			return nil, syntaxErrf(p.src, p.i, "unterminated filter")
		}
		if term != 0 && p.peek() == term {
			return res, nil
		}
		if strings.HasPrefix(p.src[p.i:], "&&") {
			p.i += 2
			continue
		}
		return nil, syntaxErrf(p.src, p.i, "expected '&&' or end of filter")
	}
}

// relQuery scans an embedded relative query inside a filter. It stops
// at the first character that cannot continue a segment.
func (p *parser) relQuery() (*Query, error) {
	start := p.i
	if p.eof() || p.peek() != '@' {
		return nil, syntaxErrf(p.src, p.i, "filter query must start with '@'")
	}
	p.i++
	q := &Query{relative: true}
	for !p.eof() {
		switch p.peek() {
		case '.':
			seg, err := p.property()
			if err != nil {
				return nil, err
			}
			q.segs = append(q.segs, seg)
		case '[':
			seg, err := p.bracket()
			if err != nil {
				return nil, err
			}
			q.segs = append(q.segs, seg)
		default:
			q.src = p.src[start:p.i]
			return q, nil
		}
	}
	q.src = p.src[start:p.i]
	return q, nil
}

func (p *parser) cmpOp() (cmpOp, int, error) {
	off := p.i
	if p.eof() {
		return cmpNone, off, nil
	}
	rest := p.src[p.i:]
	switch {
	case strings.HasPrefix(rest, "<="):
		p.i += 2
		return cmpLE, off, nil
	case strings.HasPrefix(rest, ">="):
		p.i += 2
		return cmpGE, off, nil
	case strings.HasPrefix(rest, "=="):
		p.i += 2
		return cmpEQ, off, nil
	case strings.HasPrefix(rest, "!="):
		p.i += 2
		return cmpNE, off, nil
	case rest[0] == '<':
		p.i++
		return cmpLT, off, nil
	case rest[0] == '>':
		p.i++
		return cmpGT, off, nil
	case rest[0] == '=':
		return cmpNone, off, syntaxErrf(p.src, off, "expected '=='")
	}
	return cmpNone, off, nil
}

// literal scans a filter comparison literal: a quoted string or a bare
// token delimited by space, '&' or ']'.
func (p *parser) literal() (*ir.Node, error) {
	p.skipSpace()
	off := p.i
	if p.eof() {
		return nil, syntaxErrf(p.src, off, "expected literal")
	}
	if p.peek() == '"' {
		j := p.i + 1
		for j < len(p.src) && p.src[j] != '"' {
			if p.src[j] == '\\' {
				j++
			}
			j++
		}
		if j >= len(p.src) {
			return nil, syntaxErrf(p.src, off, "unterminated string")
		}
		text := p.src[p.i : j+1]
		p.i = j + 1
		return p.value(text, off)
	}
	j := p.i
	for j < len(p.src) {
		c := p.src[j]
		if c == ' ' || c == '\t' || c == '&' || c == ']' {
			break
		}
		j++
	}
	text := p.src[p.i:j]
	p.i = j
	return p.value(text, off)
}

func (p *parser) value(text string, off int) (*ir.Node, error) {
	v, err := ParseValue(text)
	if err == nil {
		return v, nil
	}
	// rebase the literal's error position into the full query source
	var se *SyntaxError
	if errors.As(err, &se) {
		return nil, syntaxErrf(p.src, off+se.Pos.Off, "%s", se.Msg)
	}
	return nil, err
}
