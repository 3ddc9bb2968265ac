package query

import (
	"errors"
	"fmt"
)

// The three error kinds of the engine. Callers discriminate with
// errors.Is; the structured wrappers below carry details.
var (
	ErrSyntax = errors.New("syntax error")
	ErrType   = errors.New("type error")
	ErrValue  = errors.New("value error")
)

// SyntaxError reports malformed query or literal text, positioned at
// the offending offset.
type SyntaxError struct {
	Pos Pos
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%v: %s %s", ErrSyntax, e.Msg, e.Pos)
}

func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}

func syntaxErrf(src string, off int, format string, args ...any) error {
	return &SyntaxError{
		Pos: Pos{Off: off, Src: src},
		Msg: fmt.Sprintf(format, args...),
	}
}

// TypeError reports a segment or operation applied to a container or
// key of the wrong kind.
type TypeError struct {
	Msg string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("%v: %s", ErrType, e.Msg)
}

func (e *TypeError) Unwrap() error {
	return ErrType
}

// TypeErrorf builds a TypeError; shared with the patch interpreter.
func TypeErrorf(format string, args ...any) error {
	return &TypeError{Msg: fmt.Sprintf(format, args...)}
}

// ValueError reports semantically invalid input: unknown operations,
// zero matches without the optional marker, root mutations, failed
// assertions.
type ValueError struct {
	Msg string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("%v: %s", ErrValue, e.Msg)
}

func (e *ValueError) Unwrap() error {
	return ErrValue
}

// ValueErrorf builds a ValueError; shared with the patch interpreter.
func ValueErrorf(format string, args ...any) error {
	return &ValueError{Msg: fmt.Sprintf(format, args...)}
}
