package query

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/treedoc-format/go-treedoc/ir"
)

// ParseValue parses literal value text as it appears in filter
// comparisons: null, booleans, the IEEE specials, numbers, and quoted
// strings. Integers that overflow int64 and floats that overflow
// float64 fall back to decimal-string numbers.
func ParseValue(src string) (*ir.Node, error) {
	switch src {
	case "":
		return nil, syntaxErrf(src, 0, "empty literal")
	case "null":
		return ir.Null(), nil
	case "true":
		return ir.FromBool(true), nil
	case "false":
		return ir.FromBool(false), nil
	case "NaN":
		return ir.FromFloat(math.NaN()), nil
	case "Infinity":
		return ir.FromFloat(math.Inf(1)), nil
	case "-Infinity":
		return ir.FromFloat(math.Inf(-1)), nil
	}
	if src[0] == '"' {
		s, err := strconv.Unquote(src)
		if err != nil {
			return nil, syntaxErrf(src, 0, "bad string literal: %v", err)
		}
		return ir.FromString(s), nil
	}
	for i := 0; i < len(src); i++ {
		c := src[i]
		if c >= '0' && c <= '9' {
			continue
		}
		switch c {
		case '+', '-', '.', 'e', 'E':
			continue
		}
		return nil, syntaxErrf(src, i, "bad literal %q", src)
	}
	if !strings.ContainsAny(src, ".eE") {
		n, err := strconv.ParseInt(src, 10, 64)
		if err == nil {
			return ir.FromInt(n), nil
		}
		if errors.Is(err, strconv.ErrRange) {
			return ir.FromDecimal(src), nil
		}
		return nil, syntaxErrf(src, 0, "bad integer literal %q", src)
	}
	f, err := strconv.ParseFloat(src, 64)
	if err == nil {
		return ir.FromFloat(f), nil
	}
	if errors.Is(err, strconv.ErrRange) {
		return ir.FromDecimal(src), nil
	}
	return nil, syntaxErrf(src, 0, "bad number literal %q", src)
}
