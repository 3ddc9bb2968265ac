package codec

import (
	"bytes"
	"fmt"

	gyaml "github.com/goccy/go-yaml"
	"github.com/treedoc-format/go-treedoc/ir"
)

// Option configures encoding.
type Option func(*encOpts)

type encOpts struct {
	json           bool
	indent         int
	indentSequence bool
}

// JSON emits JSON instead of YAML.
func JSON() Option {
	return func(o *encOpts) { o.json = true }
}

// Indent sets the YAML indent width. The default is 2.
func Indent(n int) Option {
	return func(o *encOpts) { o.indent = n }
}

// IndentSequence indents sequence items under their key.
func IndentSequence(v bool) Option {
	return func(o *encOpts) { o.indentSequence = v }
}

// rawNumber injects a decimal string into the output verbatim, for
// numbers neither int64 nor float64 can hold.
type rawNumber string

func (r rawNumber) MarshalYAML() ([]byte, error) {
	return []byte(r), nil
}

// Encode renders a tree as YAML or JSON text. Mapping fields appear in
// tree order.
func Encode(node *ir.Node, opts ...Option) ([]byte, error) {
	o := &encOpts{indent: 2}
	for _, f := range opts {
		f(o)
	}
	var buf bytes.Buffer
	enc := gyaml.NewEncoder(&buf,
		gyaml.Indent(o.indent), gyaml.IndentSequence(o.indentSequence))
	if err := enc.Encode(encAny(node)); err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	if !o.json {
		return buf.Bytes(), nil
	}
	out, err := gyaml.YAMLToJSON(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return out, nil
}

// String renders node as text.
func String(node *ir.Node, opts ...Option) (string, error) {
	d, err := Encode(node, opts...)
	return string(d), err
}

// MustString panics on encode failure. For fixtures and tests.
func MustString(node *ir.Node, opts ...Option) string {
	s, err := String(node, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

func encAny(y *ir.Node) any {
	switch y.Type {
	case ir.NullType:
		return nil
	case ir.BoolType:
		return y.Bool
	case ir.NumberType:
		switch {
		case y.Int64 != nil:
			return *y.Int64
		case y.Float64 != nil:
			return *y.Float64
		}
		return rawNumber(y.Number)
	case ir.StringType:
		return y.String
	case ir.ArrayType:
		res := make([]any, len(y.Values))
		for i, v := range y.Values {
			res[i] = encAny(v)
		}
		return res
	case ir.ObjectType:
		ms := make(gyaml.MapSlice, len(y.Fields))
		for i := range y.Fields {
			ms[i] = gyaml.MapItem{Key: y.Fields[i].String, Value: encAny(y.Values[i])}
		}
		return ms
	}
	return nil
}
