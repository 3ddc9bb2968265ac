// Package codec converts document trees to and from YAML and JSON
// text. Mapping key order survives a decode/encode round trip.
package codec

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/treedoc-format/go-treedoc/ir"
	yaml "gopkg.in/yaml.v3"
)

// Decode parses one YAML document (JSON is a subset) into a tree.
// Empty input decodes to null.
func Decode(data []byte) (*ir.Node, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if root.Kind == 0 {
		return ir.Null(), nil
	}
	return fromYAML(&root)
}

// DecodeString is Decode over string input.
func DecodeString(s string) (*ir.Node, error) {
	return Decode([]byte(s))
}

// MustDecode panics on malformed input. For fixtures and tests.
func MustDecode(s string) *ir.Node {
	n, err := DecodeString(s)
	if err != nil {
		panic(err)
	}
	return n
}

func fromYAML(n *yaml.Node) (*ir.Node, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return ir.Null(), nil
		}
		return fromYAML(n.Content[0])
	case yaml.AliasNode:
		return fromYAML(n.Alias)
	case yaml.SequenceNode:
		vals := make([]*ir.Node, len(n.Content))
		for i, c := range n.Content {
			v, err := fromYAML(c)
			if err != nil {
				return nil, err
			}
			vals[i] = v
		}
		return ir.FromSlice(vals), nil
	case yaml.MappingNode:
		kvs := make([]ir.KeyVal, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			v, err := fromYAML(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			kvs = append(kvs, ir.KeyVal{
				Key: ir.FromString(n.Content[i].Value),
				Val: v,
			})
		}
		return ir.FromKeyVals(kvs), nil
	case yaml.ScalarNode:
		return fromScalar(n)
	}
	return nil, fmt.Errorf("decode: unsupported node kind %d at line %d", n.Kind, n.Line)
}

func fromScalar(n *yaml.Node) (*ir.Node, error) {
	switch n.Tag {
	case "!!null":
		return ir.Null(), nil
	case "!!bool":
		b, err := strconv.ParseBool(n.Value)
		if err != nil {
			return nil, fmt.Errorf("decode: bad bool %q at line %d", n.Value, n.Line)
		}
		return ir.FromBool(b), nil
	case "!!int":
		// base 0 admits YAML's 0x and 0o forms
		v, err := strconv.ParseInt(n.Value, 0, 64)
		if err == nil {
			return ir.FromInt(v), nil
		}
		return ir.FromDecimal(n.Value), nil
	case "!!float":
		switch strings.ToLower(n.Value) {
		case ".inf", "+.inf":
			return ir.FromFloat(math.Inf(1)), nil
		case "-.inf":
			return ir.FromFloat(math.Inf(-1)), nil
		case ".nan":
			return ir.FromFloat(math.NaN()), nil
		}
		if !strings.ContainsAny(n.Value, ".eE") {
			// an integer literal the resolver promoted on int64
			// overflow; keep its exact decimal form
			if v, err := strconv.ParseInt(n.Value, 0, 64); err == nil {
				return ir.FromFloat(float64(v)), nil
			}
			return ir.FromDecimal(n.Value), nil
		}
		f, err := strconv.ParseFloat(n.Value, 64)
		if err == nil {
			return ir.FromFloat(f), nil
		}
		return ir.FromDecimal(n.Value), nil
	case "!!str":
		return ir.FromString(n.Value), nil
	}
	return nil, fmt.Errorf("decode: unsupported tag %s at line %d", n.Tag, n.Line)
}
