package main

import (
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/scott-cotton/cli"
	treedoc "github.com/treedoc-format/go-treedoc"
	"github.com/treedoc-format/go-treedoc/codec"
	"github.com/treedoc-format/go-treedoc/ir"
)

func apply(cfg *ApplyConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Apply.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) < 1 {
		return fmt.Errorf("%w: apply requires a patch file argument", cli.ErrUsage)
	}
	patchDoc, err := getObjFile(cc, args[0])
	if err != nil {
		return err
	}
	for _, path := range inputFiles(args[1:]) {
		doc, err := getObjFile(cc, path)
		if err != nil {
			return err
		}
		var res *ir.Node
		if cfg.RFC6902 {
			res, err = applyRFC6902(doc, patchDoc)
		} else {
			res, err = treedoc.ApplyWith(doc, patchDoc, cfg.Exts...)
		}
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if err := writeNode(cfg.MainConfig, cc.Out, res); err != nil {
			return err
		}
	}
	return nil
}

// applyRFC6902 round-trips the document through JSON so RFC 6902
// patches written against JSON pointers apply as-is.
func applyRFC6902(doc, patchDoc *ir.Node) (*ir.Node, error) {
	pd, err := codec.Encode(patchDoc, codec.JSON())
	if err != nil {
		return nil, err
	}
	ops, err := jsonpatch.DecodePatch(pd)
	if err != nil {
		return nil, fmt.Errorf("invalid RFC 6902 patch: %w", err)
	}
	d, err := codec.Encode(doc, codec.JSON())
	if err != nil {
		return nil, err
	}
	out, err := ops.Apply(d)
	if err != nil {
		return nil, err
	}
	return codec.Decode(out)
}
