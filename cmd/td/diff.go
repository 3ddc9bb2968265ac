package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
	treedoc "github.com/treedoc-format/go-treedoc"
	"github.com/treedoc-format/go-treedoc/codec"
	"github.com/treedoc-format/go-treedoc/ir"
	"github.com/wI2L/jsondiff"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires two file arguments", cli.ErrUsage)
	}
	a, err := getObjFile(cc, args[0])
	if err != nil {
		return err
	}
	b, err := getObjFile(cc, args[1])
	if err != nil {
		return err
	}
	switch {
	case cfg.Text:
		return textDiff(cfg, cc.Out, a, b)
	case cfg.RFC6902:
		return rfc6902Diff(cc.Out, a, b)
	default:
		return writeNode(cfg.MainConfig, cc.Out, treedoc.Diff(a, b))
	}
}

// rfc6902Diff compares the JSON renderings of the two documents and
// emits an RFC 6902 JSON Patch.
func rfc6902Diff(w io.Writer, a, b *ir.Node) error {
	ad, err := codec.Encode(a, codec.JSON())
	if err != nil {
		return err
	}
	bd, err := codec.Encode(b, codec.JSON())
	if err != nil {
		return err
	}
	ops, err := jsondiff.CompareJSON(ad, bd)
	if err != nil {
		return err
	}
	d, err := json.MarshalIndent(ops, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", d)
	return err
}

func textDiff(cfg *DiffConfig, w io.Writer, a, b *ir.Node) error {
	as, err := codec.String(a, cfg.encOpts()...)
	if err != nil {
		return err
	}
	bs, err := codec.String(b, cfg.encOpts()...)
	if err != nil {
		return err
	}
	dmp := diffpatch.New()
	diffs := dmp.DiffMain(as, bs, false)
	diffs = dmp.DiffCleanupSemantic(diffs)
	if !cfg.colorize(w) {
		for _, d := range diffs {
			switch d.Type {
			case diffpatch.DiffDelete:
				fmt.Fprintf(w, "[-%s-]", d.Text)
			case diffpatch.DiffInsert:
				fmt.Fprintf(w, "{+%s+}", d.Text)
			default:
				fmt.Fprint(w, d.Text)
			}
		}
		return nil
	}
	del := color.New(color.FgRed, color.CrossedOut)
	ins := color.New(color.FgGreen)
	for _, d := range diffs {
		switch d.Type {
		case diffpatch.DiffDelete:
			del.Fprint(w, d.Text)
		case diffpatch.DiffInsert:
			ins.Fprint(w, d.Text)
		default:
			fmt.Fprint(w, d.Text)
		}
	}
	return nil
}
