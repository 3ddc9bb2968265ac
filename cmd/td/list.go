package main

import (
	"fmt"

	"github.com/scott-cotton/cli"
	treedoc "github.com/treedoc-format/go-treedoc"
)

func list(cfg *ListConfig, cc *cli.Context, args []string) error {
	args, err := cfg.List.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) < 1 {
		return fmt.Errorf("%w: list requires a query argument", cli.ErrUsage)
	}
	q := args[0]
	for _, path := range inputFiles(args[1:]) {
		doc, err := getObjFile(cc, path)
		if err != nil {
			return err
		}
		res, err := treedoc.List(doc, q)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		for i, node := range res {
			if i > 0 && !cfg.J {
				fmt.Fprintln(cc.Out, "---")
			}
			if err := writeNode(cfg.MainConfig, cc.Out, node); err != nil {
				return err
			}
		}
	}
	return nil
}
