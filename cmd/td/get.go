package main

import (
	"fmt"

	"github.com/scott-cotton/cli"
	treedoc "github.com/treedoc-format/go-treedoc"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) < 1 {
		return fmt.Errorf("%w: get requires a query argument", cli.ErrUsage)
	}
	q := args[0]
	for _, path := range inputFiles(args[1:]) {
		doc, err := getObjFile(cc, path)
		if err != nil {
			return err
		}
		res, err := treedoc.Get(doc, q)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if err := writeNode(cfg.MainConfig, cc.Out, res); err != nil {
			return err
		}
	}
	return nil
}
