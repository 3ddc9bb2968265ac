package main

import (
	"github.com/scott-cotton/cli"
)

func convert(cfg *ConvertConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Convert.Parse(cc, args)
	if err != nil {
		return err
	}
	for _, path := range inputFiles(args) {
		doc, err := getObjFile(cc, path)
		if err != nil {
			return err
		}
		if err := writeNode(cfg.MainConfig, cc.Out, doc); err != nil {
			return err
		}
	}
	return nil
}
