package main

import (
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"
	"github.com/treedoc-format/go-treedoc/codec"
	"github.com/treedoc-format/go-treedoc/ir"
)

// getObjFile decodes one document from a file path, with "-" standing
// for the command's input stream.
func getObjFile(cc *cli.Context, path string) (*ir.Node, error) {
	d, err := readFile(cc, path)
	if err != nil {
		return nil, err
	}
	node, err := codec.Decode(d)
	if err != nil {
		return nil, fmt.Errorf("error decoding %q: %w", path, err)
	}
	return node, nil
}

func readFile(cc *cli.Context, path string) ([]byte, error) {
	var r io.Reader
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	} else {
		r = cc.In
	}
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading %q: %w", path, err)
	}
	return d, nil
}

// inputFiles defaults to the input stream when no file arguments are
// given.
func inputFiles(args []string) []string {
	if len(args) == 0 {
		return []string{"-"}
	}
	return args
}

func writeNode(cfg *MainConfig, w io.Writer, node *ir.Node) error {
	d, err := codec.Encode(node, cfg.encOpts()...)
	if err != nil {
		return err
	}
	if _, err := w.Write(d); err != nil {
		return err
	}
	if len(d) > 0 && d[len(d)-1] != '\n' {
		_, err = w.Write([]byte("\n"))
	}
	return err
}
