package main

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
	"github.com/treedoc-format/go-treedoc/codec"
)

type MainConfig struct {
	J bool `cli:"name=j aliases=json desc='encode output as json'"`
	Y bool `cli:"name=y aliases=yaml desc='encode output as yaml (default)'"`

	Indent    int  `cli:"name=indent desc='yaml indent width'"`
	IndentSeq bool `cli:"name=indentseq desc='indent sequence items under their key'"`

	Color bool `cli:"name=color desc='colorize diff output'"`

	Main *cli.Command
}

func (cfg *MainConfig) encOpts() []codec.Option {
	var res []codec.Option
	if cfg.J && !cfg.Y {
		res = append(res, codec.JSON())
	}
	if cfg.Indent > 0 {
		res = append(res, codec.Indent(cfg.Indent))
	}
	if cfg.IndentSeq {
		res = append(res, codec.IndentSequence(true))
	}
	return res
}

// colorize honors -color and otherwise follows whether the output is a
// terminal.
func (cfg *MainConfig) colorize(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

type GetConfig struct {
	*MainConfig

	Get *cli.Command
}

type ListConfig struct {
	*MainConfig

	List *cli.Command
}

type ApplyConfig struct {
	*MainConfig
	RFC6902 bool `cli:"name=rfc6902 desc='treat the patch as an RFC 6902 JSON Patch'"`
	Exts    []string

	Apply *cli.Command
}

type DiffConfig struct {
	*MainConfig
	RFC6902 bool `cli:"name=rfc6902 desc='emit an RFC 6902 JSON Patch'"`
	Text    bool `cli:"name=text desc='emit a textual diff of the rendered documents'"`

	Diff *cli.Command
}

type ConvertConfig struct {
	*MainConfig

	Convert *cli.Command
}
