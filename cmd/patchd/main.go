package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/scott-cotton/cli"

	"github.com/treedoc-format/go-treedoc/system/patchd/server"
)

type MainConfig struct {
	ConfigFile string `cli:"name=config desc='configuration file (ini format)'"`
	Addr       string `cli:"name=addr desc='TCP listen address'"`
	Exts       []string

	Main *cli.Command
}

func main() {
	cli.MainContext(context.Background(), MainCommand())
}

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts, &cli.Opt{
		Name:        "ext",
		Description: "enable an extension op (repeatable)",
		Type: cli.NamedFuncOpt(cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
			cfg.Exts = append(cfg.Exts, v)
			return v, nil
		}), "(name)"),
	})
	return cli.NewCommandAt(&cfg.Main, "patchd").
		WithSynopsis("patchd [-config <file>] [-addr <addr>] [-ext <name>]").
		WithDescription("patchd serves document queries, patches and diffs over JSON-RPC 2.0.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return run(cfg, cc, args)
		})
}

func run(cfg *MainConfig, cc *cli.Context, args []string) error {
	if _, err := cfg.Main.Parse(cc, args); err != nil {
		return err
	}

	serverConfig := server.DefaultConfig()
	if cfg.ConfigFile != "" {
		var err error
		serverConfig, err = server.LoadConfig(cfg.ConfigFile)
		if err != nil {
			return err
		}
	}
	if cfg.Addr != "" {
		serverConfig.Addr = cfg.Addr
	}
	serverConfig.Extensions = append(serverConfig.Extensions, cfg.Exts...)

	srv := server.New(&server.Spec{Config: serverConfig})
	if err := srv.Start(); err != nil {
		return err
	}
	fmt.Fprintf(cc.Out, "patchd listening on %s\n", srv.TCPAddr())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	return srv.Close()
}
