package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/alexanderramin/pmo/internal/cli"
	"github.com/alexanderramin/pmo/internal/config"
	"github.com/alexanderramin/pmo/internal/domain"
	"github.com/alexanderramin/pmo/internal/graph"
	"github.com/alexanderramin/pmo/internal/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := logging.New(logging.Options{
		Level:       cfg.Log.Level,
		Production:  cfg.Production(),
		ServiceName: "pmo",
		Environment: cfg.Server.Env,
	})
	if err != nil {
		return err
	}
	defer logger.Sync()

	app := &cli.App{
		Config:   cfg,
		Logger:   logger,
		Clock:    domain.SystemClock,
		Renderer: graph.DotRenderer{},
	}
	// Prompts need a terminal on stdin.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.Execute(app, cli.NewRootCmd(app))
}
