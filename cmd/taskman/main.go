package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/idilsaglam/taskman/internal/cli"
	"github.com/idilsaglam/taskman/internal/config"
	"github.com/idilsaglam/taskman/internal/logging"
)

func main() {
	// Root flags apply to every subcommand; the rest goes to the CLI runner.
	fs := flag.NewFlagSet("taskman", flag.ContinueOnError)
	fs.Usage = cli.PrintHelp
	cfg, err := config.Load(fs, os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, "taskman:", err)
		os.Exit(2)
	}

	logger, closer, err := logging.New(logging.Options{
		Level:    cfg.LogLevel,
		Format:   cfg.LogFormat,
		Path:     cli.LogPath(cfg, fs.Args()),
		Fallback: os.Stderr,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "taskman:", err)
		os.Exit(1)
	}

	code := cli.Run(fs.Args(), cli.Options{
		Config: cfg,
		Logger: logger,
	})
	closer.Close()
	os.Exit(code)
}
