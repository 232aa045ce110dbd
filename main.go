package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/insightdelivered/enbd-statement-parser/internal/cli"
	"github.com/insightdelivered/enbd-statement-parser/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fatalf("Configuration error: %v\n", err)
	}

	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")
	cli.Register(subcommands.DefaultCommander, cfg)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Emirates NBD Statement Parser

Converts Emirates NBD card statements (PDF, or text already extracted from
one) into CSV, XLSX or JSON transaction records.

`)
		subcommands.DefaultCommander.Explain(os.Stderr)
	}
	flag.Parse()

	ctx, err := cli.WithLogger(context.Background(), cfg)
	if err != nil {
		fatalf("Invalid log settings: %v\n", err)
	}
	os.Exit(int(subcommands.Execute(ctx)))
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format, args...)
	os.Exit(1)
}
