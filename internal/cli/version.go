package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

type versionCmd struct{}

func (*versionCmd) Name() string             { return "version" }
func (*versionCmd) Synopsis() string         { return "prints the version and exits" }
func (*versionCmd) Usage() string            { return "enbd-parser version\n" }
func (*versionCmd) SetFlags(f *flag.FlagSet) {}

func (*versionCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	fmt.Printf("enbd-parser v%s\n", Version)
	return subcommands.ExitSuccess
}
