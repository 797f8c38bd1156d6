package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/foliotrack/foliotrack/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	cmd.Register(commander)

	// Shell completion for subcommand names and the shared flags. Only
	// runs when invoked by the shell's completion hook.
	sub := make(map[string]*complete.Command, len(cmd.Commands))
	for _, c := range cmd.Commands {
		sub[c.Name()] = &complete.Command{}
	}
	completer := &complete.Command{
		Sub: sub,
		Flags: map[string]complete.Predictor{
			"f": predict.Files("*.json"),
		},
	}
	completer.Complete("folio")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
