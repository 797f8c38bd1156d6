package cmd

import (
	"context"
	"flag"
	"os"
	"strings"

	"github.com/foliotrack/foliotrack/agent"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

type assistCmd struct{}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "start an interactive session with the AI assistant" }
func (*assistCmd) Usage() string {
	return `folio assist [<prompt>...]

  Start an interactive session with the AI assistant. The assistant can
  inspect the portfolio, compute equilibrium plans and research market
  topics. Requires a configured Gemini API key.

Usage Examples:
$ folio assist
$ folio assist how far is my portfolio from its targets?

`
}

func (*assistCmd) SetFlags(_ *flag.FlagSet) {}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var prompts []string
	if f.NArg() > 0 {
		prompts = append(prompts, strings.Join(f.Args(), " "))
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return fail("Error initializing Gemini's client: %v", err)
	}

	agent.PortfolioFile = PortfolioFile()
	a := agent.New(os.Stdout, os.Stdin, agent.NewAnalyst(), agent.NewBookkeeper())
	if err := a.Run(ctx, client, prompts...); err != nil {
		return fail("Agent failed: %v", err)
	}
	return subcommands.ExitSuccess
}
