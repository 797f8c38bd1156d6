package cmd

import (
	"context"
	"flag"

	"github.com/foliotrack/foliotrack/renderer"
	"github.com/google/subcommands"
)

type showCmd struct {
	rates   rateFlags
	fx      bool
	history bool
}

func (*showCmd) Name() string     { return "show" }
func (*showCmd) Synopsis() string { return "show the portfolio holdings and shares" }
func (*showCmd) Usage() string {
	return `folio show [-history] [-rate PAIR=RATE] [-fx]

  Show the portfolio: every security with its latest price, volume, value,
  and the actual vs target share of the total value. Securities quoted in a
  foreign currency need a -rate for the conversion, or -fx to fetch the
  rates from the market.

Usage Examples:
$ folio show
$ folio show -rate USDEUR=0.92
$ folio show -fx -history

`
}

func (c *showCmd) SetFlags(f *flag.FlagSet) {
	setRatesFlag(f, &c.rates)
	setFxFlag(f, &c.fx)
	f.BoolVar(&c.history, "history", false, "also show the transaction history")
}

func (c *showCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := loadPortfolio("EUR")
	if err != nil {
		return fail("Error: %v", err)
	}
	if c.fx {
		fetchForeignRates(ctx, p, &c.rates)
	}

	info, err := p.Info(c.rates.rates)
	if err != nil {
		return fail("Error: %v", err)
	}
	printMarkdown(renderer.InfoMarkdown(info))

	if c.history {
		printMarkdown(renderer.HistoryMarkdown(p))
	}
	return subcommands.ExitSuccess
}
