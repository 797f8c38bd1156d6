package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/foliotrack/foliotrack/renderer"
	"github.com/foliotrack/foliotrack/yahoo"
	"github.com/google/subcommands"
)

type updateCmd struct {
	rates rateFlags
}

func (*updateCmd) Name() string     { return "update" }
func (*updateCmd) Synopsis() string { return "refresh security prices from Yahoo Finance" }
func (*updateCmd) Usage() string {
	return `folio update [-rate PAIR=RATE]

  Refresh the latest price of every security in the portfolio from the
  Yahoo Finance chart API. A ticker without data is reported but does not
  abort the update.

Usage Examples:
$ folio update
$ folio update -rate USDEUR=0.92

`
}

func (c *updateCmd) SetFlags(f *flag.FlagSet) {
	setRatesFlag(f, &c.rates)
}

func (c *updateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := loadPortfolio("EUR")
	if err != nil {
		return fail("Error: %v", err)
	}

	if err := p.UpdatePrices(ctx, yahoo.New()); err != nil {
		// partial failures: report and keep going with the refreshed prices.
		fmt.Fprintf(os.Stderr, "Warning: some prices could not be refreshed:\n%v\n", err)
	}
	if err := savePortfolio(p); err != nil {
		return fail("Error: %v", err)
	}

	info, err := p.Info(c.rates.rates)
	if err != nil {
		return fail("Error: %v", err)
	}
	printMarkdown(renderer.InfoMarkdown(info))
	return subcommands.ExitSuccess
}
