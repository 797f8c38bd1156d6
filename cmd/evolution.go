package cmd

import (
	"context"
	"flag"

	"github.com/foliotrack/foliotrack"
	"github.com/foliotrack/foliotrack/renderer"
	"github.com/foliotrack/foliotrack/yahoo"
	"github.com/google/subcommands"
)

type evolutionCmd struct {
	interval string
	rates    rateFlags
	fx       bool
}

func (*evolutionCmd) Name() string     { return "evolution" }
func (*evolutionCmd) Synopsis() string { return "replay the history against market quotes" }
func (*evolutionCmd) Usage() string {
	return `folio evolution [-interval 1d|1wk|1mo] [-rate PAIR=RATE]

  Replay the transaction history day by day against historical market
  quotes, showing the portfolio value and holdings at each quoted date.

Usage Examples:
$ folio evolution
$ folio evolution -interval 1mo -rate USDEUR=0.92

`
}

func (c *evolutionCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.interval, "interval", "1d", "quote sampling interval (1d, 1wk or 1mo)")
	setRatesFlag(f, &c.rates)
	setFxFlag(f, &c.fx)
}

func (c *evolutionCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := loadPortfolio("EUR")
	if err != nil {
		return fail("Error: %v", err)
	}
	if p.HistoryLen() == 0 {
		return fail("Error: the portfolio has no transactions to replay")
	}
	if c.fx {
		fetchForeignRates(ctx, p, &c.rates)
	}

	from := foliotrack.Today()
	for _, tx := range p.History() {
		if tx.When().Before(from) {
			from = tx.When()
		}
	}

	table, err := yahoo.New().HistoricalPrices(ctx, p.Tickers(), from, foliotrack.Interval(c.interval))
	if err != nil {
		return fail("Error: %v", err)
	}

	ev, err := p.Evolution(table, c.rates.rates)
	if err != nil {
		return fail("Error: %v", err)
	}
	printMarkdown(renderer.EvolutionMarkdown(ev))
	return subcommands.ExitSuccess
}
