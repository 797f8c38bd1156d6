package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/foliotrack/foliotrack"
	"github.com/google/subcommands"
)

type buyCmd struct {
	ticker   string
	volume   float64
	price    float64
	fee      float64
	currency string
	date     string
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "record the purchase of a security" }
func (*buyCmd) Usage() string {
	return `folio buy -ticker <ticker> -volume <volume> -price <price> [-fee <fee>] [-currency <cur>] [-date <YYYY-MM-DD>]

  Record a purchase: the volume is added to the holding and the price
  becomes the security's latest observed price. Buying an unknown ticker
  adds it to the portfolio with a zero target share.

Usage Examples:
$ folio buy -ticker NVDA -volume 2.5 -price 110 -currency USD
$ folio buy -ticker AIR.PA -volume 10 -price 170 -fee 2 -date 2025-01-15

`
}

func (c *buyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ticker, "ticker", "", "ticker of the security to buy")
	f.Float64Var(&c.volume, "volume", 0, "volume to buy, possibly fractional")
	f.Float64Var(&c.price, "price", 0, "unit price paid")
	f.Float64Var(&c.fee, "fee", 0, "brokerage fee, if any")
	f.StringVar(&c.currency, "currency", "", "currency of the price (defaults to the security's)")
	f.StringVar(&c.date, "date", "", "transaction date, today by default")
}

func (c *buyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.ticker == "" {
		return fail("Error: -ticker is required")
	}
	day, err := parseDay(c.date)
	if err != nil {
		return fail("Error: %v", err)
	}

	p, err := loadPortfolio("EUR")
	if err != nil {
		return fail("Error: %v", err)
	}

	if err := p.Buy(c.ticker, foliotrack.Q(c.volume), foliotrack.M(c.price, c.currency), day, foliotrack.M(c.fee, c.currency)); err != nil {
		return fail("Error: %v", err)
	}
	if err := savePortfolio(p); err != nil {
		return fail("Error: %v", err)
	}
	fmt.Printf("Bought %v %s at %v on %s\n", c.volume, c.ticker, c.price, day)
	return subcommands.ExitSuccess
}

type sellCmd struct {
	ticker string
	volume float64
	date   string
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "record the sale of a security" }
func (*sellCmd) Usage() string {
	return `folio sell -ticker <ticker> -volume <volume> [-date <YYYY-MM-DD>]

  Record a sale at the security's latest observed price. Selling more than
  held is rejected.

Usage Examples:
$ folio sell -ticker NVDA -volume 1
$ folio sell -ticker AIR.PA -volume 4 -date 2025-03-01

`
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ticker, "ticker", "", "ticker of the security to sell")
	f.Float64Var(&c.volume, "volume", 0, "volume to sell")
	f.StringVar(&c.date, "date", "", "transaction date, today by default")
}

func (c *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.ticker == "" {
		return fail("Error: -ticker is required")
	}
	day, err := parseDay(c.date)
	if err != nil {
		return fail("Error: %v", err)
	}

	p, err := loadPortfolio("EUR")
	if err != nil {
		return fail("Error: %v", err)
	}

	if err := p.Sell(c.ticker, foliotrack.Q(c.volume), day); err != nil {
		return fail("Error: %v", err)
	}
	if err := savePortfolio(p); err != nil {
		return fail("Error: %v", err)
	}
	fmt.Printf("Sold %v %s on %s\n", c.volume, c.ticker, day)
	return subcommands.ExitSuccess
}

type targetCmd struct {
	ticker string
	target float64
}

func (*targetCmd) Name() string     { return "target" }
func (*targetCmd) Synopsis() string { return "set the target share of a security" }
func (*targetCmd) Usage() string {
	return `folio target -ticker <ticker> -share <fraction>

  Set the desired fraction of the portfolio value for a security, in [0,1].

Usage Examples:
$ folio target -ticker NVDA -share 0.25

`
}

func (c *targetCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ticker, "ticker", "", "ticker of the security")
	f.Float64Var(&c.target, "share", 0, "target share as a fraction in [0,1]")
}

func (c *targetCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.ticker == "" {
		return fail("Error: -ticker is required")
	}

	p, err := loadPortfolio("EUR")
	if err != nil {
		return fail("Error: %v", err)
	}
	sec := p.Security(c.ticker)
	if sec == nil {
		return fail("Error: unknown ticker %q", c.ticker)
	}
	if err := sec.SetTarget(foliotrack.Percent(c.target)); err != nil {
		return fail("Error: %v", err)
	}
	if err := savePortfolio(p); err != nil {
		return fail("Error: %v", err)
	}
	fmt.Printf("Target of %s set to %s\n", c.ticker, sec.Target())
	return subcommands.ExitSuccess
}
