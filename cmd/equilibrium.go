package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/foliotrack/foliotrack"
	"github.com/foliotrack/foliotrack/renderer"
	"github.com/google/subcommands"
)

type equilibriumCmd struct {
	amount  float64
	min     float64
	max     int
	selling bool
	apply   bool
	date    string
	rates   rateFlags
	fx      bool
}

func (*equilibriumCmd) Name() string { return "equilibrium" }
func (*equilibriumCmd) Synopsis() string {
	return "compute how new cash should be invested to reach the target shares"
}
func (*equilibriumCmd) Usage() string {
	return `folio equilibrium -amount <amount> [-max N] [-min F] [-selling] [-apply] [-rate PAIR=RATE]

  Compute the purchase plan that brings every security as close as possible
  to its target share of the portfolio value. The plan is only displayed;
  with -apply it is executed and recorded in the history.

Usage Examples:
$ folio equilibrium -amount 500
$ folio equilibrium -amount 500 -max 2 -selling
$ folio equilibrium -amount 500 -apply

`
}

func (c *equilibriumCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.amount, "amount", 0, "new cash to invest, in the portfolio currency")
	f.Float64Var(&c.min, "min", 0, "minimum fraction of the amount to deploy, in (0,1] (default 0.99)")
	f.IntVar(&c.max, "max", 0, "maximum number of distinct securities to buy (0 = unlimited)")
	f.BoolVar(&c.selling, "selling", false, "allow selling over-target securities down to target")
	f.BoolVar(&c.apply, "apply", false, "execute the plan and record the transactions")
	f.StringVar(&c.date, "date", "", "transaction date when applying, today by default")
	setRatesFlag(f, &c.rates)
	setFxFlag(f, &c.fx)
}

func (c *equilibriumCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := loadPortfolio("EUR")
	if err != nil {
		return fail("Error: %v", err)
	}
	if c.fx {
		fetchForeignRates(ctx, p, &c.rates)
	}

	plan, err := foliotrack.Solve(p, c.rates.rates, foliotrack.SolveOptions{
		Amount:        foliotrack.M(c.amount, p.Currency()),
		MinInvested:   c.min,
		MaxSecurities: c.max,
		Selling:       c.selling,
	})
	if err != nil {
		return fail("Error: %v", err)
	}
	printMarkdown(renderer.PlanMarkdown(plan))

	if !c.apply {
		return subcommands.ExitSuccess
	}

	day, err := parseDay(c.date)
	if err != nil {
		return fail("Error: %v", err)
	}
	if err := foliotrack.ApplyPlan(p, plan, day); err != nil {
		return fail("Error: %v", err)
	}
	if err := savePortfolio(p); err != nil {
		return fail("Error: %v", err)
	}
	fmt.Printf("Plan applied on %s\n", day)
	return subcommands.ExitSuccess
}
