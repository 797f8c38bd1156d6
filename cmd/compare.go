package cmd

import (
	"context"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/foliotrack/foliotrack"
	"github.com/foliotrack/foliotrack/renderer"
	"github.com/google/subcommands"
)

type compareCmd struct {
	years int
}

func (*compareCmd) Name() string     { return "compare" }
func (*compareCmd) Synopsis() string { return "simulate and compare investment contracts" }
func (*compareCmd) Usage() string {
	return `folio compare [-years N] <contract>...

  Each contract is described as

    label:initial:return:yearly:secfee:bankfee:tax

  where rates are yearly fractions (0.06 means 6%). All contracts are
  simulated over the same horizon and compared side by side, gross and
  after capital-gains tax.

Usage Examples:
$ folio compare -years 20 "etf:10000:0.07:1200:0.002:0:0.30" "fund:10000:0.07:1200:0.018:0.005:0.30"

`
}

func (c *compareCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.years, "years", 10, "simulation horizon in years")
}

func (c *compareCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		return fail("Error: at least one contract is required, see 'folio help compare'")
	}

	sims := make([]*foliotrack.Simulation, 0, f.NArg())
	for _, arg := range f.Args() {
		contract, err := parseContract(arg, c.years)
		if err != nil {
			return fail("Error: %v", err)
		}
		sim, err := contract.Simulate()
		if err != nil {
			return fail("Error: %v", err)
		}
		sims = append(sims, sim)
	}
	printMarkdown(renderer.CompareMarkdown(sims))
	return subcommands.ExitSuccess
}

// parseContract reads a "label:initial:return:yearly:secfee:bankfee:tax"
// description into a contract over the given horizon.
func parseContract(s string, years int) (foliotrack.Contract, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 7 {
		return foliotrack.Contract{}, fmt.Errorf("invalid contract %q: want 7 fields, got %d", s, len(parts))
	}
	fields := make([]float64, 6)
	for i, p := range parts[1:] {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return foliotrack.Contract{}, fmt.Errorf("invalid contract %q: field %q is not a number", s, p)
		}
		fields[i] = v
	}
	return foliotrack.Contract{
		Label:            parts[0],
		Initial:          fields[0],
		AnnualReturn:     fields[1],
		YearlyInvestment: fields[2],
		SecurityFee:      fields[3],
		BankFee:          fields[4],
		CapGainsTax:      fields[5],
		Years:            years,
	}, nil
}
