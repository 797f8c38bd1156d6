// Package cmd implements the CLI application to manage a portfolio.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/foliotrack/foliotrack"
	"github.com/foliotrack/foliotrack/yahoo"
	"github.com/google/subcommands"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var portfolioFile = flag.String("f", "portfolio.json", "Path to the portfolio file (JSON format)")

// PortfolioFile returns the portfolio file path in use.
func PortfolioFile() string { return *portfolioFile }

// Commands lists every subcommand of the application, for registration and
// for shell completion.
var Commands = []subcommands.Command{
	&showCmd{},
	&buyCmd{},
	&sellCmd{},
	&targetCmd{},
	&updateCmd{},
	&equilibriumCmd{},
	&evolutionCmd{},
	&compareCmd{},
	&topicCmd{},
	&assistCmd{},
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&showCmd{}, "portfolio")
	c.Register(&targetCmd{}, "portfolio")

	c.Register(&buyCmd{}, "transactions")
	c.Register(&sellCmd{}, "transactions")

	c.Register(&updateCmd{}, "market data")
	c.Register(&evolutionCmd{}, "market data")

	c.Register(&equilibriumCmd{}, "planning")
	c.Register(&compareCmd{}, "planning")

	c.Register(&topicCmd{}, "help")
	c.Register(&assistCmd{}, "help")
}

// loadPortfolio reads the app portfolio file. A missing file yields a new
// empty portfolio in the given currency.
func loadPortfolio(currency string) (*foliotrack.Portfolio, error) {
	f, err := os.Open(*portfolioFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Printf("warning, portfolio file %q does not exist, starting an empty portfolio", *portfolioFile)
			return foliotrack.NewPortfolio(currency), nil
		}
		return nil, fmt.Errorf("could not open portfolio file %q: %w", *portfolioFile, err)
	}
	defer f.Close()

	p, err := foliotrack.DecodePortfolio(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode portfolio file %q: %w", *portfolioFile, err)
	}
	return p, nil
}

// savePortfolio writes the portfolio back to the app portfolio file.
func savePortfolio(p *foliotrack.Portfolio) error {
	f, err := os.Create(*portfolioFile)
	if err != nil {
		return fmt.Errorf("could not create portfolio file %q: %w", *portfolioFile, err)
	}
	defer f.Close()

	if err := foliotrack.EncodePortfolio(f, p); err != nil {
		return fmt.Errorf("could not encode portfolio file %q: %w", *portfolioFile, err)
	}
	return nil
}

// rateFlags collects -rate PAIR=RATE flags into a rate table.
type rateFlags struct {
	rates foliotrack.Rates
}

func (r *rateFlags) String() string {
	pairs := make([]string, 0, len(r.rates))
	for pair, rate := range r.rates {
		pairs = append(pairs, fmt.Sprintf("%s=%v", pair, rate))
	}
	return strings.Join(pairs, ",")
}

func (r *rateFlags) Set(s string) error {
	pair, value, found := strings.Cut(s, "=")
	if !found || len(pair) != 6 {
		return fmt.Errorf("invalid rate %q, expected PAIR=RATE like USDEUR=0.92", s)
	}
	rate, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("invalid rate %q: %w", s, err)
	}
	if r.rates == nil {
		r.rates = foliotrack.Rates{}
	}
	r.rates.Set(strings.ToUpper(pair[:3]), strings.ToUpper(pair[3:]), rate)
	return nil
}

// setRatesFlag registers the repeatable -rate flag on a command flag set.
func setRatesFlag(f *flag.FlagSet, r *rateFlags) {
	f.Var(r, "rate", "currency conversion rate as PAIR=RATE (e.g. USDEUR=0.92), repeatable")
}

// setFxFlag registers the -fx flag that fetches missing rates from the
// market instead of requiring them on the command line.
func setFxFlag(f *flag.FlagSet, fx *bool) {
	f.BoolVar(fx, "fx", false, "fetch missing conversion rates from the market")
}

// fetchForeignRates fetches from the market the conversion rates the
// portfolio needs and that were not given with -rate flags. Rates given on
// the command line always win.
func fetchForeignRates(ctx context.Context, p *foliotrack.Portfolio, r *rateFlags) {
	var pairs []string
	seen := make(map[string]bool)
	for sec := range p.Securities() {
		pair := sec.Currency() + p.Currency()
		if sec.Currency() == p.Currency() || seen[pair] {
			continue
		}
		seen[pair] = true
		if _, err := r.rates.Convert(foliotrack.M(1, sec.Currency()), p.Currency()); err == nil {
			continue
		}
		pairs = append(pairs, pair)
	}
	if len(pairs) == 0 {
		return
	}
	fetched, err := foliotrack.FetchRates(ctx, yahoo.New(), pairs...)
	if err != nil {
		log.Printf("warning, some conversion rates could not be fetched: %v", err)
	}
	if r.rates == nil {
		r.rates = foliotrack.Rates{}
	}
	for pair, rate := range fetched {
		r.rates.Set(pair[:3], pair[3:], rate)
	}
}

// parseDay parses a -date flag value, defaulting to today.
func parseDay(s string) (foliotrack.Date, error) {
	if s == "" {
		return foliotrack.Today(), nil
	}
	return foliotrack.ParseDate(s)
}

// fail prints an error and returns the failure exit status.
func fail(format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	return subcommands.ExitFailure
}
