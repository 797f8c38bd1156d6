package foliotrack

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// DefaultMinInvested is the default minimum fraction of the investment
// amount that a solve is expected to deploy.
const DefaultMinInvested = 0.99

// SolveOptions are the investment parameters of an equilibrium solve.
type SolveOptions struct {
	// Amount is the new cash to deploy, in the portfolio's reporting
	// currency (the weak "" currency adopts it).
	Amount Money

	// MinInvested is the minimum fraction of Amount that should be
	// deployed, in (0,1]. Zero selects DefaultMinInvested. This threshold
	// is advisory: the solver reports under-investment, it never fails on
	// it, because zero or few eligible candidates can make full investment
	// infeasible.
	MinInvested float64

	// MaxSecurities caps how many distinct tickers may receive purchases.
	// Zero means unlimited. This is a hard constraint: the solver never
	// allocates to more tickers than the cap, even if cash is left
	// under-invested.
	MaxSecurities int

	// Selling allows securities above target to be sold down to target,
	// their proceeds funding the purchases.
	Selling bool
}

// Allocation is the planned trade for one security.
type Allocation struct {
	Ticker string
	// Amount is the money to invest in the reporting currency. Zero for
	// untouched securities, negative for a sale when selling is enabled.
	Amount Money
	// Volume is Amount divided by the security price, negative for sales.
	// Fractional volumes are legal.
	Volume Quantity
	// FinalShare is the projected post-trade share of portfolio value.
	FinalShare Percent
}

// Plan is the purchase (and sale) plan produced by an equilibrium solve.
// Allocations are listed in the portfolio's security order.
type Plan struct {
	Currency    string
	Allocations []Allocation

	// TotalInvested is the net cash deployed: purchases minus sales.
	TotalInvested Money
	// InvestedFraction is TotalInvested over the requested amount.
	InvestedFraction float64
	// Underinvested reports an InvestedFraction below the MinInvested
	// threshold of the solve.
	Underinvested bool
	// NewTotalValue is the post-trade total portfolio value, which is the
	// pre-trade value plus the requested amount.
	NewTotalValue Money
}

// Allocation returns the planned trade for a ticker, or nil.
func (pl *Plan) Allocation(ticker string) *Allocation {
	for i := range pl.Allocations {
		if pl.Allocations[i].Ticker == ticker {
			return &pl.Allocations[i]
		}
	}
	return nil
}

// Solve computes the equilibrium purchase plan: the allocation of new cash
// that brings each security's post-trade share as close as possible to its
// target share without selling (unless enabled) and without exceeding the
// distinct-securities cap.
//
// The portfolio is treated as an immutable snapshot: Solve never mutates
// it. Callers apply the returned plan explicitly with ApplyPlan, or inspect
// InvestedFraction first and discard it.
//
// Gaps to target are measured against the post-trade total value. Cash is
// assigned to under-target securities in gap order, largest first, ties
// broken by the portfolio's security insertion order.
func Solve(p *Portfolio, rates Rates, opts SolveOptions) (*Plan, error) {
	if opts.Amount.Currency() != "" && opts.Amount.Currency() != p.Currency() {
		return nil, fmt.Errorf("%w: amount currency %s does not match portfolio currency %s",
			ErrInvalidParameter, opts.Amount.Currency(), p.Currency())
	}
	if opts.Amount.IsNegative() {
		return nil, fmt.Errorf("%w: investment amount %s is negative", ErrInvalidParameter, opts.Amount)
	}
	if opts.MinInvested == 0 {
		opts.MinInvested = DefaultMinInvested
	}
	if opts.MinInvested < 0 || opts.MinInvested > 1 {
		return nil, fmt.Errorf("%w: minimum invested fraction %v is outside (0,1]",
			ErrInvalidParameter, opts.MinInvested)
	}
	if opts.MaxSecurities < 0 {
		return nil, fmt.Errorf("%w: max different securities %d is negative",
			ErrInvalidParameter, opts.MaxSecurities)
	}

	// Degenerate security data aborts the whole solve, no partial plan.
	for sec := range p.Securities() {
		if !sec.Price().IsPositive() && (sec.Volume().IsPositive() || sec.Target() > 0) {
			return nil, fmt.Errorf("%w: security %s has price %s", ErrInvalidState, sec.Ticker(), sec.Price())
		}
	}

	// Value every security in the reporting currency.
	values := make([]decimal.Decimal, 0, p.Len())
	tickers := p.Tickers()
	currentTotal := decimal.Zero
	for sec := range p.Securities() {
		value, err := sec.ValueIn(rates, p.Currency())
		if err != nil {
			return nil, fmt.Errorf("could not value %s: %w", sec.Ticker(), err)
		}
		values = append(values, value.value)
		currentTotal = currentTotal.Add(value.value)
	}

	amount := opts.Amount.value
	newTotal := currentTotal.Add(amount)

	plan := &Plan{
		Currency:      p.Currency(),
		Allocations:   make([]Allocation, len(tickers)),
		NewTotalValue: M(newTotal, p.Currency()),
	}
	for i, ticker := range tickers {
		plan.Allocations[i] = Allocation{
			Ticker: ticker,
			Amount: M(0, p.Currency()),
			Volume: Q(0),
		}
	}

	// Degenerate case: empty portfolio and zero investment. Every final
	// share is zero, not NaN.
	if newTotal.IsZero() {
		plan.TotalInvested = M(0, p.Currency())
		plan.InvestedFraction = 1
		return plan, nil
	}

	// Gap to close per security: target value minus current value against
	// the post-trade denominator.
	gaps := make([]decimal.Decimal, len(tickers))
	i := 0
	for sec := range p.Securities() {
		target := newTotal.Mul(decimal.NewFromFloat(float64(sec.Target())))
		gaps[i] = target.Sub(values[i])
		i++
	}

	// Without selling, over-target securities receive neither purchase nor
	// sale: their share simply drifts with the denominator change.
	// With selling, they are sold down to target and the proceeds join the
	// investable cash.
	cash := amount
	allocated := make([]decimal.Decimal, len(tickers))
	for i := range gaps {
		if gaps[i].IsNegative() {
			if opts.Selling {
				allocated[i] = gaps[i]
				cash = cash.Sub(gaps[i]) // gap is negative: proceeds increase cash
			}
			gaps[i] = decimal.Zero
		}
	}

	// Priority order: positive gaps descending, ties broken by the
	// original security order (stable sort over insertion indices).
	candidates := make([]int, 0, len(tickers))
	for i := range gaps {
		if gaps[i].IsPositive() {
			candidates = append(candidates, i)
		}
	}
	sort.SliceStable(candidates, func(a, b int) bool {
		return gaps[candidates[a]].GreaterThan(gaps[candidates[b]])
	})

	distribute := func(candidates []int) {
		remaining := cash
		for _, i := range candidates {
			if !remaining.IsPositive() {
				break
			}
			a := decimal.Min(gaps[i], remaining)
			allocated[i] = a
			remaining = remaining.Sub(a)
		}
	}
	distribute(candidates)

	// The cap on distinct purchases is a hard constraint. Cash is assigned
	// in priority order, so the funded set is a prefix of the candidate
	// list; restricting to the first N keeps the N largest gaps, and the
	// cash is redistributed among just those.
	if opts.MaxSecurities > 0 {
		funded := 0
		for _, i := range candidates {
			if allocated[i].IsPositive() {
				funded++
			}
		}
		if funded > opts.MaxSecurities {
			for _, i := range candidates {
				allocated[i] = decimal.Zero
			}
			distribute(candidates[:opts.MaxSecurities])
		}
	}

	// Assemble the plan.
	total := decimal.Zero
	i = 0
	for sec := range p.Securities() {
		a := allocated[i]
		alloc := &plan.Allocations[i]
		alloc.Amount = M(a, p.Currency())
		if !a.IsZero() {
			price, err := rates.Convert(sec.Price(), p.Currency())
			if err != nil {
				return nil, fmt.Errorf("could not convert %s price: %w", sec.Ticker(), err)
			}
			alloc.Volume = alloc.Amount.DivPrice(price)
		}
		alloc.FinalShare = Percent(values[i].Add(a).Div(newTotal).InexactFloat64())
		total = total.Add(a)
		i++
	}

	plan.TotalInvested = M(total, p.Currency())
	if amount.IsZero() {
		plan.InvestedFraction = 1
	} else {
		plan.InvestedFraction = total.Div(amount).InexactFloat64()
	}
	plan.Underinvested = plan.InvestedFraction < opts.MinInvested
	return plan, nil
}

// ApplyPlan executes a plan against the portfolio: a buy for each positive
// allocation and a sale for each negative one, all dated the same day,
// appending to the history. Zero allocations leave no trace.
func ApplyPlan(p *Portfolio, plan *Plan, day Date) error {
	for _, alloc := range plan.Allocations {
		sec := p.Security(alloc.Ticker)
		if sec == nil {
			return fmt.Errorf("%w: %s", ErrUnknownTicker, alloc.Ticker)
		}
		switch {
		case alloc.Volume.IsPositive():
			if err := p.Buy(alloc.Ticker, alloc.Volume, sec.Price(), day, M(0, sec.Currency())); err != nil {
				return err
			}
		case alloc.Volume.IsNegative():
			if err := p.Sell(alloc.Ticker, alloc.Volume.Neg(), day); err != nil {
				return err
			}
		}
	}
	return nil
}
