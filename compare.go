package foliotrack

import "fmt"

// Contract models an investment contract for long-horizon comparisons: an
// initial lump sum compounded yearly at a gross return, reduced by a
// security expense ratio and an annual bank fee, with an optional yearly
// contribution added at the end of each year.
//
// Rates are fractions (0.06 means 6% per year). Simulation is a planning
// projection, not accounting, so it runs on float64.
type Contract struct {
	Label            string
	Initial          float64
	AnnualReturn     float64
	YearlyInvestment float64
	SecurityFee      float64
	BankFee          float64
	CapGainsTax      float64
	Years            int
}

// Validate rejects contracts the simulation cannot interpret.
func (c Contract) Validate() error {
	if c.Years < 0 {
		return fmt.Errorf("%w: years %d is negative", ErrInvalidParameter, c.Years)
	}
	if c.Initial < 0 || c.YearlyInvestment < 0 {
		return fmt.Errorf("%w: negative investment in contract %q", ErrInvalidParameter, c.Label)
	}
	for _, f := range []float64{c.SecurityFee, c.BankFee, c.CapGainsTax} {
		if f < 0 || f > 1 {
			return fmt.Errorf("%w: fee or tax rate outside [0,1] in contract %q", ErrInvalidParameter, c.Label)
		}
	}
	return nil
}

// Simulation is the outcome of a contract simulation. Values holds the
// gross portfolio value at the end of each year, index 0 being the initial
// investment, so its length is Years+1.
type Simulation struct {
	Contract Contract
	Values   []float64
	Invested float64
}

// Simulate computes the yearly gross values of the contract. Each year the
// previous value grows by the annual return, then sheds the security fee
// and the bank fee on year-end assets, then receives the yearly
// contribution.
func (c Contract) Simulate() (*Simulation, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	values := make([]float64, c.Years+1)
	values[0] = c.Initial
	invested := c.Initial
	for y := 1; y <= c.Years; y++ {
		val := values[y-1] * (1 + c.AnnualReturn)
		val *= 1 - c.SecurityFee
		val *= 1 - c.BankFee
		val += c.YearlyInvestment
		invested += c.YearlyInvestment
		values[y] = val
	}
	return &Simulation{Contract: c, Values: values, Invested: invested}, nil
}

// AfterTax returns the liquidation value at each year: the gross value
// minus capital-gains tax on the gain over the total invested amount.
// Losses are not taxed and carry no credit.
func (s *Simulation) AfterTax() []float64 {
	after := make([]float64, len(s.Values))
	for i, v := range s.Values {
		gain := v - s.Invested
		if gain < 0 {
			gain = 0
		}
		after[i] = v - gain*s.Contract.CapGainsTax
	}
	return after
}

// Final returns the last gross value of the simulation.
func (s *Simulation) Final() float64 { return s.Values[len(s.Values)-1] }

// FinalAfterTax returns the last liquidation value.
func (s *Simulation) FinalAfterTax() float64 {
	after := s.AfterTax()
	return after[len(after)-1]
}
