package foliotrack

import "errors"

// Error taxonomy of the core. All errors are returned synchronously to the
// immediate caller and are matchable with errors.Is; call sites wrap them
// with fmt.Errorf("...: %w", ...) to add the offending ticker or value.
// The core never logs and never retries.
var (
	// ErrInvalidParameter reports bad solver inputs. Rejected before any
	// allocation is attempted.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrInvalidSecurity reports out-of-range values at security construction.
	ErrInvalidSecurity = errors.New("invalid security")

	// ErrInvalidState reports degenerate security data discovered
	// mid-computation (e.g. a zero price on a held security). The whole
	// solve call is aborted, no partial plan is returned.
	ErrInvalidState = errors.New("invalid security state")

	// ErrDuplicateTicker reports an attempt to add a security whose ticker
	// is already present in the portfolio.
	ErrDuplicateTicker = errors.New("duplicate ticker")

	// ErrUnknownTicker reports an operation on a ticker absent from the
	// portfolio.
	ErrUnknownTicker = errors.New("unknown ticker")

	// ErrInsufficientHoldings reports a sell exceeding the current holding.
	// No short selling: the portfolio is left unchanged.
	ErrInsufficientHoldings = errors.New("insufficient holdings")

	// ErrInvalidArgument reports an invalid portfolio-mutation argument
	// (non-positive volume, negative price). The single operation is
	// rejected, the portfolio state is unchanged.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrPriceUnavailable reports that a market data provider has no price
	// for a ticker. Per ticker and non-fatal: a batch refresh collects
	// these and carries on.
	ErrPriceUnavailable = errors.New("price unavailable")

	// ErrRateUnavailable reports a missing currency conversion rate.
	ErrRateUnavailable = errors.New("conversion rate unavailable")
)
