// Package foliotrack provides the types and functions to manage a personal
// investment portfolio organized around target allocation shares.
//
// The core functionalities include:
//   - Portfolio Management: a currency-denominated collection of securities
//     with an append-only transaction history of buys and sells.
//   - Equilibrium Planning: a solver that distributes new cash (and
//     optionally sales of over-weighted positions) to bring every security
//     as close as possible to its target share of the portfolio value.
//   - Market Data Integration: a gateway abstraction for latest and
//     historical prices, with currency conversion through explicit rate
//     tables.
//   - Reporting: valuation snapshots, history replay against market quotes,
//     and long-horizon contract comparisons.
//   - Data Persistence: a stable, human-readable JSON document format that
//     is re-validated on load.
//
// This package is the foundational logic for the `folio` command-line tool.
package foliotrack
