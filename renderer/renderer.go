// Package renderer formats portfolio reports as markdown, to be printed
// raw or through a terminal renderer.
package renderer

import (
	"fmt"

	"github.com/foliotrack/foliotrack"
)

// Transaction formats a single history entry as a one-line summary.
func Transaction(tx foliotrack.Transaction) string {
	switch t := tx.(type) {
	case foliotrack.Buy:
		return fmt.Sprintf("%s: buy %s %s at %s", t.When(), t.Volume, t.Ticker(), t.Price)
	case foliotrack.Sell:
		return fmt.Sprintf("%s: sell %s %s at %s", t.When(), t.Volume, t.Ticker(), t.Price)
	default:
		return fmt.Sprintf("%s: %s %s", tx.When(), tx.What(), tx.Ticker())
	}
}
