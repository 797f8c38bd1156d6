package renderer

import (
	"bytes"
	"fmt"

	"github.com/foliotrack/foliotrack"
	md "github.com/nao1215/markdown"
)

// PlanMarkdown renders an equilibrium plan: one row per allocation with the
// amount, the volume to trade and the projected share.
func PlanMarkdown(plan *foliotrack.Plan) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Equilibrium Plan")

	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
		},
		Header: []string{
			md.Bold("Invested"),
			md.Bold(plan.TotalInvested.String()),
		},
		Rows: [][]string{
			{"Invested Fraction", fmt.Sprintf("%.2f%%", plan.InvestedFraction*100)},
			{"Post-Trade Value", plan.NewTotalValue.String()},
		},
	})

	if plan.Underinvested {
		doc.PlainText(md.Bold("Warning:") + " part of the amount could not be allocated.")
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Ticker", "Amount", "Volume", "Final Share"},
	}
	for _, alloc := range plan.Allocations {
		if alloc.Amount.IsZero() {
			continue
		}
		table.Rows = append(table.Rows, []string{
			alloc.Ticker,
			alloc.Amount.SignedString(),
			alloc.Volume.String(),
			alloc.FinalShare.String(),
		})
	}
	doc.H2("Allocations")
	if len(table.Rows) == 0 {
		doc.PlainText("Nothing to trade.")
	} else {
		doc.Table(table)
	}

	return doc.String()
}
