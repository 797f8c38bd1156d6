package renderer

import (
	"bytes"

	"github.com/foliotrack/foliotrack"
	md "github.com/nao1215/markdown"
)

// InfoMarkdown renders the portfolio snapshot as a markdown table: one row
// per security with its price, holding, value and actual vs target share.
func InfoMarkdown(info *foliotrack.PortfolioInfo) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Portfolio")

	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
		},
		Header: []string{
			md.Bold("Total Value"),
			md.Bold(info.TotalValue.String()),
		},
	})

	if len(info.Securities) > 0 {
		doc.H2("Holdings")
		table := md.TableSet{
			Alignment: []md.TableAlignment{
				md.AlignLeft,
				md.AlignLeft,
				md.AlignRight,
				md.AlignRight,
				md.AlignRight,
				md.AlignRight,
				md.AlignRight,
			},
			Header: []string{
				"Ticker", "Name", "Price", "Volume", "Value", "Actual", "Target",
			},
		}
		for _, sec := range info.Securities {
			table.Rows = append(table.Rows, []string{
				sec.Ticker,
				sec.Name,
				sec.Price.String(),
				sec.Volume.String(),
				sec.Value.String(),
				sec.Actual.String(),
				sec.Target.String(),
			})
		}
		doc.Table(table)
	}

	return doc.String()
}

// HistoryMarkdown renders the transaction history as an ordered list.
func HistoryMarkdown(p *foliotrack.Portfolio) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("History")
	var lines []string
	for _, tx := range p.History() {
		lines = append(lines, Transaction(tx))
	}
	if len(lines) == 0 {
		doc.PlainText("No transactions recorded.")
	} else {
		doc.OrderedList(lines...)
	}
	return doc.String()
}
