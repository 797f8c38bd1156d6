package renderer

import (
	"bytes"
	"fmt"

	"github.com/foliotrack/foliotrack"
	md "github.com/nao1215/markdown"
)

// CompareMarkdown renders several contract simulations side by side: the
// gross and after-tax value at the end of the horizon for each contract.
func CompareMarkdown(sims []*foliotrack.Simulation) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Contract Comparison")
	if len(sims) == 0 {
		doc.PlainText("No contracts to compare.")
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Contract", "Years", "Invested", "Gross", "After Tax"},
	}
	for _, s := range sims {
		table.Rows = append(table.Rows, []string{
			s.Contract.Label,
			fmt.Sprintf("%d", s.Contract.Years),
			fmt.Sprintf("%.2f", s.Invested),
			fmt.Sprintf("%.2f", s.Final()),
			fmt.Sprintf("%.2f", s.FinalAfterTax()),
		})
	}
	doc.Table(table)

	return doc.String()
}
