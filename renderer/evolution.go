package renderer

import (
	"bytes"
	"sort"

	"github.com/foliotrack/foliotrack"
	md "github.com/nao1215/markdown"
)

// EvolutionMarkdown renders the replayed portfolio history: one row per
// quoted day with the total value and the volumes held.
func EvolutionMarkdown(evo *foliotrack.Evolution) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Evolution")
	if len(evo.Points) == 0 {
		doc.PlainText("No history to replay.")
		return doc.String()
	}

	// Column per ticker, in alphabetical order across all points.
	seen := make(map[string]bool)
	for _, pt := range evo.Points {
		for ticker := range pt.Volumes {
			seen[ticker] = true
		}
	}
	tickers := make([]string, 0, len(seen))
	for ticker := range seen {
		tickers = append(tickers, ticker)
	}
	sort.Strings(tickers)

	header := []string{"Date", "Value"}
	alignment := []md.TableAlignment{md.AlignLeft, md.AlignRight}
	for _, ticker := range tickers {
		header = append(header, ticker)
		alignment = append(alignment, md.AlignRight)
	}

	table := md.TableSet{Alignment: alignment, Header: header}
	for _, pt := range evo.Points {
		row := []string{pt.Date.String(), pt.Value.String()}
		for _, ticker := range tickers {
			row = append(row, pt.Volumes[ticker].String())
		}
		table.Rows = append(table.Rows, row)
	}
	doc.Table(table)

	return doc.String()
}
