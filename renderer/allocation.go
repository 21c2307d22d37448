package renderer

import (
	"bytes"

	portfolio "github.com/etnz/modelfolio"
	md "github.com/nao1215/markdown"
)

// AllocationMarkdown renders the market value breakdown by stock and by sector.
func AllocationMarkdown(name string, a portfolio.Allocation) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(title(name, "Allocation", a.AsOf))
	doc.PlainText("Market Value: " + a.Total.String())

	breakdown := func(label string, s []portfolio.AllocationSlice) {
		table := md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight},
			Header:    []string{label, "Value", "Share"},
		}
		for _, slice := range s {
			table.Rows = append(table.Rows, []string{slice.Label, slice.Value.String(), slice.Pct.String()})
		}
		doc.Table(table)
	}
	doc.H2("By Stock")
	breakdown("Ticker", a.ByStock)
	doc.H2("By Sector")
	breakdown("Sector", a.BySector)
	return doc.String()
}
