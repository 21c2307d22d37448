package renderer

import (
	"bytes"

	portfolio "github.com/etnz/modelfolio"
	md "github.com/nao1215/markdown"
)

// HoldingsMarkdown renders the valued holdings, largest cost first.
func HoldingsMarkdown(name string, r portfolio.HoldingReport) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(title(name, "Holdings", r.AsOf))
	if len(r.Lines) == 0 {
		doc.PlainText("No open position.")
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Ticker", "Sector", "Quantity", "Avg Cost", "Price", "Market Value", "P&L", "P&L %", "Weight"},
	}
	for _, l := range r.Lines {
		table.Rows = append(table.Rows, []string{
			l.Ticker,
			l.Sector,
			l.Quantity.String(),
			l.AvgCost.String(),
			price(l.Price),
			l.MarketValue.String(),
			l.UnrealizedPnL.SignedString(),
			signed(l.UnrealizedPnLPct),
			l.Weight.String(),
		})
	}
	table.Rows = append(table.Rows, []string{
		md.Bold("Total"), "", "", "", "",
		md.Bold(r.MarketValue.String()),
		md.Bold(r.UnrealizedPnL.SignedString()),
		md.Bold(signed(r.UnrealizedPnLPct)),
		"",
	})
	doc.Table(table)
	doc.PlainText("Invested: " + r.TotalCost.String())
	return doc.String()
}
