package renderer

import (
	"bytes"
	"fmt"

	portfolio "github.com/etnz/modelfolio"
	md "github.com/nao1215/markdown"
)

// Transaction renders a transaction to a string.
func Transaction(tx portfolio.Transaction) string {
	switch tx.Type {
	case portfolio.Buy:
		return fmt.Sprintf("Bought %s %s at %s", tx.Quantity, tx.Ticker, tx.Price)
	case portfolio.Sell:
		return fmt.Sprintf("Sold %s %s at %s", tx.Quantity, tx.Ticker, tx.Price)
	default:
		return string(tx.Type)
	}
}

// TransactionsMarkdown renders the ledger, most recent first, with the
// realized P&L of every sell.
func TransactionsMarkdown(name string, l *portfolio.Ledger, realized map[int]portfolio.Realization) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	if name == "" {
		doc.H1("Transactions")
	} else {
		doc.H1(name + ": Transactions")
	}
	if l.Len() == 0 {
		doc.PlainText("No transaction.")
		return doc.String()
	}
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignLeft,
		},
		Header: []string{"Date", "Type", "Ticker", "Quantity", "Price", "Value", "Realized P&L", "Notes"},
	}
	for i := l.Len() - 1; i >= 0; i-- {
		tx := l.At(i)
		pnl := ""
		if r, ok := realized[i]; ok {
			pnl = r.PnL.SignedString()
		}
		table.Rows = append(table.Rows, []string{
			tx.Date.String(),
			string(tx.Type),
			tx.Ticker,
			tx.Quantity.String(),
			tx.Price.String(),
			tx.Amount().String(),
			pnl,
			tx.Notes,
		})
	}
	doc.Table(table)
	return doc.String()
}
