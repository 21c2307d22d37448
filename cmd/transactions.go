package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	portfolio "github.com/etnz/modelfolio"
	"github.com/etnz/modelfolio/renderer"
	"github.com/google/subcommands"
	"github.com/google/uuid"
)

// tradeFlags are the flags shared by buy and sell.
type tradeFlags struct {
	date     string
	ticker   string
	exchange string
	sector   string
	quantity int
	price    float64
	notes    string
}

func (c *tradeFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Transaction date (YYYY-MM-DD), today if missing")
	f.StringVar(&c.ticker, "t", "", "Ticker")
	f.StringVar(&c.exchange, "x", portfolio.DefaultExchange, "Exchange the ticker is listed on (NSE or BSE)")
	f.StringVar(&c.sector, "sector", "", "Sector of the company")
	f.IntVar(&c.quantity, "q", 0, "Number of shares")
	f.Float64Var(&c.price, "p", 0, "Price per share")
	f.StringVar(&c.notes, "n", "", "An optional rationale or note for the transaction")
}

// record validates the trade against the ledger and appends it.
func (c *tradeFlags) record(typ portfolio.TxType) subcommands.ExitStatus {
	day, err := parseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	ledger, err := decodeLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	quantity := portfolio.Q(c.quantity)
	if typ == portfolio.Sell && c.quantity == 0 {
		// sell everything.
		book, err := portfolio.Replay(ledger, day)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error replaying ledger: %v\n", err)
			return subcommands.ExitFailure
		}
		quantity = book.Position(strings.ToUpper(strings.TrimSpace(c.ticker))).Quantity
	}

	tx := portfolio.Transaction{
		ID:       uuid.NewString(),
		Type:     typ,
		Ticker:   c.ticker,
		Exchange: c.exchange,
		Quantity: quantity,
		Price:    portfolio.M(c.price, ledger.Currency()),
		Date:     day,
		Sector:   c.sector,
		Notes:    c.notes,
	}
	if err := ledger.Validate(tx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Println(renderer.Transaction(tx))
	return appendTransaction(tx)
}

// --- Buy Command ---

type buyCmd struct{ tradeFlags }

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "buy shares to open or add to a position" }
func (*buyCmd) Usage() string {
	return `buy [-d <date>] -t <ticker> -q <quantity> -p <price> [-x <exchange>] [-sector <sector>] [-n <notes>]

  Records a purchase. The average cost of the position is updated.
`
}

func (c *buyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.ticker == "" || c.quantity <= 0 || c.price <= 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	return c.record(portfolio.Buy)
}

// --- Sell Command ---

type sellCmd struct{ tradeFlags }

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "sell shares to trim or close a position" }
func (*sellCmd) Usage() string {
	return `sell [-d <date>] -t <ticker> [-q <quantity>] -p <price> [-n <notes>]

  Records a sale at price -p. The realized P&L is measured against the
  position's average cost, which the sale leaves unchanged. Without -q the
  whole position is sold. Selling more than held is rejected.
`
}

func (c *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.ticker == "" || c.quantity < 0 || c.price <= 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	return c.record(portfolio.Sell)
}

// --- Tx Command ---

type txCmd struct {
	ticker string
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list the transactions in the ledger" }
func (*txCmd) Usage() string {
	return `tx [-t <ticker>]

  Lists transactions from the most recent, with the realized P&L of sells.
`
}

func (c *txCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ticker, "t", "", "Only list the transactions of this ticker")
}

func (c *txCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := decodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if c.ticker != "" {
		filtered := portfolio.NewLedger(ledger.Currency())
		filtered.Append(ledger.ForTicker(strings.ToUpper(c.ticker))...)
		ledger = filtered
	}
	realized, err := portfolio.Annotate(ledger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.TransactionsMarkdown(cfg.Name, ledger, realized))
	return subcommands.ExitSuccess
}
