package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	portfolio "github.com/etnz/modelfolio"
	"github.com/etnz/modelfolio/date"
	"github.com/etnz/modelfolio/renderer"
	"github.com/google/subcommands"
)

// printJSON writes v as indented JSON on stdout.
func printJSON(v any) subcommands.ExitStatus {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding json: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// --- Holdings Command ---

type holdingsCmd struct {
	date string
}

func (*holdingsCmd) Name() string     { return "holdings" }
func (*holdingsCmd) Synopsis() string { return "display the open positions valued on a date" }
func (*holdingsCmd) Usage() string {
	return `holdings [-d <date>]

  Displays every open position with its average cost, price, market value,
  unrealized P&L and weight. Positions without a price are valued at cost.
`
}

func (c *holdingsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Date of the report, today if missing. See the user manual for supported date formats.")
}

func (c *holdingsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := parseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	as, err := openAccountingSystem()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating accounting system: %v\n", err)
		return subcommands.ExitFailure
	}
	report, err := as.Holdings(on)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating holding report: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.HoldingsMarkdown(cfg.Name, report))
	return subcommands.ExitSuccess
}

// --- Allocation Command ---

type allocationCmd struct {
	date string
}

func (*allocationCmd) Name() string     { return "allocation" }
func (*allocationCmd) Synopsis() string { return "display the market value by stock and by sector" }
func (*allocationCmd) Usage() string {
	return `allocation [-d <date>]

  Displays the share of each stock and each sector in the market value.
`
}

func (c *allocationCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Date of the report, today if missing.")
}

func (c *allocationCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := parseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	as, err := openAccountingSystem()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating accounting system: %v\n", err)
		return subcommands.ExitFailure
	}
	a, err := as.Allocation(on)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating allocation: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.AllocationMarkdown(cfg.Name, a))
	return subcommands.ExitSuccess
}

// --- NAV Command ---

type navCmd struct {
	date   string
	window string
	period string
	json   bool
}

func (*navCmd) Name() string     { return "nav" }
func (*navCmd) Synopsis() string { return "display the daily net asset value history" }
func (*navCmd) Usage() string {
	return `nav [-d <date>] [-w 1m|3m|6m|1y|ytd|all] [-p daily|weekly|monthly|quarterly|yearly] [-json]

  Displays the portfolio value, cost and P&L on every trading day, and the
  benchmark normalized to the invested amount. With -p, only the last trading
  day of each period is shown.
`
}

func (c *navCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Last day of the history, the latest close if missing.")
	f.StringVar(&c.window, "w", "all", "Trailing window: 1m, 3m, 6m, 1y, ytd or all")
	f.StringVar(&c.period, "p", "daily", "Period: daily, weekly, monthly, quarterly or yearly")
	f.BoolVar(&c.json, "json", false, "print the series as JSON")
}

func (c *navCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var on date.Date
	if c.date != "" {
		d, err := date.Parse(c.date)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
			return subcommands.ExitUsageError
		}
		on = d
	}
	w, err := date.ParseWindow(c.window)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	period, err := date.ParsePeriod(c.period)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	as, err := openAccountingSystem()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating accounting system: %v\n", err)
		return subcommands.ExitFailure
	}
	series, err := as.NAV(on)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing NAV: %v\n", err)
		return subcommands.ExitFailure
	}
	logMissing(series.Missing)
	series = series.Window(w).Periodic(period)

	if c.json {
		return printJSON(series)
	}
	printMarkdown(renderer.NAVMarkdown(cfg.Name, as.Portfolio.Benchmark, period, series))
	return subcommands.ExitSuccess
}

// logMissing reports the days valued at average cost.
func logMissing(missing []portfolio.MissingPriceData) {
	perTicker := make(map[string]int)
	for _, m := range missing {
		logger.Debugw("valued at average cost", "ticker", m.Ticker, "date", m.On.String(), "avg_cost", m.AvgCost.String())
		perTicker[m.Ticker]++
	}
	for ticker, n := range perTicker {
		logger.Warnw("missing prices, valued at average cost", "ticker", ticker, "days", n)
	}
}

// --- Summary Command ---

type summaryCmd struct {
	date string
	json bool
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display the portfolio performance summary" }
func (*summaryCmd) Usage() string {
	return `summary [-d <date>] [-json]

  Displays the invested amount, current value, P&L, XIRR, CAGR, max drawdown,
  and the return relative to the benchmark.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Date of the summary, today if missing.")
	f.BoolVar(&c.json, "json", false, "print the summary as JSON")
}

func (c *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := parseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	as, err := openAccountingSystem()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating accounting system: %v\n", err)
		return subcommands.ExitFailure
	}
	s, err := as.Summary(on)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing summary: %v\n", err)
		return subcommands.ExitFailure
	}
	for _, ticker := range s.Fallback {
		logger.Warnw("no price, valued at average cost", "ticker", ticker, "date", on.String())
	}
	if c.json {
		return printJSON(s)
	}
	printMarkdown(renderer.SummaryMarkdown(cfg.Name, as.Portfolio.Benchmark, s))
	return subcommands.ExitSuccess
}

// --- Export Command ---

type exportCmd struct {
	date   string
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export holdings or transactions as CSV" }
func (*exportCmd) Usage() string {
	return `export [-d <date>] [-o <file>] holdings|transactions

  Writes a CSV file of the holdings on a date, or of every transaction.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Date of the holdings, today if missing.")
	f.StringVar(&c.output, "o", "", "Output file, stdout if missing.")
}

func (c *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	on, err := parseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	ledger, err := decodeLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	w := os.Stdout
	if c.output != "" {
		out, err := os.Create(c.output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating %q: %v\n", c.output, err)
			return subcommands.ExitFailure
		}
		defer out.Close()
		w = out
	}

	switch f.Arg(0) {
	case "holdings":
		book, err := portfolio.Replay(ledger, on)
		if err == nil {
			err = portfolio.ExportHoldingsCSV(w, book.Holdings())
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error exporting holdings: %v\n", err)
			return subcommands.ExitFailure
		}
	case "transactions":
		if err := portfolio.ExportTransactionsCSV(w, ledger); err != nil {
			fmt.Fprintf(os.Stderr, "Error exporting transactions: %v\n", err)
			return subcommands.ExitFailure
		}
	default:
		f.Usage()
		return subcommands.ExitUsageError
	}
	return subcommands.ExitSuccess
}
