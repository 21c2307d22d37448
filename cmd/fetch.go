package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	portfolio "github.com/etnz/modelfolio"
	"github.com/etnz/modelfolio/date"
	"github.com/etnz/modelfolio/yahoo"
	"github.com/google/subcommands"
)

type fetchCmd struct {
	start   string
	end     string
	noCache bool
}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "download daily closes of the ledger tickers and the benchmark" }
func (*fetchCmd) Usage() string {
	return `fetch [-s <start>] [-d <end>] [-no-cache]

  Downloads the daily closes of every ticker in the ledger and of the
  benchmark from Yahoo Finance, and merges them into the price file.
`
}

func (c *fetchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.start, "s", "", "First day to download, the inception or first transaction if missing.")
	f.StringVar(&c.end, "d", "", "Last day to download, today if missing.")
	f.BoolVar(&c.noCache, "no-cache", false, "do not use the daily http cache")
}

func (c *fetchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := decodeLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	prices, err := decodePrices()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading prices: %v\n", err)
		return subcommands.ExitFailure
	}

	to, err := parseDate(c.end)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing end date: %v\n", err)
		return subcommands.ExitUsageError
	}
	from, err := c.from(ledger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing start date: %v\n", err)
		return subcommands.ExitUsageError
	}
	if from.IsZero() {
		fmt.Fprintln(os.Stderr, "Nothing to fetch: the ledger is empty, use -s to set a start date.")
		return subcommands.ExitFailure
	}

	opts := []yahoo.Option{yahoo.WithBaseURL(cfg.Feed.BaseURL), yahoo.WithLogger(logger.Desugar())}
	if !c.noCache && cfg.Feed.CacheDir != "" {
		opts = append(opts, yahoo.WithDailyCache(cfg.Feed.CacheDir))
	}
	client := yahoo.New(opts...)

	added, failed := 0, 0
	for key, symbol := range feedSymbols(ledger, cfg.Benchmark) {
		n, err := client.Fill(ctx, prices, key, symbol, from, to)
		if err != nil {
			logger.Errorw("cannot fetch prices", "ticker", key, "symbol", symbol, "error", err)
			failed++
			continue
		}
		logger.Infow("prices fetched", "ticker", key, "symbol", symbol, "closes", n)
		added += n
	}

	if err := encodePrices(prices); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing prices: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Fetched %d closes from %s to %s into %s\n", added, from, to, cfg.PriceFile)
	if failed > 0 {
		fmt.Fprintf(os.Stderr, "%d ticker(s) could not be fetched\n", failed)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// from returns the first day to download.
func (c *fetchCmd) from(ledger *portfolio.Ledger) (date.Date, error) {
	if c.start != "" {
		return date.Parse(c.start)
	}
	if inception, err := cfg.inception(); err == nil && !inception.IsZero() {
		return inception, nil
	}
	r, ok := ledger.Range()
	if !ok {
		return date.Date{}, nil
	}
	return r.From, nil
}

// feedSymbols maps every ledger ticker and the benchmark to its Yahoo symbol.
func feedSymbols(ledger *portfolio.Ledger, benchmark string) map[string]string {
	symbols := make(map[string]string)
	for _, ticker := range ledger.Tickers() {
		exchange := ""
		txs := ledger.ForTicker(ticker)
		if len(txs) > 0 {
			exchange = txs[len(txs)-1].Exchange
		}
		symbols[ticker] = yahoo.Symbol(ticker, exchange)
	}
	if benchmark != "" {
		symbols[benchmark] = yahoo.Symbol(benchmark, "")
	}
	return symbols
}
