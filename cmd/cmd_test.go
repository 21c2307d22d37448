package cmd

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	portfolio "github.com/etnz/modelfolio"
	"github.com/etnz/modelfolio/date"
	"github.com/google/go-cmp/cmp"
	"github.com/google/subcommands"
	"github.com/google/uuid"
)

// setupCmdTest points the configuration to an empty workspace.
func setupCmdTest(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	saved, savedRaw := cfg, *raw
	cfg = &Config{
		LedgerFile:  filepath.Join(dir, "transactions.jsonl"),
		PriceFile:   filepath.Join(dir, "prices.jsonl"),
		Benchmark:   "NIFTY",
		Currency:    "INR",
		PricePolicy: "fallback",
	}
	*raw = true
	t.Cleanup(func() { cfg, *raw = saved, savedRaw })
}

// run executes a subcommand with its arguments.
func run(t *testing.T, c subcommands.Command, args ...string) subcommands.ExitStatus {
	t.Helper()
	f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	c.SetFlags(f)
	if err := f.Parse(args); err != nil {
		t.Fatalf("%s %v: %v", c.Name(), args, err)
	}
	return c.Execute(context.Background(), f)
}

func TestSellUsage(t *testing.T) {
	usage := (&sellCmd{}).Usage()
	if !strings.Contains(usage, "at price -p") || strings.Contains(usage, "sale at the position's average cost") {
		t.Errorf("sell usage does not say the sale is recorded at -p:\n%s", usage)
	}
}

func TestBuySell(t *testing.T) {
	setupCmdTest(t)

	steps := []struct {
		cmd  subcommands.Command
		args []string
		want subcommands.ExitStatus
	}{
		{&buyCmd{}, []string{"-d", "2024-01-01", "-t", "infy", "-q", "100", "-p", "200", "-sector", "IT"}, subcommands.ExitSuccess},
		{&buyCmd{}, []string{"-d", "2024-02-01", "-t", "INFY", "-q", "50", "-p", "320"}, subcommands.ExitSuccess},
		{&buyCmd{}, []string{"-t", "INFY", "-p", "320"}, subcommands.ExitUsageError},
		{&sellCmd{}, []string{"-d", "2024-02-15", "-t", "INFY", "-q", "200", "-p", "300"}, subcommands.ExitFailure},
		{&sellCmd{}, []string{"-d", "2024-03-01", "-t", "INFY", "-p", "300", "-n", "exit"}, subcommands.ExitSuccess},
		{&sellCmd{}, []string{"-d", "2024-03-02", "-t", "INFY", "-p", "300"}, subcommands.ExitFailure},
	}
	for i, s := range steps {
		if got := run(t, s.cmd, s.args...); got != s.want {
			t.Fatalf("#%d %s %v = %v, want %v", i, s.cmd.Name(), s.args, got, s.want)
		}
	}

	ledger, err := decodeLedger()
	if err != nil {
		t.Fatalf("decodeLedger() error = %v", err)
	}
	if ledger.Len() != 3 {
		t.Fatalf("ledger has %d transactions, want 3", ledger.Len())
	}
	ids := make(map[string]bool)
	for _, tx := range ledger.Transactions() {
		if _, err := uuid.Parse(tx.ID); err != nil {
			t.Errorf("transaction id %q is not a uuid: %v", tx.ID, err)
		}
		ids[tx.ID] = true
	}
	if len(ids) != 3 {
		t.Errorf("got %d distinct ids, want 3", len(ids))
	}
	sell := ledger.At(2)
	if sell.Type != portfolio.Sell || !sell.Quantity.Equal(portfolio.Q(150)) || sell.Notes != "exit" {
		t.Errorf("sell = %+v, want the whole position of 150", sell)
	}
	if ledger.At(0).Ticker != "INFY" || ledger.At(0).Sector != "IT" {
		t.Errorf("buy = %+v", ledger.At(0))
	}
}

func TestReports(t *testing.T) {
	setupCmdTest(t)
	ledger := `{"id":"1","type":"BUY","date":"2024-01-01","ticker":"INFY","quantity":100,"price":200}
{"id":"2","type":"SELL","date":"2024-02-01","ticker":"INFY","quantity":40,"price":250}
`
	prices := `{"symbol":"INFY","date":"2024-01-01","close":200}
{"symbol":"INFY","date":"2024-02-01","close":250}
{"symbol":"NIFTY","date":"2024-01-01","close":20000}
{"symbol":"NIFTY","date":"2024-02-01","close":21000}
`
	if err := os.WriteFile(cfg.LedgerFile, []byte(ledger), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(cfg.PriceFile, []byte(prices), 0o644); err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(t.TempDir(), "tx.csv")
	tests := []struct {
		cmd  subcommands.Command
		args []string
		want subcommands.ExitStatus
	}{
		{&txCmd{}, nil, subcommands.ExitSuccess},
		{&txCmd{}, []string{"-t", "infy"}, subcommands.ExitSuccess},
		{&holdingsCmd{}, []string{"-d", "2024-02-01"}, subcommands.ExitSuccess},
		{&allocationCmd{}, []string{"-d", "2024-02-01"}, subcommands.ExitSuccess},
		{&navCmd{}, []string{"-w", "1m"}, subcommands.ExitSuccess},
		{&navCmd{}, []string{"-json"}, subcommands.ExitSuccess},
		{&navCmd{}, []string{"-w", "2w"}, subcommands.ExitUsageError},
		{&navCmd{}, []string{"-p", "monthly"}, subcommands.ExitSuccess},
		{&navCmd{}, []string{"-p", "fortnight"}, subcommands.ExitUsageError},
		{&summaryCmd{}, []string{"-d", "2024-02-01", "-json"}, subcommands.ExitSuccess},
		{&summaryCmd{}, []string{"-d", "2024-02-01"}, subcommands.ExitSuccess},
		{&exportCmd{}, []string{"-o", out, "transactions"}, subcommands.ExitSuccess},
		{&exportCmd{}, []string{"-d", "2024-02-01", "holdings"}, subcommands.ExitSuccess},
		{&exportCmd{}, []string{"lots"}, subcommands.ExitUsageError},
		{&topicCmd{}, []string{"nav"}, subcommands.ExitSuccess},
		{&topicCmd{}, []string{"nope"}, subcommands.ExitFailure},
	}
	for _, tc := range tests {
		if got := run(t, tc.cmd, tc.args...); got != tc.want {
			t.Errorf("%s %v = %v, want %v", tc.cmd.Name(), tc.args, got, tc.want)
		}
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("export did not write %s: %v", out, err)
	}
	defer f.Close()
	var lines []string
	for scanner := bufio.NewScanner(f); scanner.Scan(); {
		lines = append(lines, scanner.Text())
	}
	want := []string{
		"Date,Type,Ticker,Quantity,Price,Total Value,Realized P&L,Notes",
		"2024-02-01,SELL,INFY,40,250.00,10000.00,2000.00,",
		"2024-01-01,BUY,INFY,100,200.00,20000.00,,",
	}
	if diff := cmp.Diff(want, lines); diff != "" {
		t.Errorf("exported transactions mismatch (-want +got):\n%s", diff)
	}
}

func TestFetch(t *testing.T) {
	setupCmdTest(t)
	ledger := `{"id":"1","type":"BUY","date":"2024-01-02","ticker":"INFY","exchange":"NSE","quantity":10,"price":1500}
{"id":"2","type":"BUY","date":"2024-01-02","ticker":"TCS","exchange":"BSE","quantity":5,"price":3700}
`
	if err := os.WriteFile(cfg.LedgerFile, []byte(ledger), 0o644); err != nil {
		t.Fatal(err)
	}

	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		ts := time.Date(2024, 1, 2, 3, 45, 0, 0, time.UTC).Unix()
		fmt.Fprintf(w, `{"chart":{"result":[{"timestamp":[%d],"indicators":{"quote":[{"close":[1000.5]}]}}],"error":null}}`, ts)
	}))
	defer srv.Close()
	cfg.Feed.BaseURL = srv.URL

	if got := run(t, &fetchCmd{}, "-d", "2024-01-03"); got != subcommands.ExitSuccess {
		t.Fatalf("fetch = %v, want success", got)
	}
	if len(paths) != 3 {
		t.Errorf("fetched %q, want 3 symbols", paths)
	}

	prices, err := decodePrices()
	if err != nil {
		t.Fatalf("decodePrices() error = %v", err)
	}
	if diff := cmp.Diff([]string{"INFY", "NIFTY", "TCS"}, prices.Symbols()); diff != "" {
		t.Errorf("symbols mismatch (-want +got):\n%s", diff)
	}
	if v, ok := prices.Close("TCS", date.New(2024, 1, 2)); !ok || !v.Equal(portfolio.M(1000.5, "INR")) {
		t.Errorf("TCS close = %v, %v", v, ok)
	}
}

func TestFeedSymbols(t *testing.T) {
	ledger := portfolio.NewLedger("INR")
	ledger.Append(
		portfolio.Transaction{Type: portfolio.Buy, Ticker: "TCS", Exchange: "BSE", Quantity: portfolio.Q(1), Price: portfolio.M(1, ""), Date: date.New(2024, 1, 1)},
		portfolio.NewBuy(date.New(2024, 1, 1), "INFY", 1, 1),
	)
	got := feedSymbols(ledger, "NIFTY")
	want := map[string]string{"INFY": "INFY.NS", "TCS": "TCS.BO", "NIFTY": "^NSEI"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("feedSymbols() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseDate(t *testing.T) {
	d, err := parseDate("")
	if err != nil || d != date.Today() {
		t.Errorf("parseDate(\"\") = %v, %v want today", d, err)
	}
	if _, err := parseDate("not a date"); err == nil {
		t.Errorf("parseDate() expected an error")
	}
}
