// Package cmd implements the mpf command line to record trades in a model
// portfolio and report on its performance.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"go.uber.org/zap"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	cfg    = &Config{}
	logger = zap.NewNop().Sugar()
)

var raw = flag.Bool("raw", false, "print reports as raw markdown")

// Setup loads the configuration from the working directory and creates the
// logger. It must be called before the subcommands are executed.
func Setup() error {
	c, err := LoadConfig(".")
	if err != nil {
		return err
	}
	l, err := newLogger(c.LogLevel, c.Environment)
	if err != nil {
		return fmt.Errorf("cannot create logger: %w", err)
	}
	cfg, logger = c, l.Sugar()
	logger.Debugw("configuration loaded", "ledger", cfg.LedgerFile, "prices", cfg.PriceFile, "benchmark", cfg.Benchmark)
	return nil
}

// Sync flushes the logger.
func Sync() { _ = logger.Sync() }

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&buyCmd{}, "transactions")
	c.Register(&sellCmd{}, "transactions")
	c.Register(&txCmd{}, "transactions")

	c.Register(&holdingsCmd{}, "reports")
	c.Register(&allocationCmd{}, "reports")
	c.Register(&navCmd{}, "reports")
	c.Register(&summaryCmd{}, "reports")
	c.Register(&exportCmd{}, "reports")

	c.Register(&fetchCmd{}, "prices")

	c.Register(&topicCmd{}, "help")
}

// printMarkdown renders markdown in the terminal, or prints it as is with -raw.
func printMarkdown(md string) {
	if *raw {
		fmt.Print(md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(140))
	if err == nil {
		var out string
		if out, err = r.Render(md); err == nil {
			fmt.Print(out)
			return
		}
	}
	logger.Debugw("cannot render markdown", "error", err)
	fmt.Fprint(os.Stdout, md)
}
