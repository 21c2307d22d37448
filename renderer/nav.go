package renderer

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	portfolio "github.com/etnz/modelfolio"
	"github.com/etnz/modelfolio/date"
	md "github.com/nao1215/markdown"
)

// NAVMarkdown renders a NAV series, one row per point labelled by the
// 'period' containing it. The series is expected to be grouped already, see
// NAVSeries.Periodic.
//
// The benchmark column is only present when 'benchmark' is set.
func NAVMarkdown(name, benchmark string, period date.Period, s portfolio.NAVSeries) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	last, ok := s.Last()
	if !ok {
		doc.H1("Net Asset Value")
		doc.PlainText("No valuation available.")
		return doc.String()
	}
	report, first := "Net Asset Value", "Date"
	if period != date.Daily {
		p := period.String()
		report = strings.ToUpper(p[:1]) + p[1:] + " " + report
		first = "Period"
	}
	doc.H1(title(name, report, last.Date))

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{first, "Value", "Cost", "Unrealized", "Realized", "Holdings"},
	}
	if benchmark != "" {
		table.Header = append(table.Header, benchmark)
	}
	table.Alignment = table.Alignment[:len(table.Header)]
	for _, p := range s.Points {
		value := p.TotalValue.String()
		if len(p.Fallback) > 0 {
			value += "*"
		}
		row := []string{
			period.Range(p.Date).Label(),
			value,
			p.TotalCost.String(),
			p.UnrealizedPnL.SignedString(),
			p.RealizedPnL.SignedString(),
			fmt.Sprint(p.Holdings),
		}
		if benchmark != "" {
			row = append(row, p.BenchmarkValue.String())
		}
		table.Rows = append(table.Rows, row)
	}
	doc.Table(table)

	var b strings.Builder
	b.WriteString(doc.String())
	ConditionalBlock(&b, func(w io.Writer) bool {
		tickers := missingTickers(s.Missing)
		if len(tickers) == 0 {
			return false
		}
		fmt.Fprintf(w, "\n\\* valued at average cost on %d day(s), no price for: %s\n", len(s.Missing), strings.Join(tickers, ", "))
		return true
	})
	return b.String()
}

// missingTickers returns the distinct tickers in order of first appearance.
func missingTickers(missing []portfolio.MissingPriceData) []string {
	seen := make(map[string]bool)
	var tickers []string
	for _, m := range missing {
		if !seen[m.Ticker] {
			seen[m.Ticker] = true
			tickers = append(tickers, m.Ticker)
		}
	}
	return tickers
}
