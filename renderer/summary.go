package renderer

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	portfolio "github.com/etnz/modelfolio"
	md "github.com/nao1215/markdown"
)

// SummaryMarkdown renders the performance summary of portfolio 'name'.
func SummaryMarkdown(name, benchmark string, s portfolio.PerformanceSummary) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(title(name, "Portfolio Summary", s.AsOf))
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight},
		Header:    []string{md.Bold("Current Value"), md.Bold(s.CurrentValue.String()), ""},
		Rows: [][]string{
			{"Invested", s.TotalInvested.String(), ""},
			{"Unrealized P&L", s.UnrealizedPnL.SignedString(), signed(s.UnrealizedPnLPct)},
			{"Realized P&L", s.RealizedPnL.SignedString(), ""},
			{"Total Return", s.TotalReturn.SignedString(), signed(s.TotalReturnPct)},
		},
	})

	doc.H2("Performance")
	benchLabel := "Benchmark"
	if benchmark != "" {
		benchLabel = "Benchmark (" + benchmark + ")"
	}
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Metric", "Value"},
		Rows: [][]string{
			{"XIRR", signed(s.XIRR)},
			{"CAGR", signed(s.CAGR)},
			{"Max Drawdown", s.MaxDrawdown.String()},
			{benchLabel, signed(s.BenchmarkReturnPct)},
			{"Alpha", signed(s.Alpha)},
		},
	})

	var b strings.Builder
	b.WriteString(doc.String())
	ConditionalBlock(&b, func(w io.Writer) bool {
		if len(s.Fallback) == 0 {
			return false
		}
		fmt.Fprintf(w, "\nValued at average cost, no price available: %s\n", strings.Join(s.Fallback, ", "))
		return true
	})
	return b.String()
}
