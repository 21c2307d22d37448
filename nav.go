package portfolio

import (
	"github.com/etnz/modelfolio/date"
	"github.com/shopspring/decimal"
)

// NAVOptions parametrize BuildNAV.
type NAVOptions struct {
	Benchmark string      // benchmark symbol in the price table, optional
	Inception date.Date   // start of the series, the first transaction if zero
	AsOf      date.Date   // last day of the series, the latest close if zero
	Policy    PricePolicy // valuation of holdings without a close on a day
}

// NAVPoint is the portfolio snapshot of one day.
type NAVPoint struct {
	Date           date.Date       `json:"date"`
	TotalValue     Money           `json:"total_value"`
	TotalCost      Money           `json:"total_cost"`
	UnrealizedPnL  Money           `json:"unrealized_pnl"`
	RealizedPnL    Money           `json:"realized_pnl"` // cumulative
	Holdings       int             `json:"holdings"`
	BenchmarkValue Optional[Money] `json:"benchmark_value"`
	Fallback       []string        `json:"fallback,omitempty"` // tickers valued at average cost
}

// BenchmarkAnchor is the point the benchmark is normalized on.
type BenchmarkAnchor struct {
	Date  date.Date       `json:"date"`
	Close decimal.Decimal `json:"close"`
	Cost  Money           `json:"cost"`
}

// NAVSeries is the chronological list of NAV points of a portfolio.
type NAVSeries struct {
	Points        []NAVPoint                `json:"points"`
	Missing       []MissingPriceData        `json:"missing,omitempty"`
	BenchmarkBase Optional[BenchmarkAnchor] `json:"benchmark_base"`
}

// Values returns the total value of every point.
func (s NAVSeries) Values() []Money {
	values := make([]Money, len(s.Points))
	for i, p := range s.Points {
		values[i] = p.TotalValue
	}
	return values
}

// Last returns the last point of the series.
func (s NAVSeries) Last() (NAVPoint, bool) {
	if len(s.Points) == 0 {
		return NAVPoint{}, false
	}
	return s.Points[len(s.Points)-1], true
}

// Window returns the points within a trailing window ending on the last point.
//
// Benchmark values are kept as computed on the whole series.
func (s NAVSeries) Window(w date.Window) NAVSeries {
	last, ok := s.Last()
	if !ok {
		return s
	}
	r := w.Range(last.Date)
	out := NAVSeries{BenchmarkBase: s.BenchmarkBase}
	for _, p := range s.Points {
		if r.Contains(p.Date) {
			out.Points = append(out.Points, p)
		}
	}
	for _, m := range s.Missing {
		if r.Contains(m.On) {
			out.Missing = append(out.Missing, m)
		}
	}
	return out
}

// Periodic keeps the last point of every calendar period, the value at
// the end of the week, month, etc. Daily returns the series unchanged.
func (s NAVSeries) Periodic(p date.Period) NAVSeries {
	if p == date.Daily {
		return s
	}
	out := NAVSeries{Missing: s.Missing, BenchmarkBase: s.BenchmarkBase}
	for i, point := range s.Points {
		if i+1 < len(s.Points) && p.Range(point.Date).Contains(s.Points[i+1].Date) {
			continue
		}
		out.Points = append(out.Points, point)
	}
	return out
}

// BuildNAV computes the NAV series of a ledger.
//
// The ledger is replayed once in full before anything is computed: an invalid
// transaction aborts the whole series. Then every day where at least one
// open holding has a close yields a point. Holdings without a close on that
// day are valued according to opts.Policy and reported in Missing when the
// average cost had to be used.
//
// The benchmark is normalized on the first point where it has a close, so
// that its value equals the portfolio cost on that day. Points without a
// benchmark close have no benchmark value.
//
// The result depends only on the inputs.
func BuildNAV(l *Ledger, prices *PriceTable, opts NAVOptions) (NAVSeries, error) {
	var series NAVSeries
	if prices == nil {
		prices = NewPriceTable(l.Currency())
	}
	if _, err := Replay(l, date.Date{}); err != nil {
		return series, err
	}
	span, ok := l.Range()
	if !ok {
		return series, nil
	}
	start := span.From
	if !opts.Inception.IsZero() {
		start = opts.Inception
	}

	tickers := l.Tickers()
	histories := make([]*date.History[decimal.Decimal], 0, len(tickers))
	for _, t := range tickers {
		histories = append(histories, prices.History(t))
	}
	end := prices.Latest(tickers...)
	if !opts.AsOf.IsZero() && opts.AsOf.Before(end) {
		end = opts.AsOf
	}

	f := newFold(l)
	var anchor BenchmarkAnchor
	anchored := false
	for day := range date.Iterate(histories...) {
		if day.Before(start) {
			continue
		}
		if day.After(end) {
			break
		}
		if err := f.advance(day); err != nil {
			return NAVSeries{}, err
		}
		holdings := f.book.Holdings()
		if !anyClose(prices, holdings, day) {
			continue
		}

		point := NAVPoint{
			Date:        day,
			TotalValue:  M(0, l.Currency()),
			TotalCost:   M(0, l.Currency()),
			RealizedPnL: f.book.Realized(),
			Holdings:    len(holdings),
		}
		for _, h := range holdings {
			price := prices.Lookup(h.Ticker, day, h.AvgCost, opts.Policy)
			if price.IsFallback() {
				point.Fallback = append(point.Fallback, h.Ticker)
				series.Missing = append(series.Missing, MissingPriceData{Ticker: h.Ticker, On: day, AvgCost: h.AvgCost})
			}
			point.TotalValue = point.TotalValue.Add(price.Value.Mul(h.Quantity))
			point.TotalCost = point.TotalCost.Add(h.TotalCost)
		}
		point.UnrealizedPnL = point.TotalValue.Sub(point.TotalCost)

		if opts.Benchmark != "" {
			if bench, ok := prices.Close(opts.Benchmark, day); ok {
				if !anchored {
					anchor = BenchmarkAnchor{Date: day, Close: bench.Decimal(), Cost: point.TotalCost}
					anchored = true
					series.BenchmarkBase = Some(anchor)
					point.BenchmarkValue = Some(anchor.Cost)
				} else {
					point.BenchmarkValue = Some(anchor.Cost.Scale(bench.Decimal().Div(anchor.Close)))
				}
			}
		}
		series.Points = append(series.Points, point)
	}
	return series, nil
}

// anyClose reports whether one of the holdings has a close on 'day'.
func anyClose(prices *PriceTable, holdings []Holding, day date.Date) bool {
	for _, h := range holdings {
		if _, ok := prices.Close(h.Ticker, day); ok {
			return true
		}
	}
	return false
}
