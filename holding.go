package portfolio

import (
	"cmp"
	"slices"

	"github.com/etnz/modelfolio/date"
)

// Holding is the aggregate position in one ticker, derived by replaying the
// ledger. It is never stored.
type Holding struct {
	Ticker    string
	Exchange  string
	Sector    string
	Quantity  Quantity
	AvgCost   Money
	TotalCost Money // quantity × average cost
}

// HoldingLine is a holding valued on a day.
type HoldingLine struct {
	Holding
	Price            Price
	MarketValue      Money
	UnrealizedPnL    Money
	UnrealizedPnLPct Optional[Percent] // undefined when valued at cost
	Weight           Percent           // share of the total cost
}

// HoldingReport lists every open holding valued on a day, largest cost first.
type HoldingReport struct {
	AsOf             date.Date
	Lines            []HoldingLine
	TotalCost        Money
	MarketValue      Money
	UnrealizedPnL    Money
	UnrealizedPnLPct Optional[Percent]
}

// valuate values holdings at the latest close on or before 'on', whatever the
// NAV price policy, and at average cost when there is none.
func valuate(holdings []Holding, prices *PriceTable, on date.Date, currency string) HoldingReport {
	report := HoldingReport{
		AsOf:        on,
		TotalCost:   M(0, currency),
		MarketValue: M(0, currency),
	}
	for _, h := range holdings {
		price := prices.Lookup(h.Ticker, on, h.AvgCost, CarryForward)
		line := HoldingLine{
			Holding:     h,
			Price:       price,
			MarketValue: price.Value.Mul(h.Quantity),
		}
		line.UnrealizedPnL = line.MarketValue.Sub(h.TotalCost)
		if !price.IsFallback() {
			line.UnrealizedPnLPct = ReturnPct(line.UnrealizedPnL, h.TotalCost)
		}
		report.Lines = append(report.Lines, line)
		report.TotalCost = report.TotalCost.Add(h.TotalCost)
		report.MarketValue = report.MarketValue.Add(line.MarketValue)
	}
	report.UnrealizedPnL = report.MarketValue.Sub(report.TotalCost)
	report.UnrealizedPnLPct = ReturnPct(report.UnrealizedPnL, report.TotalCost)

	for i := range report.Lines {
		if report.TotalCost.IsPositive() {
			report.Lines[i].Weight = percentOf(report.Lines[i].TotalCost.Decimal(), report.TotalCost.Decimal())
		}
	}
	slices.SortStableFunc(report.Lines, func(a, b HoldingLine) int {
		return b.TotalCost.Decimal().Cmp(a.TotalCost.Decimal())
	})
	return report
}

// AllocationSlice is the share of the portfolio market value in one stock or sector.
type AllocationSlice struct {
	Label string
	Value Money
	Pct   Percent
}

// Allocation breaks the market value down by stock and by sector.
type Allocation struct {
	AsOf     date.Date
	Total    Money
	ByStock  []AllocationSlice
	BySector []AllocationSlice
}

// OtherSector labels holdings without a sector.
const OtherSector = "Other"

func allocate(report HoldingReport) Allocation {
	a := Allocation{AsOf: report.AsOf, Total: report.MarketValue}
	sectors := make(map[string]Money)
	for _, l := range report.Lines {
		a.ByStock = append(a.ByStock, AllocationSlice{Label: l.Ticker, Value: l.MarketValue})
		sector := l.Sector
		if sector == "" {
			sector = OtherSector
		}
		if v, ok := sectors[sector]; ok {
			sectors[sector] = v.Add(l.MarketValue)
		} else {
			sectors[sector] = l.MarketValue
		}
	}
	for s, v := range sectors {
		a.BySector = append(a.BySector, AllocationSlice{Label: s, Value: v})
	}
	if a.Total.IsPositive() {
		for _, group := range [][]AllocationSlice{a.ByStock, a.BySector} {
			for i := range group {
				group[i].Pct = percentOf(group[i].Value.Decimal(), a.Total.Decimal())
			}
		}
	}
	byValue := func(x, y AllocationSlice) int {
		if c := y.Value.Decimal().Cmp(x.Value.Decimal()); c != 0 {
			return c
		}
		return cmp.Compare(x.Label, y.Label)
	}
	slices.SortFunc(a.ByStock, byValue)
	slices.SortFunc(a.BySector, byValue)
	return a
}
