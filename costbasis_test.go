package portfolio

import (
	"errors"
	"testing"
)

func TestPosition_WeightedAverage(t *testing.T) {
	l := newTestLedger(
		NewBuy(day(1, 2), "INFY", 100, 200),
		NewBuy(day(1, 3), "INFY", 50, 320),
	)
	book, err := Replay(l, day(1, 3))
	if err != nil {
		t.Fatalf("Replay() error = %v", err)
	}
	p := book.Position("INFY")

	if !p.Quantity.Equal(Q(150)) {
		t.Errorf("Quantity = %v, want 150", p.Quantity)
	}
	avg, ok := p.AvgCost.Get()
	if !ok {
		t.Fatalf("AvgCost is undefined, want 240")
	}
	if !avg.Equal(INR(240)) {
		t.Errorf("AvgCost = %v, want %v", avg, INR(240))
	}
	if !p.TotalCost.Equal(INR(36000)) {
		t.Errorf("TotalCost = %v, want %v", p.TotalCost, INR(36000))
	}
}

func TestPosition_BuyOrderDoesNotMatter(t *testing.T) {
	buys := [][3]float64{{100, 200}, {50, 320}, {30, 199.5}, {7, 1234.25}, {1, 10}}
	// sum(q*p) / sum(q)
	var qty, cost float64
	for _, b := range buys {
		qty += b[0]
		cost += b[0] * b[1]
	}
	want := M(newDecimal(cost).Div(newDecimal(qty)), "INR")

	orders := [][]int{
		{0, 1, 2, 3, 4},
		{4, 3, 2, 1, 0},
		{2, 0, 4, 1, 3},
		{1, 4, 0, 3, 2},
	}
	for _, order := range orders {
		var txs []Transaction
		for _, i := range order {
			txs = append(txs, NewBuy(day(1, 2), "TCS", int(buys[i][0]), buys[i][1]).normalize("INR"))
		}
		states, _, err := ReplayTicker(txs)
		if err != nil {
			t.Fatalf("ReplayTicker(%v) error = %v", order, err)
		}
		got, _ := states[len(states)-1].AvgCost.Get()
		if !got.Equal(want) {
			t.Errorf("ReplayTicker(%v) avg cost = %v, want %v", order, got.Decimal(), want.Decimal())
		}
	}
}

func TestPosition_SellKeepsAverageCost(t *testing.T) {
	txs := []Transaction{
		NewBuy(day(1, 2), "INFY", 3, 100),
		NewBuy(day(1, 3), "INFY", 7, 101.37),
		NewSell(day(1, 4), "INFY", 4, 90),
		NewSell(day(1, 5), "INFY", 1, 500),
	}
	states, realizations, err := ReplayTicker(txs)
	if err != nil {
		t.Fatalf("ReplayTicker() error = %v", err)
	}
	before, _ := states[1].AvgCost.Get()
	for _, i := range []int{2, 3} {
		after, ok := states[i].AvgCost.Get()
		if !ok {
			t.Fatalf("state #%d AvgCost is undefined", i)
		}
		// must be the exact same decimal, not only an equal value.
		if after.Decimal().String() != before.Decimal().String() || after.Decimal().Exponent() != before.Decimal().Exponent() {
			t.Errorf("state #%d AvgCost = %s, want %s", i, after.Decimal(), before.Decimal())
		}
	}
	if len(realizations) != 2 {
		t.Fatalf("got %d realizations, want 2", len(realizations))
	}
	if realizations[0].Index != 2 || realizations[1].Index != 3 {
		t.Errorf("realization indexes = %d, %d want 2, 3", realizations[0].Index, realizations[1].Index)
	}
}

func TestPosition_RealizedPnL(t *testing.T) {
	txs := []Transaction{
		NewBuy(day(1, 2), "INFY", 100, 200),
		NewBuy(day(1, 3), "INFY", 50, 320),
		NewSell(day(1, 4), "INFY", 50, 300),
	}
	states, realizations, err := ReplayTicker(txs)
	if err != nil {
		t.Fatalf("ReplayTicker() error = %v", err)
	}
	if len(realizations) != 1 {
		t.Fatalf("got %d realizations, want 1", len(realizations))
	}
	r := realizations[0]
	if !r.PnL.Equal(M(3000, "")) {
		t.Errorf("PnL = %v, want 3000", r.PnL)
	}
	if !r.PnLPct.Equal(25) {
		t.Errorf("PnLPct = %v, want 25%%", r.PnLPct)
	}
	if !r.CostBasis.Equal(M(240, "")) {
		t.Errorf("CostBasis = %v, want 240", r.CostBasis)
	}
	last := states[2]
	if !last.Quantity.Equal(Q(100)) {
		t.Errorf("remaining quantity = %v, want 100", last.Quantity)
	}
	if avg, _ := last.AvgCost.Get(); !avg.Equal(M(240, "")) {
		t.Errorf("remaining avg cost = %v, want 240", avg)
	}
	if !last.TotalCost.Equal(M(24000, "")) {
		t.Errorf("remaining total cost = %v, want 24000", last.TotalCost)
	}
}

func TestPosition_CloseAndReopen(t *testing.T) {
	txs := []Transaction{
		NewBuy(day(1, 2), "INFY", 10, 100),
		NewSell(day(1, 3), "INFY", 10, 150),
		NewBuy(day(1, 4), "INFY", 5, 80),
	}
	states, _, err := ReplayTicker(txs)
	if err != nil {
		t.Fatalf("ReplayTicker() error = %v", err)
	}
	if states[1].IsOpen() {
		t.Errorf("position is open after selling everything")
	}
	if states[1].AvgCost.IsDefined() {
		t.Errorf("AvgCost = %v after selling everything, want undefined", states[1].AvgCost)
	}
	if !states[1].TotalCost.IsZero() {
		t.Errorf("TotalCost = %v after selling everything, want 0", states[1].TotalCost)
	}
	if avg, _ := states[2].AvgCost.Get(); !avg.Equal(M(80, "")) {
		t.Errorf("AvgCost after reopening = %v, want 80", avg)
	}
}

func TestPosition_InvalidTransactions(t *testing.T) {
	tests := []struct {
		name string
		txs  []Transaction
		idx  int
	}{
		{
			name: "sell more than held",
			txs:  []Transaction{NewBuy(day(1, 2), "INFY", 10, 100), NewSell(day(1, 3), "INFY", 11, 100)},
			idx:  1,
		},
		{
			name: "sell without position",
			txs:  []Transaction{NewSell(day(1, 3), "INFY", 1, 100)},
			idx:  0,
		},
		{
			name: "sell after closing",
			txs: []Transaction{
				NewBuy(day(1, 2), "INFY", 10, 100),
				NewSell(day(1, 3), "INFY", 10, 100),
				NewSell(day(1, 4), "INFY", 1, 100),
			},
			idx: 2,
		},
		{
			name: "zero quantity",
			txs:  []Transaction{NewBuy(day(1, 2), "INFY", 0, 100)},
			idx:  0,
		},
		{
			name: "negative price",
			txs:  []Transaction{NewBuy(day(1, 2), "INFY", 10, 100), NewBuy(day(1, 3), "INFY", 1, -5)},
			idx:  1,
		},
		{
			name: "zero price",
			txs:  []Transaction{NewBuy(day(1, 2), "INFY", 10, 0)},
			idx:  0,
		},
		{
			name: "mixed tickers",
			txs:  []Transaction{NewBuy(day(1, 2), "INFY", 10, 100), NewBuy(day(1, 3), "TCS", 1, 100)},
			idx:  1,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := ReplayTicker(tc.txs)
			if !errors.Is(err, ErrInvalidTransaction) {
				t.Fatalf("ReplayTicker() error = %v, want ErrInvalidTransaction", err)
			}
			var ite *InvalidTransactionError
			if !errors.As(err, &ite) {
				t.Fatalf("ReplayTicker() error = %T, want *InvalidTransactionError", err)
			}
			if ite.Index != tc.idx {
				t.Errorf("error index = %d, want %d", ite.Index, tc.idx)
			}
		})
	}
}

func TestReplay_AbortsOnOversell(t *testing.T) {
	l := newTestLedger(
		NewBuy(day(1, 2), "INFY", 10, 100),
		NewBuy(day(1, 2), "TCS", 10, 100),
		NewSell(day(2, 1), "TCS", 20, 100),
	)
	// before the oversell the book is fine.
	if _, err := Replay(l, day(1, 31)); err != nil {
		t.Errorf("Replay(Jan 31) error = %v", err)
	}
	book, err := Replay(l, day(2, 1))
	if !errors.Is(err, ErrInvalidTransaction) {
		t.Fatalf("Replay(Feb 1) error = %v, want ErrInvalidTransaction", err)
	}
	if len(book.Holdings()) != 0 {
		t.Errorf("Replay returned a partial book with %d holdings", len(book.Holdings()))
	}
}

func TestReplay_CurrencyMismatch(t *testing.T) {
	usd := NewBuy(day(1, 3), "INFY", 1, 10)
	usd.Price = M(10, "USD")

	l := newTestLedger(NewBuy(day(1, 2), "INFY", 10, 100))
	l.Append(usd)
	if _, err := Replay(l, day(1, 3)); !errors.Is(err, ErrInvalidTransaction) {
		t.Errorf("Replay() error = %v, want ErrInvalidTransaction", err)
	}

	inr := NewBuy(day(1, 2), "INFY", 10, 100)
	inr.Price = INR(100)
	_, _, err := ReplayTicker([]Transaction{inr, usd})
	var ite *InvalidTransactionError
	if !errors.As(err, &ite) || ite.Index != 1 {
		t.Errorf("ReplayTicker() error = %v, want an invalid transaction at #1", err)
	}
}

func TestReplay_SameDayOrder(t *testing.T) {
	// selling before buying on the same day is an oversell: same day
	// transactions are replayed in ledger order.
	l := newTestLedger(
		NewSell(day(1, 2), "INFY", 5, 100),
		NewBuy(day(1, 2), "INFY", 10, 100),
	)
	if _, err := Replay(l, day(1, 2)); !errors.Is(err, ErrInvalidTransaction) {
		t.Errorf("Replay() error = %v, want ErrInvalidTransaction", err)
	}

	l = newTestLedger(
		NewBuy(day(1, 2), "INFY", 10, 100),
		NewSell(day(1, 2), "INFY", 5, 100),
	)
	if _, err := Replay(l, day(1, 2)); err != nil {
		t.Errorf("Replay() error = %v", err)
	}
}

func TestBook_Holdings(t *testing.T) {
	l := newTestLedger(
		NewBuy(day(1, 2), "TCS", 10, 3000).WithSector("IT"),
		NewBuy(day(1, 2), "HDFCBANK", 5, 1500).WithSector("Banking"),
		NewBuy(day(1, 3), "ITC", 100, 400),
		NewSell(day(1, 4), "ITC", 100, 420),
	)
	book, err := Replay(l, day(1, 4))
	if err != nil {
		t.Fatalf("Replay() error = %v", err)
	}
	holdings := book.Holdings()
	if len(holdings) != 2 {
		t.Fatalf("got %d holdings, want 2", len(holdings))
	}
	if holdings[0].Ticker != "HDFCBANK" || holdings[1].Ticker != "TCS" {
		t.Errorf("holdings = %s, %s want HDFCBANK, TCS", holdings[0].Ticker, holdings[1].Ticker)
	}
	if holdings[1].Sector != "IT" || holdings[1].Exchange != DefaultExchange {
		t.Errorf("TCS sector, exchange = %q, %q want IT, NSE", holdings[1].Sector, holdings[1].Exchange)
	}
	if !book.Realized().Equal(INR(2000)) {
		t.Errorf("Realized() = %v, want %v", book.Realized(), INR(2000))
	}
	if !book.TotalCost().Equal(INR(37500)) {
		t.Errorf("TotalCost() = %v, want %v", book.TotalCost(), INR(37500))
	}
}

func TestAnnotate(t *testing.T) {
	l := newTestLedger(
		NewBuy(day(1, 2), "INFY", 100, 200),
		NewBuy(day(1, 3), "INFY", 50, 320),
		NewBuy(day(1, 3), "TCS", 10, 3000),
		NewSell(day(1, 4), "INFY", 50, 300),
		NewSell(day(1, 5), "TCS", 5, 2900),
	)
	annotations, err := Annotate(l)
	if err != nil {
		t.Fatalf("Annotate() error = %v", err)
	}
	if len(annotations) != 2 {
		t.Fatalf("got %d annotations, want 2", len(annotations))
	}
	if r := annotations[3]; !r.PnL.Equal(INR(3000)) || r.Ticker != "INFY" {
		t.Errorf("annotation #3 = %s %v, want INFY 3000", r.Ticker, r.PnL)
	}
	if r := annotations[4]; !r.PnL.Equal(INR(-500)) || !r.PnLPct.Equal(Percent(-100.0/30)) {
		t.Errorf("annotation #4 = %v %v, want -500 -3.33%%", r.PnL, r.PnLPct)
	}
}
