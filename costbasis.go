package portfolio

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/etnz/modelfolio/date"
)

// Position is the running state of one ticker while the ledger is replayed.
//
// It is a value: Apply returns the next state and never modifies the receiver.
type Position struct {
	Ticker    string
	Exchange  string
	Sector    string
	Quantity  Quantity
	TotalCost Money
	AvgCost   Optional[Money] // undefined while nothing is held
}

// IsOpen reports whether some shares are held.
func (p Position) IsOpen() bool { return p.Quantity.IsPositive() }

// Realization is the outcome of a SELL, recorded on the sell transaction.
type Realization struct {
	Index     int // index of the sell in the replayed transactions
	Date      date.Date
	Ticker    string
	Quantity  Quantity
	Price     Money
	CostBasis Money // average cost at the time of the sell
	PnL       Money
	PnLPct    Percent
}

// Apply returns the position after 'tx'.
//
// A BUY recomputes the weighted average cost. A SELL reduces the quantity and
// the total cost at the current average cost, leaving the average untouched,
// and returns the realized profit. Selling more than held is an error.
func (p Position) Apply(tx Transaction) (Position, *Realization, error) {
	if err := tx.Validate(); err != nil {
		return p, nil, err
	}
	if p.Ticker != "" && p.Ticker != tx.Ticker {
		return p, nil, invalid(tx, "cannot apply to position in %s", p.Ticker)
	}
	if c, txc := p.TotalCost.Currency(), tx.Price.Currency(); c != "" && txc != "" && c != txc {
		return p, nil, invalid(tx, "price in %s but position in %s", txc, c)
	}
	p.Ticker = tx.Ticker
	p.Exchange = tx.Exchange
	if tx.Sector != "" {
		p.Sector = tx.Sector
	}

	switch tx.Type {
	case Buy:
		p.TotalCost = p.TotalCost.Add(tx.Amount())
		p.Quantity = p.Quantity.Add(tx.Quantity)
		p.AvgCost = Some(p.TotalCost.Div(p.Quantity))
		return p, nil, nil

	case Sell:
		if tx.Quantity.GreaterThan(p.Quantity) {
			return p, nil, invalid(tx, "selling %s shares but only %s held", tx.Quantity, p.Quantity)
		}
		avg, _ := p.AvgCost.Get()
		r := &Realization{
			Date:      tx.Date,
			Ticker:    tx.Ticker,
			Quantity:  tx.Quantity,
			Price:     tx.Price,
			CostBasis: avg,
			PnL:       tx.Price.Sub(avg).Mul(tx.Quantity),
			PnLPct:    percentOf(tx.Price.Sub(avg).Decimal(), avg.Decimal()),
		}
		p.Quantity = p.Quantity.Sub(tx.Quantity)
		p.TotalCost = p.TotalCost.Sub(avg.Mul(tx.Quantity))
		if p.Quantity.IsZero() {
			// nothing left, the next buy starts a fresh average.
			p.TotalCost = M(0, p.TotalCost.Currency())
			p.AvgCost = None[Money]()
		}
		return p, r, nil
	}
	return p, nil, invalid(tx, "unknown type %q", tx.Type)
}

// ReplayTicker replays the transactions of a single ticker in the given order
// and returns the position after each one, and every realization.
//
// The first invalid transaction aborts the replay.
func ReplayTicker(txs []Transaction) ([]Position, []Realization, error) {
	states := make([]Position, 0, len(txs))
	var realizations []Realization
	var p Position
	for i, tx := range txs {
		next, r, err := p.Apply(tx)
		if err != nil {
			return nil, nil, indexed(err, i)
		}
		if r != nil {
			r.Index = i
			realizations = append(realizations, *r)
		}
		p = next
		states = append(states, p)
	}
	return states, realizations, nil
}

// indexed sets the position of the failing transaction on invalid transaction errors.
func indexed(err error, i int) error {
	var e *InvalidTransactionError
	if errors.As(err, &e) {
		e.Index = i
		return e
	}
	return fmt.Errorf("transaction #%d: %w", i, err)
}

// Book is the state of every position after replaying a ledger up to a date.
type Book struct {
	currency     string
	positions    map[string]Position
	realized     Money
	realizations []Realization
}

func newBook(currency string) Book {
	return Book{
		currency:  currency,
		positions: make(map[string]Position),
		realized:  M(0, currency),
	}
}

// apply folds one ledger transaction into the book.
func (b *Book) apply(i int, tx Transaction) error {
	p, ok := b.positions[tx.Ticker]
	if !ok {
		p = Position{TotalCost: M(0, b.currency)}
	}
	next, r, err := p.Apply(tx)
	if err != nil {
		return indexed(err, i)
	}
	if r != nil {
		r.Index = i
		b.realized = b.realized.Add(r.PnL)
		b.realizations = append(b.realizations, *r)
	}
	b.positions[tx.Ticker] = next
	return nil
}

// Position returns the position of a ticker, the zero Position if it was never traded.
func (b Book) Position(ticker string) Position { return b.positions[ticker] }

// Realized returns the cumulative realized profit of every sell so far.
func (b Book) Realized() Money { return b.realized }

// Realizations returns every sell outcome in ledger order.
func (b Book) Realizations() []Realization { return slices.Clone(b.realizations) }

// Holdings returns the open positions, sorted by ticker.
func (b Book) Holdings() []Holding {
	holdings := make([]Holding, 0, len(b.positions))
	for _, p := range b.positions {
		if !p.IsOpen() {
			continue
		}
		avg, _ := p.AvgCost.Get()
		holdings = append(holdings, Holding{
			Ticker:    p.Ticker,
			Exchange:  p.Exchange,
			Sector:    p.Sector,
			Quantity:  p.Quantity,
			AvgCost:   avg,
			TotalCost: p.TotalCost,
		})
	}
	slices.SortFunc(holdings, func(a, b Holding) int { return cmp.Compare(a.Ticker, b.Ticker) })
	return holdings
}

// TotalCost returns the cost basis of every open position.
func (b Book) TotalCost() Money {
	total := M(0, b.currency)
	for _, p := range b.positions {
		total = total.Add(p.TotalCost)
	}
	return total
}

// fold replays a ledger incrementally: each call to advance applies the
// transactions up to a later date.
type fold struct {
	ledger *Ledger
	next   int // index of the next transaction to apply
	book   Book
}

func newFold(l *Ledger) *fold {
	return &fold{ledger: l, book: newBook(l.Currency())}
}

// advance applies every transaction dated on or before 'on'.
//
// Dates must not decrease between calls.
func (f *fold) advance(on date.Date) error {
	for f.next < f.ledger.Len() {
		tx := f.ledger.At(f.next)
		if !on.IsZero() && tx.Date.After(on) {
			return nil
		}
		if err := f.book.apply(f.next, tx); err != nil {
			return err
		}
		f.next++
	}
	return nil
}

// Replay replays the ledger up to and including 'on' (the whole ledger if
// 'on' is zero).
//
// Any invalid transaction aborts the replay: no partial book is returned.
func Replay(l *Ledger, on date.Date) (Book, error) {
	f := newFold(l)
	if err := f.advance(on); err != nil {
		return Book{}, err
	}
	return f.book, nil
}

// Annotate replays the whole ledger and returns the realization of every sell,
// keyed by the index of the sell in the ledger.
func Annotate(l *Ledger) (map[int]Realization, error) {
	book, err := Replay(l, date.Date{})
	if err != nil {
		return nil, err
	}
	annotations := make(map[int]Realization, len(book.realizations))
	for _, r := range book.realizations {
		annotations[r.Index] = r
	}
	return annotations, nil
}
