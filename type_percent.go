package portfolio

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Percent is a percentage: 5.5 means 5.5%.
type Percent float64

// percentOf returns 100*num/den as a Percent.
func percentOf(num, den decimal.Decimal) Percent {
	return Percent(num.Mul(hundred).Div(den).InexactFloat64())
}

var hundred = decimal.NewFromInt(100)

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", p)
}

func (p Percent) SignedString() string {
	res := fmt.Sprintf("%+.2f%%", p)
	if res == "+0.00%" || res == "-0.00%" {
		return "-"
	}
	return res
}
