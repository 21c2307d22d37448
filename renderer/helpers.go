package renderer

import (
	"bytes"
	"io"

	portfolio "github.com/etnz/modelfolio"
)

// ConditionalBlock let you fully write a block and decide at the end to print it or not.
// If the block function returns true, the content is printed to w, otherwise it is discarded.
func ConditionalBlock(w io.Writer, block func(io.Writer) bool) {
	bw := &bytes.Buffer{}
	if block(bw) {
		io.Copy(w, bw)
	}
}

// signed renders a percentage with its sign, "—" if undefined.
func signed(p portfolio.Optional[portfolio.Percent]) string {
	v, ok := p.Get()
	if !ok {
		return p.String()
	}
	return v.SignedString()
}

// price renders a valuation price and where it comes from.
func price(p portfolio.Price) string {
	switch p.Source {
	case portfolio.PriceMissingFallback:
		return p.Value.String() + " (avg cost)"
	case portfolio.PriceCarried:
		return p.Value.String() + " (" + p.On.String() + ")"
	default:
		return p.Value.String()
	}
}
