package pricing

import (
	"fmt"
	"math"
)

// Kind of bulk price operation
type Kind string

const (
	Discount Kind = "discount" // percentage off the current base price
	Markup   Kind = "markup"   // percentage on top of the current base price
	Set      Kind = "set"      // fixed new price
)

// Band spread around a new price
const (
	minFactor = 0.8
	maxFactor = 1.2
)

// Operation is a single bulk price change.
type Operation struct {
	Kind  Kind
	Value float64
}

// Band is the stored price triple derived from a new price.
type Band struct {
	Base float64 `json:"base_price"`
	Min  float64 `json:"min_price"`
	Max  float64 `json:"max_price"`
}

// ParseKind validates an operation name coming from a request.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case Discount, Markup, Set:
		return Kind(s), nil
	}
	return "", fmt.Errorf("unknown price operation %q", s)
}

// Apply returns the new unrounded price for base price p.
// The set value is used as-is, it is not clamped against any existing bounds.
func (op Operation) Apply(p float64) float64 {
	switch op.Kind {
	case Discount:
		return p * (1 - op.Value/100)
	case Markup:
		return p * (1 + op.Value/100)
	case Set:
		return op.Value
	}
	return p
}

// Transform applies op to p and derives the stored band.
func (op Operation) Transform(p float64) Band {
	return BandFor(op.Apply(p))
}

// BandFor derives base/min/max from a computed price.
func BandFor(price float64) Band {
	return Band{
		Base: Round(price),
		Min:  Round(price * minFactor),
		Max:  Round(price * maxFactor),
	}
}

// Round rounds half up, so -2.5 becomes -2 and 2.5 becomes 3.
func Round(x float64) float64 {
	return math.Floor(x + 0.5)
}
