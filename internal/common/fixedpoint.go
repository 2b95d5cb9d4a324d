package common

import "math/big"

// usdAmountExponent matches original_source's USD_AMOUNT_EXPONENT: USD
// amounts are represented as a 10^18-scaled integer, the same scale
// go-ethereum uses for wei, so the two compose without rescaling in the
// common case of a native-gas-token USD estimate.
const usdAmountExponent = 18

var usdScale = new(big.Int).Exp(big.NewInt(10), big.NewInt(usdAmountExponent), nil)

// FixedPoint is a 10^18-scaled fixed-point decimal backed by math/big, used
// for USD-denominated quantities (gas/bridge fee estimates, price impact)
// that must not lose precision to float64 rounding across a multi-hop
// route. math/big is the idiomatic Go choice here (see DESIGN.md); no pack
// repo ships a decimal library.
type FixedPoint struct {
	v *big.Int // value * 10^18
}

// NewFixedPointFromInt builds a FixedPoint representing the whole number n.
func NewFixedPointFromInt(n int64) FixedPoint {
	return FixedPoint{v: new(big.Int).Mul(big.NewInt(n), usdScale)}
}

// FixedPointFromScaled wraps a raw already-10^18-scaled integer (e.g. a wei
// amount interpreted as USD at 1:1, or the output of another FixedPoint op).
func FixedPointFromScaled(scaled *big.Int) FixedPoint {
	return FixedPoint{v: new(big.Int).Set(scaled)}
}

// Scaled returns the raw 10^18-scaled integer backing this value.
func (f FixedPoint) Scaled() *big.Int {
	return new(big.Int).Set(f.v)
}

// Add returns f + other.
func (f FixedPoint) Add(other FixedPoint) FixedPoint {
	return FixedPoint{v: new(big.Int).Add(f.v, other.v)}
}

// Sub returns f - other.
func (f FixedPoint) Sub(other FixedPoint) FixedPoint {
	return FixedPoint{v: new(big.Int).Sub(f.v, other.v)}
}

// Mul returns f * other, rescaling back down by 10^18 (floor division).
func (f FixedPoint) Mul(other FixedPoint) FixedPoint {
	product := new(big.Int).Mul(f.v, other.v)
	return FixedPoint{v: product.Div(product, usdScale)}
}

// MulBps scales f by bps/10000 (floor division), used to apply a fee or
// slippage tolerance expressed in basis points.
func (f FixedPoint) MulBps(bps uint32) FixedPoint {
	scaled := new(big.Int).Mul(f.v, big.NewInt(int64(bps)))
	return FixedPoint{v: scaled.Div(scaled, big.NewInt(10_000))}
}

// Cmp compares f to other: -1, 0, +1.
func (f FixedPoint) Cmp(other FixedPoint) int {
	return f.v.Cmp(other.v)
}

// IsZero reports whether f is exactly zero.
func (f FixedPoint) IsZero() bool {
	return f.v.Sign() == 0
}

// String renders a human-readable decimal (18 fractional digits, trimmed of
// trailing zeros would require locale-aware formatting; for diagnostics we
// keep the full precision).
func (f FixedPoint) String() string {
	whole := new(big.Int).Div(f.v, usdScale)
	frac := new(big.Int).Mod(f.v, usdScale)
	if frac.Sign() < 0 {
		frac.Neg(frac)
	}
	fracStr := frac.String()
	for len(fracStr) < usdAmountExponent {
		fracStr = "0" + fracStr
	}
	return whole.String() + "." + fracStr
}
