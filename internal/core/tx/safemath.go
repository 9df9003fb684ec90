package tx

import "math/big"

// Checked arithmetic over uint64 quantities. Every decrement and every
// ratio computation in the ledger goes through these helpers so that
// underflow and division by zero surface as deterministic result codes
// instead of wrapped values.

// SafeSub returns minuend - subtrahend, or tecSUBTRACTION_UNDERFLOW when
// the subtrahend is larger.
func SafeSub(minuend, subtrahend uint64) (uint64, Result) {
	if minuend < subtrahend {
		return 0, TecSUBTRACTION_UNDERFLOW
	}
	return minuend - subtrahend, TesSUCCESS
}

// SafeDiv returns numerator / denominator (floor), or tecDIVISION_BY_ZERO
// when the denominator is zero.
func SafeDiv(numerator, denominator uint64) (uint64, Result) {
	if denominator == 0 {
		return 0, TecDIVISION_BY_ZERO
	}
	return numerator / denominator, TesSUCCESS
}

// SafeDenominator returns the denominator unchanged when nonzero, or
// tecDIVISION_BY_ZERO when it is zero.
func SafeDenominator(denominator uint64) (uint64, Result) {
	if denominator == 0 {
		return 0, TecDIVISION_BY_ZERO
	}
	return denominator, TesSUCCESS
}

// MulDiv returns floor(a * b / d) computed at full precision, so pricing
// ratios never overflow the intermediate product. Fails with
// tecDIVISION_BY_ZERO when d is zero and tefINTERNAL when the quotient
// does not fit in a uint64.
func MulDiv(a, b, d uint64) (uint64, Result) {
	if d == 0 {
		return 0, TecDIVISION_BY_ZERO
	}
	product := new(big.Int).Mul(new(big.Int).SetUint64(a), new(big.Int).SetUint64(b))
	quotient := product.Div(product, new(big.Int).SetUint64(d))
	if !quotient.IsUint64() {
		return 0, TefINTERNAL
	}
	return quotient.Uint64(), TesSUCCESS
}
