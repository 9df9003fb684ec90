package swap

import (
	"math"

	"github.com/provedex/goswapd/internal/core/tx"
)

// Constant-product pricing primitives. Reserves are the pool account's
// token balances; the formulas floor, so rounding loss always favors
// the pool and the reserve product never decreases across a trade.
const (
	// MaxPathLength bounds multi-hop swap routes
	MaxPathLength = 10

	// Swap fee applied to the input amount when the fee switch is on:
	// 997/1000, i.e. 30 basis points.
	feeNumerator   = 997
	feeDenominator = 1000
)

// outGivenIn returns floor(amountIn * reserveOut / (reserveIn + amountIn)).
// When the fee switch is on, only 997/1000 of the input participates in
// pricing; the full input is still deposited into the pool.
func outGivenIn(amountIn, reserveIn, reserveOut uint64, feeOn bool) (uint64, tx.Result) {
	effectiveIn := amountIn
	if feeOn {
		scaled, res := tx.MulDiv(amountIn, feeNumerator, feeDenominator)
		if !res.IsSuccess() {
			return 0, res
		}
		effectiveIn = scaled
	}

	if reserveIn > math.MaxUint64-effectiveIn {
		return 0, tx.TefINTERNAL
	}
	denominator, res := tx.SafeDenominator(reserveIn + effectiveIn)
	if !res.IsSuccess() {
		return 0, res
	}

	return tx.MulDiv(effectiveIn, reserveOut, denominator)
}

// inGivenOut returns the input required to withdraw amountOut:
// floor(reserveIn * amountOut / (reserveOut - amountOut)) + 1. The extra
// unit rounds the requirement up so the pool is never shortchanged; a
// tiny withdrawal against skewed reserves would otherwise price at zero.
// The desired output must be strictly less than the out-side reserve.
// When the fee switch is on, the requirement is grossed up by 1000/997
// before the final unit is added.
func inGivenOut(amountOut, reserveIn, reserveOut uint64, feeOn bool) (uint64, tx.Result) {
	if reserveOut <= amountOut {
		return 0, tx.TecDIVISION_BY_ZERO
	}

	amountIn, res := tx.MulDiv(reserveIn, amountOut, reserveOut-amountOut)
	if !res.IsSuccess() {
		return 0, res
	}

	if feeOn {
		grossed, res := tx.MulDiv(amountIn, feeDenominator, feeNumerator)
		if !res.IsSuccess() {
			return 0, res
		}
		amountIn = grossed
	}

	if amountIn == math.MaxUint64 {
		return 0, tx.TefINTERNAL
	}
	return amountIn + 1, tx.TesSUCCESS
}

// validatePath checks a swap route: 2 to 10 hops over nonzero tokens
// with no token repeated back to back.
func validatePath(path []uint64) bool {
	if len(path) < 2 || len(path) > MaxPathLength {
		return false
	}
	for i, token := range path {
		if token == 0 {
			return false
		}
		if i > 0 && path[i-1] == token {
			return false
		}
	}
	return true
}
