package swap

import (
	"errors"

	"github.com/provedex/goswapd/internal/core/keylet"
	"github.com/provedex/goswapd/internal/core/tx"
)

func init() {
	tx.Register(tx.TypeSwapExactOut, func() tx.Transaction {
		return &SwapExactOut{BaseTx: *tx.NewBaseTx(tx.TypeSwapExactOut, "")}
	})
}

// SwapExactOut trades for a fixed output amount along a multi-hop path
// and fails if the required input exceeds MaxAmountIn.
type SwapExactOut struct {
	tx.BaseTx

	// MaxAmountIn is the input ceiling (slippage guard)
	MaxAmountIn uint64 `json:"MaxAmountIn"`

	// AmountOut is the exact output of the last path token
	AmountOut uint64 `json:"AmountOut"`

	// Path is the token route; each adjacent pair must have a pool
	Path []uint64 `json:"Path"`
}

// NewSwapExactOut creates a new SwapExactOut transaction
func NewSwapExactOut(account string, maxAmountIn, amountOut uint64, path []uint64) *SwapExactOut {
	return &SwapExactOut{
		BaseTx:      *tx.NewBaseTx(tx.TypeSwapExactOut, account),
		MaxAmountIn: maxAmountIn,
		AmountOut:   amountOut,
		Path:        path,
	}
}

// TxType returns the transaction type
func (s *SwapExactOut) TxType() tx.Type {
	return tx.TypeSwapExactOut
}

// Validate validates the SwapExactOut transaction
func (s *SwapExactOut) Validate() error {
	if err := s.BaseTx.Validate(); err != nil {
		return err
	}
	if s.AmountOut == 0 {
		return errors.New("temBAD_AMOUNT: AmountOut must be positive")
	}
	if !validatePath(s.Path) {
		return errors.New("temBAD_PATH: path must visit 2 to 10 distinct-adjacent nonzero tokens")
	}
	return nil
}

// Flatten returns a flat map of all transaction fields
func (s *SwapExactOut) Flatten() (map[string]any, error) {
	m := s.Common.ToMap()
	m["MaxAmountIn"] = s.MaxAmountIn
	m["AmountOut"] = s.AmountOut
	m["Path"] = s.Path
	return m, nil
}

// Apply walks the path in reverse. Each hop computes the input the pool
// requires for the output already owed downstream, then releases that
// output to the downstream receiver (the sender for the last hop, the
// next pool otherwise). The sender funds the first pool only after the
// input ceiling check passes.
func (s *SwapExactOut) Apply(ctx *tx.ApplyContext) tx.Result {
	feeOn, res := tx.SwapFeeEnabled(ctx.View)
	if !res.IsSuccess() {
		return res
	}

	for i := 0; i+1 < len(s.Path); i++ {
		exists, res := tx.PoolExists(ctx.View, s.Path[i], s.Path[i+1])
		if !res.IsSuccess() {
			return res
		}
		if !exists {
			return tx.TecNO_POOL
		}
	}

	receiver := ctx.AccountID
	needed := s.AmountOut

	var firstPool tx.AccountID
	for i := len(s.Path) - 2; i >= 0; i-- {
		tokenIn, tokenOut := s.Path[i], s.Path[i+1]
		pool := tx.AccountID(keylet.PoolAccountID(tokenIn, tokenOut))

		reserveIn, res := tx.GetBalance(ctx.View, tokenIn, pool)
		if !res.IsSuccess() {
			return res
		}
		reserveOut, res := tx.GetBalance(ctx.View, tokenOut, pool)
		if !res.IsSuccess() {
			return res
		}

		in, res := inGivenOut(needed, reserveIn, reserveOut, feeOn)
		if !res.IsSuccess() {
			return res
		}

		if res := tx.Transfer(ctx.View, tokenOut, pool, receiver, needed); !res.IsSuccess() {
			return res
		}

		receiver = pool
		firstPool = pool
		needed = in
	}

	if needed > s.MaxAmountIn {
		return tx.TecAMOUNT_IN_TOO_HIGH
	}

	return tx.Transfer(ctx.View, s.Path[0], ctx.AccountID, firstPool, needed)
}
