package swap

import (
	"errors"

	"github.com/provedex/goswapd/internal/core/keylet"
	"github.com/provedex/goswapd/internal/core/tx"
)

func init() {
	tx.Register(tx.TypeSwapExactIn, func() tx.Transaction {
		return &SwapExactIn{BaseTx: *tx.NewBaseTx(tx.TypeSwapExactIn, "")}
	})
}

// SwapExactIn trades a fixed input amount along a multi-hop path and
// fails if the realized output falls below MinAmountOut.
type SwapExactIn struct {
	tx.BaseTx

	// AmountIn is the exact input of Path[0]
	AmountIn uint64 `json:"AmountIn"`

	// MinAmountOut is the output floor (slippage guard)
	MinAmountOut uint64 `json:"MinAmountOut"`

	// Path is the token route; each adjacent pair must have a pool
	Path []uint64 `json:"Path"`
}

// NewSwapExactIn creates a new SwapExactIn transaction
func NewSwapExactIn(account string, amountIn, minAmountOut uint64, path []uint64) *SwapExactIn {
	return &SwapExactIn{
		BaseTx:       *tx.NewBaseTx(tx.TypeSwapExactIn, account),
		AmountIn:     amountIn,
		MinAmountOut: minAmountOut,
		Path:         path,
	}
}

// TxType returns the transaction type
func (s *SwapExactIn) TxType() tx.Type {
	return tx.TypeSwapExactIn
}

// Validate validates the SwapExactIn transaction
func (s *SwapExactIn) Validate() error {
	if err := s.BaseTx.Validate(); err != nil {
		return err
	}
	if s.AmountIn == 0 {
		return errors.New("temBAD_AMOUNT: AmountIn must be positive")
	}
	if !validatePath(s.Path) {
		return errors.New("temBAD_PATH: path must visit 2 to 10 distinct-adjacent nonzero tokens")
	}
	return nil
}

// Flatten returns a flat map of all transaction fields
func (s *SwapExactIn) Flatten() (map[string]any, error) {
	m := s.Common.ToMap()
	m["AmountIn"] = s.AmountIn
	m["MinAmountOut"] = s.MinAmountOut
	m["Path"] = s.Path
	return m, nil
}

// Apply walks the path forward. At each hop the in-token moves from the
// current holder (the sender, then each previous pool) into the hop's
// pool, priced against the reserves as they stood before the hop. The
// final output leaves the last pool only after the slippage check, so a
// rejected swap leaves no partial movement behind.
func (s *SwapExactIn) Apply(ctx *tx.ApplyContext) tx.Result {
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

	holder := ctx.AccountID
	amount := s.AmountIn

	var lastPool tx.AccountID
	for i := 0; i+1 < len(s.Path); i++ {
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

		out, res := outGivenIn(amount, reserveIn, reserveOut, feeOn)
		if !res.IsSuccess() {
			return res
		}

		if res := tx.Transfer(ctx.View, tokenIn, holder, pool, amount); !res.IsSuccess() {
			return res
		}

		holder = pool
		lastPool = pool
		amount = out
	}

	if amount < s.MinAmountOut {
		return tx.TecAMOUNT_OUT_TOO_LOW
	}

	lastToken := s.Path[len(s.Path)-1]
	return tx.Transfer(ctx.View, lastToken, lastPool, ctx.AccountID, amount)
}
