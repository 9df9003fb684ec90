package swap

import (
	"errors"

	"github.com/provedex/goswapd/internal/core/keylet"
	"github.com/provedex/goswapd/internal/core/tx"
)

func init() {
	tx.Register(tx.TypeLiquidityRemove, func() tx.Transaction {
		return &LiquidityRemove{BaseTx: *tx.NewBaseTx(tx.TypeLiquidityRemove, "")}
	})
}

// LiquidityRemove burns liquidity shares and withdraws the pro-rata
// portion of both reserves, bounded below by the caller's minimums.
type LiquidityRemove struct {
	tx.BaseTx

	// TokenA and TokenB identify the pool
	TokenA uint64 `json:"TokenA"`
	TokenB uint64 `json:"TokenB"`

	// Liquidity is the number of shares to burn
	Liquidity uint64 `json:"Liquidity"`

	// AmountAMin and AmountBMin are the withdrawal floors (slippage guard)
	AmountAMin uint64 `json:"AmountAMin"`
	AmountBMin uint64 `json:"AmountBMin"`
}

// NewLiquidityRemove creates a new LiquidityRemove transaction
func NewLiquidityRemove(account string, tokenA, tokenB, liquidity, amountAMin, amountBMin uint64) *LiquidityRemove {
	return &LiquidityRemove{
		BaseTx:     *tx.NewBaseTx(tx.TypeLiquidityRemove, account),
		TokenA:     tokenA,
		TokenB:     tokenB,
		Liquidity:  liquidity,
		AmountAMin: amountAMin,
		AmountBMin: amountBMin,
	}
}

// TxType returns the transaction type
func (l *LiquidityRemove) TxType() tx.Type {
	return tx.TypeLiquidityRemove
}

// Validate validates the LiquidityRemove transaction
func (l *LiquidityRemove) Validate() error {
	if err := l.BaseTx.Validate(); err != nil {
		return err
	}
	if l.TokenA == 0 || l.TokenB == 0 {
		return errors.New("temBAD_TOKEN: token 0 is reserved")
	}
	if l.TokenA == l.TokenB {
		return errors.New("temTOKENS_MATCH: pool constituents must differ")
	}
	if l.Liquidity == 0 {
		return errors.New("temBAD_AMOUNT: Liquidity must be positive")
	}
	return nil
}

// Flatten returns a flat map of all transaction fields
func (l *LiquidityRemove) Flatten() (map[string]any, error) {
	m := l.Common.ToMap()
	m["TokenA"] = l.TokenA
	m["TokenB"] = l.TokenB
	m["Liquidity"] = l.Liquidity
	m["AmountAMin"] = l.AmountAMin
	m["AmountBMin"] = l.AmountBMin
	return m, nil
}

// Apply applies the LiquidityRemove transaction to ledger state
func (l *LiquidityRemove) Apply(ctx *tx.ApplyContext) tx.Result {
	exists, res := tx.PoolExists(ctx.View, l.TokenA, l.TokenB)
	if !res.IsSuccess() {
		return res
	}
	if !exists {
		return tx.TecNO_POOL
	}

	poolAccount := tx.AccountID(keylet.PoolAccountID(l.TokenA, l.TokenB))
	lpToken := keylet.LPTokenID(l.TokenA, l.TokenB)

	lpSupply, res := tx.GetSupply(ctx.View, lpToken)
	if !res.IsSuccess() {
		return res
	}

	reserveA, res := tx.GetBalance(ctx.View, l.TokenA, poolAccount)
	if !res.IsSuccess() {
		return res
	}
	reserveB, res := tx.GetBalance(ctx.View, l.TokenB, poolAccount)
	if !res.IsSuccess() {
		return res
	}

	amountA, res := tx.MulDiv(l.Liquidity, reserveA, lpSupply)
	if !res.IsSuccess() {
		return res
	}
	amountB, res := tx.MulDiv(l.Liquidity, reserveB, lpSupply)
	if !res.IsSuccess() {
		return res
	}

	if amountA < l.AmountAMin {
		return tx.TecINSUFFICIENT_A_AMOUNT
	}
	if amountB < l.AmountBMin {
		return tx.TecINSUFFICIENT_B_AMOUNT
	}

	if res := tx.Burn(ctx.View, lpToken, ctx.AccountID, l.Liquidity); !res.IsSuccess() {
		return res
	}

	if res := tx.Transfer(ctx.View, l.TokenA, poolAccount, ctx.AccountID, amountA); !res.IsSuccess() {
		return res
	}
	return tx.Transfer(ctx.View, l.TokenB, poolAccount, ctx.AccountID, amountB)
}
