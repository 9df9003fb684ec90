package swap

import (
	"errors"

	"github.com/provedex/goswapd/internal/core/keylet"
	"github.com/provedex/goswapd/internal/core/tx"
)

func init() {
	tx.Register(tx.TypeLiquidityAdd, func() tx.Transaction {
		return &LiquidityAdd{BaseTx: *tx.NewBaseTx(tx.TypeLiquidityAdd, "")}
	})
}

// LiquidityAdd deposits a proportional amount of both pool constituents
// and mints liquidity shares to the depositor. The caller fixes the
// TokenA amount; the required TokenB amount follows the current reserve
// ratio and is capped by AmountBMax.
type LiquidityAdd struct {
	tx.BaseTx

	// TokenA and TokenB identify the pool
	TokenA uint64 `json:"TokenA"`
	TokenB uint64 `json:"TokenB"`

	// AmountA is the exact TokenA deposit
	AmountA uint64 `json:"AmountA"`

	// AmountBMax caps the computed TokenB deposit (slippage guard)
	AmountBMax uint64 `json:"AmountBMax"`
}

// NewLiquidityAdd creates a new LiquidityAdd transaction
func NewLiquidityAdd(account string, tokenA, tokenB, amountA, amountBMax uint64) *LiquidityAdd {
	return &LiquidityAdd{
		BaseTx:     *tx.NewBaseTx(tx.TypeLiquidityAdd, account),
		TokenA:     tokenA,
		TokenB:     tokenB,
		AmountA:    amountA,
		AmountBMax: amountBMax,
	}
}

// TxType returns the transaction type
func (l *LiquidityAdd) TxType() tx.Type {
	return tx.TypeLiquidityAdd
}

// Validate validates the LiquidityAdd transaction
func (l *LiquidityAdd) Validate() error {
	if err := l.BaseTx.Validate(); err != nil {
		return err
	}
	if l.TokenA == 0 || l.TokenB == 0 {
		return errors.New("temBAD_TOKEN: token 0 is reserved")
	}
	if l.TokenA == l.TokenB {
		return errors.New("temTOKENS_MATCH: pool constituents must differ")
	}
	if l.AmountA == 0 {
		return errors.New("temBAD_AMOUNT: AmountA must be positive")
	}
	return nil
}

// Flatten returns a flat map of all transaction fields
func (l *LiquidityAdd) Flatten() (map[string]any, error) {
	m := l.Common.ToMap()
	m["TokenA"] = l.TokenA
	m["TokenB"] = l.TokenB
	m["AmountA"] = l.AmountA
	m["AmountBMax"] = l.AmountBMax
	return m, nil
}

// Apply applies the LiquidityAdd transaction to ledger state
func (l *LiquidityAdd) Apply(ctx *tx.ApplyContext) tx.Result {
	exists, res := tx.PoolExists(ctx.View, l.TokenA, l.TokenB)
	if !res.IsSuccess() {
		return res
	}
	if !exists {
		return tx.TecNO_POOL
	}

	poolAccount := tx.AccountID(keylet.PoolAccountID(l.TokenA, l.TokenB))

	reserveA, res := tx.GetBalance(ctx.View, l.TokenA, poolAccount)
	if !res.IsSuccess() {
		return res
	}
	reserveB, res := tx.GetBalance(ctx.View, l.TokenB, poolAccount)
	if !res.IsSuccess() {
		return res
	}

	// A fully drained pool stays registered; depositing into it has no
	// reserve ratio to follow, so it is rejected rather than priced.
	if reserveA == 0 || reserveB == 0 {
		return tx.TecDIVISION_BY_ZERO
	}

	amountB, res := tx.MulDiv(l.AmountA, reserveB, reserveA)
	if !res.IsSuccess() {
		return res
	}
	if amountB > l.AmountBMax {
		return tx.TecINSUFFICIENT_ALLOWANCE
	}

	if res := tx.Transfer(ctx.View, l.TokenA, ctx.AccountID, poolAccount, l.AmountA); !res.IsSuccess() {
		return res
	}
	if res := tx.Transfer(ctx.View, l.TokenB, ctx.AccountID, poolAccount, amountB); !res.IsSuccess() {
		return res
	}

	lpToken := keylet.LPTokenID(l.TokenA, l.TokenB)
	lpSupply, res := tx.GetSupply(ctx.View, lpToken)
	if !res.IsSuccess() {
		return res
	}

	// Shares follow the smaller of the two contribution ratios so a
	// deposit can never mint more than either side justifies.
	liqA, res := tx.MulDiv(l.AmountA, lpSupply, reserveA)
	if !res.IsSuccess() {
		return res
	}
	liqB, res := tx.MulDiv(amountB, lpSupply, reserveB)
	if !res.IsSuccess() {
		return res
	}

	minted := liqA
	if liqB < minted {
		minted = liqB
	}
	if minted == 0 {
		return tx.TecZERO_LIQUIDITY
	}

	return tx.Mint(ctx.View, lpToken, ctx.AccountID, minted)
}
