package swap

import (
	"errors"

	"github.com/provedex/goswapd/internal/core/keylet"
	"github.com/provedex/goswapd/internal/core/tx"
)

func init() {
	tx.Register(tx.TypePoolCreate, func() tx.Transaction {
		return &PoolCreate{BaseTx: *tx.NewBaseTx(tx.TypePoolCreate, "")}
	})
}

// PoolCreate registers a constant-product pool for an unordered token
// pair, seeds it with the creator's supplies, and mints the initial
// liquidity shares to the creator.
//
// The initial share amount is min(SupplyA, SupplyB); there is no
// permanently locked minimum-liquidity floor.
type PoolCreate struct {
	tx.BaseTx

	// TokenA and TokenB are the pool constituents
	TokenA uint64 `json:"TokenA"`
	TokenB uint64 `json:"TokenB"`

	// SupplyA and SupplyB are the initial reserves, taken from the creator
	SupplyA uint64 `json:"SupplyA"`
	SupplyB uint64 `json:"SupplyB"`
}

// NewPoolCreate creates a new PoolCreate transaction
func NewPoolCreate(account string, tokenA, tokenB, supplyA, supplyB uint64) *PoolCreate {
	return &PoolCreate{
		BaseTx:  *tx.NewBaseTx(tx.TypePoolCreate, account),
		TokenA:  tokenA,
		TokenB:  tokenB,
		SupplyA: supplyA,
		SupplyB: supplyB,
	}
}

// TxType returns the transaction type
func (p *PoolCreate) TxType() tx.Type {
	return tx.TypePoolCreate
}

// Validate validates the PoolCreate transaction
func (p *PoolCreate) Validate() error {
	if err := p.BaseTx.Validate(); err != nil {
		return err
	}
	if p.TokenA == 0 || p.TokenB == 0 {
		return errors.New("temBAD_TOKEN: token 0 is reserved")
	}
	if p.TokenA == p.TokenB {
		return errors.New("temTOKENS_MATCH: pool constituents must differ")
	}
	if p.SupplyA == 0 || p.SupplyB == 0 {
		return errors.New("temZERO_SUPPLY: initial supplies must be positive")
	}
	return nil
}

// Flatten returns a flat map of all transaction fields
func (p *PoolCreate) Flatten() (map[string]any, error) {
	m := p.Common.ToMap()
	m["TokenA"] = p.TokenA
	m["TokenB"] = p.TokenB
	m["SupplyA"] = p.SupplyA
	m["SupplyB"] = p.SupplyB
	return m, nil
}

// Apply applies the PoolCreate transaction to ledger state
func (p *PoolCreate) Apply(ctx *tx.ApplyContext) tx.Result {
	exists, res := tx.PoolExists(ctx.View, p.TokenA, p.TokenB)
	if !res.IsSuccess() {
		return res
	}
	if exists {
		return tx.TecPOOL_EXISTS
	}

	poolAccount := tx.AccountID(keylet.PoolAccountID(p.TokenA, p.TokenB))

	if res := tx.Transfer(ctx.View, p.TokenA, ctx.AccountID, poolAccount, p.SupplyA); !res.IsSuccess() {
		return res
	}
	if res := tx.Transfer(ctx.View, p.TokenB, ctx.AccountID, poolAccount, p.SupplyB); !res.IsSuccess() {
		return res
	}

	if res := tx.RegisterPool(ctx.View, p.TokenA, p.TokenB); !res.IsSuccess() {
		return res
	}

	initialLiquidity := p.SupplyA
	if p.SupplyB < initialLiquidity {
		initialLiquidity = p.SupplyB
	}

	lpToken := keylet.LPTokenID(p.TokenA, p.TokenB)
	return tx.Mint(ctx.View, lpToken, ctx.AccountID, initialLiquidity)
}
