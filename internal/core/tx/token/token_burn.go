package token

import (
	"errors"

	"github.com/provedex/goswapd/internal/core/tx"
)

func init() {
	tx.Register(tx.TypeTokenBurn, func() tx.Transaction {
		return &TokenBurn{BaseTx: *tx.NewBaseTx(tx.TypeTokenBurn, "")}
	})
}

// TokenBurn destroys units of a token from the sender's own balance,
// shrinking the total supply by the same amount.
type TokenBurn struct {
	tx.BaseTx

	// Token is the token to burn
	Token uint64 `json:"Token"`

	// Amount is the number of units to burn
	Amount uint64 `json:"Amount"`
}

// NewTokenBurn creates a new TokenBurn transaction
func NewTokenBurn(account string, token uint64, amount uint64) *TokenBurn {
	return &TokenBurn{
		BaseTx: *tx.NewBaseTx(tx.TypeTokenBurn, account),
		Token:  token,
		Amount: amount,
	}
}

// TxType returns the transaction type
func (b *TokenBurn) TxType() tx.Type {
	return tx.TypeTokenBurn
}

// Validate validates the TokenBurn transaction
func (b *TokenBurn) Validate() error {
	if err := b.BaseTx.Validate(); err != nil {
		return err
	}
	if b.Token == 0 {
		return errors.New("temBAD_TOKEN: token 0 is reserved")
	}
	if b.Amount == 0 {
		return errors.New("temBAD_AMOUNT: Amount must be positive")
	}
	return nil
}

// Flatten returns a flat map of all transaction fields
func (b *TokenBurn) Flatten() (map[string]any, error) {
	m := b.Common.ToMap()
	m["Token"] = b.Token
	m["Amount"] = b.Amount
	return m, nil
}

// Apply applies the TokenBurn transaction to ledger state
func (b *TokenBurn) Apply(ctx *tx.ApplyContext) tx.Result {
	return tx.Burn(ctx.View, b.Token, ctx.AccountID, b.Amount)
}
