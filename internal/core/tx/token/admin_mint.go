package token

import (
	"errors"

	"github.com/provedex/goswapd/internal/core/tx"
)

func init() {
	tx.Register(tx.TypeAdminMint, func() tx.Transaction {
		return &AdminMint{BaseTx: *tx.NewBaseTx(tx.TypeAdminMint, "")}
	})
}

// AdminMint mints new units of a token to a destination account. Only
// the current admin may mint; before any admin is set nobody may.
type AdminMint struct {
	tx.BaseTx

	// Token is the token to mint
	Token uint64 `json:"Token"`

	// Destination is the account to credit, hex encoded
	Destination string `json:"Destination"`

	// Amount is the number of units to mint
	Amount uint64 `json:"Amount"`
}

// NewAdminMint creates a new AdminMint transaction
func NewAdminMint(account string, token uint64, destination string, amount uint64) *AdminMint {
	return &AdminMint{
		BaseTx:      *tx.NewBaseTx(tx.TypeAdminMint, account),
		Token:       token,
		Destination: destination,
		Amount:      amount,
	}
}

// TxType returns the transaction type
func (a *AdminMint) TxType() tx.Type {
	return tx.TypeAdminMint
}

// Validate validates the AdminMint transaction
func (a *AdminMint) Validate() error {
	if err := a.BaseTx.Validate(); err != nil {
		return err
	}
	if a.Token == 0 {
		return errors.New("temBAD_TOKEN: token 0 is reserved")
	}
	if a.Destination == "" {
		return errors.New("temBAD_ACCOUNT: Destination is required")
	}
	if _, err := tx.DecodeAccountID(a.Destination); err != nil {
		return errors.New("temBAD_ACCOUNT: Destination is not a valid account")
	}
	if a.Amount == 0 {
		return errors.New("temBAD_AMOUNT: Amount must be positive")
	}
	return nil
}

// Flatten returns a flat map of all transaction fields
func (a *AdminMint) Flatten() (map[string]any, error) {
	m := a.Common.ToMap()
	m["Token"] = a.Token
	m["Destination"] = a.Destination
	m["Amount"] = a.Amount
	return m, nil
}

// Apply applies the AdminMint transaction to ledger state
func (a *AdminMint) Apply(ctx *tx.ApplyContext) tx.Result {
	if res := tx.AssertSenderAdmin(ctx.View, ctx.AccountID); !res.IsSuccess() {
		return res
	}

	destination, err := tx.DecodeAccountID(a.Destination)
	if err != nil {
		return tx.TemBAD_ACCOUNT
	}

	return tx.Mint(ctx.View, a.Token, destination, a.Amount)
}
