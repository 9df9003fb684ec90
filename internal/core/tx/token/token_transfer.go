package token

import (
	"errors"

	"github.com/provedex/goswapd/internal/core/tx"
)

func init() {
	tx.Register(tx.TypeTokenTransfer, func() tx.Transaction {
		return &TokenTransfer{BaseTx: *tx.NewBaseTx(tx.TypeTokenTransfer, "")}
	})
	tx.Register(tx.TypeTokenTransferSigned, func() tx.Transaction {
		return &TokenTransferSigned{BaseTx: *tx.NewBaseTx(tx.TypeTokenTransferSigned, "")}
	})
}

// TokenTransfer moves units of a token from the sender to a destination.
type TokenTransfer struct {
	tx.BaseTx

	// Token is the token to transfer
	Token uint64 `json:"Token"`

	// Destination is the account to credit, hex encoded
	Destination string `json:"Destination"`

	// Amount is the number of units to transfer
	Amount uint64 `json:"Amount"`
}

// NewTokenTransfer creates a new TokenTransfer transaction
func NewTokenTransfer(account string, token uint64, destination string, amount uint64) *TokenTransfer {
	return &TokenTransfer{
		BaseTx:      *tx.NewBaseTx(tx.TypeTokenTransfer, account),
		Token:       token,
		Destination: destination,
		Amount:      amount,
	}
}

// TxType returns the transaction type
func (t *TokenTransfer) TxType() tx.Type {
	return tx.TypeTokenTransfer
}

// Validate validates the TokenTransfer transaction
func (t *TokenTransfer) Validate() error {
	if err := t.BaseTx.Validate(); err != nil {
		return err
	}
	if t.Token == 0 {
		return errors.New("temBAD_TOKEN: token 0 is reserved")
	}
	if t.Destination == "" {
		return errors.New("temBAD_ACCOUNT: Destination is required")
	}
	if _, err := tx.DecodeAccountID(t.Destination); err != nil {
		return errors.New("temBAD_ACCOUNT: Destination is not a valid account")
	}
	if t.Amount == 0 {
		return errors.New("temBAD_AMOUNT: Amount must be positive")
	}
	return nil
}

// Flatten returns a flat map of all transaction fields
func (t *TokenTransfer) Flatten() (map[string]any, error) {
	m := t.Common.ToMap()
	m["Token"] = t.Token
	m["Destination"] = t.Destination
	m["Amount"] = t.Amount
	return m, nil
}

// Apply applies the TokenTransfer transaction to ledger state
func (t *TokenTransfer) Apply(ctx *tx.ApplyContext) tx.Result {
	destination, err := tx.DecodeAccountID(t.Destination)
	if err != nil {
		return tx.TemBAD_ACCOUNT
	}
	return tx.Transfer(ctx.View, t.Token, ctx.AccountID, destination, t.Amount)
}

// TokenTransferSigned moves units of a token from a stated source
// account to a destination. The stated source must match the
// authenticated sender; the engine never verifies signatures itself.
type TokenTransferSigned struct {
	tx.BaseTx

	// Token is the token to transfer
	Token uint64 `json:"Token"`

	// From is the stated source account, hex encoded
	From string `json:"From"`

	// Destination is the account to credit, hex encoded
	Destination string `json:"Destination"`

	// Amount is the number of units to transfer
	Amount uint64 `json:"Amount"`
}

// NewTokenTransferSigned creates a new TokenTransferSigned transaction
func NewTokenTransferSigned(account string, token uint64, from, destination string, amount uint64) *TokenTransferSigned {
	return &TokenTransferSigned{
		BaseTx:      *tx.NewBaseTx(tx.TypeTokenTransferSigned, account),
		Token:       token,
		From:        from,
		Destination: destination,
		Amount:      amount,
	}
}

// TxType returns the transaction type
func (t *TokenTransferSigned) TxType() tx.Type {
	return tx.TypeTokenTransferSigned
}

// Validate validates the TokenTransferSigned transaction
func (t *TokenTransferSigned) Validate() error {
	if err := t.BaseTx.Validate(); err != nil {
		return err
	}
	if t.Token == 0 {
		return errors.New("temBAD_TOKEN: token 0 is reserved")
	}
	if t.From == "" {
		return errors.New("temBAD_ACCOUNT: From is required")
	}
	if _, err := tx.DecodeAccountID(t.From); err != nil {
		return errors.New("temBAD_ACCOUNT: From is not a valid account")
	}
	if t.Destination == "" {
		return errors.New("temBAD_ACCOUNT: Destination is required")
	}
	if _, err := tx.DecodeAccountID(t.Destination); err != nil {
		return errors.New("temBAD_ACCOUNT: Destination is not a valid account")
	}
	if t.Amount == 0 {
		return errors.New("temBAD_AMOUNT: Amount must be positive")
	}
	return nil
}

// Flatten returns a flat map of all transaction fields
func (t *TokenTransferSigned) Flatten() (map[string]any, error) {
	m := t.Common.ToMap()
	m["Token"] = t.Token
	m["From"] = t.From
	m["Destination"] = t.Destination
	m["Amount"] = t.Amount
	return m, nil
}

// Apply applies the TokenTransferSigned transaction to ledger state
func (t *TokenTransferSigned) Apply(ctx *tx.ApplyContext) tx.Result {
	from, err := tx.DecodeAccountID(t.From)
	if err != nil {
		return tx.TemBAD_ACCOUNT
	}
	if from != ctx.AccountID {
		return tx.TecSENDER_MISMATCH
	}

	destination, err := tx.DecodeAccountID(t.Destination)
	if err != nil {
		return tx.TemBAD_ACCOUNT
	}

	return tx.Transfer(ctx.View, t.Token, from, destination, t.Amount)
}
