package token

import (
	"errors"

	"github.com/provedex/goswapd/internal/core/tx"
)

func init() {
	tx.Register(tx.TypeAdminSet, func() tx.Transaction {
		return &AdminSet{BaseTx: *tx.NewBaseTx(tx.TypeAdminSet, "")}
	})
}

// AdminSet assigns the ledger admin. While no admin is set anyone may
// claim the role; afterwards only the current admin may hand it over.
type AdminSet struct {
	tx.BaseTx

	// NewAdmin is the account to install as admin, hex encoded
	NewAdmin string `json:"NewAdmin"`
}

// NewAdminSet creates a new AdminSet transaction
func NewAdminSet(account, newAdmin string) *AdminSet {
	return &AdminSet{
		BaseTx:   *tx.NewBaseTx(tx.TypeAdminSet, account),
		NewAdmin: newAdmin,
	}
}

// TxType returns the transaction type
func (a *AdminSet) TxType() tx.Type {
	return tx.TypeAdminSet
}

// Validate validates the AdminSet transaction
func (a *AdminSet) Validate() error {
	if err := a.BaseTx.Validate(); err != nil {
		return err
	}
	if a.NewAdmin == "" {
		return errors.New("temBAD_ACCOUNT: NewAdmin is required")
	}
	if _, err := tx.DecodeAccountID(a.NewAdmin); err != nil {
		return errors.New("temBAD_ACCOUNT: NewAdmin is not a valid account")
	}
	return nil
}

// Flatten returns a flat map of all transaction fields
func (a *AdminSet) Flatten() (map[string]any, error) {
	m := a.Common.ToMap()
	m["NewAdmin"] = a.NewAdmin
	return m, nil
}

// Apply applies the AdminSet transaction to ledger state
func (a *AdminSet) Apply(ctx *tx.ApplyContext) tx.Result {
	newAdmin, err := tx.DecodeAccountID(a.NewAdmin)
	if err != nil {
		return tx.TemBAD_ACCOUNT
	}

	_, isSet, res := tx.GetAdmin(ctx.View)
	if !res.IsSuccess() {
		return res
	}

	if isSet {
		if res := tx.AssertSenderAdmin(ctx.View, ctx.AccountID); !res.IsSuccess() {
			return res
		}
	}

	return tx.SetAdmin(ctx.View, newAdmin)
}
