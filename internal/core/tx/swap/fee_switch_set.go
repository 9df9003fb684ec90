package swap

import (
	"github.com/provedex/goswapd/internal/core/tx"
)

func init() {
	tx.Register(tx.TypeFeeSwitchSet, func() tx.Transaction {
		return &FeeSwitchSet{BaseTx: *tx.NewBaseTx(tx.TypeFeeSwitchSet, "")}
	})
}

// FeeSwitchSet toggles the global swap fee. Admin only; the switch is
// off at genesis.
type FeeSwitchSet struct {
	tx.BaseTx

	// Enabled is the new fee switch state
	Enabled bool `json:"Enabled"`
}

// NewFeeSwitchSet creates a new FeeSwitchSet transaction
func NewFeeSwitchSet(account string, enabled bool) *FeeSwitchSet {
	return &FeeSwitchSet{
		BaseTx:  *tx.NewBaseTx(tx.TypeFeeSwitchSet, account),
		Enabled: enabled,
	}
}

// TxType returns the transaction type
func (f *FeeSwitchSet) TxType() tx.Type {
	return tx.TypeFeeSwitchSet
}

// Flatten returns a flat map of all transaction fields
func (f *FeeSwitchSet) Flatten() (map[string]any, error) {
	m := f.Common.ToMap()
	m["Enabled"] = f.Enabled
	return m, nil
}

// Apply applies the FeeSwitchSet transaction to ledger state
func (f *FeeSwitchSet) Apply(ctx *tx.ApplyContext) tx.Result {
	if res := tx.AssertSenderAdmin(ctx.View, ctx.AccountID); !res.IsSuccess() {
		return res
	}
	return tx.SetSwapFee(ctx.View, f.Enabled)
}
