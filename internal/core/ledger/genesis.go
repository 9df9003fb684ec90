package ledger

import (
	"fmt"

	"github.com/provedex/goswapd/internal/core/tx"
)

// Allocation is an initial mint performed at first boot.
type Allocation struct {
	Token   uint64 `json:"token" mapstructure:"token"`
	Account string `json:"account" mapstructure:"account"`
	Amount  uint64 `json:"amount" mapstructure:"amount"`
}

// Genesis describes the operator-defined initial state: an optional admin
// account and token allocations. Allocations go through the same mint
// primitive transactions use, so supply always equals the sum of balances.
type Genesis struct {
	Admin       string       `json:"admin" mapstructure:"admin"`
	Allocations []Allocation `json:"allocations" mapstructure:"allocations"`
}

// ApplyGenesis seeds an empty ledger. It refuses to run on a ledger that
// already holds state, so a reloaded snapshot is never double-seeded.
func (l *Ledger) ApplyGenesis(g Genesis) error {
	if l.EntryCount() != 0 {
		return fmt.Errorf("genesis on non-empty ledger (%d entries)", l.EntryCount())
	}

	if g.Admin != "" {
		admin, err := tx.DecodeAccountID(g.Admin)
		if err != nil {
			return fmt.Errorf("genesis admin: %w", err)
		}
		if res := tx.SetAdmin(l, admin); !res.IsSuccess() {
			return fmt.Errorf("genesis admin: %s", res)
		}
	}

	for i, alloc := range g.Allocations {
		if alloc.Token == 0 {
			return fmt.Errorf("genesis allocation %d: token id 0 is reserved", i)
		}
		if alloc.Amount == 0 {
			return fmt.Errorf("genesis allocation %d: zero amount", i)
		}
		account, err := tx.DecodeAccountID(alloc.Account)
		if err != nil {
			return fmt.Errorf("genesis allocation %d: %w", i, err)
		}
		if res := tx.Mint(l, alloc.Token, account, alloc.Amount); !res.IsSuccess() {
			return fmt.Errorf("genesis allocation %d: %s", i, res)
		}
	}
	return nil
}
