package testing

import (
	"github.com/provedex/goswapd/internal/core/tx"
	"github.com/provedex/goswapd/internal/crypto"
)

// Account is a named test account. The 20-byte id is derived
// deterministically from the name, so the same name always yields the same
// account across runs.
type Account struct {
	Name    string
	ID      tx.AccountID
	Address string
}

// NewAccount creates a deterministic test account.
func NewAccount(name string) *Account {
	h := crypto.Sha512Half([]byte("test-account"), []byte(name))
	var id tx.AccountID
	copy(id[:], h[:20])
	return &Account{
		Name:    name,
		ID:      id,
		Address: id.String(),
	}
}
