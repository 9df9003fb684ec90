// Package testing provides a ledger test environment for transaction
// scenario tests: named accounts, direct funding, submission helpers, and
// balance assertions. Import it aliased (conventionally jtx) to avoid
// shadowing the standard testing package.
package testing

import (
	"testing"

	"github.com/provedex/goswapd/internal/core/keylet"
	"github.com/provedex/goswapd/internal/core/ledger"
	"github.com/provedex/goswapd/internal/core/tx"
	_ "github.com/provedex/goswapd/internal/core/tx/all"
	"github.com/stretchr/testify/require"
)

// Env wraps a ledger and engine for scenario tests.
type Env struct {
	T      *testing.T
	Ledger *ledger.Ledger

	accounts map[string]*Account
}

// NewEnv creates an environment over an empty ledger.
func NewEnv(t *testing.T) *Env {
	t.Helper()
	return &Env{
		T:        t,
		Ledger:   ledger.New(),
		accounts: make(map[string]*Account),
	}
}

// Account returns the named account, creating it on first use.
func (e *Env) Account(name string) *Account {
	if a, ok := e.accounts[name]; ok {
		return a
	}
	a := NewAccount(name)
	e.accounts[name] = a
	return a
}

// Fund mints amount of token directly to the account, bypassing the admin
// gate. Scenario setup only.
func (e *Env) Fund(account *Account, token, amount uint64) {
	e.T.Helper()
	res := tx.Mint(e.Ledger, token, account.ID, amount)
	require.True(e.T, res.IsSuccess(), "fund %s: %s", account.Name, res)
}

// Submit applies a transaction through the engine and closes a ledger when
// it leaves a record.
func (e *Env) Submit(txn tx.Transaction) tx.ApplyResult {
	e.T.Helper()
	engine := tx.NewEngine(e.Ledger, tx.EngineConfig{LedgerSequence: e.Ledger.Sequence()})
	res := engine.Apply(txn)
	if res.Applied {
		e.Ledger.Close()
	}
	return res
}

// Require submits txn and fails the test unless it yields want.
func (e *Env) Require(txn tx.Transaction, want tx.Result) tx.ApplyResult {
	e.T.Helper()
	res := e.Submit(txn)
	require.Equal(e.T, want, res.Result,
		"want %s, got %s (%s)", want, res.Result, res.Message)
	return res
}

// Balance returns the committed balance of account in token.
func (e *Env) Balance(account *Account, token uint64) uint64 {
	return e.Ledger.BalanceOf(token, account.ID)
}

// RequireBalance asserts a committed balance.
func (e *Env) RequireBalance(account *Account, token, want uint64) {
	e.T.Helper()
	require.Equal(e.T, want, e.Balance(account, token),
		"%s balance of token %d", account.Name, token)
}

// RequireSupply asserts a committed total supply.
func (e *Env) RequireSupply(token, want uint64) {
	e.T.Helper()
	require.Equal(e.T, want, e.Ledger.SupplyOf(token), "supply of token %d", token)
}

// PoolAccount returns the pool's derived account for an unordered pair.
func (e *Env) PoolAccount(tokenA, tokenB uint64) *Account {
	id := tx.AccountID(keylet.PoolAccountID(tokenA, tokenB))
	return &Account{Name: "pool", ID: id, Address: id.String()}
}

// LPToken returns the LP token id for an unordered pair.
func (e *Env) LPToken(tokenA, tokenB uint64) uint64 {
	return keylet.LPTokenID(tokenA, tokenB)
}

// Reserves returns the pool's committed reserves in (tokenA, tokenB) order.
func (e *Env) Reserves(tokenA, tokenB uint64) (uint64, uint64) {
	pool := e.PoolAccount(tokenA, tokenB)
	return e.Balance(pool, tokenA), e.Balance(pool, tokenB)
}
