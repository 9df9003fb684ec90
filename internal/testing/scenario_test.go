package testing_test

import (
	"testing"

	"github.com/provedex/goswapd/internal/core/tx"
	"github.com/provedex/goswapd/internal/core/tx/swap"
	"github.com/provedex/goswapd/internal/core/tx/token"
	jtx "github.com/provedex/goswapd/internal/testing"
	"github.com/stretchr/testify/require"
)

func TestAdminLifecycle(t *testing.T) {
	env := jtx.NewEnv(t)
	alice := env.Account("alice")
	bob := env.Account("bob")

	// Minting before any admin exists is rejected.
	env.Require(token.NewAdminMint(alice.Address, 5, bob.Address, 100), tx.TecNOT_ADMIN)
	env.RequireBalance(bob, 5, 0)

	// First claim wins; afterwards only the admin may reassign.
	env.Require(token.NewAdminSet(alice.Address, alice.Address), tx.TesSUCCESS)
	env.Require(token.NewAdminSet(bob.Address, bob.Address), tx.TecNOT_ADMIN)
	env.Require(token.NewAdminSet(alice.Address, bob.Address), tx.TesSUCCESS)

	env.Require(token.NewAdminMint(bob.Address, 5, bob.Address, 100), tx.TesSUCCESS)
	env.RequireBalance(bob, 5, 100)
}

func TestPoolCreationScenario(t *testing.T) {
	env := jtx.NewEnv(t)
	alice := env.Account("alice")
	env.Require(token.NewAdminSet(alice.Address, alice.Address), tx.TesSUCCESS)
	env.Require(token.NewAdminMint(alice.Address, 5, alice.Address, 10000), tx.TesSUCCESS)
	env.Require(token.NewAdminMint(alice.Address, 7, alice.Address, 10000), tx.TesSUCCESS)

	env.Require(swap.NewPoolCreate(alice.Address, 5, 7, 1000, 2000), tx.TesSUCCESS)

	env.RequireBalance(alice, 5, 9000)
	env.RequireBalance(alice, 7, 8000)

	lp := env.LPToken(5, 7)
	env.RequireBalance(alice, lp, 1000)
	env.RequireSupply(lp, 1000)

	reserveA, reserveB := env.Reserves(5, 7)
	require.Equal(t, uint64(1000), reserveA)
	require.Equal(t, uint64(2000), reserveB)

	res := env.Submit(swap.NewPoolCreate(alice.Address, 7, 5, 1, 1))
	require.Equal(t, tx.TecPOOL_EXISTS, res.Result)
	require.Equal(t, "Pool already exists", res.Message)
}

func TestSlippageGuardLeavesNoTrace(t *testing.T) {
	env := jtx.NewEnv(t)
	alice := env.Account("alice")
	env.Fund(alice, 5, 10000)
	env.Fund(alice, 7, 10000)
	env.Require(swap.NewPoolCreate(alice.Address, 5, 7, 1000, 2000), tx.TesSUCCESS)

	balanceA := env.Balance(alice, 5)
	balanceB := env.Balance(alice, 7)
	lp := env.LPToken(5, 7)
	shares := env.Balance(alice, lp)

	res := env.Submit(swap.NewLiquidityAdd(alice.Address, 5, 7, 100, 150))
	require.Equal(t, tx.TecINSUFFICIENT_ALLOWANCE, res.Result)
	require.Equal(t, "Insufficient allowance", res.Message)

	env.RequireBalance(alice, 5, balanceA)
	env.RequireBalance(alice, 7, balanceB)
	env.RequireBalance(alice, lp, shares)
	reserveA, reserveB := env.Reserves(5, 7)
	require.Equal(t, uint64(1000), reserveA)
	require.Equal(t, uint64(2000), reserveB)
}

func TestFullLifecycleConservesSupply(t *testing.T) {
	env := jtx.NewEnv(t)
	alice := env.Account("alice")
	bob := env.Account("bob")
	env.Fund(alice, 5, 10000)
	env.Fund(alice, 7, 10000)
	env.Fund(bob, 5, 1000)

	env.Require(swap.NewPoolCreate(alice.Address, 5, 7, 1000, 2000), tx.TesSUCCESS)
	env.Require(swap.NewLiquidityAdd(alice.Address, 5, 7, 500, 1000), tx.TesSUCCESS)
	env.Require(swap.NewSwapExactIn(bob.Address, 100, 1, []uint64{5, 7}), tx.TesSUCCESS)

	lp := env.LPToken(5, 7)
	shares := env.Balance(alice, lp)
	env.Require(swap.NewLiquidityRemove(alice.Address, 5, 7, shares, 0, 0), tx.TesSUCCESS)

	// Tokens only move between accounts; supplies never change after
	// funding, and every LP share has been burned.
	env.RequireSupply(5, 11000)
	env.RequireSupply(7, 10000)
	env.RequireSupply(lp, 0)

	pool := env.PoolAccount(5, 7)
	total5 := env.Balance(alice, 5) + env.Balance(bob, 5) + env.Balance(pool, 5)
	total7 := env.Balance(alice, 7) + env.Balance(bob, 7) + env.Balance(pool, 7)
	require.Equal(t, uint64(11000), total5)
	require.Equal(t, uint64(10000), total7)

	// Bob paid 100 of token 5 and received the priced amount of token 7.
	env.RequireBalance(bob, 5, 900)
	require.NotZero(t, env.Balance(bob, 7))
}

func TestMultiHopThroughTwoPools(t *testing.T) {
	env := jtx.NewEnv(t)
	alice := env.Account("alice")
	carol := env.Account("carol")
	env.Fund(alice, 5, 100000)
	env.Fund(alice, 7, 100000)
	env.Fund(alice, 9, 100000)
	env.Fund(carol, 5, 1000)

	env.Require(swap.NewPoolCreate(alice.Address, 5, 7, 1000, 2000), tx.TesSUCCESS)
	env.Require(swap.NewPoolCreate(alice.Address, 7, 9, 2000, 4000), tx.TesSUCCESS)

	env.Require(swap.NewSwapExactIn(carol.Address, 100, 331, []uint64{5, 7, 9}), tx.TesSUCCESS)
	env.RequireBalance(carol, 9, 331)
	env.RequireBalance(carol, 5, 900)

	// Carol never holds the intermediate token.
	env.RequireBalance(carol, 7, 0)
}

func TestDeterministicAccounts(t *testing.T) {
	a1 := jtx.NewAccount("alice")
	a2 := jtx.NewAccount("alice")
	b := jtx.NewAccount("bob")

	require.Equal(t, a1.ID, a2.ID)
	require.NotEqual(t, a1.ID, b.ID)
	require.Len(t, a1.Address, 40)
}
