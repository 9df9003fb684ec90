package swap

import (
	"testing"

	"github.com/provedex/goswapd/internal/core/keylet"
	"github.com/provedex/goswapd/internal/core/ledger"
	"github.com/provedex/goswapd/internal/core/tx"
	"github.com/stretchr/testify/require"
)

// setupPool funds alice and creates a (5, 7) pool with the given reserves.
func setupPool(t *testing.T, reserveA, reserveB uint64) (*ledger.Ledger, *tx.Engine) {
	t.Helper()
	l, engine := newEngine(t)
	fund(t, l, 5, alice, 100000)
	fund(t, l, 7, alice, 100000)
	res := engine.Apply(NewPoolCreate(alice, 5, 7, reserveA, reserveB))
	require.Equal(t, tx.TesSUCCESS, res.Result)
	return l, engine
}

func TestLiquidityAddProportional(t *testing.T) {
	l, engine := setupPool(t, 1000, 2000)
	aliceID := mustAccount(t, alice)
	poolAccount := tx.AccountID(keylet.PoolAccountID(5, 7))
	lpToken := keylet.LPTokenID(5, 7)

	// Depositing 100 of token 5 requires 100*2000/1000 = 200 of token 7
	res := engine.Apply(NewLiquidityAdd(alice, 5, 7, 100, 200))
	require.Equal(t, tx.TesSUCCESS, res.Result)

	require.Equal(t, uint64(1100), l.BalanceOf(5, poolAccount))
	require.Equal(t, uint64(2200), l.BalanceOf(7, poolAccount))

	// Shares: min(100*1000/1000, 200*1000/2000) = 100
	require.Equal(t, uint64(1100), l.BalanceOf(lpToken, aliceID))
	require.Equal(t, uint64(1100), l.SupplyOf(lpToken))
}

func TestLiquidityAddSlippageGuardRollsBack(t *testing.T) {
	l, engine := setupPool(t, 1000, 2000)
	aliceID := mustAccount(t, alice)

	balanceA := l.BalanceOf(5, aliceID)
	balanceB := l.BalanceOf(7, aliceID)

	// Required amountB is 200, cap is 199
	res := engine.Apply(NewLiquidityAdd(alice, 5, 7, 100, 199))
	require.Equal(t, tx.TecINSUFFICIENT_ALLOWANCE, res.Result)

	require.Equal(t, balanceA, l.BalanceOf(5, aliceID))
	require.Equal(t, balanceB, l.BalanceOf(7, aliceID))
}

func TestLiquidityAddUnknownPool(t *testing.T) {
	_, engine := newEngine(t)
	res := engine.Apply(NewLiquidityAdd(alice, 5, 7, 100, 200))
	require.Equal(t, tx.TecNO_POOL, res.Result)
}

func TestLiquidityAddZeroShares(t *testing.T) {
	// A huge pool with tiny LP supply floors small deposits to zero shares.
	l, engine := newEngine(t)
	fund(t, l, 5, alice, 200000)
	fund(t, l, 7, alice, 200000)
	require.Equal(t, tx.TesSUCCESS,
		engine.Apply(NewPoolCreate(alice, 5, 7, 100000, 2)).Result)

	// 1 of token 5 needs floor(1*2/100000) = 0 of token 7 and mints
	// min(1*2/100000, 0*2/2) = 0 shares.
	res := engine.Apply(NewLiquidityAdd(alice, 5, 7, 1, 10))
	require.Equal(t, tx.TecZERO_LIQUIDITY, res.Result)
	require.Equal(t, "Insufficient balances", res.Result.Message())
}

func TestLiquidityRoundTrip(t *testing.T) {
	l, engine := setupPool(t, 1000, 2000)
	aliceID := mustAccount(t, alice)
	poolAccount := tx.AccountID(keylet.PoolAccountID(5, 7))
	lpToken := keylet.LPTokenID(5, 7)

	balanceA := l.BalanceOf(5, aliceID)
	balanceB := l.BalanceOf(7, aliceID)
	shares := l.BalanceOf(lpToken, aliceID)

	require.Equal(t, tx.TesSUCCESS, engine.Apply(NewLiquidityAdd(alice, 5, 7, 100, 200)).Result)
	minted := l.BalanceOf(lpToken, aliceID) - shares

	require.Equal(t, tx.TesSUCCESS,
		engine.Apply(NewLiquidityRemove(alice, 5, 7, minted, 0, 0)).Result)

	// Back to the pre-add balances (floor rounding tolerance of 1 per token)
	require.InDelta(t, float64(balanceA), float64(l.BalanceOf(5, aliceID)), 1)
	require.InDelta(t, float64(balanceB), float64(l.BalanceOf(7, aliceID)), 1)
	require.Equal(t, shares, l.BalanceOf(lpToken, aliceID))

	require.InDelta(t, 1000, float64(l.BalanceOf(5, poolAccount)), 1)
	require.InDelta(t, 2000, float64(l.BalanceOf(7, poolAccount)), 1)
}

func TestLiquidityRemoveSlippageGuards(t *testing.T) {
	_, engine := setupPool(t, 1000, 2000)

	// 100 shares of 1000 withdraw 100 of token 5 and 200 of token 7
	res := engine.Apply(NewLiquidityRemove(alice, 5, 7, 100, 101, 0))
	require.Equal(t, tx.TecINSUFFICIENT_A_AMOUNT, res.Result)

	res = engine.Apply(NewLiquidityRemove(alice, 5, 7, 100, 0, 201))
	require.Equal(t, tx.TecINSUFFICIENT_B_AMOUNT, res.Result)

	res = engine.Apply(NewLiquidityRemove(alice, 5, 7, 100, 100, 200))
	require.Equal(t, tx.TesSUCCESS, res.Result)
}

func TestLiquidityRemoveMoreThanOwned(t *testing.T) {
	l, engine := setupPool(t, 1000, 2000)
	lpToken := keylet.LPTokenID(5, 7)

	owned := l.BalanceOf(lpToken, mustAccount(t, alice))
	res := engine.Apply(NewLiquidityRemove(bob, 5, 7, owned, 0, 0))
	require.Equal(t, tx.TecINSUFFICIENT_BALANCE, res.Result)
}

func TestDrainedPoolStaysRegisteredAndRejectsAdds(t *testing.T) {
	l, engine := setupPool(t, 1000, 2000)
	lpToken := keylet.LPTokenID(5, 7)
	poolAccount := tx.AccountID(keylet.PoolAccountID(5, 7))

	owned := l.BalanceOf(lpToken, mustAccount(t, alice))
	require.Equal(t, tx.TesSUCCESS,
		engine.Apply(NewLiquidityRemove(alice, 5, 7, owned, 0, 0)).Result)

	require.Equal(t, uint64(0), l.BalanceOf(5, poolAccount))
	require.Equal(t, uint64(0), l.BalanceOf(7, poolAccount))
	require.True(t, l.PoolExists(5, 7), "drained pools keep their registry entry")

	// Pricing against an empty pool has no ratio; the deposit is rejected
	res := engine.Apply(NewLiquidityAdd(alice, 5, 7, 100, 200))
	require.Equal(t, tx.TecDIVISION_BY_ZERO, res.Result)

	// And so is re-creation, since the registry entry persists
	res = engine.Apply(NewPoolCreate(alice, 5, 7, 1000, 2000))
	require.Equal(t, tx.TecPOOL_EXISTS, res.Result)
}
