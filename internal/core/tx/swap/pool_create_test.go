package swap

import (
	"strings"
	"testing"

	"github.com/provedex/goswapd/internal/core/keylet"
	"github.com/provedex/goswapd/internal/core/ledger"
	"github.com/provedex/goswapd/internal/core/tx"
	"github.com/stretchr/testify/require"
)

var (
	alice = strings.Repeat("aa", 20)
	bob   = strings.Repeat("bb", 20)
)

func newEngine(t *testing.T) (*ledger.Ledger, *tx.Engine) {
	t.Helper()
	l := ledger.New()
	return l, tx.NewEngine(l, tx.EngineConfig{LedgerSequence: l.Sequence()})
}

func mustAccount(t *testing.T, s string) tx.AccountID {
	t.Helper()
	id, err := tx.DecodeAccountID(s)
	require.NoError(t, err)
	return id
}

func fund(t *testing.T, l *ledger.Ledger, token uint64, account string, amount uint64) {
	t.Helper()
	require.Equal(t, tx.TesSUCCESS, tx.Mint(l, token, mustAccount(t, account), amount))
}

func TestPoolCreate(t *testing.T) {
	l, engine := newEngine(t)
	fund(t, l, 5, alice, 10000)
	fund(t, l, 7, alice, 10000)

	res := engine.Apply(NewPoolCreate(alice, 5, 7, 1000, 2000))
	require.Equal(t, tx.TesSUCCESS, res.Result)

	aliceID := mustAccount(t, alice)
	poolAccount := tx.AccountID(keylet.PoolAccountID(5, 7))
	lpToken := keylet.LPTokenID(5, 7)

	require.Equal(t, uint64(9000), l.BalanceOf(5, aliceID))
	require.Equal(t, uint64(8000), l.BalanceOf(7, aliceID))
	require.Equal(t, uint64(1000), l.BalanceOf(5, poolAccount))
	require.Equal(t, uint64(2000), l.BalanceOf(7, poolAccount))

	// Initial shares are min(supplyA, supplyB), all to the creator
	require.Equal(t, uint64(1000), l.BalanceOf(lpToken, aliceID))
	require.Equal(t, uint64(1000), l.SupplyOf(lpToken))

	require.True(t, l.PoolExists(5, 7))
	require.True(t, l.PoolExists(7, 5))
}

func TestPoolCreateIdempotenceGuard(t *testing.T) {
	l, engine := newEngine(t)
	fund(t, l, 5, alice, 10000)
	fund(t, l, 7, alice, 10000)

	require.Equal(t, tx.TesSUCCESS, engine.Apply(NewPoolCreate(alice, 5, 7, 1000, 2000)).Result)

	// Re-creation fails regardless of argument order
	res := engine.Apply(NewPoolCreate(alice, 5, 7, 1, 1))
	require.Equal(t, tx.TecPOOL_EXISTS, res.Result)
	require.Equal(t, "Pool already exists", res.Message)

	res = engine.Apply(NewPoolCreate(alice, 7, 5, 1, 1))
	require.Equal(t, tx.TecPOOL_EXISTS, res.Result)
}

func TestPoolCreateBoundaries(t *testing.T) {
	_, engine := newEngine(t)

	res := engine.Apply(NewPoolCreate(alice, 5, 5, 1000, 2000))
	require.Equal(t, tx.TemTOKENS_MATCH, res.Result)

	res = engine.Apply(NewPoolCreate(alice, 5, 7, 0, 2000))
	require.Equal(t, tx.TemZERO_SUPPLY, res.Result)

	res = engine.Apply(NewPoolCreate(alice, 5, 7, 1000, 0))
	require.Equal(t, tx.TemZERO_SUPPLY, res.Result)

	res = engine.Apply(NewPoolCreate(alice, 0, 7, 1000, 2000))
	require.Equal(t, tx.TemBAD_TOKEN, res.Result)
}

func TestPoolCreateInsufficientFundsRollsBack(t *testing.T) {
	l, engine := newEngine(t)
	fund(t, l, 5, alice, 10000)
	// No token 7 balance at all

	res := engine.Apply(NewPoolCreate(alice, 5, 7, 1000, 2000))
	require.Equal(t, tx.TecINSUFFICIENT_BALANCE, res.Result)

	// The partial token-5 transfer was discarded with the transaction
	require.Equal(t, uint64(10000), l.BalanceOf(5, mustAccount(t, alice)))
	require.False(t, l.PoolExists(5, 7))
	require.Equal(t, uint64(0), l.SupplyOf(keylet.LPTokenID(5, 7)))
}
