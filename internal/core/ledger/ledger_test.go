package ledger

import (
	"strings"
	"testing"

	"github.com/provedex/goswapd/internal/core/keylet"
	"github.com/provedex/goswapd/internal/core/tx"
	"github.com/provedex/goswapd/internal/storage/kvstore"
	"github.com/stretchr/testify/require"
)

var (
	aliceHex = strings.Repeat("aa", 20)
	bobHex   = strings.Repeat("bb", 20)
)

func account(t *testing.T, hex string) tx.AccountID {
	t.Helper()
	id, err := tx.DecodeAccountID(hex)
	require.NoError(t, err)
	return id
}

func TestLedgerEntryLifecycle(t *testing.T) {
	l := New()
	require.Equal(t, uint32(1), l.Sequence())
	require.Equal(t, 0, l.EntryCount())

	k := keylet.Supply(5)
	require.NoError(t, l.Insert(k, []byte{1, 2, 3}))
	require.Error(t, l.Insert(k, []byte{9}), "double insert")

	data, err := l.Read(k)
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3}, data)

	require.NoError(t, l.Update(k, []byte{4}))
	require.NoError(t, l.Erase(k))
	require.Error(t, l.Erase(k), "double erase")
	require.Error(t, l.Update(k, []byte{5}), "update after erase")

	data, err = l.Read(k)
	require.NoError(t, err)
	require.Nil(t, data)
}

func TestLedgerClose(t *testing.T) {
	l := New()
	require.Equal(t, uint32(2), l.Close())
	require.Equal(t, uint32(3), l.Close())
	require.Equal(t, uint32(3), l.Sequence())
}

func TestApplyGenesis(t *testing.T) {
	l := New()
	err := l.ApplyGenesis(Genesis{
		Admin: aliceHex,
		Allocations: []Allocation{
			{Token: 5, Account: aliceHex, Amount: 10000},
			{Token: 5, Account: bobHex, Amount: 500},
			{Token: 7, Account: aliceHex, Amount: 10000},
		},
	})
	require.NoError(t, err)

	admin, isSet := l.Admin()
	require.True(t, isSet)
	require.Equal(t, account(t, aliceHex), admin)

	require.Equal(t, uint64(10000), l.BalanceOf(5, account(t, aliceHex)))
	require.Equal(t, uint64(500), l.BalanceOf(5, account(t, bobHex)))
	require.Equal(t, uint64(10500), l.SupplyOf(5))
	require.Equal(t, uint64(10000), l.SupplyOf(7))
}

func TestApplyGenesisRejectsBadInput(t *testing.T) {
	cases := []struct {
		name string
		g    Genesis
	}{
		{"bad admin", Genesis{Admin: "nope"}},
		{"reserved token", Genesis{Allocations: []Allocation{{Token: 0, Account: aliceHex, Amount: 1}}}},
		{"zero amount", Genesis{Allocations: []Allocation{{Token: 5, Account: aliceHex, Amount: 0}}}},
		{"bad account", Genesis{Allocations: []Allocation{{Token: 5, Account: "xyz", Amount: 1}}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Error(t, New().ApplyGenesis(tc.g))
		})
	}
}

func TestApplyGenesisOnlyOnce(t *testing.T) {
	l := New()
	g := Genesis{Allocations: []Allocation{{Token: 5, Account: aliceHex, Amount: 1}}}
	require.NoError(t, l.ApplyGenesis(g))
	require.Error(t, l.ApplyGenesis(g))
}

func TestSnapshotRoundTrip(t *testing.T) {
	store, err := kvstore.NewStore("memory", "", 0)
	require.NoError(t, err)
	defer store.Close()

	l := New()
	require.NoError(t, l.ApplyGenesis(Genesis{
		Admin: aliceHex,
		Allocations: []Allocation{
			{Token: 5, Account: aliceHex, Amount: 10000},
			{Token: 7, Account: bobHex, Amount: 2000},
		},
	}))
	l.Close()
	l.Close()

	require.NoError(t, l.Save(store))

	restored, ok, err := Load(store)
	require.NoError(t, err)
	require.True(t, ok)

	require.Equal(t, l.Sequence(), restored.Sequence())
	require.Equal(t, l.EntryCount(), restored.EntryCount())
	require.Equal(t, uint64(10000), restored.BalanceOf(5, account(t, aliceHex)))
	require.Equal(t, uint64(2000), restored.BalanceOf(7, account(t, bobHex)))
	require.Equal(t, uint64(10000), restored.SupplyOf(5))

	admin, isSet := restored.Admin()
	require.True(t, isSet)
	require.Equal(t, account(t, aliceHex), admin)
}

func TestSnapshotDropsErasedEntries(t *testing.T) {
	store, err := kvstore.NewStore("memory", "", 0)
	require.NoError(t, err)
	defer store.Close()

	l := New()
	k := keylet.Supply(9)
	require.NoError(t, l.Insert(k, []byte{0, 0, 0, 0, 0, 0, 0, 1}))
	require.NoError(t, l.Save(store))

	require.NoError(t, l.Erase(k))
	require.NoError(t, l.Save(store))

	restored, ok, err := Load(store)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 0, restored.EntryCount())
}

func TestLoadWithoutSnapshot(t *testing.T) {
	store, err := kvstore.NewStore("memory", "", 0)
	require.NoError(t, err)
	defer store.Close()

	l, ok, err := Load(store)
	require.NoError(t, err)
	require.False(t, ok)
	require.Nil(t, l)
}
