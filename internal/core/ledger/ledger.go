package ledger

import (
	"fmt"
	"sync"

	"github.com/provedex/goswapd/internal/core/keylet"
	"github.com/provedex/goswapd/internal/core/tx"
)

// Ledger holds the committed state: every balance, supply, pool, and
// singleton entry keyed by its 32-byte keylet. Transactions mutate it
// only through the engine's apply path, which commits a whole
// transaction's writes at once or not at all.
type Ledger struct {
	mu      sync.RWMutex
	seq     uint32
	entries map[[32]byte]entry
}

type entry struct {
	keylet keylet.Keylet
	data   []byte
}

// New creates an empty ledger at sequence 1
func New() *Ledger {
	return &Ledger{
		seq:     1,
		entries: make(map[[32]byte]entry),
	}
}

// Sequence returns the current ledger sequence
func (l *Ledger) Sequence() uint32 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.seq
}

// Close advances the ledger sequence and returns the new value
func (l *Ledger) Close() uint32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seq++
	return l.seq
}

// EntryCount returns the number of state entries
func (l *Ledger) EntryCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Read reads a ledger entry. A missing entry yields (nil, nil).
func (l *Ledger) Read(k keylet.Keylet) ([]byte, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	e, ok := l.entries[k.Key]
	if !ok {
		return nil, nil
	}
	return e.data, nil
}

// Exists checks if an entry exists
func (l *Ledger) Exists(k keylet.Keylet) (bool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.entries[k.Key]
	return ok, nil
}

// Insert adds a new entry
func (l *Ledger) Insert(k keylet.Keylet, data []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.entries[k.Key]; ok {
		return fmt.Errorf("entry already exists")
	}
	l.entries[k.Key] = entry{keylet: k, data: data}
	return nil
}

// Update modifies an existing entry
func (l *Ledger) Update(k keylet.Keylet, data []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.entries[k.Key]; !ok {
		return fmt.Errorf("entry not found")
	}
	l.entries[k.Key] = entry{keylet: k, data: data}
	return nil
}

// Erase removes an entry
func (l *Ledger) Erase(k keylet.Keylet) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.entries[k.Key]; !ok {
		return fmt.Errorf("entry not found")
	}
	delete(l.entries, k.Key)
	return nil
}

// ForEach iterates over all state entries.
// If fn returns false, iteration stops early.
func (l *Ledger) ForEach(fn func(key [32]byte, data []byte) bool) error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for key, e := range l.entries {
		if !fn(key, e.data) {
			return nil
		}
	}
	return nil
}

// BalanceOf returns the committed balance of account in token
func (l *Ledger) BalanceOf(token uint64, account tx.AccountID) uint64 {
	balance, _ := tx.GetBalance(l, token, account)
	return balance
}

// SupplyOf returns the committed total supply of token
func (l *Ledger) SupplyOf(token uint64) uint64 {
	supply, _ := tx.GetSupply(l, token)
	return supply
}

// PoolExists reports whether a pool is registered for the unordered pair
func (l *Ledger) PoolExists(tokenA, tokenB uint64) bool {
	exists, _ := tx.PoolExists(l, tokenA, tokenB)
	return exists
}

// Admin returns the committed admin account and whether one is set
func (l *Ledger) Admin() (tx.AccountID, bool) {
	admin, isSet, _ := tx.GetAdmin(l)
	return admin, isSet
}

// SwapFeeEnabled reports whether the global swap fee switch is on
func (l *Ledger) SwapFeeEnabled() bool {
	enabled, _ := tx.SwapFeeEnabled(l)
	return enabled
}
