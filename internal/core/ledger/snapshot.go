package ledger

import (
	"encoding/binary"
	"fmt"

	"github.com/provedex/goswapd/internal/core/keylet"
	"github.com/provedex/goswapd/internal/storage/kvstore"
)

// Snapshot layout in the kv store:
//
//	"m:seq"         -> ledger sequence, big-endian u32
//	"e:" || key[32] -> kind byte || entry data
//
// Save replaces the whole snapshot in one atomic batch, so a crash mid-flush
// leaves the previous snapshot intact.
const (
	metaSeqKey  = "m:seq"
	entryPrefix = "e:"
)

// Save persists the full committed state to the store.
func (l *Ledger) Save(store *kvstore.Store) error {
	l.mu.RLock()
	defer l.mu.RUnlock()

	seqValue := make([]byte, 4)
	binary.BigEndian.PutUint32(seqValue, l.seq)

	ops := make([]kvstore.BatchOp, 0, len(l.entries)+1)

	// Drop entries erased since the last snapshot.
	err := store.ForEach(func(key, _ []byte) error {
		if len(key) != len(entryPrefix)+32 || string(key[:len(entryPrefix)]) != entryPrefix {
			return nil
		}
		var stateKey [32]byte
		copy(stateKey[:], key[len(entryPrefix):])
		if _, ok := l.entries[stateKey]; !ok {
			staleKey := make([]byte, len(key))
			copy(staleKey, key)
			ops = append(ops, kvstore.BatchOp{Type: kvstore.BatchDelete, Key: staleKey})
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("scan snapshot: %w", err)
	}

	ops = append(ops, kvstore.BatchOp{Type: kvstore.BatchPut, Key: []byte(metaSeqKey), Value: seqValue})
	for stateKey, e := range l.entries {
		key := make([]byte, 0, len(entryPrefix)+32)
		key = append(key, entryPrefix...)
		key = append(key, stateKey[:]...)

		value := make([]byte, 0, 1+len(e.data))
		value = append(value, byte(e.keylet.Kind))
		value = append(value, e.data...)

		ops = append(ops, kvstore.BatchOp{Type: kvstore.BatchPut, Key: key, Value: value})
	}

	if err := store.Batch(ops); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return store.Sync()
}

// Load restores a ledger from a snapshot. It returns (nil, false, nil) when
// the store holds no snapshot, which a fresh node treats as "run genesis".
func Load(store *kvstore.Store) (*Ledger, bool, error) {
	seqValue, err := store.Get([]byte(metaSeqKey))
	if err == kvstore.ErrNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read snapshot sequence: %w", err)
	}
	if len(seqValue) != 4 {
		return nil, false, fmt.Errorf("malformed snapshot sequence entry (%d bytes)", len(seqValue))
	}

	l := New()
	l.seq = binary.BigEndian.Uint32(seqValue)

	err = store.ForEach(func(key, value []byte) error {
		if len(key) != len(entryPrefix)+32 || string(key[:len(entryPrefix)]) != entryPrefix {
			return nil
		}
		if len(value) < 1 {
			return fmt.Errorf("empty snapshot entry")
		}
		k := keylet.Keylet{Kind: keylet.Kind(value[0])}
		copy(k.Key[:], key[len(entryPrefix):])

		data := make([]byte, len(value)-1)
		copy(data, value[1:])
		l.entries[k.Key] = entry{keylet: k, data: data}
		return nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("read snapshot entries: %w", err)
	}
	return l, true, nil
}
