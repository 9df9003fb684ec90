package tx

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/provedex/goswapd/internal/core/keylet"
)

// Action represents the type of modification to a ledger entry
type Action int

const (
	// ActionCache means the entry was read but not modified
	ActionCache Action = iota
	// ActionInsert means a new entry was created
	ActionInsert
	// ActionModify means an existing entry was modified
	ActionModify
	// ActionErase means an entry was deleted
	ActionErase
)

// TrackedEntry represents a ledger entry being tracked for changes
type TrackedEntry struct {
	Keylet   keylet.Keylet
	Action   Action
	Original []byte // Original state (nil for inserts)
	Current  []byte // Current state (nil for deletes after erase)
}

// ApplyStateTable wraps a LedgerView and buffers all modifications made
// by one transaction. Nothing reaches the base view until Apply is
// called, which only happens on success; a rejected transaction's writes
// are discarded with the table. This is the whole-transaction atomicity
// guarantee: no partial ledger mutation is ever observable.
type ApplyStateTable struct {
	base  LedgerView
	items map[[32]byte]*TrackedEntry
}

// NewApplyStateTable creates a new ApplyStateTable wrapping the given base view
func NewApplyStateTable(base LedgerView) *ApplyStateTable {
	return &ApplyStateTable{
		base:  base,
		items: make(map[[32]byte]*TrackedEntry),
	}
}

// Read reads a ledger entry, tracking it as cached
func (t *ApplyStateTable) Read(k keylet.Keylet) ([]byte, error) {
	if entry, exists := t.items[k.Key]; exists {
		if entry.Action == ActionErase {
			return nil, nil
		}
		return entry.Current, nil
	}

	data, err := t.base.Read(k)
	if err != nil {
		return nil, err
	}

	// Only track entries that exist in the base
	if data != nil {
		t.items[k.Key] = &TrackedEntry{
			Keylet:   k,
			Action:   ActionCache,
			Original: data,
			Current:  data,
		}
	}

	return data, nil
}

// Exists checks if an entry exists
func (t *ApplyStateTable) Exists(k keylet.Keylet) (bool, error) {
	if entry, exists := t.items[k.Key]; exists {
		return entry.Action != ActionErase, nil
	}
	return t.base.Exists(k)
}

// Insert adds a new entry
func (t *ApplyStateTable) Insert(k keylet.Keylet, data []byte) error {
	if entry, exists := t.items[k.Key]; exists {
		if entry.Action != ActionErase {
			return fmt.Errorf("entry already exists")
		}
		// Re-inserting a deleted entry becomes a modify
		entry.Action = ActionModify
		entry.Current = data
		return nil
	}

	exists, err := t.base.Exists(k)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("entry already exists")
	}

	t.items[k.Key] = &TrackedEntry{
		Keylet:   k,
		Action:   ActionInsert,
		Original: nil,
		Current:  data,
	}

	return nil
}

// Update modifies an existing entry
func (t *ApplyStateTable) Update(k keylet.Keylet, data []byte) error {
	if entry, exists := t.items[k.Key]; exists {
		if entry.Action == ActionErase {
			return fmt.Errorf("entry not found (deleted)")
		}
		if entry.Action == ActionCache {
			entry.Action = ActionModify
		}
		// For insert, keep it as insert with new data
		entry.Current = data
		return nil
	}

	original, err := t.base.Read(k)
	if err != nil {
		return err
	}

	t.items[k.Key] = &TrackedEntry{
		Keylet:   k,
		Action:   ActionModify,
		Original: original,
		Current:  data,
	}

	return nil
}

// Erase removes an entry
func (t *ApplyStateTable) Erase(k keylet.Keylet) error {
	if entry, exists := t.items[k.Key]; exists {
		if entry.Action == ActionErase {
			return fmt.Errorf("entry already deleted")
		}
		if entry.Action == ActionInsert {
			// Insert then delete = no change, drop the tracking
			delete(t.items, k.Key)
			return nil
		}
		// Current keeps the state just before deletion
		entry.Action = ActionErase
		return nil
	}

	original, err := t.base.Read(k)
	if err != nil {
		return err
	}

	t.items[k.Key] = &TrackedEntry{
		Keylet:   k,
		Action:   ActionErase,
		Original: original,
		Current:  original,
	}

	return nil
}

// ForEach iterates over all state entries of the base view
func (t *ApplyStateTable) ForEach(fn func(key [32]byte, data []byte) bool) error {
	return t.base.ForEach(fn)
}

// Apply commits all buffered changes to the base view and returns the
// generated metadata describing the affected entries.
func (t *ApplyStateTable) Apply() (*Metadata, error) {
	metadata := &Metadata{
		AffectedNodes: make([]AffectedNode, 0),
	}

	for key, entry := range t.items {
		ledgerIndex := strings.ToUpper(hex.EncodeToString(key[:]))

		switch entry.Action {
		case ActionCache:
			// Read-only, skip
			continue

		case ActionInsert:
			metadata.AffectedNodes = append(metadata.AffectedNodes, AffectedNode{
				NodeType:        "CreatedNode",
				LedgerEntryType: entry.Keylet.Kind.String(),
				LedgerIndex:     ledgerIndex,
			})
			if err := t.base.Insert(entry.Keylet, entry.Current); err != nil {
				return nil, err
			}

		case ActionModify:
			if bytes.Equal(entry.Original, entry.Current) {
				continue
			}
			metadata.AffectedNodes = append(metadata.AffectedNodes, AffectedNode{
				NodeType:        "ModifiedNode",
				LedgerEntryType: entry.Keylet.Kind.String(),
				LedgerIndex:     ledgerIndex,
			})
			if err := t.base.Update(entry.Keylet, entry.Current); err != nil {
				return nil, err
			}

		case ActionErase:
			metadata.AffectedNodes = append(metadata.AffectedNodes, AffectedNode{
				NodeType:        "DeletedNode",
				LedgerEntryType: entry.Keylet.Kind.String(),
				LedgerIndex:     ledgerIndex,
			})
			if err := t.base.Erase(entry.Keylet); err != nil {
				return nil, err
			}
		}
	}

	return metadata, nil
}
