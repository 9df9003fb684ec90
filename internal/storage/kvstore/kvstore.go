// Package kvstore provides the persistent key-value layer the node flushes
// committed ledger state into. Backends register themselves by name and are
// selected through configuration; a Store wraps the chosen backend with an
// LRU read cache and optional value compression.
package kvstore

import (
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrClosed is returned when operating on a closed backend.
	ErrClosed = errors.New("kvstore is closed")

	// ErrNotFound is returned when a key does not exist.
	ErrNotFound = errors.New("key not found")
)

// DB defines the operations every backend must support.
type DB interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(key []byte) ([]byte, error)

	// Put stores value under key, overwriting any previous value.
	Put(key, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(key []byte) error

	// Batch applies all operations atomically.
	Batch(ops []BatchOp) error

	// ForEach calls fn for every key/value pair. Iteration stops on the
	// first error, which is returned.
	ForEach(fn func(key, value []byte) error) error

	// Sync flushes pending writes to stable storage.
	Sync() error

	// Close releases all resources held by the backend.
	Close() error

	// Name identifies the backend.
	Name() string
}

// BatchOpType distinguishes puts from deletes inside a batch.
type BatchOpType int

const (
	BatchPut BatchOpType = iota
	BatchDelete
)

// BatchOp is a single operation in an atomic batch.
type BatchOp struct {
	Type  BatchOpType
	Key   []byte
	Value []byte
}

// Factory creates a backend rooted at path.
type Factory func(path string) (DB, error)

var (
	factoryMu sync.RWMutex
	factories = make(map[string]Factory)
)

// RegisterBackend makes a backend available under name.
func RegisterBackend(name string, factory Factory) {
	factoryMu.Lock()
	defer factoryMu.Unlock()
	factories[name] = factory
}

// OpenBackend creates the named backend at path.
func OpenBackend(name, path string) (DB, error) {
	factoryMu.RLock()
	factory, ok := factories[name]
	factoryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unknown kvstore backend: %s", name)
	}
	return factory(path)
}

// AvailableBackends lists the registered backend names.
func AvailableBackends() []string {
	factoryMu.RLock()
	defer factoryMu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	return names
}
