package kvstore

import (
	"fmt"
	"os"
	"sync/atomic"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/bloom"
)

// pebbleDB is the default persistent backend. State keys are 32-byte hashes
// looked up individually, so the options lean on point-lookup performance:
// bloom filters on every level and no pebble-side compression (the Store
// compresses values before they reach the backend).
type pebbleDB struct {
	db     *pebble.DB
	path   string
	closed int32
}

func init() {
	RegisterBackend("pebble", newPebbleDB)
}

func newPebbleDB(path string) (DB, error) {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("create kvstore directory %s: %w", path, err)
	}

	opts := &pebble.Options{
		Cache:        pebble.NewCache(64 << 20),
		MemTableSize: 16 << 20,
		Levels:       make([]pebble.LevelOptions, 7),
	}
	for i := range opts.Levels {
		opts.Levels[i] = pebble.LevelOptions{
			BlockSize:    32 << 10,
			FilterPolicy: bloom.FilterPolicy(10),
			FilterType:   pebble.TableFilter,
			Compression:  pebble.NoCompression,
		}
	}

	db, err := pebble.Open(path, opts)
	if err != nil {
		return nil, fmt.Errorf("open pebble at %s: %w", path, err)
	}
	return &pebbleDB{db: db, path: path}, nil
}

func (p *pebbleDB) Name() string { return "pebble" }

func (p *pebbleDB) isClosed() bool { return atomic.LoadInt32(&p.closed) != 0 }

func (p *pebbleDB) Get(key []byte) ([]byte, error) {
	if p.isClosed() {
		return nil, ErrClosed
	}
	value, closer, err := p.db.Get(key)
	if err == pebble.ErrNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (p *pebbleDB) Put(key, value []byte) error {
	if p.isClosed() {
		return ErrClosed
	}
	return p.db.Set(key, value, pebble.NoSync)
}

func (p *pebbleDB) Delete(key []byte) error {
	if p.isClosed() {
		return ErrClosed
	}
	return p.db.Delete(key, pebble.NoSync)
}

func (p *pebbleDB) Batch(ops []BatchOp) error {
	if p.isClosed() {
		return ErrClosed
	}
	batch := p.db.NewBatch()
	defer batch.Close()

	for _, op := range ops {
		var err error
		switch op.Type {
		case BatchPut:
			err = batch.Set(op.Key, op.Value, nil)
		case BatchDelete:
			err = batch.Delete(op.Key, nil)
		}
		if err != nil {
			return err
		}
	}
	return batch.Commit(pebble.Sync)
}

func (p *pebbleDB) ForEach(fn func(key, value []byte) error) error {
	if p.isClosed() {
		return ErrClosed
	}
	iter, err := p.db.NewIter(nil)
	if err != nil {
		return err
	}
	defer iter.Close()

	for iter.First(); iter.Valid(); iter.Next() {
		key := make([]byte, len(iter.Key()))
		copy(key, iter.Key())
		value := make([]byte, len(iter.Value()))
		copy(value, iter.Value())
		if err := fn(key, value); err != nil {
			return err
		}
	}
	return iter.Error()
}

func (p *pebbleDB) Sync() error {
	if p.isClosed() {
		return ErrClosed
	}
	return p.db.Flush()
}

func (p *pebbleDB) Close() error {
	if !atomic.CompareAndSwapInt32(&p.closed, 0, 1) {
		return nil
	}
	if err := p.db.Flush(); err != nil {
		p.db.Close()
		return err
	}
	return p.db.Close()
}
