package kvstore

import (
	"fmt"
	"sync/atomic"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/errors"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/opt"
)

// levelDB is an alternative persistent backend with a smaller footprint than
// pebble, useful for test rigs and low-volume deployments.
type levelDB struct {
	db     *leveldb.DB
	closed int32
}

func init() {
	RegisterBackend("leveldb", newLevelDB)
}

func newLevelDB(path string) (DB, error) {
	opts := &opt.Options{
		Filter:      filter.NewBloomFilter(10),
		Compression: opt.NoCompression,
	}
	db, err := leveldb.OpenFile(path, opts)
	if err != nil {
		return nil, fmt.Errorf("open leveldb at %s: %w", path, err)
	}
	return &levelDB{db: db}, nil
}

func (l *levelDB) Name() string { return "leveldb" }

func (l *levelDB) isClosed() bool { return atomic.LoadInt32(&l.closed) != 0 }

func (l *levelDB) Get(key []byte) ([]byte, error) {
	if l.isClosed() {
		return nil, ErrClosed
	}
	value, err := l.db.Get(key, nil)
	if err == errors.ErrNotFound {
		return nil, ErrNotFound
	}
	return value, err
}

func (l *levelDB) Put(key, value []byte) error {
	if l.isClosed() {
		return ErrClosed
	}
	return l.db.Put(key, value, nil)
}

func (l *levelDB) Delete(key []byte) error {
	if l.isClosed() {
		return ErrClosed
	}
	return l.db.Delete(key, nil)
}

func (l *levelDB) Batch(ops []BatchOp) error {
	if l.isClosed() {
		return ErrClosed
	}
	batch := new(leveldb.Batch)
	for _, op := range ops {
		switch op.Type {
		case BatchPut:
			batch.Put(op.Key, op.Value)
		case BatchDelete:
			batch.Delete(op.Key)
		}
	}
	return l.db.Write(batch, &opt.WriteOptions{Sync: true})
}

func (l *levelDB) ForEach(fn func(key, value []byte) error) error {
	if l.isClosed() {
		return ErrClosed
	}
	iter := l.db.NewIterator(nil, nil)
	defer iter.Release()

	for iter.Next() {
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

func (l *levelDB) Sync() error {
	if l.isClosed() {
		return ErrClosed
	}
	// goleveldb has no explicit flush; synced batch writes cover durability.
	return nil
}

func (l *levelDB) Close() error {
	if !atomic.CompareAndSwapInt32(&l.closed, 0, 1) {
		return nil
	}
	return l.db.Close()
}
