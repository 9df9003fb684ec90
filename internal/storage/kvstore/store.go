package kvstore

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Store wraps a backend with value compression and an LRU read cache.
// The cache holds decompressed values keyed by the raw key bytes.
type Store struct {
	backend DB
	cache   *lru.Cache[string, []byte]

	hits   uint64
	misses uint64
}

// StoreStats reports cache effectiveness and the underlying backend.
type StoreStats struct {
	Backend   string
	CacheLen  int
	CacheHits uint64
	CacheMiss uint64
}

// NewStore opens the named backend at path and layers a cache of cacheSize
// entries on top. A cacheSize of zero disables caching.
func NewStore(backendName, path string, cacheSize int) (*Store, error) {
	backend, err := OpenBackend(backendName, path)
	if err != nil {
		return nil, err
	}

	var cache *lru.Cache[string, []byte]
	if cacheSize > 0 {
		cache, err = lru.New[string, []byte](cacheSize)
		if err != nil {
			backend.Close()
			return nil, err
		}
	}
	return &Store{backend: backend, cache: cache}, nil
}

// Get returns the value for key, serving from cache when possible.
func (s *Store) Get(key []byte) ([]byte, error) {
	if s.cache != nil {
		if value, ok := s.cache.Get(string(key)); ok {
			atomic.AddUint64(&s.hits, 1)
			out := make([]byte, len(value))
			copy(out, value)
			return out, nil
		}
		atomic.AddUint64(&s.misses, 1)
	}

	framed, err := s.backend.Get(key)
	if err != nil {
		return nil, err
	}
	value, err := decompressValue(framed)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Add(string(key), value)
	}
	return value, nil
}

// Put stores value under key.
func (s *Store) Put(key, value []byte) error {
	framed, err := compressValue(value)
	if err != nil {
		return err
	}
	if err := s.backend.Put(key, framed); err != nil {
		return err
	}
	if s.cache != nil {
		stored := make([]byte, len(value))
		copy(stored, value)
		s.cache.Add(string(key), stored)
	}
	return nil
}

// Delete removes key from the backend and cache.
func (s *Store) Delete(key []byte) error {
	if err := s.backend.Delete(key); err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.Remove(string(key))
	}
	return nil
}

// Batch applies ops atomically, compressing put values.
func (s *Store) Batch(ops []BatchOp) error {
	framedOps := make([]BatchOp, len(ops))
	for i, op := range ops {
		framedOps[i] = op
		if op.Type == BatchPut {
			framed, err := compressValue(op.Value)
			if err != nil {
				return err
			}
			framedOps[i].Value = framed
		}
	}
	if err := s.backend.Batch(framedOps); err != nil {
		return err
	}
	if s.cache != nil {
		for _, op := range ops {
			switch op.Type {
			case BatchPut:
				stored := make([]byte, len(op.Value))
				copy(stored, op.Value)
				s.cache.Add(string(op.Key), stored)
			case BatchDelete:
				s.cache.Remove(string(op.Key))
			}
		}
	}
	return nil
}

// ForEach iterates over all entries with decompressed values.
func (s *Store) ForEach(fn func(key, value []byte) error) error {
	return s.backend.ForEach(func(key, framed []byte) error {
		value, err := decompressValue(framed)
		if err != nil {
			return err
		}
		return fn(key, value)
	})
}

// Sync flushes the backend.
func (s *Store) Sync() error { return s.backend.Sync() }

// Close flushes and closes the backend.
func (s *Store) Close() error { return s.backend.Close() }

// BackendName identifies the backend serving this store.
func (s *Store) BackendName() string { return s.backend.Name() }

// Stats returns cache and backend statistics.
func (s *Store) Stats() StoreStats {
	stats := StoreStats{
		Backend:   s.backend.Name(),
		CacheHits: atomic.LoadUint64(&s.hits),
		CacheMiss: atomic.LoadUint64(&s.misses),
	}
	if s.cache != nil {
		stats.CacheLen = s.cache.Len()
	}
	return stats
}
