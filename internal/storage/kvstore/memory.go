package kvstore

import "sync"

// memoryDB keeps everything in a map. Used by tests and by nodes run with
// persistence disabled.
type memoryDB struct {
	mu     sync.RWMutex
	data   map[string][]byte
	closed bool
}

func init() {
	RegisterBackend("memory", func(string) (DB, error) {
		return &memoryDB{data: make(map[string][]byte)}, nil
	})
}

func (m *memoryDB) Name() string { return "memory" }

func (m *memoryDB) Get(key []byte) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrClosed
	}
	value, ok := m.data[string(key)]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (m *memoryDB) Put(key, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	stored := make([]byte, len(value))
	copy(stored, value)
	m.data[string(key)] = stored
	return nil
}

func (m *memoryDB) Delete(key []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	delete(m.data, string(key))
	return nil
}

func (m *memoryDB) Batch(ops []BatchOp) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	for _, op := range ops {
		switch op.Type {
		case BatchPut:
			stored := make([]byte, len(op.Value))
			copy(stored, op.Value)
			m.data[string(op.Key)] = stored
		case BatchDelete:
			delete(m.data, string(op.Key))
		}
	}
	return nil
}

func (m *memoryDB) ForEach(fn func(key, value []byte) error) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return ErrClosed
	}
	for key, value := range m.data {
		if err := fn([]byte(key), value); err != nil {
			return err
		}
	}
	return nil
}

func (m *memoryDB) Sync() error { return nil }

func (m *memoryDB) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
