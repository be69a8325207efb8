package kv

import (
	"context"
	"sync"
)

// MemoryStore is a simple thread-safe map store.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, storageErr("get", key, err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (s *MemoryStore) Set(ctx context.Context, key string, val []byte) error {
	if err := ctx.Err(); err != nil {
		return storageErr("set", key, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = append([]byte(nil), val...)
	return nil
}

func (s *MemoryStore) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return storageErr("remove", key, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

func (s *MemoryStore) Apply(ctx context.Context, b *Batch) error {
	if err := ctx.Err(); err != nil {
		return storageErr("apply", "", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range b.ops {
		switch o.kind {
		case opSet:
			s.data[o.key] = append([]byte(nil), o.val...)
		case opRemove:
			delete(s.data, o.key)
		}
	}
	return nil
}

// Keys returns the stored keys in no particular order.
func (s *MemoryStore) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.data))
	for k := range s.data {
		out = append(out, k)
	}
	return out
}

func (s *MemoryStore) Close() error { return nil }
