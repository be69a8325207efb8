// Package kv is the device-local key-value store. Values are opaque blobs,
// normally JSON documents written whole by the repos package.
package kv

import (
	"context"
	"fmt"

	"shopfront/internal/domain"
)

// Store abstracts the storage backend.
type Store interface {
	// Get returns ok=false for a missing key; that is not an error.
	Get(ctx context.Context, key string) (val []byte, ok bool, err error)
	Set(ctx context.Context, key string, val []byte) error
	// Remove is a no-op for a missing key.
	Remove(ctx context.Context, key string) error
	// Apply commits every op in b or none of them.
	Apply(ctx context.Context, b *Batch) error
	Close() error
}

type opKind int

const (
	opSet opKind = iota
	opRemove
)

type op struct {
	kind opKind
	key  string
	val  []byte
}

// Batch collects writes to be applied atomically.
type Batch struct {
	ops []op
}

func NewBatch() *Batch { return &Batch{} }

func (b *Batch) Set(key string, val []byte) *Batch {
	b.ops = append(b.ops, op{kind: opSet, key: key, val: val})
	return b
}

func (b *Batch) Remove(key string) *Batch {
	b.ops = append(b.ops, op{kind: opRemove, key: key})
	return b
}

func (b *Batch) Len() int { return len(b.ops) }

// Keys lists the keys touched by the batch, in op order.
func (b *Batch) Keys() []string {
	out := make([]string, 0, len(b.ops))
	for _, o := range b.ops {
		out = append(out, o.key)
	}
	return out
}

func storageErr(op, key string, err error) error {
	if err == nil {
		return nil
	}
	return &domain.StorageError{Op: op, Key: key, Err: err}
}

// Open selects a backend by driver name: sqlite, pebble or memory.
func Open(driver, dsn string) (Store, error) {
	switch driver {
	case "sqlite", "":
		return OpenSQLite(dsn)
	case "pebble":
		return OpenPebble(dsn)
	case "memory":
		return NewMemoryStore(), nil
	}
	return nil, fmt.Errorf("kv: unknown driver %q", driver)
}
