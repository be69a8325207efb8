package kv

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/cockroachdb/pebble"
)

// PebbleStore implements Store using PebbleDB.
type PebbleStore struct {
	db *pebble.DB
}

func OpenPebble(dir string) (*PebbleStore, error) {
	opts := &pebble.Options{
		// small documents, low write rate
		MemTableSize: 4 << 20,
	}
	d, err := pebble.Open(filepath.Clean(dir), opts)
	if err != nil {
		return nil, fmt.Errorf("pebble open: %w", err)
	}
	return &PebbleStore{db: d}, nil
}

func (p *PebbleStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, storageErr("get", key, err)
	}
	v, closer, err := p.db.Get([]byte(key))
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, storageErr("get", key, err)
	}
	defer closer.Close()
	return append([]byte(nil), v...), true, nil
}

func (p *PebbleStore) Set(ctx context.Context, key string, val []byte) error {
	if err := ctx.Err(); err != nil {
		return storageErr("set", key, err)
	}
	return storageErr("set", key, p.db.Set([]byte(key), val, pebble.Sync))
}

func (p *PebbleStore) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return storageErr("remove", key, err)
	}
	return storageErr("remove", key, p.db.Delete([]byte(key), pebble.Sync))
}

func (p *PebbleStore) Apply(ctx context.Context, b *Batch) error {
	if err := ctx.Err(); err != nil {
		return storageErr("apply", "", err)
	}
	wb := p.db.NewBatch()
	defer wb.Close()
	for _, o := range b.ops {
		var err error
		switch o.kind {
		case opSet:
			err = wb.Set([]byte(o.key), o.val, nil)
		case opRemove:
			err = wb.Delete([]byte(o.key), nil)
		}
		if err != nil {
			return storageErr("apply", o.key, err)
		}
	}
	return storageErr("apply", "", wb.Commit(pebble.Sync))
}

func (p *PebbleStore) Close() error { return p.db.Close() }
