package kv

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// SQLiteStore keeps every key as one row of the kv table.
type SQLiteStore struct{ db *sqlx.DB }

func OpenSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// a :memory: database is per connection
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := ensureSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS kv(
  key TEXT PRIMARY KEY,
  value BLOB NOT NULL,
  updated_at TEXT
);
`
	_, err := db.Exec(schema)
	return err
}

func (s *SQLiteStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var val []byte
	err := s.db.GetContext(ctx, &val, `SELECT value FROM kv WHERE key = ?`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, storageErr("get", key, err)
	}
	return val, true, nil
}

const upsertSQL = `
	INSERT INTO kv(key, value, updated_at)
	VALUES(?, ?, ?)
	ON CONFLICT(key) DO UPDATE
	SET value = excluded.value, updated_at = excluded.updated_at
`

func (s *SQLiteStore) Set(ctx context.Context, key string, val []byte) error {
	_, err := s.db.ExecContext(ctx, upsertSQL, key, val, time.Now().UTC().Format(time.RFC3339))
	return storageErr("set", key, err)
}

func (s *SQLiteStore) Remove(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key)
	return storageErr("remove", key, err)
}

func (s *SQLiteStore) Apply(ctx context.Context, b *Batch) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return storageErr("apply", "", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, o := range b.ops {
		switch o.kind {
		case opSet:
			_, err = tx.ExecContext(ctx, upsertSQL, o.key, o.val, now)
		case opRemove:
			_, err = tx.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, o.key)
		}
		if err != nil {
			return storageErr("apply", o.key, err)
		}
	}
	return storageErr("apply", "", tx.Commit())
}

func (s *SQLiteStore) Close() error { return s.db.Close() }
