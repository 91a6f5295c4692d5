package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/NordCoder/Uptimer/internal/domain/kv"
	"github.com/jackc/pgx/v5"
)

var _ kv.Store = (*KVRepo)(nil)

type KVRepo struct{ db *DB }

func NewKVRepo(db *DB) *KVRepo { return &KVRepo{db: db} }

const (
	qKVGet = `
SELECT value, version
FROM kv_entries
WHERE namespace = $1 AND key = $2;`

	qKVPut = `
INSERT INTO kv_entries (namespace, key, value, version)
VALUES ($1, $2, $3, 1)
ON CONFLICT (namespace, key) DO UPDATE
SET value = EXCLUDED.value,
    version = kv_entries.version + 1,
    updated_at = now()
RETURNING version;`

	qKVCreate = `
INSERT INTO kv_entries (namespace, key, value, version)
VALUES ($1, $2, $3, 1)
ON CONFLICT (namespace, key) DO NOTHING
RETURNING version;`

	qKVSwap = `
UPDATE kv_entries
SET value = $3, version = version + 1, updated_at = now()
WHERE namespace = $1 AND key = $2 AND version = $4
RETURNING version;`
)

func (r *KVRepo) Get(ctx context.Context, namespace, key string) (kv.Entry, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	var e kv.Entry
	if err := r.db.Pool.QueryRow(ctx, qKVGet, namespace, key).Scan(&e.Value, &e.Version); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return kv.Entry{}, kv.ErrNotFound
		}
		return kv.Entry{}, fmt.Errorf("kv get: %w", err)
	}
	return e, nil
}

func (r *KVRepo) Put(ctx context.Context, namespace, key string, value []byte) (int64, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	var version int64
	if err := r.db.Pool.QueryRow(ctx, qKVPut, namespace, key, value).Scan(&version); err != nil {
		return 0, fmt.Errorf("kv put: %w", err)
	}
	return version, nil
}

func (r *KVRepo) CompareAndPut(ctx context.Context, namespace, key string, value []byte, expected int64) (int64, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	var row pgx.Row
	if expected == 0 {
		row = r.db.Pool.QueryRow(ctx, qKVCreate, namespace, key, value)
	} else {
		row = r.db.Pool.QueryRow(ctx, qKVSwap, namespace, key, value, expected)
	}

	var version int64
	if err := row.Scan(&version); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, kv.ErrVersionMismatch
		}
		return 0, fmt.Errorf("kv compare-and-put: %w", err)
	}
	return version, nil
}

func (r *KVRepo) Ping(ctx context.Context) error {
	return r.db.Pool.Ping(ctx)
}
