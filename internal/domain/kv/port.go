package kv

import (
	"context"
	"errors"
)

var (
	ErrNotFound        = errors.New("kv: key not found")
	ErrVersionMismatch = errors.New("kv: version mismatch")
)

// Entry is a stored value and its version. Versions start at 1 and grow by
// one per successful write; 0 is reserved for "absent".
type Entry struct {
	Value   []byte
	Version int64
}

type Store interface {
	Get(ctx context.Context, namespace, key string) (Entry, error)
	Put(ctx context.Context, namespace, key string, value []byte) (int64, error)
	// CompareAndPut writes only if the stored version equals expected.
	// expected == 0 means the key must not exist yet.
	CompareAndPut(ctx context.Context, namespace, key string, value []byte, expected int64) (int64, error)
	Ping(ctx context.Context) error
}
