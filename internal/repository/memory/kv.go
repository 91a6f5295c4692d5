package memory

import (
	"context"
	"sync"

	"github.com/NordCoder/Uptimer/internal/domain/kv"
)

var _ kv.Store = (*KV)(nil)

// KV is an in-process kv.Store. Values are copied on the way in and out.
type KV struct {
	mu      sync.RWMutex
	entries map[string]kv.Entry
}

func NewKV() *KV {
	return &KV{entries: make(map[string]kv.Entry)}
}

func composite(namespace, key string) string { return namespace + "\x00" + key }

func (m *KV) Get(ctx context.Context, namespace, key string) (kv.Entry, error) {
	if err := ctx.Err(); err != nil {
		return kv.Entry{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[composite(namespace, key)]
	if !ok {
		return kv.Entry{}, kv.ErrNotFound
	}
	return kv.Entry{Value: clone(e.Value), Version: e.Version}, nil
}

func (m *KV) Put(ctx context.Context, namespace, key string, value []byte) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	k := composite(namespace, key)
	next := m.entries[k].Version + 1
	m.entries[k] = kv.Entry{Value: clone(value), Version: next}
	return next, nil
}

func (m *KV) CompareAndPut(ctx context.Context, namespace, key string, value []byte, expected int64) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	k := composite(namespace, key)
	cur := m.entries[k].Version
	if cur != expected {
		return 0, kv.ErrVersionMismatch
	}
	m.entries[k] = kv.Entry{Value: clone(value), Version: cur + 1}
	return cur + 1, nil
}

func (m *KV) Ping(ctx context.Context) error { return ctx.Err() }

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
