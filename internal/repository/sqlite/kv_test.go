package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/NordCoder/Uptimer/internal/domain/kv"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) *KV {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "uptimer.db"), false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestKV_Contract(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)

	require.NoError(t, s.Ping(ctx))

	_, err := s.Get(ctx, "megumiso-uptime", "result")
	require.ErrorIs(t, err, kv.ErrNotFound)

	v, err := s.CompareAndPut(ctx, "megumiso-uptime", "result", []byte("[]"), 0)
	require.NoError(t, err)
	require.EqualValues(t, 1, v)

	_, err = s.CompareAndPut(ctx, "megumiso-uptime", "result", []byte("[]"), 0)
	require.ErrorIs(t, err, kv.ErrVersionMismatch)

	next := []byte(`[{"timestamp":100,"result":"Success","ping":20}]`)
	v, err = s.CompareAndPut(ctx, "megumiso-uptime", "result", next, 1)
	require.NoError(t, err)
	require.EqualValues(t, 2, v)

	_, err = s.CompareAndPut(ctx, "megumiso-uptime", "result", []byte("[]"), 1)
	require.ErrorIs(t, err, kv.ErrVersionMismatch, "stale version must be rejected")

	e, err := s.Get(ctx, "megumiso-uptime", "result")
	require.NoError(t, err)
	require.EqualValues(t, 2, e.Version)
	require.Equal(t, string(next), string(e.Value))
}

func TestKV_PutUpserts(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)

	v, err := s.Put(ctx, "ns", "result", []byte("[]"))
	require.NoError(t, err)
	require.EqualValues(t, 1, v)

	v, err = s.Put(ctx, "ns", "result", []byte("[ ]"))
	require.NoError(t, err)
	require.EqualValues(t, 2, v)

	e, err := s.Get(ctx, "ns", "result")
	require.NoError(t, err)
	require.Equal(t, "[ ]", string(e.Value))
}
