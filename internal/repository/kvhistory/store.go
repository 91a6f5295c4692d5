package kvhistory

import (
	"context"
	"errors"
	"fmt"

	"github.com/NordCoder/Uptimer/internal/domain/history"
	"github.com/NordCoder/Uptimer/internal/domain/kv"
)

var _ history.Store = (*Store)(nil)

// Store keeps the whole history as one encoded value under (namespace, key).
type Store struct {
	kv        kv.Store
	namespace string
	key       string
}

func New(store kv.Store, namespace, key string) *Store {
	return &Store{kv: store, namespace: namespace, key: key}
}

func (s *Store) Namespace() string { return s.namespace }
func (s *Store) Key() string       { return s.key }

func (s *Store) ReadHistory(ctx context.Context) (history.History, error) {
	snap, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Records, nil
}

func (s *Store) Load(ctx context.Context) (history.Snapshot, error) {
	e, err := s.kv.Get(ctx, s.namespace, s.key)
	if errors.Is(err, kv.ErrNotFound) {
		return history.Snapshot{}, fmt.Errorf("%w: %s/%s", history.ErrMissingKey, s.namespace, s.key)
	}
	if err != nil {
		return history.Snapshot{}, fmt.Errorf("%w: %w", history.ErrUnavailable, err)
	}
	h, err := history.Decode(e.Value)
	if err != nil {
		return history.Snapshot{}, err
	}
	return history.Snapshot{Records: h, Version: e.Version}, nil
}

func (s *Store) WriteHistory(ctx context.Context, h history.History) error {
	b, err := history.Encode(h)
	if err != nil {
		return fmt.Errorf("%w: %w", history.ErrWrite, err)
	}
	if _, err := s.kv.Put(ctx, s.namespace, s.key, b); err != nil {
		return fmt.Errorf("%w: %w", history.ErrWrite, err)
	}
	return nil
}

func (s *Store) Replace(ctx context.Context, prev history.Snapshot, next history.History) error {
	b, err := history.Encode(next)
	if err != nil {
		return fmt.Errorf("%w: %w", history.ErrWrite, err)
	}
	_, err = s.kv.CompareAndPut(ctx, s.namespace, s.key, b, prev.Version)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, kv.ErrVersionMismatch):
		return fmt.Errorf("%w: expected version %d", history.ErrConflict, prev.Version)
	default:
		return fmt.Errorf("%w: %w", history.ErrWrite, err)
	}
}

func (s *Store) Init(ctx context.Context) (bool, error) {
	err := s.Replace(ctx, history.Snapshot{}, history.History{})
	if errors.Is(err, history.ErrConflict) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
