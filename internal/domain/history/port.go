package history

import "context"

type Store interface {
	ReadHistory(ctx context.Context) (History, error)
	WriteHistory(ctx context.Context, h History) error
	Load(ctx context.Context) (Snapshot, error)
	Replace(ctx context.Context, prev Snapshot, next History) error
	Init(ctx context.Context) (bool, error)
}
