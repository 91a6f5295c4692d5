package bootstrap

import (
	"context"
	"fmt"
	"time"

	common "github.com/NordCoder/Uptimer/internal/config/common"
	"github.com/NordCoder/Uptimer/internal/domain/kv"
	"github.com/NordCoder/Uptimer/internal/obs"
	"github.com/NordCoder/Uptimer/internal/repository/kvhistory"
	"github.com/NordCoder/Uptimer/internal/repository/memory"
	pg "github.com/NordCoder/Uptimer/internal/repository/postgres"
	"github.com/NordCoder/Uptimer/internal/repository/sqlite"
	"go.uber.org/zap"
)

// Store is an opened key-value backend plus the history bound to it.
type Store struct {
	KV      kv.Store
	History *kvhistory.Store
	close   func()
}

func (s *Store) Close() {
	if s.close != nil {
		s.close()
	}
}

// Health pings the backend with a short deadline.
func (s *Store) Health() obs.HealthFunc {
	return func(ctx context.Context) error {
		hctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
		defer cancel()
		return s.KV.Ping(hctx)
	}
}

func OpenStore(ctx context.Context, sc common.Store, db pg.Config, log *zap.Logger) (*Store, error) {
	var (
		store  kv.Store
		closer func()
	)
	switch sc.Driver {
	case common.DriverPostgres:
		d, err := pg.NewDB(ctx, db)
		if err != nil {
			return nil, fmt.Errorf("db connect: %w", err)
		}
		store, closer = pg.NewKVRepo(d), d.Close
	case common.DriverSQLite:
		s, err := sqlite.Open(sc.SQLitePath, sc.Debug)
		if err != nil {
			return nil, fmt.Errorf("sqlite open: %w", err)
		}
		store, closer = s, func() { _ = s.Close() }
	case common.DriverMemory:
		store = memory.NewKV()
	default:
		return nil, fmt.Errorf("unsupported store driver %q", sc.Driver)
	}

	log.Info("store opened",
		zap.String("driver", sc.Driver),
		zap.String("namespace", sc.Namespace),
		zap.String("key", sc.Key),
	)
	return &Store{
		KV:      store,
		History: kvhistory.New(store, sc.Namespace, sc.Key),
		close:   closer,
	}, nil
}
