package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/NordCoder/Uptimer/internal/domain/kv"
	sqlitedrv "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

var _ kv.Store = (*KV)(nil)

type entry struct {
	Namespace string    `gorm:"column:ns;primaryKey"`
	Key       string    `gorm:"column:entry_key;primaryKey"`
	Value     []byte    `gorm:"column:value;not null"`
	Version   int64     `gorm:"column:version;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (entry) TableName() string { return "kv_entries" }

// KV is a kv.Store backed by a single sqlite file, for one-node deployments.
type KV struct {
	db *gorm.DB
}

func Open(path string, debug bool) (*KV, error) {
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}
	if debug {
		cfg.Logger = logger.Default.LogMode(logger.Info)
	}
	db, err := gorm.Open(sqlitedrv.Open(path), cfg)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", path, err)
	}
	if err := db.AutoMigrate(&entry{}); err != nil {
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}
	return &KV{db: db}, nil
}

func (s *KV) Get(ctx context.Context, namespace, key string) (kv.Entry, error) {
	var e entry
	err := s.db.WithContext(ctx).
		Where("ns = ? AND entry_key = ?", namespace, key).
		Take(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return kv.Entry{}, kv.ErrNotFound
	}
	if err != nil {
		return kv.Entry{}, fmt.Errorf("kv get: %w", err)
	}
	return kv.Entry{Value: e.Value, Version: e.Version}, nil
}

func (s *KV) Put(ctx context.Context, namespace, key string, value []byte) (int64, error) {
	var version int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cur entry
		err := tx.Where("ns = ? AND entry_key = ?", namespace, key).Take(&cur).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			version = 1
			return tx.Create(&entry{Namespace: namespace, Key: key, Value: value, Version: version}).Error
		}
		if err != nil {
			return err
		}
		version = cur.Version + 1
		return tx.Model(&entry{}).
			Where("ns = ? AND entry_key = ?", namespace, key).
			Updates(map[string]any{"value": value, "version": version}).Error
	})
	if err != nil {
		return 0, fmt.Errorf("kv put: %w", err)
	}
	return version, nil
}

func (s *KV) CompareAndPut(ctx context.Context, namespace, key string, value []byte, expected int64) (int64, error) {
	db := s.db.WithContext(ctx)

	var res *gorm.DB
	if expected == 0 {
		res = db.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&entry{Namespace: namespace, Key: key, Value: value, Version: 1})
	} else {
		res = db.Model(&entry{}).
			Where("ns = ? AND entry_key = ? AND version = ?", namespace, key, expected).
			Updates(map[string]any{"value": value, "version": gorm.Expr("version + 1")})
	}
	if res.Error != nil {
		return 0, fmt.Errorf("kv compare-and-put: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return 0, kv.ErrVersionMismatch
	}
	return expected + 1, nil
}

func (s *KV) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *KV) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
