package main

import (
	"context"
	"fmt"

	"github.com/NordCoder/Uptimer/internal/bootstrap"
	config "github.com/NordCoder/Uptimer/internal/config/recorder"
	"github.com/NordCoder/Uptimer/internal/obs"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type env struct {
	cfg   *config.Config
	log   *zap.Logger
	store *bootstrap.Store
}

func (e *env) Close() {
	e.store.Close()
	_ = e.log.Sync()
}

// openEnv loads config, checks it with validate and opens the store.
func openEnv(ctx context.Context, cmd *cobra.Command, validate func(*config.Config) error) (*env, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	log, err := obs.NewLogger(cfg.Log.AsLoggerConfig(cfg.App))
	if err != nil {
		return nil, err
	}
	store, err := bootstrap.OpenStore(ctx, cfg.Store, cfg.DB, log)
	if err != nil {
		_ = log.Sync()
		return nil, err
	}
	return &env{cfg: cfg, log: log, store: store}, nil
}
