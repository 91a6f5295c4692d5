package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/NordCoder/Uptimer/internal/bootstrap"
	config "github.com/NordCoder/Uptimer/internal/config/api"
	"github.com/NordCoder/Uptimer/internal/services/api"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

func main() {
	rootCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := initLogger(cfg)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()
	logger.Info("starting api", zap.String("store_driver", cfg.Store.Driver), zap.String("namespace", cfg.Store.Namespace))

	otelShutdown, err := initOTel(rootCtx, cfg)
	if err != nil {
		logger.Fatal("otel init", zap.Error(err))
	}
	defer func() { _ = otelShutdown(context.Background()) }()

	store, err := bootstrap.OpenStore(rootCtx, cfg.Store, cfg.DB, logger)
	if err != nil {
		logger.Fatal("store open", zap.Error(err))
	}
	defer store.Close()

	reg := prometheus.DefaultRegisterer
	reader := api.NewReader(store.History, cfg.API.CacheTTL)

	grpcServer, healthSrv, grpcLn, err := buildGRPCServer(cfg, reg)
	if err != nil {
		logger.Fatal("build grpc", zap.Error(err))
	}
	go api.NewHealthReporter(healthSrv, store.Health(), cfg.Server.HealthInterval, logger).Run(rootCtx)

	grpcErrCh := make(chan error, 1)
	go func() { grpcErrCh <- serveGRPC(grpcServer, grpcLn, logger) }()

	httpSrv := buildHTTPServer(cfg, logger, reader, store.Health(), reg)
	httpErrCh := make(chan error, 1)
	go func() { httpErrCh <- serveHTTP(httpSrv, logger) }()

	select {
	case <-rootCtx.Done():
		logger.Info("shutdown signal")
	case err := <-grpcErrCh:
		if err != nil {
			logger.Error("grpc serve", zap.Error(err))
		}
	case err := <-httpErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http serve", zap.Error(err))
		}
	}

	shCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.GracefulTimeout)
	defer cancel()
	_ = httpSrv.Shutdown(shCtx)
	grpcServer.GracefulStop()
	logger.Info("bye")
}
