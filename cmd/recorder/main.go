package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/NordCoder/Uptimer/internal/bootstrap"
	config "github.com/NordCoder/Uptimer/internal/config/recorder"
	"github.com/NordCoder/Uptimer/internal/domain/probe"
	"github.com/NordCoder/Uptimer/internal/obs"
	kafkaRepo "github.com/NordCoder/Uptimer/internal/repository/kafka"
	"github.com/NordCoder/Uptimer/internal/services/prober"
	"github.com/NordCoder/Uptimer/internal/services/recorder"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	// logger
	l, err := obs.NewLogger(cfg.Log.AsLoggerConfig(cfg.App))
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = l.Sync() }()
	l.Info("starting recorder",
		zap.String("trigger", cfg.Recorder.Trigger),
		zap.String("url", cfg.Ping.URL),
		zap.String("store_driver", cfg.Store.Driver),
		zap.String("metrics_addr", cfg.Recorder.MetricsAddr),
	)

	// otel
	otelCloser, err := obs.SetupOTel(ctx, cfg.OTEL.AsOTELConfig(cfg.App))
	if err != nil {
		l.Fatal("otel init", zap.Error(err))
	}
	defer func() { _ = otelCloser.Shutdown(context.Background()) }()

	// store
	store, err := bootstrap.OpenStore(ctx, cfg.Store, cfg.DB, l)
	if err != nil {
		l.Fatal("store open", zap.Error(err))
	}
	defer store.Close()

	ms := obs.BootstrapMetricsServer(cfg.Recorder.MetricsAddr, store.Health(), l)

	// wiring
	metrics := recorder.NewMetrics(prometheus.DefaultRegisterer)
	p := prober.New(prober.NewHTTPClient(cfg.Probe), probe.SystemClock{}, cfg.Probe.UserAgent, l)
	uc := recorder.NewUsecase(p, store.History, cfg.Ping.URL, cfg.Recorder.ConflictRetries, l, metrics)
	runner := recorder.NewRunner(l, uc, cfg.Recorder.Schedule, cfg.Recorder.InvocationTimeout, metrics)

	errCh := make(chan error, 1)
	switch cfg.Recorder.Trigger {
	case config.TriggerKafka:
		cons := kafkaRepo.BootstrapConsumer(ctx, &kafkaRepo.ConsumerConfig{
			Brokers:       cfg.Kafka.Brokers,
			GroupID:       cfg.Kafka.GroupID,
			Topic:         cfg.Kafka.Topic,
			FromBeginning: cfg.Kafka.FromBeginning,
			Logger:        l,
		}, l)
		defer func() { _ = cons.Close() }()
		ctrl := &recorder.Controller{Log: l, Sub: cons, Runner: runner}
		go func() { errCh <- ctrl.Run(ctx) }()
	default:
		go func() { errCh <- runner.Run(ctx) }()
	}

	select {
	case <-ctx.Done():
	case err = <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			l.Error("recorder stopped", zap.Error(err))
		}
	}

	shCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	_ = ms.Shutdown(shCtx)
	l.Info("bye")
}
