package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/NordCoder/Uptimer/internal/obs"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type Runner struct {
	Log      *zap.Logger
	UC       *Usecase
	Schedule string

	mSent    prometheus.Counter
	mErr     prometheus.Counter
	mTickDur prometheus.Histogram
}

func New(log *zap.Logger, uc *Usecase, schedule string, reg prometheus.Registerer) *Runner {
	f := promauto.With(reg)
	return &Runner{
		Log:      log,
		UC:       uc,
		Schedule: schedule,
		mSent: f.NewCounter(prometheus.CounterOpts{
			Name: "scheduler_probe_requests_sent_total", Help: "ProbeRequested published to Kafka",
		}),
		mErr: f.NewCounter(prometheus.CounterOpts{
			Name: "scheduler_errors_total", Help: "Failed publishes",
		}),
		mTickDur: f.NewHistogram(prometheus.HistogramOpts{
			Name: "scheduler_tick_duration_seconds", Help: "Scheduler tick duration",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

func (r *Runner) tick(ctx context.Context) {
	start := time.Now()
	defer func() { r.mTickDur.Observe(time.Since(start).Seconds()) }()

	runID, err := r.UC.Tick(ctx)
	if err != nil {
		r.mErr.Inc()
		r.Log.Warn("tick error", zap.String("run_id", runID), zap.Error(err))
		return
	}
	r.mSent.Inc()
	r.Log.Debug("probe requested", zap.String("run_id", runID))
}

func (r *Runner) Run(ctx context.Context) error {
	cl := obs.NewCronLogger(r.Log)
	c := cron.New(cron.WithLogger(cl), cron.WithChain(cron.Recover(cl)))
	if _, err := c.AddFunc(r.Schedule, func() { r.tick(ctx) }); err != nil {
		return fmt.Errorf("parse schedule %q: %w", r.Schedule, err)
	}
	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()
	return ctx.Err()
}
