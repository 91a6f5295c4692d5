package recorder

import (
	"context"
	"fmt"
	"time"

	"github.com/NordCoder/Uptimer/internal/domain/probe"
	"github.com/NordCoder/Uptimer/internal/obs"
	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	TriggerCron   = "cron"
	TriggerKafka  = "kafka"
	TriggerManual = "manual"
)

type Recorder interface {
	Record(ctx context.Context) (probe.Record, error)
}

type Runner struct {
	log      *zap.Logger
	uc       Recorder
	schedule string
	timeout  time.Duration
	metrics  *Metrics
}

func NewRunner(log *zap.Logger, uc Recorder, schedule string, invocationTimeout time.Duration, m *Metrics) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	if m == nil {
		m = NewMetrics(nil)
	}
	return &Runner{log: log, uc: uc, schedule: schedule, timeout: invocationTimeout, metrics: m}
}

// Invoke runs one recording under the invocation timeout. An empty runID
// gets a fresh one.
func (r *Runner) Invoke(ctx context.Context, trigger, runID string) (probe.Record, error) {
	if runID == "" {
		runID = uuid.NewString()
	}
	ctx = obs.WithRunID(ctx, runID)
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	log := obs.WithTrace(ctx, r.log).With(zap.String("trigger", trigger))
	log.Info("probe run started")
	r.metrics.runs.WithLabelValues(trigger).Inc()

	start := time.Now()
	rec, err := r.uc.Record(ctx)
	r.metrics.duration.Observe(time.Since(start).Seconds())
	if err != nil {
		log.Error("probe run failed, record lost",
			zap.String("result", rec.Outcome.String()),
			zap.Error(err),
		)
		return rec, err
	}
	log.Info("probe run recorded",
		zap.Int64("timestamp", rec.Timestamp),
		zap.String("result", rec.Outcome.String()),
		zap.Int64("ping_ms", rec.LatencyMillis),
	)
	return rec, nil
}

// Run invokes the recorder on the cron schedule until ctx is done. A run
// still in progress when the next one is due makes the next one skip.
func (r *Runner) Run(ctx context.Context) error {
	cl := obs.NewCronLogger(r.log)
	c := cron.New(
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)
	if _, err := c.AddFunc(r.schedule, func() {
		_, _ = r.Invoke(ctx, TriggerCron, "")
	}); err != nil {
		return fmt.Errorf("parse schedule %q: %w", r.schedule, err)
	}

	c.Start()
	r.log.Info("cron trigger started", zap.String("schedule", r.schedule))
	<-ctx.Done()
	<-c.Stop().Done()
	return ctx.Err()
}
