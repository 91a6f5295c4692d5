package recorder

import (
	"context"
	"errors"
	"fmt"

	"github.com/NordCoder/Uptimer/internal/domain/history"
	"github.com/NordCoder/Uptimer/internal/domain/probe"
	"github.com/NordCoder/Uptimer/internal/obs"
	"github.com/NordCoder/Uptimer/internal/obs/retry"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

type HistoryStore interface {
	Load(ctx context.Context) (history.Snapshot, error)
	Replace(ctx context.Context, prev history.Snapshot, next history.History) error
}

type Usecase struct {
	prober  probe.Prober
	store   HistoryStore
	url     string
	retries int
	log     *zap.Logger
	metrics *Metrics
}

func NewUsecase(prober probe.Prober, store HistoryStore, url string, conflictRetries int, log *zap.Logger, m *Metrics) *Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	if m == nil {
		m = NewMetrics(nil)
	}
	return &Usecase{
		prober:  prober,
		store:   store,
		url:     url,
		retries: conflictRetries,
		log:     log,
		metrics: m,
	}
}

// Record probes the target once and prepends the result to the history.
// A version conflict reruns load, prepend and replace with the same record;
// any other store failure aborts and the record is lost.
func (u *Usecase) Record(ctx context.Context) (probe.Record, error) {
	ctx, span := otel.Tracer("recorder.uc").Start(ctx, "recorder.Record")
	defer span.End()
	log := obs.WithTrace(ctx, u.log)

	rec := u.prober.Probe(ctx, u.url)
	u.metrics.observeProbe(rec)
	span.SetAttributes(
		attribute.String("probe.result", rec.Outcome.String()),
		attribute.Int64("probe.ping_ms", rec.LatencyMillis),
	)

	policy := retry.ConflictPolicy("recorder.append", u.retries, history.ErrConflict, log)
	err := retry.Do(ctx, func() error { return u.appendOnce(ctx, log, rec) }, policy)
	if err != nil {
		u.metrics.failures.WithLabelValues(failureKind(err)).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "record failed")
		return rec, err
	}
	return rec, nil
}

func (u *Usecase) appendOnce(ctx context.Context, log *zap.Logger, rec probe.Record) error {
	snap, err := u.store.Load(ctx)
	switch {
	case errors.Is(err, history.ErrMissingKey):
		log.Info("history key absent, starting a new history")
		snap = history.Snapshot{}
	case err != nil:
		return fmt.Errorf("load history: %w", err)
	}

	next := history.Prepend(snap.Records, rec)
	if err := u.store.Replace(ctx, snap, next); err != nil {
		return fmt.Errorf("replace history: %w", err)
	}
	u.metrics.historyLen.Set(float64(len(next)))
	return nil
}

func failureKind(err error) string {
	switch {
	case errors.Is(err, history.ErrDecode):
		return "decode_error"
	case errors.Is(err, history.ErrUnavailable):
		return "store_unavailable"
	case errors.Is(err, history.ErrConflict):
		return "conflict"
	case errors.Is(err, history.ErrWrite):
		return "write_failure"
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return "timeout"
	default:
		return "other"
	}
}
