package recorder

import (
	"context"
	"errors"
	"time"

	kafkax "github.com/NordCoder/Uptimer/internal/repository/kafka"
	"go.uber.org/zap"
)

type Subscriber interface {
	Consume(ctx context.Context, h kafkax.Handler) error
}

// Controller records one probe per ProbeRequested message. Messages are
// handled one at a time, which makes the consumer the single writer.
type Controller struct {
	Log    *zap.Logger
	Sub    Subscriber
	Runner *Runner
}

func (c *Controller) Run(ctx context.Context) error {
	err := c.Sub.Consume(ctx, kafkax.ProbeRequestedHandler(c.handle))
	if errors.Is(err, context.Canceled) {
		return ctx.Err()
	}
	return err
}

// handle never asks for redelivery: a failed run loses its record and the
// next request probes afresh.
func (c *Controller) handle(ctx context.Context, runID string, at time.Time) error {
	c.Log.Debug("probe requested", zap.String("run_id", runID), zap.Duration("lag", time.Since(at)))
	if _, err := c.Runner.Invoke(ctx, TriggerKafka, runID); err != nil && ctx.Err() != nil {
		return ctx.Err()
	}
	return nil
}
