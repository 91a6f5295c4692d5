package scheduler

import (
	"context"
	"fmt"

	"github.com/NordCoder/Uptimer/internal/domain/kafka"
	"github.com/NordCoder/Uptimer/internal/domain/probe"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

type Usecase struct {
	Events kafka.ProbeEvents
	Clock  probe.Clock
}

func NewUC(events kafka.ProbeEvents, clock probe.Clock) *Usecase {
	if clock == nil {
		clock = probe.SystemClock{}
	}
	return &Usecase{Events: events, Clock: clock}
}

// Tick publishes one probe request and returns its run id.
func (u *Usecase) Tick(ctx context.Context) (string, error) {
	runID := uuid.NewString()
	ctx, span := otel.Tracer("scheduler.uc").Start(ctx, "scheduler.tick")
	defer span.End()
	span.SetAttributes(attribute.String("run.id", runID))

	if err := u.Events.PublishProbeRequested(ctx, runID, u.Clock.Now()); err != nil {
		span.RecordError(err)
		return runID, fmt.Errorf("publish probe request: %w", err)
	}
	return runID, nil
}
