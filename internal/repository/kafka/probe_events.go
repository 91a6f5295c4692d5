package kafka

import (
	"context"
	"time"

	"github.com/NordCoder/Uptimer/internal/domain/kafka"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/timestamppb"
)

type publisher interface {
	PublishProto(ctx context.Context, key []byte, m proto.Message) error
}

type ProbeEventsKafka struct {
	p publisher
}

func NewProbeEventsKafka(p *Producer) *ProbeEventsKafka { return &ProbeEventsKafka{p: p} }

var _ kafka.ProbeEvents = (*ProbeEventsKafka)(nil)

// PublishProbeRequested keys the message by run id; the payload carries the
// time the run was scheduled.
func (e *ProbeEventsKafka) PublishProbeRequested(ctx context.Context, runID string, at time.Time) error {
	return e.p.PublishProto(ctx, []byte(runID), timestamppb.New(at))
}

// ProbeRequestedHandler decodes a ProbeRequested message and hands the run id
// and scheduled time to handle.
func ProbeRequestedHandler(handle func(ctx context.Context, runID string, at time.Time) error) Handler {
	return ProtoHandler(
		func() *timestamppb.Timestamp { return &timestamppb.Timestamp{} },
		func(ctx context.Context, key []byte, ts *timestamppb.Timestamp) error {
			if err := ts.CheckValid(); err != nil {
				return err
			}
			return handle(ctx, string(key), ts.AsTime())
		},
	)
}
