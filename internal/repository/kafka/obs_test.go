package kafka

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

func TestHeaderCarriers_PropagateTraceContext(t *testing.T) {
	prop := propagation.TraceContext{}
	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    trace.TraceID{1, 2, 3},
		SpanID:     trace.SpanID{4, 5, 6},
		TraceFlags: trace.FlagsSampled,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	out := mapCarrierHeaders{}
	prop.Inject(ctx, out)
	headers := out.ToKafka()
	assert.NotEmpty(t, headers)

	got := trace.SpanContextFromContext(prop.Extract(context.Background(), mapCarrierFromKafka(headers)))
	assert.Equal(t, sc.TraceID(), got.TraceID())
	assert.Equal(t, sc.SpanID(), got.SpanID())
	assert.Contains(t, mapCarrierFromKafka(headers).Keys(), "traceparent")
}
