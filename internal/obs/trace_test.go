package obs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestWithTrace_AddsRunID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	ctx := WithRunID(context.Background(), "run-1")

	WithTrace(ctx, zap.New(core)).Info("hello")

	require.Equal(t, 1, logs.Len())
	require.Equal(t, "run-1", logs.All()[0].ContextMap()["run_id"])
}

func TestWithTrace_NilLogger(t *testing.T) {
	require.Nil(t, WithTrace(context.Background(), nil))
}
