package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixedClock time.Time

func (c fixedClock) Now() time.Time { return time.Time(c) }

type captureEvents struct {
	mu  sync.Mutex
	ids []string
	at  []time.Time
	err error
}

func (c *captureEvents) PublishProbeRequested(_ context.Context, runID string, at time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.ids = append(c.ids, runID)
	c.at = append(c.at, at)
	return nil
}

func (c *captureEvents) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.ids)
}

func TestTick_PublishesWithFreshRunID(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	ev := &captureEvents{}
	uc := NewUC(ev, fixedClock(now))

	id1, err := uc.Tick(context.Background())
	require.NoError(t, err)
	id2, err := uc.Tick(context.Background())
	require.NoError(t, err)

	assert.NotEqual(t, id1, id2)
	assert.Equal(t, []string{id1, id2}, ev.ids)
	assert.Equal(t, now, ev.at[0])
}

func TestTick_PublishError(t *testing.T) {
	boom := errors.New("no leader")
	uc := NewUC(&captureEvents{err: boom}, nil)
	_, err := uc.Tick(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestRunner_PublishesOnSchedule(t *testing.T) {
	ev := &captureEvents{}
	r := New(zap.NewNop(), NewUC(ev, nil), "@every 1s", nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	require.Eventually(t, func() bool { return ev.count() >= 1 }, 5*time.Second, 50*time.Millisecond)
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}
