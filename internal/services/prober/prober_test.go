package prober

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	common "github.com/NordCoder/Uptimer/internal/config/common"
	"github.com/NordCoder/Uptimer/internal/domain/probe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stepClock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now
	c.now = c.now.Add(c.step)
	return t
}

func newProber(t *testing.T, clock probe.Clock) *HTTPProber {
	t.Helper()
	return New(NewHTTPClient(common.Probe{Timeout: 2 * time.Second, UserAgent: "test"}), clock, "uptimer-test", nil)
}

func TestProbe_AnyResponseIsSuccess(t *testing.T) {
	for _, code := range []int{http.StatusOK, http.StatusNotFound, http.StatusInternalServerError} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "uptimer-test", r.UserAgent())
			w.WriteHeader(code)
			_, _ = w.Write([]byte("body"))
		}))

		rec := newProber(t, nil).Probe(context.Background(), srv.URL)
		srv.Close()

		assert.Equal(t, probe.Success, rec.Outcome, "status %d", code)
		assert.GreaterOrEqual(t, rec.LatencyMillis, int64(0))
	}
}

func TestProbe_UnreachableIsNoResponse(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	rec := newProber(t, nil).Probe(context.Background(), "http://"+addr)
	assert.Equal(t, probe.NoResponse, rec.Outcome)
	assert.GreaterOrEqual(t, rec.LatencyMillis, int64(0))
}

func TestProbe_TimeoutIsNoResponse(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	p := New(NewHTTPClient(common.Probe{Timeout: 100 * time.Millisecond}), nil, "", nil)
	rec := p.Probe(context.Background(), srv.URL)
	assert.Equal(t, probe.NoResponse, rec.Outcome)
}

func TestProbe_BadURLIsNoResponse(t *testing.T) {
	rec := newProber(t, nil).Probe(context.Background(), "http://[::1")
	assert.Equal(t, probe.NoResponse, rec.Outcome)
}

func TestProbe_UsesClockForTimestampAndLatency(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	defer srv.Close()

	start := time.Unix(1_700_000_000, 0)
	rec := newProber(t, &stepClock{now: start, step: 42 * time.Millisecond}).Probe(context.Background(), srv.URL)

	assert.Equal(t, start.Unix(), rec.Timestamp)
	assert.Equal(t, int64(42), rec.LatencyMillis)
}

func TestProbe_RedirectsNotFollowedStillSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "http://127.0.0.1:1/", http.StatusFound)
	}))
	defer srv.Close()

	p := New(NewHTTPClient(common.Probe{Timeout: time.Second, FollowRedirects: false}), nil, "", nil)
	assert.Equal(t, probe.Success, p.Probe(context.Background(), srv.URL).Outcome)
}

func TestNormalizeURL(t *testing.T) {
	assert.Equal(t, "http://example.com", normalizeURL(" example.com "))
	assert.Equal(t, "https://example.com", normalizeURL("https://example.com"))
	assert.Equal(t, "", normalizeURL("  "))
}
