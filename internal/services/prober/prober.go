package prober

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/NordCoder/Uptimer/internal/domain/probe"
	"github.com/NordCoder/Uptimer/internal/obs"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// drainLimit caps how much of a response body is read so the connection can
// be reused.
const drainLimit = 64 << 10

type HTTPProber struct {
	client    *http.Client
	clock     probe.Clock
	userAgent string
	log       *zap.Logger
}

var _ probe.Prober = (*HTTPProber)(nil)

func New(client *http.Client, clock probe.Clock, userAgent string, log *zap.Logger) *HTTPProber {
	if clock == nil {
		clock = probe.SystemClock{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &HTTPProber{client: client, clock: clock, userAgent: userAgent, log: log}
}

// Probe issues one GET and classifies it. Any completed response is a
// Success whatever its status; transport failures are NoResponse. It never
// returns an error.
func (p *HTTPProber) Probe(ctx context.Context, url string) probe.Record {
	ctx, span := otel.Tracer("prober").Start(ctx, "prober.Probe", trace.WithAttributes(
		attribute.String("probe.url", url),
	))
	defer span.End()

	start := p.clock.Now()
	rec := probe.Record{Timestamp: start.Unix(), Outcome: probe.NoResponse}
	log := obs.WithTrace(ctx, p.log)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, normalizeURL(url), nil)
	if err != nil {
		log.Warn("probe request not built", zap.String("url", url), zap.Error(err))
		span.RecordError(err)
		rec.LatencyMillis = elapsedMillis(start, p.clock.Now())
		span.SetAttributes(attribute.String("probe.result", rec.Outcome.String()))
		return rec
	}
	if p.userAgent != "" {
		req.Header.Set("User-Agent", p.userAgent)
	}

	resp, err := p.client.Do(req)
	rec.LatencyMillis = elapsedMillis(start, p.clock.Now())
	if err != nil {
		log.Info("probe got no response", zap.String("url", url), zap.Error(err))
		span.RecordError(err)
	} else {
		rec.Outcome = probe.Success
		span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, drainLimit))
		_ = resp.Body.Close()
	}

	span.SetAttributes(
		attribute.String("probe.result", rec.Outcome.String()),
		attribute.Int64("probe.ping_ms", rec.LatencyMillis),
	)
	return rec
}

func elapsedMillis(start, end time.Time) int64 {
	if d := end.Sub(start).Milliseconds(); d > 0 {
		return d
	}
	return 0
}

func normalizeURL(s string) string {
	t := strings.TrimSpace(s)
	if t == "" {
		return t
	}
	if strings.HasPrefix(t, "http://") || strings.HasPrefix(t, "https://") {
		return t
	}
	return "http://" + t
}
