package api

import (
	"context"
	"time"

	"github.com/NordCoder/Uptimer/internal/obs"
	"go.uber.org/zap"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// HealthReporter mirrors store reachability into the gRPC health service.
type HealthReporter struct {
	srv      *health.Server
	check    obs.HealthFunc
	interval time.Duration
	log      *zap.Logger
}

func NewHealthReporter(srv *health.Server, check obs.HealthFunc, interval time.Duration, log *zap.Logger) *HealthReporter {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &HealthReporter{srv: srv, check: check, interval: interval, log: log}
}

func (h *HealthReporter) Run(ctx context.Context) {
	t := time.NewTicker(h.interval)
	defer t.Stop()
	last := healthpb.HealthCheckResponse_UNKNOWN
	for {
		status := healthpb.HealthCheckResponse_SERVING
		if err := h.check(ctx); err != nil {
			status = healthpb.HealthCheckResponse_NOT_SERVING
			if last != status {
				h.log.Warn("store unreachable", zap.Error(err))
			}
		}
		if status != last {
			h.srv.SetServingStatus("", status)
			last = status
		}
		select {
		case <-ctx.Done():
			h.srv.Shutdown()
			return
		case <-t.C:
		}
	}
}
