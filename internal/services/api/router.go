package api

import (
	"github.com/NordCoder/Uptimer/internal/obs"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

type RouterConfig struct {
	MaxMultipartMemory int64
	Health             obs.HealthFunc
	Registerer         prometheus.Registerer
}

// NewRouter wires the public routes plus /healthz and /metrics.
func NewRouter(h *Handler, log *zap.Logger, cfg RouterConfig) *gin.Engine {
	if log == nil {
		log = zap.NewNop()
	}
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	if cfg.MaxMultipartMemory > 0 {
		r.MaxMultipartMemory = cfg.MaxMultipartMemory
	}
	r.Use(gin.Recovery(), RequestLogger(log), newHTTPMetrics(cfg.Registerer).middleware())

	h.Register(r)
	if cfg.Health != nil {
		r.GET("/healthz", gin.WrapF(obs.HealthHandler(cfg.Health)))
	}
	r.GET("/metrics", gin.WrapH(obs.MetricsHandler()))
	return r
}
