package main

import (
	"net/http"
	"time"

	config "github.com/NordCoder/Uptimer/internal/config/api"
	"github.com/NordCoder/Uptimer/internal/obs"
	"github.com/NordCoder/Uptimer/internal/services/api"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

func buildHTTPServer(cfg *config.Config, logger *zap.Logger, reader *api.Reader, health obs.HealthFunc, reg prometheus.Registerer) *http.Server {
	router := api.NewRouter(api.NewHandler(reader, logger), logger, api.RouterConfig{
		MaxMultipartMemory: cfg.Server.MaxMultipartMemory,
		Health:             health,
		Registerer:         reg,
	})

	return &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           obs.HTTPHandler(router, "api"),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}
}

func serveHTTP(srv *http.Server, logger *zap.Logger) error {
	logger.Info("http listening", zap.String("addr", srv.Addr))
	return srv.ListenAndServe()
}
