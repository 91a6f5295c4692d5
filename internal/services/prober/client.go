package prober

import (
	"crypto/tls"
	"net"
	"net/http"
	"time"

	common "github.com/NordCoder/Uptimer/internal/config/common"
	"github.com/NordCoder/Uptimer/internal/obs"
)

const defaultTimeout = 30 * time.Second

// NewHTTPClient builds the probe client: bounded dial and TLS handshake,
// optional redirect following, client spans through otelhttp.
func NewHTTPClient(cfg common.Probe) *http.Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: !cfg.VerifyTLS,
			MinVersion:         tls.VersionTLS12,
		},
	}

	client := &http.Client{
		Timeout:   timeout,
		Transport: obs.HTTPTransport(transport),
	}
	if !cfg.FollowRedirects {
		client.CheckRedirect = func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}
	return client
}
