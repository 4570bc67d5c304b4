//go:build !js || !wasm

package http

import (
	"net"
	"net/http"
	"time"
)

// NewHTTPClient creates a new HTTP client for regular environments.
// A zero timeout leaves the overall request unbounded; callers can still
// cancel through the request context.
func NewHTTPClient(timeout time.Duration) HTTPClient {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   30 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
			ForceAttemptHTTP2:   true,
		},
	}
}
