package polygon

import (
	"net"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// baseTransportConfig returns the HTTP transport used by Polygon clients.
// No overall request timeout is set here; Config.Timeout or the caller's
// context bounds a request.
func baseTransportConfig() *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout: 10 * time.Second,
		IdleConnTimeout:     90 * time.Second,
		MaxIdleConns:        10,
	}
}

// newHTTPClient creates an HTTP client configured for Polygon requests.
func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Transport: baseTransportConfig(),
		Timeout:   timeout,
	}
}

// newRestyClient wraps hc. Retries stay disabled: one call is one round-trip.
func newRestyClient(hc *http.Client) *resty.Client {
	return resty.NewWithClient(hc).
		SetRetryCount(0).
		SetHeader("Accept", "application/json")
}
