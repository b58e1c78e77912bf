package install

import (
	"net"
	"net/http"
	"time"
)

// newDownloadHTTPClient returns a client tuned for fetching release archives:
// proxy-aware, with bounded dial and handshake times. The overall timeout is
// generous because archives run to tens of megabytes on slow mirrors.
func newDownloadHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:   true,
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Transport: transport, Timeout: timeout}
}
