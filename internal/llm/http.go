package llm

import (
	"net"
	"net/http"
	"time"
)

// NewHTTPClient bounds connection setup by connectTimeout and the whole
// exchange by requestTimeout.
func NewHTTPClient(connectTimeout, requestTimeout time.Duration) *http.Client {
	dialer := &net.Dialer{Timeout: connectTimeout}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = dialer.DialContext
	transport.TLSHandshakeTimeout = connectTimeout
	return &http.Client{
		Transport: transport,
		Timeout:   requestTimeout,
	}
}
