package client

import (
	"time"

	"github.com/duke-git/lancet/v2/netutil"
)

// newHTTPClient bounds handshake and response by timeout; zero means the
// library defaults.
func newHTTPClient(timeout time.Duration) *netutil.HttpClient {
	if timeout <= 0 {
		return netutil.NewHttpClient()
	}
	return netutil.NewHttpClientWithConfig(&netutil.HttpClientConfig{
		HandshakeTimeout: timeout,
		ResponseTimeout:  timeout,
	})
}
