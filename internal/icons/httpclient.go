package icons

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"
)

// ErrUnexpectedStatus - Upstream answered with a non-2xx status.
var ErrUnexpectedStatus = errors.New("icon fetch: unexpected HTTP status")

const (
	iconHTTPClientTimeout         = 20 * time.Second
	iconHTTPDialTimeout           = 5 * time.Second
	iconHTTPKeepAlive             = 30 * time.Second
	iconHTTPTLSHandshakeTimeout   = 5 * time.Second
	iconHTTPResponseHeaderTimeout = 10 * time.Second
	iconHTTPExpectContinueTimeout = 1 * time.Second
	iconHTTPIdleConnTimeout       = 90 * time.Second
)

var iconHTTPTransport = &http.Transport{
	Proxy: http.ProxyFromEnvironment,
	DialContext: (&net.Dialer{
		Timeout:   iconHTTPDialTimeout,
		KeepAlive: iconHTTPKeepAlive,
	}).DialContext,
	TLSHandshakeTimeout:   iconHTTPTLSHandshakeTimeout,
	ResponseHeaderTimeout: iconHTTPResponseHeaderTimeout,
	ExpectContinueTimeout: iconHTTPExpectContinueTimeout,
	IdleConnTimeout:       iconHTTPIdleConnTimeout,
}

func newHTTPClient() *http.Client {
	return &http.Client{
		Timeout:   iconHTTPClientTimeout,
		Transport: iconHTTPTransport,
	}
}

// HTTPFetcher is the default Fetcher. With retryMax set to 0 it performs a
// single attempt per Get, which is what the normalizer expects.
type HTTPFetcher struct {
	client *http.Client
}

func NewHTTPFetcher(retryMax int) *HTTPFetcher {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = retryMax
	retryClient.Logger = nil
	retryClient.HTTPClient = newHTTPClient()

	return &HTTPFetcher{client: retryClient.StandardClient()}
}

// Get performs a single HTTP GET and returns the body as a string.
func (f *HTTPFetcher) Get(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create NewRequest for Get: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send HTTP request for Get: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body for Get: %w", err)
	}

	return string(body), nil
}
