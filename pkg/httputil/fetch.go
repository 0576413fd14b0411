package httputil

import (
	"context"
	"io"
	"net/http"
	"time"

	zverrors "github.com/askonen/zoomview/pkg/errors"
	"github.com/askonen/zoomview/pkg/observability"
)

// DefaultMaxBytes bounds how much of a remote image is read. Decoding a
// header needs far less, but some formats bury dimensions deep enough
// that a generous cap is cheaper than a second request.
const DefaultMaxBytes = 1 << 20

// Fetcher performs GET requests with retry and size bounding.
type Fetcher struct {
	Client   *http.Client
	Attempts int
	Delay    time.Duration
	MaxBytes int64
}

// NewFetcher creates a fetcher with the default retry policy (3 attempts,
// 1s initial delay) and size cap. A nil client gets a 30s timeout.
func NewFetcher(client *http.Client) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Fetcher{
		Client:   client,
		Attempts: 3,
		Delay:    time.Second,
		MaxBytes: DefaultMaxBytes,
	}
}

// Get fetches url and returns at most MaxBytes of the response body.
// 5xx responses and transport errors are retried; 4xx responses fail
// immediately with a structured error.
func (f *Fetcher) Get(ctx context.Context, url string) ([]byte, error) {
	var body []byte

	err := Retry(ctx, f.Attempts, f.Delay, func() error {
		data, err := f.getOnce(ctx, url)
		if err != nil {
			return err
		}
		body = data
		return nil
	})
	return body, err
}

func (f *Fetcher) getOnce(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, zverrors.Wrap(zverrors.ErrCodeInvalidSource, err, "build request for %s", url)
	}

	observability.HTTP().OnRequest(ctx, req.Method, req.URL.Host, req.URL.Path)
	start := time.Now()

	resp, err := f.Client.Do(req)
	if err != nil {
		observability.HTTP().OnError(ctx, req.Method, req.URL.Host, req.URL.Path, err)
		return nil, Retryable(zverrors.Wrap(zverrors.ErrCodeNetwork, err, "fetch %s", url))
	}
	defer resp.Body.Close()

	observability.HTTP().OnResponse(ctx, req.Method, req.URL.Host, req.URL.Path, resp.StatusCode, time.Since(start))

	switch {
	case resp.StatusCode >= 500:
		return nil, Retryable(zverrors.New(zverrors.ErrCodeNetwork, "fetch %s: status %d", url, resp.StatusCode))
	case resp.StatusCode == http.StatusNotFound:
		return nil, zverrors.New(zverrors.ErrCodeNotFound, "fetch %s: status 404", url)
	case resp.StatusCode >= 400:
		return nil, zverrors.New(zverrors.ErrCodeNetwork, "fetch %s: status %d", url, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.MaxBytes))
	if err != nil {
		return nil, Retryable(zverrors.Wrap(zverrors.ErrCodeNetwork, err, "read body of %s", url))
	}
	return data, nil
}
