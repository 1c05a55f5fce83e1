package imaging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Fetcher obtains and decodes an image from a URL. Implementations report
// recoverable problems (network, timeout, non-image content) as descriptive
// errors; the caller folds those into a failure-shaped analysis record.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*Image, error)
}

const (
	defaultFetchTimeout = 15 * time.Second
	defaultMaxBytes     = 10 << 20 // 10MB
	fetchUserAgent      = "EcoLens/2.0 (EcoAlly Platform)"
)

// HTTPFetcher downloads images over HTTP(S) with a size cap and a
// content-type gate.
type HTTPFetcher struct {
	client   *http.Client
	timeout  time.Duration
	maxBytes int64
}

// NewHTTPFetcher builds a fetcher. Zero values select the defaults.
func NewHTTPFetcher(timeout time.Duration, maxBytes int64) *HTTPFetcher {
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	if maxBytes <= 0 {
		maxBytes = defaultMaxBytes
	}
	return &HTTPFetcher{client: &http.Client{}, timeout: timeout, maxBytes: maxBytes}
}

// Fetch downloads url and decodes the body into an RGB raster.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*Image, error) {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return nil, errors.New("invalid image URL")
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid image URL: %w", err)
	}
	req.Header.Set("User-Agent", fetchUserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("timed out downloading image (>%s)", f.timeout)
		}
		return nil, fmt.Errorf("network error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("HTTP %d error fetching image", resp.StatusCode)
	}

	ct := strings.ToLower(resp.Header.Get("Content-Type"))
	if !strings.Contains(ct, "image") {
		return nil, fmt.Errorf("URL is not an image (content-type: %s)", ct)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("network error: %w", err)
	}

	return Decode(data)
}
