package fashion

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
)

// Fetcher retrieves and parses one catalog page.
type Fetcher interface {
	Fetch(ctx context.Context, pageURL string) (Document, error)
}

// HTTPFetcher downloads static pages with a plain HTTP client.
type HTTPFetcher struct {
	client *resty.Client
}

// NewHTTPFetcher creates an HTTPFetcher. A zero timeout leaves the client's default.
func NewHTTPFetcher(userAgent string, timeout time.Duration) *HTTPFetcher {
	client := resty.New()
	if userAgent != "" {
		client.SetHeader("user-agent", userAgent)
	}
	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	return &HTTPFetcher{client: client}
}

// Fetch downloads pageURL and parses it, resolving links against the final
// URL after redirects.
func (f *HTTPFetcher) Fetch(ctx context.Context, pageURL string) (Document, error) {
	res, err := f.client.R().
		SetContext(ctx).
		Get(pageURL)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", pageURL, err)
	}
	if res.IsError() {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", pageURL, res.StatusCode())
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", pageURL, err)
	}
	// follow redirects so relative links resolve against the page actually served
	if raw := res.RawResponse; raw != nil && raw.Request != nil && raw.Request.URL != nil {
		base = raw.Request.URL
	}

	return ParseDocument(bytes.NewReader(res.Body()), base)
}
