package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultHTTPTimeout = 10 * time.Second

// HTTPOption configures an HTTPProvider.
type HTTPOption func(*HTTPProvider)

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(client *http.Client) HTTPOption {
	return func(p *HTTPProvider) {
		if client != nil {
			p.client = client
		}
	}
}

// WithHeader adds a request header, e.g. an API key.
func WithHeader(key, value string) HTTPOption {
	return func(p *HTTPProvider) {
		p.headers.Set(key, value)
	}
}

// HTTPProvider fetches catalogs with GET {base}/{kind}.
type HTTPProvider struct {
	base    string
	client  *http.Client
	headers http.Header
}

// NewHTTPProvider creates a provider rooted at base.
func NewHTTPProvider(base string, opts ...HTTPOption) *HTTPProvider {
	p := &HTTPProvider{
		base:    strings.TrimRight(base, "/"),
		client:  &http.Client{Timeout: defaultHTTPTimeout},
		headers: make(http.Header),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// Catalog fetches and validates the catalog for kind. Every failure wraps
// ErrCatalogUnavailable.
func (p *HTTPProvider) Catalog(ctx context.Context, kind string) ([]Group, error) {
	endpoint := p.base + "/" + url.PathEscape(kind)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %w", ErrCatalogUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")
	for key, values := range p.headers {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("%w: GET %s: status %d", ErrCatalogUnavailable, endpoint, resp.StatusCode)
	}

	var doc Catalog
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", ErrCatalogUnavailable, endpoint, err)
	}
	groups, err := normaliseGroups(doc.Groups, endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}
	return groups, nil
}
