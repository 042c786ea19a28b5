package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// HTTPName is the default registry name of HTTPBridge.
	HTTPName = "http"

	defaultHTTPTimeout = 60 * time.Second
	// RequestIDHeader correlates bridge calls with collaborator logs.
	RequestIDHeader = "X-Request-ID"
)

// HTTPOption configures an HTTPBridge.
type HTTPOption func(*HTTPBridge)

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(client *http.Client) HTTPOption {
	return func(b *HTTPBridge) {
		if client != nil {
			b.client = client
		}
	}
}

// WithHeader adds a header to every request.
func WithHeader(key, value string) HTTPOption {
	return func(b *HTTPBridge) {
		b.headers.Set(key, value)
	}
}

// WithName overrides the registry name.
func WithName(name string) HTTPOption {
	return func(b *HTTPBridge) {
		if name != "" {
			b.name = name
		}
	}
}

// WithLogger logs failed calls.
func WithLogger(logger *slog.Logger) HTTPOption {
	return func(b *HTTPBridge) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// HTTPBridge posts documents to an external rendering service:
// POST {base}/preview answers {"html": ...} and POST {base}/render answers
// application/pdf bytes.
type HTTPBridge struct {
	base    string
	name    string
	client  *http.Client
	headers http.Header
	logger  *slog.Logger
}

var _ Bridge = (*HTTPBridge)(nil)

// NewHTTP creates a bridge rooted at base.
func NewHTTP(base string, opts ...HTTPOption) *HTTPBridge {
	b := &HTTPBridge{
		base:    strings.TrimRight(base, "/"),
		name:    HTTPName,
		client:  &http.Client{Timeout: defaultHTTPTimeout},
		headers: make(http.Header),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

func (b *HTTPBridge) Name() string { return b.name }

// Preview posts req to {base}/preview.
func (b *HTTPBridge) Preview(ctx context.Context, req Request) (Preview, error) {
	resp, err := b.post(ctx, "/preview", "application/json", req)
	if err != nil {
		return Preview{}, err
	}
	defer resp.Body.Close()

	var out Preview
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Preview{}, fmt.Errorf("bridge: decode preview: %w", err)
	}
	return out, nil
}

// Render posts req to {base}/render and returns the PDF.
func (b *HTTPBridge) Render(ctx context.Context, req Request) ([]byte, error) {
	resp, err := b.post(ctx, "/render", "application/pdf", req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "application/pdf") {
		return nil, fmt.Errorf("bridge: render: unexpected content type %q", ct)
	}
	pdf, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("bridge: read pdf: %w", err)
	}
	return pdf, nil
}

func (b *HTTPBridge) post(ctx context.Context, path, accept string, payload Request) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("bridge: encode request: %w", err)
	}
	endpoint := b.base + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("bridge: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", accept)
	for key, values := range b.headers {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)

	resp, err := b.client.Do(req)
	if err != nil {
		b.logger.Warn("bridge request failed", "endpoint", endpoint, "request_id", requestID, "error", err)
		return nil, fmt.Errorf("bridge: POST %s: %w", endpoint, err)
	}
	if resp.StatusCode == http.StatusNotImplemented {
		resp.Body.Close()
		return nil, fmt.Errorf("bridge: POST %s: %w", endpoint, ErrRenderUnavailable)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		b.logger.Warn("bridge request rejected", "endpoint", endpoint, "request_id", requestID, "status", resp.StatusCode)
		return nil, fmt.Errorf("bridge: POST %s: status %d: %s", endpoint, resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	return resp, nil
}
