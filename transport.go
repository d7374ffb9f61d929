package ptero

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// Request describes one API call: method, path relative to the surface
// prefix, optional query parameters and an optional typed body. A Request is
// constructed fresh per call and never shared.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	// Body is JSON-encoded when non-nil.
	Body any
	// Raw replaces Body with an unencoded payload (file writes). ContentType
	// defaults to text/plain when Raw is set.
	Raw         []byte
	ContentType string
}

// Response is the fully-buffered result of a successful (2xx) API call.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// RateLimits reports the API key's quota as of the most recent response.
type RateLimits struct {
	Limit     int
	Remaining int
}

// Transport executes authenticated requests against one panel surface.
// It applies no timeout policy of its own, performs no retries and caches
// nothing; callers needing resilience wrap calls themselves.
type Transport struct {
	baseURL    string
	prefix     string
	apiKey     string
	userAgent  string
	httpClient *http.Client
	logger     zerolog.Logger

	mu         sync.RWMutex
	rateLimits *RateLimits
}

// NewTransport creates a Transport bound to baseURL with the given surface
// prefix ("/api/client" or "/api/application") and API key.
func NewTransport(baseURL, prefix, apiKey string, logger zerolog.Logger, opts ...Option) (*Transport, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("%w: panel URL is required", ErrInvalidConfig)
	}
	if apiKey == "" {
		return nil, fmt.Errorf("%w: API key is required", ErrInvalidConfig)
	}
	baseURL = strings.TrimRight(baseURL, "/")

	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	return &Transport{
		baseURL:    baseURL,
		prefix:     prefix,
		apiKey:     apiKey,
		userAgent:  o.userAgent,
		httpClient: o.client(),
		logger:     logger,
	}, nil
}

// BaseURL returns the configured panel URL without a trailing slash.
func (t *Transport) BaseURL() string {
	return t.baseURL
}

// RateLimits returns the quota headers observed on the most recent response,
// or false if no response carried them yet.
func (t *Transport) RateLimits() (RateLimits, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.rateLimits == nil {
		return RateLimits{}, false
	}
	return *t.rateLimits, true
}

// Do executes a request and returns the buffered response. Any status >= 400
// is mapped into the error taxonomy; network failures before a response
// surface as KindTransport.
func (t *Transport) Do(ctx context.Context, req Request) (*Response, error) {
	requestURL := t.baseURL + t.prefix + req.Path
	if len(req.Query) > 0 {
		requestURL += "?" + req.Query.Encode()
	}

	var body io.Reader
	contentType := ""
	switch {
	case req.Raw != nil:
		body = bytes.NewReader(req.Raw)
		contentType = req.ContentType
		if contentType == "" {
			contentType = "text/plain"
		}
	case req.Body != nil:
		encoded, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(encoded)
		contentType = "application/json"
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, requestURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Authorization", "Bearer "+t.apiKey)
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", t.userAgent)
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	t.logger.Debug().
		Str("method", req.Method).
		Str("url", requestURL).
		Msg("Making Pterodactyl API request")

	resp, err := t.httpClient.Do(httpReq)
	if err != nil {
		return nil, transportError(err)
	}
	defer resp.Body.Close()

	t.recordRateLimits(resp.Header)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportError(err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, mapError(resp.StatusCode, raw)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       raw,
	}, nil
}

// Download issues an unauthenticated GET against an absolute URL, typically
// a signed URL handed out by the panel, and returns the live response for
// incremental consumption. The caller owns resp.Body.
func (t *Transport) Download(ctx context.Context, rawURL string) (*http.Response, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := t.httpClient.Do(httpReq)
	if err != nil {
		return nil, transportError(err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, mapError(resp.StatusCode, raw)
	}
	return resp, nil
}

// Upload issues an unauthenticated POST of body against an absolute URL,
// typically a signed upload URL. The body is consumed incrementally.
func (t *Transport) Upload(ctx context.Context, rawURL, contentType string, body io.Reader) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", contentType)

	resp, err := t.httpClient.Do(httpReq)
	if err != nil {
		return transportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return mapError(resp.StatusCode, raw)
	}
	return nil
}

func (t *Transport) recordRateLimits(h http.Header) {
	limit, err := strconv.Atoi(h.Get("X-RateLimit-Limit"))
	if err != nil {
		return
	}
	remaining, err := strconv.Atoi(h.Get("X-RateLimit-Remaining"))
	if err != nil {
		return
	}
	t.mu.Lock()
	t.rateLimits = &RateLimits{Limit: limit, Remaining: remaining}
	t.mu.Unlock()
}

// EscapePath escapes caller-supplied identifiers and joins them into a path
// beginning with "/". Escaping each segment prevents path injection through
// identifiers containing "/", "?" or "..".
func EscapePath(segments ...string) string {
	var b strings.Builder
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(s))
	}
	return b.String()
}
