package ptero

import (
	"net/http"
	"time"

	"github.com/hashicorp/go-cleanhttp"
)

// Option configures a Transport.
type Option func(*options)

// options holds configuration options for the Transport.
type options struct {
	httpClient *http.Client
	timeout    time.Duration
	userAgent  string
}

func defaultOptions() *options {
	return &options{
		userAgent: "ptero-go",
	}
}

// client returns the configured HTTP client, defaulting to a pooled client
// with keep-alives suitable for many sequential API calls.
func (o *options) client() *http.Client {
	if o.httpClient != nil {
		return o.httpClient
	}
	c := cleanhttp.DefaultPooledClient()
	c.Timeout = o.timeout
	return c
}

// WithHTTPClient uses a custom HTTP client instead of the pooled default.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// WithTimeout sets an overall per-request timeout on the default client.
// Ignored when WithHTTPClient is used; zero means no timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *options) {
		o.timeout = timeout
	}
}

// WithUserAgent sets a custom user agent string.
func WithUserAgent(userAgent string) Option {
	return func(o *options) {
		o.userAgent = userAgent
	}
}
