package client

import (
	"github.com/rs/zerolog"

	"github.com/pterolib/ptero"
)

// Client is a typed facade over the user-scoped Client API. It is immutable
// after construction and safe for concurrent use.
type Client struct {
	transport *ptero.Transport
	logger    zerolog.Logger
}

// New creates a Client API client bound to the panel at baseURL,
// authenticating with a client API key.
func New(baseURL, apiKey string, logger zerolog.Logger, opts ...ptero.Option) (*Client, error) {
	transport, err := ptero.NewTransport(baseURL, "/api/client", apiKey, logger, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{
		transport: transport,
		logger:    logger,
	}, nil
}

// RateLimits returns the API key quota observed on the most recent response.
func (c *Client) RateLimits() (ptero.RateLimits, bool) {
	return c.transport.RateLimits()
}
