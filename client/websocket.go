package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pterolib/ptero"
	"github.com/pterolib/ptero/console"
)

// WebsocketCredentials are the ephemeral token and daemon endpoint issued by
// the console handshake endpoint. The token is short-lived; fetch a fresh
// one per connection attempt.
type WebsocketCredentials struct {
	Token    string `json:"token"`
	Endpoint string `json:"socket"`
}

// WebsocketCredentials obtains console credentials for a server. The
// response is not enveloped like other resources; it carries a bare data
// wrapper.
func (c *Client) WebsocketCredentials(ctx context.Context, identifier string) (WebsocketCredentials, error) {
	resp, err := c.transport.Do(ctx, ptero.Request{
		Method: http.MethodGet,
		Path:   ptero.EscapePath("servers", identifier, "websocket"),
	})
	if err != nil {
		return WebsocketCredentials{}, fmt.Errorf("failed to get websocket credentials for %s: %w", identifier, err)
	}

	var wrapper struct {
		Data WebsocketCredentials `json:"data"`
	}
	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return WebsocketCredentials{}, fmt.Errorf("failed to parse websocket credentials: %w", err)
	}
	if wrapper.Data.Token == "" || wrapper.Data.Endpoint == "" {
		return WebsocketCredentials{}, fmt.Errorf("websocket credentials response missing token or socket")
	}
	return wrapper.Data, nil
}

// Console performs the websocket handshake for a server and connects a live
// console channel. The caller owns the returned channel and must close it.
func (c *Client) Console(ctx context.Context, identifier string, opts ...console.Option) (*console.Channel, error) {
	creds, err := c.WebsocketCredentials(ctx, identifier)
	if err != nil {
		return nil, err
	}
	return console.Connect(ctx, console.Credentials{
		Endpoint: creds.Endpoint,
		Token:    creds.Token,
		Origin:   c.transport.BaseURL(),
	}, c.logger, opts...)
}
