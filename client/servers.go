package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/go-querystring/query"

	"github.com/pterolib/ptero"
)

// Account retrieves the authenticated account's details.
func (c *Client) Account(ctx context.Context) (Account, error) {
	resp, err := c.transport.Do(ctx, ptero.Request{
		Method: http.MethodGet,
		Path:   "/account",
	})
	if err != nil {
		return Account{}, fmt.Errorf("failed to get account: %w", err)
	}
	return ptero.UnwrapObject[Account](resp, ptero.ObjectUser)
}

// ListServers retrieves one page of the servers visible to the API key.
func (c *Client) ListServers(ctx context.Context, opts ListServersOptions) ([]Server, ptero.Pagination, error) {
	params, err := query.Values(opts)
	if err != nil {
		return nil, ptero.Pagination{}, fmt.Errorf("failed to encode list options: %w", err)
	}

	resp, err := c.transport.Do(ctx, ptero.Request{
		Method: http.MethodGet,
		Path:   "",
		Query:  params,
	})
	if err != nil {
		return nil, ptero.Pagination{}, fmt.Errorf("failed to list servers: %w", err)
	}

	servers, page, err := ptero.UnwrapList[Server](resp, ptero.ObjectServer)
	if err != nil {
		return nil, ptero.Pagination{}, err
	}

	c.logger.Debug().
		Int("count", len(servers)).
		Int("page", page.CurrentPage).
		Msg("Retrieved servers from panel")

	return servers, page, nil
}

// Server retrieves one server by its short identifier.
func (c *Client) Server(ctx context.Context, identifier string) (Server, error) {
	resp, err := c.transport.Do(ctx, ptero.Request{
		Method: http.MethodGet,
		Path:   ptero.EscapePath("servers", identifier),
	})
	if err != nil {
		return Server{}, fmt.Errorf("failed to get server %s: %w", identifier, err)
	}
	return ptero.UnwrapObject[Server](resp, ptero.ObjectServer)
}

// ServerResources retrieves a live resource-usage sample for a server.
func (c *Client) ServerResources(ctx context.Context, identifier string) (Resources, error) {
	resp, err := c.transport.Do(ctx, ptero.Request{
		Method: http.MethodGet,
		Path:   ptero.EscapePath("servers", identifier, "resources"),
	})
	if err != nil {
		return Resources{}, fmt.Errorf("failed to get resources for %s: %w", identifier, err)
	}
	return ptero.UnwrapObject[Resources](resp, ptero.ObjectStats)
}

// SendCommand writes a single command to the server console.
func (c *Client) SendCommand(ctx context.Context, identifier, command string) error {
	_, err := c.transport.Do(ctx, ptero.Request{
		Method: http.MethodPost,
		Path:   ptero.EscapePath("servers", identifier, "command"),
		Body:   map[string]string{"command": command},
	})
	if err != nil {
		return fmt.Errorf("failed to send command to %s: %w", identifier, err)
	}
	return nil
}

// SetPowerState sends a power signal to the server.
func (c *Client) SetPowerState(ctx context.Context, identifier string, signal PowerSignal) error {
	if err := validateSignal(signal); err != nil {
		return err
	}
	_, err := c.transport.Do(ctx, ptero.Request{
		Method: http.MethodPost,
		Path:   ptero.EscapePath("servers", identifier, "power"),
		Body:   map[string]string{"signal": string(signal)},
	})
	if err != nil {
		return fmt.Errorf("failed to set power state of %s: %w", identifier, err)
	}
	return nil
}
