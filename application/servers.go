package application

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/go-querystring/query"

	"github.com/pterolib/ptero"
)

// ListServers retrieves one page of all servers on the panel.
func (c *Client) ListServers(ctx context.Context, opts ListServersOptions) ([]Server, ptero.Pagination, error) {
	params, err := query.Values(opts)
	if err != nil {
		return nil, ptero.Pagination{}, fmt.Errorf("failed to encode list options: %w", err)
	}

	resp, err := c.transport.Do(ctx, ptero.Request{
		Method: http.MethodGet,
		Path:   "/servers",
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

// Server retrieves one server by its numeric ID.
func (c *Client) Server(ctx context.Context, id int) (Server, error) {
	resp, err := c.transport.Do(ctx, ptero.Request{
		Method: http.MethodGet,
		Path:   "/servers/" + strconv.Itoa(id),
	})
	if err != nil {
		return Server{}, fmt.Errorf("failed to get server %d: %w", id, err)
	}
	return ptero.UnwrapObject[Server](resp, ptero.ObjectServer)
}

// ServerByExternalID retrieves one server by the external ID assigned at
// creation.
func (c *Client) ServerByExternalID(ctx context.Context, externalID string) (Server, error) {
	resp, err := c.transport.Do(ctx, ptero.Request{
		Method: http.MethodGet,
		Path:   ptero.EscapePath("servers", "external", externalID),
	})
	if err != nil {
		return Server{}, fmt.Errorf("failed to get server with external ID %s: %w", externalID, err)
	}
	return ptero.UnwrapObject[Server](resp, ptero.ObjectServer)
}

// CreateServer provisions a new server.
func (c *Client) CreateServer(ctx context.Context, opts CreateServerOptions) (Server, error) {
	resp, err := c.transport.Do(ctx, ptero.Request{
		Method: http.MethodPost,
		Path:   "/servers",
		Body:   opts,
	})
	if err != nil {
		return Server{}, fmt.Errorf("failed to create server: %w", err)
	}

	server, err := ptero.UnwrapObject[Server](resp, ptero.ObjectServer)
	if err != nil {
		return Server{}, err
	}

	c.logger.Debug().
		Int("id", server.ID).
		Str("identifier", server.Identifier).
		Msg("Created server")

	return server, nil
}

// UpdateServerDetails changes a server's name, owner, external ID or
// description.
func (c *Client) UpdateServerDetails(ctx context.Context, id int, opts UpdateServerDetailsOptions) (Server, error) {
	resp, err := c.transport.Do(ctx, ptero.Request{
		Method: http.MethodPatch,
		Path:   "/servers/" + strconv.Itoa(id) + "/details",
		Body:   opts,
	})
	if err != nil {
		return Server{}, fmt.Errorf("failed to update server %d details: %w", id, err)
	}
	return ptero.UnwrapObject[Server](resp, ptero.ObjectServer)
}

// UpdateServerBuild changes a server's resource limits and allocations.
func (c *Client) UpdateServerBuild(ctx context.Context, id int, opts UpdateServerBuildOptions) (Server, error) {
	resp, err := c.transport.Do(ctx, ptero.Request{
		Method: http.MethodPatch,
		Path:   "/servers/" + strconv.Itoa(id) + "/build",
		Body:   opts,
	})
	if err != nil {
		return Server{}, fmt.Errorf("failed to update server %d build: %w", id, err)
	}
	return ptero.UnwrapObject[Server](resp, ptero.ObjectServer)
}

// SuspendServer suspends a running server.
func (c *Client) SuspendServer(ctx context.Context, id int) error {
	_, err := c.transport.Do(ctx, ptero.Request{
		Method: http.MethodPost,
		Path:   "/servers/" + strconv.Itoa(id) + "/suspend",
	})
	if err != nil {
		return fmt.Errorf("failed to suspend server %d: %w", id, err)
	}
	return nil
}

// UnsuspendServer lifts a suspension.
func (c *Client) UnsuspendServer(ctx context.Context, id int) error {
	_, err := c.transport.Do(ctx, ptero.Request{
		Method: http.MethodPost,
		Path:   "/servers/" + strconv.Itoa(id) + "/unsuspend",
	})
	if err != nil {
		return fmt.Errorf("failed to unsuspend server %d: %w", id, err)
	}
	return nil
}

// ReinstallServer re-runs the server's egg install script.
func (c *Client) ReinstallServer(ctx context.Context, id int) error {
	_, err := c.transport.Do(ctx, ptero.Request{
		Method: http.MethodPost,
		Path:   "/servers/" + strconv.Itoa(id) + "/reinstall",
	})
	if err != nil {
		return fmt.Errorf("failed to reinstall server %d: %w", id, err)
	}
	return nil
}

// DeleteServer removes a server. The panel refuses when the server still
// has active dependents; use ForceDeleteServer to bypass those checks.
func (c *Client) DeleteServer(ctx context.Context, id int) error {
	_, err := c.transport.Do(ctx, ptero.Request{
		Method: http.MethodDelete,
		Path:   "/servers/" + strconv.Itoa(id),
	})
	if err != nil {
		return fmt.Errorf("failed to delete server %d: %w", id, err)
	}
	return nil
}

// ForceDeleteServer removes a server unconditionally, bypassing dependent
// checks. Deliberately a separate operation from DeleteServer; the two have
// different failure semantics.
func (c *Client) ForceDeleteServer(ctx context.Context, id int) error {
	_, err := c.transport.Do(ctx, ptero.Request{
		Method: http.MethodDelete,
		Path:   "/servers/" + strconv.Itoa(id) + "/force",
	})
	if err != nil {
		return fmt.Errorf("failed to force delete server %d: %w", id, err)
	}
	return nil
}
