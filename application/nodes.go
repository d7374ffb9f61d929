package application

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/go-querystring/query"

	"github.com/pterolib/ptero"
)

// ListNodes retrieves one page of nodes.
func (c *Client) ListNodes(ctx context.Context, opts ListOptions) ([]Node, ptero.Pagination, error) {
	params, err := query.Values(opts)
	if err != nil {
		return nil, ptero.Pagination{}, fmt.Errorf("failed to encode list options: %w", err)
	}

	resp, err := c.transport.Do(ctx, ptero.Request{
		Method: http.MethodGet,
		Path:   "/nodes",
		Query:  params,
	})
	if err != nil {
		return nil, ptero.Pagination{}, fmt.Errorf("failed to list nodes: %w", err)
	}
	return ptero.UnwrapList[Node](resp, ptero.ObjectNode)
}

// Node retrieves one node by numeric ID.
func (c *Client) Node(ctx context.Context, id int) (Node, error) {
	resp, err := c.transport.Do(ctx, ptero.Request{
		Method: http.MethodGet,
		Path:   "/nodes/" + strconv.Itoa(id),
	})
	if err != nil {
		return Node{}, fmt.Errorf("failed to get node %d: %w", id, err)
	}
	return ptero.UnwrapObject[Node](resp, ptero.ObjectNode)
}

// NodeConfiguration retrieves the daemon configuration blob for a node.
// Unlike other resources this response is not enveloped.
func (c *Client) NodeConfiguration(ctx context.Context, id int) (NodeConfiguration, error) {
	resp, err := c.transport.Do(ctx, ptero.Request{
		Method: http.MethodGet,
		Path:   "/nodes/" + strconv.Itoa(id) + "/configuration",
	})
	if err != nil {
		return NodeConfiguration{}, fmt.Errorf("failed to get node %d configuration: %w", id, err)
	}

	var cfg NodeConfiguration
	if err := json.Unmarshal(resp.Body, &cfg); err != nil {
		return NodeConfiguration{}, fmt.Errorf("failed to parse node configuration: %w", err)
	}
	return cfg, nil
}

// CreateNode registers a new node with the panel.
func (c *Client) CreateNode(ctx context.Context, opts CreateNodeOptions) (Node, error) {
	resp, err := c.transport.Do(ctx, ptero.Request{
		Method: http.MethodPost,
		Path:   "/nodes",
		Body:   opts,
	})
	if err != nil {
		return Node{}, fmt.Errorf("failed to create node: %w", err)
	}

	node, err := ptero.UnwrapObject[Node](resp, ptero.ObjectNode)
	if err != nil {
		return Node{}, err
	}

	c.logger.Debug().
		Int("id", node.ID).
		Str("fqdn", node.FQDN).
		Msg("Created node")

	return node, nil
}

// UpdateNode changes a node's settings.
func (c *Client) UpdateNode(ctx context.Context, id int, opts UpdateNodeOptions) (Node, error) {
	resp, err := c.transport.Do(ctx, ptero.Request{
		Method: http.MethodPatch,
		Path:   "/nodes/" + strconv.Itoa(id),
		Body:   opts,
	})
	if err != nil {
		return Node{}, fmt.Errorf("failed to update node %d: %w", id, err)
	}
	return ptero.UnwrapObject[Node](resp, ptero.ObjectNode)
}

// DeleteNode removes a node. The panel refuses while servers remain on it.
func (c *Client) DeleteNode(ctx context.Context, id int) error {
	_, err := c.transport.Do(ctx, ptero.Request{
		Method: http.MethodDelete,
		Path:   "/nodes/" + strconv.Itoa(id),
	})
	if err != nil {
		return fmt.Errorf("failed to delete node %d: %w", id, err)
	}
	return nil
}

// ListAllocations retrieves one page of a node's allocations.
func (c *Client) ListAllocations(ctx context.Context, nodeID int, opts ListOptions) ([]Allocation, ptero.Pagination, error) {
	params, err := query.Values(opts)
	if err != nil {
		return nil, ptero.Pagination{}, fmt.Errorf("failed to encode list options: %w", err)
	}

	resp, err := c.transport.Do(ctx, ptero.Request{
		Method: http.MethodGet,
		Path:   "/nodes/" + strconv.Itoa(nodeID) + "/allocations",
		Query:  params,
	})
	if err != nil {
		return nil, ptero.Pagination{}, fmt.Errorf("failed to list allocations for node %d: %w", nodeID, err)
	}
	return ptero.UnwrapList[Allocation](resp, ptero.ObjectAllocation)
}

// CreateAllocations adds allocations to a node.
func (c *Client) CreateAllocations(ctx context.Context, nodeID int, opts CreateAllocationsOptions) error {
	_, err := c.transport.Do(ctx, ptero.Request{
		Method: http.MethodPost,
		Path:   "/nodes/" + strconv.Itoa(nodeID) + "/allocations",
		Body:   opts,
	})
	if err != nil {
		return fmt.Errorf("failed to create allocations on node %d: %w", nodeID, err)
	}
	return nil
}

// DeleteAllocation removes an unassigned allocation from a node.
func (c *Client) DeleteAllocation(ctx context.Context, nodeID, allocationID int) error {
	_, err := c.transport.Do(ctx, ptero.Request{
		Method: http.MethodDelete,
		Path:   "/nodes/" + strconv.Itoa(nodeID) + "/allocations/" + strconv.Itoa(allocationID),
	})
	if err != nil {
		return fmt.Errorf("failed to delete allocation %d on node %d: %w", allocationID, nodeID, err)
	}
	return nil
}
