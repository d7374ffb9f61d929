package application

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/go-querystring/query"

	"github.com/pterolib/ptero"
)

// ListNests retrieves one page of nests.
func (c *Client) ListNests(ctx context.Context, opts ListOptions) ([]Nest, ptero.Pagination, error) {
	params, err := query.Values(opts)
	if err != nil {
		return nil, ptero.Pagination{}, fmt.Errorf("failed to encode list options: %w", err)
	}

	resp, err := c.transport.Do(ctx, ptero.Request{
		Method: http.MethodGet,
		Path:   "/nests",
		Query:  params,
	})
	if err != nil {
		return nil, ptero.Pagination{}, fmt.Errorf("failed to list nests: %w", err)
	}
	return ptero.UnwrapList[Nest](resp, ptero.ObjectNest)
}

// Nest retrieves one nest by numeric ID.
func (c *Client) Nest(ctx context.Context, id int) (Nest, error) {
	resp, err := c.transport.Do(ctx, ptero.Request{
		Method: http.MethodGet,
		Path:   "/nests/" + strconv.Itoa(id),
	})
	if err != nil {
		return Nest{}, fmt.Errorf("failed to get nest %d: %w", id, err)
	}
	return ptero.UnwrapObject[Nest](resp, ptero.ObjectNest)
}

// ListEggs retrieves all eggs in a nest. The endpoint is unpaginated.
func (c *Client) ListEggs(ctx context.Context, nestID int) ([]Egg, error) {
	resp, err := c.transport.Do(ctx, ptero.Request{
		Method: http.MethodGet,
		Path:   "/nests/" + strconv.Itoa(nestID) + "/eggs",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list eggs in nest %d: %w", nestID, err)
	}
	eggs, _, err := ptero.UnwrapList[Egg](resp, ptero.ObjectEgg)
	return eggs, err
}

// Egg retrieves one egg in a nest.
func (c *Client) Egg(ctx context.Context, nestID, eggID int) (Egg, error) {
	resp, err := c.transport.Do(ctx, ptero.Request{
		Method: http.MethodGet,
		Path:   "/nests/" + strconv.Itoa(nestID) + "/eggs/" + strconv.Itoa(eggID),
	})
	if err != nil {
		return Egg{}, fmt.Errorf("failed to get egg %d in nest %d: %w", eggID, nestID, err)
	}
	return ptero.UnwrapObject[Egg](resp, ptero.ObjectEgg)
}
