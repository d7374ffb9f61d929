package application

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/go-querystring/query"

	"github.com/pterolib/ptero"
)

// ListUsers retrieves one page of panel user accounts.
func (c *Client) ListUsers(ctx context.Context, opts ListUsersOptions) ([]User, ptero.Pagination, error) {
	params, err := query.Values(opts)
	if err != nil {
		return nil, ptero.Pagination{}, fmt.Errorf("failed to encode list options: %w", err)
	}

	resp, err := c.transport.Do(ctx, ptero.Request{
		Method: http.MethodGet,
		Path:   "/users",
		Query:  params,
	})
	if err != nil {
		return nil, ptero.Pagination{}, fmt.Errorf("failed to list users: %w", err)
	}
	return ptero.UnwrapList[User](resp, ptero.ObjectUser)
}

// User retrieves one user by numeric ID.
func (c *Client) User(ctx context.Context, id int) (User, error) {
	resp, err := c.transport.Do(ctx, ptero.Request{
		Method: http.MethodGet,
		Path:   "/users/" + strconv.Itoa(id),
	})
	if err != nil {
		return User{}, fmt.Errorf("failed to get user %d: %w", id, err)
	}
	return ptero.UnwrapObject[User](resp, ptero.ObjectUser)
}

// UserByExternalID retrieves one user by the external ID assigned at
// creation.
func (c *Client) UserByExternalID(ctx context.Context, externalID string) (User, error) {
	resp, err := c.transport.Do(ctx, ptero.Request{
		Method: http.MethodGet,
		Path:   ptero.EscapePath("users", "external", externalID),
	})
	if err != nil {
		return User{}, fmt.Errorf("failed to get user with external ID %s: %w", externalID, err)
	}
	return ptero.UnwrapObject[User](resp, ptero.ObjectUser)
}

// CreateUser creates a new panel user account. When no password is given
// the panel mails the user a setup link.
func (c *Client) CreateUser(ctx context.Context, opts CreateUserOptions) (User, error) {
	resp, err := c.transport.Do(ctx, ptero.Request{
		Method: http.MethodPost,
		Path:   "/users",
		Body:   opts,
	})
	if err != nil {
		return User{}, fmt.Errorf("failed to create user: %w", err)
	}

	user, err := ptero.UnwrapObject[User](resp, ptero.ObjectUser)
	if err != nil {
		return User{}, err
	}

	c.logger.Debug().
		Int("id", user.ID).
		Str("username", user.Username).
		Msg("Created user")

	return user, nil
}

// UpdateUser changes a user account.
func (c *Client) UpdateUser(ctx context.Context, id int, opts UpdateUserOptions) (User, error) {
	resp, err := c.transport.Do(ctx, ptero.Request{
		Method: http.MethodPatch,
		Path:   "/users/" + strconv.Itoa(id),
		Body:   opts,
	})
	if err != nil {
		return User{}, fmt.Errorf("failed to update user %d: %w", id, err)
	}
	return ptero.UnwrapObject[User](resp, ptero.ObjectUser)
}

// DeleteUser removes a user account. The panel refuses while the user still
// owns servers.
func (c *Client) DeleteUser(ctx context.Context, id int) error {
	_, err := c.transport.Do(ctx, ptero.Request{
		Method: http.MethodDelete,
		Path:   "/users/" + strconv.Itoa(id),
	})
	if err != nil {
		return fmt.Errorf("failed to delete user %d: %w", id, err)
	}
	return nil
}
