package application

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pterolib/ptero"
)

func serverAttrs(id int, name string) string {
	return fmt.Sprintf(`{
		"id": %d,
		"external_id": "remote-%d",
		"uuid": "d3aac109-e5a0-4331-b03e-3454f7e136dc",
		"identifier": "d3aac109",
		"name": %q,
		"description": "",
		"status": null,
		"suspended": false,
		"limits": {"memory": 512, "swap": 0, "disk": 200, "io": 500, "cpu": 0, "threads": null},
		"feature_limits": {"databases": 5, "allocations": 5, "backups": 2},
		"user": 1,
		"node": 1,
		"allocation": 1,
		"nest": 1,
		"egg": 5,
		"container": {
			"startup_command": "java -jar server.jar",
			"image": "quay.io/pterodactyl/core:java",
			"installed": 1,
			"environment": {"SERVER_JARFILE": "server.jar"}
		},
		"created_at": "2024-03-01T10:00:00+00:00",
		"updated_at": "2024-03-05T15:30:00+00:00"
	}`, id, id, name)
}

func TestListServers(t *testing.T) {
	t.Run("two entry page reports no more pages", func(t *testing.T) {
		cl := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/application/servers", r.URL.Path)
			fmt.Fprintf(w, `{
				"object": "list",
				"data": [
					{"object": "server", "attributes": %s},
					{"object": "server", "attributes": %s}
				],
				"meta": {"pagination": {"total": 2, "count": 2, "per_page": 50, "current_page": 1, "total_pages": 1}}
			}`, serverAttrs(1, "Wuhu Island"), serverAttrs(2, "Second"))
		})

		servers, page, err := cl.ListServers(context.Background(), ListServersOptions{})
		require.NoError(t, err)
		require.Len(t, servers, 2)
		assert.Equal(t, 1, servers[0].ID)
		assert.Equal(t, "Wuhu Island", servers[0].Name)
		assert.True(t, bool(servers[0].Container.Installed))
		assert.Equal(t, 2, servers[1].ID)
		assert.False(t, page.HasMore())
	})

	t.Run("filters become query parameters", func(t *testing.T) {
		cl := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "3", r.URL.Query().Get("page"))
			assert.Equal(t, "Wuhu", r.URL.Query().Get("filter[name]"))
			w.Write([]byte(`{"object": "list", "data": [], "meta": {"pagination": {"total": 0, "count": 0, "per_page": 50, "current_page": 3, "total_pages": 1}}}`))
		})

		_, _, err := cl.ListServers(context.Background(), ListServersOptions{Page: 3, FilterName: "Wuhu"})
		require.NoError(t, err)
	})
}

func TestServer(t *testing.T) {
	cl := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/application/servers/7", r.URL.Path)
		fmt.Fprintf(w, `{"object": "server", "attributes": %s}`, serverAttrs(7, "Wuhu Island"))
	})

	server, err := cl.Server(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 7, server.ID)
	require.NotNil(t, server.ExternalID)
	assert.Equal(t, "remote-7", *server.ExternalID)
	assert.Equal(t, "d3aac109-e5a0-4331-b03e-3454f7e136dc", server.UUID.String())
}

func TestServerByExternalID(t *testing.T) {
	cl := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/application/servers/external/shop%2Forder-42", r.URL.EscapedPath())
		fmt.Fprintf(w, `{"object": "server", "attributes": %s}`, serverAttrs(7, "Wuhu Island"))
	})

	server, err := cl.ServerByExternalID(context.Background(), "shop/order-42")
	require.NoError(t, err)
	assert.Equal(t, 7, server.ID)
}

func TestCreateServer(t *testing.T) {
	cl := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/application/servers", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{
			"name": "Wuhu Island",
			"user": 1,
			"egg": 5,
			"docker_image": "quay.io/pterodactyl/core:java",
			"startup": "java -jar server.jar",
			"environment": {"SERVER_JARFILE": "server.jar"},
			"limits": {"memory": 512, "swap": 0, "disk": 200, "io": 500, "cpu": 0},
			"feature_limits": {"databases": 0, "allocations": 0, "backups": 0},
			"allocation": {"default": 17}
		}`, string(body))
		w.WriteHeader(http.StatusCreated)
		fmt.Fprintf(w, `{"object": "server", "attributes": %s}`, serverAttrs(7, "Wuhu Island"))
	})

	server, err := cl.CreateServer(context.Background(), CreateServerOptions{
		Name:        "Wuhu Island",
		User:        1,
		Egg:         5,
		DockerImage: "quay.io/pterodactyl/core:java",
		Startup:     "java -jar server.jar",
		Environment: map[string]string{"SERVER_JARFILE": "server.jar"},
		Limits:      Limits{Memory: 512, Disk: 200, IO: 500},
		Allocation:  AllocationSettings{Default: 17},
	})
	require.NoError(t, err)
	assert.Equal(t, 7, server.ID)
	assert.Equal(t, "d3aac109", server.Identifier)
}

func TestUpdateServerBuild(t *testing.T) {
	cl := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/application/servers/7/build", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{
			"allocation": 17,
			"limits": {"memory": 1024, "swap": 0, "disk": 200, "io": 500, "cpu": 0},
			"feature_limits": {"databases": 5, "allocations": 5, "backups": 2},
			"add_allocations": [18]
		}`, string(body))
		fmt.Fprintf(w, `{"object": "server", "attributes": %s}`, serverAttrs(7, "Wuhu Island"))
	})

	_, err := cl.UpdateServerBuild(context.Background(), 7, UpdateServerBuildOptions{
		Allocation:     17,
		Limits:         Limits{Memory: 1024, Disk: 200, IO: 500},
		FeatureLimits:  FeatureLimits{Databases: 5, Allocations: 5, Backups: 2},
		AddAllocations: []int{18},
	})
	require.NoError(t, err)
}

func TestServerLifecycleActions(t *testing.T) {
	tests := []struct {
		name string
		path string
		call func(cl *Client) error
	}{
		{
			name: "suspend",
			path: "/api/application/servers/7/suspend",
			call: func(cl *Client) error { return cl.SuspendServer(context.Background(), 7) },
		},
		{
			name: "unsuspend",
			path: "/api/application/servers/7/unsuspend",
			call: func(cl *Client) error { return cl.UnsuspendServer(context.Background(), 7) },
		},
		{
			name: "reinstall",
			path: "/api/application/servers/7/reinstall",
			call: func(cl *Client) error { return cl.ReinstallServer(context.Background(), 7) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cl := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, tt.path, r.URL.Path)
				w.WriteHeader(http.StatusNoContent)
			})
			require.NoError(t, tt.call(cl))
		})
	}
}

func TestDeleteServer(t *testing.T) {
	t.Run("refusal with dependents is caller actionable", func(t *testing.T) {
		cl := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodDelete, r.Method)
			assert.Equal(t, "/api/application/servers/7", r.URL.Path)
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"errors":[{"code":"HasActiveServersException","status":"400","detail":"Cannot delete a server that still has active backups."}]}`))
		})

		err := cl.DeleteServer(context.Background(), 7)
		var perr *ptero.Error
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, ptero.KindValidation, perr.Kind)
		assert.NotEqual(t, ptero.KindServerError, perr.Kind)
		assert.Contains(t, perr.Details[0].Detail, "active backups")
	})

	t.Run("success", func(t *testing.T) {
		cl := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/application/servers/7", r.URL.Path)
			w.WriteHeader(http.StatusNoContent)
		})
		require.NoError(t, cl.DeleteServer(context.Background(), 7))
	})
}

func TestForceDeleteServer(t *testing.T) {
	// Force delete succeeds where plain delete refuses; it is a distinct
	// endpoint, not a fallback inside DeleteServer.
	cl := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/application/servers/7/force", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, cl.ForceDeleteServer(context.Background(), 7))
}
