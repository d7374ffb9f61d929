package application

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListEggs(t *testing.T) {
	// The eggs listing carries no pagination meta; the list still decodes.
	cl := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/application/nests/1/eggs", r.URL.Path)
		w.Write([]byte(`{
			"object": "list",
			"data": [
				{"object": "egg", "attributes": {
					"id": 1,
					"uuid": "694d8bb3-8e04-42a6-a64e-cd1a3a7eb3b5",
					"name": "Vanilla Minecraft",
					"nest": 1,
					"author": "support@pterodactyl.io",
					"description": "Minecraft server",
					"docker_image": "quay.io/pterodactyl/core:java",
					"startup": "java -jar {{SERVER_JARFILE}}",
					"created_at": "2024-03-01T10:00:00+00:00",
					"updated_at": "2024-03-01T10:00:00+00:00"
				}}
			]
		}`))
	})

	eggs, err := cl.ListEggs(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, eggs, 1)
	assert.Equal(t, "Vanilla Minecraft", eggs[0].Name)
	assert.Equal(t, 1, eggs[0].Nest)
}

func TestNest(t *testing.T) {
	cl := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/application/nests/1", r.URL.Path)
		w.Write([]byte(`{"object": "nest", "attributes": {
			"id": 1,
			"uuid": "78e3e8a7-6b33-4a6d-b26c-fd0e0e23b5a3",
			"author": "support@pterodactyl.io",
			"name": "Minecraft",
			"description": "Minecraft servers",
			"created_at": "2024-03-01T10:00:00+00:00",
			"updated_at": "2024-03-01T10:00:00+00:00"
		}}`))
	})

	nest, err := cl.Nest(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Minecraft", nest.Name)
}
