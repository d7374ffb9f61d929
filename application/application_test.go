package application

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cl, err := New(server.URL, "test-key", zerolog.Nop())
	require.NoError(t, err)
	return cl
}

func TestNew(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("valid config", func(t *testing.T) {
		cl, err := New("https://panel.example.com", "test-key", logger)
		require.NoError(t, err)
		assert.NotNil(t, cl)
	})

	t.Run("missing URL", func(t *testing.T) {
		_, err := New("", "test-key", logger)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "URL is required")
	})

	t.Run("missing API key", func(t *testing.T) {
		_, err := New("https://panel.example.com", "", logger)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "API key is required")
	})
}
