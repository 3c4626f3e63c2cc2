package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	client := NewClient("http://localhost:11434", "qwen3:4b")
	assert.NotNil(t, client)
	assert.Equal(t, "http://localhost:11434", client.BaseURL)
	assert.Equal(t, "qwen3:4b", client.Model)
	assert.NotNil(t, client.client)
}

func TestGenerateContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)

		var req GenerateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "qwen3:4b", req.Model)
		assert.False(t, req.Stream)

		json.NewEncoder(w).Encode(GenerateResponse{Response: "Bonjour", Done: true})
	}))
	defer server.Close()

	client := NewClient(server.URL, "qwen3:4b")
	out, err := client.GenerateContent(context.Background(), "Say hello in French")
	require.NoError(t, err)
	assert.Equal(t, "Bonjour", out)
}

func TestGenerateContent_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL, "missing-model")
	_, err := client.GenerateContent(context.Background(), "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}

func TestGenerateContent_CanceledContext(t *testing.T) {
	client := NewClient("http://test", "qwen3:4b")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.GenerateContent(ctx, "test prompt")
	assert.Error(t, err)
}
