package gemini

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewClient(t *testing.T) {
	t.Run("EmptyAPIKey", func(t *testing.T) {
		client, err := NewClient(context.Background(), "", "")
		assert.Error(t, err)
		assert.Nil(t, client)
		assert.Contains(t, err.Error(), "API key is required")
	})

	t.Run("ValidAPIKey", func(t *testing.T) {
		client, err := NewClient(context.Background(), "test-api-key-12345", "")
		assert.NoError(t, err)
		assert.NotNil(t, client)
		assert.Equal(t, "gemini-1.5-flash", client.Model)

		client.Close()
	})
}

func TestClient_Close(t *testing.T) {
	client, err := NewClient(context.Background(), "test-api-key", "gemini-1.5-pro")
	assert.NoError(t, err)
	assert.NotNil(t, client)

	client.Close()
	client.Close()
}

func TestClient_GenerateContent_InvalidClient(t *testing.T) {
	client := &Client{Model: "gemini-1.5-flash"}

	_, err := client.GenerateContent(context.Background(), "test prompt")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "client not initialized")
}
