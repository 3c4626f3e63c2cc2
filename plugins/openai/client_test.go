package openai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewClient(t *testing.T) {
	client, err := NewClient("", "")
	assert.Error(t, err)
	assert.Nil(t, client)

	client, err = NewClient("test-api-key", "")
	assert.NoError(t, err)
	assert.Equal(t, "gpt-4o", client.Model)

	client, err = NewClient("test-api-key", "gpt-4o-mini")
	assert.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini", client.Model)
}
