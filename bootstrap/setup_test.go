package bootstrap

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyago/tripdesk/config"
)

func baseConfig() *config.Config {
	cfg := &config.Config{}
	cfg.AI.Plugin = "gemini"
	cfg.Weather.BaseURL = "https://api.weatherapi.com/v1"
	cfg.Weather.TimeoutSeconds = 10
	cfg.Search.BaseURL = "https://serpapi.com"
	cfg.Search.TimeoutSeconds = 30
	cfg.Search.FlightLimit = 5
	cfg.Search.HotelLimit = 5
	cfg.Planner.ProviderTimeoutSeconds = 30
	cfg.Planner.MaxToolSteps = 12
	return cfg
}

func TestSetup_NoCredentials(t *testing.T) {
	app, err := Setup(context.Background(), baseConfig())
	require.NoError(t, err)

	// weather, search, attractions and llm are all disabled
	assert.Len(t, app.Disabled, 4)
	assert.Nil(t, app.Planner.Weather)
	assert.Nil(t, app.Planner.Flights)
	assert.Nil(t, app.Agent)

	// holidays and core tools need no credentials
	assert.NotNil(t, app.Planner.Holidays)
	assert.NotEmpty(t, app.Registry.GetTools())
}

func TestSetup_SearchCredentialEnablesFlightsAndHotels(t *testing.T) {
	cfg := baseConfig()
	cfg.Search.APIKey = "test-key"

	app, err := Setup(context.Background(), cfg)
	require.NoError(t, err)

	assert.NotNil(t, app.Planner.Flights)
	assert.NotNil(t, app.Planner.Hotels)

	_, hasFlights := app.Registry.Lookup("flights_tool")
	_, hasHotels := app.Registry.Lookup("hotels_tool")
	assert.True(t, hasFlights)
	assert.True(t, hasHotels)
}

func TestSetup_OllamaNeedsNoKey(t *testing.T) {
	cfg := baseConfig()
	cfg.AI.Plugin = "ollama"
	cfg.AI.Ollama.BaseURL = "http://localhost:11434"
	cfg.AI.Ollama.Model = "qwen3:4b"

	app, err := Setup(context.Background(), cfg)
	require.NoError(t, err)

	assert.NotNil(t, app.Planner.LLM)
	assert.NotNil(t, app.Agent)
}

func TestSetup_BadPackingRulesFailFast(t *testing.T) {
	cfg := baseConfig()
	cfg.Planner.PackingRulesPath = "/does/not/exist.yaml"

	_, err := Setup(context.Background(), cfg)
	assert.Error(t, err)
}
