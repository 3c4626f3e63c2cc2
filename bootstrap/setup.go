// Package bootstrap wires configuration into clients, tools and agents.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/firebase/genkit/go/genkit"

	"github.com/voyago/tripdesk/agents"
	"github.com/voyago/tripdesk/config"
	"github.com/voyago/tripdesk/log"
	"github.com/voyago/tripdesk/plugins"
	"github.com/voyago/tripdesk/plugins/core"
	"github.com/voyago/tripdesk/plugins/gemini"
	"github.com/voyago/tripdesk/plugins/googlemaps"
	"github.com/voyago/tripdesk/plugins/nager"
	"github.com/voyago/tripdesk/plugins/ollama"
	"github.com/voyago/tripdesk/plugins/openai"
	"github.com/voyago/tripdesk/plugins/serpapi"
	"github.com/voyago/tripdesk/plugins/weatherapi"
	"github.com/voyago/tripdesk/tools"
)

// ConfigurationError reports a component disabled by missing configuration.
// Setup collects these rather than failing: a missing credential costs a
// section, not the process.
type ConfigurationError struct {
	Component string
	Missing   string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s disabled: %s not set", e.Component, e.Missing)
}

// App holds the initialized components of the application
type App struct {
	Planner  *agents.Orchestrator
	Agent    *agents.TripAgent
	Registry *tools.Registry
	Genkit   *genkit.Genkit
	Config   *config.Config

	// Disabled lists components turned off by missing configuration
	Disabled []*ConfigurationError
}

// Setup initializes the application components based on the configuration.
// Providers without credentials are skipped and recorded in Disabled; the
// planner degrades to partial itineraries accordingly.
func Setup(ctx context.Context, cfg *config.Config) (*App, error) {
	gk := genkit.Init(ctx)
	registry := tools.NewRegistry()

	app := &App{Registry: registry, Genkit: gk, Config: cfg}

	planner := agents.NewOrchestrator(time.Duration(cfg.Planner.ProviderTimeoutSeconds) * time.Second)
	app.Planner = planner

	if cfg.Weather.APIKey != "" {
		planner.Weather = weatherapi.NewClient(cfg.Weather, gk, registry)
	} else {
		app.disable(ctx, &ConfigurationError{Component: "weather", Missing: "WEATHER_API_KEY"})
	}

	if cfg.Search.APIKey != "" {
		search := serpapi.NewClient(cfg.Search, gk, registry)
		planner.Flights = search
		planner.Hotels = search
	} else {
		app.disable(ctx, &ConfigurationError{Component: "flight and hotel search", Missing: "SERPAPI_API_KEY"})
	}

	if cfg.Maps.APIKey != "" {
		mapsClient, err := googlemaps.NewClient(cfg.Maps.APIKey, gk, registry)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize maps client: %w", err)
		}
		planner.Attractions = mapsClient
	} else {
		app.disable(ctx, &ConfigurationError{Component: "attractions", Missing: "GOOGLE_MAPS_API_KEY"})
	}

	planner.Holidays = nager.NewClient(gk, registry)
	core.NewClient(gk, registry)

	if cfg.Planner.PackingRulesPath != "" {
		rules, err := agents.LoadPackingRules(cfg.Planner.PackingRulesPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load packing rules: %w", err)
		}
		planner.PackingRules = rules
	}

	llm, llmErr := newLLMClient(ctx, cfg)
	if llmErr != nil {
		app.disable(ctx, llmErr)
	} else {
		planner.LLM = llm
		agent, err := agents.NewTripAgent(registry, llm, cfg.Planner.MaxToolSteps)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize agent: %w", err)
		}
		app.Agent = agent
	}

	log.Infof(ctx, "setup complete: %d tools registered, %d components disabled", len(registry.GetTools()), len(app.Disabled))
	return app, nil
}

func (a *App) disable(ctx context.Context, err *ConfigurationError) {
	log.Warnf(ctx, "%v", err)
	a.Disabled = append(a.Disabled, err)
}

// newLLMClient selects the LLM backend per config. Ollama needs no key; the
// hosted backends are disabled without one.
func newLLMClient(ctx context.Context, cfg *config.Config) (plugins.LLMClient, *ConfigurationError) {
	switch cfg.AI.Plugin {
	case "ollama":
		log.Infof(ctx, "using Ollama (model %s)", cfg.AI.Ollama.Model)
		return ollama.NewClient(cfg.AI.Ollama.BaseURL, cfg.AI.Ollama.Model), nil
	case "openai":
		if cfg.AI.OpenAI.APIKey == "" {
			return nil, &ConfigurationError{Component: "llm", Missing: "OPENAI_API_KEY"}
		}
		log.Infof(ctx, "using OpenAI (model %s)", cfg.AI.OpenAI.Model)
		client, err := openai.NewClient(cfg.AI.OpenAI.APIKey, cfg.AI.OpenAI.Model)
		if err != nil {
			return nil, &ConfigurationError{Component: "llm", Missing: "OPENAI_API_KEY"}
		}
		return client, nil
	default:
		if cfg.AI.Gemini.APIKey == "" {
			return nil, &ConfigurationError{Component: "llm", Missing: "GEMINI_API_KEY"}
		}
		log.Infof(ctx, "using Gemini (model %s)", cfg.AI.Gemini.Model)
		client, err := gemini.NewClient(ctx, cfg.AI.Gemini.APIKey, cfg.AI.Gemini.Model)
		if err != nil {
			return nil, &ConfigurationError{Component: "llm", Missing: "GEMINI_API_KEY"}
		}
		return client, nil
	}
}
