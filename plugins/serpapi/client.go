// Package serpapi is the client for SerpAPI's google_flights and
// google_hotels engines.
package serpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/firebase/genkit/go/genkit"

	"github.com/voyago/tripdesk/config"
	"github.com/voyago/tripdesk/plugins"
	"github.com/voyago/tripdesk/tools"
)

const providerName = "serpapi"

// Client is the SerpAPI client shared by the flight and hotel searches
type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
	Cache      *SimpleCache
	Limits     struct {
		Flight int
		Hotel  int
	}
}

// NewClient creates a new SerpAPI client and initializes tools
func NewClient(cfg config.SearchConfig, gk *genkit.Genkit, registry *tools.Registry) *Client {
	c := &Client{
		BaseURL:    cfg.BaseURL,
		APIKey:     cfg.APIKey,
		HTTPClient: &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
		Cache:      NewSimpleCache(),
	}
	c.Limits.Flight = cfg.FlightLimit
	c.Limits.Hotel = cfg.HotelLimit

	c.initTools(gk, registry)
	return c
}

func (c *Client) initTools(gk *genkit.Genkit, registry *tools.Registry) {
	if gk == nil || registry == nil {
		return
	}
	NewFlightTool(c, gk, registry)
	NewHotelTool(c, gk, registry)
}

// errorEnvelope is SerpAPI's failure payload, returned with HTTP 200 as well
// as with error statuses
type errorEnvelope struct {
	Error string `json:"error"`
}

// search runs one engine query and decodes the response into out
func (c *Client) search(ctx context.Context, params url.Values, out interface{}) error {
	params.Set("api_key", c.APIKey)
	params.Set("hl", "en")
	params.Set("gl", "us")

	endpoint := fmt.Sprintf("%s/search.json?%s", c.BaseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := plugins.Do(c.HTTPClient, req)
	if err != nil {
		return &plugins.ProviderError{Provider: providerName, Reason: plugins.Reason(err), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &plugins.ProviderError{
			Provider: providerName,
			Reason:   plugins.ReasonStatus,
			Err:      fmt.Errorf("search returned status %d", resp.StatusCode),
		}
	}

	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return &plugins.ProviderError{Provider: providerName, Reason: plugins.ReasonPayload, Err: err}
	}

	var envelope errorEnvelope
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Error != "" {
		return &plugins.ProviderError{
			Provider: providerName,
			Reason:   plugins.ReasonStatus,
			Err:      fmt.Errorf("search failed: %s", envelope.Error),
		}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return &plugins.ProviderError{Provider: providerName, Reason: plugins.ReasonPayload, Err: err}
	}
	return nil
}
