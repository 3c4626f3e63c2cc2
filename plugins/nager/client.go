// Package nager is the client for the Nager.Date public holiday API.
package nager

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/firebase/genkit/go/genkit"

	"github.com/voyago/tripdesk/plugins"
	"github.com/voyago/tripdesk/tools"
)

const providerName = "nager"

// Client handles Nager.Date API requests
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a new Nager.Date API client and initializes tools
func NewClient(gk *genkit.Genkit, registry *tools.Registry) *Client {
	c := &Client{
		BaseURL:    "https://date.nager.at/api/v3",
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
	c.initTools(gk, registry)
	return c
}

func (c *Client) initTools(gk *genkit.Genkit, registry *tools.Registry) {
	if gk == nil || registry == nil {
		return
	}
	NewPublicHolidaysTool(c, gk, registry)
}

// Holiday represents a public holiday from Nager.Date API
type Holiday struct {
	Date        string `json:"date"`
	LocalName   string `json:"localName"`
	Name        string `json:"name"`
	CountryCode string `json:"countryCode"`
	Global      bool   `json:"global"`
}

// GetPublicHolidays returns public holidays for a country and year
func (c *Client) GetPublicHolidays(ctx context.Context, year int, countryCode string) ([]Holiday, error) {
	url := fmt.Sprintf("%s/PublicHolidays/%d/%s", c.BaseURL, year, countryCode)

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := plugins.Do(c.HTTPClient, req)
	if err != nil {
		return nil, &plugins.ProviderError{Provider: providerName, Reason: plugins.Reason(err), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &plugins.ProviderError{
			Provider: providerName,
			Reason:   plugins.ReasonStatus,
			Err:      fmt.Errorf("holiday request for %s returned status %d", countryCode, resp.StatusCode),
		}
	}

	var holidays []Holiday
	if err := json.NewDecoder(resp.Body).Decode(&holidays); err != nil {
		return nil, &plugins.ProviderError{Provider: providerName, Reason: plugins.ReasonPayload, Err: err}
	}
	return holidays, nil
}

// PublicHolidays returns the holidays of a country and year keyed by date
func (c *Client) PublicHolidays(ctx context.Context, countryCode string, year int) (map[string]string, error) {
	holidays, err := c.GetPublicHolidays(ctx, year, countryCode)
	if err != nil {
		return nil, err
	}

	byDate := make(map[string]string, len(holidays))
	for _, h := range holidays {
		if _, taken := byDate[h.Date]; taken {
			continue
		}
		byDate[h.Date] = h.Name
	}
	return byDate, nil
}
