// Package weatherapi is the client for the weatherapi.com forecast API.
package weatherapi

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
	"github.com/voyago/tripdesk/trip"
)

const providerName = "weatherapi"

// forecastHorizonDays is how far ahead the provider serves daily forecasts
const forecastHorizonDays = 14

// Client handles weatherapi.com requests
type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client

	// Now is injectable for horizon checks in tests
	Now func() time.Time
}

// NewClient creates a new weatherapi.com client and initializes tools
func NewClient(cfg config.WeatherConfig, gk *genkit.Genkit, registry *tools.Registry) *Client {
	c := &Client{
		BaseURL:    cfg.BaseURL,
		APIKey:     cfg.APIKey,
		HTTPClient: &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
		Now:        time.Now,
	}
	c.initTools(gk, registry)
	return c
}

func (c *Client) initTools(gk *genkit.Genkit, registry *tools.Registry) {
	if gk == nil || registry == nil {
		return
	}
	NewWeatherTool(c, gk, registry)
}

type forecastResponse struct {
	Location struct {
		Name    string `json:"name"`
		Country string `json:"country"`
	} `json:"location"`
	Forecast struct {
		ForecastDay []struct {
			Date string `json:"date"`
			Day  struct {
				MaxTempC        float64 `json:"maxtemp_c"`
				MinTempC        float64 `json:"mintemp_c"`
				DailyChanceRain int     `json:"daily_chance_of_rain"`
				Condition       struct {
					Text string `json:"text"`
				} `json:"condition"`
			} `json:"day"`
		} `json:"forecastday"`
	} `json:"forecast"`
}

// Forecast returns the one-day forecast for a location. Dates in the past or
// beyond the provider's forecast horizon are rejected without a request.
func (c *Client) Forecast(ctx context.Context, location, date string) (*trip.WeatherRecord, error) {
	day, err := time.Parse(trip.DateLayout, date)
	if err != nil {
		return nil, fmt.Errorf("invalid forecast date %q: %w", date, err)
	}
	y, m, d := c.Now().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	if day.Before(today) {
		return nil, &plugins.ProviderError{
			Provider: providerName,
			Reason:   "date in the past",
			Err:      fmt.Errorf("forecast date %s is in the past", date),
		}
	}
	if day.After(today.AddDate(0, 0, forecastHorizonDays)) {
		return nil, &plugins.ProviderError{
			Provider: providerName,
			Reason:   "forecast beyond horizon",
			Err:      fmt.Errorf("forecast date %s is beyond the %d-day horizon", date, forecastHorizonDays),
		}
	}

	params := url.Values{}
	params.Set("key", c.APIKey)
	params.Set("q", location)
	params.Set("dt", date)
	params.Set("days", "1")
	params.Set("aqi", "no")
	params.Set("alerts", "no")

	endpoint := fmt.Sprintf("%s/forecast.json?%s", c.BaseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
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
			Err:      fmt.Errorf("forecast request returned status %d", resp.StatusCode),
		}
	}

	var parsed forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, &plugins.ProviderError{Provider: providerName, Reason: plugins.ReasonPayload, Err: err}
	}
	if len(parsed.Forecast.ForecastDay) == 0 {
		return nil, &plugins.ProviderError{
			Provider: providerName,
			Reason:   plugins.ReasonPayload,
			Err:      fmt.Errorf("no forecast returned for %s on %s", location, date),
		}
	}

	day0 := parsed.Forecast.ForecastDay[0]
	return &trip.WeatherRecord{
		Date:         day0.Date,
		Location:     parsed.Location.Name,
		Country:      parsed.Location.Country,
		Condition:    day0.Day.Condition.Text,
		HighC:        day0.Day.MaxTempC,
		LowC:         day0.Day.MinTempC,
		PrecipChance: day0.Day.DailyChanceRain,
	}, nil
}
