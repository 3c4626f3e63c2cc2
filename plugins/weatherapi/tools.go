package weatherapi

import (
	"context"
	"fmt"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"

	"github.com/voyago/tripdesk/log"
	toolspkg "github.com/voyago/tripdesk/tools"
	"github.com/voyago/tripdesk/trip"
)

type WeatherInput struct {
	Location string `json:"location" jsonschema_description:"City name or airport code to fetch the forecast for"`
	Date     string `json:"date" jsonschema_description:"Forecast date in YYYY-MM-DD format"`
}

type WeatherTool struct {
	client *Client
}

// NewWeatherTool registers the forecast tool
func NewWeatherTool(client *Client, gk *genkit.Genkit, registry *toolspkg.Registry) *WeatherTool {
	t := &WeatherTool{client: client}
	if gk == nil || registry == nil {
		return t
	}

	registry.Register(genkit.DefineTool[*WeatherInput, *trip.WeatherRecord](
		gk,
		"weather_tool",
		"Fetches the daily weather forecast for a location on a given date. Forecasts are available up to 14 days ahead.",
		func(ctx *ai.ToolContext, input *WeatherInput) (*trip.WeatherRecord, error) {
			return t.Execute(ctx, input)
		},
	), func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		location, _ := args["location"].(string)
		date, _ := args["date"].(string)
		return t.Execute(ctx, &WeatherInput{Location: location, Date: date})
	})
	return t
}

func (t *WeatherTool) Execute(ctx context.Context, input *WeatherInput) (*trip.WeatherRecord, error) {
	log.Debugf(ctx, "WeatherTool executing for %s on %s", input.Location, input.Date)

	if t.client == nil {
		return nil, fmt.Errorf("weather client not initialized")
	}
	if input.Location == "" || input.Date == "" {
		return nil, fmt.Errorf("location and date are required")
	}
	return t.client.Forecast(ctx, input.Location, input.Date)
}
