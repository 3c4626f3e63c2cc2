package nager

import (
	"context"
	"fmt"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"

	"github.com/voyago/tripdesk/log"
	toolspkg "github.com/voyago/tripdesk/tools"
)

type PublicHolidaysInput struct {
	CountryCode string `json:"country_code" jsonschema_description:"ISO 3166-1 alpha-2 country code, e.g. FR"`
	Year        int    `json:"year" jsonschema_description:"Calendar year, e.g. 2024"`
}

type PublicHolidaysOutput struct {
	Holidays []Holiday `json:"holidays"`
	Count    int       `json:"count"`
}

type PublicHolidaysTool struct {
	client *Client
}

func NewPublicHolidaysTool(client *Client, gk *genkit.Genkit, registry *toolspkg.Registry) *PublicHolidaysTool {
	t := &PublicHolidaysTool{client: client}
	if gk == nil || registry == nil {
		return t
	}

	registry.Register(genkit.DefineTool[*PublicHolidaysInput, *PublicHolidaysOutput](
		gk,
		"holidays_tool",
		"Returns the public holidays of a country for a given year.",
		func(ctx *ai.ToolContext, input *PublicHolidaysInput) (*PublicHolidaysOutput, error) {
			return t.Execute(ctx, input)
		},
	), func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		input := &PublicHolidaysInput{}
		input.CountryCode, _ = args["country_code"].(string)
		if year, ok := args["year"].(float64); ok {
			input.Year = int(year)
		}
		return t.Execute(ctx, input)
	})
	return t
}

func (t *PublicHolidaysTool) Execute(ctx context.Context, input *PublicHolidaysInput) (*PublicHolidaysOutput, error) {
	log.Debugf(ctx, "PublicHolidaysTool executing for %s %d", input.CountryCode, input.Year)

	if t.client == nil {
		return nil, fmt.Errorf("holiday client not initialized")
	}
	if input.CountryCode == "" || input.Year == 0 {
		return nil, fmt.Errorf("country_code and year are required")
	}
	holidays, err := t.client.GetPublicHolidays(ctx, input.Year, input.CountryCode)
	if err != nil {
		return nil, err
	}
	return &PublicHolidaysOutput{Holidays: holidays, Count: len(holidays)}, nil
}
