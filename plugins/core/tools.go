package core

import (
	"context"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"

	"github.com/voyago/tripdesk/tools"
)

// CurrencyTool wraps DefaultCurrency
type CurrencyTool struct{}

type CurrencyInput struct {
	CountryCode string `json:"country_code" jsonschema_description:"ISO 3166-1 alpha-2 country code"`
}

func NewCurrencyTool(gk *genkit.Genkit, registry *tools.Registry) *CurrencyTool {
	t := &CurrencyTool{}
	if gk == nil || registry == nil {
		return t
	}

	registry.Register(genkit.DefineTool[*CurrencyInput, string](
		gk,
		"currency_tool",
		"Returns the currency code for a given country code (ISO 3166-1 alpha-2).",
		func(ctx *ai.ToolContext, input *CurrencyInput) (string, error) {
			return DefaultCurrency(input.CountryCode), nil
		},
	), func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		countryCode, _ := args["country_code"].(string)
		return DefaultCurrency(countryCode), nil
	})
	return t
}
