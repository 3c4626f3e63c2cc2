package googlemaps

import (
	"context"
	"fmt"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"

	"github.com/voyago/tripdesk/log"
	toolspkg "github.com/voyago/tripdesk/tools"
)

type AttractionsInput struct {
	Location string `json:"location" jsonschema_description:"City or area to search in"`
	Interest string `json:"interest,omitempty" jsonschema_description:"Optional interest to narrow the search, e.g. art museums"`
	Limit    int    `json:"limit,omitempty" jsonschema_description:"Maximum number of attractions to return"`
}

type AttractionsOutput struct {
	Attractions []string `json:"attractions"`
	Count       int      `json:"count"`
}

type AttractionsTool struct {
	client *Client
}

func NewAttractionsTool(client *Client, gk *genkit.Genkit, registry *toolspkg.Registry) *AttractionsTool {
	t := &AttractionsTool{client: client}
	if gk == nil || registry == nil {
		return t
	}

	registry.Register(genkit.DefineTool[*AttractionsInput, *AttractionsOutput](
		gk,
		"attractions_tool",
		"Finds top-rated attractions and points of interest in a location, optionally filtered by interest.",
		func(ctx *ai.ToolContext, input *AttractionsInput) (*AttractionsOutput, error) {
			return t.Execute(ctx, input)
		},
	), func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		input := &AttractionsInput{}
		input.Location, _ = args["location"].(string)
		input.Interest, _ = args["interest"].(string)
		if limit, ok := args["limit"].(float64); ok {
			input.Limit = int(limit)
		}
		return t.Execute(ctx, input)
	})
	return t
}

func (t *AttractionsTool) Execute(ctx context.Context, input *AttractionsInput) (*AttractionsOutput, error) {
	log.Debugf(ctx, "AttractionsTool executing for %s", input.Location)

	if t.client == nil {
		return nil, fmt.Errorf("maps client not initialized")
	}
	if input.Location == "" {
		return nil, fmt.Errorf("location is required")
	}
	attractions, err := t.client.FindAttractions(ctx, input.Location, input.Interest, input.Limit)
	if err != nil {
		return nil, err
	}
	return &AttractionsOutput{Attractions: attractions, Count: len(attractions)}, nil
}
