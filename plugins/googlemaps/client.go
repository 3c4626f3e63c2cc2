// Package googlemaps finds points of interest for day planning via the
// Google Maps Places API.
package googlemaps

import (
	"context"
	"fmt"
	"sort"

	"github.com/firebase/genkit/go/genkit"
	"googlemaps.github.io/maps"

	"github.com/voyago/tripdesk/plugins"
	"github.com/voyago/tripdesk/tools"
)

const providerName = "googlemaps"

// Client handles Google Maps API requests
type Client struct {
	APIKey     string
	MapsClient *maps.Client
}

// NewClient creates a new Google Maps API client and initializes tools.
// Returns an error if the underlying client cannot be initialized.
func NewClient(apiKey string, gk *genkit.Genkit, registry *tools.Registry) (*Client, error) {
	mc, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}

	c := &Client{APIKey: apiKey, MapsClient: mc}
	c.initTools(gk, registry)
	return c, nil
}

func (c *Client) initTools(gk *genkit.Genkit, registry *tools.Registry) {
	if gk == nil || registry == nil {
		return
	}
	NewAttractionsTool(c, gk, registry)
}

// FindAttractions returns attraction names near a location, best rated
// first. interest narrows the search when set (e.g. "art museums").
func (c *Client) FindAttractions(ctx context.Context, location, interest string, limit int) ([]string, error) {
	query := fmt.Sprintf("top attractions in %s", location)
	if interest != "" {
		query = fmt.Sprintf("%s in %s", interest, location)
	}

	resp, err := c.MapsClient.TextSearch(ctx, &maps.TextSearchRequest{Query: query})
	if err != nil {
		return nil, &plugins.ProviderError{Provider: providerName, Reason: plugins.Reason(err), Err: err}
	}
	if len(resp.Results) == 0 {
		return nil, &plugins.ProviderError{
			Provider: providerName,
			Reason:   plugins.ReasonPayload,
			Err:      fmt.Errorf("no places found for %q", query),
		}
	}

	results := make([]maps.PlacesSearchResult, len(resp.Results))
	copy(results, resp.Results)
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Rating > results[j].Rating
	})

	if limit <= 0 || limit > len(results) {
		limit = len(results)
	}
	names := make([]string, 0, limit)
	for _, r := range results[:limit] {
		names = append(names, r.Name)
	}
	return names, nil
}
