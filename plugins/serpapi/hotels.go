package serpapi

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/voyago/tripdesk/log"
	"github.com/voyago/tripdesk/plugins"
	"github.com/voyago/tripdesk/trip"
)

const defaultHotelLimit = 5

// sortByHighestRating is the google_hotels sort_by value for highest rating first
const sortByHighestRating = "8"

type hotelProperty struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	RatePerNight struct {
		ExtractedLowest float64 `json:"extracted_lowest"`
	} `json:"rate_per_night"`
	TotalRate struct {
		ExtractedLowest float64 `json:"extracted_lowest"`
	} `json:"total_rate"`
	OverallRating float64 `json:"overall_rating"`
	NearbyPlaces  []struct {
		Name string `json:"name"`
	} `json:"nearby_places"`
}

type hotelSearchResponse struct {
	Properties []hotelProperty `json:"properties"`
}

// SearchHotels queries the google_hotels engine and returns normalized
// options sorted by the engine (highest rating first), truncated to the limit
func (c *Client) SearchHotels(ctx context.Context, query trip.HotelQuery) ([]trip.HotelOption, error) {
	currency := query.Currency
	if currency == "" {
		currency = "USD"
	}

	key := cacheKey("hotels", query.Location, query.CheckIn, query.CheckOut, query.Adults, currency)
	if cached, ok := c.Cache.Get(key); ok {
		log.Debugf(ctx, "hotel search cache hit for %s", query.Location)
		return cached.([]trip.HotelOption), nil
	}

	params := url.Values{}
	params.Set("engine", "google_hotels")
	params.Set("q", query.Location)
	params.Set("check_in_date", query.CheckIn)
	params.Set("check_out_date", query.CheckOut)
	params.Set("currency", currency)
	params.Set("sort_by", sortByHighestRating)
	if query.Adults > 0 {
		params.Set("adults", strconv.Itoa(query.Adults))
	}

	var parsed hotelSearchResponse
	if err := c.search(ctx, params, &parsed); err != nil {
		return nil, err
	}
	if len(parsed.Properties) == 0 {
		return nil, &plugins.ProviderError{
			Provider: providerName,
			Reason:   plugins.ReasonPayload,
			Err:      fmt.Errorf("no hotels found in %s for %s to %s", query.Location, query.CheckIn, query.CheckOut),
		}
	}

	limit := c.Limits.Hotel
	if limit <= 0 {
		limit = defaultHotelLimit
	}
	properties := parsed.Properties
	if len(properties) > limit {
		properties = properties[:limit]
	}

	options := make([]trip.HotelOption, 0, len(properties))
	for _, p := range properties {
		opt := trip.HotelOption{
			Name:         p.Name,
			NightlyPrice: p.RatePerNight.ExtractedLowest,
			Total:        p.TotalRate.ExtractedLowest,
			Currency:     currency,
			Rating:       p.OverallRating,
		}
		if len(p.NearbyPlaces) > 0 {
			opt.LocationDescriptor = fmt.Sprintf("near %s", p.NearbyPlaces[0].Name)
		} else if p.Description != "" {
			opt.LocationDescriptor = p.Description
		}
		options = append(options, opt)
	}

	c.Cache.Set(key, options, defaultCacheTTL)
	return options, nil
}
