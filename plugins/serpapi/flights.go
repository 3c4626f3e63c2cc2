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

const defaultFlightLimit = 5

type flightLeg struct {
	DepartureAirport struct {
		Name string `json:"name"`
		ID   string `json:"id"`
		Time string `json:"time"`
	} `json:"departure_airport"`
	ArrivalAirport struct {
		Name string `json:"name"`
		ID   string `json:"id"`
		Time string `json:"time"`
	} `json:"arrival_airport"`
	Duration     int    `json:"duration"`
	Airline      string `json:"airline"`
	FlightNumber string `json:"flight_number"`
}

type flightResult struct {
	Flights       []flightLeg `json:"flights"`
	TotalDuration int         `json:"total_duration"`
	Price         float64     `json:"price"`
}

type flightSearchResponse struct {
	BestFlights  []flightResult `json:"best_flights"`
	OtherFlights []flightResult `json:"other_flights"`
}

// SearchFlights queries the google_flights engine and returns normalized
// options, best results first, truncated to the configured limit
func (c *Client) SearchFlights(ctx context.Context, query trip.FlightQuery) ([]trip.FlightOption, error) {
	currency := query.Currency
	if currency == "" {
		currency = "USD"
	}

	key := cacheKey("flights", query.Origin, query.Destination, query.OutboundDate, query.ReturnDate, query.Adults, currency)
	if cached, ok := c.Cache.Get(key); ok {
		log.Debugf(ctx, "flight search cache hit for %s-%s", query.Origin, query.Destination)
		return cached.([]trip.FlightOption), nil
	}

	params := url.Values{}
	params.Set("engine", "google_flights")
	params.Set("departure_id", query.Origin)
	params.Set("arrival_id", query.Destination)
	params.Set("outbound_date", query.OutboundDate)
	params.Set("currency", currency)
	if query.ReturnDate != "" {
		params.Set("return_date", query.ReturnDate)
		params.Set("type", "1")
	} else {
		params.Set("type", "2")
	}
	if query.Adults > 0 {
		params.Set("adults", strconv.Itoa(query.Adults))
	}

	var parsed flightSearchResponse
	if err := c.search(ctx, params, &parsed); err != nil {
		return nil, err
	}

	results := append(parsed.BestFlights, parsed.OtherFlights...)
	if len(results) == 0 {
		return nil, &plugins.ProviderError{
			Provider: providerName,
			Reason:   plugins.ReasonPayload,
			Err:      fmt.Errorf("no flights found for %s-%s on %s", query.Origin, query.Destination, query.OutboundDate),
		}
	}

	limit := c.Limits.Flight
	if limit <= 0 {
		limit = defaultFlightLimit
	}
	if len(results) > limit {
		results = results[:limit]
	}

	options := make([]trip.FlightOption, 0, len(results))
	for _, r := range results {
		if len(r.Flights) == 0 {
			continue
		}
		first := r.Flights[0]
		last := r.Flights[len(r.Flights)-1]
		options = append(options, trip.FlightOption{
			Carrier:         first.Airline,
			FlightNumber:    first.FlightNumber,
			DepartureTime:   first.DepartureAirport.Time,
			ArrivalTime:     last.ArrivalAirport.Time,
			DurationMinutes: r.TotalDuration,
			Stops:           len(r.Flights) - 1,
			Price:           r.Price,
			Currency:        currency,
		})
	}

	c.Cache.Set(key, options, defaultCacheTTL)
	return options, nil
}
