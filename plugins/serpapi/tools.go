package serpapi

import (
	"context"
	"fmt"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"

	"github.com/voyago/tripdesk/log"
	toolspkg "github.com/voyago/tripdesk/tools"
	"github.com/voyago/tripdesk/trip"
)

// --- Flight Search Tool ---

type FlightSearchInput struct {
	Origin       string `json:"origin" jsonschema_description:"Origin airport IATA code, e.g. JFK"`
	Destination  string `json:"destination" jsonschema_description:"Destination airport IATA code, e.g. CDG"`
	OutboundDate string `json:"outbound_date" jsonschema_description:"Departure date in YYYY-MM-DD format"`
	ReturnDate   string `json:"return_date,omitempty" jsonschema_description:"Return date in YYYY-MM-DD format, omit for one-way"`
	Adults       int    `json:"adults,omitempty" jsonschema_description:"Number of adult travelers, defaults to 1"`
}

type FlightSearchOutput struct {
	Flights []trip.FlightOption `json:"flights"`
	Count   int                 `json:"count"`
}

type FlightTool struct {
	client *Client
}

func NewFlightTool(client *Client, gk *genkit.Genkit, registry *toolspkg.Registry) *FlightTool {
	t := &FlightTool{client: client}
	if gk == nil || registry == nil {
		return t
	}

	registry.Register(genkit.DefineTool[*FlightSearchInput, *FlightSearchOutput](
		gk,
		"flights_tool",
		"Searches flights between two airports on given dates and returns the top options with carrier, times, stops and price.",
		func(ctx *ai.ToolContext, input *FlightSearchInput) (*FlightSearchOutput, error) {
			return t.Execute(ctx, input)
		},
	), func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		input := &FlightSearchInput{}
		input.Origin, _ = args["origin"].(string)
		input.Destination, _ = args["destination"].(string)
		input.OutboundDate, _ = args["outbound_date"].(string)
		input.ReturnDate, _ = args["return_date"].(string)
		if adults, ok := args["adults"].(float64); ok {
			input.Adults = int(adults)
		}
		return t.Execute(ctx, input)
	})
	return t
}

func (t *FlightTool) Execute(ctx context.Context, input *FlightSearchInput) (*FlightSearchOutput, error) {
	log.Debugf(ctx, "FlightTool executing for %s-%s on %s", input.Origin, input.Destination, input.OutboundDate)

	if t.client == nil {
		return nil, fmt.Errorf("flight client not initialized")
	}
	if input.Origin == "" || input.Destination == "" || input.OutboundDate == "" {
		return nil, fmt.Errorf("origin, destination and outbound_date are required")
	}

	adults := input.Adults
	if adults <= 0 {
		adults = 1
	}
	flights, err := t.client.SearchFlights(ctx, trip.FlightQuery{
		Origin:       input.Origin,
		Destination:  input.Destination,
		OutboundDate: input.OutboundDate,
		ReturnDate:   input.ReturnDate,
		Adults:       adults,
	})
	if err != nil {
		return nil, err
	}
	return &FlightSearchOutput{Flights: flights, Count: len(flights)}, nil
}

// --- Hotel Search Tool ---

type HotelSearchInput struct {
	Location string `json:"location" jsonschema_description:"City or area to search hotels in"`
	CheckIn  string `json:"check_in" jsonschema_description:"Check-in date in YYYY-MM-DD format"`
	CheckOut string `json:"check_out" jsonschema_description:"Check-out date in YYYY-MM-DD format"`
	Adults   int    `json:"adults,omitempty" jsonschema_description:"Number of adult guests, defaults to 1"`
}

type HotelSearchOutput struct {
	Hotels []trip.HotelOption `json:"hotels"`
	Count  int                `json:"count"`
}

type HotelTool struct {
	client *Client
}

func NewHotelTool(client *Client, gk *genkit.Genkit, registry *toolspkg.Registry) *HotelTool {
	t := &HotelTool{client: client}
	if gk == nil || registry == nil {
		return t
	}

	registry.Register(genkit.DefineTool[*HotelSearchInput, *HotelSearchOutput](
		gk,
		"hotels_tool",
		"Searches hotels in a location for a date range and returns the top options with nightly price and rating.",
		func(ctx *ai.ToolContext, input *HotelSearchInput) (*HotelSearchOutput, error) {
			return t.Execute(ctx, input)
		},
	), func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		input := &HotelSearchInput{}
		input.Location, _ = args["location"].(string)
		input.CheckIn, _ = args["check_in"].(string)
		input.CheckOut, _ = args["check_out"].(string)
		if adults, ok := args["adults"].(float64); ok {
			input.Adults = int(adults)
		}
		return t.Execute(ctx, input)
	})
	return t
}

func (t *HotelTool) Execute(ctx context.Context, input *HotelSearchInput) (*HotelSearchOutput, error) {
	log.Debugf(ctx, "HotelTool executing for %s %s to %s", input.Location, input.CheckIn, input.CheckOut)

	if t.client == nil {
		return nil, fmt.Errorf("hotel client not initialized")
	}
	if input.Location == "" || input.CheckIn == "" || input.CheckOut == "" {
		return nil, fmt.Errorf("location, check_in and check_out are required")
	}

	adults := input.Adults
	if adults <= 0 {
		adults = 1
	}
	hotels, err := t.client.SearchHotels(ctx, trip.HotelQuery{
		Location: input.Location,
		CheckIn:  input.CheckIn,
		CheckOut: input.CheckOut,
		Adults:   adults,
	})
	if err != nil {
		return nil, err
	}
	return &HotelSearchOutput{Hotels: hotels, Count: len(hotels)}, nil
}
