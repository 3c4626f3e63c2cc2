// Package plugins defines the provider-facing interfaces the planner depends
// on, plus the error and retry conventions every provider client follows.
package plugins

import (
	"context"

	"github.com/voyago/tripdesk/trip"
)

// LLMClient defines the interface for LLM interaction
type LLMClient interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// WeatherClient fetches a one-day forecast for a location
type WeatherClient interface {
	Forecast(ctx context.Context, location, date string) (*trip.WeatherRecord, error)
}

// FlightClient searches bookable flights
type FlightClient interface {
	SearchFlights(ctx context.Context, query trip.FlightQuery) ([]trip.FlightOption, error)
}

// HotelClient searches stayable properties
type HotelClient interface {
	SearchHotels(ctx context.Context, query trip.HotelQuery) ([]trip.HotelOption, error)
}

// AttractionsClient finds points of interest near a location
type AttractionsClient interface {
	FindAttractions(ctx context.Context, location, interest string, limit int) ([]string, error)
}

// HolidayClient fetches public holidays for a country and year, keyed by
// YYYY-MM-DD date
type HolidayClient interface {
	PublicHolidays(ctx context.Context, countryCode string, year int) (map[string]string, error)
}
