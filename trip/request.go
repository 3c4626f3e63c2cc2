// Package trip holds the domain model for trip planning: the inbound
// request, the normalized provider records, and the assembled itinerary.
package trip

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire format for all trip dates
const DateLayout = "2006-01-02"

// Energy describes how packed the traveler wants each day to be
type Energy string

const (
	EnergyLow    Energy = "low"
	EnergyMedium Energy = "medium"
	EnergyHigh   Energy = "high"
)

// ActivityCount maps an energy level to the number of activity slots per day
func (e Energy) ActivityCount() int {
	switch e {
	case EnergyLow:
		return 2
	case EnergyHigh:
		return 4
	default:
		return 3
	}
}

// TripRequest is the structured planning input. It is built once from user
// input and never mutated afterwards.
type TripRequest struct {
	Origin      string  `json:"origin"`
	Destination string  `json:"destination"`
	DepartDate  string  `json:"depart_date"`
	ReturnDate  string  `json:"return_date,omitempty"`
	Preferences string  `json:"preferences,omitempty"`
	Energy      Energy  `json:"energy,omitempty"`
	Budget      float64 `json:"budget,omitempty"`
	Currency    string  `json:"currency,omitempty"`
	Adults      int     `json:"adults,omitempty"`
	// Country is the ISO 3166-1 alpha-2 code of the destination country.
	// Optional; enables holiday annotations and currency defaulting.
	Country string `json:"country,omitempty"`
}

// InvalidRequestError reports a caller-side validation failure
type InvalidRequestError struct {
	Field  string
	Reason string
}

func (e *InvalidRequestError) Error() string {
	return fmt.Sprintf("invalid trip request: %s: %s", e.Field, e.Reason)
}

func validAirportCode(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// Validate checks the request shape. Provider clients assume a validated
// request; validation is the caller's job.
func (r TripRequest) Validate() error {
	if !validAirportCode(strings.ToUpper(r.Origin)) {
		return &InvalidRequestError{Field: "origin", Reason: "must be a 3-letter IATA code"}
	}
	if !validAirportCode(strings.ToUpper(r.Destination)) {
		return &InvalidRequestError{Field: "destination", Reason: "must be a 3-letter IATA code"}
	}

	depart, err := time.Parse(DateLayout, r.DepartDate)
	if err != nil {
		return &InvalidRequestError{Field: "depart_date", Reason: "must be YYYY-MM-DD"}
	}
	if r.ReturnDate != "" {
		ret, err := time.Parse(DateLayout, r.ReturnDate)
		if err != nil {
			return &InvalidRequestError{Field: "return_date", Reason: "must be YYYY-MM-DD"}
		}
		if !ret.After(depart) {
			return &InvalidRequestError{Field: "return_date", Reason: "must be after depart_date"}
		}
	}

	switch r.Energy {
	case "", EnergyLow, EnergyMedium, EnergyHigh:
	default:
		return &InvalidRequestError{Field: "energy", Reason: "must be low, medium or high"}
	}

	if r.Budget < 0 {
		return &InvalidRequestError{Field: "budget", Reason: "must not be negative"}
	}

	return nil
}

// Days returns the trip days as dates, departure day inclusive and return
// day exclusive (a 2024-06-01..2024-06-05 trip has four nights away and
// four planned days). One-way trips get a single planned day.
func (r TripRequest) Days() []time.Time {
	depart, err := time.Parse(DateLayout, r.DepartDate)
	if err != nil {
		return nil
	}
	if r.ReturnDate == "" {
		return []time.Time{depart}
	}
	ret, err := time.Parse(DateLayout, r.ReturnDate)
	if err != nil {
		return nil
	}

	var days []time.Time
	for d := depart; d.Before(ret); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// Nights returns the number of hotel nights for the trip
func (r TripRequest) Nights() int {
	return len(r.Days())
}

// AdultCount returns Adults with the single-traveler default applied
func (r TripRequest) AdultCount() int {
	if r.Adults <= 0 {
		return 1
	}
	return r.Adults
}

// FlightQuery is the provider-facing flight search derived from a request
type FlightQuery struct {
	Origin       string
	Destination  string
	OutboundDate string
	ReturnDate   string
	Adults       int
	MaxStops     int
	Currency     string
}

// HotelQuery is the provider-facing hotel search derived from a request
type HotelQuery struct {
	Location string
	CheckIn  string
	CheckOut string
	Adults   int
	Rooms    int
	Currency string
}
