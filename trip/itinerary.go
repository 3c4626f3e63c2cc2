package trip

import "time"

// WeatherRecord is a one-day forecast normalized from the weather provider
type WeatherRecord struct {
	Date         string  `json:"date"`
	Location     string  `json:"location"`
	Country      string  `json:"country,omitempty"`
	Condition    string  `json:"condition"`
	HighC        float64 `json:"high_c"`
	LowC         float64 `json:"low_c"`
	PrecipChance int     `json:"precip_chance"`
}

// FlightOption is a single bookable flight normalized from the flight provider
type FlightOption struct {
	Carrier         string  `json:"carrier"`
	FlightNumber    string  `json:"flight_number"`
	DepartureTime   string  `json:"departure_time"`
	ArrivalTime     string  `json:"arrival_time"`
	DurationMinutes int     `json:"duration_minutes"`
	Stops           int     `json:"stops"`
	Price           float64 `json:"price"`
	Currency        string  `json:"currency"`
}

// HotelOption is a single property normalized from the hotel provider
type HotelOption struct {
	Name               string  `json:"name"`
	NightlyPrice       float64 `json:"nightly_price"`
	Total              float64 `json:"total,omitempty"`
	Currency           string  `json:"currency"`
	Rating             float64 `json:"rating"`
	LocationDescriptor string  `json:"location_descriptor,omitempty"`
}

// DayPlan is the schedule for one trip day
type DayPlan struct {
	Date        string   `json:"date"`
	Summary     string   `json:"summary"`
	Activities  []string `json:"activities"`
	HolidayNote string   `json:"holiday_note,omitempty"`
}

// Section names identify the parts of an itinerary that can fail
// independently of each other.
type Section string

const (
	SectionWeather Section = "weather"
	SectionFlights Section = "flights"
	SectionHotels  Section = "hotels"
	SectionPacking Section = "packing"
	SectionDayPlan Section = "day_plan"
)

// SectionFailure records why a section is absent from an itinerary
type SectionFailure struct {
	Section  Section `json:"section"`
	Provider string  `json:"provider"`
	Reason   string  `json:"reason"`
}

// Itinerary is the assembled plan. Sections that could not be produced are
// left at their zero value and accounted for in Missing.
type Itinerary struct {
	Request            TripRequest      `json:"request"`
	Flight             *FlightOption    `json:"flight,omitempty"`
	FlightAlternatives []FlightOption   `json:"flight_alternatives,omitempty"`
	Hotel              *HotelOption     `json:"hotel,omitempty"`
	HotelAlternatives  []HotelOption    `json:"hotel_alternatives,omitempty"`
	Weather            []WeatherRecord  `json:"weather,omitempty"`
	PackingList        []string         `json:"packing_list,omitempty"`
	DayPlan            []DayPlan        `json:"day_plan,omitempty"`
	Notes              string           `json:"notes,omitempty"`
	Missing            []SectionFailure `json:"missing,omitempty"`
	CreatedAt          time.Time        `json:"created_at"`
}

// Complete reports whether every section was produced
func (i *Itinerary) Complete() bool {
	return len(i.Missing) == 0
}

// MissingSection reports whether a given section failed, and why
func (i *Itinerary) MissingSection(s Section) (SectionFailure, bool) {
	for _, f := range i.Missing {
		if f.Section == s {
			return f, true
		}
	}
	return SectionFailure{}, false
}
