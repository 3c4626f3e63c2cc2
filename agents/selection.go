package agents

import (
	"sort"

	"github.com/voyago/tripdesk/trip"
)

// SelectFlight picks the recommended flight and keeps the rest as
// alternatives. Cheapest wins, fewest stops breaks ties, and when a budget
// is set the cheapest in-budget option is preferred over anything above it.
func SelectFlight(flights []trip.FlightOption, budget float64) (*trip.FlightOption, []trip.FlightOption) {
	if len(flights) == 0 {
		return nil, nil
	}

	ranked := make([]trip.FlightOption, len(flights))
	copy(ranked, flights)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Price != ranked[j].Price {
			return ranked[i].Price < ranked[j].Price
		}
		return ranked[i].Stops < ranked[j].Stops
	})

	pick := 0
	if budget > 0 {
		for i, f := range ranked {
			if f.Price <= budget {
				pick = i
				break
			}
		}
	}

	selected := ranked[pick]
	alternatives := append(append([]trip.FlightOption{}, ranked[:pick]...), ranked[pick+1:]...)
	return &selected, alternatives
}

// SelectHotel picks the recommended hotel: best rated first, cheaper nightly
// price breaking ties. When a budget is set the best-rated stay whose total
// fits it is preferred over higher-rated stays above it.
func SelectHotel(hotels []trip.HotelOption, budget float64) (*trip.HotelOption, []trip.HotelOption) {
	if len(hotels) == 0 {
		return nil, nil
	}

	ranked := make([]trip.HotelOption, len(hotels))
	copy(ranked, hotels)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Rating != ranked[j].Rating {
			return ranked[i].Rating > ranked[j].Rating
		}
		return ranked[i].NightlyPrice < ranked[j].NightlyPrice
	})

	// a zero Total means the provider omitted the stay cost, which says
	// nothing about affordability
	pick := 0
	if budget > 0 {
		for i, h := range ranked {
			if h.Total > 0 && h.Total <= budget {
				pick = i
				break
			}
		}
	}

	selected := ranked[pick]
	alternatives := append(append([]trip.HotelOption{}, ranked[:pick]...), ranked[pick+1:]...)
	return &selected, alternatives
}
