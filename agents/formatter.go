package agents

import (
	"fmt"
	"strings"

	"github.com/voyago/tripdesk/trip"
)

// FormatItinerary renders an itinerary as markdown for terminals and chat.
// Missing sections render a one-line notice naming the provider and reason
// instead of disappearing silently.
func FormatItinerary(it *trip.Itinerary) string {
	var sb strings.Builder

	req := it.Request
	fmt.Fprintf(&sb, "# Trip: %s → %s\n\n", strings.ToUpper(req.Origin), strings.ToUpper(req.Destination))
	if req.ReturnDate != "" {
		fmt.Fprintf(&sb, "%s to %s", req.DepartDate, req.ReturnDate)
	} else {
		fmt.Fprintf(&sb, "Departing %s, one way", req.DepartDate)
	}
	if req.Budget > 0 {
		currency := req.Currency
		if currency == "" {
			currency = "USD"
		}
		fmt.Fprintf(&sb, " · budget %.0f %s", req.Budget, currency)
	}
	sb.WriteString("\n")

	writeFlights(&sb, it)
	writeHotel(&sb, it)
	writeWeather(&sb, it)
	writeDayPlan(&sb, it)
	writePacking(&sb, it)

	if it.Notes != "" {
		sb.WriteString("\n## Notes\n\n")
		sb.WriteString(it.Notes)
		sb.WriteString("\n")
	}

	return sb.String()
}

func writeUnavailable(sb *strings.Builder, it *trip.Itinerary, section trip.Section) bool {
	failure, missing := it.MissingSection(section)
	if !missing {
		return false
	}
	fmt.Fprintf(sb, "_Section unavailable: %s: %s_\n", failure.Provider, failure.Reason)
	return true
}

func formatFlight(f trip.FlightOption) string {
	plural := "stops"
	if f.Stops == 1 {
		plural = "stop"
	}
	stops := fmt.Sprintf("%d %s", f.Stops, plural)
	if f.Stops == 0 {
		stops = "nonstop"
	}
	return fmt.Sprintf("%s %s · %s → %s · %s · %dh%02dm · %.0f %s",
		f.Carrier, f.FlightNumber, f.DepartureTime, f.ArrivalTime,
		stops, f.DurationMinutes/60, f.DurationMinutes%60, f.Price, f.Currency)
}

func writeFlights(sb *strings.Builder, it *trip.Itinerary) {
	sb.WriteString("\n## Flights\n\n")
	if writeUnavailable(sb, it, trip.SectionFlights) {
		return
	}
	if it.Flight != nil {
		fmt.Fprintf(sb, "**Recommended:** %s\n", formatFlight(*it.Flight))
	}
	if len(it.FlightAlternatives) > 0 {
		sb.WriteString("\nAlternatives:\n")
		for _, f := range it.FlightAlternatives {
			fmt.Fprintf(sb, "- %s\n", formatFlight(f))
		}
	}
}

func writeHotel(sb *strings.Builder, it *trip.Itinerary) {
	sb.WriteString("\n## Hotel\n\n")
	if writeUnavailable(sb, it, trip.SectionHotels) {
		return
	}
	if it.Hotel != nil {
		h := it.Hotel
		fmt.Fprintf(sb, "**Recommended:** %s · %.0f %s/night · rated %.1f", h.Name, h.NightlyPrice, h.Currency, h.Rating)
		if h.LocationDescriptor != "" {
			fmt.Fprintf(sb, " · %s", h.LocationDescriptor)
		}
		sb.WriteString("\n")
	}
	if len(it.HotelAlternatives) > 0 {
		sb.WriteString("\nAlternatives:\n")
		for _, h := range it.HotelAlternatives {
			fmt.Fprintf(sb, "- %s · %.0f %s/night · rated %.1f\n", h.Name, h.NightlyPrice, h.Currency, h.Rating)
		}
	}
}

func writeWeather(sb *strings.Builder, it *trip.Itinerary) {
	sb.WriteString("\n## Weather\n\n")
	if writeUnavailable(sb, it, trip.SectionWeather) {
		return
	}
	for _, w := range it.Weather {
		fmt.Fprintf(sb, "- %s: %s, %.0f°C/%.0f°C, %d%% chance of rain\n",
			w.Date, w.Condition, w.HighC, w.LowC, w.PrecipChance)
	}
}

func writeDayPlan(sb *strings.Builder, it *trip.Itinerary) {
	sb.WriteString("\n## Day plan\n\n")
	if writeUnavailable(sb, it, trip.SectionDayPlan) {
		return
	}
	for _, d := range it.DayPlan {
		fmt.Fprintf(sb, "**%s** · %s\n", d.Date, d.Summary)
		if d.HolidayNote != "" {
			fmt.Fprintf(sb, "  Public holiday: %s. Expect closures.\n", d.HolidayNote)
		}
		for _, a := range d.Activities {
			fmt.Fprintf(sb, "- %s\n", a)
		}
		sb.WriteString("\n")
	}
}

func writePacking(sb *strings.Builder, it *trip.Itinerary) {
	sb.WriteString("## Packing\n\n")
	if writeUnavailable(sb, it, trip.SectionPacking) {
		return
	}
	for _, item := range it.PackingList {
		fmt.Fprintf(sb, "- %s\n", item)
	}
}
