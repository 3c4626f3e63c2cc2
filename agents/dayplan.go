package agents

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/voyago/tripdesk/log"
	"github.com/voyago/tripdesk/plugins"
	"github.com/voyago/tripdesk/trip"
)

// DayPlanner schedules activities across the trip days. Attractions come
// from the maps provider, holiday annotations from the holiday provider and
// an optional LLM narrative rounds out the notes. All three are best-effort;
// the planner always produces a schedule.
type DayPlanner struct {
	Attractions plugins.AttractionsClient
	Holidays    plugins.HolidayClient
	LLM         plugins.LLMClient
	Timeout     time.Duration
}

func (p *DayPlanner) timeout() time.Duration {
	if p.Timeout > 0 {
		return p.Timeout
	}
	return defaultProviderTimeout
}

// indoor activities swapped in when a day looks wet
var indoorFallbacks = []string{
	"visit a museum or gallery",
	"explore a covered market",
	"long lunch at a local restaurant",
	"browse bookshops and cafes",
}

func (p *DayPlanner) fetchAttractions(ctx context.Context, req trip.TripRequest, want int) []string {
	if p.Attractions == nil {
		return nil
	}
	fetchCtx, cancel := context.WithTimeout(ctx, p.timeout())
	defer cancel()

	attractions, err := p.Attractions.FindAttractions(fetchCtx, req.Destination, req.Preferences, want)
	if err != nil {
		log.Warnf(ctx, "attractions unavailable, using generic activities: %v", err)
		return nil
	}
	return attractions
}

func (p *DayPlanner) fetchHolidays(ctx context.Context, req trip.TripRequest) map[string]string {
	if p.Holidays == nil || req.Country == "" {
		return nil
	}

	years := map[int]bool{}
	for _, day := range req.Days() {
		years[day.Year()] = true
	}

	merged := map[string]string{}
	for year := range years {
		fetchCtx, cancel := context.WithTimeout(ctx, p.timeout())
		holidays, err := p.Holidays.PublicHolidays(fetchCtx, req.Country, year)
		cancel()
		if err != nil {
			log.Warnf(ctx, "holidays unavailable for %s %d: %v", req.Country, year, err)
			continue
		}
		for date, name := range holidays {
			merged[date] = name
		}
	}
	return merged
}

func rainy(w *trip.WeatherRecord) bool {
	if w == nil {
		return false
	}
	return w.PrecipChance >= 50 || strings.Contains(strings.ToLower(w.Condition), "rain")
}

// Build produces one plan per trip day plus free-form notes. Weather may be
// nil or partial; days without a forecast are planned weather-blind.
func (p *DayPlanner) Build(ctx context.Context, req trip.TripRequest, weather []trip.WeatherRecord) ([]trip.DayPlan, string) {
	days := req.Days()
	if len(days) == 0 {
		return nil, ""
	}

	perDay := req.Energy.ActivityCount()
	attractions := p.fetchAttractions(ctx, req, perDay*len(days))
	holidays := p.fetchHolidays(ctx, req)

	byDate := make(map[string]*trip.WeatherRecord, len(weather))
	for i := range weather {
		byDate[weather[i].Date] = &weather[i]
	}

	plans := make([]trip.DayPlan, 0, len(days))
	next := 0
	for i, day := range days {
		date := day.Format(trip.DateLayout)
		forecast := byDate[date]

		activities := make([]string, 0, perDay)
		for len(activities) < perDay {
			var activity string
			if next < len(attractions) {
				activity = fmt.Sprintf("visit %s", attractions[next])
				next++
			} else {
				activity = indoorFallbacks[len(activities)%len(indoorFallbacks)]
			}
			activities = append(activities, activity)
		}
		if rainy(forecast) && perDay > 0 {
			activities[len(activities)-1] = indoorFallbacks[i%len(indoorFallbacks)]
		}

		summary := fmt.Sprintf("Day %d in %s", i+1, req.Destination)
		if forecast != nil {
			summary = fmt.Sprintf("Day %d in %s, %s (%.0f°C/%.0f°C)",
				i+1, req.Destination, strings.ToLower(forecast.Condition), forecast.HighC, forecast.LowC)
		}

		plans = append(plans, trip.DayPlan{
			Date:        date,
			Summary:     summary,
			Activities:  activities,
			HolidayNote: holidays[date],
		})
	}

	return plans, p.narrative(ctx, req, plans)
}

// narrative asks the LLM for a short intro paragraph. Without an LLM, or on
// failure, a deterministic note is used instead.
func (p *DayPlanner) narrative(ctx context.Context, req trip.TripRequest, plans []trip.DayPlan) string {
	fallback := fmt.Sprintf("A %d-day trip to %s.", len(plans), req.Destination)
	if req.Preferences != "" {
		fallback = fmt.Sprintf("A %d-day trip to %s with a focus on %s.", len(plans), req.Destination, req.Preferences)
	}

	if p.LLM == nil {
		return fallback
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Write a two-sentence teaser for this trip. No markdown, no lists.\n")
	fmt.Fprintf(&sb, "Destination: %s. Dates: %s to %s.\n", req.Destination, req.DepartDate, req.ReturnDate)
	if req.Preferences != "" {
		fmt.Fprintf(&sb, "Traveler interests: %s.\n", req.Preferences)
	}
	for _, plan := range plans {
		fmt.Fprintf(&sb, "%s: %s\n", plan.Date, strings.Join(plan.Activities, ", "))
	}

	llmCtx, cancel := context.WithTimeout(ctx, p.timeout())
	defer cancel()

	notes, err := p.LLM.GenerateContent(llmCtx, sb.String())
	if err != nil {
		log.Warnf(ctx, "narrative generation failed, using fallback: %v", err)
		return fallback
	}
	notes = strings.TrimSpace(notes)
	if notes == "" {
		return fallback
	}
	return notes
}
